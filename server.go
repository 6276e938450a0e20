package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"atombox/core"
)

// gridSnapshot is the wire form of one grid state: atoms flattened in the
// grid's iteration order (x outer, z inner).
type gridSnapshot struct {
	Type  string      `json:"type"`
	Size  int         `json:"size"`
	Step  uint64      `json:"step"`
	Atoms []core.Atom `json:"atoms"`
}

// stateServer streams grid snapshots to websocket observers. It never writes
// to the grid: the main loop hands it encoded copies, so the simulation
// stays single-threaded.
type stateServer struct {
	mu       sync.RWMutex
	latest   []byte
	interval time.Duration
	upgrader websocket.Upgrader
}

func newStateServer(interval time.Duration) *stateServer {
	return &stateServer{
		interval: interval,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // local observer tool, not a public endpoint
			},
		},
	}
}

// publish encodes the grid and stores it as the snapshot sent to clients.
func (s *stateServer) publish(grid *core.Grid) error {
	data, err := encodeGridSnapshot(grid)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.latest = data
	s.mu.Unlock()
	return nil
}

func encodeGridSnapshot(grid *core.Grid) ([]byte, error) {
	snapshot := gridSnapshot{
		Type:  "grid",
		Size:  grid.Size(),
		Step:  grid.StepCounter,
		Atoms: make([]core.Atom, 0, grid.Size()*grid.Size()*grid.Size()),
	}
	for pos := range grid.Positions() {
		snapshot.Atoms = append(snapshot.Atoms, *grid.At(pos))
	}
	return json.Marshal(snapshot)
}

func (s *stateServer) run(port int) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)

	addr := fmt.Sprintf(":%d", port)
	log.Printf("State server listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("State server stopped: %v", err)
	}
}

func (s *stateServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.RLock()
		data := s.latest
		s.mu.RUnlock()
		if data == nil {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}
