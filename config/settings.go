package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

const (
	minGridSize = 4
	maxGridSize = 64
)

type Settings struct {
	Window     WindowSettings     `json:"window"`
	Simulation SimulationSettings `json:"simulation"`
	Server     ServerSettings     `json:"server"`
}

type WindowSettings struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

type SimulationSettings struct {
	GridSize       int     `json:"gridSize"`
	SavePath       string  `json:"savePath"`
	SpreadInterval uint64  `json:"spreadInterval"`
	SourcePressure float32 `json:"sourcePressure"`
}

type ServerSettings struct {
	Enabled          bool `json:"enabled"`
	Port             int  `json:"port"`
	UpdateIntervalMs int  `json:"updateIntervalMs"`
}

// Default returns the settings used when no settings file exists.
func Default() Settings {
	return Settings{
		Window: WindowSettings{
			Width:  1280,
			Height: 720,
			Title:  "atombox",
		},
		Simulation: SimulationSettings{
			GridSize:       16,
			SavePath:       "nopush/grid_save.json",
			SpreadInterval: 1,
			SourcePressure: 1.0,
		},
		Server: ServerSettings{
			Enabled:          false,
			Port:             8080,
			UpdateIntervalMs: 100,
		},
	}
}

// Load reads settings from path on top of the defaults. A missing file is
// not an error; a present but unparsable one is.
func Load(path string) (Settings, error) {
	settings := Default()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("No %s found, using defaults", path)
			return settings, nil
		}
		return settings, err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&settings); err != nil {
		return settings, fmt.Errorf("error parsing %s: %w", path, err)
	}

	if settings.Simulation.GridSize < minGridSize || settings.Simulation.GridSize > maxGridSize {
		log.Printf("Grid size %d out of range [%d,%d], using %d",
			settings.Simulation.GridSize, minGridSize, maxGridSize, Default().Simulation.GridSize)
		settings.Simulation.GridSize = Default().Simulation.GridSize
	}
	if settings.Simulation.SpreadInterval == 0 {
		settings.Simulation.SpreadInterval = 1
	}

	return settings, nil
}
