package main

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/hybridsynth/thsa/thsa"
)

// fileConfig is the on-disk shape of a build configuration: one entry
// per mode, keyed by mode id. The core package never parses this
// itself — BuildConfig is a typed Go value, and this adapter is the
// only place YAML enters the picture.
type fileConfig struct {
	BoundaryPolicy string                  `yaml:"boundary_policy"`
	Concurrency    int                     `yaml:"concurrency"`
	Modes          map[int]fileModeConfig `yaml:"modes"`
}

type fileModeConfig struct {
	Dx          float64     `yaml:"dx"`
	Du          float64     `yaml:"du"`
	Dt          float64     `yaml:"dt"`
	GrowthBound [][]float64 `yaml:"growth_bound"`
	Clock       fileClock   `yaml:"clock"`
}

type fileClock struct {
	Active  bool    `yaml:"active"`
	Horizon float64 `yaml:"horizon"`
	Dt      float64 `yaml:"dt"`
}

// loadFileConfig reads and parses the raw YAML shape of path.
func loadFileConfig(path string) (*fileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &fc, nil
}

// toBuildConfig converts the YAML shape into the typed thsa.BuildConfig
// the core package consumes.
func (fc *fileConfig) toBuildConfig() (thsa.BuildConfig, error) {
	modes := make(map[thsa.ModeID]thsa.ModeConfig, len(fc.Modes))
	for id, mc := range fc.Modes {
		matrix, err := toDense(mc.GrowthBound)
		if err != nil {
			return thsa.BuildConfig{}, fmt.Errorf("mode %d growth_bound: %w", id, err)
		}
		modes[thsa.ModeID(id)] = thsa.ModeConfig{
			Dx:          mc.Dx,
			Du:          mc.Du,
			Dt:          mc.Dt,
			GrowthBound: thsa.GrowthBound{Matrix: matrix},
			Clock: thsa.ClockSpec{
				Active:  mc.Clock.Active,
				Horizon: mc.Clock.Horizon,
				Dt:      mc.Clock.Dt,
			},
		}
	}
	return thsa.BuildConfig{Modes: modes}, nil
}

func toDense(rows [][]float64) (*mat.Dense, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("empty matrix")
	}
	flat := make([]float64, 0, n*n)
	for _, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("matrix is not square: row has %d entries, want %d", len(row), n)
		}
		flat = append(flat, row...)
	}
	return mat.NewDense(n, n, flat), nil
}

func (fc *fileConfig) boundaryPolicy() (thsa.BoundaryPolicy, error) {
	switch fc.BoundaryPolicy {
	case "", "drop":
		return thsa.DropOnBoundary, nil
	case "snap":
		return thsa.SnapInward, nil
	default:
		return 0, fmt.Errorf("unknown boundary_policy %q (want \"drop\" or \"snap\")", fc.BoundaryPolicy)
	}
}
