// Command thsabuild is a peripheral CLI that loads a build configuration
// from a YAML file and assembles the thermostat example's symbolic
// model, printing a short summary. It exists to exercise the
// file-driven configuration path; loading an arbitrary hybrid system
// from a problem file remains out of scope, same as the core library.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/hybridsynth/thsa/examples/thermostat"
	"github.com/hybridsynth/thsa/thsa"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML build configuration (optional; defaults to the built-in thermostat config)")
	verbose := flag.Bool("verbose", false, "enable debug-level build logging")
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setting up logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	clock := thsa.ClockSpec{Active: false}
	var buildOpts []thsa.BuildOption
	buildOpts = append(buildOpts, thsa.WithLogger(logger))

	var cfg thsa.BuildConfig
	if *configPath != "" {
		fc, err := loadFileConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
			os.Exit(1)
		}
		cfg, err = fc.toBuildConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "converting config: %v\n", err)
			os.Exit(1)
		}
		policy, err := fc.boundaryPolicy()
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid boundary policy: %v\n", err)
			os.Exit(1)
		}
		buildOpts = append(buildOpts, thsa.WithBoundaryResetPolicy(policy))
		if fc.Concurrency > 0 {
			buildOpts = append(buildOpts, thsa.WithConcurrency(fc.Concurrency))
		}
		if off, ok := cfg.Modes[thermostat.ModeOff]; ok {
			clock = off.Clock
		}
	} else {
		cfg = thermostat.DefaultBuildConfig(clock)
	}

	sys := thermostat.NewSystem(clock)
	model, err := thsa.BuildTimedHybridAutomaton(sys, cfg, buildOpts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Assembled symbolic model: %d states, %d inputs (%d continuous, %d switching)\n",
		model.NStates(), model.NInputs(), model.Inputs().NContinuous(), model.Inputs().NSwitching())
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = ""
	return cfg.Build()
}
