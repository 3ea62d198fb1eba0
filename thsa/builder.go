package thsa

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BuildTimedHybridAutomaton executes all seven phases to completion and
// returns an immutable symbolic model. It is single-threaded from the
// caller's perspective — synchronous, offline, all-or-nothing — even
// though phase B internally fans the per-mode abstraction out across
// goroutines, since that work dominates runtime and the modes are
// independent of one another.
func BuildTimedHybridAutomaton(sys HybridSystem, cfg BuildConfig, opts ...BuildOption) (*SymbolicModel, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := validateBuildConfig(sys, cfg); err != nil {
		return nil, err
	}
	diag := newBuildDiagnostics(o.logger)

	modes := sys.Modes()
	diag.phase("build started", zap.Int("mode_count", len(modes)))

	// Phase A+B: per-mode grid + dynamics abstraction, built concurrently.
	grids := make(map[ModeID]GridSpace, len(modes))
	var mu sync.Mutex
	group, _ := errgroup.WithContext(context.Background())
	if o.concurrency > 0 {
		group.SetLimit(o.concurrency)
	} else {
		group.SetLimit(runtime.GOMAXPROCS(0))
	}
	for _, k := range modes {
		k := k
		modeCfg, ok := cfg.Modes[k]
		if !ok {
			return nil, newBuildError(ErrInvalidConfiguration, "no BuildConfig entry for mode %d", k).withMode(k)
		}
		dynSys, _ := sys.Mode(k)
		group.Go(func() error {
			grid, err := o.abstractor.Abstract(dynSys, modeCfg.GrowthBound, modeCfg.Dx, modeCfg.Du, modeCfg.Dt)
			if err != nil {
				return &BuildError{Kind: ErrInvalidConfiguration, Message: err.Error(), Cause: err}
			}
			mu.Lock()
			grids[k] = grid
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	diag.phase("per-mode dynamics abstraction complete")

	// Phase C: clock models.
	clocks := make(map[ModeID]*ClockModel, len(modes))
	nInputs := make(map[ModeID]int, len(modes))
	for _, k := range modes {
		_, clockSpec := sys.Mode(k)
		clocks[k] = NewClockModel(clockSpec)
		nInputs[k] = grids[k].NInputs()
	}
	diag.phase("clock models constructed")

	// Phase D: global input map.
	inputMap := BuildGlobalInputMap(modes, nInputs, sys)
	diag.phase("global input map built",
		zap.Int("continuous", inputMap.NContinuous()),
		zap.Int("switching", inputMap.NSwitching()),
	)

	// Phase E: intra-mode transitions.
	var triples []Triple
	for _, k := range modes {
		triples = append(triples, buildIntraModeTransitions(k, grids[k], clocks[k], inputMap)...)
	}
	diag.phase("intra-mode transitions built", zap.Int("count", len(triples)))

	// Phase F: switching transitions.
	switching, err := buildSwitchingTransitions(sys, grids, clocks, inputMap, diag, o.boundaryPolicy)
	if err != nil {
		diag.phase("build aborted: unsupported guard shape")
		return nil, err
	}
	triples = append(triples, switching...)
	diag.phase("switching transitions built", zap.Int("count", len(switching)))
	diag.summary()

	// Phase G: assembly.
	model := assemble(modes, grids, clocks, inputMap, triples)
	diag.phase("automaton assembled",
		zap.Int("n_states", model.NStates()),
		zap.Int("n_inputs", model.NInputs()),
	)

	return model, nil
}
