package thsa

import "go.uber.org/zap"

// BoundaryPolicy selects what happens when the target grid's AbstractOf
// rejects a reset image. With UniformGrid that is an image outside the
// domain, including one exactly on the domain's upper edge; an image on
// an interior cell boundary resolves to the upper cell and is kept.
type BoundaryPolicy int

const (
	// DropOnBoundary silently drops the switching triple — the
	// documented default.
	DropOnBoundary BoundaryPolicy = iota
	// SnapInward nudges the image a negligible distance toward the
	// domain origin before re-attempting AbstractOf, trading a small
	// bias for fewer dropped transitions.
	SnapInward
)

// ModeConfig is one mode's discretization parameter triple plus its
// growth bound.
type ModeConfig struct {
	Dx          float64
	Du          float64
	Dt          float64
	GrowthBound GrowthBound
	Clock       ClockSpec
}

// BuildConfig carries every per-mode parameter the builder needs. The
// core takes this as a typed Go value — no file parsing here, see
// cmd/thsabuild for the YAML-driven adapter.
type BuildConfig struct {
	Modes map[ModeID]ModeConfig
}

type buildOptions struct {
	boundaryPolicy BoundaryPolicy
	logger         *zap.Logger
	abstractor     DynamicsAbstractor
	concurrency    int
}

// BuildOption configures a BuildTimedHybridAutomaton call.
type BuildOption func(*buildOptions)

// WithBoundaryResetPolicy selects how reset images on a target cell
// boundary are handled.
func WithBoundaryResetPolicy(policy BoundaryPolicy) BuildOption {
	return func(o *buildOptions) { o.boundaryPolicy = policy }
}

// WithLogger attaches a *zap.Logger the build reports its phases to. The
// default is a no-op logger; logging is diagnostic, not load-bearing.
func WithLogger(logger *zap.Logger) BuildOption {
	return func(o *buildOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDynamicsAbstractor overrides the reference GrowthBoundAbstractor,
// e.g. to plug in a tighter external reachability optimizer.
func WithDynamicsAbstractor(a DynamicsAbstractor) BuildOption {
	return func(o *buildOptions) {
		if a != nil {
			o.abstractor = a
		}
	}
}

// WithConcurrency bounds how many modes are abstracted in parallel
// during phase B. A value <= 0 falls back to GOMAXPROCS.
func WithConcurrency(n int) BuildOption {
	return func(o *buildOptions) { o.concurrency = n }
}

func defaultOptions() buildOptions {
	return buildOptions{
		boundaryPolicy: DropOnBoundary,
		logger:         zap.NewNop(),
		abstractor:     NewGrowthBoundAbstractor(),
		concurrency:    0,
	}
}
