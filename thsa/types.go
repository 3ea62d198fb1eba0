// Package thsa builds a temporal-hybrid symbolic model: a finite labeled
// transition system abstracting a timed hybrid automaton's continuous
// modes, clocks and guarded switching transitions into a grid of
// integer-indexed states and inputs suitable for downstream controller
// synthesis.
//
// The package does not itself solve any reachability game, simulate
// trajectories, or render anything — it only assembles the symbolic
// model. Controller synthesis, visualization and problem-file loading
// are deliberately out of scope; see cmd/thsabuild for a peripheral tool
// that does load configuration from a file.
package thsa

import "gonum.org/v1/gonum/mat"

// ModeID indexes a discrete location of the hybrid automaton, 1..M.
type ModeID int

// StateSymbol indexes a cell of a mode's state-space grid. 0 is the
// sentinel for "no such symbol" (⊥).
type StateSymbol int

// InputSymbol indexes a cell of a mode's continuous-input grid.
type InputSymbol int

// TimeIndex indexes a mode's clock grid, 1-based. 0 means "not found".
type TimeIndex int

// TransitionID indexes a switching transition of the hybrid automaton.
type TransitionID int

// GlobalInputID is a single integer label unifying per-mode continuous
// inputs and switching events across the whole hybrid system.
type GlobalInputID int

// Box is an axis-aligned box over ℝⁿ, the only guard shape the core
// supports. In a guard the last dimension is the clock; state domains
// and Spatial() projections have no clock dimension.
type Box struct {
	Lo, Hi []float64
}

// Dim returns the box's dimensionality.
func (b Box) Dim() int { return len(b.Lo) }

// Spatial projects the box onto all but the last (clock) dimension.
func (b Box) Spatial() Box {
	n := b.Dim()
	if n == 0 {
		return b
	}
	return Box{Lo: append([]float64{}, b.Lo[:n-1]...), Hi: append([]float64{}, b.Hi[:n-1]...)}
}

// Temporal projects the box onto the clock dimension, as a scalar
// interval [t_min, t_max].
func (b Box) Temporal() (tMin, tMax float64) {
	n := b.Dim()
	if n == 0 {
		return 0, 0
	}
	return b.Lo[n-1], b.Hi[n-1]
}

// Contains reports whether x lies within the box (inclusive bounds).
func (b Box) Contains(x []float64) bool {
	if len(x) != b.Dim() {
		return false
	}
	for i := range x {
		if x[i] < b.Lo[i] || x[i] > b.Hi[i] {
			return false
		}
	}
	return true
}

// AsBox satisfies Guard for a literal Box.
func (b Box) AsBox() (Box, bool) { return b, true }

// Guard is the set enabling a switching transition. The core only knows
// how to handle guards that reduce to an axis-aligned Box; anything else
// causes the build to abort with UnsupportedGuardShape.
type Guard interface {
	AsBox() (Box, bool)
}

// ResetMap relocates the augmented (state, clock) vector at the moment
// of a mode switch. It is applied to, and must return, a vector of
// length statedim+1 (state followed by the clock).
type ResetMap func(xi []float64) []float64

// DynamicsSystem is the external collaborator describing one mode's
// continuous vector field. The core does not assume any particular
// integration or reachability scheme beyond this hook.
type DynamicsSystem interface {
	// StateDim returns the dimensionality of the mode's continuous
	// state (clock excluded).
	StateDim() int
	// InputDim returns the dimensionality of the mode's continuous
	// input.
	InputDim() int
	// VectorField evaluates dx/dt at state x under input u.
	VectorField(x, u []float64) []float64
	// StateConstraint returns the mode's state-space domain X
	// (spatial dimensions only, clock excluded).
	StateConstraint() Box
	// InputConstraint returns the mode's admissible input domain.
	InputConstraint() Box
}

// ClockSpec describes a mode's declared clock: how far it runs and at
// what step. Active == false models a frozen (degenerate) clock.
type ClockSpec struct {
	Horizon float64
	Dt      float64
	Active  bool
}

// HybridSystem is the external handle the builder consumes: modes, their
// dynamics/clock, and the inter-mode switching transitions.
type HybridSystem interface {
	Modes() []ModeID
	Mode(k ModeID) (DynamicsSystem, ClockSpec)
	Transitions() []TransitionID
	Source(tid TransitionID) ModeID
	Target(tid TransitionID) ModeID
	Guard(tid TransitionID) Guard
	Reset(tid TransitionID) ResetMap
}

// GrowthBound supplies the per-mode Jacobian bound used to
// over-approximate one mode's reachable tube, as a square matrix of
// size StateDim().
type GrowthBound struct {
	Matrix *mat.Dense
}

var (
	_ Guard = Box{}
)
