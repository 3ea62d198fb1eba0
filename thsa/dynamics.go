package thsa

import (
	"gonum.org/v1/gonum/mat"
)

// DynamicsAbstractor wraps an external reachability optimizer that,
// given a mode's dynamics, a growth bound, grid steps and a time step,
// returns a finite GridSpace (state/input transition relation) for that
// mode. The core treats the result set-theoretically and makes no
// determinism guarantees about it.
type DynamicsAbstractor interface {
	Abstract(sys DynamicsSystem, gb GrowthBound, dx, du, dt float64) (GridSpace, error)
}

// GrowthBoundAbstractor is the reference DynamicsAbstractor: a
// growth-bound over-approximation that, for each (source cell, input
// cell), Euler-steps the cell center forward by dt and over-approximates
// the reachable tube as a box of radius growthBound*(h/2) around that
// image, then marks every grid cell intersecting that box as a possible
// target. This is deliberately simple — a stand-in for a tighter
// external reachability optimizer, not a claim of tightness.
type GrowthBoundAbstractor struct{}

// NewGrowthBoundAbstractor constructs the reference abstractor.
func NewGrowthBoundAbstractor() *GrowthBoundAbstractor { return &GrowthBoundAbstractor{} }

// Abstract implements DynamicsAbstractor.
func (a *GrowthBoundAbstractor) Abstract(sys DynamicsSystem, gb GrowthBound, dx, du, dt float64) (GridSpace, error) {
	n := sys.StateDim()
	m := sys.InputDim()
	if gb.Matrix == nil {
		return nil, newBuildError(ErrInvalidConfiguration, "growth bound matrix is nil")
	}
	r, c := gb.Matrix.Dims()
	if r != n || c != n {
		return nil, newBuildError(ErrInvalidConfiguration,
			"growth bound matrix has shape (%d,%d), want (%d,%d)", r, c, n, n)
	}

	h := uniform(n, dx)
	hu := uniform(m, du)
	grid := newUniformGrid(sys.StateConstraint(), h, sys.InputConstraint(), hu)

	halfH := mat.NewVecDense(n, h)
	halfH.ScaleVec(0.5, halfH)
	radius := mat.NewVecDense(n, nil)
	radius.MulVec(gb.Matrix, halfH)

	total := grid.total()
	inTotal := grid.inTotal()
	var transitions []Transition

	for sFlat := 1; sFlat <= total; sFlat++ {
		q := StateSymbol(sFlat)
		x0, ok := grid.ConcreteOf(q)
		if !ok {
			continue
		}
		for uFlat := 1; uFlat <= inTotal; uFlat++ {
			u := InputSymbol(uFlat)
			uConcrete, ok := grid.ConcreteInput(u)
			if !ok {
				continue
			}
			image := eulerStep(sys, x0, uConcrete, dt)
			box := Box{Lo: make([]float64, n), Hi: make([]float64, n)}
			for i := 0; i < n; i++ {
				box.Lo[i] = image[i] - radius.AtVec(i)
				box.Hi[i] = image[i] + radius.AtVec(i)
			}
			for _, target := range overlappingCells(grid, box) {
				transitions = append(transitions, Transition{Source: q, Target: target, Input: u})
			}
		}
	}

	grid.transitions = transitions
	return grid, nil
}

func uniform(n int, step float64) []float64 {
	h := make([]float64, n)
	for i := range h {
		h[i] = step
	}
	return h
}

// eulerStep advances the continuous state by one explicit Euler step of
// length dt under the mode's vector field.
func eulerStep(sys DynamicsSystem, x, u []float64, dt float64) []float64 {
	dx := sys.VectorField(x, u)
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i] + dt*dx[i]
	}
	return out
}

// overlappingCells returns every grid cell that intersects box (not
// merely contained, unlike StatesInSet's INNER semantics — the growth
// bound must over-approximate, so any touched cell is a possible
// target).
func overlappingCells(g *UniformGrid, box Box) []StateSymbol {
	var out []StateSymbol
	total := g.total()
	for flat := 1; flat <= total; flat++ {
		idx := undenseIndex(flat, g.nCells)
		overlaps := true
		for i := range idx {
			lo := g.origin[i] + float64(idx[i])*g.h[i]
			hi := lo + g.h[i]
			if hi < box.Lo[i] || lo > box.Hi[i] {
				overlaps = false
				break
			}
		}
		if overlaps {
			out = append(out, StateSymbol(flat))
		}
	}
	return out
}

var _ DynamicsAbstractor = (*GrowthBoundAbstractor)(nil)
