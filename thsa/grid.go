package thsa

import "gonum.org/v1/gonum/mat"

// Transition is one entry of a mode's symbolic dynamics relation
// SymDyn[k]: from Source under Input, possibly to Target, as produced
// by the per-mode reachability over-approximation.
type Transition struct {
	Source StateSymbol
	Target StateSymbol
	Input  InputSymbol
}

// GridSpace is the uniform-grid quantizer contract a mode's symbolic
// dynamics satisfies: forward/inverse maps between concrete vectors and
// integer symbols, plus the enumerated transition relation and input
// grid. DynamicsAbstractor implementations populate it, the rest of the
// builder only consumes it.
type GridSpace interface {
	// ConcreteOf returns the representative point (cell center) of
	// symbol q. ok is false for an invalid symbol (including 0).
	ConcreteOf(q StateSymbol) (x []float64, ok bool)
	// AbstractOf returns the symbol whose cell contains x, or
	// ok == false if x lies outside the grid (⊥).
	AbstractOf(x []float64) (q StateSymbol, ok bool)
	// StatesInSet returns every symbol whose cell is contained in s,
	// under INNER semantics (the cell must lie fully inside s).
	StatesInSet(s Box) []StateSymbol
	// EnumTransitions returns the full symbolic dynamics relation.
	EnumTransitions() []Transition
	// NInputs returns the number of local input symbols.
	NInputs() int
	// EnumInputs returns every local input symbol, 1..NInputs().
	EnumInputs() []InputSymbol
	// ConcreteInput returns the representative point of input symbol u.
	ConcreteInput(u InputSymbol) (uConcrete []float64, ok bool)
	// AbstractInput returns the symbol whose input cell contains u.
	AbstractInput(u []float64) (InputSymbol, bool)
}

// UniformGrid is the reference GridSpace implementation: a rectilinear
// grid over a bounded domain, defined by origin, cell size h and an
// extent derived from the domain box. It is built by GrowthBoundAbstractor
// (dynamics.go); callers never construct one directly with a populated
// transition relation.
type UniformGrid struct {
	origin []float64
	h      []float64
	nCells []int // cell count per spatial dimension
	domain Box

	inOrigin []float64
	inH      []float64
	inNCells []int
	inDomain Box

	transitions []Transition
}

func cellCount(domain Box, h []float64) []int {
	n := make([]int, len(h))
	for i := range h {
		span := domain.Hi[i] - domain.Lo[i]
		n[i] = int(span/h[i] + 0.5)
		if n[i] < 1 {
			n[i] = 1
		}
	}
	return n
}

// newUniformGrid constructs an (as yet transition-free) grid over the
// state domain with step h, and an input grid over uDomain with step hu.
func newUniformGrid(domain Box, h []float64, uDomain Box, hu []float64) *UniformGrid {
	g := &UniformGrid{
		origin:   append([]float64{}, domain.Lo...),
		h:        append([]float64{}, h...),
		domain:   domain,
		inOrigin: append([]float64{}, uDomain.Lo...),
		inH:      append([]float64{}, hu...),
		inDomain: uDomain,
	}
	g.nCells = cellCount(domain, h)
	g.inNCells = cellCount(uDomain, hu)
	return g
}

// denseIndex converts a multi-dimensional cell index into a dense, 1-based
// StateSymbol/InputSymbol, reserving 0 for ⊥.
func denseIndex(idx []int, nCells []int) int {
	mult := 1
	flat := 0
	for i := range idx {
		flat += idx[i] * mult
		mult *= nCells[i]
	}
	return flat + 1
}

func undenseIndex(flat int, nCells []int) []int {
	flat--
	idx := make([]int, len(nCells))
	for i := range nCells {
		idx[i] = flat % nCells[i]
		flat /= nCells[i]
	}
	return idx
}

func cellOf(x, origin, h []float64, nCells []int) ([]int, bool) {
	idx := make([]int, len(x))
	for i := range x {
		c := int((x[i] - origin[i]) / h[i])
		if x[i] < origin[i] || c < 0 || c >= nCells[i] {
			return nil, false
		}
		idx[i] = c
	}
	return idx, true
}

func center(idx []int, origin, h []float64) []float64 {
	x := make([]float64, len(idx))
	for i := range idx {
		x[i] = origin[i] + (float64(idx[i])+0.5)*h[i]
	}
	return x
}

// ConcreteOf implements GridSpace.
func (g *UniformGrid) ConcreteOf(q StateSymbol) ([]float64, bool) {
	if q <= 0 || int(q) > g.total() {
		return nil, false
	}
	idx := undenseIndex(int(q), g.nCells)
	return center(idx, g.origin, g.h), true
}

func (g *UniformGrid) total() int {
	t := 1
	for _, n := range g.nCells {
		t *= n
	}
	return t
}

func (g *UniformGrid) inTotal() int {
	t := 1
	for _, n := range g.inNCells {
		t *= n
	}
	return t
}

// AbstractOf implements GridSpace.
func (g *UniformGrid) AbstractOf(x []float64) (StateSymbol, bool) {
	idx, ok := cellOf(x, g.origin, g.h, g.nCells)
	if !ok {
		return 0, false
	}
	return StateSymbol(denseIndex(idx, g.nCells)), true
}

// StatesInSet implements GridSpace under INNER semantics: a cell
// belongs to the result only if it lies entirely within s.
func (g *UniformGrid) StatesInSet(s Box) []StateSymbol {
	var out []StateSymbol
	total := g.total()
	for flat := 1; flat <= total; flat++ {
		idx := undenseIndex(flat, g.nCells)
		lo := make([]float64, len(idx))
		hi := make([]float64, len(idx))
		inside := true
		for i := range idx {
			lo[i] = g.origin[i] + float64(idx[i])*g.h[i]
			hi[i] = lo[i] + g.h[i]
			if lo[i] < s.Lo[i] || hi[i] > s.Hi[i] {
				inside = false
				break
			}
		}
		if inside {
			out = append(out, StateSymbol(flat))
		}
	}
	return out
}

// EnumTransitions implements GridSpace.
func (g *UniformGrid) EnumTransitions() []Transition {
	return g.transitions
}

// NInputs implements GridSpace.
func (g *UniformGrid) NInputs() int { return g.inTotal() }

// EnumInputs implements GridSpace.
func (g *UniformGrid) EnumInputs() []InputSymbol {
	n := g.inTotal()
	out := make([]InputSymbol, n)
	for i := 0; i < n; i++ {
		out[i] = InputSymbol(i + 1)
	}
	return out
}

// ConcreteInput implements GridSpace.
func (g *UniformGrid) ConcreteInput(u InputSymbol) ([]float64, bool) {
	if u <= 0 || int(u) > g.inTotal() {
		return nil, false
	}
	idx := undenseIndex(int(u), g.inNCells)
	return center(idx, g.inOrigin, g.inH), true
}

// AbstractInput implements GridSpace.
func (g *UniformGrid) AbstractInput(u []float64) (InputSymbol, bool) {
	idx, ok := cellOf(u, g.inOrigin, g.inH, g.inNCells)
	if !ok {
		return 0, false
	}
	return InputSymbol(denseIndex(idx, g.inNCells)), true
}

// vecOf copies x into a new gonum VecDense. Nothing in the package
// calls it at present.
func vecOf(x []float64) *mat.VecDense { return mat.NewVecDense(len(x), append([]float64{}, x...)) }

var _ GridSpace = (*UniformGrid)(nil)
