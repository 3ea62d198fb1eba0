package thsa

import "sort"

// AugmentedState is the vertex set of the final automaton: a spatial
// symbol, a time index, and the mode id disambiguating states that
// otherwise share (Q, T) across modes. It is a packed, comparable
// struct — no custom hashing, no pointer identity, per the Design
// Notes.
type AugmentedState struct {
	Q StateSymbol
	T TimeIndex
	K ModeID
}

// Triple is the atomic unit assembled before final automaton compaction:
// a transition from SourceAug to TargetAug labeled by a global input id.
type Triple struct {
	SourceAug AugmentedState
	TargetAug AugmentedState
	Input     GlobalInputID
}

// SymbolicModel is the immutable, fully assembled temporal-hybrid
// symbolic model. Once returned from BuildTimedHybridAutomaton it is
// never mutated again; all accessors are pure functions of it and are
// safe for unsynchronized concurrent use.
type SymbolicModel struct {
	modes  []ModeID
	grids  map[ModeID]GridSpace
	clocks map[ModeID]*ClockModel
	inputs *GlobalInputMap

	int2aug []AugmentedState          // dense, 1-based via index+1
	aug2int map[AugmentedState]int    // inverse
	trans   map[int]map[GlobalInputID]map[int]struct{}
}

// assemble collects the augmented states referenced by triples, assigns
// them dense integer ids in a stable, deterministic order, and builds
// the indexed transition relation.
func assemble(modes []ModeID, grids map[ModeID]GridSpace, clocks map[ModeID]*ClockModel, inputs *GlobalInputMap, triples []Triple) *SymbolicModel {
	seen := make(map[AugmentedState]struct{})
	for _, t := range triples {
		seen[t.SourceAug] = struct{}{}
		seen[t.TargetAug] = struct{}{}
	}

	all := make([]AugmentedState, 0, len(seen))
	for a := range seen {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].K != all[j].K {
			return all[i].K < all[j].K
		}
		if all[i].T != all[j].T {
			return all[i].T < all[j].T
		}
		return all[i].Q < all[j].Q
	})

	aug2int := make(map[AugmentedState]int, len(all))
	for i, a := range all {
		aug2int[a] = i + 1
	}

	m := &SymbolicModel{
		modes:   modes,
		grids:   grids,
		clocks:  clocks,
		inputs:  inputs,
		int2aug: all,
		aug2int: aug2int,
		trans:   make(map[int]map[GlobalInputID]map[int]struct{}),
	}

	for _, t := range triples {
		s := aug2int[t.SourceAug]
		tgt := aug2int[t.TargetAug]
		row, ok := m.trans[s]
		if !ok {
			row = make(map[GlobalInputID]map[int]struct{})
			m.trans[s] = row
		}
		set, ok := row[t.Input]
		if !ok {
			set = make(map[int]struct{})
			row[t.Input] = set
		}
		set[tgt] = struct{}{}
	}

	return m
}

// NStates returns the number of assembled augmented states.
func (m *SymbolicModel) NStates() int { return len(m.int2aug) }

// NInputs returns the global input count (from the input map, not
// merely the inputs observed in emitted triples).
func (m *SymbolicModel) NInputs() int { return m.inputs.Total() }

// EnumStates returns 1..NStates.
func (m *SymbolicModel) EnumStates() []int {
	out := make([]int, m.NStates())
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// EnumInputs returns mode k's local input symbols.
func (m *SymbolicModel) EnumInputs(k ModeID) []InputSymbol {
	grid, ok := m.grids[k]
	if !ok {
		return nil
	}
	return grid.EnumInputs()
}

// ConcreteState unpacks int2aug[s] into its concrete representation.
func (m *SymbolicModel) ConcreteState(s int) (x []float64, tau float64, k ModeID, err error) {
	if s < 1 || s > len(m.int2aug) {
		return nil, 0, 0, newBuildError(ErrUnknownAugmentedState, "state id %d out of range", s)
	}
	a := m.int2aug[s-1]
	grid := m.grids[a.K]
	xc, ok := grid.ConcreteOf(a.Q)
	if !ok {
		return nil, 0, 0, newBuildError(ErrUnknownAugmentedState, "spatial symbol %d invalid in mode %d", a.Q, a.K)
	}
	t, ok := m.clocks[a.K].TimeAt(a.T)
	if !ok {
		return nil, 0, 0, newBuildError(ErrUnknownAugmentedState, "time index %d invalid in mode %d", a.T, a.K)
	}
	return xc, t, a.K, nil
}

// AbstractState composes AbstractOf, FloorInt and the reverse map to
// resolve a concrete (x, τ, k) back to its integer id. Fails with
// UnknownAugmentedState if the resulting triple was never exercised as
// a source or target by the assembled model.
func (m *SymbolicModel) AbstractState(x []float64, tau float64, k ModeID) (int, error) {
	grid, ok := m.grids[k]
	if !ok {
		return 0, newBuildError(ErrInvalidConfiguration, "unknown mode %d", k).withMode(k)
	}
	q, ok := grid.AbstractOf(x)
	if !ok {
		return 0, newBuildError(ErrUnknownAugmentedState, "x is outside mode %d's grid", k).withMode(k)
	}
	t := m.clocks[k].FloorInt(tau)
	if t == 0 {
		return 0, newBuildError(ErrUnknownAugmentedState, "tau is before mode %d's clock start", k).withMode(k)
	}
	s, ok := m.aug2int[AugmentedState{Q: q, T: t, K: k}]
	if !ok {
		return 0, newBuildError(ErrUnknownAugmentedState, "augmented state (%d,%d,%d) not present in model", q, t, k).withMode(k)
	}
	return s, nil
}

// StatesInAugmentedSet cross-products, per mode k in ns, states_in_set
// with the clock indices in [ceil(ts.lo), floor(ts.hi)], keeping only
// tuples actually present in the assembled model.
func (m *SymbolicModel) StatesInAugmentedSet(xs map[ModeID]Box, ts map[ModeID][2]float64, ns []ModeID) []int {
	var out []int
	for _, k := range ns {
		grid, ok := m.grids[k]
		if !ok {
			continue
		}
		clock := m.clocks[k]
		interval, ok := ts[k]
		if !ok {
			continue
		}
		lo := clock.CeilInt(interval[0])
		hi := clock.FloorInt(interval[1])
		if lo == 0 || hi == 0 {
			continue
		}
		box, ok := xs[k]
		if !ok {
			continue
		}
		for _, q := range grid.StatesInSet(box) {
			for t := lo; t <= hi; t++ {
				if s, ok := m.aug2int[AugmentedState{Q: q, T: t, K: k}]; ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

// ConcreteInput returns the concrete representative of g in mode k. A
// switching id returns ⊥ (a nil slice and a nil error); a continuous id for a
// different mode, or an id outside both ranges, is InvalidInputId.
func (m *SymbolicModel) ConcreteInput(g GlobalInputID, k ModeID) ([]float64, error) {
	class := m.inputs.Classify(g)
	switch class.Kind {
	case SwitchingInput:
		return nil, nil
	case ContinuousInput:
		if class.Mode != k {
			return nil, newBuildError(ErrInvalidInputID, "global input %d belongs to mode %d, not %d", g, class.Mode, k).withInput(g).withMode(k)
		}
		grid := m.grids[k]
		x, ok := grid.ConcreteInput(class.Local)
		if !ok {
			return nil, newBuildError(ErrInvalidInputID, "local input %d invalid in mode %d", class.Local, k).withInput(g).withMode(k)
		}
		return x, nil
	default:
		return nil, newBuildError(ErrInvalidInputID, "global input %d is not a valid id", g).withInput(g)
	}
}

// AbstractInput returns the global continuous input id for u in mode k,
// or 0 if u is not representable in that mode's input grid.
func (m *SymbolicModel) AbstractInput(u []float64, k ModeID) GlobalInputID {
	grid, ok := m.grids[k]
	if !ok {
		return 0
	}
	local, ok := grid.AbstractInput(u)
	if !ok {
		return 0
	}
	return m.inputs.GlobalIDOfContinuous(k, local)
}

// Inputs exposes the global input map for callers that need
// Classify/IsContinuous/IsSwitching directly.
func (m *SymbolicModel) Inputs() *GlobalInputMap { return m.inputs }

// Successors returns the target ints reachable from source s under
// global input g.
func (m *SymbolicModel) Successors(s int, g GlobalInputID) []int {
	row, ok := m.trans[s]
	if !ok {
		return nil
	}
	set, ok := row[g]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Ints(out)
	return out
}
