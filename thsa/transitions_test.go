package thsa

import "testing"

// fakeGrid is a minimal, hand-populated GridSpace used to exercise the
// transition builders without routing through GrowthBoundAbstractor.
type fakeGrid struct {
	concrete    map[StateSymbol][]float64
	transitions []Transition
	nInputs     int
	inputs      map[InputSymbol][]float64
	inSet       func(Box) []StateSymbol
}

func (g *fakeGrid) ConcreteOf(q StateSymbol) ([]float64, bool) {
	x, ok := g.concrete[q]
	return x, ok
}
func (g *fakeGrid) AbstractOf(x []float64) (StateSymbol, bool) {
	for q, c := range g.concrete {
		if len(c) == len(x) {
			match := true
			for i := range c {
				if c[i] != x[i] {
					match = false
					break
				}
			}
			if match {
				return q, true
			}
		}
	}
	return 0, false
}
func (g *fakeGrid) StatesInSet(b Box) []StateSymbol {
	if g.inSet != nil {
		return g.inSet(b)
	}
	return nil
}
func (g *fakeGrid) EnumTransitions() []Transition { return g.transitions }
func (g *fakeGrid) NInputs() int                  { return g.nInputs }
func (g *fakeGrid) EnumInputs() []InputSymbol {
	out := make([]InputSymbol, g.nInputs)
	for i := range out {
		out[i] = InputSymbol(i + 1)
	}
	return out
}
func (g *fakeGrid) ConcreteInput(u InputSymbol) ([]float64, bool) {
	x, ok := g.inputs[u]
	return x, ok
}
func (g *fakeGrid) AbstractInput(u []float64) (InputSymbol, bool) { return 0, false }

var _ GridSpace = (*fakeGrid)(nil)

// TestIntraModeTransitions_ActiveClockAdvancesOneTimeIndex exercises one
// spatial transition (q=1,u=1)->q'=2 against a three-entry clock grid
// (tsteps=[0,1,2]). Expected intra-mode triples: ((2,2,1),(1,1,1),1) and
// ((2,3,1),(1,2,1),1); no triple with source time index 3 (the terminal
// index has no outgoing intra-mode transition).
func TestIntraModeTransitions_ActiveClockAdvancesOneTimeIndex(t *testing.T) {
	grid := &fakeGrid{
		transitions: []Transition{{Source: 1, Target: 2, Input: 1}},
		nInputs:     1,
	}
	clock := NewClockModel(ClockSpec{Active: true, Horizon: 2, Dt: 1})
	inputs := BuildGlobalInputMap([]ModeID{1}, map[ModeID]int{1: 1}, &fakeSwitchSystem{})

	got := buildIntraModeTransitions(1, grid, clock, inputs)

	want := []Triple{
		{SourceAug: AugmentedState{Q: 1, T: 1, K: 1}, TargetAug: AugmentedState{Q: 2, T: 2, K: 1}, Input: 1},
		{SourceAug: AugmentedState{Q: 1, T: 2, K: 1}, TargetAug: AugmentedState{Q: 2, T: 3, K: 1}, Input: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d triples, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("triple[%d] = %+v, want %+v", i, got[i], w)
		}
	}
	for _, tr := range got {
		if tr.SourceAug.T == 3 {
			t.Errorf("unexpected triple with source time index 3: %+v", tr)
		}
	}
}

// TestIntraModeTransitions_Frozen exercises the |tsteps|==1 branch: one
// triple at clock index 1 regardless of mode size.
func TestIntraModeTransitions_Frozen(t *testing.T) {
	grid := &fakeGrid{
		transitions: []Transition{{Source: 1, Target: 2, Input: 1}},
		nInputs:     1,
	}
	clock := NewClockModel(ClockSpec{Active: false})
	inputs := BuildGlobalInputMap([]ModeID{1}, map[ModeID]int{1: 1}, &fakeSwitchSystem{})

	got := buildIntraModeTransitions(1, grid, clock, inputs)
	want := Triple{SourceAug: AugmentedState{Q: 1, T: 1, K: 1}, TargetAug: AugmentedState{Q: 2, T: 1, K: 1}, Input: 1}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("got %+v, want [%+v]", got, want)
	}
}

// fakeGuardSystem is a minimal HybridSystem used to drive the switching
// transition builder directly.
type fakeGuardSystem struct {
	transitions []TransitionID
	source      map[TransitionID]ModeID
	target      map[TransitionID]ModeID
	guard       map[TransitionID]Guard
	reset       map[TransitionID]ResetMap
}

func (f *fakeGuardSystem) Modes() []ModeID                        { return nil }
func (f *fakeGuardSystem) Mode(ModeID) (DynamicsSystem, ClockSpec) { return nil, ClockSpec{} }
func (f *fakeGuardSystem) Transitions() []TransitionID            { return f.transitions }
func (f *fakeGuardSystem) Source(tid TransitionID) ModeID          { return f.source[tid] }
func (f *fakeGuardSystem) Target(tid TransitionID) ModeID          { return f.target[tid] }
func (f *fakeGuardSystem) Guard(tid TransitionID) Guard            { return f.guard[tid] }
func (f *fakeGuardSystem) Reset(tid TransitionID) ResetMap         { return f.reset[tid] }

var _ HybridSystem = (*fakeGuardSystem)(nil)

// unsupportedGuard never resolves to a Box.
type unsupportedGuard struct{}

func (unsupportedGuard) AsBox() (Box, bool) { return Box{}, false }

// TestSwitchingTransitions_GuardOverlapResetsIntoTargetMode covers two
// modes with a frozen clock and one switching transition with an
// identity reset whose guard fully contains state 2 of mode 1.
func TestSwitchingTransitions_GuardOverlapResetsIntoTargetMode(t *testing.T) {
	grid1 := &fakeGrid{
		concrete: map[StateSymbol][]float64{1: {0.25}, 2: {0.75}},
		nInputs:  1,
		inSet: func(b Box) []StateSymbol {
			// Cell 2 spans [0.5,1.0] and is fully contained in [0.5,1.0].
			if b.Lo[0] <= 0.5 && b.Hi[0] >= 1.0 {
				return []StateSymbol{2}
			}
			return nil
		},
	}
	grid2 := &fakeGrid{
		concrete: map[StateSymbol][]float64{1: {0.25}, 2: {0.75}},
		nInputs:  1,
	}
	grids := map[ModeID]GridSpace{1: grid1, 2: grid2}
	clock1 := NewClockModel(ClockSpec{Active: false})
	clock2 := NewClockModel(ClockSpec{Active: false})
	clocks := map[ModeID]*ClockModel{1: clock1, 2: clock2}

	sys := &fakeGuardSystem{
		transitions: []TransitionID{1},
		source:      map[TransitionID]ModeID{1: 1},
		target:      map[TransitionID]ModeID{1: 2},
		guard:       map[TransitionID]Guard{1: Box{Lo: []float64{0.5, 0}, Hi: []float64{1.0, 0}}},
		reset:       map[TransitionID]ResetMap{1: func(xi []float64) []float64 { return xi }},
	}
	inputs := BuildGlobalInputMap(nil, nil, sys)
	diag := newBuildDiagnostics(defaultOptions().logger)

	triples, err := buildSwitchingTransitions(sys, grids, clocks, inputs, diag, DropOnBoundary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(triples) != 1 {
		t.Fatalf("got %d triples, want 1: %+v", len(triples), triples)
	}
	want := Triple{
		SourceAug: AugmentedState{Q: 2, T: 1, K: 1},
		TargetAug: AugmentedState{Q: 2, T: 1, K: 2},
		Input:     inputs.GlobalIDOfSwitching(1),
	}
	if triples[0] != want {
		t.Errorf("triple = %+v, want %+v", triples[0], want)
	}
}

// TestSwitchingTransitions_UnsupportedGuardShapeAborts checks that an
// unsupported guard shape aborts the build with UnsupportedGuardShape
// naming the offending transition.
func TestSwitchingTransitions_UnsupportedGuardShapeAborts(t *testing.T) {
	sys := &fakeGuardSystem{
		transitions: []TransitionID{7},
		source:      map[TransitionID]ModeID{7: 1},
		target:      map[TransitionID]ModeID{7: 2},
		guard:       map[TransitionID]Guard{7: unsupportedGuard{}},
		reset:       map[TransitionID]ResetMap{7: func(xi []float64) []float64 { return xi }},
	}
	inputs := BuildGlobalInputMap(nil, nil, sys)
	diag := newBuildDiagnostics(defaultOptions().logger)

	_, err := buildSwitchingTransitions(sys, map[ModeID]GridSpace{}, map[ModeID]*ClockModel{}, inputs, diag, DropOnBoundary)
	if err == nil {
		t.Fatal("expected an error for unsupported guard shape")
	}
	var be *BuildError
	collector, ok := err.(*ErrorCollector)
	if !ok {
		t.Fatalf("error is %T, want *ErrorCollector", err)
	}
	if len(collector.Errors()) != 1 {
		t.Fatalf("got %d errors, want 1", len(collector.Errors()))
	}
	be, ok = collector.Errors()[0].(*BuildError)
	if !ok {
		t.Fatalf("error is %T, want *BuildError", collector.Errors()[0])
	}
	if be.Kind != ErrUnsupportedGuardShape {
		t.Errorf("Kind = %v, want ErrUnsupportedGuardShape", be.Kind)
	}
	if be.Trans == nil || *be.Trans != 7 {
		t.Errorf("Trans = %v, want 7", be.Trans)
	}
}

// TestSwitchingTransitions_OutOfGridResetDropped checks that a reset
// sending guard points outside the target grid emits no triple, and
// that the build still succeeds.
func TestSwitchingTransitions_OutOfGridResetDropped(t *testing.T) {
	grid1 := &fakeGrid{
		concrete: map[StateSymbol][]float64{1: {0.25}},
		nInputs:  1,
		inSet: func(b Box) []StateSymbol {
			return []StateSymbol{1}
		},
	}
	grid2 := &fakeGrid{
		concrete: map[StateSymbol][]float64{1: {0.25}}, // [0,1] domain; 1.5 is out of range
		nInputs:  1,
	}
	grids := map[ModeID]GridSpace{1: grid1, 2: grid2}
	clocks := map[ModeID]*ClockModel{
		1: NewClockModel(ClockSpec{Active: false}),
		2: NewClockModel(ClockSpec{Active: false}),
	}

	sys := &fakeGuardSystem{
		transitions: []TransitionID{1},
		source:      map[TransitionID]ModeID{1: 1},
		target:      map[TransitionID]ModeID{1: 2},
		guard:       map[TransitionID]Guard{1: Box{Lo: []float64{0, 0}, Hi: []float64{1, 0}}},
		reset:       map[TransitionID]ResetMap{1: func(xi []float64) []float64 { return []float64{1.5, xi[len(xi)-1]} }},
	}
	inputs := BuildGlobalInputMap(nil, nil, sys)
	diag := newBuildDiagnostics(defaultOptions().logger)

	triples, err := buildSwitchingTransitions(sys, grids, clocks, inputs, diag, DropOnBoundary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(triples) != 0 {
		t.Fatalf("got %d triples, want 0: %+v", len(triples), triples)
	}
	if diag.dropped != 1 {
		t.Errorf("dropped = %d, want 1", diag.dropped)
	}
}
