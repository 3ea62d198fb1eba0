package thsa

import (
	"fmt"
	"sort"
)

// InputKind tags the classification of a global input id, per the
// Design Notes' "tagged variants over dynamic typing."
type InputKind int

const (
	InvalidInput InputKind = iota
	ContinuousInput
	SwitchingInput
)

// InputClass is the decoded meaning of a global input id: either a
// per-mode continuous control, a switching event, or invalid.
type InputClass struct {
	Kind  InputKind
	Mode  ModeID
	Local InputSymbol
	Trans TransitionID
}

// continuousKey is the private map key for a (mode, local input) pair.
type continuousKey struct {
	mode  ModeID
	local InputSymbol
}

// GlobalInputMap is the bijective numbering merging every mode's
// continuous inputs and the hybrid automaton's switching transitions
// into one contiguous global input id space: continuous ids first, then
// switching ids.
type GlobalInputMap struct {
	contToGlobal map[continuousKey]GlobalInputID
	globalToCont map[GlobalInputID]continuousKey

	transToGlobal map[TransitionID]GlobalInputID
	globalToTrans map[GlobalInputID]TransitionID

	labels map[GlobalInputID]string

	nContinuous int
	nSwitching  int
}

// BuildGlobalInputMap runs the two-phase construction: modes in
// ascending id order get contiguous continuous-id blocks sized by
// nInputs[k], then transitions in their natural enumeration order get
// the remaining ids.
func BuildGlobalInputMap(modes []ModeID, nInputs map[ModeID]int, sys HybridSystem) *GlobalInputMap {
	m := &GlobalInputMap{
		contToGlobal:  make(map[continuousKey]GlobalInputID),
		globalToCont:  make(map[GlobalInputID]continuousKey),
		transToGlobal: make(map[TransitionID]GlobalInputID),
		globalToTrans: make(map[GlobalInputID]TransitionID),
		labels:        make(map[GlobalInputID]string),
	}

	ordered := append([]ModeID{}, modes...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	next := GlobalInputID(1)
	for _, k := range ordered {
		n := nInputs[k]
		for local := 1; local <= n; local++ {
			key := continuousKey{mode: k, local: InputSymbol(local)}
			m.contToGlobal[key] = next
			m.globalToCont[next] = key
			next++
		}
	}
	m.nContinuous = int(next) - 1

	for _, tid := range sys.Transitions() {
		m.transToGlobal[tid] = next
		m.globalToTrans[next] = tid
		m.labels[next] = fmt.Sprintf("SWITCH %d -> %d", sys.Source(tid), sys.Target(tid))
		next++
	}
	m.nSwitching = int(next) - 1 - m.nContinuous

	return m
}

// GlobalIDOfContinuous returns the global id for (mode, local), or 0 if
// not found.
func (m *GlobalInputMap) GlobalIDOfContinuous(mode ModeID, local InputSymbol) GlobalInputID {
	return m.contToGlobal[continuousKey{mode: mode, local: local}]
}

// GlobalIDOfSwitching returns the global id for a transition, or 0 if
// not found.
func (m *GlobalInputMap) GlobalIDOfSwitching(tid TransitionID) GlobalInputID {
	return m.transToGlobal[tid]
}

// Classify decides, in O(1) via map lookups, what g represents.
func (m *GlobalInputMap) Classify(g GlobalInputID) InputClass {
	if key, ok := m.globalToCont[g]; ok {
		return InputClass{Kind: ContinuousInput, Mode: key.mode, Local: key.local}
	}
	if tid, ok := m.globalToTrans[g]; ok {
		return InputClass{Kind: SwitchingInput, Trans: tid}
	}
	return InputClass{Kind: InvalidInput}
}

// IsContinuous reports whether g is a continuous input id.
func (m *GlobalInputMap) IsContinuous(g GlobalInputID) bool {
	_, ok := m.globalToCont[g]
	return ok
}

// IsSwitching reports whether g is a switching input id.
func (m *GlobalInputMap) IsSwitching(g GlobalInputID) bool {
	_, ok := m.globalToTrans[g]
	return ok
}

// Label returns the human-readable "SWITCH src -> tgt" label for a
// switching global id, or "" if g is not one.
func (m *GlobalInputMap) Label(g GlobalInputID) string { return m.labels[g] }

// NContinuous returns |continuous_range|.
func (m *GlobalInputMap) NContinuous() int { return m.nContinuous }

// NSwitching returns |switching_range|.
func (m *GlobalInputMap) NSwitching() int { return m.nSwitching }

// Total returns the total input count, |continuous_range|+|switching_range|.
func (m *GlobalInputMap) Total() int { return m.nContinuous + m.nSwitching }
