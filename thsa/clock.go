package thsa

import "math"

// clockTolerance is the absolute tolerance ε used by IntOfTime's
// approximate match.
const clockTolerance = 1e-7

// ClockModel is the finite uniform time-grid of one mode: an ordered
// sequence tsteps[0..L] with constant step Δt, or a single-element,
// frozen sequence when the mode's clock is not active.
type ClockModel struct {
	tsteps   []float64
	isActive bool
}

// NewClockModel builds the clock grid described by spec. A non-active
// spec always yields the degenerate, one-element grid regardless of
// Horizon/Dt.
func NewClockModel(spec ClockSpec) *ClockModel {
	if !spec.Active || spec.Dt <= 0 {
		return &ClockModel{tsteps: []float64{0}, isActive: false}
	}
	l := int(spec.Horizon/spec.Dt + 0.5)
	tsteps := make([]float64, l+1)
	for i := 0; i <= l; i++ {
		tsteps[i] = float64(i) * spec.Dt
	}
	return &ClockModel{tsteps: tsteps, isActive: true}
}

// IsActive reports whether the clock is non-degenerate.
func (c *ClockModel) IsActive() bool { return c.isActive }

// Len returns |tsteps|.
func (c *ClockModel) Len() int { return len(c.tsteps) }

// TimeAt returns tsteps[i-1] for the 1-based index i.
func (c *ClockModel) TimeAt(i TimeIndex) (float64, bool) {
	if i < 1 || int(i) > len(c.tsteps) {
		return 0, false
	}
	return c.tsteps[i-1], true
}

// IntOfTime returns the index whose tsteps entry matches τ within
// clockTolerance, or otherwise the index minimizing |τ - tsteps[i]|.
// When the clock is frozen, every query returns index 1.
func (c *ClockModel) IntOfTime(tau float64) TimeIndex {
	if !c.isActive {
		return 1
	}
	best := 0
	bestDist := math.Inf(1)
	for i, t := range c.tsteps {
		d := math.Abs(t - tau)
		if d < clockTolerance {
			return TimeIndex(i + 1)
		}
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return TimeIndex(best + 1)
}

// FloorInt returns the largest index i with tsteps[i-1] <= τ.
func (c *ClockModel) FloorInt(tau float64) TimeIndex {
	if !c.isActive {
		return 1
	}
	if tau < c.tsteps[0] {
		return 0
	}
	idx := 1
	for i, t := range c.tsteps {
		if t <= tau {
			idx = i + 1
		}
	}
	return TimeIndex(idx)
}

// CeilInt returns the smallest index i with tsteps[i-1] >= τ.
func (c *ClockModel) CeilInt(tau float64) TimeIndex {
	if !c.isActive {
		return 1
	}
	for i, t := range c.tsteps {
		if t >= tau {
			return TimeIndex(i + 1)
		}
	}
	return 0
}

// IndicesInInterval returns, in increasing order, every index i with
// tMin <= tsteps[i-1] <= tMax. When the clock is frozen, returns [1] iff
// the interval contains 0.
func (c *ClockModel) IndicesInInterval(tMin, tMax float64) []TimeIndex {
	if !c.isActive {
		if tMin <= 0 && 0 <= tMax {
			return []TimeIndex{1}
		}
		return nil
	}
	var out []TimeIndex
	for i, t := range c.tsteps {
		if t >= tMin && t <= tMax {
			out = append(out, TimeIndex(i+1))
		}
	}
	return out
}
