package thsa

// buildIntraModeTransitions forms the Cartesian product of a mode's
// spatial transitions with its clock advance. Spatial transitions are
// independent of the clock index and are lifted into the product; the
// terminal clock index has no outgoing intra-mode transition (switching
// is the only way out).
func buildIntraModeTransitions(k ModeID, grid GridSpace, clock *ClockModel, inputs *GlobalInputMap) []Triple {
	var out []Triple
	l := clock.Len()

	for _, tr := range grid.EnumTransitions() {
		g := inputs.GlobalIDOfContinuous(k, tr.Input)
		if g == 0 {
			continue
		}
		if l == 1 {
			out = append(out, Triple{
				SourceAug: AugmentedState{Q: tr.Source, T: 1, K: k},
				TargetAug: AugmentedState{Q: tr.Target, T: 1, K: k},
				Input:     g,
			})
			continue
		}
		for i := 1; i < l; i++ {
			out = append(out, Triple{
				SourceAug: AugmentedState{Q: tr.Source, T: TimeIndex(i), K: k},
				TargetAug: AugmentedState{Q: tr.Target, T: TimeIndex(i + 1), K: k},
				Input:     g,
			})
		}
	}
	return out
}

// buildSwitchingTransitions handles each hybrid transition in turn:
// split its guard into spatial/temporal projections, enumerate the
// source symbols and time indices the guard admits, apply the reset map
// at the concrete level, and re-abstract the image in the target mode.
// Reset images that land outside the target grid or target clock are
// dropped per the configured BoundaryPolicy.
func buildSwitchingTransitions(sys HybridSystem, grids map[ModeID]GridSpace, clocks map[ModeID]*ClockModel, inputs *GlobalInputMap, diag *buildDiagnostics, policy BoundaryPolicy) ([]Triple, error) {
	collector := NewErrorCollector()
	var out []Triple

	for _, tid := range sys.Transitions() {
		ks := sys.Source(tid)
		kt := sys.Target(tid)
		guard := sys.Guard(tid)
		reset := sys.Reset(tid)

		box, ok := guard.AsBox()
		if !ok {
			collector.Add(newBuildError(ErrUnsupportedGuardShape,
				"transition %d guard is not an axis-aligned box", tid).withTrans(tid))
			continue
		}

		srcGrid := grids[ks]
		tgtGrid := grids[kt]
		srcClock := clocks[ks]
		tgtClock := clocks[kt]

		spatialGuard := box.Spatial()
		tMin, tMax := box.Temporal()

		qs := srcGrid.StatesInSet(spatialGuard)
		ts := srcClock.IndicesInInterval(tMin, tMax)

		g := inputs.GlobalIDOfSwitching(tid)

		for _, q := range qs {
			xq, ok := srcGrid.ConcreteOf(q)
			if !ok {
				continue
			}
			for _, i := range ts {
				tau, ok := srcClock.TimeAt(i)
				if !ok {
					continue
				}
				xi := append(append([]float64{}, xq...), tau)
				ximg := reset(xi)
				if len(ximg) == 0 {
					continue
				}
				xPrime := ximg[:len(ximg)-1]
				tauPrime := ximg[len(ximg)-1]

				qPrime, ok := tgtGrid.AbstractOf(xPrime)
				if !ok && policy == SnapInward {
					qPrime, ok = tgtGrid.AbstractOf(nudgeInward(xPrime))
				}
				if !ok {
					diag.droppedBoundary(tid, q, i)
					continue
				}
				iPrime := tgtClock.IntOfTime(tauPrime)
				if iPrime == 0 {
					diag.droppedBoundary(tid, q, i)
					continue
				}

				out = append(out, Triple{
					SourceAug: AugmentedState{Q: q, T: i, K: ks},
					TargetAug: AugmentedState{Q: qPrime, T: iPrime, K: kt},
					Input:     g,
				})
			}
		}
	}

	if collector.HasErrors() {
		return nil, collector.ToError()
	}
	return out, nil
}

// nudgeInward is used by BoundaryPolicy SnapInward: it nudges a point
// exactly on a cell boundary a negligible amount toward the origin,
// giving AbstractOf a second chance to resolve it to an interior cell
// rather than dropping the transition.
func nudgeInward(x []float64) []float64 {
	const eps = 1e-9
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v - eps
	}
	return out
}
