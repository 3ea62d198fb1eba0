package thsa

// validationRule checks one invariant of a BuildConfig against the
// hybrid system it will be used to abstract: a small set of composable
// checks run before construction rather than one monolithic function.
type validationRule func(sys HybridSystem, cfg BuildConfig) error

func validateModesConfigured(sys HybridSystem, cfg BuildConfig) error {
	for _, k := range sys.Modes() {
		if _, ok := cfg.Modes[k]; !ok {
			return newBuildError(ErrInvalidConfiguration, "missing BuildConfig entry for mode %d", k).withMode(k)
		}
	}
	return nil
}

func validateDiscretizationSteps(sys HybridSystem, cfg BuildConfig) error {
	for k, mc := range cfg.Modes {
		if mc.Dx <= 0 {
			return newBuildError(ErrInvalidConfiguration, "mode %d: dx must be positive", k).withMode(k)
		}
		if mc.Du <= 0 {
			return newBuildError(ErrInvalidConfiguration, "mode %d: du must be positive", k).withMode(k)
		}
		if mc.Clock.Active && mc.Clock.Dt <= 0 {
			return newBuildError(ErrInvalidConfiguration, "mode %d: dt must be positive for an active clock", k).withMode(k)
		}
	}
	return nil
}

func validateGrowthBoundShapes(sys HybridSystem, cfg BuildConfig) error {
	for _, k := range sys.Modes() {
		mc, ok := cfg.Modes[k]
		if !ok {
			continue
		}
		dynSys, _ := sys.Mode(k)
		n := dynSys.StateDim()
		if mc.GrowthBound.Matrix == nil {
			return newBuildError(ErrInvalidConfiguration, "mode %d: growth bound matrix is required", k).withMode(k)
		}
		r, c := mc.GrowthBound.Matrix.Dims()
		if r != n || c != n {
			return newBuildError(ErrInvalidConfiguration,
				"mode %d: growth bound has shape (%d,%d), want (%d,%d)", k, r, c, n, n).withMode(k)
		}
	}
	return nil
}

var buildConfigRules = []validationRule{
	validateModesConfigured,
	validateDiscretizationSteps,
	validateGrowthBoundShapes,
}

// validateBuildConfig runs every registered rule, collecting every
// violation rather than stopping at the first.
func validateBuildConfig(sys HybridSystem, cfg BuildConfig) error {
	collector := NewErrorCollector()
	for _, rule := range buildConfigRules {
		collector.Add(rule(sys, cfg))
	}
	return collector.ToError()
}
