package deflection

import (
	"fmt"
	"math"
)

// DefaultFacetCount is the facet hint returned when a custom lattice is
// supplied but carries no control points at all. It is not derived
// from any first-principles formula; it exists purely as a documented,
// named fallback rather than a bare literal buried in Lattice.Query.
const DefaultFacetCount = 6

const (
	defaultBaselineSectionWidthMm    = 20.0
	defaultMinimumPerimeterFacets    = 3
	defaultMaximumPerimeterFacets    = 1000
	defaultCriticalSlenderness       = 5.0
	defaultMaxLinearDeflectionRatio  = 1.5
	defaultMaxAngularDeflectionRatio = 1.5 * math.Pi
	forTargetFacetCriticalSlenderness = 10.0
)

// Settings bundles every tunable of the deflection policy. Build one
// with NewSettings or a convenience constructor; the zero value is not
// meaningful.
type Settings struct {
	baselineSectionWidthMm     float64
	minimumPerimeterFacets     int
	maximumPerimeterFacets     int
	criticalSlenderness        float64
	maxLinearDeflectionRatio   float64
	maxAngularDeflectionRadians float64
	customStrategy             *Lattice
}

// SettingsOption mutates a Settings during construction.
type SettingsOption func(*Settings)

// WithBaselineSectionWidthMm overrides the section width, in
// millimetres, against which the default (non-lattice) facet formula
// scales.
func WithBaselineSectionWidthMm(mm float64) SettingsOption {
	return func(s *Settings) { s.baselineSectionWidthMm = mm }
}

// WithPerimeterFacetBounds overrides the [min, max] clamp applied to
// the derived target facet count.
func WithPerimeterFacetBounds(min, max int) SettingsOption {
	return func(s *Settings) {
		s.minimumPerimeterFacets = min
		s.maximumPerimeterFacets = max
	}
}

// WithCriticalSlenderness overrides the slenderness ratio below which
// Compute returns the caller's defaults unchanged.
func WithCriticalSlenderness(v float64) SettingsOption {
	return func(s *Settings) { s.criticalSlenderness = v }
}

// WithMaxDeflectionRatios overrides the hard clamps applied to the
// derived linear (as a multiple of the section radius) and angular (in
// radians) tolerances.
func WithMaxDeflectionRatios(linearRatio, angularRadians float64) SettingsOption {
	return func(s *Settings) {
		s.maxLinearDeflectionRatio = linearRatio
		s.maxAngularDeflectionRadians = angularRadians
	}
}

// NewSettings builds a Settings from the package defaults, then applies
// opts in order.
func NewSettings(opts ...SettingsOption) Settings {
	s := Settings{
		baselineSectionWidthMm:     defaultBaselineSectionWidthMm,
		minimumPerimeterFacets:     defaultMinimumPerimeterFacets,
		maximumPerimeterFacets:     defaultMaximumPerimeterFacets,
		criticalSlenderness:        defaultCriticalSlenderness,
		maxLinearDeflectionRatio:   defaultMaxLinearDeflectionRatio,
		maxAngularDeflectionRadians: defaultMaxAngularDeflectionRatio,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// ForTargetFacetCount builds a Settings whose minimum perimeter facet
// count is target, so a slender shape whose section is no wider than
// baselineMm gets exactly target facets and a wider one proportionally
// more, with a critical slenderness relaxed to 10 relative to
// NewSettings' default of 5 (a target facet count is a stronger
// commitment than a mere baseline, so it only engages on genuinely
// slender runs). opts may override any field, including
// criticalSlenderness itself and maximumPerimeterFacets, except the
// minimum perimeter facet count, which is always set to target.
func ForTargetFacetCount(target int, baselineMm float64, opts ...SettingsOption) (Settings, error) {
	s := Settings{
		baselineSectionWidthMm:      baselineMm,
		minimumPerimeterFacets:      defaultMinimumPerimeterFacets,
		maximumPerimeterFacets:      defaultMaximumPerimeterFacets,
		criticalSlenderness:         forTargetFacetCriticalSlenderness,
		maxLinearDeflectionRatio:    defaultMaxLinearDeflectionRatio,
		maxAngularDeflectionRadians: defaultMaxAngularDeflectionRatio,
	}
	for _, opt := range opts {
		opt(&s)
	}

	if target < 3 {
		return Settings{}, fmt.Errorf("deflection: target facet count must be >= 3, got %d", target)
	}
	if baselineMm <= 0 {
		return Settings{}, fmt.Errorf("deflection: baseline section width must be > 0, got %v", baselineMm)
	}
	if s.maximumPerimeterFacets < target {
		return Settings{}, fmt.Errorf("deflection: maximum perimeter facets (%d) must be >= target (%d)", s.maximumPerimeterFacets, target)
	}
	if s.criticalSlenderness <= 0 {
		return Settings{}, fmt.Errorf("deflection: critical slenderness must be > 0, got %v", s.criticalSlenderness)
	}

	s.minimumPerimeterFacets = target
	return s, nil
}

// WithCustomStrategy attaches a control-point lattice, leaving every
// other field at its default. Compose it with NewSettings, not
// ForTargetFacetCount, since a lattice and a fixed target facet count
// are alternative strategies for the same step.
func WithCustomStrategy(lattice Lattice) SettingsOption {
	return func(s *Settings) { s.customStrategy = &lattice }
}
