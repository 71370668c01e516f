// Package deflection implements the dynamic-deflection policy: given a
// swept solid's cross-section and sweep length, it derives how many
// perimeter facets the tessellator should target and the pair of
// linear/angular deflection tolerances that follow from that facet
// count, never finer than the model's own defaults.
package deflection

import (
	"log/slog"
	"math"
	"sync"

	"github.com/xbimgo/meshkernel/vecmath"
)

// Logger is the minimal logging surface the policy needs. *slog.Logger
// satisfies it directly.
type Logger interface {
	Warn(msg string, args ...any)
}

// Policy holds the two caches the deflection procedure is allowed to
// keep: computed curve bounding boxes and directrix arc lengths, both
// keyed by curve id. It is safe for concurrent use; every exported
// method may be called from multiple goroutines at once.
type Policy struct {
	logger Logger

	mu           sync.RWMutex
	curveBounds  map[string]vecmath.AABB
	curveLengths map[string]float64
}

// NewPolicy creates a Policy with empty caches, logging to
// slog.Default() unless overridden with WithLogger.
func NewPolicy(opts ...PolicyOption) *Policy {
	p := &Policy{
		logger:       slog.Default(),
		curveBounds:  make(map[string]vecmath.AABB),
		curveLengths: make(map[string]float64),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PolicyOption configures a Policy at construction.
type PolicyOption func(*Policy)

// WithLogger overrides the policy's logger.
func WithLogger(logger Logger) PolicyOption {
	return func(p *Policy) { p.logger = logger }
}

// Compute is the package-level convenience form of Policy.Compute: it
// builds a throwaway Policy with no cross-call caching. Callers that
// process many shapes sharing curve ids (arbitrary profiles,
// swept-disk directrices) should construct one Policy with NewPolicy
// and reuse it instead.
func Compute(shape SweptShape, unitMm, defaultLinear, defaultAngular float64, settings Settings) (linear, angular float64) {
	return NewPolicy().Compute(shape, unitMm, defaultLinear, defaultAngular, settings)
}

// Compute implements the seven-step dynamic-deflection procedure.
func (p *Policy) Compute(shape SweptShape, unitMm, defaultLinear, defaultAngular float64, settings Settings) (linear, angular float64) {
	width, height, ok := p.sectionDimensions(shape)
	if !ok {
		p.logger.Warn("deflection: profile kind unknown or section dimensions uncomputable, using defaults")
		return defaultLinear, defaultAngular
	}
	minDim := math.Min(width, height)
	if minDim <= 0 {
		p.logger.Warn("deflection: degenerate section (zero minimum dimension), using defaults")
		return defaultLinear, defaultAngular
	}

	length := p.sweepLength(shape)
	slenderness := length / minDim
	if slenderness < settings.criticalSlenderness {
		return defaultLinear, defaultAngular
	}

	minDimMm := minDim * unitMm
	target := p.targetFacetCount(minDimMm, slenderness, settings)

	angularRadians := 4 * math.Pi / float64(target)
	r := minDim / 2
	linearTolerance := r * (1 - math.Cos(angularRadians/2))

	maxLinear := r * settings.maxLinearDeflectionRatio
	if linearTolerance > maxLinear {
		linearTolerance = maxLinear
	}
	if angularRadians > settings.maxAngularDeflectionRadians {
		angularRadians = settings.maxAngularDeflectionRadians
	}

	return math.Max(linearTolerance, defaultLinear), math.Max(angularRadians, defaultAngular)
}

func (p *Policy) targetFacetCount(minDimMm, slenderness float64, settings Settings) int {
	var raw float64
	if settings.customStrategy != nil {
		raw = settings.customStrategy.Query(minDimMm, slenderness)
	} else {
		raw = float64(settings.minimumPerimeterFacets) * (minDimMm / settings.baselineSectionWidthMm)
	}

	clamped := raw
	if clamped < float64(settings.minimumPerimeterFacets) {
		clamped = float64(settings.minimumPerimeterFacets)
	}
	if clamped > float64(settings.maximumPerimeterFacets) {
		clamped = float64(settings.maximumPerimeterFacets)
	}
	target := int(math.Round(clamped))
	if target < 1 {
		target = 1
	}
	return target
}

func (p *Policy) sectionDimensions(shape SweptShape) (width, height float64, ok bool) {
	curve, isArbitrary := shape.Profile.(ArbitraryClosedCurve)
	if !isArbitrary {
		return shape.Profile.SectionDimensions()
	}

	p.mu.RLock()
	box, cached := p.curveBounds[curve.CurveID]
	p.mu.RUnlock()
	if !cached {
		var found bool
		box, found = curve.ComputeBounds()
		if !found {
			return 0, 0, false
		}
		p.mu.Lock()
		p.curveBounds[curve.CurveID] = box
		p.mu.Unlock()
	}
	size := box.Size()
	return size.X(), size.Y(), true
}

func (p *Policy) sweepLength(shape SweptShape) float64 {
	switch shape.Kind {
	case Extrusion:
		if shape.Depth != 0 {
			return math.Abs(shape.Depth)
		}
	case Revolution:
		if shape.RevolutionAngleRadians != 0 && shape.RevolutionRadius != 0 {
			return shape.RevolutionRadius * math.Abs(shape.RevolutionAngleRadians)
		}
	case SurfaceCurveSweep, FixedReferenceSweep:
		if shape.ParameterSpan != 0 {
			return math.Abs(shape.ParameterSpan)
		}
	case SweptDiskSweep:
		if shape.ParameterSpan != 0 {
			return math.Abs(shape.ParameterSpan)
		}
		if shape.DirectrixArcLength != nil {
			return p.cachedDirectrixLength(shape.DirectrixCurveID, shape.DirectrixArcLength)
		}
	}
	return shape.BoundingBox.Diagonal()
}

func (p *Policy) cachedDirectrixLength(curveID string, compute func() float64) float64 {
	p.mu.RLock()
	length, cached := p.curveLengths[curveID]
	p.mu.RUnlock()
	if cached {
		return length
	}
	length = compute()
	p.mu.Lock()
	p.curveLengths[curveID] = length
	p.mu.Unlock()
	return length
}
