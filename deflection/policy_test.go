package deflection

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/xbimgo/meshkernel/vecmath"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeMatchesWorkedExtrusionExample(t *testing.T) {
	shape := SweptShape{
		Kind:    Extrusion,
		Profile: Rectangle{XDim: 10, YDim: 10},
		Depth:   300,
	}

	linear, angular := Compute(shape, 1.0, 0, 0, NewSettings())

	wantAngular := 4 * math.Pi / 3
	wantLinear := 5 * (1 - math.Cos(wantAngular/2))

	if !almostEqual(angular, wantAngular) {
		t.Errorf("angular = %v, want %v", angular, wantAngular)
	}
	if !almostEqual(linear, wantLinear) {
		t.Errorf("linear = %v, want %v", linear, wantLinear)
	}
	if !almostEqual(wantLinear, 7.5) {
		t.Fatalf("test arithmetic itself is wrong: %v != 7.5", wantLinear)
	}
}

func TestComputeReturnsDefaultsBelowCriticalSlenderness(t *testing.T) {
	shape := SweptShape{
		Kind:    Extrusion,
		Profile: Rectangle{XDim: 10, YDim: 10},
		Depth:   20, // slenderness 2, below default critical 5
	}

	linear, angular := Compute(shape, 1.0, 0.25, 0.1, NewSettings())

	if linear != 0.25 || angular != 0.1 {
		t.Errorf("got (%v, %v), want unchanged defaults (0.25, 0.1)", linear, angular)
	}
}

func TestComputeNeverRefinesBelowDefaults(t *testing.T) {
	shape := SweptShape{
		Kind:    Extrusion,
		Profile: Rectangle{XDim: 10, YDim: 10},
		Depth:   300,
	}

	linear, angular := Compute(shape, 1.0, 100, 100, NewSettings())

	if linear != 100 || angular != 100 {
		t.Errorf("got (%v, %v), defaults of 100 should have dominated", linear, angular)
	}
}

func TestComputeToleranceIsMonotonicInSweepLength(t *testing.T) {
	settings := NewSettings()
	lengths := []float64{6, 30, 100, 300, 1000}

	var prevLinear, prevAngular float64
	for i, length := range lengths {
		shape := SweptShape{
			Kind:    Extrusion,
			Profile: Rectangle{XDim: 10, YDim: 10},
			Depth:   length,
		}
		linear, angular := Compute(shape, 1.0, 0, 0, settings)

		if linear < 0 || angular < 0 {
			t.Fatalf("negative tolerance at length %v: (%v, %v)", length, linear, angular)
		}
		if i > 0 {
			if linear < prevLinear-1e-9 {
				t.Errorf("linear tolerance decreased from %v to %v as length grew from %v to %v", prevLinear, linear, lengths[i-1], length)
			}
			if angular < prevAngular-1e-9 {
				t.Errorf("angular tolerance decreased from %v to %v as length grew from %v to %v", prevAngular, angular, lengths[i-1], length)
			}
		}
		prevLinear, prevAngular = linear, angular
	}
}

func TestComputeUncomputableCurveBoundsReturnsDefaults(t *testing.T) {
	shape := SweptShape{
		Kind: Extrusion,
		Profile: ArbitraryClosedCurve{
			CurveID:       "broken",
			ComputeBounds: func() (vecmath.AABB, bool) { return vecmath.AABB{}, false },
		},
		Depth: 300,
	}

	linear, angular := Compute(shape, 1.0, 0.5, 0.2, NewSettings())

	if linear != 0.5 || angular != 0.2 {
		t.Errorf("got (%v, %v), want defaults (0.5, 0.2)", linear, angular)
	}
}

func TestPolicyCachesArbitraryCurveBounds(t *testing.T) {
	calls := 0
	shape := SweptShape{
		Kind: Extrusion,
		Profile: ArbitraryClosedCurve{
			CurveID: "curve-1",
			ComputeBounds: func() (vecmath.AABB, bool) {
				calls++
				return vecmath.AABB{Min: mgl64.Vec3{0, 0, 0}, Max: mgl64.Vec3{10, 10, 0}}, true
			},
		},
		Depth: 300,
	}

	policy := NewPolicy()
	settings := NewSettings()
	for i := 0; i < 5; i++ {
		policy.Compute(shape, 1.0, 0, 0, settings)
	}

	if calls != 1 {
		t.Errorf("ComputeBounds called %d times, want 1 (cached after first call)", calls)
	}
}

func TestPolicyCachesDirectrixArcLength(t *testing.T) {
	calls := 0
	shape := SweptShape{
		Kind:               SweptDiskSweep,
		Profile:            SweptDisk{Radius: 5},
		DirectrixCurveID:   "directrix-1",
		DirectrixArcLength: func() float64 { calls++; return 300 },
	}

	policy := NewPolicy()
	settings := NewSettings()
	for i := 0; i < 5; i++ {
		policy.Compute(shape, 1.0, 0, 0, settings)
	}

	if calls != 1 {
		t.Errorf("DirectrixArcLength called %d times, want 1 (cached after first call)", calls)
	}
}

func TestComputeBatchMatchesSequentialCompute(t *testing.T) {
	settings := NewSettings()
	items := make([]BatchItem, 0, 20)
	for i := 0; i < 20; i++ {
		items = append(items, BatchItem{
			Shape: SweptShape{
				Kind:    Extrusion,
				Profile: Rectangle{XDim: 10, YDim: 10},
				Depth:   float64(50 + i*10),
			},
			UnitMm: 1.0,
		})
	}

	policy := NewPolicy()
	got := policy.ComputeBatch(items, settings, 4)

	for i, item := range items {
		wantLinear, wantAngular := policy.Compute(item.Shape, item.UnitMm, item.DefaultLinear, item.DefaultAngular, settings)
		if got[i].Linear != wantLinear || got[i].Angular != wantAngular {
			t.Errorf("item %d: batch gave (%v, %v), sequential gave (%v, %v)", i, got[i].Linear, got[i].Angular, wantLinear, wantAngular)
		}
	}
}
