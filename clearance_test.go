package turndb

import(
	"math"
	"testing"

	"github.com/ctessum/geom"
)

func squareBoundary(x0, y0, x1, y1 float64) geom.Polygon {
	return geom.Polygon{{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	}}
}

// A straight 40m run, so the envelope is an exact rectangle and the outside
// area is computable by hand.
func straightRun(t *testing.T) SampledPath {
	return sampleOrDie(t, Pose{0, 0, 0}, Pose{40, 0, 0}, 10.0, 1.0)
}

func TestEnvelopeShape(t *testing.T) {
	sp := straightRun(t)
	vp := VehicleProfile{WidthM: 6.0} // no buffers; half-width exactly 3

	env := Envelope(sp, vp)
	if len(env) != 1 {
		t.Fatalf("envelope has %d rings, want 1", len(env))
	}
	if got, want := math.Abs(env.Area()), 40.0*6.0; math.Abs(got-want) > 1e-6 {
		t.Errorf("envelope area %f, want %f", got, want)
	}
}

func TestEnvelopeBuffersExtendEnds(t *testing.T) {
	sp := straightRun(t)
	vp := VehicleProfile{WidthM: 6.0, FrontBufferM: 2.0, RearBufferM: 1.0}

	env := Envelope(sp, vp)
	if got, want := math.Abs(env.Area()), 43.0*6.0; math.Abs(got-want) > 1e-6 {
		t.Errorf("buffered envelope area %f, want %f", got, want)
	}
}

func TestValidateContained(t *testing.T) {
	sp := straightRun(t)
	vp := VehicleProfile{WidthM: 6.0, SideBufferM: 0.5}

	cr := Validate(sp, vp, squareBoundary(-10, -10, 50, 10))
	if !cr.VehicleEnvelopeOK {
		t.Errorf("contained envelope flagged outside: %+v", cr)
	}
	if cr.OutsideAreaSqm > 1e-6 {
		t.Errorf("contained envelope has outside area %f", cr.OutsideAreaSqm)
	}
}

func TestValidateProtrusion(t *testing.T) {
	sp := straightRun(t)
	vp := VehicleProfile{WidthM: 6.0} // corridor spans y in [-3,3]

	// Boundary only spans y in [-2,2]: 1m sticks out each side along all 40m.
	cr := Validate(sp, vp, squareBoundary(0, -2, 40, 2))
	if cr.VehicleEnvelopeOK {
		t.Errorf("protruding envelope passed: %+v", cr)
	}
	if want := 80.0; math.Abs(cr.OutsideAreaSqm-want) > 1e-3 {
		t.Errorf("outside area %f, want %f", cr.OutsideAreaSqm, want)
	}
}

func TestValidateMonotonicInSideBuffer(t *testing.T) {
	sp := straightRun(t)
	boundary := squareBoundary(0, -2, 40, 2)

	prev := -1.0
	for _, buf := range []float64{0, 0.5, 1.0, 2.0} {
		vp := VehicleProfile{WidthM: 6.0, SideBufferM: buf}
		cr := Validate(sp, vp, boundary)
		if cr.OutsideAreaSqm < prev {
			t.Errorf("side buffer %f: outside area %f shrank below %f",
				buf, cr.OutsideAreaSqm, prev)
		}
		prev = cr.OutsideAreaSqm
	}
}

func TestValidateDeterministic(t *testing.T) {
	sp := sampleOrDie(t, dtEntry, dtExit, 10.0, 1.0)
	vp := VehicleProfile{WidthM: 6.0, SideBufferM: 0.5}
	boundary := squareBoundary(-20, -20, 70, 70)

	cr1 := Validate(sp, vp, boundary)
	cr2 := Validate(sp, vp, boundary)
	if cr1 != cr2 {
		t.Errorf("reruns disagree: %+v vs %+v", cr1, cr2)
	}
}
