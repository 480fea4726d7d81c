package turndb

import(
	"math"
	"testing"
)

func TestMinTurnRadius(t *testing.T) {
	// A big rigid hauler: 6.35m wheelbase, 32deg steering lock.
	vp := VehicleProfile{
		Name: "hauler", WidthM: 7.3, WheelbaseM: 6.35,
		MaxSteeringAngle: 32.0 * math.Pi / 180.0,
	}

	want := 6.35 / math.Tan(32.0*math.Pi/180.0) // ~10.16m
	if got := vp.MinTurnRadius(); math.Abs(got-want) > 1e-9 {
		t.Errorf("MinTurnRadius: got %f, want %f", got, want)
	}
	if got := vp.MinTurnRadius(); math.Abs(got-10.16) > 0.01 {
		t.Errorf("MinTurnRadius: got %f, want ~10.16", got)
	}
}

func TestHalfWidth(t *testing.T) {
	vp := VehicleProfile{WidthM: 6.0, SideBufferM: 0.75}
	if got := vp.HalfWidth(); math.Abs(got-3.75) > 1e-9 {
		t.Errorf("HalfWidth: got %f, want 3.75", got)
	}
}

func TestVehicleValidate(t *testing.T) {
	good := VehicleProfile{
		Name: "ok", WidthM: 6.0, WheelbaseM: 4.5,
		MaxSteeringAngle: 35.0 * math.Pi / 180.0,
		SideBufferM: 0.5, FrontBufferM: 1.0, RearBufferM: 1.0,
	}
	if err := good.Validate(); err != nil {
		t.Errorf("good profile rejected: %v", err)
	}

	bads := []VehicleProfile{}
	for _, mutate := range []func(*VehicleProfile){
		func(vp *VehicleProfile) { vp.WidthM = 0 },
		func(vp *VehicleProfile) { vp.WheelbaseM = -1 },
		func(vp *VehicleProfile) { vp.MaxSteeringAngle = 0 },
		func(vp *VehicleProfile) { vp.MaxSteeringAngle = math.Pi / 2 },
		func(vp *VehicleProfile) { vp.SideBufferM = -0.1 },
		func(vp *VehicleProfile) { vp.RearBufferM = -2 },
	} {
		vp := good
		mutate(&vp)
		bads = append(bads, vp)
	}

	for i, vp := range bads {
		if err := vp.Validate(); !IsInvalidArgument(err) {
			t.Errorf("bad profile %d accepted (%v)", i, err)
		}
	}
}
