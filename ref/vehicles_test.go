package ref

import(
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/openpit/turndb"
)

func TestBuiltinProfiles(t *testing.T) {
	vr := NewVehicleRegistry()

	for _, id := range vr.ProfileIDs() {
		vp, err := vr.Resolve(id)
		if err != nil {
			t.Errorf("builtin %q: %v", id, err)
		}
		if err := vp.Validate(); err != nil {
			t.Errorf("builtin %q fails validation: %v", id, err)
		}
	}

	if _, err := vr.Resolve("no-such-truck"); !turndb.IsNotFound(err) {
		t.Errorf("unknown id: got %v, want not-found", err)
	}
}

func TestFromParams(t *testing.T) {
	vp, err := FromParams(CustomParams{
		WidthM: 7.3, WheelbaseM: 6.35, MaxSteeringAngleDeg: 32.0,
		SideBufferM: 0.75, FrontBufferM: 1.5, RearBufferM: 1.5,
	})
	if err != nil {
		t.Fatalf("FromParams: %v", err)
	}
	if vp.Name != "custom" {
		t.Errorf("default name %q, want custom", vp.Name)
	}
	if got := vp.MinTurnRadius(); math.Abs(got-10.16) > 0.01 {
		t.Errorf("min turn radius %f, want ~10.16", got)
	}

	// Degrees on the wire, radians in the model.
	if math.Abs(vp.MaxSteeringAngle-32.0*math.Pi/180.0) > 1e-9 {
		t.Errorf("steering angle %f rad, want %f", vp.MaxSteeringAngle, 32.0*math.Pi/180.0)
	}

	if _, err := FromParams(CustomParams{WidthM: 7.3}); !turndb.IsInvalidArgument(err) {
		t.Errorf("degenerate params: got %v, want invalid-argument", err)
	}
}

func TestLoadFleetFile(t *testing.T) {
	yaml := `
site-793:
  width_m: 7.6
  wheelbase_m: 5.9
  max_steering_angle_deg: 33.0
  side_buffer_m: 1.0
dozer:
  name: site-dozer
  width_m: 4.3
  wheelbase_m: 3.2
  max_steering_angle_deg: 42.0
`
	dir, err := ioutil.TempDir("", "fleet")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	filename := filepath.Join(dir, "fleet.yaml")
	if err := ioutil.WriteFile(filename, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	vr := NewVehicleRegistry()
	nBuiltin := len(vr.ProfileIDs())
	if err := vr.LoadFleetFile(filename); err != nil {
		t.Fatalf("LoadFleetFile: %v", err)
	}

	if got := len(vr.ProfileIDs()); got != nBuiltin+2 {
		t.Errorf("%d profiles after load, want %d", got, nBuiltin+2)
	}

	vp, err := vr.Resolve("site-793")
	if err != nil {
		t.Fatalf("Resolve(site-793): %v", err)
	}
	if vp.SideBufferM != 1.0 || vp.Name != "site-793" {
		t.Errorf("loaded profile wrong: %+v", vp)
	}

	// A name in the body overrides the key-derived default.
	if vp, _ := vr.Resolve("dozer"); vp.Name != "site-dozer" {
		t.Errorf("dozer name %q, want site-dozer", vp.Name)
	}

	// Invalid profiles never land.
	badFile := filepath.Join(dir, "bad.yaml")
	ioutil.WriteFile(badFile, []byte("junk:\n  width_m: -4\n"), 0644)
	if err := vr.LoadFleetFile(badFile); err == nil {
		t.Errorf("bad fleet file accepted")
	}
}
