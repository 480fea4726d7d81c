// Package ref contains reference lookups: the haul-vehicle fleet registry.
package ref

import(
	"fmt"
	"io/ioutil"
	"math"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/openpit/turndb"
)

// The built-in fleet. Sites with their own vehicles overlay these via a YAML
// fleet file (see LoadFleetFile).
var builtinProfiles = map[string]turndb.VehicleProfile{
	"cat-777": {
		Name: "cat-777", WidthM: 6.1, WheelbaseM: 4.57,
		MaxSteeringAngle: 36.0 * math.Pi / 180.0,
		SideBufferM: 0.5, FrontBufferM: 1.0, RearBufferM: 1.0,
	},
	"cat-793": {
		Name: "cat-793", WidthM: 7.6, WheelbaseM: 5.9,
		MaxSteeringAngle: 33.0 * math.Pi / 180.0,
		SideBufferM: 0.75, FrontBufferM: 1.5, RearBufferM: 1.5,
	},
	"komatsu-830e": {
		Name: "komatsu-830e", WidthM: 7.3, WheelbaseM: 6.35,
		MaxSteeringAngle: 32.0 * math.Pi / 180.0,
		SideBufferM: 0.75, FrontBufferM: 1.5, RearBufferM: 1.5,
	},
	"water-cart": {
		Name: "water-cart", WidthM: 4.0, WheelbaseM: 4.2,
		MaxSteeringAngle: 40.0 * math.Pi / 180.0,
		SideBufferM: 0.5, FrontBufferM: 0.5, RearBufferM: 0.5,
	},
}

// A VehicleRegistry resolves profile ids (or custom parameters) into validated
// vehicle models. Treated as read-only after setup.
type VehicleRegistry struct {
	profiles map[string]turndb.VehicleProfile
}

func NewVehicleRegistry() *VehicleRegistry {
	vr := VehicleRegistry{profiles: map[string]turndb.VehicleProfile{}}
	for id, vp := range builtinProfiles {
		vr.profiles[id] = vp
	}
	return &vr
}

func (vr *VehicleRegistry)ProfileIDs() []string {
	ids := []string{}
	for id := range vr.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Resolve looks up a named profile.
func (vr *VehicleRegistry)Resolve(id string) (turndb.VehicleProfile, error) {
	vp, exists := vr.profiles[id]
	if !exists {
		return vp, fmt.Errorf("%w: vehicle profile %q", turndb.ErrNotFound, id)
	}
	return vp, nil
}

// CustomParams is what clients send instead of a profile id. The steering
// limit comes over the wire in degrees.
type CustomParams struct {
	Name                string  `json:"name" yaml:"name"`
	WidthM              float64 `json:"width_m" yaml:"width_m"`
	WheelbaseM          float64 `json:"wheelbase_m" yaml:"wheelbase_m"`
	MaxSteeringAngleDeg float64 `json:"max_steering_angle_deg" yaml:"max_steering_angle_deg"`
	SideBufferM         float64 `json:"side_buffer_m" yaml:"side_buffer_m"`
	FrontBufferM        float64 `json:"front_buffer_m" yaml:"front_buffer_m"`
	RearBufferM         float64 `json:"rear_buffer_m" yaml:"rear_buffer_m"`
}

// FromParams validates custom parameters before any geometry work happens.
func FromParams(p CustomParams) (turndb.VehicleProfile, error) {
	name := p.Name
	if name == "" {
		name = "custom"
	}
	vp := turndb.VehicleProfile{
		Name:             name,
		WidthM:           p.WidthM,
		WheelbaseM:       p.WheelbaseM,
		MaxSteeringAngle: p.MaxSteeringAngleDeg * math.Pi / 180.0,
		SideBufferM:      p.SideBufferM,
		FrontBufferM:     p.FrontBufferM,
		RearBufferM:      p.RearBufferM,
	}
	if err := vp.Validate(); err != nil {
		return vp, err
	}
	return vp, nil
}

// LoadFleetFile overlays site-specific profiles from a YAML file. Entries are
// CustomParams keyed by profile id; each is validated before it lands.
func (vr *VehicleRegistry)LoadFleetFile(filename string) error {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("fleet file %s: %v", filename, err)
	}

	fleet := map[string]CustomParams{}
	if err := yaml.Unmarshal(data, &fleet); err != nil {
		return fmt.Errorf("fleet file %s: %v", filename, err)
	}

	for id, params := range fleet {
		if params.Name == "" {
			params.Name = id
		}
		vp, err := FromParams(params)
		if err != nil {
			return fmt.Errorf("fleet file %s, profile %q: %v", filename, id, err)
		}
		vr.profiles[id] = vp
	}
	return nil
}
