package turndb

import(
	"fmt"
	"math"
)

// A VehicleProfile describes the physical envelope and steering limits of a
// haul vehicle. Dimensions are meters, the steering angle is radians.
type VehicleProfile struct {
	Name             string  `json:"name" yaml:"name"`
	WidthM           float64 `json:"width_m" yaml:"width_m"`
	WheelbaseM       float64 `json:"wheelbase_m" yaml:"wheelbase_m"`
	MaxSteeringAngle float64 `json:"max_steering_angle_rad" yaml:"max_steering_angle_rad"`
	SideBufferM      float64 `json:"side_buffer_m" yaml:"side_buffer_m"`
	FrontBufferM     float64 `json:"front_buffer_m" yaml:"front_buffer_m"`
	RearBufferM      float64 `json:"rear_buffer_m" yaml:"rear_buffer_m"`
}

func (vp VehicleProfile)String() string {
	return fmt.Sprintf("%s: %.2fm wide, wheelbase %.2fm, rmin %.2fm",
		vp.Name, vp.WidthM, vp.WheelbaseM, vp.MinTurnRadius())
}

// MinTurnRadius derives the tightest drivable radius from the bicycle model.
func (vp VehicleProfile)MinTurnRadius() float64 {
	return vp.WheelbaseM / math.Tan(vp.MaxSteeringAngle)
}

// HalfWidth is the half-breadth of the swept corridor, buffers included.
func (vp VehicleProfile)HalfWidth() float64 {
	return vp.WidthM/2.0 + vp.SideBufferM
}

// Validate runs before any geometry work; a profile that fails here never
// reaches the solver.
func (vp VehicleProfile)Validate() error {
	if vp.WidthM <= 0 {
		return fmt.Errorf("%w: width_m=%f, must be > 0", ErrInvalidArgument, vp.WidthM)
	}
	if vp.WheelbaseM <= 0 {
		return fmt.Errorf("%w: wheelbase_m=%f, must be > 0", ErrInvalidArgument, vp.WheelbaseM)
	}
	if vp.MaxSteeringAngle <= 0 || vp.MaxSteeringAngle >= math.Pi/2 {
		return fmt.Errorf("%w: max_steering_angle_rad=%f, must be in (0,pi/2)",
			ErrInvalidArgument, vp.MaxSteeringAngle)
	}
	if vp.SideBufferM < 0 || vp.FrontBufferM < 0 || vp.RearBufferM < 0 {
		return fmt.Errorf("%w: buffers must be >= 0", ErrInvalidArgument)
	}
	return nil
}
