// Package turndb computes drivable turning paths for haul vehicles moving
// between two roads across an intersection. All core computation happens in a
// local planar projection (meters); latlong only appears at the API boundary.
package turndb

import(
	"fmt"
	"math"
)

// A Pose is a position in site-planar coordinates, plus a heading in radians
// (anticlockwise from the +X axis).
type Pose struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
}

func (p Pose)String() string {
	return fmt.Sprintf("(%.2f,%.2f @ %.1fdeg)", p.X, p.Y, p.Heading*180.0/math.Pi)
}

// DistTo is the straight-line distance, ignoring headings.
func (p Pose)DistTo(q Pose) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

func (p Pose)Equal(q Pose) bool {
	return p.X == q.X && p.Y == q.Y && p.Heading == q.Heading
}

// ReverseHeading flips the pose to face the opposite way, in place position.
func (p Pose)ReverseHeading() Pose {
	return Pose{p.X, p.Y, mod2pi(p.Heading + math.Pi)}
}

// mod2pi normalizes an angle into [0,2pi). Uses floored division so that
// negative inputs land in range too.
func mod2pi(theta float64) float64 {
	twoPi := 2 * math.Pi
	return theta - twoPi*math.Floor(theta/twoPi)
}
