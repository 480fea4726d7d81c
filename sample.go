package turndb

import(
	"fmt"
	"math"
	"strings"
)

// A SampledPath is the winning candidate walked into poses at fixed arc-length
// spacing. The first pose is exactly the entry pose, the last exactly the
// computed end pose; interior points land every step_m of cumulative length.
type SampledPath []Pose

// kDedupeDistM suppresses a trailing sample that lands within a millimeter of
// the exact final pose; we keep the exact one.
const kDedupeDistM = 0.001

// Sample walks the three segments of a candidate from the entry pose.
// Rejects non-positive steps before doing any work.
func Sample(c DubinsCandidate, entry Pose, turnRadiusM, stepM float64) (SampledPath, error) {
	if stepM <= 0 {
		return nil, fmt.Errorf("%w: sampling_step_m=%f, must be > 0", ErrInvalidArgument, stepM)
	}
	if turnRadiusM <= 0 {
		return nil, fmt.Errorf("%w: turn radius %f, must be > 0", ErrInvalidArgument, turnRadiusM)
	}

	total := c.TotalLengthM
	sp := SampledPath{}
	for s := 0.0; s < total; s += stepM {
		sp = append(sp, c.poseAt(entry, turnRadiusM, s))
	}

	final := c.poseAt(entry, turnRadiusM, total)
	if n := len(sp); n > 0 && sp[n-1].DistTo(final) < kDedupeDistM {
		sp[n-1] = final
	} else {
		sp = append(sp, final)
	}
	return sp, nil
}

// poseAt evaluates the pose s meters along the path. Works segment by
// segment in normalized (radius-scaled) units.
func (c DubinsCandidate)poseAt(entry Pose, radius, s float64) Pose {
	t := s / radius
	if t < 0 {
		t = 0
	}
	if tMax := c.params[0] + c.params[1] + c.params[2]; t > tMax {
		t = tMax
	}

	kinds := c.Kinds()
	p := entry
	for i := 0; i < 3; i++ {
		if t <= c.params[i] {
			return advance(p, kinds[i], t, radius)
		}
		p = advance(p, kinds[i], c.params[i], radius)
		t -= c.params[i]
	}
	return p
}

// advance moves a pose t (normalized) units along a single segment: rotation
// about the instantaneous turn center for arcs, linear motion for straights.
func advance(p Pose, kind SegmentKind, t, radius float64) Pose {
	st, ct := math.Sin(p.Heading), math.Cos(p.Heading)
	switch kind {
	case SegLeft:
		return Pose{
			X:       p.X + radius*(math.Sin(p.Heading+t)-st),
			Y:       p.Y + radius*(-math.Cos(p.Heading+t)+ct),
			Heading: mod2pi(p.Heading + t),
		}
	case SegRight:
		return Pose{
			X:       p.X + radius*(-math.Sin(p.Heading-t)+st),
			Y:       p.Y + radius*(math.Cos(p.Heading-t)-ct),
			Heading: mod2pi(p.Heading - t),
		}
	default: // SegStraight
		return Pose{
			X:       p.X + radius*t*ct,
			Y:       p.Y + radius*t*st,
			Heading: p.Heading,
		}
	}
}

// Length sums the point-to-point distances; close to the candidate's
// TotalLengthM, a little under on the arcs.
func (sp SampledPath)Length() float64 {
	d := 0.0
	for i := 1; i < len(sp); i++ {
		d += sp[i-1].DistTo(sp[i])
	}
	return d
}

// WKT renders the path as a LINESTRING in site-planar coordinates.
func (sp SampledPath)WKT() string {
	if len(sp) == 0 {
		return "LINESTRING EMPTY"
	}
	coords := make([]string, len(sp))
	for i, p := range sp {
		coords[i] = fmt.Sprintf("%.3f %.3f", p.X, p.Y)
	}
	return "LINESTRING (" + strings.Join(coords, ", ") + ")"
}
