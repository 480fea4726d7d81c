package turndb

import(
	"math"

	"github.com/ctessum/geom"
)

// ClearanceResult reports whether the vehicle envelope stayed inside the
// intersection boundary, and by how much it didn't.
type ClearanceResult struct {
	VehicleEnvelopeOK bool    `json:"vehicle_envelope_ok"`
	OutsideAreaSqm    float64 `json:"outside_area_sqm"`
}

// kOutsideAreaToleranceSqm is how much protrusion we write off as clipping
// noise. A square millimeter-ish; real violations are orders of magnitude
// bigger.
const kOutsideAreaToleranceSqm = 1e-6

// Envelope buffers the sampled centerline into the corridor swept by the
// vehicle body plus safety buffers: offset ±half-width along each pose's
// normal, with the ends pushed out by the rear and front buffers.
func Envelope(sp SampledPath, vp VehicleProfile) geom.Polygon {
	if len(sp) < 2 {
		return nil
	}

	poses := make([]Pose, 0, len(sp)+2)
	first, last := sp[0], sp[len(sp)-1]
	if vp.RearBufferM > 0 {
		poses = append(poses, Pose{
			X:       first.X - vp.RearBufferM*math.Cos(first.Heading),
			Y:       first.Y - vp.RearBufferM*math.Sin(first.Heading),
			Heading: first.Heading,
		})
	}
	poses = append(poses, sp...)
	if vp.FrontBufferM > 0 {
		poses = append(poses, Pose{
			X:       last.X + vp.FrontBufferM*math.Cos(last.Heading),
			Y:       last.Y + vp.FrontBufferM*math.Sin(last.Heading),
			Heading: last.Heading,
		})
	}

	// Pose headings are exact, so the offset of an arc sample is a sample of
	// the offset arc; no miter fixups needed at this step size.
	h := vp.HalfWidth()
	left := make([]geom.Point, len(poses))
	right := make([]geom.Point, len(poses))
	for i, p := range poses {
		nx, ny := -math.Sin(p.Heading), math.Cos(p.Heading)
		left[i] = geom.Point{X: p.X + h*nx, Y: p.Y + h*ny}
		right[i] = geom.Point{X: p.X - h*nx, Y: p.Y - h*ny}
	}

	ring := make([]geom.Point, 0, 2*len(poses))
	ring = append(ring, left...)
	for i := len(right) - 1; i >= 0; i-- {
		ring = append(ring, right[i])
	}
	return geom.Polygon{ring}
}

// Validate checks containment of the envelope in the intersection boundary.
// Pure and deterministic: same inputs, bit-identical outputs.
func Validate(sp SampledPath, vp VehicleProfile, boundary geom.Polygon) ClearanceResult {
	env := Envelope(sp, vp)
	if env == nil {
		return ClearanceResult{VehicleEnvelopeOK: true}
	}

	outside := env.Difference(boundary)
	area := 0.0
	if outside != nil {
		area = outside.Area()
	}
	if area < 0 {
		area = 0
	}

	return ClearanceResult{
		VehicleEnvelopeOK: area <= kOutsideAreaToleranceSqm,
		OutsideAreaSqm:    area,
	}
}
