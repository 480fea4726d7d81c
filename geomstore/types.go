package geomstore

import(
	"fmt"

	"github.com/ctessum/geom"

	"github.com/openpit/turndb"
)

// A RoadMarker is one stored side-center anchor: where a road meets an
// intersection, with the heading pointing into the intersection. A road that
// touches several intersections has a marker per intersection; survey refreshes
// can leave several markers per pair, which is why resolution votes.
type RoadMarker struct {
	RoadID           string
	IntersectionName string
	X, Y             float64 // site-planar meters
	Heading          float64 // radians, into the intersection
}

func (rm RoadMarker)String() string {
	return fmt.Sprintf("%s@%s %s", rm.RoadID, rm.IntersectionName, rm.Pose())
}

func (rm RoadMarker)Pose() turndb.Pose {
	return turndb.Pose{X: rm.X, Y: rm.Y, Heading: rm.Heading}
}

// An IntersectionArea is a stored boundary polygon, flattened into parallel
// coordinate slices so the datastore can index none of it cheaply. The origin
// is the latlong that the site-planar frame is projected around.
type IntersectionArea struct {
	Name                  string
	X, Y                  []float64 `datastore:",noindex"`
	OriginLat, OriginLong float64
}

func (ia IntersectionArea)String() string {
	return fmt.Sprintf("%s (%d vertices)", ia.Name, len(ia.X))
}

// Boundary rebuilds the closed polygon. Callers treat it as read-only.
func (ia IntersectionArea)Boundary() geom.Polygon {
	ring := make([]geom.Point, len(ia.X))
	for i := range ia.X {
		ring[i] = geom.Point{X: ia.X[i], Y: ia.Y[i]}
	}
	return geom.Polygon{ring}
}

// FromPolygon flattens the outer ring of a polygon into storable form.
func (ia *IntersectionArea)FromPolygon(p geom.Polygon) {
	ia.X, ia.Y = nil, nil
	if len(p) == 0 {
		return
	}
	for _, pt := range p[0] {
		ia.X = append(ia.X, pt.X)
		ia.Y = append(ia.Y, pt.Y)
	}
}
