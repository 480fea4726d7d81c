package geomstore

import(
	"fmt"
	"math"
	"sort"

	"golang.org/x/net/context"

	ds "github.com/skypies/util/gcp/ds"

	"github.com/openpit/turndb"
)

// {{{ db.Resolve

// Resolve implements turndb.GeometryResolver: turn two road ids (and an
// optional intersection hint) into entry/exit anchors plus the shared
// boundary. The only I/O in the whole pipeline happens here; everything
// downstream is pure.
func (db *GeomDB)Resolve(ctx context.Context, fromRoadID, toRoadID, hint string) (turndb.ResolvedGeometry, error) {
	rg := turndb.ResolvedGeometry{}

	fromMarkers, err := db.MarkersForRoad(fromRoadID)
	if err != nil {
		return rg, fmt.Errorf("resolve %q: %v", fromRoadID, err)
	}
	toMarkers, err := db.MarkersForRoad(toRoadID)
	if err != nil {
		return rg, fmt.Errorf("resolve %q: %v", toRoadID, err)
	}

	name, err := chooseIntersection(fromRoadID, fromMarkers, toRoadID, toMarkers, hint)
	if err != nil {
		return rg, err
	}

	ia, err := db.LookupIntersection(name)
	if err != nil {
		return rg, err
	}

	rg.Entry = turndb.RoadAnchor{RoadID: fromRoadID, Pose: anchorPose(fromMarkers, name)}
	rg.Exit = turndb.RoadAnchor{RoadID: toRoadID, Pose: anchorPose(toMarkers, name)}
	rg.Boundary = ia.Boundary()
	rg.OriginLat, rg.OriginLong = ia.OriginLat, ia.OriginLong

	db.Debugf("resolved %q->%q via %q (%d+%d markers)",
		fromRoadID, toRoadID, name, len(fromMarkers), len(toMarkers))

	return rg, nil
}

// }}}
// {{{ chooseIntersection

// chooseIntersection is the deterministic majority vote over stored markers.
// A hint wins when both roads actually carry markers there; otherwise the
// shared intersection with the most markers across both roads wins, ties
// broken by name. No randomness anywhere - reruns always agree.
func chooseIntersection(fromID string, from []RoadMarker, toID string, to []RoadMarker, hint string) (string, error) {
	if len(from) == 0 {
		return "", fmt.Errorf("%w: no stored anchor for road %q", turndb.ErrNotFound, fromID)
	}
	if len(to) == 0 {
		return "", fmt.Errorf("%w: no stored anchor for road %q", turndb.ErrNotFound, toID)
	}

	fromVotes, toVotes := map[string]int{}, map[string]int{}
	for _, m := range from {
		fromVotes[m.IntersectionName]++
	}
	for _, m := range to {
		toVotes[m.IntersectionName]++
	}

	shared := []string{}
	for name := range fromVotes {
		if toVotes[name] > 0 {
			shared = append(shared, name)
		}
	}
	if len(shared) == 0 {
		return "", fmt.Errorf("%w: roads %q and %q share no intersection",
			turndb.ErrNotFound, fromID, toID)
	}

	if hint != "" && fromVotes[hint] > 0 && toVotes[hint] > 0 {
		return hint, nil
	}

	sort.Slice(shared, func(i, j int) bool {
		vi := fromVotes[shared[i]] + toVotes[shared[i]]
		vj := fromVotes[shared[j]] + toVotes[shared[j]]
		if vi != vj {
			return vi > vj
		}
		return shared[i] < shared[j]
	})
	return shared[0], nil
}

// }}}
// {{{ anchorPose

// anchorPose condenses a road's markers at one intersection into a single
// pose: centroid position, circular-mean heading. With one marker (the normal
// case) this is the marker itself.
func anchorPose(markers []RoadMarker, intersection string) turndb.Pose {
	x, y, sh, ch := 0.0, 0.0, 0.0, 0.0
	n := 0
	for _, m := range markers {
		if m.IntersectionName != intersection {
			continue
		}
		x += m.X
		y += m.Y
		sh += math.Sin(m.Heading)
		ch += math.Cos(m.Heading)
		n++
	}
	fn := float64(n)
	return turndb.Pose{
		X:       x / fn,
		Y:       y / fn,
		Heading: math.Atan2(sh/fn, ch/fn),
	}
}

// }}}

// {{{ db.MarkersForRoad

func (db *GeomDB)MarkersForRoad(roadID string) ([]RoadMarker, error) {
	markers := []RoadMarker{}
	q := (*ds.Query)(NewMarkerQuery().ByRoadID(roadID))
	if _, err := db.Backend.GetAll(db.Ctx(), q, &markers); err != nil {
		return nil, fmt.Errorf("MarkersForRoad: %v", err)
	}
	return markers, nil
}

// }}}
// {{{ db.LookupIntersection

func (db *GeomDB)LookupIntersection(name string) (IntersectionArea, error) {
	ia := IntersectionArea{}
	keyer := db.Backend.NewNameKey(db.Ctx(), kIntersectionKind, name, nil)
	if err := db.Backend.Get(db.Ctx(), keyer, &ia); err != nil {
		return ia, fmt.Errorf("%w: intersection %q: %v", turndb.ErrNotFound, name, err)
	}
	return ia, nil
}

// }}}
// {{{ db.ListIntersections, db.ListMarkers

func (db *GeomDB)ListIntersections() ([]IntersectionArea, error) {
	areas := []IntersectionArea{}
	q := (*ds.Query)(NewIntersectionQuery())
	if _, err := db.Backend.GetAll(db.Ctx(), q, &areas); err != nil {
		return nil, fmt.Errorf("ListIntersections: %v", err)
	}
	return areas, nil
}

func (db *GeomDB)ListMarkers() ([]RoadMarker, error) {
	markers := []RoadMarker{}
	q := (*ds.Query)(NewMarkerQuery())
	if _, err := db.Backend.GetAll(db.Ctx(), q, &markers); err != nil {
		return nil, fmt.Errorf("ListMarkers: %v", err)
	}
	return markers, nil
}

// }}}
// {{{ db.PersistMarker, db.PersistIntersection

func (db *GeomDB)PersistMarker(m RoadMarker, seq int) error {
	name := fmt.Sprintf("%s|%s|%d", m.RoadID, m.IntersectionName, seq)
	keyer := db.Backend.NewNameKey(db.Ctx(), kRoadMarkerKind, name, nil)
	if _, err := db.Backend.Put(db.Ctx(), keyer, &m); err != nil {
		return fmt.Errorf("PersistMarker: %v", err)
	}
	return nil
}

func (db *GeomDB)PersistIntersection(ia IntersectionArea) error {
	keyer := db.Backend.NewNameKey(db.Ctx(), kIntersectionKind, ia.Name, nil)
	if _, err := db.Backend.Put(db.Ctx(), keyer, &ia); err != nil {
		return fmt.Errorf("PersistIntersection: %v", err)
	}
	return nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
