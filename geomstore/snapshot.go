package geomstore

import(
	"fmt"
	"io/ioutil"
	"math"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	geojson "github.com/paulmach/go.geojson"
)

// Site surveys arrive as GeoJSON snapshot files in a GCS bucket: Point
// features are road markers (properties road_id, intersection, heading_deg),
// Polygon features are intersection boundaries (properties name, origin_lat,
// origin_long). Coordinates are site-planar meters, not lon/lat.

// {{{ db.LatestSnapshotName

// LatestSnapshotName walks the bucket for objects under the prefix and picks
// the lexicographically last one; snapshot names embed YYYYMMDD so that is
// also the newest.
func (db *GeomDB)LatestSnapshotName(bucketName, prefix string) (string, error) {
	client, err := storage.NewClient(db.Ctx())
	if err != nil {
		return "", err
	}

	bucket := client.Bucket(bucketName)
	q := &storage.Query{Prefix: prefix}

	best := ""
	it := bucket.Objects(db.Ctx(), q)
	for {
		oa, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return "", fmt.Errorf("GCS-Readdir [gs://%s]%s: %v", bucketName, prefix, err)
		}
		db.Infof("%8db %s {%s}", oa.Size, oa.Updated.Format("2006.01.02"), oa.Name)
		if oa.Name > best {
			best = oa.Name
		}
	}

	if best == "" {
		return "", fmt.Errorf("no snapshots under gs://%s/%s", bucketName, prefix)
	}
	return best, nil
}

// }}}
// {{{ db.LoadSnapshot

// LoadSnapshot reads one snapshot file and persists everything in it.
// Returns counts of (markers, intersections) loaded.
func (db *GeomDB)LoadSnapshot(bucketName, fileName string) (int, int, error) {
	client, err := storage.NewClient(db.Ctx())
	if err != nil {
		return 0, 0, err
	}

	gcsReader, err := client.Bucket(bucketName).Object(fileName).NewReader(db.Ctx())
	if err != nil {
		return 0, 0, fmt.Errorf("GCS-Open %s|%s: %v", bucketName, fileName, err)
	}
	defer gcsReader.Close()

	data, err := ioutil.ReadAll(gcsReader)
	if err != nil {
		return 0, 0, fmt.Errorf("GCS-Read %s|%s: %v", bucketName, fileName, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return 0, 0, fmt.Errorf("snapshot %s: bad geojson: %v", fileName, err)
	}

	nMarkers, nAreas := 0, 0
	markerSeq := map[string]int{} // per road|intersection pair

	for i, f := range fc.Features {
		switch {
		case f.Geometry.IsPoint():
			m, err := markerFromFeature(f)
			if err != nil {
				return nMarkers, nAreas, fmt.Errorf("snapshot feature %d: %v", i, err)
			}
			pair := m.RoadID + "|" + m.IntersectionName
			if err := db.PersistMarker(m, markerSeq[pair]); err != nil {
				return nMarkers, nAreas, err
			}
			markerSeq[pair]++
			nMarkers++

		case f.Geometry.IsPolygon():
			ia, err := areaFromFeature(f)
			if err != nil {
				return nMarkers, nAreas, fmt.Errorf("snapshot feature %d: %v", i, err)
			}
			if err := db.PersistIntersection(ia); err != nil {
				return nMarkers, nAreas, err
			}
			nAreas++

		default:
			db.Warningf("snapshot feature %d: ignoring geometry type %q", i, f.Geometry.Type)
		}
	}

	db.Infof("snapshot %s: loaded %d markers, %d intersections", fileName, nMarkers, nAreas)
	return nMarkers, nAreas, nil
}

// }}}

// {{{ markerFromFeature, areaFromFeature

func markerFromFeature(f *geojson.Feature) (RoadMarker, error) {
	m := RoadMarker{}

	roadID, err := f.PropertyString("road_id")
	if err != nil {
		return m, fmt.Errorf("marker without road_id")
	}
	intersection, err := f.PropertyString("intersection")
	if err != nil {
		return m, fmt.Errorf("marker %q without intersection", roadID)
	}
	headingDeg, err := f.PropertyFloat64("heading_deg")
	if err != nil {
		return m, fmt.Errorf("marker %q without heading_deg", roadID)
	}

	m.RoadID = roadID
	m.IntersectionName = intersection
	m.X, m.Y = f.Geometry.Point[0], f.Geometry.Point[1]
	m.Heading = headingDeg * math.Pi / 180.0
	return m, nil
}

func areaFromFeature(f *geojson.Feature) (IntersectionArea, error) {
	ia := IntersectionArea{}

	name, err := f.PropertyString("name")
	if err != nil {
		return ia, fmt.Errorf("intersection without name")
	}
	ia.Name = name
	ia.OriginLat, _ = f.PropertyFloat64("origin_lat")
	ia.OriginLong, _ = f.PropertyFloat64("origin_long")

	if len(f.Geometry.Polygon) == 0 || len(f.Geometry.Polygon[0]) < 3 {
		return ia, fmt.Errorf("intersection %q: degenerate boundary", name)
	}
	for _, coord := range f.Geometry.Polygon[0] {
		ia.X = append(ia.X, coord[0])
		ia.Y = append(ia.Y, coord[1])
	}
	return ia, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
