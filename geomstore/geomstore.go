// Package geomstore stores and resolves site geometry: the road side-center
// markers and intersection boundary polygons that the turn-path pipeline
// works from. Backed by a datastore provider.
package geomstore

import(
	"fmt"
	"net/http"
	"time"

	"golang.org/x/net/context"

	"github.com/skypies/util/gcp/ds"
)

const(
	kRoadMarkerKind   = "RoadMarker"
	kIntersectionKind = "IntersectionArea"
)

type GeomDB struct {
	ctx       context.Context
	StartTime time.Time
	Backend   ds.DatastoreProvider
}

func New(ctx context.Context, p ds.DatastoreProvider) GeomDB {
	return GeomDB{
		ctx:       ctx,
		StartTime: time.Now(),
		Backend:   p,
	}
}

func (db *GeomDB)Ctx() context.Context { return db.ctx }
func (db *GeomDB)HTTPClient() *http.Client { return db.Backend.HTTPClient(db.Ctx()) }

func (db *GeomDB)Debugf(format string, args ...interface{}) {
	db.Backend.Debugf(db.Ctx(), format, args...)
}
func (db *GeomDB)Infof(format string, args ...interface{}) {
	db.Backend.Infof(db.Ctx(), format, args...)
}
func (db *GeomDB)Errorf(format string, args ...interface{}) {
	db.Backend.Errorf(db.Ctx(), format, args...)
}
func (db *GeomDB)Warningf(format string, args ...interface{}) {
	db.Backend.Warningf(db.Ctx(), format, args...)
}

// Perff is a debugf with a 'step' arg, and adds its own latency timings
func (db *GeomDB)Perff(step string, format string, args ...interface{}) {
	payload := fmt.Sprintf(format, args...)
	db.Debugf("[%s] %9.6f %s", step, time.Since(db.StartTime).Seconds(), payload)
}
