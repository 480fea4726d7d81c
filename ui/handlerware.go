package ui

import(
	"net/http"

	"golang.org/x/net/context"

	"github.com/skypies/util/gcp/ds"
	"github.com/skypies/util/widget"

	"github.com/openpit/turndb/geomstore"
	"github.com/openpit/turndb/ref"
)

// Rather than stash/retrieve a GeomDB from the context, we pass it directly
// to a new handler type, used throughout ui/.
type TpHandler func(geomstore.GeomDB, http.ResponseWriter, *http.Request)

func WithGeom(th TpHandler) widget.ContextHandler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		p := ds.GetProviderOrPanic(ctx) // PANICs if not found
		db := geomstore.New(ctx, p)
		r.ParseForm()
		th(db, w, r)
	}
}

func WithGeomCtx(f widget.CtxMaker, th TpHandler) widget.BaseHandler {
	return widget.WithCtx(f, WithGeom(th))
}

// The fleet registry is a singleton owned by the app main, which loads any
// site fleet file before handing it over.
var vehicles = ref.NewVehicleRegistry()

func SetVehicleRegistry(vr *ref.VehicleRegistry) { vehicles = vr }
