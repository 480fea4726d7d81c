package main

import(
	"fmt"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/context"

	"github.com/skypies/util/gcp/ds"

	"github.com/openpit/turndb/ref"
	"github.com/openpit/turndb/ui"
)

var(
	GoogleCloudProjectId = "openpit-turndb"

	fFleetFile string
)

func init() {
	flag.StringVar(&fFleetFile, "fleet", "", "site fleet file (yaml) of extra vehicle profiles")

	// This is the routine that creates new contexts, and injects a provider into
	// them, as required by the TpHandlers
	ctxMaker := func(r *http.Request) context.Context {
		// Terminal timeout; the pipeline never retries, so expiry is just an error.
		ctx,_ := context.WithTimeout(r.Context(), 10 * time.Second)
		p,err := ds.NewCloudDSProvider(ctx, GoogleCloudProjectId)
		if err != nil {
			panic(fmt.Errorf("NewDB: could not get a clouddsprovider (projectId=%s): %v\n", GoogleCloudProjectId, err))
		}
		return ds.SetProvider(ctx, p)
	}

	// ui/turnhandler.go
	http.HandleFunc("/api/turnpath", ui.WithGeomCtx(ctxMaker, ui.TurnPathHandler))

	// ui/map.go
	http.HandleFunc("/api/turnpath/map", ui.WithGeomCtx(ctxMaker, ui.MapShapesHandler))

	// ui/sessions.go
	http.HandleFunc("/api/session/event", ui.WithGeomCtx(ctxMaker, ui.SessionEventHandler))

	// ui/pdf.go
	http.HandleFunc("/turn/pdf", ui.WithGeomCtx(ctxMaker, ui.PDFHandler))

	// loader.go
	http.HandleFunc("/admin/load-snapshot", ui.WithGeomCtx(ctxMaker, loadSnapshotHandler))
}

func main() {
	flag.Parse()

	if fFleetFile != "" {
		vr := ref.NewVehicleRegistry()
		if err := vr.LoadFleetFile(fFleetFile); err != nil {
			log.Fatal(err)
		}
		ui.SetVehicleRegistry(vr)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fs := http.FileServer(http.Dir("./app/frontend/static"))
	http.Handle("/static/", http.StripPrefix("/static/", fs))

	log.Printf("Listening on port %s [turndb/app/frontend]", port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%s", port), nil))
}
