package main

import(
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"golang.org/x/net/context"

	"github.com/skypies/util/gcp/ds"

	"github.com/openpit/turndb/ui"
)

var(
	GoogleCloudProjectId = "openpit-turndb"
)

func init() {
	// This is the routine that creates new contexts, and injects a provider into
	// them, as required by the TpHandlers
	ctxMaker := func(r *http.Request) context.Context {
		ctx,_ := context.WithTimeout(r.Context(), 595 * time.Second)
		p,err := ds.NewCloudDSProvider(ctx, GoogleCloudProjectId)
		if err != nil {
			panic(fmt.Errorf("NewDB: could not get a clouddsprovider (projectId=%s): %v\n", GoogleCloudProjectId, err))
		}
		return ds.SetProvider(ctx, p)
	}

	// bigquery.go
	http.HandleFunc("/backend/publish-geometry", ui.WithGeomCtx(ctxMaker, publishGeometryHandler))
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Listening on port %s [turndb/app/backend]", port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%s", port), nil))
}
