package main

import(
	"fmt"
	"net/http"

	"github.com/openpit/turndb/geomstore"
)

var(
	kSnapshotBucket = "openpit-site-surveys"
	kSnapshotPrefix = "geometry/"
)

// /admin/load-snapshot?file=<name>
// With no file= arg, loads the newest snapshot under the survey prefix.
func loadSnapshotHandler(db geomstore.GeomDB, w http.ResponseWriter, r *http.Request) {
	fileName := r.FormValue("file")
	if fileName == "" {
		name, err := db.LatestSnapshotName(kSnapshotBucket, kSnapshotPrefix)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		fileName = name
	}

	nMarkers, nAreas, err := db.LoadSnapshot(kSnapshotBucket, fileName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(fmt.Sprintf("OK, loaded %s (%d markers, %d intersections)\n",
		fileName, nMarkers, nAreas)))
}
