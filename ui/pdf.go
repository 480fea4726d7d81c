package ui

import(
	"bytes"
	"net/http"

	"github.com/openpit/turndb"
	"github.com/openpit/turndb/geomstore"
	"github.com/openpit/turndb/tpdf"
)

// /turn/pdf - runs the same pipeline as /api/turnpath, but renders the result
// as a plan-view PDF instead of JSON.
func PDFHandler(db geomstore.GeomDB, w http.ResponseWriter, r *http.Request) {
	wireReq, err := parseTurnPathRequest(r)
	if err != nil {
		writeTurnPathError(w, err)
		return
	}
	if wireReq.SamplingStepM <= 0 {
		wireReq.SamplingStepM = 1.0
	}
	vehicle, err := resolveVehicle(wireReq)
	if err != nil {
		writeTurnPathError(w, err)
		return
	}

	res := turndb.ComputeTurnPath(db.Ctx(), &db, turndb.TurnPathRequest{
		FromRoadID:       wireReq.FromRoadID,
		ToRoadID:         wireReq.ToRoadID,
		IntersectionName: wireReq.IntersectionName,
		Vehicle:          vehicle,
		SamplingStepM:    wireReq.SamplingStepM,
	})
	if res.Status == turndb.StatusError {
		writeJSON(w, TurnPathWireResponse{Status: res.Status, Error: res.Error})
		return
	}

	var buf bytes.Buffer
	if err := tpdf.PlanView(&buf, res, vehicle); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Write(buf.Bytes())
}
