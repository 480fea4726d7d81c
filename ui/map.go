package ui

import(
	"net/http"

	"github.com/openpit/turndb"
	"github.com/openpit/turndb/geomstore"
)

// /api/turnpath/map - the same pipeline, rendered as map shapes for the
// overlay layer instead of raw geometry.
func MapShapesHandler(db geomstore.GeomDB, w http.ResponseWriter, r *http.Request) {
	wireReq, err := parseTurnPathRequest(r)
	if err != nil {
		writeTurnPathError(w, err)
		return
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

	pr := Projection{OriginLat: res.Geometry.OriginLat, OriginLong: res.Geometry.OriginLong}

	pathColor := "#08aa08"
	if res.Status == turndb.StatusEnvelopeOutside {
		pathColor = "#dd6610"
	}

	ms := NewMapShapes()
	ms.Lines = append(ms.Lines, PolygonToMapLines(res.Geometry.Boundary, pr, "#223399", 1.0)...)
	ms.Lines = append(ms.Lines, PolygonToMapLines(turndb.Envelope(res.Path, vehicle), pr, pathColor, 0.4)...)
	ms.Lines = append(ms.Lines, PathToMapLines(res.Path, pr, pathColor)...)
	ms.Points = append(ms.Points, AnchorsToMapPoints(res.Geometry, pr)...)

	writeJSON(w, ms)
}
