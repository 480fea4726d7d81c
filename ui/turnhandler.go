package ui

import(
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ctessum/geom"
	geojson "github.com/paulmach/go.geojson"
	"github.com/skypies/util/widget"

	"github.com/openpit/turndb"
	"github.com/openpit/turndb/geomstore"
	"github.com/openpit/turndb/ref"
)

// {{{ request/response shapes

// The wire request. Either vehicle_profile_id or custom_vehicle_profile must
// be present; sampling_step_m must be > 0.
type TurnPathWireRequest struct {
	FromRoadID           string            `json:"from_road_id"`
	ToRoadID             string            `json:"to_road_id"`
	IntersectionName     string            `json:"intersection_name,omitempty"`
	VehicleProfileID     string            `json:"vehicle_profile_id,omitempty"`
	CustomVehicleProfile *ref.CustomParams `json:"custom_vehicle_profile,omitempty"`
	SamplingStepM        float64           `json:"sampling_step_m"`
}

type PathJSON struct {
	PathType string      `json:"path_type"`
	LengthM  float64     `json:"length_m"`
	Points   [][]float64 `json:"points"` // [lon,lat]
}

type TurnPathWireResponse struct {
	Status    string                  `json:"status"`
	Error     string                  `json:"error,omitempty"`
	Path      *PathJSON               `json:"path,omitempty"`
	Clearance *turndb.ClearanceResult `json:"clearance,omitempty"`
	WKT       string                  `json:"wkt,omitempty"`
	GeoJSON   json.RawMessage         `json:"geojson,omitempty"`
}

// }}}
// {{{ parseTurnPathRequest

// Accepts a JSON POST body, or plain CGI args (handy for poking from a
// browser: ?from_road_id=..&to_road_id=..&vehicle_profile_id=..&sampling_step_m=..).
func parseTurnPathRequest(r *http.Request) (TurnPathWireRequest, error) {
	req := TurnPathWireRequest{}

	if r.Method == "POST" && strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, fmt.Errorf("%w: bad JSON body: %v", turndb.ErrInvalidArgument, err)
		}
		return req, nil
	}

	req.FromRoadID = r.FormValue("from_road_id")
	req.ToRoadID = r.FormValue("to_road_id")
	req.IntersectionName = r.FormValue("intersection_name")
	req.VehicleProfileID = r.FormValue("vehicle_profile_id")
	req.SamplingStepM = widget.FormValueFloat64EatErrs(r, "sampling_step_m")
	return req, nil
}

// }}}
// {{{ resolveVehicle

func resolveVehicle(req TurnPathWireRequest) (turndb.VehicleProfile, error) {
	if req.CustomVehicleProfile != nil {
		return ref.FromParams(*req.CustomVehicleProfile)
	}
	if req.VehicleProfileID != "" {
		return vehicles.Resolve(req.VehicleProfileID)
	}
	return turndb.VehicleProfile{},
		fmt.Errorf("%w: need vehicle_profile_id or custom_vehicle_profile", turndb.ErrInvalidArgument)
}

// }}}

// {{{ TurnPathHandler

// /api/turnpath - the whole pipeline, one request per call. Every stage is a
// deterministic pure function of the request (the resolver read aside), so a
// failed request is never retried here.
func TurnPathHandler(db geomstore.GeomDB, w http.ResponseWriter, r *http.Request) {
	wireReq, err := parseTurnPathRequest(r)
	if err != nil {
		writeTurnPathError(w, err)
		return
	}

	// Arguments are checked before any geometry work.
	if wireReq.SamplingStepM <= 0 {
		writeTurnPathError(w, fmt.Errorf("%w: sampling_step_m must be > 0", turndb.ErrInvalidArgument))
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
		db.Infof("turnpath %q->%q: %s", wireReq.FromRoadID, wireReq.ToRoadID, res.Error)
		writeJSON(w, TurnPathWireResponse{Status: res.Status, Error: res.Error})
		return
	}

	writeJSON(w, buildWireResponse(res, vehicle))
}

func writeTurnPathError(w http.ResponseWriter, err error) {
	writeJSON(w, TurnPathWireResponse{Status: turndb.StatusError, Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// }}}
// {{{ buildWireResponse

// Projection to latlong is this one step; everything upstream stayed planar.
func buildWireResponse(res turndb.TurnPathResult, vehicle turndb.VehicleProfile) TurnPathWireResponse {
	pr := Projection{OriginLat: res.Geometry.OriginLat, OriginLong: res.Geometry.OriginLong}

	points := make([][]float64, len(res.Path))
	wktCoords := make([]string, len(res.Path))
	for i, p := range res.Path {
		points[i] = pr.LonLat(p)
		wktCoords[i] = fmt.Sprintf("%.7f %.7f", points[i][0], points[i][1])
	}

	clearance := res.Clearance
	return TurnPathWireResponse{
		Status: res.Status,
		Path: &PathJSON{
			PathType: res.Candidate.Type.String(),
			LengthM:  res.Candidate.TotalLengthM,
			Points:   points,
		},
		Clearance: &clearance,
		WKT:       "LINESTRING (" + strings.Join(wktCoords, ", ") + ")",
		GeoJSON:   buildGeoJSON(res, vehicle, pr),
	}
}

// }}}
// {{{ buildGeoJSON

func buildGeoJSON(res turndb.TurnPathResult, vehicle turndb.VehicleProfile, pr Projection) json.RawMessage {
	fc := geojson.NewFeatureCollection()

	coords := make([][]float64, len(res.Path))
	for i, p := range res.Path {
		coords[i] = pr.LonLat(p)
	}
	line := geojson.NewLineStringFeature(coords)
	line.SetProperty("kind", "turn_path")
	line.SetProperty("path_type", res.Candidate.Type.String())
	line.SetProperty("length_m", res.Candidate.TotalLengthM)
	fc.AddFeature(line)

	if poly := polygonCoords(res.Geometry.Boundary, pr); poly != nil {
		boundary := geojson.NewPolygonFeature(poly)
		boundary.SetProperty("kind", "intersection_boundary")
		fc.AddFeature(boundary)
	}

	if poly := polygonCoords(turndb.Envelope(res.Path, vehicle), pr); poly != nil {
		env := geojson.NewPolygonFeature(poly)
		env.SetProperty("kind", "vehicle_envelope")
		env.SetProperty("vehicle_envelope_ok", res.Clearance.VehicleEnvelopeOK)
		env.SetProperty("outside_area_sqm", res.Clearance.OutsideAreaSqm)
		fc.AddFeature(env)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return nil
	}
	return data
}

// polygonCoords closes each ring the way geojson expects (first == last).
func polygonCoords(p geom.Polygon, pr Projection) [][][]float64 {
	if len(p) == 0 {
		return nil
	}
	rings := make([][][]float64, 0, len(p))
	for _, ring := range p {
		if len(ring) < 3 {
			continue
		}
		coords := make([][]float64, 0, len(ring)+1)
		for _, pt := range ring {
			coords = append(coords, pr.LonLat(turndb.Pose{X: pt.X, Y: pt.Y}))
		}
		coords = append(coords, coords[0])
		rings = append(rings, coords)
	}
	if len(rings) == 0 {
		return nil
	}
	return rings
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
