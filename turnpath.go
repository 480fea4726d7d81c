package turndb

import(
	"fmt"
	"log"

	"golang.org/x/net/context"

	"github.com/ctessum/geom"
)

// Response statuses. EnvelopeOutside is a successful computation that reports
// geometric infeasibility; it is not an error.
const(
	StatusOK              = "ok"
	StatusEnvelopeOutside = "envelope_outside_intersection"
	StatusError           = "error"
)

// A RoadAnchor is the side-center marker where a road meets the intersection,
// resolved from the geometry store. Immutable per query.
type RoadAnchor struct {
	RoadID string `json:"road_id"`
	Pose   Pose   `json:"pose"`
}

// ResolvedGeometry is everything the resolver digs out of the store for one
// request. Both anchor headings point into the intersection; the origin is
// the latlong the site-planar frame is projected around.
type ResolvedGeometry struct {
	Entry, Exit           RoadAnchor
	Boundary              geom.Polygon
	OriginLat, OriginLong float64
}

// GeometryResolver is the only I/O-bound collaborator in the pipeline.
type GeometryResolver interface {
	Resolve(ctx context.Context, fromRoadID, toRoadID, intersectionHint string) (ResolvedGeometry, error)
}

type TurnPathRequest struct {
	FromRoadID       string
	ToRoadID         string
	IntersectionName string // optional hint
	Vehicle          VehicleProfile
	SamplingStepM    float64
}

// A TurnPathResult is created per request and never persisted.
type TurnPathResult struct {
	Status    string          `json:"status"`
	Error     string          `json:"error,omitempty"`
	Candidate DubinsCandidate `json:"candidate,omitempty"`
	Path      SampledPath     `json:"path,omitempty"`
	Clearance ClearanceResult `json:"clearance"`

	Geometry  ResolvedGeometry `json:"-"`
}

func errorResult(err error) TurnPathResult {
	return TurnPathResult{Status: StatusError, Error: err.Error()}
}

// wireError decides what an internal error may say on the wire. A solver
// failure describes poses and radii that mean nothing to the caller; it is an
// invariant violation (unreachable for finite poses), so the detail goes to
// the error log and only the kind goes out.
func wireError(err error) error {
	if IsNoPathFound(err) {
		log.Printf("ERROR: turnpath invariant violated: %v", err)
		return fmt.Errorf("%w: internal geometry failure", ErrNoPathFound)
	}
	return err
}

// ComputeTurnPath runs Resolve -> Solve -> Sample -> Validate. Each stage is a
// deterministic pure function of its inputs (the resolver read excepted), so
// nothing here retries; a failure short-circuits straight to a status.
func ComputeTurnPath(ctx context.Context, resolver GeometryResolver, req TurnPathRequest) TurnPathResult {
	// Argument validation runs before any geometry work, resolver included.
	if req.SamplingStepM <= 0 {
		return errorResult(fmt.Errorf("%w: sampling_step_m=%f, must be > 0",
			ErrInvalidArgument, req.SamplingStepM))
	}
	if err := req.Vehicle.Validate(); err != nil {
		return errorResult(err)
	}

	rg, err := resolver.Resolve(ctx, req.FromRoadID, req.ToRoadID, req.IntersectionName)
	if err != nil {
		return errorResult(err)
	}

	// Stored exit headings point into the intersection; the vehicle departs
	// along the reverse.
	entry := rg.Entry.Pose
	exit := rg.Exit.Pose.ReverseHeading()

	radius := req.Vehicle.MinTurnRadius()
	cand, err := Solve(entry, exit, radius)
	if err != nil {
		return errorResult(wireError(err))
	}

	sp, err := Sample(cand, entry, radius, req.SamplingStepM)
	if err != nil {
		return errorResult(err)
	}

	clearance := Validate(sp, req.Vehicle, rg.Boundary)

	status := StatusOK
	if !clearance.VehicleEnvelopeOK {
		status = StatusEnvelopeOutside
	}
	return TurnPathResult{
		Status:    status,
		Candidate: cand,
		Path:      sp,
		Clearance: clearance,
		Geometry:  rg,
	}
}
