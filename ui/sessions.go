package ui

import(
	"fmt"
	"net/http"
	"sync"

	"github.com/skypies/util/widget"

	"github.com/openpit/turndb"
	"github.com/openpit/turndb/geomstore"
	"github.com/openpit/turndb/ref"
)

// Sessions live in memory for the length of one selection workflow. The
// table is the concurrency boundary: the state machine itself is plain data.
var(
	sessionMu sync.Mutex
	sessions  = map[string]*turndb.Session{}
)

func getOrCreateSession(id string) *turndb.Session {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	if s, exists := sessions[id]; exists {
		return s
	}
	s := turndb.NewSession()
	sessions[id] = s
	return s
}

// {{{ SessionEventHandler

// /api/session/event?session=<id>&action=config|pick|cancel|status
// Drives the selection state machine: configure -> pick source -> pick
// destination -> (compute) -> show. Picks arriving while a computation is in
// flight are ignored; a cancel invalidates the in-flight generation, so a
// late-arriving result is discarded rather than applied.
func SessionEventHandler(db geomstore.GeomDB, w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("session")
	if id == "" {
		writeJSON(w, map[string]string{"error": "need a session= arg"})
		return
	}
	s := getOrCreateSession(id)

	switch r.FormValue("action") {
	case "config":
		err := applyConfig(s, r)
		respondSession(w, s, err)

	case "pick":
		handlePick(db, s, w, r)

	case "cancel":
		sessionMu.Lock()
		s.Cancel()
		sessionMu.Unlock()
		respondSession(w, s, nil)

	case "status":
		respondSession(w, s, nil)

	default:
		respondSession(w, s, fmt.Errorf("%w: unknown action %q", turndb.ErrInvalidArgument,
			r.FormValue("action")))
	}
}

// }}}
// {{{ applyConfig

func applyConfig(s *turndb.Session, r *http.Request) error {
	cfg := turndb.SessionConfig{
		VehicleProfileID: r.FormValue("vehicle_profile_id"),
		SamplingStepM:    widget.FormValueFloat64EatErrs(r, "sampling_step_m"),
	}
	if cfg.SamplingStepM <= 0 {
		cfg.SamplingStepM = 1.0
	}

	if cfg.VehicleProfileID == "" {
		custom, err := ref.FromParams(ref.CustomParams{
			WidthM:              widget.FormValueFloat64EatErrs(r, "width_m"),
			WheelbaseM:          widget.FormValueFloat64EatErrs(r, "wheelbase_m"),
			MaxSteeringAngleDeg: widget.FormValueFloat64EatErrs(r, "max_steering_angle_deg"),
			SideBufferM:         widget.FormValueFloat64EatErrs(r, "side_buffer_m"),
			FrontBufferM:        widget.FormValueFloat64EatErrs(r, "front_buffer_m"),
			RearBufferM:         widget.FormValueFloat64EatErrs(r, "rear_buffer_m"),
		})
		if err != nil {
			return err
		}
		cfg.CustomVehicle = &custom
	}

	sessionMu.Lock()
	defer sessionMu.Unlock()
	return s.SubmitConfig(cfg)
}

// }}}
// {{{ handlePick

func handlePick(db geomstore.GeomDB, s *turndb.Session, w http.ResponseWriter, r *http.Request) {
	roadID := r.FormValue("road_id")
	if roadID == "" {
		respondSession(w, s, fmt.Errorf("%w: need a road_id= arg", turndb.ErrInvalidArgument))
		return
	}

	sessionMu.Lock()
	req, ready, err := s.PickRoad(roadID)
	gen := s.ComputeGeneration()
	if ready && s.Config.VehicleProfileID != "" {
		vp, rerr := vehicles.Resolve(s.Config.VehicleProfileID)
		if rerr != nil {
			// A profile that won't resolve is a failed computation: back to
			// the profile step, where the config can be fixed and retried.
			s.Complete(gen, turndb.TurnPathResult{Status: turndb.StatusError, Error: rerr.Error()})
			err, ready = rerr, false
		} else {
			req.Vehicle = vp
		}
	}
	sessionMu.Unlock()

	if err != nil || !ready {
		respondSession(w, s, err)
		return
	}

	// Compute outside the lock, so a cancel can land while we work; the
	// generation check in Complete discards this result if one did.
	res := turndb.ComputeTurnPath(db.Ctx(), &db, req)

	sessionMu.Lock()
	applied := s.Complete(gen, res)
	sessionMu.Unlock()

	if !applied {
		db.Infof("session %q: result for gen %d discarded", r.FormValue("session"), gen)
	}
	respondSession(w, s, nil)
}

// }}}
// {{{ respondSession

func respondSession(w http.ResponseWriter, s *turndb.Session, err error) {
	sessionMu.Lock()
	defer sessionMu.Unlock()

	out := struct {
		*turndb.Session
		Error string `json:"error,omitempty"`
	}{Session: s}
	if err != nil {
		out.Error = err.Error()
	}
	writeJSON(w, out)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
