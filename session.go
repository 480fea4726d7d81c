package turndb

import(
	"fmt"
)

// The selection workflow: configure a vehicle, pick a source road, pick a
// destination road, compute, show. A Session is an explicit serializable
// object passed around by handle; there is no ambient global state, and no
// renderer coupling - UI layers subscribe to the domain events instead.

type SessionStep string

const(
	StepIdle                 SessionStep = "idle"
	StepProfile              SessionStep = "profile"
	StepSelectingSource      SessionStep = "selecting_source"
	StepSelectingDestination SessionStep = "selecting_destination"
	StepComputing            SessionStep = "computing"
	StepShowingPath          SessionStep = "showing_path"
)

type SessionEvent string

const(
	EventSourceSelected      SessionEvent = "sourceSelected"
	EventDestinationSelected SessionEvent = "destinationSelected"
	EventComputed            SessionEvent = "computed"
)

// SessionConfig is what the profile step collects.
type SessionConfig struct {
	VehicleProfileID string          `json:"vehicle_profile_id,omitempty"`
	CustomVehicle    *VehicleProfile `json:"custom_vehicle_profile,omitempty"`
	SamplingStepM    float64         `json:"sampling_step_m"`
}

type Session struct {
	Step            SessionStep     `json:"step"`
	Config          SessionConfig   `json:"config"`
	SourceRoad      string          `json:"source_road,omitempty"`
	DestinationRoad string          `json:"destination_road,omitempty"`

	// Generation counts compute attempts; a completion carrying a stale
	// generation (i.e. one issued before a cancel) is discarded, not applied.
	Generation      int             `json:"generation"`

	Result          *TurnPathResult `json:"result,omitempty"`

	subscribers []func(SessionEvent, *Session)
}

func NewSession() *Session {
	return &Session{Step: StepProfile}
}

func (s *Session)Subscribe(fn func(SessionEvent, *Session)) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *Session)emit(ev SessionEvent) {
	for _, fn := range s.subscribers {
		fn(ev, s)
	}
}

// SubmitConfig moves profile -> selecting_source.
func (s *Session)SubmitConfig(cfg SessionConfig) error {
	if s.Step != StepProfile && s.Step != StepIdle {
		return fmt.Errorf("%w: config submitted during step %q", ErrInvalidArgument, s.Step)
	}
	s.Config = cfg
	s.Step = StepSelectingSource
	return nil
}

// PickRoad feeds one road pick into the machine. When the pick completes the
// pair, it returns ready=true and the request to hand to ComputeTurnPath; the
// session is then in computing and ignores further picks until Complete or
// Cancel. Re-picking the current source is a no-op.
func (s *Session)PickRoad(roadID string) (req TurnPathRequest, ready bool, err error) {
	switch s.Step {
	case StepSelectingSource:
		s.SourceRoad = roadID
		s.Step = StepSelectingDestination
		s.emit(EventSourceSelected)
		return req, false, nil

	case StepSelectingDestination:
		if roadID == s.SourceRoad {
			return req, false, nil
		}
		s.DestinationRoad = roadID
		s.Step = StepComputing
		s.Generation++
		s.emit(EventDestinationSelected)

		req = TurnPathRequest{
			FromRoadID:    s.SourceRoad,
			ToRoadID:      s.DestinationRoad,
			SamplingStepM: s.Config.SamplingStepM,
		}
		if s.Config.CustomVehicle != nil {
			req.Vehicle = *s.Config.CustomVehicle
		}
		return req, true, nil

	case StepComputing:
		// Single-flight; picks during a computation are ignored.
		return req, false, nil

	default:
		return req, false, fmt.Errorf("%w: road picked during step %q", ErrInvalidArgument, s.Step)
	}
}

// ComputeGeneration is the token Complete must echo back.
func (s *Session)ComputeGeneration() int { return s.Generation }

// Complete applies the outcome of a computation. Stale generations (a cancel
// happened while the request was in flight) are discarded. Success shows the
// path; envelope_outside_intersection and error both report failure and reset
// to the profile step, clearing transient selection state.
func (s *Session)Complete(generation int, res TurnPathResult) bool {
	if s.Step != StepComputing || generation != s.Generation {
		return false
	}

	if res.Status == StatusOK {
		s.Result = &res
		s.Step = StepShowingPath
		s.emit(EventComputed)
		return true
	}

	s.Result = &res
	s.reset(StepProfile)
	s.emit(EventComputed)
	return true
}

// Cancel aborts from any step back to idle. Bumping the generation here is
// what invalidates any in-flight computation.
func (s *Session)Cancel() {
	s.Generation++
	s.Result = nil
	s.reset(StepIdle)
}

func (s *Session)reset(step SessionStep) {
	s.SourceRoad, s.DestinationRoad = "", ""
	s.Step = step
}
