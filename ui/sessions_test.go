package ui

import(
	"net/http/httptest"
	"testing"

	"github.com/openpit/turndb"
	"github.com/openpit/turndb/geomstore"
)

func postEvent(t *testing.T, query string) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/session/event?"+query, nil)
	SessionEventHandler(geomstore.GeomDB{}, w, r)
	if w.Code != 200 {
		t.Fatalf("event %q: http %d", query, w.Code)
	}
}

// A stored profile id that no longer resolves surfaces when the second pick
// arms the computation. That is a failed computation, not a cancel: the
// session lands back at the profile step with the error on record, ready for
// a corrected config.
func TestSessionEventBadProfileResetsToProfile(t *testing.T) {
	id := "sessions-test-bad-profile"
	postEvent(t, "session="+id+"&action=config&vehicle_profile_id=no-such-truck&sampling_step_m=1")
	postEvent(t, "session="+id+"&action=pick&road_id=haul-north")
	postEvent(t, "session="+id+"&action=pick&road_id=haul-east")

	s := getOrCreateSession(id)
	if s.Step != turndb.StepProfile {
		t.Errorf("after failed profile resolution: step %q, want profile", s.Step)
	}
	if s.SourceRoad != "" || s.DestinationRoad != "" {
		t.Errorf("picks survived the reset: %q, %q", s.SourceRoad, s.DestinationRoad)
	}
	if s.Result == nil || s.Result.Status != turndb.StatusError {
		t.Errorf("failure not recorded on the session: %+v", s.Result)
	}

	// The machine is usable again without a cancel.
	postEvent(t, "session="+id+"&action=config&vehicle_profile_id=cat-793&sampling_step_m=1")
	if s.Step != turndb.StepSelectingSource {
		t.Errorf("retry config: step %q, want selecting_source", s.Step)
	}
}
