package turndb

import(
	"math"
	"testing"
)

func sampleOrDie(t *testing.T, entry, exit Pose, r, step float64) SampledPath {
	c := solveOrDie(t, entry, exit, r)
	sp, err := Sample(c, entry, r, step)
	if err != nil {
		t.Fatalf("Sample(%s, step=%.2f): %v", c, step, err)
	}
	return sp
}

func TestSampleEndpoints(t *testing.T) {
	sp := sampleOrDie(t, dtEntry, dtExit, 10.0, 1.0)

	if len(sp) < 2 {
		t.Fatalf("got %d samples", len(sp))
	}
	if !sp[0].Equal(dtEntry) {
		t.Errorf("first sample %s is not the entry pose %s", sp[0], dtEntry)
	}

	last := sp[len(sp)-1]
	if last.DistTo(dtExit) > 1e-6 {
		t.Errorf("last sample %s is %.2em from the exit pose %s", last, last.DistTo(dtExit), dtExit)
	}
	if dh := math.Abs(mod2pi(last.Heading - dtExit.Heading)); dh > 1e-6 && dh < 2*math.Pi-1e-6 {
		t.Errorf("last sample heading %f, want %f", last.Heading, dtExit.Heading)
	}
}

func TestSampleCount(t *testing.T) {
	c := solveOrDie(t, dtEntry, dtExit, 10.0)

	for _, step := range []float64{0.25, 1.0, 5.0} {
		sp, err := Sample(c, dtEntry, 10.0, step)
		if err != nil {
			t.Fatalf("Sample step=%.2f: %v", step, err)
		}
		// One sample per step boundary plus the exact endpoint; the endpoint
		// dedupe can absorb one of them.
		want := int(math.Ceil(c.TotalLengthM/step)) + 1
		if len(sp) != want && len(sp) != want-1 {
			t.Errorf("step %.2f: %d samples, want %d (or %d)", step, len(sp), want, want-1)
		}
	}
}

func TestSampleSpacing(t *testing.T) {
	step := 1.0
	sp := sampleOrDie(t, dtEntry, dtExit, 10.0, step)

	for i := 1; i < len(sp); i++ {
		// Chord length never exceeds arc length.
		if d := sp[i-1].DistTo(sp[i]); d > step+1e-9 {
			t.Errorf("samples %d-%d are %.4fm apart, step is %.2fm", i-1, i, d, step)
		}
	}
}

func TestSampleMonotonicHeadingOnArc(t *testing.T) {
	// A pure half-circle: exit directly left of entry, facing backwards.
	entry := Pose{0, 0, 0}
	exit := Pose{0, 20, math.Pi}
	sp := sampleOrDie(t, entry, exit, 10.0, 0.5)

	if got := sp.Length(); math.Abs(got-math.Pi*10.0) > 0.5 {
		t.Errorf("half-circle sampled length %f, want ~%f", got, math.Pi*10.0)
	}
}

func TestSampleRejectsBadStep(t *testing.T) {
	c := solveOrDie(t, dtEntry, dtExit, 10.0)

	for _, step := range []float64{0, -1} {
		if _, err := Sample(c, dtEntry, 10.0, step); !IsInvalidArgument(err) {
			t.Errorf("step %f: got %v, want invalid-argument", step, err)
		}
	}
}
