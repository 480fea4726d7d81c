package turndb

// go test github.com/openpit/turndb

import(
	"math"
	"testing"
)

var(
	// A classic 90-degree haul road turn; well away from any degenerate geometry.
	dtEntry = Pose{X: 0, Y: 0, Heading: 0}
	dtExit  = Pose{X: 50, Y: 50, Heading: math.Pi / 2}
)

func solveOrDie(t *testing.T, entry, exit Pose, r float64) DubinsCandidate {
	c, err := Solve(entry, exit, r)
	if err != nil {
		t.Fatalf("Solve(%s, %s, %.1f): %v", entry, exit, r, err)
	}
	return c
}

func TestSolveStraightLine(t *testing.T) {
	c := solveOrDie(t, Pose{0, 0, 0}, Pose{100, 0, 0}, 10.0)

	if c.Type != LSL {
		t.Errorf("aligned poses: got %s, want LSL (first in tie-break order)", c.Type)
	}
	if math.Abs(c.TotalLengthM-100.0) > 1e-9 {
		t.Errorf("aligned poses: length %f, want 100", c.TotalLengthM)
	}
	if math.Abs(c.SegmentLengthsM[0]) > 1e-9 || math.Abs(c.SegmentLengthsM[2]) > 1e-9 {
		t.Errorf("aligned poses: arc segments should be empty, got %v", c.SegmentLengthsM)
	}
}

func TestSolveRightAngleTurn(t *testing.T) {
	c := solveOrDie(t, dtEntry, dtExit, 10.0)

	euclid := dtEntry.DistTo(dtExit)
	if c.TotalLengthM < euclid {
		t.Errorf("length %f beats the euclidean distance %f", c.TotalLengthM, euclid)
	}
	if c.TotalLengthM > 3*euclid {
		t.Errorf("length %f is implausibly long (euclid %f)", c.TotalLengthM, euclid)
	}

	sum := c.SegmentLengthsM[0] + c.SegmentLengthsM[1] + c.SegmentLengthsM[2]
	if math.Abs(sum-c.TotalLengthM) > 1e-9 {
		t.Errorf("segments sum to %f, total says %f", sum, c.TotalLengthM)
	}
}

func TestSolveLengthLowerBound(t *testing.T) {
	poses := []Pose{
		{30, 0, 0},
		{0, 60, math.Pi},
		{-40, -40, math.Pi / 4},
		{25, -10, 3 * math.Pi / 2},
		{12, 80, 1.0},
	}
	for _, exit := range poses {
		c := solveOrDie(t, dtEntry, exit, 8.0)
		if euclid := dtEntry.DistTo(exit); c.TotalLengthM < euclid-1e-9 {
			t.Errorf("exit %s: length %f < euclidean %f", exit, c.TotalLengthM, euclid)
		}
	}
}

func TestSolveDeterministic(t *testing.T) {
	c1 := solveOrDie(t, dtEntry, dtExit, 10.0)
	c2 := solveOrDie(t, dtEntry, dtExit, 10.0)

	if c1.Type != c2.Type || c1.TotalLengthM != c2.TotalLengthM {
		t.Errorf("reruns disagree: %s vs %s", c1, c2)
	}
	for i := 0; i < 3; i++ {
		if c1.SegmentLengthsM[i] != c2.SegmentLengthsM[i] {
			t.Errorf("reruns disagree on segment %d: %f vs %f",
				i, c1.SegmentLengthsM[i], c2.SegmentLengthsM[i])
		}
	}
}

func TestSolveCoincidentPoses(t *testing.T) {
	c := solveOrDie(t, dtEntry, dtEntry, 10.0)
	if c.TotalLengthM > 1e-9 {
		t.Errorf("coincident poses: length %f, want ~0", c.TotalLengthM)
	}
}

func headingsAgree(a, b, eps float64) bool {
	dh := math.Abs(mod2pi(a - b))
	return dh < eps || dh > 2*math.Pi-eps
}

// Every feasible word must connect the two poses exactly, not just carry a
// plausible length. This walks each builder's geometry to its far end; a sign
// slip in any closed form shows up as an endpoint miss here.
func TestEveryWordReachesExit(t *testing.T) {
	pairs := []struct {
		entry, exit Pose
		r           float64
	}{
		// Far apart: all four CSC words feasible.
		{Pose{0, 0, 0}, Pose{10, 7, 1.0}, 1.0},
		{Pose{0, 0, 2.0}, Pose{-8, 12, 5.5}, 1.0},
		{Pose{-31.97, -42.68, 81.8 * math.Pi / 180}, Pose{30.51, -91.60, 333.6 * math.Pi / 180}, 3.60},
		// Close with opposed headings: the CCC words kick in.
		{Pose{0, 0, 0}, Pose{0.5, 0, math.Pi}, 1.0},
		{Pose{0, 0, 0}, Pose{1.2, 0.8, 2.5}, 1.0},
		{Pose{0, 0, 1.0}, Pose{-0.4, 0.9, 4.0}, 1.0},
	}

	seen := [6]bool{}
	for _, pair := range pairs {
		in := newDubinsInputs(pair.entry, pair.exit, pair.r)
		for i, build := range wordBuilders {
			params, ok := build(in)
			if !ok {
				continue
			}
			seen[i] = true

			c := DubinsCandidate{
				Type:         PathType(i),
				TurnRadiusM:  pair.r,
				TotalLengthM: (params[0] + params[1] + params[2]) * pair.r,
				params:       params,
			}
			end := c.poseAt(pair.entry, pair.r, c.TotalLengthM)
			if d := end.DistTo(pair.exit); d > 1e-6 {
				t.Errorf("%s %s -> %s (r=%.2f): endpoint %s misses by %.2em",
					c.Type, pair.entry, pair.exit, pair.r, end, d)
			}
			if !headingsAgree(end.Heading, pair.exit.Heading, 1e-6) {
				t.Errorf("%s %s -> %s: final heading %f, want %f",
					c.Type, pair.entry, pair.exit, end.Heading, pair.exit.Heading)
			}
		}
	}

	for i, ok := range seen {
		if !ok {
			t.Errorf("word %s never feasible across the fixture pairs", PathType(i))
		}
	}
}

// Same invariant through the public surface: whatever word wins, the sampled
// path ends on the exit pose.
func TestSolvedWinnersReachExit(t *testing.T) {
	pairs := []struct {
		entry, exit Pose
		r           float64
	}{
		{dtEntry, dtExit, 10.0},
		{Pose{-31.97, -42.68, 81.8 * math.Pi / 180}, Pose{30.51, -91.60, 333.6 * math.Pi / 180}, 3.60},
		{Pose{0, 0, 0}, Pose{0.5, 0, math.Pi}, 1.0},
		{Pose{5, -3, 4.7}, Pose{-20, 14, 0.3}, 6.0},
	}
	for _, pair := range pairs {
		sp := sampleOrDie(t, pair.entry, pair.exit, pair.r, 1.0)
		last := sp[len(sp)-1]
		if d := last.DistTo(pair.exit); d > 1e-6 {
			t.Errorf("%s -> %s (r=%.2f): sampled path ends %s, %.2em from the exit",
				pair.entry, pair.exit, pair.r, last, d)
		}
		if !headingsAgree(last.Heading, pair.exit.Heading, 1e-6) {
			t.Errorf("%s -> %s: final heading %f, want %f",
				pair.entry, pair.exit, last.Heading, pair.exit.Heading)
		}
	}
}

func TestSolveRejectsBadRadius(t *testing.T) {
	for _, r := range []float64{0, -5} {
		if _, err := Solve(dtEntry, dtExit, r); !IsInvalidArgument(err) {
			t.Errorf("radius %f: got %v, want invalid-argument", r, err)
		}
	}
}
