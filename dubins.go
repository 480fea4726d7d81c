package turndb

import(
	"fmt"
	"math"
)

// A Dubins path is the shortest curvature-bounded forward path between two
// poses; it is always one of six words, each three segments of arc (L/R) or
// straight line (S).

type PathType int

// Declaration order doubles as the tie-break preference among equal-length
// candidates: solve() scans in this order and only accepts strictly shorter
// words, so LSL beats LSR beats RSL, and so on.
const(
	LSL PathType = iota
	LSR
	RSL
	RSR
	RLR
	LRL
)

func (pt PathType)String() string {
	return [...]string{"LSL","LSR","RSL","RSR","RLR","LRL"}[pt]
}

type SegmentKind int

const(
	SegLeft SegmentKind = iota
	SegStraight
	SegRight
)

// segmentKinds maps each word to its three segment kinds, indexed by PathType.
var segmentKinds = [6][3]SegmentKind{
	{SegLeft, SegStraight, SegLeft},
	{SegLeft, SegStraight, SegRight},
	{SegRight, SegStraight, SegLeft},
	{SegRight, SegStraight, SegRight},
	{SegRight, SegLeft, SegRight},
	{SegLeft, SegRight, SegLeft},
}

// A DubinsCandidate is one feasible word between two poses. Segment lengths
// and total length are in meters; the normalized params (units of turn radius)
// stick around for the sampler.
type DubinsCandidate struct {
	Type            PathType   `json:"type"`
	SegmentLengthsM [3]float64 `json:"segment_lengths"`
	TotalLengthM    float64    `json:"total_length"`

	TurnRadiusM     float64    `json:"-"`
	params          [3]float64 // normalized; SegmentLengthsM = params * radius
}

func (c DubinsCandidate)String() string {
	return fmt.Sprintf("%s [%.2f,%.2f,%.2f]m = %.2fm",
		c.Type, c.SegmentLengthsM[0], c.SegmentLengthsM[1], c.SegmentLengthsM[2], c.TotalLengthM)
}

func (c DubinsCandidate)Kinds() [3]SegmentKind { return segmentKinds[c.Type] }

// {{{ dubinsInputs

// The closed forms all work off the same normalized quantities: the pose gap
// scaled by turn radius, and the two headings measured relative to the
// entry-to-exit baseline.
type dubinsInputs struct {
	alpha, beta, d         float64
	sa, sb, ca, cb, cab    float64
	dsq                    float64
}

func newDubinsInputs(entry, exit Pose, radius float64) dubinsInputs {
	dx, dy := exit.X-entry.X, exit.Y-entry.Y
	d := math.Hypot(dx, dy) / radius

	theta := 0.0
	if d > 0 {
		theta = mod2pi(math.Atan2(dy, dx))
	}
	alpha, beta := mod2pi(entry.Heading-theta), mod2pi(exit.Heading-theta)

	return dubinsInputs{
		alpha: alpha, beta: beta, d: d,
		sa: math.Sin(alpha), sb: math.Sin(beta),
		ca: math.Cos(alpha), cb: math.Cos(beta),
		cab: math.Cos(alpha - beta), dsq: d * d,
	}
}

// }}}

// {{{ the six word builders

// Each builder returns the three normalized segment lengths, or ok=false when
// the word is infeasible for this geometry. Inverse-trig arguments that fall
// outside their domain mean infeasible, never NaN: the p_sq >= 0 and
// |arg| <= 1 guards are exactly those domain checks.

func buildLSL(in dubinsInputs) (out [3]float64, ok bool) {
	tmp0 := in.d + in.sa - in.sb
	psq := 2 + in.dsq - (2 * in.cab) + (2 * in.d * (in.sa - in.sb))
	if psq < 0 {
		return out, false
	}
	tmp1 := math.Atan2(in.cb-in.ca, tmp0)
	return [3]float64{mod2pi(tmp1 - in.alpha), math.Sqrt(psq), mod2pi(in.beta - tmp1)}, true
}

func buildLSR(in dubinsInputs) (out [3]float64, ok bool) {
	tmp0 := in.d + in.sa + in.sb
	psq := -2 + in.dsq + (2 * in.cab) + (2 * in.d * (in.sa + in.sb))
	if psq < 0 {
		return out, false
	}
	tmp1 := math.Atan2(-in.ca-in.cb, tmp0) - math.Atan2(-2, math.Sqrt(psq))
	return [3]float64{mod2pi(tmp1 - in.alpha), math.Sqrt(psq), mod2pi(tmp1 - in.beta)}, true
}

func buildRSL(in dubinsInputs) (out [3]float64, ok bool) {
	tmp0 := in.d - in.sa - in.sb
	psq := -2 + in.dsq + (2 * in.cab) - (2 * in.d * (in.sa + in.sb))
	if psq < 0 {
		return out, false
	}
	// Note the +2 here; only LSR takes atan2(-2, p).
	tmp1 := math.Atan2(in.ca+in.cb, tmp0) - math.Atan2(2, math.Sqrt(psq))
	return [3]float64{mod2pi(in.alpha - tmp1), math.Sqrt(psq), mod2pi(in.beta - tmp1)}, true
}

func buildRSR(in dubinsInputs) (out [3]float64, ok bool) {
	tmp0 := in.d - in.sa + in.sb
	psq := 2 + in.dsq - (2 * in.cab) + (2 * in.d * (in.sb - in.sa))
	if psq < 0 {
		return out, false
	}
	tmp1 := math.Atan2(in.ca-in.cb, tmp0)
	return [3]float64{mod2pi(in.alpha - tmp1), math.Sqrt(psq), mod2pi(tmp1 - in.beta)}, true
}

func buildRLR(in dubinsInputs) (out [3]float64, ok bool) {
	tmp0 := (6.0 - in.dsq + 2*in.cab + 2*in.d*(in.sa-in.sb)) / 8.0
	if math.Abs(tmp0) > 1 {
		return out, false
	}
	phi := math.Atan2(in.ca-in.cb, in.d-in.sa+in.sb)
	p := mod2pi((2 * math.Pi) - math.Acos(tmp0))
	t := mod2pi(in.alpha - phi + mod2pi(p/2.0))
	return [3]float64{t, p, mod2pi(in.alpha - in.beta - t + mod2pi(p))}, true
}

func buildLRL(in dubinsInputs) (out [3]float64, ok bool) {
	tmp0 := (6.0 - in.dsq + 2*in.cab + 2*in.d*(in.sb-in.sa)) / 8.0
	if math.Abs(tmp0) > 1 {
		return out, false
	}
	phi := math.Atan2(in.ca-in.cb, in.d+in.sa-in.sb)
	p := mod2pi((2 * math.Pi) - math.Acos(tmp0))
	t := mod2pi(-in.alpha - phi + mod2pi(p/2.0))
	return [3]float64{t, p, mod2pi(mod2pi(in.beta) - in.alpha - t + mod2pi(p))}, true
}

var wordBuilders = [6]func(dubinsInputs) ([3]float64, bool){
	buildLSL, buildLSR, buildRSL, buildRSR, buildRLR, buildLRL,
}

// }}}

// Solve computes the winning Dubins candidate between two poses for the given
// turn radius. Infeasible words are skipped; if all six are infeasible (which
// no finite pose pair should produce) it returns ErrNoPathFound.
func Solve(entry, exit Pose, turnRadiusM float64) (DubinsCandidate, error) {
	if turnRadiusM <= 0 {
		return DubinsCandidate{}, fmt.Errorf("%w: turn radius %f, must be > 0",
			ErrInvalidArgument, turnRadiusM)
	}

	in := newDubinsInputs(entry, exit, turnRadiusM)

	best := DubinsCandidate{TotalLengthM: math.Inf(1)}
	found := false
	for i, build := range wordBuilders {
		params, ok := build(in)
		if !ok {
			continue
		}
		total := (params[0] + params[1] + params[2]) * turnRadiusM
		if !found || total < best.TotalLengthM {
			best = DubinsCandidate{
				Type:         PathType(i),
				TotalLengthM: total,
				TurnRadiusM:  turnRadiusM,
				params:       params,
			}
			for j := 0; j < 3; j++ {
				best.SegmentLengthsM[j] = params[j] * turnRadiusM
			}
			found = true
		}
	}

	if !found {
		return DubinsCandidate{}, fmt.Errorf("%w: no feasible word between %s and %s (r=%.2f)",
			ErrNoPathFound, entry, exit, turnRadiusM)
	}
	return best, nil
}
