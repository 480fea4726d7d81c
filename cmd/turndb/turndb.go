package main

// Pure-core turn path tool; no datastore, no webserver. Poses go in, a turn
// path comes out.
//
//   turndb -entry 0,0,0 -exit 50,50,90 -vehicle cat-793
//   turndb -entry 0,0,0 -exit 50,50,90 -radius 12 -step 0.5 -wkt
//   turndb -entry 0,0,0 -exit 50,50,90 -vehicle komatsu-830e -pdf /tmp/turn.pdf

import(
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/openpit/turndb"
	"github.com/openpit/turndb/ref"
	"github.com/openpit/turndb/tpdf"
)

var(
	fEntry string
	fExit string
	fVehicle string
	fRadius float64
	fStep float64
	fWKT bool
	fPDF string
)

func init() {
	flag.StringVar(&fEntry, "entry", "", "entry pose as x,y,heading-deg")
	flag.StringVar(&fExit, "exit", "", "exit pose as x,y,heading-deg (departure direction)")
	flag.StringVar(&fVehicle, "vehicle", "", "vehicle profile id (see -list)")
	flag.Float64Var(&fRadius, "radius", 0, "turn radius in meters (instead of -vehicle)")
	flag.Float64Var(&fStep, "step", 1.0, "sampling step in meters")
	flag.BoolVar(&fWKT, "wkt", false, "print the sampled path as WKT")
	flag.StringVar(&fPDF, "pdf", "", "write a plan-view PDF to this file")
	flag.Parse()
}

func parsePose(arg string) (turndb.Pose, error) {
	p := turndb.Pose{}
	fields := strings.Split(arg, ",")
	if len(fields) != 3 {
		return p, fmt.Errorf("pose %q: want x,y,heading-deg", arg)
	}
	vals := make([]float64, 3)
	for i,f := range fields {
		v,err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return p, fmt.Errorf("pose %q: %v", arg, err)
		}
		vals[i] = v
	}
	p.X, p.Y, p.Heading = vals[0], vals[1], vals[2]*math.Pi/180.0
	return p, nil
}

func main() {
	vehicles := ref.NewVehicleRegistry()

	if fEntry == "" || fExit == "" {
		fmt.Printf("need -entry and -exit poses; profiles: %v\n", vehicles.ProfileIDs())
		os.Exit(1)
	}

	entry,err := parsePose(fEntry)
	if err != nil { log.Fatal(err) }
	exit,err := parsePose(fExit)
	if err != nil { log.Fatal(err) }

	vp := turndb.VehicleProfile{}
	radius := fRadius
	if fVehicle != "" {
		vp,err = vehicles.Resolve(fVehicle)
		if err != nil { log.Fatal(err) }
		radius = vp.MinTurnRadius()
	}
	if radius <= 0 {
		log.Fatal("need -vehicle or a positive -radius")
	}

	cand,err := turndb.Solve(entry, exit, radius)
	if err != nil { log.Fatal(err) }

	sp,err := turndb.Sample(cand, entry, radius, fStep)
	if err != nil { log.Fatal(err) }

	fmt.Printf("%s: %.2fm total (r=%.2fm), segments %.2f / %.2f / %.2f, %d samples\n",
		cand.Type, cand.TotalLengthM, radius,
		cand.SegmentLengthsM[0], cand.SegmentLengthsM[1], cand.SegmentLengthsM[2],
		len(sp))

	if fWKT {
		fmt.Printf("%s\n", sp.WKT())
	}

	if fPDF != "" {
		if fVehicle == "" {
			log.Fatal("-pdf needs a -vehicle, to draw the envelope")
		}
		res := turndb.TurnPathResult{
			Status:    turndb.StatusOK,
			Candidate: cand,
			Path:      sp,
			Clearance: turndb.ClearanceResult{VehicleEnvelopeOK: true}, // no boundary to check
			Geometry: turndb.ResolvedGeometry{
				Entry: turndb.RoadAnchor{RoadID: "entry", Pose: entry},
				Exit:  turndb.RoadAnchor{RoadID: "exit", Pose: exit},
			},
		}
		f,err := os.Create(fPDF)
		if err != nil { log.Fatal(err) }
		if err := tpdf.PlanView(f, res, vp); err != nil { log.Fatal(err) }
		if err := f.Close(); err != nil { log.Fatal(err) }
		fmt.Printf("wrote %s\n", fPDF)
	}
}
