// Provides routines to render computed turn paths as PDFs
package tpdf

import(
	"fmt"
	"io"

	"github.com/ctessum/geom"
	"github.com/jung-kurt/gofpdf"
	gogeo "github.com/paulmach/go.geo"

	"github.com/openpit/turndb"
)

// https://godoc.org/github.com/jung-kurt/gofpdf

// The plan box is from NW(10,10) to SE(280,190), A4 landscape.
var(
	PlanBoxWidth   = 270.0
	PlanBoxHeight  = 180.0
	PlanBoxOffsetX = 10.0
	PlanBoxOffsetY = 10.0
)

// {{{ viewport

// A viewport maps site-planar meters onto the page box, preserving aspect.
// Y flips: PDF Y grows down the page.
type viewport struct {
	bound *gogeo.Bound
	scale float64
}

func newViewport(b *gogeo.Bound) viewport {
	v := viewport{bound: b}
	sx, sy := PlanBoxWidth/b.Width(), PlanBoxHeight/b.Height()
	v.scale = sx
	if sy < sx {
		v.scale = sy
	}
	return v
}

func (v viewport)xy(x, y float64) (float64, float64) {
	px := PlanBoxOffsetX + (x-v.bound.West())*v.scale
	py := PlanBoxOffsetY + PlanBoxHeight - (y-v.bound.South())*v.scale
	return px, py
}

func planBound(res turndb.TurnPathResult, env geom.Polygon) *gogeo.Bound {
	first := res.Path[0]
	b := gogeo.NewBoundFromPoints(gogeo.NewPoint(first.X, first.Y), gogeo.NewPoint(first.X, first.Y))
	for _, p := range res.Path {
		b.Extend(gogeo.NewPoint(p.X, p.Y))
	}
	for _, poly := range []geom.Polygon{res.Geometry.Boundary, env} {
		for _, ring := range poly {
			for _, pt := range ring {
				b.Extend(gogeo.NewPoint(pt.X, pt.Y))
			}
		}
	}
	return b
}

// }}}
// {{{ drawPolygon, drawPath

func drawPolygon(pdf *gofpdf.Fpdf, v viewport, poly geom.Polygon, r, g, b float64) {
	pdf.SetDrawColor(int(r), int(g), int(b))
	for _, ring := range poly {
		if len(ring) < 3 {
			continue
		}
		pts := make([]gofpdf.PointType, len(ring))
		for i, pt := range ring {
			x, y := v.xy(pt.X, pt.Y)
			pts[i] = gofpdf.PointType{X: x, Y: y}
		}
		pdf.Polygon(pts, "D")
	}
}

func drawPath(pdf *gofpdf.Fpdf, v viewport, sp turndb.SampledPath) {
	pdf.SetDrawColor(0x08, 0xaa, 0x08)
	for i := 1; i < len(sp); i++ {
		x1, y1 := v.xy(sp[i-1].X, sp[i-1].Y)
		x2, y2 := v.xy(sp[i].X, sp[i].Y)
		pdf.Line(x1, y1, x2, y2)
	}
}

// }}}

// PlanView renders the intersection boundary, the vehicle envelope and the
// sampled centerline on a single landscape page.
func PlanView(w io.Writer, res turndb.TurnPathResult, vp turndb.VehicleProfile) error {
	if len(res.Path) < 2 {
		return fmt.Errorf("PlanView: nothing to draw")
	}

	env := turndb.Envelope(res.Path, vp)

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetLineWidth(0.25)

	v := newViewport(planBound(res, env))

	drawPolygon(pdf, v, res.Geometry.Boundary, 0x22, 0x33, 0x99)
	drawPolygon(pdf, v, env, 0xdd, 0x66, 0x10)
	drawPath(pdf, v, res.Path)

	pdf.SetFont("Arial", "", 9)
	caption := fmt.Sprintf("%s -> %s: %s, %.1fm, outside %.2f sqm (%s)",
		res.Geometry.Entry.RoadID, res.Geometry.Exit.RoadID,
		res.Candidate.Type, res.Candidate.TotalLengthM,
		res.Clearance.OutsideAreaSqm, res.Status)
	pdf.Text(PlanBoxOffsetX, PlanBoxOffsetY+PlanBoxHeight+6, caption)

	return pdf.Output(w)
}
