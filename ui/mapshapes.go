package ui

import(
	"github.com/ctessum/geom"
	sgeo "github.com/skypies/geo"

	"github.com/openpit/turndb"
)

// MapShapes is a single thing that contains all the things we want to render
// on a map: the intersection boundary, the turn centerline, the envelope.
type MapShapes struct {
	Lines  []MapLine  `json:"lines"`
	Points []MapPoint `json:"points"`
}

type MapLine struct {
	Start sgeo.Latlong `json:"s"`
	End   sgeo.Latlong `json:"e"`

	Color   string  `json:"color"`   // A hex color value (e.g. "#ff8822")
	Opacity float64 `json:"opacity"`
}

type MapPoint struct {
	Pos  sgeo.Latlong `json:"pos"`
	Icon string       `json:"icon"` // The <foo> in /static/dot-<foo>.png
	Text string       `json:"info"`
}

func NewMapShapes() *MapShapes {
	return &MapShapes{Lines: []MapLine{}, Points: []MapPoint{}}
}

func (ms1 *MapShapes)Add(ms2 *MapShapes) {
	ms1.Lines = append(ms1.Lines, ms2.Lines...)
	ms1.Points = append(ms1.Points, ms2.Points...)
}

func (ms *MapShapes)AddLine(ml MapLine) { ms.Lines = append(ms.Lines, ml) }
func (ms *MapShapes)AddPoint(mp MapPoint) { ms.Points = append(ms.Points, mp) }

// {{{ PathToMapLines

func PathToMapLines(sp turndb.SampledPath, pr Projection, color string) []MapLine {
	lines := []MapLine{}
	for i := 1; i < len(sp); i++ {
		lines = append(lines, MapLine{
			Start:   pr.ToLatlong(sp[i-1]),
			End:     pr.ToLatlong(sp[i]),
			Color:   color,
			Opacity: 1.0,
		})
	}
	return lines
}

// }}}
// {{{ PolygonToMapLines

func PolygonToMapLines(p geom.Polygon, pr Projection, color string, opacity float64) []MapLine {
	lines := []MapLine{}
	for _, ring := range p {
		for i := range ring {
			a, b := ring[i], ring[(i+1)%len(ring)]
			lines = append(lines, MapLine{
				Start:   pr.ToLatlong(turndb.Pose{X: a.X, Y: a.Y}),
				End:     pr.ToLatlong(turndb.Pose{X: b.X, Y: b.Y}),
				Color:   color,
				Opacity: opacity,
			})
		}
	}
	return lines
}

// }}}
// {{{ AnchorsToMapPoints

func AnchorsToMapPoints(rg turndb.ResolvedGeometry, pr Projection) []MapPoint {
	return []MapPoint{
		{Pos: pr.ToLatlong(rg.Entry.Pose), Icon: "green", Text: "entry: " + rg.Entry.RoadID},
		{Pos: pr.ToLatlong(rg.Exit.Pose), Icon: "red", Text: "exit: " + rg.Exit.RoadID},
	}
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
