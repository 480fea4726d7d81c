package ui

import(
	"math"

	sgeo "github.com/skypies/geo"

	"github.com/openpit/turndb"
)

// All core computation happens in site-planar meters; latlong appears only
// here, at the API boundary. An equirectangular projection around the site
// origin is plenty at pit scale (a few km).

const kMetersPerDegreeLat = 111319.9

// A Projection converts between the site-planar frame and latlong.
type Projection struct {
	OriginLat, OriginLong float64
}

func (pr Projection)metersPerDegreeLong() float64 {
	return kMetersPerDegreeLat * math.Cos(pr.OriginLat*math.Pi/180.0)
}

func (pr Projection)ToLatlong(p turndb.Pose) sgeo.Latlong {
	return sgeo.Latlong{
		Lat:  pr.OriginLat + p.Y/kMetersPerDegreeLat,
		Long: pr.OriginLong + p.X/pr.metersPerDegreeLong(),
	}
}

func (pr Projection)FromLatlong(ll sgeo.Latlong) turndb.Pose {
	return turndb.Pose{
		X: (ll.Long - pr.OriginLong) * pr.metersPerDegreeLong(),
		Y: (ll.Lat - pr.OriginLat) * kMetersPerDegreeLat,
	}
}

// LonLat is the [lon,lat] coordinate order geojson wants.
func (pr Projection)LonLat(p turndb.Pose) []float64 {
	ll := pr.ToLatlong(p)
	return []float64{ll.Long, ll.Lat}
}
