package geomstore

import(
	ds "github.com/skypies/util/gcp/ds"
)

// Wrap the provider query, so we can hang a fluent API off it
type GQuery ds.Query

func NewMarkerQuery() *GQuery { return (*GQuery)(ds.NewQuery(kRoadMarkerKind)) }
func NewIntersectionQuery() *GQuery { return (*GQuery)(ds.NewQuery(kIntersectionKind)) }

func (gq *GQuery)Order(str string) *GQuery { return (*GQuery)((*ds.Query)(gq).Order(str)) }
func (gq *GQuery)Limit(val int) *GQuery { return (*GQuery)((*ds.Query)(gq).Limit(val)) }
func (gq *GQuery)Filter(str string, val interface{}) *GQuery {
	return (*GQuery)((*ds.Query)(gq).Filter(str, val))
}

func (gq *GQuery)ByRoadID(id string) *GQuery {
	return gq.Filter("RoadID = ", id)
}
func (gq *GQuery)ByIntersection(name string) *GQuery {
	return gq.Filter("IntersectionName = ", name)
}
