package interop

import (
	"encoding/json"

	gj "github.com/paulmach/go.geojson"

	"github.com/hangxie/geojson-go/geometry"
)

// GoGeoJSON wraps a paulmach/go.geojson geometry so it satisfies
// geometry.GeoInterfacer.
type GoGeoJSON struct {
	Geometry *gj.Geometry
}

// GeoInterface renders the wrapped value as a GeoJSON geometry mapping.
// Returns nil when the value cannot be encoded.
func (g GoGeoJSON) GeoInterface() map[string]any {
	data, err := g.Geometry.MarshalJSON()
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

// FromGoGeoJSON converts a go.geojson geometry into a validated geometry
// value.
func FromGoGeoJSON(g *gj.Geometry) (geometry.Geometry, error) {
	data, err := g.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return geometry.Unmarshal(data)
}

// ToGoGeoJSON converts a geometry value into its go.geojson equivalent.
func ToGoGeoJSON(g geometry.Geometry) (*gj.Geometry, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	return gj.UnmarshalGeometry(data)
}
