// Package interop adapts third-party geometry values to this library's
// model through the geo-interface capability, so external shapes can be
// used wherever a geometry is expected without teaching the core about
// their libraries.
package interop

import (
	"encoding/json"

	geom "github.com/twpayne/go-geom"
	geomjson "github.com/twpayne/go-geom/encoding/geojson"

	"github.com/hangxie/geojson-go/geometry"
)

// Geom wraps a go-geom value so it satisfies geometry.GeoInterfacer and
// can be passed directly as a feature's geometry field.
type Geom struct {
	T geom.T
}

// GeoInterface renders the wrapped value as a GeoJSON geometry mapping.
// Returns nil when the value cannot be encoded.
func (g Geom) GeoInterface() map[string]any {
	data, err := geomjson.Marshal(g.T)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

// FromGeom converts a go-geom geometry into a validated geometry value.
func FromGeom(t geom.T) (geometry.Geometry, error) {
	data, err := geomjson.Marshal(t)
	if err != nil {
		return nil, err
	}
	return geometry.Unmarshal(data)
}

// ToGeom converts a geometry value into its go-geom equivalent.
func ToGeom(g geometry.Geometry) (geom.T, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	var t geom.T
	if err := geomjson.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return t, nil
}
