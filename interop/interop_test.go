package interop

import (
	"testing"

	gj "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/require"
	geom "github.com/twpayne/go-geom"

	"github.com/hangxie/geojson-go/feature"
	"github.com/hangxie/geojson-go/geometry"
	"github.com/hangxie/geojson-go/types"
)

func Test_FromGeom(t *testing.T) {
	g, err := FromGeom(geom.NewPointFlat(geom.XY, []float64{102, 0.5}))
	require.NoError(t, err)
	require.Equal(t, "POINT (102 0.5)", g.WKT())
}

func Test_FromGeom_Polygon(t *testing.T) {
	p := geom.NewPolygon(geom.XY).MustSetCoords([][]geom.Coord{
		{{100, 0}, {101, 0}, {101, 1}, {100, 0}},
	})
	g, err := FromGeom(p)
	require.NoError(t, err)
	require.Equal(t, "Polygon", g.GeometryType())
	require.NoError(t, g.Validate())
}

func Test_ToGeom(t *testing.T) {
	converted, err := ToGeom(&geometry.Point{Coordinates: types.Position{102, 0.5}})
	require.NoError(t, err)
	point, ok := converted.(*geom.Point)
	require.True(t, ok)
	require.Equal(t, []float64{102, 0.5}, point.FlatCoords())
}

func Test_Geom_AsFeatureGeometry(t *testing.T) {
	f, err := feature.Parse[feature.Properties](map[string]any{
		"type":       "Feature",
		"geometry":   Geom{T: geom.NewPointFlat(geom.XY, []float64{10, 20})},
		"properties": nil,
	})
	require.NoError(t, err)
	require.Equal(t, "POINT (10 20)", f.Geometry.WKT())
}

func Test_FromGoGeoJSON(t *testing.T) {
	g, err := FromGoGeoJSON(gj.NewPointGeometry([]float64{102, 0.5}))
	require.NoError(t, err)
	require.Equal(t, "POINT (102 0.5)", g.WKT())
}

func Test_ToGoGeoJSON(t *testing.T) {
	converted, err := ToGoGeoJSON(&geometry.LineString{
		Coordinates: types.LineStringCoords{{0, 0}, {1, 1}},
	})
	require.NoError(t, err)
	require.True(t, converted.IsLineString())
	require.Equal(t, [][]float64{{0, 0}, {1, 1}}, converted.LineString)
}

func Test_GoGeoJSON_AsFeatureGeometry(t *testing.T) {
	f, err := feature.Parse[feature.Properties](map[string]any{
		"type":       "Feature",
		"geometry":   GoGeoJSON{Geometry: gj.NewPointGeometry([]float64{1, 2})},
		"properties": nil,
	})
	require.NoError(t, err)
	require.Equal(t, "POINT (1 2)", f.Geometry.WKT())
}
