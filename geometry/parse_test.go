package geometry

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/hangxie/geojson-go/types"
)

func Test_Parse_Dispatch(t *testing.T) {
	tests := []struct {
		name     string
		obj      map[string]any
		expected string
	}{
		{
			name:     "point",
			obj:      map[string]any{"type": "Point", "coordinates": []any{102.0, 0.5}},
			expected: "Point",
		},
		{
			name:     "multipoint",
			obj:      map[string]any{"type": "MultiPoint", "coordinates": []any{[]any{1.0, 2.0}}},
			expected: "MultiPoint",
		},
		{
			name:     "linestring",
			obj:      map[string]any{"type": "LineString", "coordinates": []any{[]any{0.0, 0.0}, []any{1.0, 1.0}}},
			expected: "LineString",
		},
		{
			name: "multilinestring",
			obj: map[string]any{
				"type":        "MultiLineString",
				"coordinates": []any{[]any{[]any{0.0, 0.0}, []any{1.0, 1.0}}},
			},
			expected: "MultiLineString",
		},
		{
			name: "polygon",
			obj: map[string]any{
				"type":        "Polygon",
				"coordinates": []any{[]any{[]any{0.0, 0.0}, []any{1.0, 1.0}, []any{2.0, 2.0}, []any{0.0, 0.0}}},
			},
			expected: "Polygon",
		},
		{
			name: "multipolygon",
			obj: map[string]any{
				"type": "MultiPolygon",
				"coordinates": []any{
					[]any{[]any{[]any{0.0, 0.0}, []any{1.0, 1.0}, []any{2.0, 2.0}, []any{0.0, 0.0}}},
				},
			},
			expected: "MultiPolygon",
		},
		{
			name: "geometrycollection",
			obj: map[string]any{
				"type": "GeometryCollection",
				"geometries": []any{
					map[string]any{"type": "Point", "coordinates": []any{1.0, 2.0}},
					map[string]any{"type": "LineString", "coordinates": []any{[]any{0.0, 0.0}, []any{1.0, 1.0}}},
				},
			},
			expected: "GeometryCollection",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Parse(tt.obj)
			require.NoError(t, err)
			require.Equal(t, tt.expected, g.GeometryType())
		})
	}
}

func Test_Parse_MissingType(t *testing.T) {
	_, err := Parse(map[string]any{"coordinates": []any{1.0, 2.0}})
	require.ErrorIs(t, err, ErrMissingType)
}

func Test_Parse_UnknownType(t *testing.T) {
	_, err := Parse(map[string]any{"type": "Feature", "coordinates": []any{1.0, 2.0}})
	var unknownErr *UnknownTypeError
	require.ErrorAs(t, err, &unknownErr)
	require.Equal(t, "Feature", unknownErr.Type)
	require.EqualError(t, err, `unknown geometry type: "Feature"`)
}

func Test_Parse_NonStringTypeTag(t *testing.T) {
	_, err := Parse(map[string]any{"type": 7, "coordinates": []any{1.0, 2.0}})
	var unknownErr *UnknownTypeError
	require.ErrorAs(t, err, &unknownErr)
}

func Test_Parse_NativeContainers(t *testing.T) {
	// programmatic input may carry native types instead of []any
	g, err := Parse(map[string]any{"type": "Point", "coordinates": types.Position{102, 0.5}})
	require.NoError(t, err)
	require.Equal(t, "POINT (102 0.5)", g.WKT())

	g, err = Parse(map[string]any{
		"type":        "LineString",
		"coordinates": [][]float64{{0, 0}, {1, 1}},
	})
	require.NoError(t, err)
	require.Equal(t, "LINESTRING (0 0, 1 1)", g.WKT())
}

func Test_Parse_CoordinateErrors(t *testing.T) {
	tests := []struct {
		name   string
		obj    map[string]any
		errMsg string
	}{
		{
			name:   "missing_coordinates",
			obj:    map[string]any{"type": "Point"},
			errMsg: "missing 'coordinates' field in Point",
		},
		{
			name:   "coordinates_not_array",
			obj:    map[string]any{"type": "Point", "coordinates": "1,2"},
			errMsg: "expected a position array",
		},
		{
			name:   "component_not_number",
			obj:    map[string]any{"type": "Point", "coordinates": []any{1.0, "x"}},
			errMsg: "component 1 is not a number",
		},
		{
			name:   "too_few_components",
			obj:    map[string]any{"type": "Point", "coordinates": []any{1.0}},
			errMsg: "position must have 2 or 3 components, got 1",
		},
		{
			name:   "linestring_too_short",
			obj:    map[string]any{"type": "LineString", "coordinates": []any{[]any{1.0, 2.0}}},
			errMsg: "line string requires at least 2 positions, got 1",
		},
		{
			name: "unclosed_polygon",
			obj: map[string]any{
				"type":        "Polygon",
				"coordinates": []any{[]any{[]any{0.0, 0.0}, []any{1.0, 1.0}, []any{2.0, 2.0}, []any{3.0, 3.0}}},
			},
			errMsg: "linear ring must have the same start and end coordinates",
		},
		{
			name:   "missing_geometries",
			obj:    map[string]any{"type": "GeometryCollection"},
			errMsg: "missing 'geometries' field in GeometryCollection",
		},
		{
			name:   "bad_bbox",
			obj:    map[string]any{"type": "Point", "coordinates": []any{1.0, 2.0}, "bbox": "nope"},
			errMsg: "bbox: expected an array of numbers",
		},
		{
			name: "bbox_out_of_order",
			obj: map[string]any{
				"type":        "Point",
				"coordinates": []any{1.0, 2.0},
				"bbox":        []any{0.0, 100.0, 0.0, 0.0},
			},
			errMsg: "Min Y (100) must be <= Max Y (0).",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.obj)
			require.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func Test_Parse_NestedErrorReportedOnce(t *testing.T) {
	obj := map[string]any{
		"type": "GeometryCollection",
		"geometries": []any{
			map[string]any{
				"type":        "Polygon",
				"coordinates": []any{[]any{[]any{0.0, 0.0}, []any{1.0, 1.0}, []any{2.0, 2.0}, []any{3.0, 3.0}}},
			},
		},
	}
	_, err := Parse(obj)
	require.Error(t, err)
	require.Contains(t, err.Error(), "geometries[0]")
	require.Equal(t, 1, strings.Count(err.Error(), "linear ring must have the same start and end coordinates"))
}

func Test_Unmarshal_RoundTrip(t *testing.T) {
	docs := []string{
		`{"type":"Point","coordinates":[102.0,0.5]}`,
		`{"type":"Point","coordinates":[102.0,0.5,42.0]}`,
		`{"type":"MultiPoint","coordinates":[[100.0,0.0],[101.0,1.0]]}`,
		`{"type":"LineString","coordinates":[[102.0,0.0],[103.0,1.0],[104.0,0.0]]}`,
		`{"type":"MultiLineString","coordinates":[[[100.0,0.0],[101.0,1.0]],[[102.0,2.0],[103.0,3.0]]]}`,
		`{"type":"Polygon","coordinates":[[[100.0,0.0],[101.0,0.0],[101.0,1.0],[100.0,1.0],[100.0,0.0]]]}`,
		`{"type":"Polygon","coordinates":[],"bbox":[0.0,0.0,1.0,1.0]}`,
		`{"type":"MultiPolygon","coordinates":[[[[102.0,2.0],[103.0,2.0],[103.0,3.0],[102.0,2.0]]]]}`,
		`{"type":"GeometryCollection","geometries":[{"type":"Point","coordinates":[100.0,0.0]},{"type":"LineString","coordinates":[[101.0,0.0],[102.0,1.0]]}]}`,
	}
	for _, doc := range docs {
		g, err := Unmarshal([]byte(doc))
		require.NoError(t, err, doc)

		emitted, err := json.Marshal(g)
		require.NoError(t, err, doc)

		var expected, actual any
		require.NoError(t, json.Unmarshal([]byte(doc), &expected))
		require.NoError(t, json.Unmarshal(emitted, &actual))
		require.Empty(t, cmp.Diff(expected, actual), doc)
	}
}

func Test_UnmarshalJSON_TypedVariant(t *testing.T) {
	var p Point
	require.NoError(t, json.Unmarshal([]byte(`{"type":"Point","coordinates":[102.0,0.5]}`), &p))
	require.Equal(t, types.Position{102, 0.5}, p.Coordinates)

	var l LineString
	err := json.Unmarshal([]byte(`{"type":"Point","coordinates":[102.0,0.5]}`), &l)
	require.ErrorContains(t, err, "expected LineString, got Point")
}

func Test_Unmarshal_InvalidDocument(t *testing.T) {
	_, err := Unmarshal([]byte(`[1,2,3]`))
	require.ErrorContains(t, err, "decode geojson object")

	_, err = Unmarshal([]byte(`{"type":`))
	require.ErrorContains(t, err, "decode geojson object")
}
