package geometry

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/hangxie/geojson-go/types"
)

// ErrMissingType is returned when an object carries no "type" field.
var ErrMissingType = errors.New("missing 'type' field in geometry")

// UnknownTypeError is returned when the "type" tag does not name one of
// the seven geometry variants.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown geometry type: %q", e.Type)
}

var parsers map[string]func(map[string]any) (Geometry, error)

func init() {
	parsers = map[string]func(map[string]any) (Geometry, error){
		TypePoint:              parsePoint,
		TypeMultiPoint:         parseMultiPoint,
		TypeLineString:         parseLineString,
		TypeMultiLineString:    parseMultiLineString,
		TypePolygon:            parsePolygon,
		TypeMultiPolygon:       parseMultiPolygon,
		TypeGeometryCollection: parseGeometryCollection,
	}
}

// Parse inspects the "type" tag of an untyped GeoJSON mapping and routes
// it to the matching variant's validating constructor. Structural errors
// from the variant propagate with their cause intact.
func Parse(obj map[string]any) (Geometry, error) {
	tag, ok := obj["type"]
	if !ok {
		return nil, ErrMissingType
	}
	name, ok := tag.(string)
	if !ok {
		return nil, &UnknownTypeError{Type: fmt.Sprintf("%v", tag)}
	}
	parse, ok := parsers[name]
	if !ok {
		return nil, &UnknownTypeError{Type: name}
	}
	return parse(obj)
}

// Unmarshal parses a single GeoJSON geometry document.
func Unmarshal(data []byte) (Geometry, error) {
	obj, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	return Parse(obj)
}

// decodeObject decodes a JSON object keeping numbers as json.Number so
// integer values survive untouched.
func decodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("decode geojson object: %w", err)
	}
	return obj, nil
}

func parsePoint(obj map[string]any) (Geometry, error) {
	raw, ok := obj["coordinates"]
	if !ok {
		return nil, errors.New("missing 'coordinates' field in Point")
	}
	position, err := decodePosition(raw)
	if err != nil {
		return nil, errors.Wrap(err, "coordinates")
	}
	bbox, err := decodeBBox(obj["bbox"])
	if err != nil {
		return nil, err
	}
	g := &Point{Coordinates: position, BBox: bbox}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func parseMultiPoint(obj map[string]any) (Geometry, error) {
	raw, ok := obj["coordinates"]
	if !ok {
		return nil, errors.New("missing 'coordinates' field in MultiPoint")
	}
	positions, err := decodePositionList(raw)
	if err != nil {
		return nil, errors.Wrap(err, "coordinates")
	}
	bbox, err := decodeBBox(obj["bbox"])
	if err != nil {
		return nil, err
	}
	g := &MultiPoint{Coordinates: types.MultiPointCoords(positions), BBox: bbox}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func parseLineString(obj map[string]any) (Geometry, error) {
	raw, ok := obj["coordinates"]
	if !ok {
		return nil, errors.New("missing 'coordinates' field in LineString")
	}
	positions, err := decodePositionList(raw)
	if err != nil {
		return nil, errors.Wrap(err, "coordinates")
	}
	bbox, err := decodeBBox(obj["bbox"])
	if err != nil {
		return nil, err
	}
	g := &LineString{Coordinates: types.LineStringCoords(positions), BBox: bbox}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func parseMultiLineString(obj map[string]any) (Geometry, error) {
	raw, ok := obj["coordinates"]
	if !ok {
		return nil, errors.New("missing 'coordinates' field in MultiLineString")
	}
	lines, err := decodePositionListList(raw)
	if err != nil {
		return nil, errors.Wrap(err, "coordinates")
	}
	coords := make(types.MultiLineStringCoords, len(lines))
	for i, line := range lines {
		coords[i] = types.LineStringCoords(line)
	}
	bbox, err := decodeBBox(obj["bbox"])
	if err != nil {
		return nil, err
	}
	g := &MultiLineString{Coordinates: coords, BBox: bbox}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func parsePolygon(obj map[string]any) (Geometry, error) {
	raw, ok := obj["coordinates"]
	if !ok {
		return nil, errors.New("missing 'coordinates' field in Polygon")
	}
	rings, err := decodePositionListList(raw)
	if err != nil {
		return nil, errors.Wrap(err, "coordinates")
	}
	coords := make(types.PolygonCoords, len(rings))
	for i, ring := range rings {
		coords[i] = types.LinearRing(ring)
	}
	bbox, err := decodeBBox(obj["bbox"])
	if err != nil {
		return nil, err
	}
	g := &Polygon{Coordinates: coords, BBox: bbox}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func parseMultiPolygon(obj map[string]any) (Geometry, error) {
	raw, ok := obj["coordinates"]
	if !ok {
		return nil, errors.New("missing 'coordinates' field in MultiPolygon")
	}
	list, ok := rawList(raw)
	if !ok {
		return nil, errors.Errorf("coordinates: expected an array of polygons, got %T", raw)
	}
	coords := make(types.MultiPolygonCoords, len(list))
	for i, rawPolygon := range list {
		rings, err := decodePositionListList(rawPolygon)
		if err != nil {
			return nil, errors.Wrapf(err, "coordinates[%d]", i)
		}
		polygon := make(types.PolygonCoords, len(rings))
		for j, ring := range rings {
			polygon[j] = types.LinearRing(ring)
		}
		coords[i] = polygon
	}
	bbox, err := decodeBBox(obj["bbox"])
	if err != nil {
		return nil, err
	}
	g := &MultiPolygon{Coordinates: coords, BBox: bbox}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func parseGeometryCollection(obj map[string]any) (Geometry, error) {
	raw, ok := obj["geometries"]
	if !ok {
		return nil, errors.New("missing 'geometries' field in GeometryCollection")
	}
	list, ok := rawList(raw)
	if !ok {
		return nil, errors.Errorf("geometries: expected an array, got %T", raw)
	}
	members := make([]Geometry, len(list))
	for i, rawMember := range list {
		member, err := decodeMember(rawMember)
		if err != nil {
			return nil, errors.Wrapf(err, "geometries[%d]", i)
		}
		members[i] = member
	}
	bbox, err := decodeBBox(obj["bbox"])
	if err != nil {
		return nil, err
	}
	g := &GeometryCollection{Geometries: members, BBox: bbox}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func decodeMember(raw any) (Geometry, error) {
	switch v := raw.(type) {
	case Geometry:
		return v, nil
	case map[string]any:
		return Parse(v)
	default:
		return nil, errors.Errorf("expected a geometry object, got %T", raw)
	}
}

// rawList normalizes the accepted sequence kinds into []any.
func rawList(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case []any:
		return v, true
	default:
		return nil, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func decodePosition(raw any) (types.Position, error) {
	switch v := raw.(type) {
	case types.Position:
		return v, nil
	case []float64:
		return types.Position(v), nil
	case []any:
		position := make(types.Position, len(v))
		for i, elem := range v {
			f, ok := toFloat(elem)
			if !ok {
				return nil, fmt.Errorf("component %d is not a number, got %T", i, elem)
			}
			position[i] = f
		}
		return position, nil
	default:
		return nil, fmt.Errorf("expected a position array, got %T", raw)
	}
}

func decodePositionList(raw any) ([]types.Position, error) {
	switch v := raw.(type) {
	case []types.Position:
		return v, nil
	case [][]float64:
		positions := make([]types.Position, len(v))
		for i, p := range v {
			positions[i] = types.Position(p)
		}
		return positions, nil
	case []any:
		positions := make([]types.Position, len(v))
		for i, elem := range v {
			position, err := decodePosition(elem)
			if err != nil {
				return nil, errors.Wrapf(err, "position %d", i)
			}
			positions[i] = position
		}
		return positions, nil
	default:
		return nil, fmt.Errorf("expected an array of positions, got %T", raw)
	}
}

func decodePositionListList(raw any) ([][]types.Position, error) {
	switch v := raw.(type) {
	case []any:
		lists := make([][]types.Position, len(v))
		for i, elem := range v {
			list, err := decodePositionList(elem)
			if err != nil {
				return nil, errors.Wrapf(err, "element %d", i)
			}
			lists[i] = list
		}
		return lists, nil
	default:
		return nil, fmt.Errorf("expected a nested array of positions, got %T", raw)
	}
}

func decodeBBox(raw any) (types.BBox, error) {
	if raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case types.BBox:
		return v, nil
	case []float64:
		return types.BBox(v), nil
	case []any:
		bbox := make(types.BBox, len(v))
		for i, elem := range v {
			f, ok := toFloat(elem)
			if !ok {
				return nil, fmt.Errorf("bbox: component %d is not a number, got %T", i, elem)
			}
			bbox[i] = f
		}
		return bbox, nil
	default:
		return nil, fmt.Errorf("bbox: expected an array of numbers, got %T", raw)
	}
}
