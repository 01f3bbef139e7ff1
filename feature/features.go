// Package feature implements the GeoJSON Feature and FeatureCollection
// wrappers: a geometry plus arbitrary properties, an optional identifier
// and an optional bounding box. Both wrappers are generic over the
// properties representation, so callers may keep properties as an open
// map or bind them to their own schema type.
package feature

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"iter"

	"github.com/pkg/errors"

	"github.com/hangxie/geojson-go/common"
	"github.com/hangxie/geojson-go/geometry"
	"github.com/hangxie/geojson-go/types"
)

// Type tags, case-sensitive.
const (
	TypeFeature           = "Feature"
	TypeFeatureCollection = "FeatureCollection"
)

// Properties is the open, string-keyed properties representation.
type Properties = map[string]any

// MissingFieldError reports a structurally required field that is absent
// from the input entirely. GeoJSON requires the key to be present even
// when its value is null; omission is an error, null is not.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// Feature pairs a nullable geometry with nullable properties of type P.
type Feature[P any] struct {
	Geometry   geometry.Geometry
	Properties P
	// ID is an optional identifier, an integer or a string; booleans and
	// floats are rejected at validation.
	ID   any
	BBox types.BBox
}

// Option configures optional Feature fields on construction.
type Option func(*featureOptions)

type featureOptions struct {
	id   any
	bbox types.BBox
}

// WithID sets the feature identifier.
func WithID(id any) Option {
	return func(o *featureOptions) { o.id = id }
}

// WithBBox sets the feature bounding box.
func WithBBox(bbox types.BBox) Option {
	return func(o *featureOptions) { o.bbox = bbox }
}

// New creates a Feature without the redundant type tag. Geometry and
// properties may be their zero values; id and bbox are set via options.
func New[P any](g geometry.Geometry, properties P, opts ...Option) *Feature[P] {
	var o featureOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Feature[P]{
		Geometry:   g,
		Properties: properties,
		ID:         o.id,
		BBox:       o.bbox,
	}
}

// Validate checks the feature's own invariants: id type, bbox ordering
// and the contained geometry's structure. Independent field violations
// are aggregated into one error.
func (f *Feature[P]) Validate() error {
	var errs []error
	if _, err := decodeID(f.ID); err != nil {
		errs = append(errs, err)
	}
	if f.Geometry != nil {
		if err := f.Geometry.Validate(); err != nil {
			errs = append(errs, errors.Wrap(err, "geometry"))
		}
	}
	if err := f.BBox.Validate(); err != nil {
		errs = append(errs, err)
	}
	return stderrors.Join(errs...)
}

// Map returns the value form of the feature, null entries included.
func (f *Feature[P]) Map() map[string]any {
	var geom any
	if f.Geometry != nil {
		geom = f.Geometry.Map()
	}
	m := map[string]any{
		"type":       TypeFeature,
		"geometry":   geom,
		"properties": f.Properties,
		"id":         f.ID,
		"bbox":       nil,
	}
	if f.BBox != nil {
		m["bbox"] = f.BBox
	}
	return m
}

// GeoInterface returns the wire form: bbox and id are dropped when null,
// geometry and properties stay present even when null.
func (f *Feature[P]) GeoInterface() map[string]any {
	m := f.Map()
	if f.Geometry != nil {
		m["geometry"] = f.Geometry.GeoInterface()
	}
	return common.CleanNulls(m, "bbox", "id")
}

func (f *Feature[P]) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.GeoInterface())
}

func (f *Feature[P]) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	parsed, err := Parse[P](obj)
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}

// Parse validates an untyped mapping as a Feature. The type, geometry
// and properties keys must all be present, though geometry and properties
// may be null. Independent field errors are reported together; an error
// inside the geometry is reported once with its cause intact.
func Parse[P any](obj map[string]any) (*Feature[P], error) {
	var errs []error
	f := &Feature[P]{}

	if tag, ok := obj["type"]; !ok {
		errs = append(errs, &MissingFieldError{Field: "type"})
	} else if tag != TypeFeature {
		errs = append(errs, fmt.Errorf("type must be %q, got %v", TypeFeature, tag))
	}

	if rawGeometry, ok := obj["geometry"]; !ok {
		errs = append(errs, &MissingFieldError{Field: "geometry"})
	} else if g, err := decodeGeometry(rawGeometry); err != nil {
		errs = append(errs, errors.Wrap(err, "geometry"))
	} else {
		f.Geometry = g
	}

	if rawProperties, ok := obj["properties"]; !ok {
		errs = append(errs, &MissingFieldError{Field: "properties"})
	} else if p, err := convertProperties[P](rawProperties); err != nil {
		errs = append(errs, err)
	} else {
		f.Properties = p
	}

	if id, err := decodeID(obj["id"]); err != nil {
		errs = append(errs, err)
	} else {
		f.ID = id
	}

	if bbox, err := decodeBBox(obj["bbox"]); err != nil {
		errs = append(errs, err)
	} else if err := bbox.Validate(); err != nil {
		errs = append(errs, err)
	} else {
		f.BBox = bbox
	}

	if len(errs) > 0 {
		return nil, stderrors.Join(errs...)
	}
	return f, nil
}

// Unmarshal parses a single GeoJSON Feature document.
func Unmarshal[P any](data []byte) (*Feature[P], error) {
	obj, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	return Parse[P](obj)
}

// FeatureCollection is an ordered, index-addressable list of features.
// Insertion order is the features array order in GeoJSON and is
// preserved as-is: no deduplication, no reordering.
type FeatureCollection[P any] struct {
	Features []*Feature[P]
	BBox     types.BBox
}

// Length returns the number of contained features.
func (fc *FeatureCollection[P]) Length() int { return len(fc.Features) }

// At returns the feature at index i.
func (fc *FeatureCollection[P]) At(i int) *Feature[P] { return fc.Features[i] }

// Iter iterates the features in declared order.
func (fc *FeatureCollection[P]) Iter() iter.Seq[*Feature[P]] {
	return func(yield func(*Feature[P]) bool) {
		for _, f := range fc.Features {
			if !yield(f) {
				return
			}
		}
	}
}

// Validate checks every contained feature and the collection bbox.
func (fc *FeatureCollection[P]) Validate() error {
	var errs []error
	for i, f := range fc.Features {
		if err := f.Validate(); err != nil {
			errs = append(errs, errors.Wrapf(err, "features[%d]", i))
		}
	}
	if err := fc.BBox.Validate(); err != nil {
		errs = append(errs, err)
	}
	return stderrors.Join(errs...)
}

// Map returns the value form of the collection, null entries included.
func (fc *FeatureCollection[P]) Map() map[string]any {
	features := make([]map[string]any, len(fc.Features))
	for i, f := range fc.Features {
		features[i] = f.Map()
	}
	m := map[string]any{
		"type":     TypeFeatureCollection,
		"features": features,
		"bbox":     nil,
	}
	if fc.BBox != nil {
		m["bbox"] = fc.BBox
	}
	return m
}

// GeoInterface returns the wire form with omit-if-null applied.
func (fc *FeatureCollection[P]) GeoInterface() map[string]any {
	features := make([]map[string]any, len(fc.Features))
	for i, f := range fc.Features {
		features[i] = f.GeoInterface()
	}
	m := map[string]any{
		"type":     TypeFeatureCollection,
		"features": features,
		"bbox":     nil,
	}
	if fc.BBox != nil {
		m["bbox"] = fc.BBox
	}
	return common.CleanNulls(m, "bbox")
}

func (fc *FeatureCollection[P]) MarshalJSON() ([]byte, error) {
	return json.Marshal(fc.GeoInterface())
}

func (fc *FeatureCollection[P]) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	parsed, err := ParseCollection[P](obj)
	if err != nil {
		return err
	}
	*fc = *parsed
	return nil
}

// ParseCollection validates an untyped mapping as a FeatureCollection.
// Every invalid feature is reported, each under its index.
func ParseCollection[P any](obj map[string]any) (*FeatureCollection[P], error) {
	var errs []error
	fc := &FeatureCollection[P]{}

	if tag, ok := obj["type"]; !ok {
		errs = append(errs, &MissingFieldError{Field: "type"})
	} else if tag != TypeFeatureCollection {
		errs = append(errs, fmt.Errorf("type must be %q, got %v", TypeFeatureCollection, tag))
	}

	if rawFeatures, ok := obj["features"]; !ok {
		errs = append(errs, &MissingFieldError{Field: "features"})
	} else if list, ok := rawFeatures.([]any); !ok {
		errs = append(errs, fmt.Errorf("features: expected an array, got %T", rawFeatures))
	} else {
		fc.Features = make([]*Feature[P], 0, len(list))
		for i, rawFeature := range list {
			featureObj, ok := rawFeature.(map[string]any)
			if !ok {
				errs = append(errs, fmt.Errorf("features[%d]: expected a feature object, got %T", i, rawFeature))
				continue
			}
			f, err := Parse[P](featureObj)
			if err != nil {
				errs = append(errs, errors.Wrapf(err, "features[%d]", i))
				continue
			}
			fc.Features = append(fc.Features, f)
		}
	}

	if bbox, err := decodeBBox(obj["bbox"]); err != nil {
		errs = append(errs, err)
	} else if err := bbox.Validate(); err != nil {
		errs = append(errs, err)
	} else {
		fc.BBox = bbox
	}

	if len(errs) > 0 {
		return nil, stderrors.Join(errs...)
	}
	return fc, nil
}

// UnmarshalCollection parses a single GeoJSON FeatureCollection document.
func UnmarshalCollection[P any](data []byte) (*FeatureCollection[P], error) {
	obj, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	return ParseCollection[P](obj)
}

// decodeGeometry accepts the shapes a feature's geometry field may take:
// null, an already constructed geometry, a raw GeoJSON mapping, or any
// foreign value exposing the geo-interface capability.
func decodeGeometry(raw any) (geometry.Geometry, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case geometry.Geometry:
		return v, nil
	case geometry.GeoInterfacer:
		return geometry.Parse(v.GeoInterface())
	case map[string]any:
		return geometry.Parse(v)
	default:
		return nil, fmt.Errorf("unsupported geometry value of type %T", raw)
	}
}

func convertProperties[P any](raw any) (P, error) {
	var zero P
	if raw == nil {
		return zero, nil
	}
	if p, ok := raw.(P); ok {
		return p, nil
	}
	// JSON round trip binds open-map input to a typed properties schema.
	data, err := json.Marshal(raw)
	if err != nil {
		return zero, fmt.Errorf("properties: %w", err)
	}
	var p P
	if err := json.Unmarshal(data, &p); err != nil {
		return zero, fmt.Errorf("properties: %w", err)
	}
	return p, nil
}

// decodeID enforces strict id typing: integers and strings only, so
// booleans and floats cannot masquerade as identifiers.
func decodeID(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return v, nil
	case int:
		return v, nil
	case int32:
		return v, nil
	case int64:
		return v, nil
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("feature id must be an integer or a string, got %s", v.String())
		}
		return i, nil
	default:
		return nil, fmt.Errorf("feature id must be an integer or a string, got %T", raw)
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

func decodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("decode geojson object: %w", err)
	}
	return obj, nil
}
