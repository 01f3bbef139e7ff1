// Package geometry implements the seven GeoJSON geometry variants from
// RFC 7946 with structural validation, type-tag dispatch, Well-Known-Text
// rendering and bounding box computation.
package geometry

import (
	"errors"
	"fmt"

	"github.com/hangxie/geojson-go/common"
	"github.com/hangxie/geojson-go/types"
)

// Geometry type tags as they appear in the "type" field, case-sensitive.
const (
	TypePoint              = "Point"
	TypeMultiPoint         = "MultiPoint"
	TypeLineString         = "LineString"
	TypeMultiLineString    = "MultiLineString"
	TypePolygon            = "Polygon"
	TypeMultiPolygon       = "MultiPolygon"
	TypeGeometryCollection = "GeometryCollection"
)

// Geometry is the closed union of the seven GeoJSON geometry variants.
type Geometry interface {
	// GeometryType returns the variant's literal type tag.
	GeometryType() string
	// HasZ reports whether any contained position carries an altitude.
	HasZ() bool
	// WKT returns the Well-Known-Text representation.
	WKT() string
	// Map returns the value form of the object, null entries included.
	Map() map[string]any
	// GeoInterface returns the wire form of the object with the
	// omit-if-null policy applied, suitable for JSON serialization.
	GeoInterface() map[string]any
	// Validate checks the variant's structural invariants.
	Validate() error
}

// GeoInterfacer is the capability interface for foreign geometry-like
// values: anything that can present itself as a GeoJSON geometry mapping
// is accepted wherever a geometry is expected, without a dependency on
// the foreign library.
type GeoInterfacer interface {
	GeoInterface() map[string]any
}

// Point is a single position.
type Point struct {
	Coordinates types.Position
	BBox        types.BBox
}

func (p *Point) GeometryType() string { return TypePoint }

func (p *Point) HasZ() bool { return p.Coordinates.HasZ() }

func (p *Point) Validate() error {
	return errors.Join(p.Coordinates.Validate(), p.BBox.Validate())
}

func (p *Point) Map() map[string]any {
	return geometryMap(TypePoint, p.Coordinates, p.BBox)
}

func (p *Point) GeoInterface() map[string]any {
	return common.CleanNulls(p.Map(), "bbox")
}

// MultiPoint is a list of positions.
type MultiPoint struct {
	Coordinates types.MultiPointCoords
	BBox        types.BBox
}

func (m *MultiPoint) GeometryType() string { return TypeMultiPoint }

func (m *MultiPoint) HasZ() bool { return positionsHaveZ(m.Coordinates) }

func (m *MultiPoint) Validate() error {
	return errors.Join(m.Coordinates.Validate(), m.BBox.Validate())
}

func (m *MultiPoint) Map() map[string]any {
	return geometryMap(TypeMultiPoint, m.Coordinates, m.BBox)
}

func (m *MultiPoint) GeoInterface() map[string]any {
	return common.CleanNulls(m.Map(), "bbox")
}

// LineString is a sequence of at least two positions.
type LineString struct {
	Coordinates types.LineStringCoords
	BBox        types.BBox
}

func (l *LineString) GeometryType() string { return TypeLineString }

func (l *LineString) HasZ() bool { return positionsHaveZ(l.Coordinates) }

func (l *LineString) Validate() error {
	return errors.Join(l.Coordinates.Validate(), l.BBox.Validate())
}

func (l *LineString) Map() map[string]any {
	return geometryMap(TypeLineString, l.Coordinates, l.BBox)
}

func (l *LineString) GeoInterface() map[string]any {
	return common.CleanNulls(l.Map(), "bbox")
}

// MultiLineString is a list of line string coordinate sequences.
type MultiLineString struct {
	Coordinates types.MultiLineStringCoords
	BBox        types.BBox
}

func (m *MultiLineString) GeometryType() string { return TypeMultiLineString }

func (m *MultiLineString) HasZ() bool { return linesHaveZ(m.Coordinates) }

func (m *MultiLineString) Validate() error {
	return errors.Join(m.Coordinates.Validate(), m.BBox.Validate())
}

func (m *MultiLineString) Map() map[string]any {
	return geometryMap(TypeMultiLineString, m.Coordinates, m.BBox)
}

func (m *MultiLineString) GeoInterface() map[string]any {
	return common.CleanNulls(m.Map(), "bbox")
}

// Polygon is a list of linear rings: the first is the exterior, the rest
// are interior holes. An empty ring list is a valid degenerate polygon.
type Polygon struct {
	Coordinates types.PolygonCoords
	BBox        types.BBox
}

// NewPolygonFromBounds creates a rectangular polygon from a bounding box.
func NewPolygonFromBounds(xmin, ymin, xmax, ymax float64) *Polygon {
	return &Polygon{
		Coordinates: types.PolygonCoords{{
			{xmin, ymin}, {xmax, ymin}, {xmax, ymax}, {xmin, ymax}, {xmin, ymin},
		}},
	}
}

func (p *Polygon) GeometryType() string { return TypePolygon }

func (p *Polygon) HasZ() bool { return linesHaveZ(p.Coordinates) }

// Exterior returns the exterior ring, or nil for a degenerate polygon.
func (p *Polygon) Exterior() types.LinearRing {
	if len(p.Coordinates) == 0 {
		return nil
	}
	return p.Coordinates[0]
}

// Interiors returns the interior rings (holes).
func (p *Polygon) Interiors() []types.LinearRing {
	if len(p.Coordinates) < 2 {
		return nil
	}
	return p.Coordinates[1:]
}

func (p *Polygon) Validate() error {
	return errors.Join(p.Coordinates.Validate(), p.BBox.Validate())
}

func (p *Polygon) Map() map[string]any {
	return geometryMap(TypePolygon, p.Coordinates, p.BBox)
}

func (p *Polygon) GeoInterface() map[string]any {
	return common.CleanNulls(p.Map(), "bbox")
}

// MultiPolygon is a list of polygon coordinate sets.
type MultiPolygon struct {
	Coordinates types.MultiPolygonCoords
	BBox        types.BBox
}

func (m *MultiPolygon) GeometryType() string { return TypeMultiPolygon }

func (m *MultiPolygon) HasZ() bool {
	for _, polygon := range m.Coordinates {
		if linesHaveZ(polygon) {
			return true
		}
	}
	return false
}

func (m *MultiPolygon) Validate() error {
	return errors.Join(m.Coordinates.Validate(), m.BBox.Validate())
}

func (m *MultiPolygon) Map() map[string]any {
	return geometryMap(TypeMultiPolygon, m.Coordinates, m.BBox)
}

func (m *MultiPolygon) GeoInterface() map[string]any {
	return common.CleanNulls(m.Map(), "bbox")
}

// GeometryCollection is a list of geometries of any variant, itself
// included. Collections are built bottom-up from constructed geometries,
// so the member list is always a tree.
type GeometryCollection struct {
	Geometries []Geometry
	BBox       types.BBox
}

func (g *GeometryCollection) GeometryType() string { return TypeGeometryCollection }

func (g *GeometryCollection) HasZ() bool {
	for _, member := range g.Geometries {
		if member.HasZ() {
			return true
		}
	}
	return false
}

// Length returns the number of member geometries.
func (g *GeometryCollection) Length() int { return len(g.Geometries) }

// At returns the member geometry at index i.
func (g *GeometryCollection) At(i int) Geometry { return g.Geometries[i] }

// Validate checks every member plus the collection-level rules. The
// discouraged-but-legal shapes (single member, nested collections,
// homogeneous members) only produce warnings; mixed Z dimensionality
// across members is an error.
func (g *GeometryCollection) Validate() error {
	var errs []error
	for i, member := range g.Geometries {
		if err := member.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("geometries[%d]: %w", i, err))
		}
	}

	if len(g.Geometries) == 1 {
		common.Warnf("GeometryCollection should not be used for single geometries")
	}
	nested := false
	memberTypes := map[string]struct{}{}
	sawZ, saw2D := false, false
	for _, member := range g.Geometries {
		if member.GeometryType() == TypeGeometryCollection {
			nested = true
		}
		memberTypes[member.GeometryType()] = struct{}{}
		if member.HasZ() {
			sawZ = true
		} else {
			saw2D = true
		}
	}
	if nested {
		common.Warnf("GeometryCollection should not be used for nested GeometryCollections")
	}
	if len(memberTypes) == 1 {
		common.Warnf("GeometryCollection should not be used for homogeneous collections")
	}
	if sawZ && saw2D {
		errs = append(errs, errors.New("GeometryCollection cannot have mixed Z dimensionality"))
	}

	if err := g.BBox.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (g *GeometryCollection) Map() map[string]any {
	members := make([]map[string]any, len(g.Geometries))
	for i, member := range g.Geometries {
		members[i] = member.Map()
	}
	m := map[string]any{
		"type":       TypeGeometryCollection,
		"geometries": members,
		"bbox":       nil,
	}
	if g.BBox != nil {
		m["bbox"] = g.BBox
	}
	return m
}

func (g *GeometryCollection) GeoInterface() map[string]any {
	members := make([]map[string]any, len(g.Geometries))
	for i, member := range g.Geometries {
		members[i] = member.GeoInterface()
	}
	m := map[string]any{
		"type":       TypeGeometryCollection,
		"geometries": members,
	}
	if g.BBox != nil {
		m["bbox"] = g.BBox
	}
	return m
}

func geometryMap(typeName string, coordinates any, bbox types.BBox) map[string]any {
	m := map[string]any{
		"type":        typeName,
		"coordinates": coordinates,
		"bbox":        nil,
	}
	if bbox != nil {
		m["bbox"] = bbox
	}
	return m
}

func positionsHaveZ[S ~[]types.Position](positions S) bool {
	for _, p := range positions {
		if p.HasZ() {
			return true
		}
	}
	return false
}

func linesHaveZ[L ~[]types.Position, S ~[]L](lines S) bool {
	for _, line := range lines {
		if positionsHaveZ(line) {
			return true
		}
	}
	return false
}
