package geometry

import (
	"encoding/json"
	"fmt"
)

// JSON marshaling goes through GeoInterface so the omit-if-null policy is
// applied at the wire boundary; unmarshaling goes through the validating
// Parse path and rejects a document whose type tag does not match the
// receiver.

func (p *Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.GeoInterface())
}

func (p *Point) UnmarshalJSON(data []byte) error {
	g, err := Unmarshal(data)
	if err != nil {
		return err
	}
	parsed, ok := g.(*Point)
	if !ok {
		return fmt.Errorf("expected %s, got %s", TypePoint, g.GeometryType())
	}
	*p = *parsed
	return nil
}

func (m *MultiPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.GeoInterface())
}

func (m *MultiPoint) UnmarshalJSON(data []byte) error {
	g, err := Unmarshal(data)
	if err != nil {
		return err
	}
	parsed, ok := g.(*MultiPoint)
	if !ok {
		return fmt.Errorf("expected %s, got %s", TypeMultiPoint, g.GeometryType())
	}
	*m = *parsed
	return nil
}

func (l *LineString) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.GeoInterface())
}

func (l *LineString) UnmarshalJSON(data []byte) error {
	g, err := Unmarshal(data)
	if err != nil {
		return err
	}
	parsed, ok := g.(*LineString)
	if !ok {
		return fmt.Errorf("expected %s, got %s", TypeLineString, g.GeometryType())
	}
	*l = *parsed
	return nil
}

func (m *MultiLineString) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.GeoInterface())
}

func (m *MultiLineString) UnmarshalJSON(data []byte) error {
	g, err := Unmarshal(data)
	if err != nil {
		return err
	}
	parsed, ok := g.(*MultiLineString)
	if !ok {
		return fmt.Errorf("expected %s, got %s", TypeMultiLineString, g.GeometryType())
	}
	*m = *parsed
	return nil
}

func (p *Polygon) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.GeoInterface())
}

func (p *Polygon) UnmarshalJSON(data []byte) error {
	g, err := Unmarshal(data)
	if err != nil {
		return err
	}
	parsed, ok := g.(*Polygon)
	if !ok {
		return fmt.Errorf("expected %s, got %s", TypePolygon, g.GeometryType())
	}
	*p = *parsed
	return nil
}

func (m *MultiPolygon) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.GeoInterface())
}

func (m *MultiPolygon) UnmarshalJSON(data []byte) error {
	g, err := Unmarshal(data)
	if err != nil {
		return err
	}
	parsed, ok := g.(*MultiPolygon)
	if !ok {
		return fmt.Errorf("expected %s, got %s", TypeMultiPolygon, g.GeometryType())
	}
	*m = *parsed
	return nil
}

func (g *GeometryCollection) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.GeoInterface())
}

func (g *GeometryCollection) UnmarshalJSON(data []byte) error {
	parsed, err := Unmarshal(data)
	if err != nil {
		return err
	}
	collection, ok := parsed.(*GeometryCollection)
	if !ok {
		return fmt.Errorf("expected %s, got %s", TypeGeometryCollection, parsed.GeometryType())
	}
	*g = *collection
	return nil
}
