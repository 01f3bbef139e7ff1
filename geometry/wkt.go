package geometry

import (
	"strconv"
	"strings"

	"github.com/hangxie/geojson-go/types"
)

// WKT rendering. Every variant renders as "TYPE [Z ](coordinates)" or
// "TYPE EMPTY" when the coordinate container is empty. When any position
// in the shape has a Z component the whole shape renders with Z and 2D
// positions are padded with a trailing 0.

func (p *Point) WKT() string {
	return renderWKT(TypePoint, len(p.Coordinates) == 0, p.HasZ(), func(forceZ bool) string {
		return positionWKT(p.Coordinates, forceZ)
	})
}

func (m *MultiPoint) WKT() string {
	return renderWKT(TypeMultiPoint, len(m.Coordinates) == 0, m.HasZ(), func(forceZ bool) string {
		parts := make([]string, len(m.Coordinates))
		for i, position := range m.Coordinates {
			parts[i] = "(" + positionWKT(position, forceZ) + ")"
		}
		return strings.Join(parts, ", ")
	})
}

func (l *LineString) WKT() string {
	return renderWKT(TypeLineString, len(l.Coordinates) == 0, l.HasZ(), func(forceZ bool) string {
		return positionListWKT(l.Coordinates, forceZ)
	})
}

func (m *MultiLineString) WKT() string {
	return renderWKT(TypeMultiLineString, len(m.Coordinates) == 0, m.HasZ(), func(forceZ bool) string {
		return linesWKT(m.Coordinates, forceZ)
	})
}

func (p *Polygon) WKT() string {
	return renderWKT(TypePolygon, len(p.Coordinates) == 0, p.HasZ(), func(forceZ bool) string {
		return linesWKT(p.Coordinates, forceZ)
	})
}

func (m *MultiPolygon) WKT() string {
	return renderWKT(TypeMultiPolygon, len(m.Coordinates) == 0, m.HasZ(), func(forceZ bool) string {
		parts := make([]string, len(m.Coordinates))
		for i, polygon := range m.Coordinates {
			parts[i] = "(" + linesWKT(polygon, forceZ) + ")"
		}
		return strings.Join(parts, ", ")
	})
}

// WKT for a collection renders each member's own WKT. Members signal
// their Z-ness right after the type name, so scanning the joined member
// text for "Z" is enough to decide the collection's Z marker.
func (g *GeometryCollection) WKT() string {
	name := strings.ToUpper(TypeGeometryCollection)
	if len(g.Geometries) == 0 {
		return name + " EMPTY"
	}
	parts := make([]string, len(g.Geometries))
	for i, member := range g.Geometries {
		parts[i] = member.WKT()
	}
	body := "(" + strings.Join(parts, ", ") + ")"
	if strings.Contains(body, "Z") {
		return name + " Z " + body
	}
	return name + " " + body
}

func renderWKT(typeName string, empty, hasZ bool, coordinates func(forceZ bool) string) string {
	name := strings.ToUpper(typeName)
	if empty {
		return name + " EMPTY"
	}
	if hasZ {
		return name + " Z (" + coordinates(true) + ")"
	}
	return name + " (" + coordinates(false) + ")"
}

// formatCoord renders a coordinate in plain decimal form, never scientific.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func positionWKT(position types.Position, forceZ bool) string {
	parts := make([]string, 0, 3)
	for _, n := range position {
		parts = append(parts, formatCoord(n))
	}
	if forceZ && len(position) < 3 {
		parts = append(parts, "0")
	}
	return strings.Join(parts, " ")
}

func positionListWKT[S ~[]types.Position](positions S, forceZ bool) string {
	parts := make([]string, len(positions))
	for i, position := range positions {
		parts[i] = positionWKT(position, forceZ)
	}
	return strings.Join(parts, ", ")
}

func linesWKT[L ~[]types.Position, S ~[]L](lines S, forceZ bool) string {
	parts := make([]string, len(lines))
	for i, line := range lines {
		parts[i] = "(" + positionListWKT(line, forceZ) + ")"
	}
	return strings.Join(parts, ", ")
}
