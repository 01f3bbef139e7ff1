package geometry

import (
	"github.com/hangxie/geojson-go/types"
)

// BBoxCalculator accumulates coordinate bounds from positions. When any
// added position carries a Z component the resulting bbox is 3D; Z bounds
// only cover the positions that actually have one.
type BBoxCalculator struct {
	minX, minY, minZ float64
	maxX, maxY, maxZ float64
	hasZ             bool
	initialized      bool
}

// NewBBoxCalculator creates a new bounding box calculator.
func NewBBoxCalculator() *BBoxCalculator {
	return &BBoxCalculator{}
}

// Add folds a position into the bounds.
func (b *BBoxCalculator) Add(position types.Position) {
	if len(position) < 2 {
		return
	}
	x, y := position[0], position[1]
	if !b.initialized {
		b.minX, b.maxX = x, x
		b.minY, b.maxY = y, y
		b.initialized = true
	} else {
		b.minX = min(b.minX, x)
		b.maxX = max(b.maxX, x)
		b.minY = min(b.minY, y)
		b.maxY = max(b.maxY, y)
	}

	if z, ok := position.Alt(); ok {
		if !b.hasZ {
			b.minZ, b.maxZ = z, z
			b.hasZ = true
		} else {
			b.minZ = min(b.minZ, z)
			b.maxZ = max(b.maxZ, z)
		}
	}
}

// Bounds returns the accumulated bbox, 4 or 6 components depending on
// whether any position carried a Z.
func (b *BBoxCalculator) Bounds() (types.BBox, bool) {
	if !b.initialized {
		return nil, false
	}
	if b.hasZ {
		return types.BBox{b.minX, b.minY, b.minZ, b.maxX, b.maxY, b.maxZ}, true
	}
	return types.BBox{b.minX, b.minY, b.maxX, b.maxY}, true
}

// ComputeBBox returns the axis-aligned envelope of a geometry's
// coordinates, or nil when the geometry has none.
func ComputeBBox(g Geometry) types.BBox {
	calc := NewBBoxCalculator()
	forEachPosition(g, calc.Add)
	bbox, ok := calc.Bounds()
	if !ok {
		return nil
	}
	return bbox
}

func forEachPosition(g Geometry, fn func(types.Position)) {
	switch v := g.(type) {
	case *Point:
		fn(v.Coordinates)
	case *MultiPoint:
		for _, position := range v.Coordinates {
			fn(position)
		}
	case *LineString:
		for _, position := range v.Coordinates {
			fn(position)
		}
	case *MultiLineString:
		for _, line := range v.Coordinates {
			for _, position := range line {
				fn(position)
			}
		}
	case *Polygon:
		for _, ring := range v.Coordinates {
			for _, position := range ring {
				fn(position)
			}
		}
	case *MultiPolygon:
		for _, polygon := range v.Coordinates {
			for _, ring := range polygon {
				for _, position := range ring {
					fn(position)
				}
			}
		}
	case *GeometryCollection:
		for _, member := range v.Geometries {
			forEachPosition(member, fn)
		}
	}
}
