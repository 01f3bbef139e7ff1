// Package types defines the coordinate primitives shared by all GeoJSON
// objects: positions, bounding boxes and the constrained coordinate arrays
// used by the geometry variants.
package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hangxie/geojson-go/common"
)

// Position is a single coordinate tuple: longitude, latitude and an
// optional altitude. A valid position has exactly 2 or 3 components.
type Position []float64

// Lon returns the longitude (X) component.
func (p Position) Lon() float64 { return p[0] }

// Lat returns the latitude (Y) component.
func (p Position) Lat() float64 { return p[1] }

// Alt returns the altitude (Z) component and whether it is present.
func (p Position) Alt() (float64, bool) {
	if len(p) < 3 {
		return 0, false
	}
	return p[2], true
}

// HasZ reports whether the position carries an altitude component.
func (p Position) HasZ() bool { return len(p) == 3 }

// Equal reports structural equality of two positions.
func (p Position) Equal(other Position) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

func (p Position) Validate() error {
	if len(p) < 2 || len(p) > 3 {
		return fmt.Errorf("position must have 2 or 3 components, got %d", len(p))
	}
	return nil
}

// BBox is a flat bounding box tuple: [minX, minY, maxX, maxY] or
// [minX, minY, minZ, maxX, maxY, maxZ]. A nil BBox means absent.
type BBox []float64

// Is3D reports whether the bounding box carries Z components.
func (b BBox) Is3D() bool { return len(b) == 6 }

// Validate checks component count and min/max ordering. Violations on the
// Y and Z axes are collected and returned as a single error so the caller
// sees every broken axis at once. Min X > Max X denotes a box crossing the
// antimeridian and only emits a warning.
func (b BBox) Validate() error {
	if b == nil {
		return nil
	}
	if len(b) != 4 && len(b) != 6 {
		return fmt.Errorf("bbox must have 4 or 6 components, got %d", len(b))
	}

	offset := len(b) / 2
	if b[0] > b[offset] {
		common.Warnf("bbox crossing the antimeridian line, Min X (%v) > Max X (%v)", b[0], b[offset])
	}

	var msgs []string
	if b[1] > b[1+offset] {
		msgs = append(msgs, fmt.Sprintf("Min Y (%v) must be <= Max Y (%v).", b[1], b[1+offset]))
	}
	if offset > 2 && b[2] > b[2+offset] {
		msgs = append(msgs, fmt.Sprintf("Min Z (%v) must be <= Max Z (%v).", b[2], b[2+offset]))
	}
	if len(msgs) > 0 {
		return errors.New("invalid bbox: " + strings.Join(msgs, " "))
	}
	return nil
}

// MultiPointCoords is a list of positions with no minimum length.
type MultiPointCoords []Position

func (c MultiPointCoords) Validate() error {
	return validatePositions(c)
}

// LineStringCoords is a list of at least 2 positions.
type LineStringCoords []Position

func (c LineStringCoords) Validate() error {
	if len(c) < 2 {
		return fmt.Errorf("line string requires at least 2 positions, got %d", len(c))
	}
	return validatePositions(c)
}

// LinearRing is a closed list of at least 4 positions where the first and
// last position are structurally equal.
type LinearRing []Position

func (r LinearRing) Validate() error {
	// arity before closure so a short ring reports the more basic problem
	if len(r) < 4 {
		return fmt.Errorf("linear ring requires at least 4 positions, got %d", len(r))
	}
	if err := validatePositions(r); err != nil {
		return err
	}
	if !r[0].Equal(r[len(r)-1]) {
		return errors.New("linear ring must have the same start and end coordinates")
	}
	return nil
}

// Closed reports whether the ring's first position equals its last.
func (r LinearRing) Closed() bool {
	return len(r) >= 2 && r[0].Equal(r[len(r)-1])
}

// MultiLineStringCoords is a list of line string coordinate sequences.
type MultiLineStringCoords []LineStringCoords

func (c MultiLineStringCoords) Validate() error {
	for i, line := range c {
		if err := line.Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
	}
	return nil
}

// PolygonCoords is a list of linear rings, the first being the exterior
// and the remainder interior holes. An empty list is a valid degenerate
// polygon; ring rules apply only to the rings that are present.
type PolygonCoords []LinearRing

func (c PolygonCoords) Validate() error {
	for i, ring := range c {
		if err := ring.Validate(); err != nil {
			return fmt.Errorf("ring %d: %w", i, err)
		}
	}
	return nil
}

// MultiPolygonCoords is a list of polygon coordinate sets.
type MultiPolygonCoords []PolygonCoords

func (c MultiPolygonCoords) Validate() error {
	for i, polygon := range c {
		if err := polygon.Validate(); err != nil {
			return fmt.Errorf("polygon %d: %w", i, err)
		}
	}
	return nil
}

func validatePositions[S ~[]Position](positions S) error {
	for i, p := range positions {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("position %d: %w", i, err)
		}
	}
	return nil
}
