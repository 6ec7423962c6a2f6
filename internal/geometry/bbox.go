package geometry

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// BoundingBox represents an axis-aligned 3D bounding box
type BoundingBox struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
}

// Width returns the width (X dimension) of the bounding box
func (b *BoundingBox) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the height (Y dimension) of the bounding box
func (b *BoundingBox) Height() float64 {
	return b.MaxY - b.MinY
}

// Depth returns the depth (Z dimension) of the bounding box
func (b *BoundingBox) Depth() float64 {
	return b.MaxZ - b.MinZ
}

// Center returns the center point of the bounding box
func (b *BoundingBox) Center() r3.Vector {
	return r3.Vector{
		X: (b.MinX + b.MaxX) / 2,
		Y: (b.MinY + b.MaxY) / 2,
		Z: (b.MinZ + b.MaxZ) / 2,
	}
}

// Extend grows the bounding box so it contains p
func (b *BoundingBox) Extend(p r3.Vector) {
	b.MinX = math.Min(b.MinX, p.X)
	b.MinY = math.Min(b.MinY, p.Y)
	b.MinZ = math.Min(b.MinZ, p.Z)
	b.MaxX = math.Max(b.MaxX, p.X)
	b.MaxY = math.Max(b.MaxY, p.Y)
	b.MaxZ = math.Max(b.MaxZ, p.Z)
}

// Union grows the bounding box so it contains other
func (b *BoundingBox) Union(other *BoundingBox) {
	b.Extend(r3.Vector{X: other.MinX, Y: other.MinY, Z: other.MinZ})
	b.Extend(r3.Vector{X: other.MaxX, Y: other.MaxY, Z: other.MaxZ})
}

// String formats the bounds as "[min] .. [max]"
func (b *BoundingBox) String() string {
	return fmt.Sprintf("[%.2f, %.2f, %.2f] .. [%.2f, %.2f, %.2f]",
		b.MinX, b.MinY, b.MinZ, b.MaxX, b.MaxY, b.MaxZ)
}

// BoundsOf calculates the axis-aligned bounds of a set of points
func BoundsOf(points []r3.Vector) (*BoundingBox, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no points provided")
	}

	// Initialize with first point
	first := points[0]
	bbox := &BoundingBox{
		MinX: first.X,
		MinY: first.Y,
		MinZ: first.Z,
		MaxX: first.X,
		MaxY: first.Y,
		MaxZ: first.Z,
	}

	for _, p := range points[1:] {
		bbox.Extend(p)
	}

	return bbox, nil
}
