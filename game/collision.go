package game

import (
	"cmp"
	"math"
	"slices"
)

// Circle is a collider shape
type Circle struct {
	Center Vec2
	Radius float64
}

// Overlaps reports whether two circles intersect (touching does not count)
func (c Circle) Overlaps(o Circle) bool {
	r := c.Radius + o.Radius
	return c.Center.Sub(o.Center).LenSq() < r*r
}

// Rect is an axis-aligned rectangle
type Rect struct {
	Min, Max Vec2
}

// Clamp moves p inside the rectangle
func (r Rect) Clamp(p Vec2) Vec2 {
	return Vec2{
		X: math.Max(r.Min.X, math.Min(p.X, r.Max.X)),
		Y: math.Max(r.Min.Y, math.Min(p.Y, r.Max.Y)),
	}
}

// Contains reports whether p lies inside the rectangle (edges included)
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// SpatialIndex answers overlap queries for the simulation. Implementations
// are synchronous and in-memory.
type SpatialIndex interface {
	// Insert adds or replaces the collider for h
	Insert(h Handle, shape Circle)
	// Update moves the collider for h, inserting it if unknown
	Update(h Handle, shape Circle)
	// Remove drops h; unknown handles are ignored
	Remove(h Handle)
	// Query appends every handle whose collider overlaps shape to buf
	Query(shape Circle, buf []Handle) []Handle
	// Clear drops every collider
	Clear()
}

// BruteForceIndex checks every collider on each query. It is the reference
// implementation for small entity counts and tests.
type BruteForceIndex struct {
	shapes map[Handle]Circle
	order  []Handle
}

// NewBruteForceIndex creates an empty brute force index
func NewBruteForceIndex() *BruteForceIndex {
	return &BruteForceIndex{shapes: make(map[Handle]Circle)}
}

func (b *BruteForceIndex) Insert(h Handle, shape Circle) {
	if _, ok := b.shapes[h]; !ok {
		b.order = append(b.order, h)
	}
	b.shapes[h] = shape
}

func (b *BruteForceIndex) Update(h Handle, shape Circle) {
	b.Insert(h, shape)
}

func (b *BruteForceIndex) Remove(h Handle) {
	if _, ok := b.shapes[h]; !ok {
		return
	}
	delete(b.shapes, h)
	b.order = slices.DeleteFunc(b.order, func(o Handle) bool { return o == h })
}

func (b *BruteForceIndex) Query(shape Circle, buf []Handle) []Handle {
	start := len(buf)
	for _, h := range b.order {
		if shape.Overlaps(b.shapes[h]) {
			buf = append(buf, h)
		}
	}
	sortHandles(buf[start:])
	return buf
}

func (b *BruteForceIndex) Clear() {
	clear(b.shapes)
	b.order = b.order[:0]
}

// sortHandles orders query results by slot so every index implementation
// reports overlaps in the same order
func sortHandles(hs []Handle) {
	slices.SortFunc(hs, func(a, b Handle) int {
		return cmp.Compare(a.index, b.index)
	})
}
