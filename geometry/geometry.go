// Package geometry resolves shape footprints, visual centers and connector
// boundary points for diagram elements. It is the single shared geometry
// module: the layout engine and every rendering surface go through it, so all
// surfaces agree on where a shape sits and where a connector meets its edge.
package geometry

import (
	"math"

	"laneflow/diagram"
)

// Shape dimensions per element type. Positions are top-left anchors.
const (
	TaskWidth  = 160.0
	TaskHeight = 60.0

	EventSize   = 40.0 // square footprint around the circle
	EventRadius = 18.0 // drawn circle radius

	GatewaySize         = 56.0
	GatewayHalfDiagonal = 28.0
)

// FootprintOf returns the width and height an element of type t occupies on
// the canvas.
func FootprintOf(t diagram.ElementType) (w, h float64) {
	switch t {
	case diagram.Task:
		return TaskWidth, TaskHeight
	case diagram.Gateway:
		return GatewaySize, GatewaySize
	default: // start and end events
		return EventSize, EventSize
	}
}

// CenterOf returns the visual center of an element of type t anchored at pos.
func CenterOf(t diagram.ElementType, pos diagram.Point) diagram.Point {
	w, h := FootprintOf(t)
	return diagram.Point{X: pos.X + w/2, Y: pos.Y + h/2}
}

// Boundary returns the point on the outline of an element of type t, anchored
// at pos, where a straight connector toward the given center would cross it.
//
// Tasks are rectangles, so the center offset is projected onto the rectangle
// edge (L-infinity). Gateways are diamonds, projected onto the diamond edge
// (L1). Events are circles of radius EventRadius. If both centers coincide
// the element's own center is returned unperturbed.
func Boundary(t diagram.ElementType, pos diagram.Point, toward diagram.Point) diagram.Point {
	c := CenterOf(t, pos)
	dx := toward.X - c.X
	dy := toward.Y - c.Y
	if dx == 0 && dy == 0 {
		return c
	}

	var scale float64
	switch t {
	case diagram.Task:
		scale = 1 / math.Max(math.Abs(dx)/(TaskWidth/2), math.Abs(dy)/(TaskHeight/2))
	case diagram.Gateway:
		scale = GatewayHalfDiagonal / (math.Abs(dx) + math.Abs(dy))
	default:
		scale = EventRadius / math.Hypot(dx, dy)
	}

	return diagram.Point{X: c.X + dx*scale, Y: c.Y + dy*scale}
}

// SquaredDistance returns the squared Euclidean distance between two points.
// Comparisons over squared distances avoid the square root without changing
// the ordering.
func SquaredDistance(a, b diagram.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}
