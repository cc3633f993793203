// Package layout computes deterministic render positions for swimlane
// process diagrams. Positions are derived solely from lane membership order
// and per-type footprints; the stored element positions are never consulted
// and never written back.
package layout

import (
	"math"

	"laneflow/diagram"
	"laneflow/geometry"
)

// Config holds the fixed canvas and spacing constants for lane layout.
type Config struct {
	CanvasWidth float64 // total canvas width, independent of content
	LaneHeight  float64 // height of each lane band
	LaneGap     float64 // gap above every lane (and below the last)
	LeftMargin  float64 // minimum x for the first element in a lane
	RightMargin float64 // reserved space at the right canvas edge
	MinGap      float64 // minimum horizontal gap between lane neighbours
}

// DefaultConfig returns the standard layout constants.
func DefaultConfig() Config {
	return Config{
		CanvasWidth: 1440,
		LaneHeight:  120,
		LaneGap:     24,
		LeftMargin:  168,
		RightMargin: 48,
		MinGap:      32,
	}
}

// Engine assigns non-overlapping render positions, one lane at a time.
type Engine struct {
	cfg Config
}

// NewEngine creates an Engine with the default configuration.
func NewEngine() *Engine {
	return &Engine{cfg: DefaultConfig()}
}

// NewEngineWithConfig creates an Engine with custom constants.
func NewEngineWithConfig(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Config returns the engine's layout constants.
func (e *Engine) Config() Config {
	return e.cfg
}

// Positions maps element ids to render positions (top-left anchors) and
// carries the overall canvas size.
type Positions struct {
	Points map[string]diagram.Point
	Width  float64
	Height float64
}

// ComputePositions calculates render positions for every element without
// modifying the diagram. Lanes are processed in list order and members in
// membership order, so identical input always yields identical positions.
func (e *Engine) ComputePositions(d *diagram.ProcessDiagram) *Positions {
	if d == nil {
		return &Positions{Points: map[string]diagram.Point{}, Width: e.cfg.CanvasWidth, Height: e.cfg.LaneGap}
	}

	lanes := len(d.Swimlanes)
	pos := &Positions{
		Points: make(map[string]diagram.Point, len(d.Elements)),
		Width:  e.cfg.CanvasWidth,
		Height: float64(lanes)*e.cfg.LaneHeight + float64(lanes+1)*e.cfg.LaneGap,
	}
	if len(d.Elements) == 0 {
		return pos
	}

	types := make(map[string]diagram.ElementType, len(d.Elements))
	for _, el := range d.Elements {
		if _, exists := types[el.ID]; !exists {
			types[el.ID] = el.Type
		}
	}

	placed := make(map[string]bool, len(d.Elements))
	for i, lane := range d.Swimlanes {
		cursor := e.cfg.LeftMargin
		for _, id := range lane.Elements {
			t, ok := types[id]
			if !ok {
				continue // membership entry without a backing element
			}
			w, h := geometry.FootprintOf(t)

			x := math.Max(cursor, e.cfg.LeftMargin)
			if cap := e.cfg.CanvasWidth - e.cfg.RightMargin - w; x > cap {
				x = cap
			}

			pos.Points[id] = diagram.Point{X: x, Y: e.bandTop(i) + (e.cfg.LaneHeight-h)/2}
			placed[id] = true
			cursor = x + w + e.cfg.MinGap
		}
	}

	// Elements absent from every lane fall back to the first band at the
	// default left margin. Layout places whatever it is given; missing
	// membership is never an error here.
	for _, el := range d.Elements {
		if placed[el.ID] {
			continue
		}
		_, h := geometry.FootprintOf(el.Type)
		pos.Points[el.ID] = diagram.Point{
			X: e.cfg.LeftMargin,
			Y: e.bandTop(0) + (e.cfg.LaneHeight-h)/2,
		}
	}

	return pos
}

// bandTop returns the top y of the lane band at the given index.
func (e *Engine) bandTop(index int) float64 {
	return float64(index+1)*e.cfg.LaneGap + float64(index)*e.cfg.LaneHeight
}
