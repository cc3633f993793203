package export

import (
	"bytes"
	"fmt"
	"math"

	svg "github.com/ajstarks/svgo"

	"laneflow/diagram"
	"laneflow/geometry"
	"laneflow/layout"
)

// SVG styling constants.
const (
	laneFill    = "fill:#f8fafc;stroke:#cbd5e1;stroke-width:1"
	taskFill    = "fill:#ffffff;stroke:#334155;stroke-width:2"
	startFill   = "fill:#ffffff;stroke:#16a34a;stroke-width:2"
	endFill     = "fill:#ffffff;stroke:#dc2626;stroke-width:3"
	gatewayFill = "fill:#fefce8;stroke:#ca8a04;stroke-width:2"
	flowStroke  = "fill:none;stroke:#334155;stroke-width:2"
	arrowFill   = "fill:#334155"

	labelStyle     = "text-anchor:middle;font-size:13px;font-family:sans-serif;fill:#0f172a"
	laneLabelStyle = "font-size:14px;font-family:sans-serif;fill:#475569"
	flowLabelStyle = "text-anchor:middle;font-size:11px;font-family:sans-serif;fill:#64748b"

	arrowLength   = 10.0
	arrowHalfBase = 4.0
	maxCurveBow   = 40.0
)

// SVGExporter renders a diagram as SVG: one band per lane, a shape per
// element, and a curved connector per connection whose endpoints sit exactly
// on the shape outlines.
type SVGExporter struct {
	engine *layout.Engine
}

// NewSVGExporter creates an SVG exporter with the default layout engine.
func NewSVGExporter() *SVGExporter {
	return &SVGExporter{engine: layout.NewEngine()}
}

// NewSVGExporterWithEngine creates an SVG exporter drawing at the positions
// of the given engine.
func NewSVGExporterWithEngine(engine *layout.Engine) *SVGExporter {
	return &SVGExporter{engine: engine}
}

// Export converts the diagram to an SVG document.
func (e *SVGExporter) Export(d *diagram.ProcessDiagram) (string, error) {
	if d == nil {
		return "", fmt.Errorf("diagram is nil")
	}

	positions := e.engine.ComputePositions(d)
	cfg := e.engine.Config()

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(px(positions.Width), px(positions.Height))

	if d.ProcessName != "" {
		canvas.Title(d.ProcessName)
	}

	e.drawLanes(canvas, d, positions, cfg)

	types := make(map[string]diagram.ElementType, len(d.Elements))
	for _, el := range d.Elements {
		types[el.ID] = el.Type
	}
	for _, conn := range d.Connections {
		e.drawConnection(canvas, conn, types, positions)
	}

	for _, el := range d.Elements {
		e.drawElement(canvas, el, positions)
	}

	canvas.End()
	return buf.String(), nil
}

// GetFileExtension returns the file extension for SVG.
func (e *SVGExporter) GetFileExtension() string {
	return ".svg"
}

// GetFormatName returns the format name.
func (e *SVGExporter) GetFormatName() string {
	return "SVG"
}

func (e *SVGExporter) drawLanes(canvas *svg.SVG, d *diagram.ProcessDiagram, positions *layout.Positions, cfg layout.Config) {
	for i, lane := range d.Swimlanes {
		top := float64(i+1)*cfg.LaneGap + float64(i)*cfg.LaneHeight
		canvas.Rect(px(cfg.LaneGap), px(top), px(positions.Width-2*cfg.LaneGap), px(cfg.LaneHeight), laneFill)
		if lane.Label != "" {
			canvas.Text(px(cfg.LaneGap)+12, px(top+cfg.LaneHeight/2)+5, lane.Label, laneLabelStyle)
		}
	}
}

func (e *SVGExporter) drawElement(canvas *svg.SVG, el diagram.Element, positions *layout.Positions) {
	pos := positions.Points[el.ID]
	center := geometry.CenterOf(el.Type, pos)

	switch el.Type {
	case diagram.Task:
		canvas.Roundrect(px(pos.X), px(pos.Y), px(geometry.TaskWidth), px(geometry.TaskHeight), 8, 8, taskFill)
		if el.Label != "" {
			canvas.Text(px(center.X), px(center.Y)+5, el.Label, labelStyle)
		}
	case diagram.Gateway:
		xs := []int{px(center.X), px(center.X + geometry.GatewayHalfDiagonal), px(center.X), px(center.X - geometry.GatewayHalfDiagonal)}
		ys := []int{px(center.Y - geometry.GatewayHalfDiagonal), px(center.Y), px(center.Y + geometry.GatewayHalfDiagonal), px(center.Y)}
		canvas.Polygon(xs, ys, gatewayFill)
		if el.Label != "" {
			canvas.Text(px(center.X), px(center.Y+geometry.GatewayHalfDiagonal)+16, el.Label, labelStyle)
		}
	default: // start and end events
		style := startFill
		if el.Type == diagram.EndEvent {
			style = endFill
		}
		canvas.Circle(px(center.X), px(center.Y), px(geometry.EventRadius), style)
		if el.Label != "" {
			canvas.Text(px(center.X), px(center.Y+geometry.EventSize/2)+16, el.Label, labelStyle)
		}
	}
}

// drawConnection draws one curved connector between the boundary points of
// its endpoints, with an arrowhead at the target boundary.
func (e *SVGExporter) drawConnection(canvas *svg.SVG, conn diagram.Connection, types map[string]diagram.ElementType, positions *layout.Positions) {
	srcType, srcOK := types[conn.Source]
	tgtType, tgtOK := types[conn.Target]
	if !srcOK || !tgtOK {
		return // connections to unknown elements are not drawn
	}

	srcPos := positions.Points[conn.Source]
	tgtPos := positions.Points[conn.Target]
	srcCenter := geometry.CenterOf(srcType, srcPos)
	tgtCenter := geometry.CenterOf(tgtType, tgtPos)

	from := geometry.Boundary(srcType, srcPos, tgtCenter)
	to := geometry.Boundary(tgtType, tgtPos, srcCenter)

	dx := to.X - from.X
	dy := to.Y - from.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}

	// Bow the curve perpendicular to the straight line, proportional to its
	// length but capped so long flows stay readable.
	bow := math.Min(dist*0.15, maxCurveBow)
	control := diagram.Point{
		X: (from.X+to.X)/2 - dy/dist*bow,
		Y: (from.Y+to.Y)/2 + dx/dist*bow,
	}

	canvas.Qbez(px(from.X), px(from.Y), px(control.X), px(control.Y), px(to.X), px(to.Y), flowStroke)
	e.drawArrowhead(canvas, control, to)

	if conn.Label != "" {
		canvas.Text(px(control.X), px(control.Y)-6, conn.Label, flowLabelStyle)
	}
}

// drawArrowhead draws a triangle at tip, oriented along the curve's incoming
// direction (from the control point toward the tip).
func (e *SVGExporter) drawArrowhead(canvas *svg.SVG, control, tip diagram.Point) {
	ux := tip.X - control.X
	uy := tip.Y - control.Y
	length := math.Hypot(ux, uy)
	if length == 0 {
		return
	}
	ux /= length
	uy /= length

	baseX := tip.X - ux*arrowLength
	baseY := tip.Y - uy*arrowLength

	xs := []int{px(tip.X), px(baseX - uy*arrowHalfBase), px(baseX + uy*arrowHalfBase)}
	ys := []int{px(tip.Y), px(baseY + ux*arrowHalfBase), px(baseY - ux*arrowHalfBase)}
	canvas.Polygon(xs, ys, arrowFill)
}

// px rounds a canvas coordinate to the nearest pixel.
func px(v float64) int {
	return int(math.Round(v))
}
