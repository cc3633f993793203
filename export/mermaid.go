package export

import (
	"fmt"
	"strings"

	"laneflow/diagram"
)

// MermaidExporter exports diagrams to Mermaid flowchart syntax, with one
// subgraph per swimlane.
type MermaidExporter struct{}

// NewMermaidExporter creates a new Mermaid exporter.
func NewMermaidExporter() *MermaidExporter {
	return &MermaidExporter{}
}

// Export converts the diagram to Mermaid syntax.
func (e *MermaidExporter) Export(d *diagram.ProcessDiagram) (string, error) {
	if d == nil {
		return "", fmt.Errorf("diagram is nil")
	}
	if len(d.Elements) == 0 {
		return "", fmt.Errorf("diagram has no elements")
	}

	var sb strings.Builder
	if d.ProcessName != "" {
		sb.WriteString(fmt.Sprintf("%%%% %s\n", d.ProcessName))
	}
	sb.WriteString("flowchart LR\n")

	// Element ids are opaque strings, so map them to stable short Mermaid
	// identifiers by element list position.
	index := d.ElementIndex()
	nodeID := func(id string) string {
		return fmt.Sprintf("n%d", index[id])
	}

	// Elements grouped into their lanes; anything unassigned goes first at
	// the top level, matching the layout engine's lane-zero fallback.
	inLane := make(map[string]bool)
	for _, lane := range d.Swimlanes {
		for _, id := range lane.Elements {
			if _, ok := index[id]; ok {
				inLane[id] = true
			}
		}
	}
	for _, el := range d.Elements {
		if !inLane[el.ID] {
			sb.WriteString("    " + e.nodeLine(nodeID(el.ID), el) + "\n")
		}
	}

	for i, lane := range d.Swimlanes {
		sb.WriteString(fmt.Sprintf("    subgraph lane%d[%q]\n", i, laneTitle(lane)))
		for _, id := range lane.Elements {
			if _, ok := index[id]; !ok {
				continue
			}
			el, _ := d.ElementByID(id)
			sb.WriteString("        " + e.nodeLine(nodeID(id), el) + "\n")
		}
		sb.WriteString("    end\n")
	}

	if len(d.Connections) > 0 {
		sb.WriteString("\n")
	}
	for _, conn := range d.Connections {
		if _, ok := index[conn.Source]; !ok {
			continue // skip invalid connections
		}
		if _, ok := index[conn.Target]; !ok {
			continue
		}
		if conn.Label != "" {
			sb.WriteString(fmt.Sprintf("    %s -->|%s| %s\n", nodeID(conn.Source), escapeMermaid(conn.Label), nodeID(conn.Target)))
		} else {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", nodeID(conn.Source), nodeID(conn.Target)))
		}
	}

	return sb.String(), nil
}

// GetFileExtension returns the file extension for Mermaid.
func (e *MermaidExporter) GetFileExtension() string {
	return ".mmd"
}

// GetFormatName returns the format name.
func (e *MermaidExporter) GetFormatName() string {
	return "Mermaid"
}

// nodeLine renders one node declaration with the bracket shape Mermaid uses
// for the element type: circles for events, rectangles for tasks, diamonds
// for gateways.
func (e *MermaidExporter) nodeLine(id string, el diagram.Element) string {
	label := escapeMermaid(el.Label)
	if label == "" {
		label = el.ID
	}
	switch el.Type {
	case diagram.StartEvent, diagram.EndEvent:
		return fmt.Sprintf("%s((%q))", id, label)
	case diagram.Gateway:
		return fmt.Sprintf("%s{%q}", id, label)
	default:
		return fmt.Sprintf("%s[%q]", id, label)
	}
}

func laneTitle(lane diagram.Swimlane) string {
	if lane.Label != "" {
		return escapeMermaid(lane.Label)
	}
	return lane.ID
}

// escapeMermaid strips characters that would break out of a quoted Mermaid
// label.
func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, `"`, "'")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
