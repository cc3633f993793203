// Package diagram contains the fundamental types used throughout the laneflow core.
package diagram

// Point represents a 2D coordinate on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ElementType classifies a diagram element by its process step type.
type ElementType string

const (
	StartEvent ElementType = "start_event"
	EndEvent   ElementType = "end_event"
	Task       ElementType = "task"
	Gateway    ElementType = "gateway"
)

// Valid reports whether t is one of the known element types.
func (t ElementType) Valid() bool {
	switch t {
	case StartEvent, EndEvent, Task, Gateway:
		return true
	default:
		return false
	}
}

// Element represents a single node in the process diagram. Position is the
// stored top-left anchor; it round-trips through persistence but the layout
// engine never reads it when computing render positions.
type Element struct {
	ID       string      `json:"id"`
	Type     ElementType `json:"type"`
	Label    string      `json:"label"`
	Position Point       `json:"position"`
}

// Swimlane is an ordered horizontal grouping of elements. Membership order
// drives left-to-right packing, so it is semantically meaningful.
type Swimlane struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Elements []string `json:"elements"`
}

// Connection represents a directed sequence flow between two elements.
type Connection struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// ProcessDiagram is a complete swimlane process diagram snapshot. A snapshot
// is immutable within a single core invocation; every transform returns a new
// value instead of mutating its input.
type ProcessDiagram struct {
	ProcessName string       `json:"processName"`
	Swimlanes   []Swimlane   `json:"swimlanes"`
	Elements    []Element    `json:"elements"`
	Connections []Connection `json:"connections"`
}

// Clone creates a deep copy of the diagram.
func (d *ProcessDiagram) Clone() *ProcessDiagram {
	if d == nil {
		return nil
	}

	clone := &ProcessDiagram{
		ProcessName: d.ProcessName,
		Swimlanes:   make([]Swimlane, len(d.Swimlanes)),
		Elements:    make([]Element, len(d.Elements)),
		Connections: make([]Connection, len(d.Connections)),
	}

	// Elements and connections are flat value types.
	copy(clone.Elements, d.Elements)
	copy(clone.Connections, d.Connections)

	// Swimlanes carry a membership slice that needs its own copy.
	for i, lane := range d.Swimlanes {
		members := make([]string, len(lane.Elements))
		copy(members, lane.Elements)
		clone.Swimlanes[i] = Swimlane{
			ID:       lane.ID,
			Label:    lane.Label,
			Elements: members,
		}
	}

	return clone
}

// ElementByID returns the element with the given id.
func (d *ProcessDiagram) ElementByID(id string) (Element, bool) {
	for _, el := range d.Elements {
		if el.ID == id {
			return el, true
		}
	}
	return Element{}, false
}

// ElementIndex builds a lookup from element id to its position in the element
// list. List order is the canonical traversal order for every core transform.
func (d *ProcessDiagram) ElementIndex() map[string]int {
	index := make(map[string]int, len(d.Elements))
	for i, el := range d.Elements {
		if _, exists := index[el.ID]; !exists {
			index[el.ID] = i
		}
	}
	return index
}

// HasConnection reports whether an identical directed connection already
// exists, ignoring labels.
func (d *ProcessDiagram) HasConnection(source, target string) bool {
	for _, conn := range d.Connections {
		if conn.Source == source && conn.Target == target {
			return true
		}
	}
	return false
}
