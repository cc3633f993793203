package diagram

import (
	"encoding/json"
	"testing"
)

func TestCloneDeepCopy(t *testing.T) {
	original := &ProcessDiagram{
		ProcessName: "Order handling",
		Swimlanes: []Swimlane{
			{ID: "l1", Label: "Sales", Elements: []string{"s1", "t1"}},
		},
		Elements: []Element{
			{ID: "s1", Type: StartEvent, Label: "Start"},
			{ID: "t1", Type: Task, Label: "Review order"},
		},
		Connections: []Connection{
			{Source: "s1", Target: "t1"},
		},
	}

	clone := original.Clone()

	clone.Swimlanes[0].Elements[0] = "mutated"
	clone.Elements[0].Label = "mutated"
	clone.Connections[0].Target = "mutated"

	if original.Swimlanes[0].Elements[0] != "s1" {
		t.Error("clone shares swimlane membership with original")
	}
	if original.Elements[0].Label != "Start" {
		t.Error("clone shares elements with original")
	}
	if original.Connections[0].Target != "t1" {
		t.Error("clone shares connections with original")
	}
}

func TestCloneNil(t *testing.T) {
	var d *ProcessDiagram
	if d.Clone() != nil {
		t.Error("cloning nil should return nil")
	}
}

func TestElementIndexFirstOccurrenceWins(t *testing.T) {
	d := &ProcessDiagram{
		Elements: []Element{
			{ID: "a", Type: Task},
			{ID: "b", Type: Task},
			{ID: "a", Type: Gateway}, // duplicate id keeps the first slot
		},
	}

	index := d.ElementIndex()
	if index["a"] != 0 {
		t.Errorf("expected index 0 for first occurrence of a, got %d", index["a"])
	}
	if index["b"] != 1 {
		t.Errorf("expected index 1 for b, got %d", index["b"])
	}
}

func TestHasConnection(t *testing.T) {
	d := &ProcessDiagram{
		Connections: []Connection{{Source: "a", Target: "b", Label: "yes"}},
	}

	if !d.HasConnection("a", "b") {
		t.Error("expected connection a->b")
	}
	if d.HasConnection("b", "a") {
		t.Error("direction matters: b->a should not exist")
	}
}

func TestElementTypeValid(t *testing.T) {
	valid := []ElementType{StartEvent, EndEvent, Task, Gateway}
	for _, et := range valid {
		if !et.Valid() {
			t.Errorf("%s should be valid", et)
		}
	}
	if ElementType("subprocess").Valid() {
		t.Error("unknown type should not be valid")
	}
}

func TestDiagramJSONShape(t *testing.T) {
	raw := `{
		"processName": "Claims",
		"swimlanes": [{"id": "l1", "label": "Intake", "elements": ["s1"]}],
		"elements": [{"id": "s1", "type": "start_event", "label": "Claim received", "position": {"x": 10, "y": 20}}],
		"connections": []
	}`

	var d ProcessDiagram
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Elements[0].Type != StartEvent {
		t.Errorf("expected start_event, got %s", d.Elements[0].Type)
	}
	if d.Elements[0].Position.X != 10 || d.Elements[0].Position.Y != 20 {
		t.Errorf("position did not round-trip: %+v", d.Elements[0].Position)
	}
}
