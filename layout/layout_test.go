package layout

import (
	"reflect"
	"testing"

	"laneflow/diagram"
)

func taskLaneDiagram(ids ...string) *diagram.ProcessDiagram {
	d := &diagram.ProcessDiagram{
		Swimlanes: []diagram.Swimlane{{ID: "l1", Label: "Lane", Elements: ids}},
	}
	for _, id := range ids {
		d.Elements = append(d.Elements, diagram.Element{ID: id, Type: diagram.Task, Label: id})
	}
	return d
}

func TestLanePackingThreeTasks(t *testing.T) {
	d := taskLaneDiagram("t1", "t2", "t3")
	pos := NewEngine().ComputePositions(d)

	wantX := []float64{168, 360, 552}
	for i, id := range []string{"t1", "t2", "t3"} {
		p, ok := pos.Points[id]
		if !ok {
			t.Fatalf("no position for %s", id)
		}
		if p.X != wantX[i] {
			t.Errorf("%s x = %v, want %v", id, p.X, wantX[i])
		}
		// Tasks sit vertically centered in the first band.
		if p.Y != 54 {
			t.Errorf("%s y = %v, want 54", id, p.Y)
		}
	}
}

func TestLaneNeighboursNeverOverlap(t *testing.T) {
	d := &diagram.ProcessDiagram{
		Swimlanes: []diagram.Swimlane{{ID: "l1", Elements: []string{"s1", "t1", "g1", "e1"}}},
		Elements: []diagram.Element{
			{ID: "s1", Type: diagram.StartEvent},
			{ID: "t1", Type: diagram.Task},
			{ID: "g1", Type: diagram.Gateway},
			{ID: "e1", Type: diagram.EndEvent},
		},
	}
	engine := NewEngine()
	pos := engine.ComputePositions(d)

	widths := map[string]float64{"s1": 40, "t1": 160, "g1": 56, "e1": 40}
	order := []string{"s1", "t1", "g1", "e1"}
	for i := 0; i < len(order)-1; i++ {
		left, right := order[i], order[i+1]
		gap := pos.Points[right].X - (pos.Points[left].X + widths[left])
		if gap < engine.Config().MinGap {
			t.Errorf("gap between %s and %s = %v, want at least %v", left, right, gap, engine.Config().MinGap)
		}
	}
}

func TestBandCenteringSecondLane(t *testing.T) {
	d := &diagram.ProcessDiagram{
		Swimlanes: []diagram.Swimlane{
			{ID: "l1", Elements: []string{"t1"}},
			{ID: "l2", Elements: []string{"g1"}},
		},
		Elements: []diagram.Element{
			{ID: "t1", Type: diagram.Task},
			{ID: "g1", Type: diagram.Gateway},
		},
	}
	pos := NewEngine().ComputePositions(d)

	// Second band starts at 2*24 + 120 = 168; a 56-high gateway centers at
	// 168 + (120-56)/2 = 200.
	if got := pos.Points["g1"].Y; got != 200 {
		t.Errorf("gateway y = %v, want 200", got)
	}
}

func TestCanvasSize(t *testing.T) {
	d := &diagram.ProcessDiagram{
		Swimlanes: []diagram.Swimlane{{ID: "a"}, {ID: "b"}, {ID: "c"}},
	}
	pos := NewEngine().ComputePositions(d)

	if pos.Width != 1440 {
		t.Errorf("width = %v, want 1440", pos.Width)
	}
	// 3*120 + 4*24
	if pos.Height != 456 {
		t.Errorf("height = %v, want 456", pos.Height)
	}
}

func TestRightMarginClamp(t *testing.T) {
	ids := []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7"}
	d := taskLaneDiagram(ids...)
	engine := NewEngine()
	pos := engine.ComputePositions(d)

	cap := engine.Config().CanvasWidth - engine.Config().RightMargin - 160
	last := pos.Points["t7"]
	if last.X != cap {
		t.Errorf("overflowing task x = %v, want clamped to %v", last.X, cap)
	}
}

func TestUnassignedElementFallsBackToFirstBand(t *testing.T) {
	d := &diagram.ProcessDiagram{
		Swimlanes: []diagram.Swimlane{{ID: "l1", Elements: []string{"t1"}}},
		Elements: []diagram.Element{
			{ID: "t1", Type: diagram.Task},
			{ID: "orphan", Type: diagram.StartEvent},
		},
	}
	pos := NewEngine().ComputePositions(d)

	p, ok := pos.Points["orphan"]
	if !ok {
		t.Fatal("unassigned element received no position")
	}
	if p.X != 168 {
		t.Errorf("orphan x = %v, want 168", p.X)
	}
	if p.Y != 64 { // 24 + (120-40)/2
		t.Errorf("orphan y = %v, want 64", p.Y)
	}
}

func TestMembershipWithoutElementSkipped(t *testing.T) {
	d := &diagram.ProcessDiagram{
		Swimlanes: []diagram.Swimlane{{ID: "l1", Elements: []string{"ghost", "t1"}}},
		Elements:  []diagram.Element{{ID: "t1", Type: diagram.Task}},
	}
	pos := NewEngine().ComputePositions(d)

	if _, ok := pos.Points["ghost"]; ok {
		t.Error("membership entry without a backing element must not be placed")
	}
	// The ghost entry consumes no horizontal space either.
	if got := pos.Points["t1"].X; got != 168 {
		t.Errorf("t1 x = %v, want 168", got)
	}
}

func TestComputePositionsDeterministic(t *testing.T) {
	d := taskLaneDiagram("t1", "t2", "t3")
	engine := NewEngine()

	first := engine.ComputePositions(d)
	second := engine.ComputePositions(d)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical input produced different positions")
	}
}

func TestComputePositionsDoesNotMutateInput(t *testing.T) {
	d := taskLaneDiagram("t1")
	d.Elements[0].Position = diagram.Point{X: 999, Y: 999}

	NewEngine().ComputePositions(d)

	if d.Elements[0].Position.X != 999 || d.Elements[0].Position.Y != 999 {
		t.Error("stored element position was overwritten by layout")
	}
}

func TestNilDiagram(t *testing.T) {
	pos := NewEngine().ComputePositions(nil)
	if len(pos.Points) != 0 {
		t.Error("nil diagram should place nothing")
	}
	if pos.Width != 1440 {
		t.Errorf("width = %v, want 1440", pos.Width)
	}
}
