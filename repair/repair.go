// Package repair guarantees that every diagram leaving the core is a single
// connected structure with no dangling references. Connections whose
// endpoints no longer exist are pruned; disconnected subgraphs are stitched
// into one by adding a connection between the closest cross-component pair.
package repair

import (
	"laneflow/diagram"
	"laneflow/geometry"
	"laneflow/layout"
)

// Result is the outcome of a repair pass. Added and Pruned expose exactly
// what the repairer changed, so a caller can surface the mutation to an end
// user instead of silently persisting it.
type Result struct {
	Diagram diagram.ProcessDiagram
	Added   []diagram.Connection
	Pruned  []diagram.Connection
}

// Repairer stitches disconnected diagrams back into one component. Distances
// between components are measured on render positions, so it carries the
// layout engine whose positions the rendering surface will actually use.
type Repairer struct {
	engine *layout.Engine
}

// NewRepairer creates a Repairer using the default layout configuration.
func NewRepairer() *Repairer {
	return &Repairer{engine: layout.NewEngine()}
}

// NewRepairerWithEngine creates a Repairer measuring distances on the given
// engine's positions.
func NewRepairerWithEngine(engine *layout.Engine) *Repairer {
	return &Repairer{engine: engine}
}

// Repair returns a copy of d with dangling connections removed and the
// element graph connected. The input is never modified. Output connection
// order is the surviving originals in their original order, followed by the
// added connections in component-processing order.
func (r *Repairer) Repair(d *diagram.ProcessDiagram) Result {
	repaired := d.Clone()

	index := repaired.ElementIndex()
	surviving, pruned := pruneDangling(repaired.Connections, index)

	components := discoverComponents(repaired.Elements, surviving, index)

	added := r.merge(repaired, components, surviving, index)

	repaired.Connections = append(surviving, added...)
	return Result{Diagram: *repaired, Added: added, Pruned: pruned}
}

// pruneDangling splits connections into those whose endpoints both exist and
// those referencing a missing element.
func pruneDangling(conns []diagram.Connection, index map[string]int) (surviving, pruned []diagram.Connection) {
	surviving = make([]diagram.Connection, 0, len(conns))
	for _, conn := range conns {
		_, srcOK := index[conn.Source]
		_, tgtOK := index[conn.Target]
		if srcOK && tgtOK {
			surviving = append(surviving, conn)
		} else {
			pruned = append(pruned, conn)
		}
	}
	return surviving, pruned
}

// discoverComponents finds connected components of the undirected element
// graph. Adjacency lists and the visited set are indexed by element list
// position, never by map iteration, so discovery order is reproducible:
// traversal starts from the first unvisited element in listed order and
// expands breadth-first.
func discoverComponents(elements []diagram.Element, conns []diagram.Connection, index map[string]int) [][]int {
	n := len(elements)
	adjacency := make([][]int, n)
	for _, conn := range conns {
		a := index[conn.Source]
		b := index[conn.Target]
		if a == b {
			continue
		}
		adjacency[a] = append(adjacency[a], b)
		adjacency[b] = append(adjacency[b], a)
	}

	visited := make([]bool, n)
	var components [][]int
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		var component []int
		queue := []int{start}
		visited[start] = true
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			component = append(component, current)
			for _, neighbour := range adjacency[current] {
				if !visited[neighbour] {
					visited[neighbour] = true
					queue = append(queue, neighbour)
				}
			}
		}
		components = append(components, component)
	}
	return components
}

// selectMain picks the component every other component merges into: the first
// discovered component containing a start event wins; failing that, the
// largest component, ties broken by discovery order. With multiple start
// events in different components this is a heuristic, and first discovery
// wins deliberately.
func selectMain(elements []diagram.Element, components [][]int) int {
	for i, component := range components {
		for _, idx := range component {
			if elements[idx].Type == diagram.StartEvent {
				return i
			}
		}
	}

	main := 0
	for i, component := range components {
		if len(component) > len(components[main]) {
			main = i
		}
	}
	return main
}

// merge connects every non-main component directly into the main component
// and returns the connections it added, in component-processing order.
func (r *Repairer) merge(d *diagram.ProcessDiagram, components [][]int, surviving []diagram.Connection, index map[string]int) []diagram.Connection {
	if len(components) < 2 {
		return nil
	}

	// Distances are measured between visual centers at render positions,
	// never at stored positions.
	positions := r.engine.ComputePositions(d)
	centers := make([]diagram.Point, len(d.Elements))
	for i, el := range d.Elements {
		centers[i] = geometry.CenterOf(el.Type, positions.Points[el.ID])
	}

	exists := make(map[[2]string]bool, len(surviving))
	for _, conn := range surviving {
		exists[[2]string{conn.Source, conn.Target}] = true
	}

	mainIdx := selectMain(d.Elements, components)
	mainMembers := append([]int(nil), components[mainIdx]...)

	var added []diagram.Connection
	for i, component := range components {
		if i == mainIdx {
			continue
		}

		// Scan every (main, other) pair in discovery order; the first
		// minimum found wins ties.
		bestMain, bestOther := -1, -1
		bestDist := 0.0
		for _, m := range mainMembers {
			for _, o := range component {
				dist := geometry.SquaredDistance(centers[m], centers[o])
				if bestMain == -1 || dist < bestDist {
					bestMain, bestOther, bestDist = m, o, dist
				}
			}
		}

		// Direct the new connection left to right by center x. On equal x
		// the main-side element is the source.
		source, target := bestMain, bestOther
		if centers[bestOther].X < centers[bestMain].X {
			source, target = bestOther, bestMain
		}

		conn := diagram.Connection{
			Source: d.Elements[source].ID,
			Target: d.Elements[target].ID,
		}
		if !exists[[2]string{conn.Source, conn.Target}] {
			exists[[2]string{conn.Source, conn.Target}] = true
			added = append(added, conn)
		}

		mainMembers = append(mainMembers, component...)
	}
	return added
}
