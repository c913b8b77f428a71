package engine

import (
	"sort"

	"github.com/seanhalberthal/critpath/internal/domain"
)

// DFS coloring: white = unvisited, gray = on the active path, black = done.
const (
	white = 0
	gray  = 1
	black = 2
)

// DetectCycles returns every cycle in the graph, each as an ordered id
// sequence that repeats the closing node (e.g. [a b a]). Cycles in
// disconnected regions are all reported. Nodes fully explored once are never
// re-entered, so the walk stays linear in V+E.
//
// The DFS uses an explicit stack rather than recursion so pathological
// graphs (thousands of densely chained tasks) cannot exhaust the call stack.
func (g *Graph) DetectCycles() [][]string {
	color := make(map[string]int, len(g.Nodes))
	onPath := make(map[string]int)
	var path []string
	var cycles [][]string

	type frame struct {
		node string
		next int
	}

	// Scan roots in sorted order so detection is deterministic regardless of
	// map iteration.
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, start := range ids {
		if color[start] != white {
			continue
		}

		stack := []frame{{node: start}}
		color[start] = gray
		onPath[start] = len(path)
		path = append(path, start)

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			neighbors := g.Adj[top.node]

			if top.next < len(neighbors) {
				next := neighbors[top.next]
				top.next++

				switch color[next] {
				case gray:
					// Back edge: the cycle runs from next's first occurrence
					// on the active path through the current node, closed by
					// next itself.
					cycle := append([]string(nil), path[onPath[next]:]...)
					cycle = append(cycle, next)
					cycles = append(cycles, cycle)
				case white:
					color[next] = gray
					onPath[next] = len(path)
					path = append(path, next)
					stack = append(stack, frame{node: next})
				}
				continue
			}

			color[top.node] = black
			delete(onPath, top.node)
			path = path[:len(path)-1]
			stack = stack[:len(stack)-1]
		}
	}

	return cycles
}

// WouldCreateCycle reports whether adding a dependency fromID -> toID
// (meaning "fromID depends on toID") would close a cycle. The candidate edge
// is applied to a cloned graph and cycle detection re-run, so the task
// snapshot and any cached graph stay untouched. Consumers adding dependency
// edges must call this first to preserve the acyclicity invariant.
func WouldCreateCycle(tasks []*domain.Task, fromID, toID string) bool {
	if fromID == toID {
		return true
	}
	g := BuildGraph(tasks).Clone()
	// fromID depends on toID, so toID becomes a predecessor of fromID.
	g.AddEdge(toID, fromID)
	return len(g.DetectCycles()) > 0
}
