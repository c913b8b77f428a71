package engine

import (
	"fmt"

	"github.com/seanhalberthal/critpath/internal/domain"
)

// TopoOrder returns all graph nodes in topological order using Kahn's
// algorithm: every node appears after all of its predecessors. Nodes become
// ready in insertion order, so acyclic graphs sort deterministically.
// Returns an error if the graph contains a cycle.
func (g *Graph) TopoOrder() ([]string, error) {
	inDegree := make(map[string]int, len(g.Nodes))
	for _, id := range g.nodeOrder {
		inDegree[id] = len(g.RevAdj[id])
	}

	var queue []string
	for _, id := range g.nodeOrder {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(g.Nodes))
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		for _, succ := range g.Adj[node] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}

	if len(order) != len(g.Nodes) {
		return nil, fmt.Errorf("topological sort failed: graph has a cycle (%d of %d nodes sorted)", len(order), len(g.Nodes))
	}
	return order, nil
}

// SortTasks orders tasks so every task appears after all of its
// predecessors. On a cyclic graph it falls back to the original input order,
// preserving a usable (if unscheduled) list instead of a partial sort.
// Callers that need a hard failure on cycles should use Validate or
// Graph.TopoOrder instead.
func SortTasks(tasks []*domain.Task) []*domain.Task {
	g := BuildGraph(tasks)
	order, err := g.TopoOrder()
	if err != nil {
		return append([]*domain.Task(nil), tasks...)
	}

	byID := make(map[string]*domain.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	sorted := make([]*domain.Task, 0, len(tasks))
	for _, id := range order {
		// Nodes created for dangling references have no task record.
		if t, ok := byID[id]; ok {
			sorted = append(sorted, t)
		}
	}
	return sorted
}
