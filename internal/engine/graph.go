package engine

import (
	"github.com/seanhalberthal/critpath/internal/domain"
)

// Graph is the adjacency representation of a task dependency graph. Edges
// point predecessor -> dependent. RevAdj is the transpose, used for in-degree
// counting and the CPM backward pass.
//
// Construction is tolerant by design: a dependency referencing an id that is
// not in the task set still creates a node, so building never fails. Dangling
// references are surfaced later by Validate.
type Graph struct {
	Nodes  map[string]bool
	Adj    map[string][]string
	RevAdj map[string][]string

	// nodeOrder preserves insertion order so traversals stay deterministic
	// and the toposort fallback can honor input order.
	nodeOrder []string
	edges     map[[2]string]bool
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes:  make(map[string]bool),
		Adj:    make(map[string][]string),
		RevAdj: make(map[string][]string),
		edges:  make(map[[2]string]bool),
	}
}

// BuildGraph constructs the dependency graph for a task snapshot in O(V+E).
// Every task id becomes a node, including tasks with no edges. For each
// dependency D of task T an edge D.TaskID -> T.ID is added.
func BuildGraph(tasks []*domain.Task) *Graph {
	g := NewGraph()
	for _, t := range tasks {
		g.AddNode(t.ID)
	}
	for _, t := range tasks {
		for _, dep := range t.Dependencies {
			g.AddEdge(dep.TaskID, t.ID)
		}
	}
	return g
}

// AddNode registers a node. Adding an existing node is a no-op.
func (g *Graph) AddNode(id string) {
	if g.Nodes[id] {
		return
	}
	g.Nodes[id] = true
	g.nodeOrder = append(g.nodeOrder, id)
}

// AddEdge adds a predecessor -> dependent edge, creating either endpoint if
// it has not been seen yet. Duplicate edges collapse to one.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)
	key := [2]string{from, to}
	if g.edges[key] {
		return
	}
	g.edges[key] = true
	g.Adj[from] = append(g.Adj[from], to)
	g.RevAdj[to] = append(g.RevAdj[to], from)
}

// Predecessors returns the ids this node directly depends on.
func (g *Graph) Predecessors(id string) []string {
	return append([]string(nil), g.RevAdj[id]...)
}

// Successors returns the ids that directly depend on this node.
func (g *Graph) Successors(id string) []string {
	return append([]string(nil), g.Adj[id]...)
}

// HasPath reports whether target is reachable from source following
// predecessor -> dependent edges. Used as a cheaper alternative to full cycle
// detection when vetting a single candidate edge.
func (g *Graph) HasPath(source, target string) bool {
	if source == target {
		return g.Nodes[source]
	}
	visited := map[string]bool{source: true}
	queue := []string{source}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, next := range g.Adj[node] {
			if next == target {
				return true
			}
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

// Clone returns a deep copy. Speculative edge insertions on the copy leave
// the original untouched.
func (g *Graph) Clone() *Graph {
	c := NewGraph()
	for _, id := range g.nodeOrder {
		c.AddNode(id)
	}
	for _, from := range g.nodeOrder {
		for _, to := range g.Adj[from] {
			c.AddEdge(from, to)
		}
	}
	return c
}
