package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seanhalberthal/critpath/internal/domain"
)

func taskIDs(tasks []*domain.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func TestTopoOrder_RespectsDependencies(t *testing.T) {
	g := BuildGraph([]*domain.Task{
		task("c", fsDep("a"), fsDep("b")),
		task("b", fsDep("a")),
		task("a"),
	})

	order, err := g.TopoOrder()
	require.NoError(t, err)
	require.Len(t, order, 3)

	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	assert.Less(t, pos["a"], pos["b"])
	assert.Less(t, pos["b"], pos["c"])
}

func TestTopoOrder_DeterministicForIndependentTasks(t *testing.T) {
	tasks := []*domain.Task{task("x"), task("y"), task("z")}

	for i := 0; i < 10; i++ {
		order, err := BuildGraph(tasks).TopoOrder()
		require.NoError(t, err)
		assert.Equal(t, []string{"x", "y", "z"}, order)
	}
}

func TestTopoOrder_CycleError(t *testing.T) {
	g := BuildGraph([]*domain.Task{
		task("a", fsDep("b")),
		task("b", fsDep("a")),
	})

	_, err := g.TopoOrder()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestSortTasks_NoDependencies(t *testing.T) {
	tasks := []*domain.Task{task("one"), task("two"), task("three")}

	sorted := SortTasks(tasks)

	assert.Equal(t, []string{"one", "two", "three"}, taskIDs(sorted))
}

func TestSortTasks_OrdersPredecessorsFirst(t *testing.T) {
	tasks := []*domain.Task{
		task("deploy", fsDep("test")),
		task("test", fsDep("build")),
		task("build"),
	}

	sorted := SortTasks(tasks)

	assert.Equal(t, []string{"build", "test", "deploy"}, taskIDs(sorted))
}

func TestSortTasks_CyclicFallsBackToInputOrder(t *testing.T) {
	tasks := []*domain.Task{
		task("b", fsDep("a")),
		task("a", fsDep("b")),
		task("c"),
	}

	sorted := SortTasks(tasks)

	assert.Equal(t, []string{"b", "a", "c"}, taskIDs(sorted))
}

func TestSortTasks_SkipsDanglingReferences(t *testing.T) {
	tasks := []*domain.Task{
		task("a", fsDep("ghost")),
	}

	sorted := SortTasks(tasks)

	assert.Equal(t, []string{"a"}, taskIDs(sorted))
}
