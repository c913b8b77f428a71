package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seanhalberthal/critpath/internal/domain"
	"github.com/seanhalberthal/critpath/internal/service"
)

type stubTaskService struct {
	service.TaskService
	tasks []*domain.Task
}

func (s *stubTaskService) List(ctx context.Context) ([]*domain.Task, error) {
	return s.tasks, nil
}

func TestResolveTaskID(t *testing.T) {
	app := &App{Tasks: &stubTaskService{tasks: []*domain.Task{
		{ID: "abc12345-0000", Title: "one"},
		{ID: "abd99999-0000", Title: "two"},
	}}}
	ctx := context.Background()

	id, err := resolveTaskID(ctx, app, "abc12345-0000")
	require.NoError(t, err)
	assert.Equal(t, "abc12345-0000", id)

	id, err = resolveTaskID(ctx, app, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc12345-0000", id)

	_, err = resolveTaskID(ctx, app, "ab")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = resolveTaskID(ctx, app, "zzz")
	assert.ErrorContains(t, err, "not found")

	_, err = resolveTaskID(ctx, app, "")
	assert.Error(t, err)
}
