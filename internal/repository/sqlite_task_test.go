package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seanhalberthal/critpath/internal/domain"
	"github.com/seanhalberthal/critpath/internal/testutil"
)

func TestTaskRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(database)
	ctx := context.Background()

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)
	created := testutil.NewTask("Design schema",
		testutil.WithDates(start, end),
		testutil.WithHours(16),
		testutil.WithProgress(25),
		testutil.WithStatus(domain.TaskInProgress),
	)

	require.NoError(t, repo.Create(ctx, created))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Design schema", got.Title)
	assert.Equal(t, domain.TaskInProgress, got.Status)
	require.NotNil(t, got.StartDate)
	assert.True(t, got.StartDate.Equal(start))
	require.NotNil(t, got.EndDate)
	assert.True(t, got.EndDate.Equal(end))
	assert.Equal(t, 16.0, got.EstimatedHours)
	assert.Equal(t, 25.0, got.Progress)
}

func TestTaskRepo_NilDatesRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(database)
	ctx := context.Background()

	created := testutil.NewTask("Undated")
	require.NoError(t, repo.Create(ctx, created))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.StartDate)
	assert.Nil(t, got.EndDate)
}

func TestTaskRepo_GetMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(database)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.Error(t, err)
}

func TestTaskRepo_ListOrdersByCreation(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(database)
	ctx := context.Background()

	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		task := testutil.NewTask(title)
		task.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, task))
	}

	tasks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "first", tasks[0].Title)
	assert.Equal(t, "second", tasks[1].Title)
	assert.Equal(t, "third", tasks[2].Title)
}

func TestTaskRepo_Update(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(database)
	ctx := context.Background()

	created := testutil.NewTask("Old title")
	require.NoError(t, repo.Create(ctx, created))

	created.Title = "New title"
	created.Status = domain.TaskDone
	created.Progress = 100
	require.NoError(t, repo.Update(ctx, created))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New title", got.Title)
	assert.Equal(t, domain.TaskDone, got.Status)
	assert.Equal(t, 100.0, got.Progress)
}

func TestTaskRepo_UpdateMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(database)

	err := repo.Update(context.Background(), testutil.NewTask("ghost"))
	assert.ErrorContains(t, err, "not found")
}

func TestTaskRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTaskRepo(database)
	ctx := context.Background()

	created := testutil.NewTask("Doomed")
	require.NoError(t, repo.Create(ctx, created))
	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err := repo.GetByID(ctx, created.ID)
	assert.Error(t, err)

	assert.ErrorContains(t, repo.Delete(ctx, created.ID), "not found")
}
