package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/seanhalberthal/critpath/internal/db"
	"github.com/seanhalberthal/critpath/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, title, status, start_date, end_date,
		estimated_hours, progress, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo against SQLite. It accepts a DBTX so the
// same implementation serves both plain and transactional access.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(db db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (id, title, status, start_date, end_date,
		estimated_hours, progress, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		string(t.Status),
		nullableTimeToString(t.StartDate),
		nullableTimeToString(t.EndDate),
		t.EstimatedHours,
		t.Progress,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanTask(row)
}

func (r *SQLiteTaskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET title = ?, status = ?, start_date = ?, end_date = ?,
		estimated_hours = ?, progress = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		string(t.Status),
		nullableTimeToString(t.StartDate),
		nullableTimeToString(t.EndDate),
		t.EstimatedHours,
		t.Progress,
		t.UpdatedAt.Format(time.RFC3339),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task not found: %s", t.ID)
	}
	return nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task not found: %s", id)
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan code.
type scanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteTaskRepo) scanTask(row scanner) (*domain.Task, error) {
	var t domain.Task
	var status, createdAt, updatedAt string
	var startDate, endDate sql.NullString

	err := row.Scan(&t.ID, &t.Title, &status, &startDate, &endDate,
		&t.EstimatedHours, &t.Progress, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Status = domain.TaskStatus(status)
	t.StartDate = parseNullableTime(startDate)
	t.EndDate = parseNullableTime(endDate)
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &t, nil
}

func (r *SQLiteTaskRepo) scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		t, err := r.scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}
