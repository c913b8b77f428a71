package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/seanhalberthal/critpath/internal/db"
	"github.com/seanhalberthal/critpath/internal/domain"
)

// SQLiteDependencyRepo implements DependencyRepo against SQLite.
type SQLiteDependencyRepo struct {
	db db.DBTX
}

// NewSQLiteDependencyRepo creates a new SQLiteDependencyRepo.
func NewSQLiteDependencyRepo(db db.DBTX) *SQLiteDependencyRepo {
	return &SQLiteDependencyRepo{db: db}
}

func (r *SQLiteDependencyRepo) Create(ctx context.Context, e Edge) error {
	query := `INSERT INTO dependencies (predecessor_id, successor_id, dep_type, lag_days)
		VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, e.PredecessorID, e.SuccessorID, string(e.Type), e.LagDays)
	if err != nil {
		return fmt.Errorf("inserting dependency: %w", err)
	}
	return nil
}

func (r *SQLiteDependencyRepo) Delete(ctx context.Context, predecessorID, successorID string) error {
	query := `DELETE FROM dependencies WHERE predecessor_id = ? AND successor_id = ?`
	res, err := r.db.ExecContext(ctx, query, predecessorID, successorID)
	if err != nil {
		return fmt.Errorf("deleting dependency: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("dependency not found: %s -> %s", predecessorID, successorID)
	}
	return nil
}

func (r *SQLiteDependencyRepo) ListAll(ctx context.Context) ([]Edge, error) {
	// rowid order preserves declaration order, which the engine treats as
	// the order of a task's dependency list.
	query := `SELECT predecessor_id, successor_id, dep_type, lag_days
		FROM dependencies ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing dependencies: %w", err)
	}
	defer rows.Close()
	return r.scanEdges(rows)
}

func (r *SQLiteDependencyRepo) ListBySuccessor(ctx context.Context, successorID string) ([]Edge, error) {
	query := `SELECT predecessor_id, successor_id, dep_type, lag_days
		FROM dependencies WHERE successor_id = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, successorID)
	if err != nil {
		return nil, fmt.Errorf("listing predecessors: %w", err)
	}
	defer rows.Close()
	return r.scanEdges(rows)
}

func (r *SQLiteDependencyRepo) ListByPredecessor(ctx context.Context, predecessorID string) ([]Edge, error) {
	query := `SELECT predecessor_id, successor_id, dep_type, lag_days
		FROM dependencies WHERE predecessor_id = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, predecessorID)
	if err != nil {
		return nil, fmt.Errorf("listing successors: %w", err)
	}
	defer rows.Close()
	return r.scanEdges(rows)
}

func (r *SQLiteDependencyRepo) scanEdges(rows *sql.Rows) ([]Edge, error) {
	var edges []Edge
	for rows.Next() {
		var e Edge
		var depType string
		if err := rows.Scan(&e.PredecessorID, &e.SuccessorID, &depType, &e.LagDays); err != nil {
			return nil, fmt.Errorf("scanning dependency: %w", err)
		}
		e.Type = domain.DependencyType(depType)
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating dependencies: %w", err)
	}
	return edges, nil
}
