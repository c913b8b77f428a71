package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/seanhalberthal/critpath/internal/db"
	"github.com/seanhalberthal/critpath/internal/domain"
	"github.com/seanhalberthal/critpath/internal/engine"
	"github.com/seanhalberthal/critpath/internal/importer"
	"github.com/seanhalberthal/critpath/internal/repository"
)

type importService struct {
	uow db.UnitOfWork
}

func NewImportService(uow db.UnitOfWork) ImportService {
	return &importService{uow: uow}
}

// ImportTasks loads, validates, and persists a task set from a JSON file.
// The whole batch lands in one transaction: a cycle or validation failure
// rolls everything back.
func (s *importService) ImportTasks(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, err
	}

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return nil, errors.New("import validation failed:\n  " + strings.Join(msgs, "\n  "))
	}

	converted := importer.Convert(schema, time.Now().UTC())

	// Cycle-check the imported graph before touching the database.
	tasksByID := make(map[string]*domain.Task, len(converted.Tasks))
	for _, t := range converted.Tasks {
		tasksByID[t.ID] = t
	}
	for _, e := range converted.Edges {
		t := tasksByID[e.SuccessorID]
		t.Dependencies = append(t.Dependencies, domain.Dependency{
			TaskID:  e.PredecessorID,
			Type:    e.Type,
			LagDays: e.LagDays,
		})
	}
	if err := engine.Validate(converted.Tasks); err != nil {
		return nil, fmt.Errorf("imported task set is not schedulable: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)
		for _, t := range converted.Tasks {
			if err := txTasks.Create(ctx, t); err != nil {
				return err
			}
		}
		for _, e := range converted.Edges {
			if err := txDeps.Create(ctx, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		TaskCount:       len(converted.Tasks),
		DependencyCount: len(converted.Edges),
	}, nil
}
