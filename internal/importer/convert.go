package importer

import (
	"time"

	"github.com/google/uuid"

	"github.com/seanhalberthal/critpath/internal/domain"
	"github.com/seanhalberthal/critpath/internal/repository"
)

// ConvertResult holds the domain records produced from a validated import
// schema, plus the ref -> id mapping used to resolve dependencies.
type ConvertResult struct {
	Tasks []*domain.Task
	Edges []repository.Edge
	IDs   map[string]string
}

// Convert materializes a validated import schema into domain tasks and
// dependency edges. Refs become freshly generated uuids.
func Convert(schema *ImportSchema, now time.Time) *ConvertResult {
	result := &ConvertResult{IDs: make(map[string]string, len(schema.Tasks))}

	for _, ti := range schema.Tasks {
		id := uuid.New().String()
		result.IDs[ti.Ref] = id

		t := &domain.Task{
			ID:        id,
			Title:     ti.Title,
			Status:    domain.TaskTodo,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if ti.Status != "" {
			t.Status = domain.TaskStatus(ti.Status)
		}
		t.StartDate = parseImportDate(ti.StartDate)
		t.EndDate = parseImportDate(ti.EndDate)
		if ti.EstimatedHours != nil {
			t.EstimatedHours = *ti.EstimatedHours
		}
		if ti.Progress != nil {
			t.Progress = *ti.Progress
		}
		result.Tasks = append(result.Tasks, t)
	}

	for _, di := range schema.Dependencies {
		edge := repository.Edge{
			PredecessorID: result.IDs[di.PredecessorRef],
			SuccessorID:   result.IDs[di.SuccessorRef],
			Type:          domain.FinishToStart,
		}
		if di.Type != "" {
			edge.Type = domain.DependencyType(di.Type)
		}
		if di.LagDays != nil {
			edge.LagDays = *di.LagDays
		}
		result.Edges = append(result.Edges, edge)
	}

	return result
}
