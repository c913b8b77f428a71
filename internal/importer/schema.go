package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for bulk task import.
type ImportSchema struct {
	Tasks        []TaskImport       `json:"tasks"`
	Dependencies []DependencyImport `json:"dependencies,omitempty"`
}

// TaskImport defines a task in the import file. Refs are file-local handles
// that resolve to generated ids on import.
type TaskImport struct {
	Ref            string   `json:"ref"`
	Title          string   `json:"title"`
	Status         string   `json:"status,omitempty"`
	StartDate      *string  `json:"start_date,omitempty"`
	EndDate        *string  `json:"end_date,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	Progress       *float64 `json:"progress,omitempty"`
}

// DependencyImport defines a dependency between two imported tasks.
type DependencyImport struct {
	PredecessorRef string   `json:"predecessor_ref"`
	SuccessorRef   string   `json:"successor_ref"`
	Type           string   `json:"type,omitempty"`
	LagDays        *float64 `json:"lag_days,omitempty"`
}

// LoadImportSchema reads and parses a task import JSON file. Structural
// validation against the embedded JSON Schema runs before unmarshalling so
// shape errors surface with schema paths instead of zero values.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := validateAgainstSchema(data); err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
