package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/seanhalberthal/critpath/internal/domain"
)

var validTaskStatuses = map[string]bool{"todo": true, "in_progress": true, "done": true}

// importJSONSchema is the structural contract for import files. Semantic
// rules (ref uniqueness, date ordering, dependency resolution) live in
// ValidateImportSchema.
const importJSONSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["tasks"],
  "properties": {
    "tasks": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["ref", "title"],
        "properties": {
          "ref": {"type": "string", "minLength": 1},
          "title": {"type": "string", "minLength": 1},
          "status": {"type": "string"},
          "start_date": {"type": "string"},
          "end_date": {"type": "string"},
          "estimated_hours": {"type": "number", "minimum": 0},
          "progress": {"type": "number", "minimum": 0, "maximum": 100}
        }
      }
    },
    "dependencies": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["predecessor_ref", "successor_ref"],
        "properties": {
          "predecessor_ref": {"type": "string", "minLength": 1},
          "successor_ref": {"type": "string", "minLength": 1},
          "type": {"type": "string"},
          "lag_days": {"type": "number"}
        }
      }
    }
  }
}`

// validateAgainstSchema checks raw import JSON against the embedded schema.
func validateAgainstSchema(data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("import.schema.json", bytes.NewReader([]byte(importJSONSchema))); err != nil {
		return fmt.Errorf("loading import schema: %w", err)
	}
	schema, err := compiler.Compile("import.schema.json")
	if err != nil {
		return fmt.Errorf("compiling import schema: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing import file: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("import file failed schema validation: %w", err)
	}
	return nil
}

// ValidateImportSchema checks the import schema for semantic errors before
// conversion. Returns every error found, not just the first.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	refs := make(map[string]bool)
	for i, t := range schema.Tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)

		if refs[t.Ref] {
			errs = append(errs, fmt.Errorf("%s: duplicate ref %q", prefix, t.Ref))
		}
		refs[t.Ref] = true

		if t.Status != "" && !validTaskStatuses[t.Status] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, t.Status))
		}

		start := parseImportDate(t.StartDate)
		end := parseImportDate(t.EndDate)
		if t.StartDate != nil && start == nil {
			errs = append(errs, fmt.Errorf("%s.start_date: invalid date %q (expected YYYY-MM-DD or RFC3339)", prefix, *t.StartDate))
		}
		if t.EndDate != nil && end == nil {
			errs = append(errs, fmt.Errorf("%s.end_date: invalid date %q (expected YYYY-MM-DD or RFC3339)", prefix, *t.EndDate))
		}
		if start != nil && end != nil && end.Before(*start) {
			errs = append(errs, fmt.Errorf("%s: end_date %q precedes start_date %q", prefix, *t.EndDate, *t.StartDate))
		}
	}

	for i, d := range schema.Dependencies {
		prefix := fmt.Sprintf("dependencies[%d]", i)

		if !refs[d.PredecessorRef] {
			errs = append(errs, fmt.Errorf("%s.predecessor_ref: unknown ref %q", prefix, d.PredecessorRef))
		}
		if !refs[d.SuccessorRef] {
			errs = append(errs, fmt.Errorf("%s.successor_ref: unknown ref %q", prefix, d.SuccessorRef))
		}
		if d.PredecessorRef == d.SuccessorRef {
			errs = append(errs, fmt.Errorf("%s: task %q cannot depend on itself", prefix, d.SuccessorRef))
		}
		if d.Type != "" && !domain.ValidDependencyTypes[d.Type] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, d.Type))
		}
	}

	return errs
}

// parseImportDate accepts YYYY-MM-DD or RFC3339. Returns nil on failure.
func parseImportDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	if t, err := time.Parse("2006-01-02", *s); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, *s); err == nil {
		return &t
	}
	return nil
}
