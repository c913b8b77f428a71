package engine

import (
	"fmt"
	"strings"
)

// ErrorKind classifies dependency validation failures.
type ErrorKind string

const (
	ErrKindCircular ErrorKind = "circular"
	ErrKindMissing  ErrorKind = "missing"
	ErrKindInvalid  ErrorKind = "invalid"
)

// ValidationError is the structured error raised by the strict validator.
// InvolvedIDs names the offending tasks; for circular errors Cycles carries
// every detected cycle as an ordered id sequence.
type ValidationError struct {
	Kind        ErrorKind
	InvolvedIDs []string
	Cycles      [][]string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ErrKindCircular:
		paths := make([]string, len(e.Cycles))
		for i, c := range e.Cycles {
			paths[i] = strings.Join(c, " -> ")
		}
		return fmt.Sprintf("circular dependency detected: %s", strings.Join(paths, "; "))
	case ErrKindMissing:
		return fmt.Sprintf("dependency references unknown task(s): %s", strings.Join(e.InvolvedIDs, ", "))
	default:
		return fmt.Sprintf("invalid dependency on task(s): %s", strings.Join(e.InvolvedIDs, ", "))
	}
}
