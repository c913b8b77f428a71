package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveTaskID resolves a task identifier which can be a full UUID or a
// unique UUID prefix.
func resolveTaskID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("task ID is required")
	}

	tasks, err := app.Tasks.List(ctx)
	if err != nil {
		return "", err
	}

	// 1. Exact ID match
	for _, t := range tasks {
		if t.ID == input {
			return t.ID, nil
		}
	}

	// 2. Prefix match
	var matches []string
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
