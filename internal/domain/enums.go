package domain

import "fmt"

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// ParseTaskStatus validates and converts a task status string.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch TaskStatus(s) {
	case TaskTodo, TaskInProgress, TaskDone:
		return TaskStatus(s), nil
	}
	return "", fmt.Errorf("invalid task status %q (expected todo, in_progress, or done)", s)
}

// DependencyType is one of the four standard project-scheduling relationship
// types. It constrains how a task's timing relates to its predecessor's.
type DependencyType string

const (
	FinishToStart  DependencyType = "finish-to-start"
	StartToStart   DependencyType = "start-to-start"
	FinishToFinish DependencyType = "finish-to-finish"
	StartToFinish  DependencyType = "start-to-finish"
)

// ValidDependencyTypes is the canonical set of accepted dependency type strings.
var ValidDependencyTypes = map[string]bool{
	string(FinishToStart):  true,
	string(StartToStart):   true,
	string(FinishToFinish): true,
	string(StartToFinish):  true,
}

// ParseDependencyType validates and converts a dependency type string.
func ParseDependencyType(s string) (DependencyType, error) {
	if !ValidDependencyTypes[s] {
		return "", fmt.Errorf("invalid dependency type %q (expected one of finish-to-start, start-to-start, finish-to-finish, start-to-finish)", s)
	}
	return DependencyType(s), nil
}
