// Package task models a single unit of work and its lifecycle.
package task

import (
	"errors"
	"fmt"
	"strings"
)

// Priority of a task. Ordered low to critical; the declaration order
// is the sort order.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// ParsePriority converts a string (CLI flag, config, database row) to a Priority.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(s) {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	case "critical":
		return PriorityCritical, nil
	default:
		return PriorityMedium, fmt.Errorf("unknown priority %q (want low, medium, high or critical)", s)
	}
}

// Type classifies what kind of work a task is. Purely descriptive.
type Type string

const (
	TypeBug           Type = "bug"
	TypeFeature       Type = "feature"
	TypeImprovement   Type = "improvement"
	TypeDocumentation Type = "documentation"
)

// ParseType converts a string to a task Type.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(s)) {
	case TypeBug, TypeFeature, TypeImprovement, TypeDocumentation:
		return Type(strings.ToLower(s)), nil
	default:
		return TypeFeature, fmt.Errorf("unknown task type %q (want bug, feature, improvement or documentation)", s)
	}
}

// State names one of the four lifecycle states.
type State string

const (
	StateTodo       State = "todo"
	StateInProgress State = "in_progress"
	StateBlocked    State = "blocked"
	StateCompleted  State = "completed"
)

// Label returns the human-readable form used in reports and counts.
func (s State) Label() string {
	switch s {
	case StateTodo:
		return "Todo"
	case StateInProgress:
		return "In Progress"
	case StateBlocked:
		return "Blocked"
	case StateCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// States lists all lifecycle states in board order.
func States() []State {
	return []State{StateTodo, StateInProgress, StateBlocked, StateCompleted}
}

// Status is the lifecycle state of a task together with the data attached
// to that state. Exactly one state is active at a time; only the payload
// fields belonging to the active state are meaningful.
type Status struct {
	State       State
	StartedBy   string  // in_progress: who picked the task up
	Reason      string  // blocked: why it is stuck
	CompletedBy string  // completed: who finished it
	HoursSpent  float64 // completed: actual effort
}

// Todo is the initial status.
func Todo() Status { return Status{State: StateTodo} }

// InProgress records who started working on the task.
func InProgress(startedBy string) Status {
	return Status{State: StateInProgress, StartedBy: startedBy}
}

// Blocked records why the task cannot proceed.
func Blocked(reason string) Status {
	return Status{State: StateBlocked, Reason: reason}
}

// Completed is the terminal status, recording who finished and the effort.
func Completed(completedBy string, hoursSpent float64) Status {
	return Status{State: StateCompleted, CompletedBy: completedBy, HoursSpent: hoursSpent}
}

// IsDone reports whether the status is Completed. Nothing else counts.
func (s Status) IsDone() bool {
	return s.State == StateCompleted
}

// Task is a unit of work. ID and Type are fixed at construction; Priority,
// Status, Assignee and EstimatedHours may change over the task's life.
// Status changes only through Start/Complete/Block/Unblock, never by
// assigning the field directly.
type Task struct {
	ID       int64
	Title    string
	Priority Priority
	Status   Status
	Type     Type
	Assignee string // "" means unassigned

	// EstimatedHours is nil when no estimate was ever set. A nil estimate
	// is distinct from an estimate of zero.
	EstimatedHours *float64
}

// New creates a task in the Todo state with medium priority, no assignee
// and no estimate. IDs are caller-assigned and expected to be unique
// within a project.
func New(id int64, title string, taskType Type) Task {
	return Task{
		ID:       id,
		Title:    title,
		Priority: PriorityMedium,
		Status:   Todo(),
		Type:     taskType,
	}
}

// WithPriority overwrites the priority and returns the task, for fluent
// construction. No validation is applied.
func (t Task) WithPriority(p Priority) Task {
	t.Priority = p
	return t
}

// AssignedTo sets the assignee and returns the task.
func (t Task) AssignedTo(person string) Task {
	t.Assignee = person
	return t
}

// WithEstimate sets the estimated hours and returns the task. Zero and
// negative values are accepted as-is.
func (t Task) WithEstimate(hours float64) Task {
	t.EstimatedHours = &hours
	return t
}

// IsDone reports whether the task is completed.
func (t Task) IsDone() bool {
	return t.Status.IsDone()
}

// Start moves the task from Todo to InProgress. Every other state refuses,
// with a message naming what stands in the way; the status is left
// unchanged on failure.
func (t *Task) Start(developer string) error {
	switch t.Status.State {
	case StateTodo:
		t.Status = InProgress(developer)
		return nil
	case StateBlocked:
		return fmt.Errorf("cannot start: blocked - %s", t.Status.Reason)
	case StateInProgress:
		return fmt.Errorf("already in progress by %s", t.Status.StartedBy)
	case StateCompleted:
		return errors.New("task already completed")
	default:
		return fmt.Errorf("unknown state %q", t.Status.State)
	}
}

// Complete moves the task from InProgress to Completed. The completer does
// not have to be the developer who started it.
func (t *Task) Complete(developer string, hours float64) error {
	if t.Status.State != StateInProgress {
		return errors.New("can only complete tasks in progress")
	}
	t.Status = Completed(developer, hours)
	return nil
}

// Block marks the task as stuck. Legal from Todo and InProgress; a
// completed task can no longer be blocked.
func (t *Task) Block(reason string) error {
	switch t.Status.State {
	case StateTodo, StateInProgress:
		t.Status = Blocked(reason)
		return nil
	case StateBlocked:
		return fmt.Errorf("already blocked - %s", t.Status.Reason)
	case StateCompleted:
		return errors.New("task already completed")
	default:
		return fmt.Errorf("unknown state %q", t.Status.State)
	}
}

// Unblock returns a blocked task to Todo so it can be started again.
func (t *Task) Unblock() error {
	if t.Status.State != StateBlocked {
		return fmt.Errorf("task is not blocked (state: %s)", t.Status.State)
	}
	t.Status = Todo()
	return nil
}
