// Package project aggregates tasks and derives summary statistics.
package project

import (
	"fmt"

	"tracker/internal/task"
)

// Project is a named, ordered collection of tasks. It owns its tasks:
// mutation happens through pointers handed out by FindTask, and nothing
// here is safe for concurrent use.
type Project struct {
	Name  string
	Tasks []task.Task
}

// New creates an empty project.
func New(name string) *Project {
	return &Project{Name: name}
}

// AddTask appends a task, preserving insertion order. Duplicate IDs are
// accepted silently; callers who want FindTask to be meaningful must keep
// IDs unique themselves.
func (p *Project) AddTask(t task.Task) {
	p.Tasks = append(p.Tasks, t)
}

// FindTask returns a pointer to the first task with the given ID, or nil.
// The pointer aliases the project's backing slice and is valid until the
// next AddTask.
func (p *Project) FindTask(id int64) *task.Task {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return &p.Tasks[i]
		}
	}
	return nil
}

// CompletionPercentage is the share of completed tasks, 0-100.
// An empty project is 0% complete.
func (p *Project) CompletionPercentage() float64 {
	if len(p.Tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range p.Tasks {
		if t.IsDone() {
			done++
		}
	}
	return float64(done) / float64(len(p.Tasks)) * 100
}

// TotalEstimate sums the estimates of all tasks that have one. It returns
// nil only when no task has an estimate at all; a sum of zero from
// explicit zero estimates is returned as 0, not nil.
func (p *Project) TotalEstimate() *float64 {
	var total float64
	found := false
	for _, t := range p.Tasks {
		if t.EstimatedHours != nil {
			total += *t.EstimatedHours
			found = true
		}
	}
	if !found {
		return nil
	}
	return &total
}

// AverageEstimate is TotalEstimate divided by the task count, including
// tasks without an estimate in the denominator. Nil when TotalEstimate is
// nil or the project is empty.
func (p *Project) AverageEstimate() *float64 {
	total := p.TotalEstimate()
	if total == nil || len(p.Tasks) == 0 {
		return nil
	}
	avg := *total / float64(len(p.Tasks))
	return &avg
}

// Summary renders the project as a single report line.
func (p *Project) Summary() string {
	return fmt.Sprintf("Project: %s (%d tasks, %.1f%% complete)",
		p.Name, len(p.Tasks), p.CompletionPercentage())
}
