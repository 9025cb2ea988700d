package project

import "tracker/internal/task"

// Analytics are read-only folds over a task slice. They copy tasks out
// rather than returning pointers into the input, so the caller may mutate
// the source afterwards without aliasing surprises.

// ByPriority groups tasks by priority. Every task lands in exactly one
// group, keyed by its own priority.
func ByPriority(tasks []task.Task) map[task.Priority][]task.Task {
	grouped := make(map[task.Priority][]task.Task)
	for _, t := range tasks {
		grouped[t.Priority] = append(grouped[t.Priority], t)
	}
	return grouped
}

// CountByStatus counts tasks per lifecycle state, keyed by the state's
// human-readable label (Todo, In Progress, Blocked, Completed).
func CountByStatus(tasks []task.Task) map[string]int {
	counts := make(map[string]int)
	for _, t := range tasks {
		counts[t.Status.State.Label()]++
	}
	return counts
}

// WorkloadByAssignee sums estimated hours per assignee. Unassigned tasks
// are skipped; an assigned task without an estimate contributes 0.
func WorkloadByAssignee(tasks []task.Task) map[string]float64 {
	workload := make(map[string]float64)
	for _, t := range tasks {
		if t.Assignee == "" {
			continue
		}
		hours := 0.0
		if t.EstimatedHours != nil {
			hours = *t.EstimatedHours
		}
		workload[t.Assignee] += hours
	}
	return workload
}

// Unassigned returns the tasks that have no assignee, in input order.
func Unassigned(tasks []task.Task) []task.Task {
	var out []task.Task
	for _, t := range tasks {
		if t.Assignee == "" {
			out = append(out, t)
		}
	}
	return out
}
