package project

import (
	"testing"

	"tracker/internal/task"
)

func sampleTasks() []task.Task {
	return []task.Task{
		task.New(1, "Fix login bug", task.TypeBug).
			WithPriority(task.PriorityCritical).AssignedTo("Alice").WithEstimate(4.0),
		task.New(2, "Implement dark mode", task.TypeFeature).
			AssignedTo("Bob").WithEstimate(16.0),
		task.New(3, "Optimize queries", task.TypeImprovement).
			WithPriority(task.PriorityHigh).WithEstimate(8.0),
		task.New(4, "Update API docs", task.TypeDocumentation).
			WithPriority(task.PriorityLow).AssignedTo("Charlie"),
	}
}

func TestByPriority_Partitions(t *testing.T) {
	tasks := sampleTasks()
	grouped := ByPriority(tasks)

	total := 0
	for pri, group := range grouped {
		total += len(group)
		for _, tk := range group {
			if tk.Priority != pri {
				t.Errorf("task %d grouped under %s but has priority %s", tk.ID, pri, tk.Priority)
			}
		}
	}
	if total != len(tasks) {
		t.Errorf("partition lost tasks: grouped %d of %d", total, len(tasks))
	}
	if len(grouped[task.PriorityMedium]) != 1 {
		t.Errorf("expected 1 medium task, got %d", len(grouped[task.PriorityMedium]))
	}
}

func TestByPriority_CopiesOut(t *testing.T) {
	tasks := sampleTasks()
	grouped := ByPriority(tasks)

	// Mutating the grouped copy must not touch the source.
	grouped[task.PriorityCritical][0].Title = "changed"
	if tasks[0].Title != "Fix login bug" {
		t.Error("ByPriority returned aliases into the input slice")
	}
}

func TestCountByStatus(t *testing.T) {
	tasks := sampleTasks()
	tasks[0].Status = task.InProgress("Alice")
	tasks[1].Status = task.Blocked("waiting on design")
	tasks[2].Status = task.Completed("Carol", 7.5)

	counts := CountByStatus(tasks)
	want := map[string]int{
		"Todo": 1, "In Progress": 1, "Blocked": 1, "Completed": 1,
	}
	for label, n := range want {
		if counts[label] != n {
			t.Errorf("counts[%q] = %d, want %d", label, counts[label], n)
		}
	}
}

func TestWorkloadByAssignee(t *testing.T) {
	tasks := sampleTasks()
	workload := WorkloadByAssignee(tasks)

	if workload["Alice"] != 4.0 {
		t.Errorf("Alice = %v, want 4.0", workload["Alice"])
	}
	if workload["Bob"] != 16.0 {
		t.Errorf("Bob = %v, want 16.0", workload["Bob"])
	}
	// Charlie has no estimate: present with 0 hours.
	if hours, ok := workload["Charlie"]; !ok || hours != 0 {
		t.Errorf("Charlie = %v (present=%v), want 0", hours, ok)
	}
	// Task 3 is unassigned and must not appear.
	if len(workload) != 3 {
		t.Errorf("expected 3 assignees, got %d", len(workload))
	}
}

func TestUnassigned(t *testing.T) {
	tasks := sampleTasks()
	got := Unassigned(tasks)
	if len(got) != 1 || got[0].ID != 3 {
		t.Errorf("Unassigned = %v, want just task 3", got)
	}
}

func TestAnalytics_DoNotMutateInput(t *testing.T) {
	tasks := sampleTasks()
	before := make([]task.Task, len(tasks))
	copy(before, tasks)

	ByPriority(tasks)
	CountByStatus(tasks)
	WorkloadByAssignee(tasks)
	Unassigned(tasks)

	for i := range tasks {
		if tasks[i].ID != before[i].ID || tasks[i].Status != before[i].Status ||
			tasks[i].Title != before[i].Title {
			t.Fatalf("analytics mutated input at index %d", i)
		}
	}
}
