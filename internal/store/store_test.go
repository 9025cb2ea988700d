package store

import (
	"os"
	"path/filepath"
	"testing"

	"tracker/internal/task"
)

// testStore creates a temporary store for testing.
func testStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testProject creates a project row to hang tasks off.
func testProject(t *testing.T, s *Store, name string) *Project {
	t.Helper()
	p, err := s.CreateProject(name)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func TestNew_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file not created")
	}
}

func TestCreateProject(t *testing.T) {
	s := testStore(t)

	p, err := s.CreateProject("Website Redesign")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if p.ID != 1 {
		t.Errorf("expected ID 1, got %d", p.ID)
	}

	got, err := s.GetProject("Website Redesign")
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got.Name != "Website Redesign" {
		t.Errorf("expected 'Website Redesign', got %q", got.Name)
	}
}

func TestCreateProject_DuplicateName(t *testing.T) {
	s := testStore(t)

	testProject(t, s, "dup")
	if _, err := s.CreateProject("dup"); err == nil {
		t.Fatal("expected error for duplicate project name")
	}
}

func TestGetProject_NotFound(t *testing.T) {
	s := testStore(t)

	if _, err := s.GetProject("nope"); err == nil {
		t.Fatal("expected error for missing project")
	}
}

func TestListProjects(t *testing.T) {
	s := testStore(t)

	testProject(t, s, "one")
	testProject(t, s, "two")

	projects, err := s.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].Name != "one" || projects[1].Name != "two" {
		t.Errorf("wrong order: %v", projects)
	}
}

func TestCreateTask_RoundTrip(t *testing.T) {
	s := testStore(t)
	p := testProject(t, s, "proj")

	created, err := s.CreateTask(p.ID, task.New(0, "Fix login", task.TypeBug).
		WithPriority(task.PriorityCritical).
		AssignedTo("Alice").
		WithEstimate(4.0))
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected generated ID")
	}

	got, projectID, err := s.GetTask(created.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if projectID != p.ID {
		t.Errorf("expected project %d, got %d", p.ID, projectID)
	}
	if got.Title != "Fix login" || got.Type != task.TypeBug {
		t.Errorf("wrong task: %+v", got)
	}
	if got.Priority != task.PriorityCritical {
		t.Errorf("expected critical, got %s", got.Priority)
	}
	if got.Assignee != "Alice" {
		t.Errorf("expected Alice, got %q", got.Assignee)
	}
	if got.EstimatedHours == nil || *got.EstimatedHours != 4.0 {
		t.Errorf("expected estimate 4.0, got %v", got.EstimatedHours)
	}
	if got.Status.State != task.StateTodo {
		t.Errorf("expected todo, got %s", got.Status.State)
	}
}

func TestGetTask_NotFound(t *testing.T) {
	s := testStore(t)

	if _, _, err := s.GetTask(999); err == nil {
		t.Fatal("expected error for non-existent task")
	}
}

func TestSaveTask_StatusPayloads(t *testing.T) {
	s := testStore(t)
	p := testProject(t, s, "proj")

	created, _ := s.CreateTask(p.ID, task.New(0, "Payload test", task.TypeFeature))

	// in_progress payload.
	if err := created.Start("Alice"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.SaveTask(created); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}
	got, _, _ := s.GetTask(created.ID)
	if got.Status.State != task.StateInProgress || got.Status.StartedBy != "Alice" {
		t.Errorf("in_progress payload lost: %+v", got.Status)
	}

	// completed payload.
	if err := got.Complete("Bob", 3.5); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := s.SaveTask(got); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}
	got, _, _ = s.GetTask(created.ID)
	if got.Status.State != task.StateCompleted {
		t.Fatalf("expected completed, got %s", got.Status.State)
	}
	if got.Status.CompletedBy != "Bob" || got.Status.HoursSpent != 3.5 {
		t.Errorf("completed payload lost: %+v", got.Status)
	}
}

func TestSaveTask_BlockedReason(t *testing.T) {
	s := testStore(t)
	p := testProject(t, s, "proj")

	created, _ := s.CreateTask(p.ID, task.New(0, "Block test", task.TypeBug))
	if err := created.Block("Which DB to use?"); err != nil {
		t.Fatalf("Block: %v", err)
	}
	if err := s.SaveTask(created); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}

	got, _, _ := s.GetTask(created.ID)
	if got.Status.State != task.StateBlocked || got.Status.Reason != "Which DB to use?" {
		t.Errorf("blocked payload lost: %+v", got.Status)
	}
}

func TestSaveTask_NilEstimateStaysNil(t *testing.T) {
	s := testStore(t)
	p := testProject(t, s, "proj")

	created, _ := s.CreateTask(p.ID, task.New(0, "No estimate", task.TypeBug))
	if err := s.SaveTask(created); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}

	got, _, _ := s.GetTask(created.ID)
	if got.EstimatedHours != nil {
		t.Errorf("nil estimate came back as %v", *got.EstimatedHours)
	}
}

func TestListTasks_FilterByState(t *testing.T) {
	s := testStore(t)
	p := testProject(t, s, "proj")

	s.CreateTask(p.ID, task.New(0, "todo task", task.TypeBug))
	done, _ := s.CreateTask(p.ID, task.New(0, "done task", task.TypeBug))
	done.Start("Alice")
	done.Complete("Alice", 1.0)
	s.SaveTask(done)

	todos, err := s.ListTasks(p.ID, task.StateTodo)
	if err != nil {
		t.Fatalf("ListTasks todo: %v", err)
	}
	if len(todos) != 1 {
		t.Errorf("expected 1 todo task, got %d", len(todos))
	}

	completed, err := s.ListTasks(p.ID, task.StateCompleted)
	if err != nil {
		t.Fatalf("ListTasks completed: %v", err)
	}
	if len(completed) != 1 {
		t.Errorf("expected 1 completed task, got %d", len(completed))
	}
}

func TestListTasks_ScopedToProject(t *testing.T) {
	s := testStore(t)
	p1 := testProject(t, s, "one")
	p2 := testProject(t, s, "two")

	s.CreateTask(p1.ID, task.New(0, "in one", task.TypeBug))
	s.CreateTask(p2.ID, task.New(0, "in two", task.TypeBug))

	tasks, err := s.ListTasks(p1.ID, "")
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "in one" {
		t.Errorf("expected only project one's task, got %v", tasks)
	}
}

func TestLoadProject(t *testing.T) {
	s := testStore(t)
	p := testProject(t, s, "Website Redesign")

	s.CreateTask(p.ID, task.New(0, "a", task.TypeBug).WithEstimate(4.0))
	s.CreateTask(p.ID, task.New(0, "b", task.TypeFeature).WithEstimate(16.0))
	s.CreateTask(p.ID, task.New(0, "c", task.TypeImprovement))
	s.CreateTask(p.ID, task.New(0, "d", task.TypeDocumentation).WithEstimate(3.0))

	agg, err := s.LoadProject("Website Redesign")
	if err != nil {
		t.Fatalf("LoadProject: %v", err)
	}
	if len(agg.Tasks) != 4 {
		t.Fatalf("expected 4 tasks, got %d", len(agg.Tasks))
	}

	total := agg.TotalEstimate()
	if total == nil || *total != 23.0 {
		t.Errorf("total = %v, want 23.0", total)
	}
	avg := agg.AverageEstimate()
	if avg == nil || *avg != 5.75 {
		t.Errorf("average = %v, want 5.75", avg)
	}
	if got := agg.CompletionPercentage(); got != 0 {
		t.Errorf("completion = %v, want 0", got)
	}
}

func TestEvents(t *testing.T) {
	s := testStore(t)
	p := testProject(t, s, "proj")

	created, _ := s.CreateTask(p.ID, task.New(0, "Events test", task.TypeBug))

	// CreateTask already adds a "created" event.
	events, err := s.GetEvents(created.ID)
	if err != nil {
		t.Fatalf("GetEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event after create, got %d", len(events))
	}
	if events[0].Type != "created" {
		t.Errorf("expected 'created' event, got %q", events[0].Type)
	}

	s.AddEvent(created.ID, "Alice", "started", "Started by Alice")
	events, _ = s.GetEvents(created.ID)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	last := events[len(events)-1]
	if last.Actor != "Alice" || last.Type != "started" {
		t.Errorf("wrong event: %+v", last)
	}
}

func TestRecentProjectEvents(t *testing.T) {
	s := testStore(t)
	p := testProject(t, s, "proj")

	t1, _ := s.CreateTask(p.ID, task.New(0, "one", task.TypeBug))
	t2, _ := s.CreateTask(p.ID, task.New(0, "two", task.TypeBug))
	s.AddEvent(t1.ID, "Alice", "started", "go")
	s.AddEvent(t2.ID, "Bob", "blocked", "stuck")

	events, err := s.RecentProjectEvents(p.ID, 3)
	if err != nil {
		t.Fatalf("RecentProjectEvents: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	// Newest first.
	if events[0].Type != "blocked" {
		t.Errorf("expected newest event first, got %q", events[0].Type)
	}
}
