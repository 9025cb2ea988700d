// Package store persists projects, tasks and their event log in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"tracker/internal/project"
	"tracker/internal/task"
)

// Store provides access to the tracker database.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at the given path.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent access.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL UNIQUE,
		created_at  DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id       INTEGER NOT NULL REFERENCES projects(id),
		title            TEXT NOT NULL,
		task_type        TEXT NOT NULL DEFAULT 'feature',
		priority         TEXT NOT NULL DEFAULT 'medium',
		status           TEXT NOT NULL DEFAULT 'todo',
		started_by       TEXT DEFAULT '',
		blocked_reason   TEXT DEFAULT '',
		completed_by     TEXT DEFAULT '',
		hours_spent      REAL NOT NULL DEFAULT 0,
		assignee         TEXT DEFAULT '',
		estimated_hours  REAL,
		created_at       DATETIME NOT NULL,
		updated_at       DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id     INTEGER NOT NULL REFERENCES tasks(id),
		actor       TEXT DEFAULT '',
		event_type  TEXT NOT NULL,
		content     TEXT DEFAULT '',
		timestamp   DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// --- Projects ---

// CreateProject inserts a new project. Project names are unique.
func (s *Store) CreateProject(name string) (*Project, error) {
	now := time.Now().UTC()
	res, err := s.db.Exec(
		`INSERT INTO projects (name, created_at) VALUES (?, ?)`, name, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	id, _ := res.LastInsertId()
	return &Project{ID: id, Name: name, CreatedAt: now}, nil
}

// GetProject returns the project row with the given name.
func (s *Store) GetProject(name string) (*Project, error) {
	row := s.db.QueryRow(
		`SELECT id, name, created_at FROM projects WHERE name = ?`, name,
	)
	var p Project
	err := row.Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("scan project: %w", err)
	}
	return &p, nil
}

// ListProjects returns all projects in creation order.
func (s *Store) ListProjects() ([]Project, error) {
	rows, err := s.db.Query(`SELECT id, name, created_at FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// LoadProject rebuilds the domain aggregate for a project: the row plus
// all its tasks in insertion order.
func (s *Store) LoadProject(name string) (*project.Project, error) {
	row, err := s.GetProject(name)
	if err != nil {
		return nil, err
	}
	tasks, err := s.ListTasks(row.ID, "")
	if err != nil {
		return nil, err
	}
	p := project.New(row.Name)
	for _, t := range tasks {
		p.AddTask(t)
	}
	return p, nil
}

// --- Tasks ---

// taskColumns is the standard column list for task queries.
const taskColumns = `id, title, task_type, priority, status, started_by, blocked_reason, completed_by, hours_spent, assignee, estimated_hours`

// CreateTask inserts a task into a project and returns it with the
// generated ID. The task carries the builder-set fields; its status is
// whatever the domain constructed (normally todo).
func (s *Store) CreateTask(projectID int64, t task.Task) (task.Task, error) {
	now := time.Now().UTC()
	res, err := s.db.Exec(
		`INSERT INTO tasks (project_id, title, task_type, priority, status, started_by, blocked_reason, completed_by, hours_spent, assignee, estimated_hours, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		projectID, t.Title, string(t.Type), t.Priority.String(),
		string(t.Status.State), t.Status.StartedBy, t.Status.Reason,
		t.Status.CompletedBy, t.Status.HoursSpent,
		t.Assignee, nullFloat(t.EstimatedHours), now, now,
	)
	if err != nil {
		return task.Task{}, fmt.Errorf("insert task: %w", err)
	}
	id, _ := res.LastInsertId()
	t.ID = id

	s.AddEvent(id, "", "created", fmt.Sprintf("Task created: %s", t.Title))
	return t, nil
}

// GetTask returns a single task and the ID of the project it belongs to.
func (s *Store) GetTask(id int64) (task.Task, int64, error) {
	row := s.db.QueryRow(
		`SELECT project_id, `+taskColumns+` FROM tasks WHERE id = ?`, id,
	)

	var projectID int64
	var t task.Task
	var taskType, priority, state, startedBy, reason, completedBy string
	var hoursSpent float64
	var estimate sql.NullFloat64
	err := row.Scan(
		&projectID, &t.ID, &t.Title, &taskType, &priority, &state,
		&startedBy, &reason, &completedBy, &hoursSpent, &t.Assignee, &estimate,
	)
	if err == sql.ErrNoRows {
		return task.Task{}, 0, fmt.Errorf("task #%d not found", id)
	}
	if err != nil {
		return task.Task{}, 0, fmt.Errorf("scan task: %w", err)
	}

	fillTask(&t, taskType, priority, state, startedBy, reason, completedBy, hoursSpent, estimate)
	return t, projectID, nil
}

// ListTasks returns a project's tasks in insertion order, optionally
// filtered by lifecycle state.
func (s *Store) ListTasks(projectID int64, state task.State) ([]task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ?`
	args := []any{projectID}
	if state != "" {
		query += ` AND status = ?`
		args = append(args, string(state))
	}
	query += ` ORDER BY id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var t task.Task
		var taskType, priority, state, startedBy, reason, completedBy string
		var hoursSpent float64
		var estimate sql.NullFloat64
		err := rows.Scan(
			&t.ID, &t.Title, &taskType, &priority, &state,
			&startedBy, &reason, &completedBy, &hoursSpent, &t.Assignee, &estimate,
		)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		fillTask(&t, taskType, priority, state, startedBy, reason, completedBy, hoursSpent, estimate)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// SaveTask writes a task's mutable fields back, including the full status
// payload. The caller runs the domain transition first; the store only
// records the outcome.
func (s *Store) SaveTask(t task.Task) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(
		`UPDATE tasks SET title = ?, priority = ?, status = ?, started_by = ?, blocked_reason = ?, completed_by = ?, hours_spent = ?, assignee = ?, estimated_hours = ?, updated_at = ?
		 WHERE id = ?`,
		t.Title, t.Priority.String(), string(t.Status.State),
		t.Status.StartedBy, t.Status.Reason, t.Status.CompletedBy, t.Status.HoursSpent,
		t.Assignee, nullFloat(t.EstimatedHours), now, t.ID,
	)
	if err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// --- Events ---

// AddEvent records an event for a task.
func (s *Store) AddEvent(taskID int64, actor, eventType, content string) {
	now := time.Now().UTC()
	s.db.Exec(
		`INSERT INTO events (task_id, actor, event_type, content, timestamp) VALUES (?, ?, ?, ?, ?)`,
		taskID, actor, eventType, content, now,
	)
}

// GetEvents returns all events for a task, oldest first.
func (s *Store) GetEvents(taskID int64) ([]Event, error) {
	rows, err := s.db.Query(
		`SELECT id, task_id, actor, event_type, content, timestamp FROM events WHERE task_id = ? ORDER BY id`,
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("get events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// RecentProjectEvents returns the latest events across all tasks of a
// project, newest first, capped at limit.
func (s *Store) RecentProjectEvents(projectID int64, limit int) ([]Event, error) {
	rows, err := s.db.Query(
		`SELECT e.id, e.task_id, e.actor, e.event_type, e.content, e.timestamp
		 FROM events e JOIN tasks t ON t.id = e.task_id
		 WHERE t.project_id = ?
		 ORDER BY e.id DESC LIMIT ?`,
		projectID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get project events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.TaskID, &e.Actor, &e.Type, &e.Content, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// --- Scan helpers ---

// fillTask reconstructs the domain enums and the status tagged union from
// their column representation. Unparseable enum values (hand-edited rows)
// fall back to the domain defaults.
func fillTask(t *task.Task, taskType, priority, state, startedBy, reason, completedBy string, hoursSpent float64, estimate sql.NullFloat64) {
	tt, err := task.ParseType(taskType)
	if err != nil {
		tt = task.TypeFeature
	}
	t.Type = tt

	pri, err := task.ParsePriority(priority)
	if err != nil {
		pri = task.PriorityMedium
	}
	t.Priority = pri

	switch task.State(state) {
	case task.StateInProgress:
		t.Status = task.InProgress(startedBy)
	case task.StateBlocked:
		t.Status = task.Blocked(reason)
	case task.StateCompleted:
		t.Status = task.Completed(completedBy, hoursSpent)
	default:
		t.Status = task.Todo()
	}

	if estimate.Valid {
		hours := estimate.Float64
		t.EstimatedHours = &hours
	} else {
		t.EstimatedHours = nil
	}
}

// nullFloat maps a nil estimate to SQL NULL, keeping "no estimate"
// distinct from an estimate of zero.
func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
