package store

import "time"

// Project is a stored project row. The domain aggregate with its tasks is
// rebuilt from rows via LoadProject.
type Project struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Event records something that happened to a task: created, started,
// completed, blocked, unblocked, assigned, estimated, priority_changed.
type Event struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	Actor     string    `json:"actor,omitempty"`
	Type      string    `json:"event_type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
