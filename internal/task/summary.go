package task

import "fmt"

// Summarizable is anything that can describe itself as a line of text.
type Summarizable interface {
	Summary() string
}

// OneLine truncates a summary so it fits a 60-column line.
func OneLine(s Summarizable) string {
	full := s.Summary()
	if len(full) > 60 {
		return full[:57] + "..."
	}
	return full
}

// Summary renders the task as "[id] type: title | status".
func (t Task) Summary() string {
	var status string
	switch t.Status.State {
	case StateTodo:
		status = "TODO"
	case StateInProgress:
		status = fmt.Sprintf("In Progress (%s)", t.Status.StartedBy)
	case StateBlocked:
		status = fmt.Sprintf("BLOCKED: %s", t.Status.Reason)
	case StateCompleted:
		status = fmt.Sprintf("Done by %s in %gh", t.Status.CompletedBy, t.Status.HoursSpent)
	default:
		status = string(t.Status.State)
	}
	return fmt.Sprintf("[%d] %s: %s | %s", t.ID, t.Type, t.Title, status)
}
