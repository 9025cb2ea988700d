package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tracker/internal/config"
	"tracker/internal/store"
	"tracker/internal/task"
)

// screen represents which view the TUI is showing.
type screen int

const (
	screenBoard  screen = iota // kanban board (main)
	screenDetail               // task detail panel
)

// popup overlays on top of the current screen.
type popup int

const (
	popupNone popup = iota
	popupCreate
	popupComplete
	popupBlock
	popupAnswer
)

// column indices for navigation
const (
	colTodo       = 0
	colInProgress = 1
	colBlocked    = 2
	colDone       = 3
	numColumns    = 4
)

var columnStates = [numColumns]task.State{
	task.StateTodo,
	task.StateInProgress,
	task.StateBlocked,
	task.StateCompleted,
}

var columnLabels = [numColumns]string{
	"TODO",
	"IN PROGRESS",
	"BLOCKED",
	"DONE",
}

// Model is the top-level bubbletea model.
type Model struct {
	store       *store.Store
	cfg         *config.Config
	projectName string
	projectID   int64

	width  int
	height int

	currentScreen screen
	currentPopup  popup

	// Board state.
	columns   [numColumns][]task.Task
	cursorCol int
	cursorRow int

	// All tasks cache plus derived completion.
	tasks      []task.Task
	completion float64

	// Text inputs for the popups.
	titleInput textinput.Model
	fieldInput textinput.Model // hours / reason / answer note

	// Task targeted by the active popup.
	popupTaskID int64

	// Selected task for detail view.
	detailTask   *task.Task
	detailEvents []store.Event

	// Status message at the bottom.
	statusMsg string

	quitting bool
}

// New creates a new TUI model for one project.
func New(s *store.Store, cfg *config.Config, projectName string) Model {
	ti := textinput.New()
	ti.Placeholder = "Task title..."
	ti.CharLimit = 120
	ti.Width = 50

	fi := textinput.New()
	fi.CharLimit = 200
	fi.Width = 50

	return Model{
		store:       s,
		cfg:         cfg,
		projectName: projectName,
		titleInput:  ti,
		fieldInput:  fi,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.refreshTasks()
}

type tasksRefreshedMsg struct {
	projectID  int64
	tasks      []task.Task
	completion float64
	err        error
}

type taskEventsMsg struct {
	task   task.Task
	events []store.Event
}

// actionDoneMsg reports the outcome of a store mutation; the board is
// refreshed afterwards.
type actionDoneMsg struct {
	note string
}

func (m Model) refreshTasks() tea.Cmd {
	return func() tea.Msg {
		p, err := m.store.LoadProject(m.projectName)
		if err != nil {
			return tasksRefreshedMsg{err: err}
		}
		row, err := m.store.GetProject(m.projectName)
		if err != nil {
			return tasksRefreshedMsg{err: err}
		}
		return tasksRefreshedMsg{
			projectID:  row.ID,
			tasks:      p.Tasks,
			completion: p.CompletionPercentage(),
		}
	}
}

func (m Model) loadTaskDetail(id int64) tea.Cmd {
	return func() tea.Msg {
		t, _, err := m.store.GetTask(id)
		if err != nil {
			return actionDoneMsg{note: "Error loading task: " + err.Error()}
		}
		events, _ := m.store.GetEvents(id)
		return taskEventsMsg{task: t, events: events}
	}
}

func (m *Model) rebuildColumns() {
	for i := range m.columns {
		m.columns[i] = nil
	}
	for _, t := range m.tasks {
		for i, state := range columnStates {
			if t.Status.State == state {
				m.columns[i] = append(m.columns[i], t)
				break
			}
		}
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursorCol < 0 {
		m.cursorCol = 0
	}
	if m.cursorCol >= numColumns {
		m.cursorCol = numColumns - 1
	}
	col := m.columns[m.cursorCol]
	if m.cursorRow >= len(col) {
		m.cursorRow = len(col) - 1
	}
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
}

func (m *Model) selectedTask() *task.Task {
	col := m.columns[m.cursorCol]
	if m.cursorRow < len(col) {
		t := col[m.cursorRow]
		return &t
	}
	return nil
}
