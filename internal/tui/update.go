package tui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"tracker/internal/task"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// If a popup is active, it gets the keys first.
		if m.currentPopup != popupNone {
			return m.handlePopupKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksRefreshedMsg:
		if msg.err != nil {
			m.statusMsg = "Failed to load project: " + msg.err.Error()
			return m, nil
		}
		m.projectID = msg.projectID
		m.tasks = msg.tasks
		m.completion = msg.completion
		m.rebuildColumns()
		return m, nil

	case taskEventsMsg:
		t := msg.task
		m.detailTask = &t
		m.detailEvents = msg.events
		m.currentScreen = screenDetail
		return m, nil

	case actionDoneMsg:
		m.statusMsg = msg.note
		return m, m.refreshTasks()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.currentScreen == screenBoard {
			m.quitting = true
			return m, tea.Quit
		}
		m.currentScreen = screenBoard
		m.detailTask = nil
		return m, nil

	case "esc":
		if m.currentScreen == screenDetail {
			m.currentScreen = screenBoard
			m.detailTask = nil
		}
		return m, nil
	}

	if m.currentScreen == screenDetail {
		return m, nil
	}
	return m.handleBoardKey(msg)
}

func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	// Navigation.
	case "h", "left":
		m.cursorCol--
		m.clampCursor()
	case "l", "right":
		m.cursorCol++
		m.clampCursor()
	case "k", "up":
		m.cursorRow--
		m.clampCursor()
	case "j", "down":
		m.cursorRow++
		m.clampCursor()

	case "enter", " ":
		if t := m.selectedTask(); t != nil {
			return m, m.loadTaskDetail(t.ID)
		}

	case "n":
		m.currentPopup = popupCreate
		m.titleInput.SetValue("")
		m.titleInput.Focus()

	case "s":
		if t := m.selectedTask(); t != nil {
			return m, m.startTask(t.ID)
		}

	case "c":
		if t := m.selectedTask(); t != nil {
			m.currentPopup = popupComplete
			m.popupTaskID = t.ID
			m.fieldInput.Placeholder = "Hours spent..."
			m.fieldInput.SetValue("")
			m.fieldInput.Focus()
		}

	case "b":
		if t := m.selectedTask(); t != nil {
			m.currentPopup = popupBlock
			m.popupTaskID = t.ID
			m.fieldInput.Placeholder = "Why is it blocked?"
			m.fieldInput.SetValue("")
			m.fieldInput.Focus()
		}

	case "a":
		if t := m.selectedTask(); t != nil && t.Status.State == task.StateBlocked {
			m.currentPopup = popupAnswer
			m.popupTaskID = t.ID
			m.fieldInput.Placeholder = "Resolution note..."
			m.fieldInput.SetValue("")
			m.fieldInput.Focus()
		}

	case "R":
		return m, m.refreshTasks()
	}

	return m, nil
}

func (m Model) handlePopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.currentPopup = popupNone
		return m, nil

	case "enter":
		return m.submitPopup()
	}

	var cmd tea.Cmd
	if m.currentPopup == popupCreate {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.fieldInput, cmd = m.fieldInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submitPopup() (tea.Model, tea.Cmd) {
	popup := m.currentPopup
	m.currentPopup = popupNone

	switch popup {
	case popupCreate:
		title := m.titleInput.Value()
		if title == "" {
			return m, nil
		}
		return m, m.createTask(title)

	case popupComplete:
		hours, err := strconv.ParseFloat(m.fieldInput.Value(), 64)
		if err != nil {
			m.statusMsg = "Invalid hours: " + m.fieldInput.Value()
			return m, nil
		}
		return m, m.completeTask(m.popupTaskID, hours)

	case popupBlock:
		reason := m.fieldInput.Value()
		if reason == "" {
			return m, nil
		}
		return m, m.blockTask(m.popupTaskID, reason)

	case popupAnswer:
		return m, m.answerTask(m.popupTaskID, m.fieldInput.Value())
	}

	return m, nil
}

// --- Store actions ---

func (m Model) developer() string {
	return m.cfg.Defaults.Developer
}

func (m Model) createTask(title string) tea.Cmd {
	return func() tea.Msg {
		t := task.New(0, title, task.TypeFeature).WithPriority(m.cfg.DefaultPriority())
		created, err := m.store.CreateTask(m.projectID, t)
		if err != nil {
			return actionDoneMsg{note: "Create failed: " + err.Error()}
		}
		return actionDoneMsg{note: fmt.Sprintf("Created task #%d", created.ID)}
	}
}

func (m Model) startTask(id int64) tea.Cmd {
	return func() tea.Msg {
		dev := m.developer()
		if dev == "" {
			return actionDoneMsg{note: "Set defaults.developer in .tracker/config.yaml first"}
		}
		t, _, err := m.store.GetTask(id)
		if err != nil {
			return actionDoneMsg{note: err.Error()}
		}
		if err := t.Start(dev); err != nil {
			return actionDoneMsg{note: err.Error()}
		}
		if err := m.store.SaveTask(t); err != nil {
			return actionDoneMsg{note: err.Error()}
		}
		m.store.AddEvent(id, dev, "started", "Started by "+dev)
		return actionDoneMsg{note: fmt.Sprintf("Task #%d started", id)}
	}
}

func (m Model) completeTask(id int64, hours float64) tea.Cmd {
	return func() tea.Msg {
		dev := m.developer()
		if dev == "" {
			return actionDoneMsg{note: "Set defaults.developer in .tracker/config.yaml first"}
		}
		t, _, err := m.store.GetTask(id)
		if err != nil {
			return actionDoneMsg{note: err.Error()}
		}
		if err := t.Complete(dev, hours); err != nil {
			return actionDoneMsg{note: err.Error()}
		}
		if err := m.store.SaveTask(t); err != nil {
			return actionDoneMsg{note: err.Error()}
		}
		m.store.AddEvent(id, dev, "completed", fmt.Sprintf("Completed by %s in %gh", dev, hours))
		return actionDoneMsg{note: fmt.Sprintf("Task #%d completed", id)}
	}
}

func (m Model) blockTask(id int64, reason string) tea.Cmd {
	return func() tea.Msg {
		t, _, err := m.store.GetTask(id)
		if err != nil {
			return actionDoneMsg{note: err.Error()}
		}
		if err := t.Block(reason); err != nil {
			return actionDoneMsg{note: err.Error()}
		}
		if err := m.store.SaveTask(t); err != nil {
			return actionDoneMsg{note: err.Error()}
		}
		m.store.AddEvent(id, "", "blocked", reason)
		return actionDoneMsg{note: fmt.Sprintf("Task #%d blocked", id)}
	}
}

func (m Model) answerTask(id int64, note string) tea.Cmd {
	return func() tea.Msg {
		t, _, err := m.store.GetTask(id)
		if err != nil {
			return actionDoneMsg{note: err.Error()}
		}
		if err := t.Unblock(); err != nil {
			return actionDoneMsg{note: err.Error()}
		}
		if err := m.store.SaveTask(t); err != nil {
			return actionDoneMsg{note: err.Error()}
		}
		if note == "" {
			note = "Blocker resolved"
		}
		m.store.AddEvent(id, "", "unblocked", note)
		return actionDoneMsg{note: fmt.Sprintf("Task #%d unblocked", id)}
	}
}
