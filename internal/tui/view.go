package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tracker/internal/task"
)

// --- Color palette ---
var (
	clrSubtle    = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#666666"}
	clrHighlight = lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"}
	clrGreen     = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	clrYellow    = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	clrRed       = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	clrBlue      = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	clrCyan      = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"}
	clrDim       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#555555"}
)

// --- Styles ---
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)
	dimStyle    = lipgloss.NewStyle().Foreground(clrDim)
	subtleStyle = lipgloss.NewStyle().Foreground(clrSubtle)

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(clrSubtle).
			Padding(0, 1)

	columnActiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(clrHighlight).
				Padding(0, 1)

	popupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(clrHighlight).
			Padding(1, 2).
			Width(60)

	statusStyle = lipgloss.NewStyle().Foreground(clrGreen).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(clrRed).Bold(true)

	footerKeyStyle  = lipgloss.NewStyle().Bold(true).Foreground(clrHighlight)
	footerDescStyle = lipgloss.NewStyle().Foreground(clrSubtle)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.currentScreen {
	case screenBoard:
		content = m.viewBoard()
	case screenDetail:
		content = m.viewDetail()
	}

	if m.currentPopup != popupNone {
		content = m.overlayPopup(content)
	}

	return content
}

// --- Board screen ---

func (m Model) viewBoard() string {
	var b strings.Builder

	header := titleStyle.Render(m.projectName)
	header += dimStyle.Render(fmt.Sprintf(" — %d tasks, %.1f%% complete", len(m.tasks), m.completion))
	b.WriteString(header + "\n\n")

	if len(m.tasks) == 0 {
		b.WriteString(dimStyle.Render("  No tasks yet. Press ") +
			footerKeyStyle.Render("n") +
			dimStyle.Render(" to create one.\n"))
		b.WriteString("\n" + m.boardFooter())
		return b.String()
	}

	colWidth := 28
	if m.width > 0 {
		colWidth = (m.width - numColumns*2 - 2) / numColumns
		if colWidth < 20 {
			colWidth = 20
		}
		if colWidth > 40 {
			colWidth = 40
		}
	}

	var rendered []string
	for i := 0; i < numColumns; i++ {
		rendered = append(rendered, m.renderColumn(i, colWidth))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")

	if m.statusMsg != "" {
		b.WriteString("\n")
		lower := strings.ToLower(m.statusMsg)
		if strings.HasPrefix(lower, "failed") || strings.Contains(lower, "error") ||
			strings.HasPrefix(lower, "cannot") || strings.HasPrefix(lower, "already") {
			b.WriteString(errorStyle.Render("  " + m.statusMsg))
		} else {
			b.WriteString(statusStyle.Render("  " + m.statusMsg))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.boardFooter())

	return b.String()
}

func (m Model) renderColumn(idx, width int) string {
	var content strings.Builder

	label := columnLabels[idx]
	count := len(m.columns[idx])
	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(columnColor(idx)).
		Render(fmt.Sprintf("%s (%d)", label, count)) + "\n\n")

	for row, t := range m.columns[idx] {
		selected := idx == m.cursorCol && row == m.cursorRow
		content.WriteString(m.renderCard(t, selected, width-4) + "\n")
	}

	style := columnStyle
	if idx == m.cursorCol {
		style = columnActiveStyle
	}
	return style.Width(width).Render(content.String())
}

func (m Model) renderCard(t task.Task, selected bool, width int) string {
	cursor := "  "
	if selected {
		cursor = lipgloss.NewStyle().Foreground(clrHighlight).Render("▸ ")
	}

	id := lipgloss.NewStyle().Foreground(clrCyan).Render(fmt.Sprintf("#%d", t.ID))
	title := truncate(t.Title, width-6)
	line := cursor + id + " " + title

	// Second line: priority + assignee or blocker reason.
	detail := "    " + priorityStyle(t.Priority).Render(t.Priority.String())
	if t.Assignee != "" {
		detail += subtleStyle.Render(" " + t.Assignee)
	}
	if t.Status.State == task.StateBlocked && t.Status.Reason != "" {
		detail = "    " + lipgloss.NewStyle().Foreground(clrRed).Render("⚠ "+truncate(t.Status.Reason, width-8))
	}

	return line + "\n" + detail
}

func columnColor(idx int) lipgloss.AdaptiveColor {
	switch idx {
	case colInProgress:
		return clrBlue
	case colBlocked:
		return clrRed
	case colDone:
		return clrGreen
	default:
		return clrSubtle
	}
}

func priorityStyle(p task.Priority) lipgloss.Style {
	switch p {
	case task.PriorityCritical:
		return lipgloss.NewStyle().Bold(true).Foreground(clrRed)
	case task.PriorityHigh:
		return lipgloss.NewStyle().Foreground(clrRed)
	case task.PriorityMedium:
		return lipgloss.NewStyle().Foreground(clrYellow)
	default:
		return dimStyle
	}
}

func (m Model) boardFooter() string {
	keys := []struct{ key, desc string }{
		{"↑↓←→", "navigate"},
		{"enter", "detail"},
		{"n", "new"},
		{"s", "start"},
		{"c", "complete"},
		{"b", "block"},
		{"a", "answer"},
		{"R", "refresh"},
		{"q", "quit"},
	}
	return renderFooter(keys)
}

// --- Detail screen ---

func (m Model) viewDetail() string {
	if m.detailTask == nil {
		return "No task selected"
	}

	var b strings.Builder
	t := m.detailTask

	b.WriteString(titleStyle.Render(fmt.Sprintf("#%d %s", t.ID, t.Title)))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("esc back"))
	b.WriteString("\n\n")

	b.WriteString("  " + subtleStyle.Render("type:     ") + string(t.Type) + "\n")
	b.WriteString("  " + subtleStyle.Render("priority: ") + priorityStyle(t.Priority).Render(t.Priority.String()) + "\n")
	b.WriteString("  " + subtleStyle.Render("status:   ") + t.Status.State.Label() + "\n")

	switch t.Status.State {
	case task.StateInProgress:
		b.WriteString("  " + subtleStyle.Render("started:  ") + "by " + t.Status.StartedBy + "\n")
	case task.StateBlocked:
		b.WriteString("  " + lipgloss.NewStyle().Foreground(clrRed).Render("⚠ "+t.Status.Reason) + "\n")
	case task.StateCompleted:
		b.WriteString("  " + subtleStyle.Render("done:     ") +
			fmt.Sprintf("by %s in %gh", t.Status.CompletedBy, t.Status.HoursSpent) + "\n")
	}

	if t.Assignee != "" {
		b.WriteString("  " + subtleStyle.Render("assignee: ") + t.Assignee + "\n")
	}
	if t.EstimatedHours != nil {
		b.WriteString("  " + subtleStyle.Render("estimate: ") + fmt.Sprintf("%gh", *t.EstimatedHours) + "\n")
	}

	if len(m.detailEvents) > 0 {
		b.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("  Log:") + "\n")
		start := 0
		if len(m.detailEvents) > 8 {
			start = len(m.detailEvents) - 8
		}
		for _, ev := range m.detailEvents[start:] {
			ts := dimStyle.Render(ev.Timestamp.Local().Format("15:04"))
			actor := ""
			if ev.Actor != "" {
				actor = lipgloss.NewStyle().Foreground(clrCyan).Render(ev.Actor) + " "
			}
			b.WriteString(fmt.Sprintf("    %s %s%s\n", ts, actor, truncate(ev.Content, 60)))
		}
	}

	b.WriteString("\n")
	keys := []struct{ key, desc string }{
		{"esc", "back"},
		{"q", "board"},
	}
	b.WriteString(renderFooter(keys))

	return b.String()
}

// --- Popups ---

func (m Model) overlayPopup(bg string) string {
	var popup string

	switch m.currentPopup {
	case popupCreate:
		popup = m.viewInputPopup("New Task", "Title:", m.titleInput.View(), clrHighlight)
	case popupComplete:
		popup = m.viewInputPopup("Complete Task", "Hours spent:", m.fieldInput.View(), clrGreen)
	case popupBlock:
		popup = m.viewInputPopup("Block Task", "Reason:", m.fieldInput.View(), clrRed)
	case popupAnswer:
		popup = m.viewAnswerPopup()
	default:
		return bg
	}

	// Place popup in center of screen.
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			popup,
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	return popup
}

func (m Model) viewInputPopup(title, label, input string, color lipgloss.AdaptiveColor) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(color).Render(title) + "\n\n")
	b.WriteString(label + "\n")
	b.WriteString(input + "\n\n")
	b.WriteString(footerDescStyle.Render("enter submit • esc cancel"))

	return popupStyle.Render(b.String())
}

func (m Model) viewAnswerPopup() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(clrYellow).Render("Resolve Blocker") + "\n\n")

	// Show the blocker being resolved.
	t, _, err := m.store.GetTask(m.popupTaskID)
	if err == nil && t.Status.State == task.StateBlocked {
		q := lipgloss.NewStyle().Foreground(clrRed).Render(t.Status.Reason)
		b.WriteString(fmt.Sprintf("#%d is blocked:\n%s\n\n", t.ID, q))
	}

	b.WriteString("Resolution note:\n")
	b.WriteString(m.fieldInput.View() + "\n\n")
	b.WriteString(footerDescStyle.Render("enter resolve • esc cancel"))

	return popupStyle.Render(b.String())
}

// --- Shared helpers ---

func renderFooter(keys []struct{ key, desc string }) string {
	var parts []string
	for _, k := range keys {
		parts = append(parts, footerKeyStyle.Render(k.key)+" "+footerDescStyle.Render(k.desc))
	}
	return "  " + strings.Join(parts, "  ")
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
