package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tracker/internal/task"
)

// ANSI color codes.
const (
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorDim     = "\033[2m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
	colorWhite   = "\033[37m"
)

var boardProject string

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the kanban board",
	RunE:  runBoard,
}

func init() {
	boardCmd.Flags().StringVar(&boardProject, "project", "", "Project name (default from config)")
}

func runBoard(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.LoadProject(resolveProject(boardProject))
	if err != nil {
		return err
	}

	if len(p.Tasks) == 0 {
		fmt.Printf("%sBoard is empty.%s Create a task: %stracker task create \"description\"%s\n",
			colorDim, colorReset, colorCyan, colorReset)
		return nil
	}

	// Group tasks by state.
	columns := map[task.State][]task.Task{}
	for _, t := range p.Tasks {
		columns[t.Status.State] = append(columns[t.Status.State], t)
	}

	type col struct {
		state task.State
		label string
		color string
	}
	order := []col{
		{task.StateTodo, "TODO", colorWhite},
		{task.StateInProgress, "IN PROGRESS", colorBlue},
		{task.StateBlocked, "BLOCKED", colorRed},
		{task.StateCompleted, "DONE", colorGreen},
	}

	// Print header.
	colWidth := loadConfig().ColumnWidth()
	headerLine := ""
	sepLine := ""
	for _, c := range order {
		count := len(columns[c.state])
		header := fmt.Sprintf(" %s%s%s (%d)", c.color+colorBold, c.label, colorReset, count)
		// padRight needs visible length, not byte length (ANSI codes add bytes).
		visibleLen := len(fmt.Sprintf(" %s (%d)", c.label, count))
		padding := colWidth - visibleLen
		if padding < 0 {
			padding = 0
		}
		headerLine += header + strings.Repeat(" ", padding)
		sepLine += strings.Repeat("─", colWidth)
	}
	fmt.Println(headerLine)
	fmt.Println(colorDim + sepLine + colorReset)

	// Find max rows.
	maxRows := 0
	for _, c := range order {
		if len(columns[c.state]) > maxRows {
			maxRows = len(columns[c.state])
		}
	}

	// Print rows.
	for i := 0; i < maxRows; i++ {
		// Task title line.
		line := ""
		for _, c := range order {
			tasks := columns[c.state]
			if i < len(tasks) {
				t := tasks[i]
				priColor := priorityColor(t.Priority)
				idStr := fmt.Sprintf("#%d", t.ID)
				titleStr := truncate(t.Title, colWidth-len(idStr)-3)
				card := fmt.Sprintf(" %s%s%s %s", priColor, idStr, colorReset, titleStr)
				visibleLen := len(fmt.Sprintf(" %s %s", idStr, titleStr))
				padding := colWidth - visibleLen
				if padding < 0 {
					padding = 0
				}
				line += card + strings.Repeat(" ", padding)
			} else {
				line += strings.Repeat(" ", colWidth)
			}
		}
		fmt.Println(line)

		// Assignee/details line.
		detailLine := ""
		for _, c := range order {
			tasks := columns[c.state]
			if i < len(tasks) {
				t := tasks[i]
				detail := ""
				visibleDetail := ""
				if t.Assignee != "" {
					detail = fmt.Sprintf("    %s[%s]%s", colorCyan, t.Assignee, colorReset)
					visibleDetail = fmt.Sprintf("    [%s]", t.Assignee)
				}
				if t.Status.State == task.StateBlocked && t.Status.Reason != "" {
					reason := truncate(t.Status.Reason, colWidth-7)
					detail = fmt.Sprintf("    %s⚠ %s%s", colorRed, reason, colorReset)
					visibleDetail = fmt.Sprintf("      %s", reason) // ⚠ renders one column wide
				}
				padding := colWidth - len(visibleDetail)
				if padding < 0 {
					padding = 0
				}
				detailLine += detail + strings.Repeat(" ", padding)
			} else {
				detailLine += strings.Repeat(" ", colWidth)
			}
		}
		fmt.Println(detailLine)
		fmt.Println() // spacing between cards
	}

	// Show blocked tasks summary.
	blocked := columns[task.StateBlocked]
	if len(blocked) > 0 {
		fmt.Printf("%s%s⚠  Blockers%s\n", colorBold, colorRed, colorReset)
		for _, t := range blocked {
			fmt.Printf("  %s#%d%s: %s\n", colorYellow, t.ID, colorReset, t.Status.Reason)
			fmt.Printf("       → %stracker task answer %d%s\n", colorCyan, t.ID, colorReset)
		}
		fmt.Println()
	}

	// Summary line.
	total := len(p.Tasks)
	doneCount := len(columns[task.StateCompleted])
	inProgress := len(columns[task.StateInProgress])

	fmt.Printf("%s%d tasks%s  %s%.1f%% complete%s", colorBold, total, colorReset,
		colorGreen, p.CompletionPercentage(), colorReset)
	if doneCount > 0 {
		fmt.Printf("  %s✓ %d done%s", colorGreen, doneCount, colorReset)
	}
	if inProgress > 0 {
		fmt.Printf("  %s● %d in progress%s", colorBlue, inProgress, colorReset)
	}
	if len(blocked) > 0 {
		fmt.Printf("  %s⚠ %d blocked%s", colorRed, len(blocked), colorReset)
	}
	fmt.Println()

	return nil
}

func priorityColor(p task.Priority) string {
	switch p {
	case task.PriorityCritical:
		return colorRed + colorBold
	case task.PriorityHigh:
		return colorRed
	case task.PriorityMedium:
		return colorYellow
	case task.PriorityLow:
		return colorDim
	default:
		return ""
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
