package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tracker/internal/project"
	"tracker/internal/task"
)

var statusProject string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Quick status overview",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusProject, "project", "", "Project name (default from config)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.LoadProject(resolveProject(statusProject))
	if err != nil {
		return err
	}

	if len(p.Tasks) == 0 {
		fmt.Printf("No tasks. Run: %stracker task create \"description\"%s\n", colorCyan, colorReset)
		return nil
	}

	counts := project.CountByStatus(p.Tasks)
	var blocked []task.Task
	for _, t := range p.Tasks {
		if t.Status.State == task.StateBlocked {
			blocked = append(blocked, t)
		}
	}

	fmt.Printf("%s%s — %d tasks, %.1f%% complete%s\n",
		colorBold, p.Name, len(p.Tasks), p.CompletionPercentage(), colorReset)
	fmt.Printf("  %-14s %s%d%s\n", "todo:", colorWhite, counts[task.StateTodo.Label()], colorReset)
	fmt.Printf("  %-14s %s%d%s\n", "in progress:", colorBlue, counts[task.StateInProgress.Label()], colorReset)
	fmt.Printf("  %-14s %s%d%s\n", "blocked:", colorRed, counts[task.StateBlocked.Label()], colorReset)
	fmt.Printf("  %-14s %s%d%s\n", "completed:", colorGreen, counts[task.StateCompleted.Label()], colorReset)

	if len(blocked) > 0 {
		fmt.Printf("\n%s⚠  Blockers:%s\n", colorRed+colorBold, colorReset)
		for _, t := range blocked {
			fmt.Printf("  %s#%d%s: %s\n", colorYellow, t.ID, colorReset, t.Status.Reason)
		}
	}

	return nil
}
