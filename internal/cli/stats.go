package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"tracker/internal/project"
	"tracker/internal/task"
)

var statsProject string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show project statistics and analytics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsProject, "project", "", "Project name (default from config)")
}

func runStats(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.LoadProject(resolveProject(statsProject))
	if err != nil {
		return err
	}

	fmt.Printf("%s\n\n", p.Summary())
	for _, t := range p.Tasks {
		fmt.Printf("  %s\n", task.OneLine(t))
	}

	if total := p.TotalEstimate(); total != nil {
		fmt.Printf("\nTotal estimated: %.1f hours\n", *total)
	}
	if avg := p.AverageEstimate(); avg != nil {
		fmt.Printf("Average per task: %.1f hours\n", *avg)
	}

	workload := project.WorkloadByAssignee(p.Tasks)
	if len(workload) > 0 {
		fmt.Println("\nWorkload by developer:")
		devs := make([]string, 0, len(workload))
		for dev := range workload {
			devs = append(devs, dev)
		}
		sort.Strings(devs)
		for _, dev := range devs {
			fmt.Printf("  %s: %.1fh\n", dev, workload[dev])
		}
	}

	fmt.Println("\nBy priority:")
	grouped := project.ByPriority(p.Tasks)
	for _, pri := range []task.Priority{task.PriorityCritical, task.PriorityHigh, task.PriorityMedium, task.PriorityLow} {
		if group := grouped[pri]; len(group) > 0 {
			fmt.Printf("  %s%s%s: %d\n", priorityColor(pri), pri, colorReset, len(group))
		}
	}

	fmt.Println("\nBy status:")
	counts := project.CountByStatus(p.Tasks)
	for _, state := range task.States() {
		if n := counts[state.Label()]; n > 0 {
			fmt.Printf("  %s: %d\n", state.Label(), n)
		}
	}

	fmt.Printf("\nUnassigned tasks: %d\n", len(project.Unassigned(p.Tasks)))
	return nil
}
