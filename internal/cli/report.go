package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tracker/internal/report"
)

var reportProject string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a markdown project report",
	Long:  "Builds a markdown report with the task list, estimates, analytics and recent activity.",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportProject, "project", "", "Project name (default from config)")
}

func runReport(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	out, err := report.New(s).Build(resolveProject(reportProject))
	if err != nil {
		return err
	}

	fmt.Print(out)
	return nil
}
