package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log [task-id]",
	Short: "Show event log for a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	events, err := s.GetEvents(id)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Printf("No events for task #%d\n", id)
		return nil
	}

	fmt.Printf("Events for task #%d:\n\n", id)
	for _, e := range events {
		actor := ""
		if e.Actor != "" {
			actor = fmt.Sprintf("[%s] ", e.Actor)
		}
		fmt.Printf("  %s  %s%-16s %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), actor, e.Type, e.Content)
	}
	return nil
}
