package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tracker/internal/tui"
)

var uiProject string

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive board",
	Long:  "Opens an interactive kanban board with task creation, lifecycle transitions and blocker resolution.",
	RunE:  runUI,
}

func init() {
	uiCmd.Flags().StringVar(&uiProject, "project", "", "Project name (default from config)")
}

func runUI(cmd *cobra.Command, args []string) error {
	s, err := mustStore()
	if err != nil {
		return err
	}

	cfg := loadConfig()
	model := tui.New(s, cfg, resolveProject(uiProject))
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		s.Close()
		return fmt.Errorf("TUI error: %w", err)
	}

	s.Close()
	return nil
}
