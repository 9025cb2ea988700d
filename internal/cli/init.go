package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tracker/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize tracker in the current directory",
	Long:  "Creates a .tracker/ directory with default config and database.",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	// Check if already initialized.
	if _, err := os.Stat(trackerDirName); err == nil {
		return fmt.Errorf("tracker already initialized in this directory (.tracker/ exists)")
	}

	if err := os.MkdirAll(trackerDirName, 0755); err != nil {
		return fmt.Errorf("create .tracker: %w", err)
	}

	// Write default config.
	cfgPath := filepath.Join(trackerDirName, "config.yaml")
	cfg := config.DefaultConfig()
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	// Create database by opening the store (migration runs automatically),
	// and seed the default project so task create works out of the box.
	dbPath := filepath.Join(trackerDirName, "tracker.db")
	s, err := openStore(dbPath)
	if err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	if _, err := s.CreateProject(cfg.Defaults.Project); err != nil {
		s.Close()
		return fmt.Errorf("create default project: %w", err)
	}
	s.Close()

	fmt.Println("Initialized tracker in .tracker/")
	fmt.Println("")
	fmt.Println("Next steps:")
	fmt.Println("  1. Edit .tracker/config.yaml to set your name as the default developer")
	fmt.Println("  2. Run: tracker task create \"your first task\"")
	fmt.Println("  3. Run: tracker board")

	return nil
}
