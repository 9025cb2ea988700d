package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"tracker/internal/config"
	"tracker/internal/store"
)

const trackerDirName = ".tracker"

// trackerPath returns the path to a file inside .tracker/.
func trackerPath(parts ...string) string {
	elems := append([]string{trackerDirName}, parts...)
	return filepath.Join(elems...)
}

// mustStore opens the store, returning an error if tracker is not initialized.
func mustStore() (*store.Store, error) {
	dbPath := trackerPath("tracker.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("tracker not initialized. Run: tracker init")
	}
	return openStore(dbPath)
}

// openStore opens or creates the SQLite store at the given path.
func openStore(dbPath string) (*store.Store, error) {
	return store.New(dbPath)
}

// loadConfig reads .tracker/config.yaml, falling back to defaults when the
// file is missing or broken so read-only commands keep working.
func loadConfig() *config.Config {
	cfg, err := config.Load(trackerPath("config.yaml"))
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// resolveProject picks the project name: the --project flag wins, then the
// configured default, then "inbox".
func resolveProject(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	cfg := loadConfig()
	if cfg.Defaults.Project != "" {
		return cfg.Defaults.Project
	}
	return "inbox"
}

// resolveDeveloper picks the acting developer for start/complete: the --by
// flag wins, then the configured default. Empty means the caller must error.
func resolveDeveloper(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return loadConfig().Defaults.Developer
}

// parseTaskID parses a task ID argument.
func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task ID: %s", arg)
	}
	return id, nil
}
