// Package config loads and saves the tracker project configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tracker/internal/task"
)

// Config is the root configuration for a tracker project directory.
type Config struct {
	Version  int      `yaml:"version"`
	Defaults Defaults `yaml:"defaults"`
	Board    Board    `yaml:"board,omitempty"`
}

// Defaults fill in values the user left off the command line.
type Defaults struct {
	Developer string `yaml:"developer,omitempty"` // used when --by is omitted
	Priority  string `yaml:"priority,omitempty"`  // for task create
	Project   string `yaml:"project,omitempty"`   // used when --project is omitted
}

// Board holds rendering options for the kanban board.
type Board struct {
	ColumnWidth int `yaml:"column_width,omitempty"` // 0 = default width
}

// Load reads and parses the config file at the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to the given path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns a starter config.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Defaults: Defaults{
			Priority: "medium",
			Project:  "inbox",
		},
		Board: Board{ColumnWidth: 24},
	}
}

func (c *Config) validate() error {
	if c.Defaults.Priority != "" {
		if _, err := task.ParsePriority(c.Defaults.Priority); err != nil {
			return fmt.Errorf("defaults.priority: %w", err)
		}
	}
	if c.Board.ColumnWidth < 0 {
		return fmt.Errorf("board.column_width must be positive, got %d", c.Board.ColumnWidth)
	}
	if c.Board.ColumnWidth > 0 && c.Board.ColumnWidth < 12 {
		return fmt.Errorf("board.column_width must be at least 12, got %d", c.Board.ColumnWidth)
	}
	return nil
}

// DefaultPriority resolves the configured default priority, falling back
// to medium when unset.
func (c *Config) DefaultPriority() task.Priority {
	if c.Defaults.Priority == "" {
		return task.PriorityMedium
	}
	p, err := task.ParsePriority(c.Defaults.Priority)
	if err != nil {
		return task.PriorityMedium
	}
	return p
}

// ColumnWidth returns the configured board column width or the default.
func (c *Config) ColumnWidth() int {
	if c.Board.ColumnWidth > 0 {
		return c.Board.ColumnWidth
	}
	return 24
}
