package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tiempo/internal/app"
	"tiempo/internal/config"
)

func main() {
	// Optional .env next to the working directory; used mainly to carry
	// NOTION_TOKEN without putting it in the config file.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer
// app.Close(). operation identifies the CLI command being run
// (e.g. "StartSession", "ExportPDF").
func newApp(operation string) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// loadConfig reads the config file, falling back to defaults when no
// config has been initialized yet (the common case for a desktop app).
func loadConfig() (*config.Config, error) {
	defaults := app.GetDefaults()

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config.NewConfig(defaults["base_dir"]), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// parseTimeArg parses an RFC3339 command-line timestamp.
func parseTimeArg(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (want RFC3339, e.g. 2024-01-15T10:30:00Z)", value)
	}
	return t, nil
}

// optionalFlag returns a pointer to the flag value when the flag was set,
// nil otherwise, so absent stays distinguishable from empty.
func optionalFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetString(name)
	return &value
}

func optionalFloatFlag(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetFloat64(name)
	return &value
}

func deref(p *string) string {
	if p == nil {
		return "-"
	}
	return *p
}

var rootCmd = &cobra.Command{
	Use:   "tiempo",
	Short: "Desktop time tracker",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults := app.GetDefaults()

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Data Dir: %s\n", cfg.DataDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults := app.GetDefaults()

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Data Dir:       %s\n", cfg.DataDir)
		fmt.Printf("Log Dir:        %s\n", cfg.LogDir)
		fmt.Printf("Database:       %s\n", cfg.DatabasePath())
		fmt.Printf("Lock Poll:      %ds\n", cfg.Lock.PollSeconds)
		if cfg.Notion.DatabaseID != "" {
			fmt.Printf("Notion DB:      %s\n", cfg.Notion.DatabaseID)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}
