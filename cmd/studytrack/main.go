package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"studytrack/internal/config"
	"studytrack/internal/storage"
	"studytrack/internal/tracker"
	"studytrack/internal/update"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "studytrack",
	Short: "Daily study task tracker with notes and progress charts",
	Long: `A terminal tracker for daily study tasks: subtasks, rich notes,
a calendar browser and completion charts. State persists between runs.

Run without arguments to open the interactive UI.

  studytrack
  studytrack export --out notes.csv
  studytrack export --email
  studytrack report --date 2024-01-10`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, store, closeStore, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		program := tea.NewProgram(update.NewModel(store, cfg.Keys))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("studytrack failed: %w", err)
		}
		return nil
	},
}

func openStore() (config.Config, *tracker.Store, func(), error) {
	path := flagConfig
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("load config: %w", err)
	}

	var kv storage.KV
	switch cfg.Storage {
	case config.StorageSQLite:
		kv, err = storage.OpenSQLite(filepath.Join(cfg.DataDir, "studytrack.db"))
	default:
		kv, err = storage.OpenFile(cfg.DataDir)
	}
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("open storage: %w", err)
	}

	store, err := tracker.Open(kv)
	if err != nil {
		_ = kv.Close()
		return cfg, nil, nil, err
	}
	return cfg, store, func() { _ = kv.Close() }, nil
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to config file")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(reportCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "studytrack: %v\n", err)
		os.Exit(1)
	}
}
