package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/aaronfang/todo-app/internal/config"
	"github.com/aaronfang/todo-app/internal/engine"
	"github.com/aaronfang/todo-app/internal/logger"
	"github.com/aaronfang/todo-app/internal/store"
	"github.com/aaronfang/todo-app/internal/tui"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
)

var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "A sectioned todo list with subtasks",
	Long: `A personal task manager: one flat ordered list of tasks,
subtasks and section separators, with completed tasks folded into a
collapsible block per section.

Run 'todo' without arguments to launch the interactive TUI.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
		}

		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
		}

		logConfig := logger.DefaultConfig()
		logConfig.Level = logger.ParseLevel(cfg.LogLevel)
		logConfig.FilePath = cfg.LogFile
		logConfig.Console = cfg.LogConsole

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Info("todo started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		eng, cfg, closeStore, err := openEngine()
		if err != nil {
			logger.Error("Failed to open store", logger.F("error", err))
			return err
		}
		defer closeStore()

		logger.Info("Launching TUI")
		m := tui.NewModel(eng, cfg)
		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		// Collapse state for sections that no longer have a completed
		// block is dropped on the way out, like the original app.
		eng.PruneCollapsed()
		cfg.CollapsedSections = eng.CollapsedSections()
		if err := cfg.Save(); err != nil {
			logger.Warn("Failed to save config", logger.F("error", err))
		}
		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

// openEngine loads the config, opens the configured storage backend,
// and builds the command engine over it. The returned closer is always
// safe to call.
func openEngine() (*engine.Engine, *config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("Failed to load config, using defaults", logger.F("error", err))
		cfg = config.DefaultConfig()
	}

	var adapter store.Adapter
	closer := func() {}

	if cfg.Storage == config.StorageSQLite {
		path, err := store.DefaultDBPath()
		if err != nil {
			return nil, nil, nil, err
		}
		db, err := store.OpenSQLite(path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		adapter = db
		closer = func() { _ = db.Close() }
	} else {
		path, err := store.DefaultTaskFile()
		if err != nil {
			return nil, nil, nil, err
		}
		adapter = &store.JSONFile{Path: path}
	}

	st, err := store.Open(adapter)
	if err != nil {
		closer()
		return nil, nil, nil, err
	}

	return engine.New(st, cfg.CollapsedSections), cfg, closer, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(urgentCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(subtaskCmd)
	rootCmd.AddCommand(deadlineCmd)
	rootCmd.AddCommand(colorCmd)
	rootCmd.AddCommand(sepCmd)
}
