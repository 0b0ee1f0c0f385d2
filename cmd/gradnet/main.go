package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gradnet/cmd/gradnet/app"
	"gradnet/cmd/gradnet/ui"
	"gradnet/internal/assistant"
	"gradnet/internal/config"
	"gradnet/internal/logging"
	"gradnet/internal/store"
)

const version = "1.0.0"

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger for non-interactive subcommands
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "gradnet",
	Short: "gradnet - alumni network terminal client",
	Long: `gradnet is a terminal client for the university alumni network:
browse the alumni directory, RSVP to events, apply to postings on the
career board, and chat with the network assistant.

Run without arguments to start the interactive interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for interactive mode (it has its own UI)
		if cmd.Use == "gradnet" && cmd.CalledAs() == "gradnet" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// seedCmd inspects the embedded seed datasets
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Validate and summarize the embedded seed datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Load()
		if err != nil {
			return err
		}
		logger.Info("seed loaded",
			zap.Int("people", len(db.People)),
			zap.Int("events", len(db.Events)),
			zap.Int("jobs", len(db.Jobs)))

		if err := db.Validate(); err != nil {
			return fmt.Errorf("seed validation failed: %w", err)
		}
		fmt.Printf("seed ok: %d people, %d events, %d job postings\n",
			len(db.People), len(db.Events), len(db.Jobs))
		return nil
	},
}

// versionCmd prints the version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gradnet version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gradnet %s\n", version)
	},
}

func runTUI() error {
	if err := logging.Initialize(config.DefaultConfigDir()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging unavailable: %v\n", err)
	}
	defer logging.CloseAll()

	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load seed data: %w", err)
	}

	client := assistant.NewClientWithConfig(assistant.Config{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: clientBaseURL(cfg),
		Model:   cfg.GetModel(),
	})

	// Hot-reload logging settings while the TUI runs.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := config.Watch(ctx, path, nil); err != nil {
		logging.Boot("config watch unavailable: %v", err)
	}

	styles := ui.NewStyles(ui.ThemeByName(cfg.GetTheme()))
	model := app.New(db, client, styles)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func clientBaseURL(cfg *config.UserConfig) string {
	if cfg.BaseURL != "" {
		return cfg.BaseURL
	}
	return assistant.DefaultConfig("").BaseURL
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default ~/.gradnet/config.json)")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
