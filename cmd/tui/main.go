package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bdo-activity/backend/internal/assembly"
	"github.com/bdo-activity/backend/internal/config"
	"github.com/bdo-activity/backend/internal/display"
	"github.com/bdo-activity/backend/internal/logging"
	"github.com/bdo-activity/backend/internal/models"
	"github.com/bdo-activity/backend/internal/navigation"
	"github.com/bdo-activity/backend/internal/tui"
	"github.com/bdo-activity/backend/internal/wizard"
)

func main() {
	var (
		configPath string
		logFile    string
	)

	root := &cobra.Command{
		Use:           "bdo",
		Short:         "Boletim Diário de Operações in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configPath, logFile)
		},
	}
	root.Flags().StringVarP(&configPath, "config", "c", "bdo.yaml", "path to bdo.yaml")
	root.Flags().StringVar(&logFile, "log-file", "", "append logs to this file (default: discard)")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bdo: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logFile string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// The terminal belongs to the program; logs go to a file or nowhere.
	logger := zerolog.Nop()
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		if err := logging.Setup(cfg.Logging.Level, false, f); err != nil {
			return err
		}
		logger = logging.Component("tui")
	}

	clock, err := display.NewClock(cfg.Display.Locale, cfg.Display.Timezone)
	if err != nil {
		return err
	}

	stack := navigation.NewStack(navigation.ScreenHome, navigation.HomeParams{Ledger: models.NewLedger()})
	w := wizard.New(stack, assembly.New(clock), wizard.WithRecentCount(cfg.Display.RecentCount))

	m := tui.New(w, stack, clock, tui.WithLogger(logger))
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
