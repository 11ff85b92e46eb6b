package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bdo-activity/backend/internal/api"
	"github.com/bdo-activity/backend/internal/assembly"
	"github.com/bdo-activity/backend/internal/config"
	"github.com/bdo-activity/backend/internal/display"
	"github.com/bdo-activity/backend/internal/export"
	"github.com/bdo-activity/backend/internal/logging"
	"github.com/bdo-activity/backend/internal/metrics"
	"github.com/bdo-activity/backend/internal/session"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var configPath string

	root := &cobra.Command{
		Use:           "bdo-server",
		Short:         "BDO field-activity wizard over HTTP",
		Version:       fmt.Sprintf("%s (built %s)", Version, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				p, err := defaultConfigPath()
				if err != nil {
					return err
				}
				configPath = p
			}
			return run(cmd.Context(), configPath)
		},
	}
	root.Flags().StringVarP(&configPath, "config", "c", "", "path to bdo.yaml (default: next to the executable)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "bdo-server: %v\n", err)
		os.Exit(1)
	}
}

// defaultConfigPath resolves bdo.yaml in the executable's directory.
func defaultConfigPath() (string, error) {
	exePath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(exePath), "bdo.yaml"), nil
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if err := logging.Setup(cfg.Logging.Level, cfg.Logging.Pretty, os.Stderr); err != nil {
		return err
	}
	api.ShowErrorDetails = zerolog.GlobalLevel() <= zerolog.DebugLevel

	clock, err := display.NewClock(cfg.Display.Locale, cfg.Display.Timezone)
	if err != nil {
		return err
	}

	collector := metrics.New(nil)
	sessions := session.NewManager(session.Config{
		MaxSessions:     cfg.Session.MaxSessions,
		IdleTimeout:     cfg.Session.IdleTimeout(),
		CleanupInterval: cfg.Session.CleanupInterval(),
		RecentCount:     cfg.Display.RecentCount,
	}, assembly.New(clock),
		session.WithObserver(collector),
		session.WithLogger(logging.Component("session")),
	)

	janitorCtx, cancelJanitor := context.WithCancel(ctx)
	defer cancelJanitor()
	go sessions.Run(janitorCtx)

	handlers, err := api.NewHandlers(&api.Dependencies{
		Sessions: sessions,
		Exporter: export.New(clock),
		Metrics:  collector.Handler(),
		Logger:   logging.Component("api"),
		Version:  Version,
	})
	if err != nil {
		return fmt.Errorf("build handlers: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	api.SetupMiddleware(e, cfg.Server, cfg.Logging, logging.Component("http"))
	api.RegisterRoutes(e, handlers, api.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst))

	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
		IdleTimeout:  cfg.Server.IdleTimeoutDuration(),
	}

	printBanner(configPath, cfg, clock)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.StartServer(s)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func printBanner(configPath string, cfg *config.AppConfig, clock *display.Clock) {
	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           Boletim Diário de Operações                     ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("║  Locale:     %-45s║\n", clock.Locale())
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")
}
