package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/midbel/chartgeo/internal/logging"
	"github.com/spf13/cobra"
)

type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer
}

func New() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	app.root = &cobra.Command{
		Use:   "draw",
		Short: "Compute and render chart geometry",
		Long: `draw reads yaml chart descriptions, computes their geometry (axes, ticks,
paths and sectors) and renders them as svg.

Size, sync id, palette and data file of a description can be overridden with
CHARTGEO_WIDTH, CHARTGEO_HEIGHT, CHARTGEO_SYNC_ID, CHARTGEO_PALETTE and
CHARTGEO_DATA. Logging is set with CHARTGEO_LOG_LEVEL and CHARTGEO_LOG_FORMAT.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setupLogging()
		},
	}
	app.root.AddCommand(
		app.newRenderCmd(),
		app.newInspectCmd(),
		app.newSyncCmd(),
	)
	return app
}

func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

func (a *App) setupLogging() error {
	var cfg logging.Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return fmt.Errorf("reading logging settings: %w", err)
	}
	cfg.Output = a.stderr
	logging.Init(cfg)
	return nil
}

func main() {
	if err := New().Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
