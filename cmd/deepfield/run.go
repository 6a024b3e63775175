package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/deep-field/internal/loop"
	"github.com/vovakirdan/deep-field/internal/storage"
)

var (
	flagTicks     uint64
	flagNoLogbook bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a session headless",
	Long: `Run an observation session without the UI. Each discovery is logged
to stderr and written to the logbook.

The session runs until Ctrl+C, or for --ticks ticks.

Examples:
  deepfield run
  deepfield run --ticks 20 --interval 100ms --seed 42
  DEEPFIELD_UPGRADE_EVERY=5 deepfield run`,
	Args: cobra.NoArgs,
	Run:  runHeadless,
}

func init() {
	runCmd.Flags().Uint64Var(&flagTicks, "ticks", 0, "Stop after this many ticks (0 = run until interrupted)")
	runCmd.Flags().BoolVar(&flagNoLogbook, "no-logbook", false, "Do not write discoveries to the logbook")
}

func runHeadless(cmd *cobra.Command, _ []string) {
	cfg := loadSettings(cmd)
	catalog := loadCatalog(cfg)
	logger := newLogger("deepfield")

	reporters := []loop.Reporter{loop.LogReporter{Logger: logger}}

	var store *storage.Store
	if !flagNoLogbook {
		var err error
		store, err = storage.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("could not open logbook", "error", err)
		} else {
			sessionID := fmt.Sprintf("run-%d", time.Now().UnixNano())
			reporters = append(reporters, storage.NewReporter(store, sessionID, logger))
			logger.Debug("logging to logbook", "path", cfg.DBPath, "session", sessionID)
		}
	}

	l, err := loop.NewSession(sessionConfig(cfg, catalog), loop.Options{
		Interval:  cfg.TickInterval,
		Logger:    logger,
		Reporters: reporters,
	})
	if err != nil {
		fail("%v", err)
	}

	if flagTicks > 0 {
		l.AddReporter(loop.ReporterFunc(func(r loop.TickReport) {
			if r.Generation >= flagTicks {
				l.Stop()
			}
		}))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("session started", "telescope", cfg.StartTelescope, "interval", l.Interval())
	runErr := l.Run(ctx)

	snap := l.Snapshot()
	logger.Info("session ended",
		"ticks", l.Generation(),
		"observed", len(snap.Observed),
		"observable", len(snap.Observable),
		"unobservable", len(snap.Unobservable),
		"power", snap.MaxPower,
	)

	if store != nil {
		store.Close()
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		fail("%v", runErr)
	}
}
