package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/deep-field/internal/platform/tui"
	"github.com/vovakirdan/deep-field/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Observe the sky interactively",
	Long: `Start an observation session in the terminal.

Every tick you observe one object your telescopes can resolve. Discoveries
are written to the logbook.

Controls:
  P/Space    - Pause
  N          - Tick now
  Click      - Point at the sky
  Ctrl+S     - Save a screenshot of the sky
  ?          - More keys
  Q/Ctrl+C   - Quit

Examples:
  deepfield play
  deepfield play --interval 250ms
  deepfield play --telescope keck --seed 7`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg := loadSettings(cmd)
	catalog := loadCatalog(cfg)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open logbook: %v\n", err)
		// Continue without storage - the session still works
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Session:  sessionConfig(cfg, catalog),
		Interval: cfg.TickInterval,
		Sky:      skyOptions(cfg),
		Store:    store,
		Width:    width,
		Height:   height,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fail("%v", runErr)
	}
}
