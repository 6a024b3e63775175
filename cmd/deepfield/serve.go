package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/deep-field/internal/astro"
	"github.com/vovakirdan/deep-field/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagWatch       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Deep Field SSH server",
	Long: `Start an SSH server that lets users connect and observe.

Each SSH connection gets its own independent session. All sessions write
to the same logbook.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.deepfield/host_key

Examples:
  deepfield serve                           # Listen on :23235 with auto-generated key
  deepfield serve --ssh :2222               # Listen on port 2222
  deepfield serve --host-key ./my_host_key  # Use specific host key
  deepfield serve --db ./logbook.db         # Use specific database
  deepfield serve --catalog sky.toml --watch  # Pick up catalog edits

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the catalog file for new sessions when it changes")
}

func runServe(cmd *cobra.Command, _ []string) {
	settings := loadSettings(cmd)
	catalog := loadCatalog(settings)

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      settings.DBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game: tui.Options{
			Session:  sessionConfig(settings, catalog),
			Interval: settings.TickInterval,
			Sky:      skyOptions(settings),
		},
	}

	logger := newLogger("deepfield-ssh")

	if flagWatch {
		if settings.CatalogPath == "" {
			fail("--watch needs a catalog file (--catalog or catalog_path)")
		}
		// Every new session starts from the configured telescope
		requireStart := func(c *astro.Catalog) error {
			_, err := c.Telescope(settings.StartTelescope)
			return err
		}
		watcher, err := astro.NewWatcher(settings.CatalogPath, logger, requireStart)
		if err != nil {
			fail("%v", err)
		}
		if err := watcher.Start(); err != nil {
			fail("%v", err)
		}
		defer watcher.Stop()
		cfg.Catalogs = watcher
	}

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting Deep Field SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		fail("server: %v", err)
	}
}
