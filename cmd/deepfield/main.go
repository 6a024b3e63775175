// deepfield is a small stargazing game for the terminal: start with the
// naked eye, acquire telescopes and log what you discover.
//
// Usage:
//
//	deepfield play           - Observe the sky in the terminal
//	deepfield run            - Run a session headless, logging discoveries
//	deepfield catalog        - List objects and telescopes
//	deepfield logbook        - Show logged discoveries
//	deepfield serve          - Start SSH server for remote observing
//
// Global flags:
//
//	--config <path>     - Custom config YAML
//	--seed <value>      - RNG seed for reproducible sessions
//	--interval <dur>    - Delay between ticks (default: 1s)
//	--db <path>         - Logbook path (default: ~/.deepfield/logbook.db)
//	--verbose           - Debug logging
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/deep-field/internal/astro"
	"github.com/vovakirdan/deep-field/internal/config"
	"github.com/vovakirdan/deep-field/internal/loop"
	"github.com/vovakirdan/deep-field/internal/starfield"
)

var (
	// Global flags
	flagConfig    string
	flagCatalog   string
	flagTelescope string
	flagSeed      int64
	flagInterval  string
	flagDBPath    string
	flagVerbose   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "deepfield",
	Short: "Deep Field - stargazing in your terminal",
	Long: `Deep Field is a small stargazing game. You start with the naked eye
and discover stars, galaxies and stranger things as your telescopes improve.

Available commands:
  play     - Observe the sky interactively
  run      - Run a session headless and log discoveries
  catalog  - List objects and telescopes
  logbook  - Show discoveries from past sessions
  serve    - Start SSH server for remote observing

Examples:
  deepfield play
  deepfield play --telescope refractor_2in
  deepfield run --ticks 10 --seed 42
  deepfield logbook
  deepfield serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Path to custom catalog (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagTelescope, "telescope", "", "Starting telescope key")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagInterval, "interval", "", "Delay between ticks, e.g. 500ms")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to logbook database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(logbookCmd)
	rootCmd.AddCommand(serveCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger creates the stderr logger used by headless commands.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadSettings loads the config file and environment, then applies flags
// the user set explicitly.
func loadSettings(cmd *cobra.Command) config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("telescope") {
		cfg.StartTelescope = flagTelescope
	}
	if flags.Changed("catalog") {
		cfg.CatalogPath = flagCatalog
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("interval") {
		d, err := parseInterval(flagInterval)
		if err != nil {
			fail("%v", err)
		}
		cfg.TickInterval = d
	}
	return cfg
}

// loadCatalog loads the catalog named by cfg and checks the starting
// telescope exists.
func loadCatalog(cfg config.Config) *astro.Catalog {
	catalog, err := astro.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		fail("%v", err)
	}
	if _, err := catalog.Telescope(cfg.StartTelescope); err != nil {
		if errors.Is(err, astro.ErrUnknownKey) {
			fail("unknown telescope %q\nRun 'deepfield catalog' to see available telescopes.", cfg.StartTelescope)
		}
		fail("%v", err)
	}
	return catalog
}

func sessionConfig(cfg config.Config, catalog *astro.Catalog) loop.SessionConfig {
	return loop.SessionConfig{
		Catalog:        catalog,
		StartTelescope: cfg.StartTelescope,
		Seed:           cfg.Seed,
		UpgradeEvery:   cfg.UpgradeEvery,
	}
}

func skyOptions(cfg config.Config) starfield.Options {
	return starfield.Options{
		Seed:         cfg.Sky.Seed,
		Stars:        cfg.Sky.Stars,
		CanvasW:      cfg.Sky.CanvasWidth,
		CanvasH:      cfg.Sky.CanvasHeight,
		GroundHeight: cfg.Sky.GroundHeight,
	}
}
