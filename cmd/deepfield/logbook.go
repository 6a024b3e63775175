package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/deep-field/internal/platform/tui"
	"github.com/vovakirdan/deep-field/internal/storage"
)

var (
	flagLogbookLimit int
	flagLogbookTUI   bool
	flagLogbookClear bool
)

var logbookCmd = &cobra.Command{
	Use:   "logbook",
	Short: "Show discoveries from past sessions",
	Long: `Display the most recent entries of the observation logbook.

Examples:
  deepfield logbook
  deepfield logbook --limit 50
  deepfield logbook --tui
  deepfield logbook --clear`,
	Args: cobra.NoArgs,
	Run:  runLogbook,
}

func init() {
	logbookCmd.Flags().IntVarP(&flagLogbookLimit, "limit", "n", 10, "Number of entries to show")
	logbookCmd.Flags().BoolVar(&flagLogbookTUI, "tui", false, "Browse the logbook interactively")
	logbookCmd.Flags().BoolVar(&flagLogbookClear, "clear", false, "Delete every logbook entry")
}

func runLogbook(cmd *cobra.Command, _ []string) {
	cfg := loadSettings(cmd)

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fail("opening logbook: %v", err)
	}
	defer store.Close()

	switch {
	case flagLogbookClear:
		if err := store.Clear(); err != nil {
			fail("%v", err)
		}
		fmt.Println("Logbook cleared.")
		return

	case flagLogbookTUI:
		width, height := 100, 30
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunLogbook(store, width, height); err != nil {
			fail("%v", err)
		}
		return
	}

	entries, err := store.RecentObservations(flagLogbookLimit)
	if err != nil {
		fail("retrieving logbook: %v", err)
	}

	fmt.Println("Logbook - recent sightings")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No observations logged yet.")
		fmt.Println()
		fmt.Println("Run 'deepfield play' or 'deepfield run' to start the logbook!")
		return
	}

	fmt.Printf("  %-16s  %-5s  %-22s  %s\n", "Date", "Level", "Object", "Discovery")
	fmt.Printf("  %-16s  %-5s  %-22s  %s\n", "----", "-----", "------", "---------")
	for _, e := range entries {
		fmt.Printf("  %-16s  %-5d  %-22s  %s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Level, e.ObjectName, e.DiscoveryText)
	}

	if sum, err := store.Summary(); err == nil {
		fmt.Println()
		fmt.Printf("%d sightings of %d objects over %d sessions\n", sum.Observations, sum.Objects, sum.Sessions)
	}
}
