package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List objects and telescopes",
	Long:  `Shows every telescope and every object in the active catalog, with the power each detail level needs.`,
	Args:  cobra.NoArgs,
	Run:   runCatalog,
}

func runCatalog(cmd *cobra.Command, _ []string) {
	cfg := loadSettings(cmd)
	catalog := loadCatalog(cfg)

	telescopes := catalog.TelescopesByPower()
	maxKeyLen := 3 // "Key" header
	for _, t := range telescopes {
		maxKeyLen = max(maxKeyLen, len(t.Key))
	}

	fmt.Println("Telescopes:")
	fmt.Println()
	fmt.Printf("  %-*s  %5s  %s\n", maxKeyLen, "Key", "Power", "Name")
	fmt.Printf("  %-*s  %5s  %s\n", maxKeyLen, "---", "-----", "----")
	for _, t := range telescopes {
		fmt.Printf("  %-*s  %5d  %s\n", maxKeyLen, t.Key, t.MaxPower, t.Name)
	}

	fmt.Println()
	fmt.Println("Objects:")
	for _, obj := range catalog.Objects() {
		fmt.Println()
		fmt.Printf("  %s (%s, key %s)\n", obj.Name, obj.Category, obj.Key)
		for _, d := range obj.Detail {
			fmt.Printf("    level %d  power %3d  %s\n", d.Level, d.PowerNeeded, d.DiscoveryText)
		}
	}

	fmt.Println()
	fmt.Printf("Starting telescope: %s\n", cfg.StartTelescope)
}
