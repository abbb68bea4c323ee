package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List modes and built-in levels",
	Long:  `Shows the registered game modes and the campaign levels.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	fmt.Println("Modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-10s  %-14s  %s\n", "#", "ID", "Name", "Blocks")
	fmt.Printf("  %-3s  %-10s  %-14s  %s\n", "-", "--", "----", "------")
	for i, l := range breakout.BuiltinLevels() {
		fmt.Printf("  %-3d  %-10s  %-14s  %d\n", i+1, l.ID, l.Name, l.CountBreakable())
	}

	fmt.Println()
	fmt.Println("Run 'breakout play --level <#|id>' to start from a level.")
}
