package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/registry"
)

var difficultiesCmd = &cobra.Command{
	Use:     "difficulties",
	Aliases: []string{"list"},
	Short:   "List difficulty profiles and game modes",
	Long:    `Shows the difficulty profiles from the active config and the registered game modes.`,
	Args:    cobra.NoArgs,
	RunE:    runDifficulties,
}

func runDifficulties(_ *cobra.Command, _ []string) error {
	mazeCfg, err := loadConfig()
	if err != nil {
		return err
	}

	profiles := mazeCfg.SortedProfiles()
	def := mazeCfg.DefaultDifficulty()

	fmt.Println("Difficulties:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, p := range profiles {
		if len(p.Name) > maxNameLen {
			maxNameLen = len(p.Name)
		}
	}

	fmt.Printf("  %-*s  %-9s  %s\n", maxNameLen, "Name", "Size", "Rooms")
	fmt.Printf("  %-*s  %-9s  %s\n", maxNameLen, "----", "----", "-----")
	for _, p := range profiles {
		marker := ""
		if p.Name == def {
			marker = "  (default)"
		}
		size := fmt.Sprintf("%dx%d", p.Width, p.Height)
		fmt.Printf("  %-*s  %-9s  %d%s\n", maxNameLen, p.Name, size, p.RoomSize, marker)
	}

	fmt.Println()
	fmt.Println("Modes:")
	fmt.Println()
	for _, g := range registry.List() {
		fmt.Printf("  %-10s  %s\n", g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'maze play --difficulty <name>' to play.")
	return nil
}
