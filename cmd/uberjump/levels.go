package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/uberjump/internal/level"
	"github.com/vovakirdan/uberjump/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List or validate levels",
}

var levelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed levels",
	Long:  `Shows every built-in level and every level found in --levels-dir.`,
	RunE:  runLevelsList,
}

var levelsCheckCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate level files",
	Long: `Parses each level file and expands it at the reference width, reporting
unknown patterns and object types.

Supported formats: .yaml, .yml, .json, .toml

Examples:
  uberjump levels check ./levels/level03.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLevelsCheck,
}

func init() {
	levelsCmd.AddCommand(levelsListCmd)
	levelsCmd.AddCommand(levelsCheckCmd)
}

func runLevelsList(_ *cobra.Command, _ []string) error {
	levels := registry.List()
	if len(levels) == 0 {
		fmt.Println("No levels installed.")
		return nil
	}

	maxIDLen := 2 // "ID" header
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Println("Installed levels:")
	fmt.Println()
	fmt.Printf("  %-*s  %-6s  %-9s  %s\n", maxIDLen, "ID", "Stars", "Platforms", "Title")
	fmt.Printf("  %-*s  %-6s  %-9s  %s\n", maxIDLen, "--", "-----", "---------", "-----")

	for _, l := range levels {
		desc, err := registry.Create(l.ID)
		if err != nil {
			fmt.Printf("  %-*s  %-6s  %-9s  %s (%v)\n", maxIDLen, l.ID, "?", "?", l.Title, err)
			continue
		}
		stars, platforms := desc.Counts()
		fmt.Printf("  %-*s  %-6d  %-9d  %s\n", maxIDLen, l.ID, stars, platforms, l.Title)
	}

	fmt.Println()
	fmt.Println("Run 'uberjump play <id>' to play a level.")
	return nil
}

func runLevelsCheck(_ *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		if err := checkLevel(path); err != nil {
			fmt.Printf("FAIL  %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("ok    %s\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d level files failed", failed, len(args))
	}
	return nil
}

func checkLevel(path string) error {
	desc, err := level.LoadFile(path)
	if err != nil {
		return err
	}
	_, err = level.Expand(desc, 1)
	return err
}
