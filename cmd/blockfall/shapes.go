package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
)

var shapesCmd = &cobra.Command{
	Use:   "shapes [kind]",
	Short: "Print the piece rotation tables",
	Long: `Shows every orientation of each piece kind, or of one kind.

'@' marks the anchor cell, '+' an anchor the piece does not occupy.

Examples:
  blockfall shapes
  blockfall shapes L`,
	Args: cobra.MaximumNArgs(1),
	Run:  runShapes,
}

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration a game would start with, after the config file
search and the difficulty preset. Redirect it to a file to start your own.

Examples:
  blockfall config > ~/.blockfall/configs/blockfall.yaml
  blockfall config --difficulty hard
  blockfall config --defaults`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults with comments")
	addGameFlags(configCmd)
}

func runShapes(_ *cobra.Command, args []string) {
	kinds := blockfall.Kinds
	if len(args) == 1 {
		k, err := blockfall.ParseKind(strings.ToUpper(args[0]))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		kinds = []blockfall.Kind{k}
	}

	for i, k := range kinds {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s (%d cells)\n", k, blockfall.CellCount(k))
		printOrientations(k)
	}
}

// printOrientations prints the four orientations of k side by side.
func printOrientations(k blockfall.Kind) {
	var diagrams [blockfall.NumOrientations][]string
	height, width := 0, 0
	for o := range diagrams {
		diagrams[o] = blockfall.Diagram(k, blockfall.Orientation(o))
		height = max(height, len(diagrams[o]))
		for _, row := range diagrams[o] {
			width = max(width, len(row))
		}
	}

	for o := range diagrams {
		fmt.Printf("  %-*s", width+2, fmt.Sprint(o))
	}
	fmt.Println()
	for j := 0; j < height; j++ {
		for o := range diagrams {
			row := ""
			if j < len(diagrams[o]) {
				row = diagrams[o][j]
			}
			fmt.Printf("  %-*s", width+2, row)
		}
		fmt.Println()
	}
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagDifficulty)
		os.Exit(1)
	}

	cfg, err := config.LoadBlockfall(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.ApplyPreset(&cfg, config.ParsePreset(flagDifficulty))

	data, err := cfg.Encode()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)
}
