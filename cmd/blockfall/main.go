// blockfall is a falling-block puzzle for the terminal.
//
// Usage:
//
//	blockfall play          - Play in this terminal
//	blockfall serve         - Start an SSH server for remote play
//	blockfall shapes [kind] - Print the rotation tables
//	blockfall config        - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS  int
	flagSeed int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - a falling-block puzzle in your terminal",
	Long: `Blockfall drops I and L pieces onto a 9x18 field. Move and rotate the
falling piece, let it land, then call the next one.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  shapes   - Print the piece rotation tables
  config   - Print the effective configuration

Examples:
  blockfall play
  blockfall play --difficulty hard
  blockfall serve --ssh :2222
  blockfall shapes L`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(shapesCmd)
	rootCmd.AddCommand(configCmd)
}
