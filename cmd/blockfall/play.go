package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagDebug      bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Left/Right - Move the piece
  Up         - Rotate clockwise
  Down       - Drop to the stack
  Space      - Start / next piece
  P/Esc      - Pause
  R          - Restart (after game over)
  ?          - Toggle help
  Q/Ctrl+C   - Quit

Difficulty options (only with difficulty.enabled in the config, except fixed):
  easy   - Start at the base fall speed
  normal - Start at 30% of the speed range
  hard   - Start at 70% of the speed range
  fixed  - No progression, stays at the config's initial level

The terminal owns stdout while playing, so logs go to --log-file.

Examples:
  blockfall play
  blockfall play --difficulty hard
  blockfall play --config ./my-blockfall.yaml
  blockfall play --log-file blockfall.log --debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	playCmd.Flags().BoolVar(&flagDebug, "debug", false, "Log every landing and blocked move")
}

// addGameFlags registers the flags that configure the game itself.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// configureGame validates the game flags and hands them to the game package.
func configureGame() error {
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	// Fail before the UI starts rather than silently falling back to defaults.
	if flagConfig != "" {
		if _, err := config.LoadBlockfall(flagConfig); err != nil {
			return err
		}
	}
	blockfall.SetConfigPath(flagConfig)
	blockfall.SetDifficultyPreset(flagDifficulty)
	return nil
}

// openLogger returns a logger writing to path, or a discarding logger when
// path is empty. The returned closer must be called on exit.
func openLogger(path string, debug bool) (*log.Logger, io.Closer, error) {
	if path == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "blockfall",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, f, nil
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := configureGame(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closer, err := openLogger(flagLogFile, flagDebug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	blockfall.SetLogger(logger)

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(blockfall.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.Run(game, cfg, logger)
	closer.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
