// uberjump is a vertical jump game for the terminal: tilt the player
// left and right, bounce off platforms and collect stars on the way up.
//
// Usage:
//
//	uberjump play [level]        - Play a level (first level by default)
//	uberjump menu                - Pick levels interactively
//	uberjump levels list         - List installed levels
//	uberjump levels check <file> - Validate a level file
//	uberjump scores [level]      - Show run history
//	uberjump serve               - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>      - Game tuning YAML
//	--db <path>          - Database path (default: ~/.uberjump/uberjump.db)
//	--levels-dir <dir>   - Extra level files to register
//	--log-level <level>  - debug, info, warn, error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/uberjump/internal/config"
	"github.com/vovakirdan/uberjump/internal/core"
	"github.com/vovakirdan/uberjump/internal/level/builtin"
)

var (
	// Global flags
	flagConfig    string
	flagDBPath    string
	flagLevelsDir string
	flagLogLevel  string
	flagLogFile   string
	flagSeed      int64
)

// Loaded in PersistentPreRunE.
var (
	gameConfig config.GameConfig
	logFile    *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "uberjump",
	Short: "UberJump - a jump game for your terminal",
	Long: `UberJump is a vertical jump game played in the terminal.

Tap space to launch, tilt with the arrow keys, bounce off platforms and
collect stars. Falling too far below your best height ends the run.

Available commands:
  play     - Play a level directly
  menu     - Interactive level picker
  levels   - List or validate levels
  scores   - View run history
  serve    - Start SSH server for remote play

Examples:
  uberjump play
  uberjump play level02 --hud-addr :8080
  uberjump levels check ./my-level.yaml
  uberjump serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.uberjump/uberjump.db", "Path to database")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for scenery (0 = random based on time)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads the game config and registers user levels.
func setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	gameConfig = cfg

	if flagLevelsDir != "" {
		if _, err := builtin.RegisterDir(flagLevelsDir); err != nil {
			return err
		}
	}

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logFile = f
	}
	return nil
}

// newLogger builds a logger for a command. The fallback writer is used
// when no log file is configured.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	w := fallback
	if logFile != nil {
		w = logFile
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// runtimeConfig builds the runtime config from the terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = gameConfig.Physics.TickRate
	cfg.Seed = flagSeed
	return cfg
}
