package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/uberjump/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeHUD    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the level picker. Every SSH
user keeps their own high score and star count; the run history is shared.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.uberjump/host_key

Examples:
  uberjump serve                           # Listen on :23234
  uberjump serve --ssh :2222               # Listen on port 2222
  uberjump serve --host-key ./my_host_key  # Use specific host key
  uberjump serve --hud-addr :8080          # Stream every player's HUD

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeHUD, "hud-addr", "", "Serve HUD updates over websocket on this address")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, err := newLogger("uberjump-ssh", os.Stderr)
	if err != nil {
		return err
	}

	sink, stop, err := startHUD(flagServeHUD, logger)
	if err != nil {
		return err
	}
	defer stop()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game:        gameConfig,
		Sink:        sink,
		Logger:      logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting uberjump SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
