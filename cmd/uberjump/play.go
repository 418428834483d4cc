package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/uberjump/internal/hud"
	"github.com/vovakirdan/uberjump/internal/platform/tui"
	"github.com/vovakirdan/uberjump/internal/registry"
	"github.com/vovakirdan/uberjump/internal/storage"
)

var flagHUDAddr string

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the given level, or the first installed level.

Controls:
  Space/Up     - Launch
  Left/Right   - Tilt
  Down         - Level the tilt
  P            - Pause
  R            - Restart (after the run)
  B/Esc        - Back (while paused or after the run)
  Ctrl+S       - Screenshot
  Q/Ctrl+C     - Quit

With --hud-addr the score is also streamed as JSON over a websocket at
ws://<addr>/hud.

Examples:
  uberjump play
  uberjump play level02
  uberjump play --hud-addr localhost:8080`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagHUDAddr, "hud-addr", "", "Serve HUD updates over websocket on this address")
}

func runPlay(_ *cobra.Command, args []string) error {
	levelID, err := pickLevel(args)
	if err != nil {
		return err
	}
	desc, err := registry.Create(levelID)
	if err != nil {
		return err
	}

	logger, err := newLogger("uberjump", io.Discard)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	sink, stop, err := startHUD(flagHUDAddr, logger)
	if err != nil {
		return err
	}
	defer stop()

	_, err = tui.Run(tui.ModelOptions{
		Level:   desc,
		Game:    gameConfig,
		Runtime: runtimeConfig(),
		Store:   store,
		Logger:  logger,
		Sink:    sink,
	})
	return err
}

// pickLevel returns the requested level or the first registered one.
func pickLevel(args []string) (string, error) {
	if len(args) == 1 {
		if !registry.Exists(args[0]) {
			return "", fmt.Errorf("unknown level %q (run 'uberjump levels list')", args[0])
		}
		return args[0], nil
	}
	levels := registry.List()
	if len(levels) == 0 {
		return "", errors.New("no levels installed")
	}
	return levels[0].ID, nil
}

// openStore opens the database. Play continues in memory without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database", "path", flagDBPath, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

// startHUD serves the websocket HUD when addr is set. The returned stop
// function shuts the server down.
func startHUD(addr string, logger *log.Logger) (hud.Sink, func(), error) {
	if addr == "" {
		return hud.Discard, func() {}, nil
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("hud: listen %s: %w", addr, err)
	}

	b := hud.NewBroadcaster(logger)
	mux := http.NewServeMux()
	mux.Handle("/hud", b)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("hud server", "error", err)
		}
	}()
	logger.Info("hud listening", "address", ln.Addr().String())

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		b.Close()
		//nolint:errcheck // Best-effort shutdown on exit
		srv.Shutdown(ctx)
	}
	return b, stop, nil
}
