package main

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/uberjump/internal/platform/tui"
	"github.com/vovakirdan/uberjump/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick levels from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a level and Tab for the
run history. Going back from a finished run returns to the menu.

Examples:
  uberjump menu
  uberjump menu --levels-dir ./levels`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
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

	rt := runtimeConfig()
	for {
		res, err := tui.RunMenu(store, rt, logger)
		if err != nil {
			return err
		}
		rt = res.Config

		if res.Quit {
			return nil
		}

		if res.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		desc, err := registry.Create(res.LevelID)
		if err != nil {
			logger.Error("cannot load level", "level", res.LevelID, "error", err)
			continue
		}

		if flagSeed == 0 {
			rt.Seed = time.Now().UnixNano()
		}
		back, err := tui.Run(tui.ModelOptions{
			Level:   desc,
			Game:    gameConfig,
			Runtime: rt,
			Store:   store,
			Logger:  logger,
			Sink:    sink,
		})
		if err != nil {
			return err
		}
		if !back {
			return nil
		}
	}
}

func init() {
	menuCmd.Flags().StringVar(&flagHUDAddr, "hud-addr", "", "Serve HUD updates over websocket on this address")
}
