package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/handiism/youtube-downloader/internal/app"
	"github.com/handiism/youtube-downloader/internal/tui"
)

func main() {
	cliApp := &cli.App{
		Name:    "ytdl-tui",
		Usage:   "interactive YouTube downloader",
		Version: app.Version,
		Flags:   app.Flags(),
		Action: func(c *cli.Context) error {
			opts := app.OptionsFrom(c)
			// Each download reports through its own handler; see tui.Relay.
			a, err := app.New(opts, nil)
			if err != nil {
				return err
			}
			defer a.Close()

			return tui.Run(tui.Config{
				Analyzer:   a.Analyzer,
				Downloader: a.Manager,
				Store:      a.Store,
				Picker:     a.Picker(),
				Logger:     a.Logger,
				Version:    app.Version,
				Verbose:    opts.Verbose,
				Relay:      &tui.Relay{},
			})
		},
		HideHelpCommand: true,
	}

	if err := cliApp.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
