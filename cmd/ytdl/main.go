package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/handiism/youtube-downloader/internal/app"
	"github.com/handiism/youtube-downloader/internal/menu"
	"github.com/handiism/youtube-downloader/internal/system"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cliApp := &cli.App{
		Name:    "ytdl",
		Usage:   "download music and videos from YouTube",
		Version: app.Version,
		Flags:   app.Flags(),
		Action: func(c *cli.Context) error {
			opts := app.OptionsFrom(c)
			printer := menu.NewEventPrinter(os.Stdout, opts.Verbose)

			a, err := app.New(opts, printer.Handle)
			if err != nil {
				return err
			}
			defer a.Close()

			m := menu.New(menu.Config{
				In:         os.Stdin,
				Out:        os.Stdout,
				Analyzer:   a.Analyzer,
				Downloader: a.Manager,
				Store:      a.Store,
				Picker:     a.Picker(),
				Console:    system.NewTerminal(os.Stdout),
				Events:     printer,
				Logger:     a.Logger,
				Version:    app.Version,
			})

			// Reads from stdin cannot be interrupted, so the menu runs
			// aside and an interrupt ends the program directly.
			result := make(chan error, 1)
			go func() { result <- m.Run(ctx) }()

			select {
			case err := <-result:
				if err != nil && ctx.Err() == nil {
					return err
				}
			case <-ctx.Done():
				a.Logger.Info("interrupted")
			}
			fmt.Println("\nBye!")
			return nil
		},
		HideHelpCommand: true,
	}

	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
