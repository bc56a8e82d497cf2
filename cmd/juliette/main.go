package main

import (
	"os"

	"github.com/urfave/cli"

	"juliette/log"
)

var logger = log.New("juliette")

func main() {
	app := cli.NewApp()
	app.Name = "juliette"
	app.Usage = "run the engine demo and benchmark harness"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringSliceFlag{
			Name:  "log",
			Usage: "per-package level override as module=level, e.g. physics=debug (repeatable)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "open a window and run a demo variant",
			Description: `
Load shaders and models from the asset directory, populate the scene for the
selected variant and run the frame loop until the window is closed, escape is
pressed or the benchmark window elapses.

Controls: hold the left mouse button to look and move with WASD, Space and
Left Control. Scroll zooms, F toggles full screen, P toggles the projection
and B toggles collider outlines.`,
			Flags:  runFlags,
			Action: runDemo,
		},
		{
			Name:   "variants",
			Usage:  "list the available presets",
			Action: listVariants,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func setupLogging(ctx *cli.Context) error {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}

	for _, override := range ctx.GlobalStringSlice("log") {
		if err := log.ParseModuleLevel(override); err != nil {
			return cli.NewExitError(err.Error(), 2)
		}
	}
	return nil
}
