package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"juliette/app"
	"juliette/config"
)

var runFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "variant",
		Value: string(config.Viewer),
		Usage: "preset to start from (see the variants command)",
	},
	cli.StringFlag{Name: "title", Usage: "window title"},
	cli.IntFlag{Name: "width", Usage: "window width"},
	cli.IntFlag{Name: "height", Usage: "window height"},
	cli.BoolFlag{Name: "vsync", Usage: "wait for vertical sync"},
	cli.BoolFlag{Name: "fullscreen", Usage: "start in full screen"},
	cli.StringFlag{Name: "icon", Usage: "window icon under the textures directory; empty keeps the default"},
	cli.StringFlag{Name: "assets", Usage: "asset root directory"},
	cli.StringFlag{Name: "model", Usage: "model name under models/ (NAME.mdl + NAME.mat, or a .gltf/.glb file)"},
	cli.StringFlag{Name: "texture", Usage: "texture under textures/ bound to the model materials"},
	cli.BoolFlag{Name: "bench", Usage: "collect statistics and exit after the benchmark duration"},
	cli.Float64Flag{Name: "bench-duration", Usage: "benchmark duration in seconds"},
	cli.BoolFlag{Name: "debug-draw", Usage: "outline physics colliders"},
	cli.BoolFlag{Name: "no-debug-draw", Usage: "disable collider outlines"},
	cli.BoolFlag{Name: "no-cull", Usage: "draw every instance, including those outside the view"},
	cli.IntFlag{Name: "objects", Usage: "number of spawned objects"},
	cli.Float64Flag{Name: "bounds", Usage: "half-extent of the spawn cube"},
	cli.Float64Flag{Name: "velocity", Usage: "initial velocity limit per axis"},
	cli.Uint64Flag{Name: "seed", Usage: "population random seed"},
	cli.Float64Flag{Name: "camera-speed", Usage: "camera movement speed in units/second"},
	cli.Float64Flag{Name: "rotation-speed", Usage: "camera rotation speed in degrees per pixel-second"},
	cli.Float64Flag{Name: "fov", Usage: "vertical field of view in degrees"},
	cli.Float64Flag{Name: "near", Usage: "near clip plane"},
	cli.Float64Flag{Name: "far", Usage: "far clip plane"},
	cli.BoolFlag{Name: "player", Usage: "move the first object with WASD while not looking"},
	cli.Float64Flag{Name: "gravity", Usage: "gravity acceleration"},
	cli.Float64Flag{Name: "drag", Usage: "fraction of velocity removed per second"},
	cli.Float64Flag{Name: "elasticity", Usage: "collision elasticity in [0, 1]"},
	cli.Float64Flag{Name: "spin", Usage: "object spin in degrees/second"},
}

// runDemo builds the configuration, runs the app and maps its exit code.
func runDemo(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	cfg, err := configFromContext(ctx)
	if err != nil {
		return err
	}

	a := app.New(cfg, app.OpenPlatform)
	if err := a.Setup(); err != nil {
		a.Terminate(1, err.Error())
		a.Teardown()
		return cli.NewExitError(err.Error(), 1)
	}

	if code := a.Run(); code != 0 {
		return cli.NewExitError(a.ExitMessage, code)
	}
	return nil
}

// configFromContext starts from the selected preset and applies only the
// flags that were set explicitly.
func configFromContext(ctx *cli.Context) (config.Config, error) {
	cfg, err := config.Default(config.Variant(ctx.String("variant")))
	if err != nil {
		return cfg, err
	}

	str := func(name string, dst *string) {
		if ctx.IsSet(name) {
			*dst = ctx.String(name)
		}
	}
	num := func(name string, dst *int) {
		if ctx.IsSet(name) {
			*dst = ctx.Int(name)
		}
	}
	float := func(name string, dst *float32) {
		if ctx.IsSet(name) {
			*dst = float32(ctx.Float64(name))
		}
	}
	on := func(name string, dst *bool) {
		if ctx.Bool(name) {
			*dst = true
		}
	}

	str("title", &cfg.Title)
	num("width", &cfg.Width)
	num("height", &cfg.Height)
	on("vsync", &cfg.VSync)
	on("fullscreen", &cfg.StartFullscreen)
	str("icon", &cfg.IconPath)
	str("assets", &cfg.AssetDir)
	str("model", &cfg.ModelName)
	str("texture", &cfg.TextureName)
	on("bench", &cfg.BenchmarkEnabled)
	if ctx.IsSet("bench-duration") {
		cfg.BenchDurationSeconds = ctx.Float64("bench-duration")
	}
	on("debug-draw", &cfg.DebugDrawEnabled)
	if ctx.Bool("no-debug-draw") {
		cfg.DebugDrawEnabled = false
	}
	if ctx.Bool("no-cull") {
		cfg.FrustumCulling = false
	}
	num("objects", &cfg.ObjectCount)
	float("bounds", &cfg.SpawnBounds)
	float("velocity", &cfg.VelocityLimit)
	if ctx.IsSet("seed") {
		cfg.Seed = ctx.Uint64("seed")
	}
	float("camera-speed", &cfg.CameraSpeed)
	float("rotation-speed", &cfg.CameraRotationSpeed)
	float("fov", &cfg.FieldOfView)
	float("near", &cfg.NearPlane)
	float("far", &cfg.FarPlane)
	on("player", &cfg.PlayerControl)
	float("gravity", &cfg.Gravity)
	float("drag", &cfg.Drag)
	float("elasticity", &cfg.Elasticity)
	float("spin", &cfg.SpinSpeed)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid options: %w", err)
	}
	return cfg, nil
}

func listVariants(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}
	fmt.Print(variantTable())
	return nil
}

func variantTable() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Variant", "Objects", "Physics", "Benchmark", "Description"})
	for _, v := range config.Variants() {
		cfg, _ := config.Default(v)
		table.Append([]string{
			string(v),
			fmt.Sprintf("%d", cfg.ObjectCount),
			fmt.Sprintf("%t", v != config.Viewer),
			fmt.Sprintf("%t", cfg.BenchmarkEnabled),
			describe(v),
		})
	}
	table.Render()
	return buf.String()
}

// describe capitalizes a preset's description for display.
func describe(v config.Variant) string {
	d := config.Describe(v)
	if d == "" {
		return d
	}
	return strings.ToUpper(d[:1]) + d[1:]
}
