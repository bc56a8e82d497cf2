// Package app sequences one demo run: setup, the per-frame loop and
// teardown.
package app

import (
	"fmt"
	gomath "math"

	"juliette/bench"
	"juliette/camera"
	"juliette/config"
	"juliette/core"
	"juliette/entity"
	"juliette/input"
	"juliette/log"
	"juliette/math"
	"juliette/physics"
	"juliette/resource"
	"juliette/scene"
)

var logger = log.New("app")

// State is the lifecycle of an App.
type State int

const (
	Uninitialized State = iota
	Running
	Terminating
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Running:
		return "running"
	case Terminating:
		return "terminating"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const (
	shaderDir  = "shaders"
	modelDir   = "models"
	textureDir = "textures"

	maxDebugVertices = 1 << 16
)

var (
	staticColor  = core.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
	dynamicColor = core.ColorGreen
)

// Window is the part of core.Window the frame loop drives.
type Window interface {
	FullScreen() bool
	ConfigureFullScreen(fullScreen bool)
	ConfigureTitle(title string)
	ShouldClose() bool
	PollEvents()
	AspectRatio() float32
	Time() float64
	Terminate()
}

// Input is the per-frame input snapshot.
type Input interface {
	camera.Input
	Update()
	GetKey(key int, state input.State) bool
}

type Renderer interface {
	ConfigureShaders(vertexSrc, fragmentSrc string) error
	StartRendering()
	RenderScene(s *scene.Scene) error
	FinishRendering()
	Terminate()
}

// DebugDrawer outlines boxes on top of the rendered scene.
type DebugDrawer interface {
	StartRendering()
	DrawBoxLines(center, size math.Vec3, color core.Color)
	DrawGrid(size float32, divisions int, y float32)
	FinishRendering(projection, view math.Mat4)
	Terminate()
}

// Platform bundles the collaborators that need a live window.
type Platform struct {
	Window   Window
	Input    Input
	Renderer Renderer
	// NewDebugDrawer may be nil when debug drawing is unavailable.
	NewDebugDrawer func(vertexSrc, fragmentSrc string, maxVertices int) (DebugDrawer, error)
}

// Opener creates the platform for a configuration.
type Opener func(cfg config.Config, loader *resource.Loader) (*Platform, error)

// App holds everything a run owns. It is not safe for concurrent use; every
// method must be called from the thread that opened the window.
type App struct {
	Config      config.Config
	State       State
	ExitCode    int
	ExitMessage string

	Loader   *resource.Loader
	Entities *entity.Arena
	Scene    *scene.Scene
	Physics  *physics.Scene
	Camera   *camera.FreeLook
	Player   *camera.Player
	Stats    *bench.Stats

	window   Window
	input    Input
	renderer Renderer
	debug    DebugDrawer
	open     Opener

	debugVisible bool
	// altSize is the zoom of the projection mode not in use.
	altSize  float32
	spinning []entity.Slot
	grid     grid
	torndown bool
}

func New(cfg config.Config, open Opener) *App {
	return &App{
		Config: cfg,
		Loader: resource.NewLoader(cfg.AssetDir),
		open:   open,
	}
}

// Setup opens the platform, compiles shaders and builds the world. On error
// the App stays Uninitialized; Teardown releases whatever was opened.
func (a *App) Setup() error {
	if a.State != Uninitialized {
		return fmt.Errorf("setup: app is %s", a.State)
	}
	if err := a.Config.Validate(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	p, err := a.open(a.Config, a.Loader)
	if err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	a.window, a.input, a.renderer = p.Window, p.Input, p.Renderer

	vs, fs, err := a.loadShaders("vertex.glsl", "fragment.glsl")
	if err != nil {
		return err
	}
	if err := a.renderer.ConfigureShaders(vs, fs); err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	if a.Config.DebugDrawEnabled && p.NewDebugDrawer != nil {
		vs, fs, err := a.loadShaders("debug_vertex.glsl", "debug_fragment.glsl")
		if err != nil {
			return err
		}
		a.debug, err = p.NewDebugDrawer(vs, fs, maxDebugVertices)
		if err != nil {
			return fmt.Errorf("setup: %w", err)
		}
		a.debugVisible = true
	}

	if err := a.buildWorld(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	if a.Config.BenchmarkEnabled {
		totals := bench.SceneTotals(a.Scene)
		a.Stats = bench.New(a.Config.BenchDurationSeconds, totals)
		logger.Infof("benchmarking %d objects (%d vertices, %d faces) for %.1fs",
			totals.Objects, totals.Vertices, totals.Faces, a.Config.BenchDurationSeconds)
	}

	a.State = Running
	logger.Infof("running variant %s", a.Config.Variant)
	return nil
}

func (a *App) loadShaders(vertexName, fragmentName string) (string, string, error) {
	vs, err := a.Loader.LoadText(vertexName, shaderDir)
	if err != nil {
		return "", "", fmt.Errorf("setup: %w", err)
	}
	defer vs.Release()
	fs, err := a.Loader.LoadText(fragmentName, shaderDir)
	if err != nil {
		return "", "", fmt.Errorf("setup: %w", err)
	}
	defer fs.Release()
	return vs.Data, fs.Data, nil
}

// Run drives frames until the window closes or a frame requests
// termination, then tears down. It returns the exit code.
func (a *App) Run() int {
	last := a.window.Time()
	for a.State == Running {
		if a.window.ShouldClose() {
			a.Terminate(0, "window closed")
			break
		}
		now := a.window.Time()
		dt := now - last
		last = now

		if err := a.Frame(dt); err != nil {
			a.Terminate(1, err.Error())
		}
	}
	a.Teardown()
	return a.ExitCode
}

// Frame advances the run by dt seconds. The order of the steps is fixed:
// input, toggles, camera, spin, physics, scene update, render, title,
// statistics.
func (a *App) Frame(dt float64) error {
	if a.State != Running {
		return nil
	}
	step := float32(dt)

	a.window.PollEvents()
	a.input.Update()

	a.handleToggles()

	if a.Player != nil {
		a.Player.Update(a.input, step)
	}
	a.Camera.Update(a.input, step)

	a.spin(step)

	if a.Physics != nil {
		a.Physics.UpdateComponents(step)
		a.Physics.ResolveCollisions()
	}

	a.Scene.MainCamera.AspectRatio = aspectOr(a.window.AspectRatio(), a.Scene.MainCamera.AspectRatio)
	a.Scene.Update()

	if err := a.render(); err != nil {
		return fmt.Errorf("frame: %w", err)
	}

	a.window.ConfigureTitle(frameTitle(a.Config.Title, dt))

	if a.Stats != nil && a.Stats.Accumulate(dt) {
		sum := a.Stats.Summary(bench.Environment{
			FullScreen:    a.window.FullScreen(),
			DebugRenderer: a.debug != nil,
			VSync:         a.Config.VSync,
		})
		sum.Log()
		a.Terminate(0, "benchmark finished")
	}
	return nil
}

func (a *App) handleToggles() {
	if a.input.GetKey(core.KeyEscape, input.Down) {
		a.Terminate(0, "escape pressed")
	}
	if a.input.GetKey(core.KeyF, input.Down) {
		a.window.ConfigureFullScreen(!a.window.FullScreen())
	}
	if a.input.GetKey(core.KeyP, input.Down) {
		cam := a.Scene.MainCamera
		cam.IsPerspective = !cam.IsPerspective
		cam.Size, a.altSize = a.altSize, cam.Size
		logger.Debugf("perspective=%v size=%v", cam.IsPerspective, cam.Size)
	}
	if a.input.GetKey(core.KeyB, input.Down) && a.debug != nil {
		a.debugVisible = !a.debugVisible
	}
}

func (a *App) spin(dt float32) {
	if a.Config.SpinSpeed == 0 {
		return
	}
	for _, slot := range a.spinning {
		e := a.Entities.Get(slot)
		e.Rotation.Y = float32(gomath.Mod(float64(e.Rotation.Y+a.Config.SpinSpeed*dt), 360))
	}
}

func (a *App) render() error {
	a.renderer.StartRendering()
	if err := a.renderer.RenderScene(a.Scene); err != nil {
		return err
	}

	if a.debug != nil && a.debugVisible {
		a.debug.StartRendering()
		a.debug.DrawGrid(a.grid.size, a.grid.divisions, a.grid.y)
		if a.Physics != nil {
			for i := range a.Physics.Components {
				c := &a.Physics.Components[i]
				center, size := a.Physics.Bounds(c)
				color := dynamicColor
				if c.IsStatic {
					color = staticColor
				}
				a.debug.DrawBoxLines(center, size, color)
			}
		}
		a.debug.FinishRendering(a.Scene.Projection, a.Scene.View)
	}

	a.renderer.FinishRendering()
	return nil
}

// Terminate requests the end of the run. Only the first call sets the
// exit code and message.
func (a *App) Terminate(code int, message string) {
	if a.State == Terminating {
		return
	}
	a.State = Terminating
	a.ExitCode = code
	a.ExitMessage = message
	if code == 0 {
		logger.Noticef("terminating: %s", message)
	} else {
		logger.Errorf("terminating with code %d: %s", code, message)
	}
}

// Teardown releases the renderer, the debug renderer and the window in
// that order. It is safe to call more than once and after a failed Setup.
func (a *App) Teardown() {
	if a.torndown {
		return
	}
	a.torndown = true
	if a.renderer != nil {
		a.renderer.Terminate()
	}
	if a.debug != nil {
		a.debug.Terminate()
	}
	if a.window != nil {
		a.window.Terminate()
	}
}

func frameTitle(title string, dt float64) string {
	fps := 0.0
	if dt > 0 {
		fps = 1 / dt
	}
	return fmt.Sprintf("%s | FPS: %f | Frame Time: %f ms", title, fps, dt*1000)
}

func aspectOr(aspect, fallback float32) float32 {
	if aspect > 0 {
		return aspect
	}
	return fallback
}
