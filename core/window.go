package core

import (
	"fmt"
	"image"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

// Window is the process' single window and its OpenGL context.
type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string

	fullScreen bool
	// windowed placement restored when leaving full screen
	windowedX, windowedY int
	windowedW, windowedH int
}

type WindowConfig struct {
	Width      int
	Height     int
	Title      string
	Resizable  bool
	VSync      bool
	Fullscreen bool
	// Icon is optional; nil keeps the platform default.
	Icon image.Image
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:      1080,
		Height:     720,
		Title:      "Juliette",
		Resizable:  true,
		VSync:      false,
		Fullscreen: false,
	}
}

// NewWindow initialises glfw, opens the window with a 4.1 core context and
// applies config.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()

	window := &Window{
		Handle:    handle,
		Width:     config.Width,
		Height:    config.Height,
		Title:     config.Title,
		windowedW: config.Width,
		windowedH: config.Height,
	}

	handle.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		window.Width = width
		window.Height = height
	})

	window.Configure(config)
	return window, nil
}

// Configure applies title, vsync, full screen and icon settings.
func (w *Window) Configure(config WindowConfig) {
	w.ConfigureTitle(config.Title)
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	if config.Icon != nil {
		w.Handle.SetIcon([]image.Image{config.Icon})
	}
	w.ConfigureFullScreen(config.Fullscreen)
}

// ConfigureFullScreen moves the window onto the primary monitor at its
// native mode, or back to its last windowed placement.
func (w *Window) ConfigureFullScreen(fullScreen bool) {
	if fullScreen == w.fullScreen {
		return
	}
	if fullScreen {
		monitor := glfw.GetPrimaryMonitor()
		if monitor == nil {
			return
		}
		w.windowedX, w.windowedY = w.Handle.GetPos()
		w.windowedW, w.windowedH = w.Handle.GetSize()
		mode := monitor.GetVideoMode()
		w.Handle.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	} else {
		w.Handle.SetMonitor(nil, w.windowedX, w.windowedY, w.windowedW, w.windowedH, 0)
	}
	w.fullScreen = fullScreen
}

func (w *Window) FullScreen() bool {
	return w.fullScreen
}

func (w *Window) ConfigureTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

// Time returns seconds since glfw was initialised.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

// AspectRatio returns width/height, or 0 while the framebuffer is empty
// (for example when minimized).
func (w *Window) AspectRatio() float32 {
	if w.Width <= 0 || w.Height <= 0 {
		return 0
	}
	return float32(w.Width) / float32(w.Height)
}

// Terminate destroys the window and releases glfw.
func (w *Window) Terminate() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func (w *Window) IsKeyPressed(key int) bool {
	return w.Handle.GetKey(glfw.Key(key)) == glfw.Press
}

func (w *Window) IsMouseButtonPressed(button int) bool {
	return w.Handle.GetMouseButton(glfw.MouseButton(button)) == glfw.Press
}

func (w *Window) GetCursorPos() (float64, float64) {
	return w.Handle.GetCursorPos()
}

// ScrollCallback is the type for scroll event handlers
type ScrollCallback func(xoff, yoff float64)

func (w *Window) SetScrollCallback(cb ScrollCallback) {
	w.Handle.SetScrollCallback(func(win *glfw.Window, xoff, yoff float64) {
		cb(xoff, yoff)
	})
}

// SetCursorCaptured hides and locks the cursor, or restores it.
func (w *Window) SetCursorCaptured(captured bool) {
	if captured {
		w.Handle.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		w.Handle.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

const (
	KeySpace       = int(glfw.KeySpace)
	KeyA           = int(glfw.KeyA)
	KeyB           = int(glfw.KeyB)
	KeyD           = int(glfw.KeyD)
	KeyF           = int(glfw.KeyF)
	KeyP           = int(glfw.KeyP)
	KeyS           = int(glfw.KeyS)
	KeyW           = int(glfw.KeyW)
	KeyEscape      = int(glfw.KeyEscape)
	KeyLeftShift   = int(glfw.KeyLeftShift)
	KeyLeftControl = int(glfw.KeyLeftControl)
	KeyLast        = int(glfw.KeyLast)
)

const (
	MouseButtonLeft   = int(glfw.MouseButtonLeft)
	MouseButtonRight  = int(glfw.MouseButtonRight)
	MouseButtonMiddle = int(glfw.MouseButtonMiddle)
)
