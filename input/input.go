package input

import (
	gomath "math"

	"juliette/core"
	"juliette/math"
)

// State selects which edge of a key or button a query asks about.
type State int

const (
	// Down is true only on the frame the key went down.
	Down State = iota
	// Up is true only on the frame the key was released.
	Up
	// Held is true on every frame the key is down.
	Held
)

type MouseMode int

const (
	MouseNormal MouseMode = iota
	MouseCaptured
)

// Source is the raw device state the manager polls; *core.Window satisfies it.
type Source interface {
	IsKeyPressed(key int) bool
	IsMouseButtonPressed(button int) bool
	GetCursorPos() (float64, float64)
	SetScrollCallback(cb core.ScrollCallback)
	SetCursorCaptured(captured bool)
}

const maxMouseButtons = 8

// Manager snapshots keyboard and mouse state once per frame and answers
// edge-aware queries against that snapshot.
type Manager struct {
	source Source

	lastMouseX, lastMouseY float64
	deltaX, deltaY         int
	resync                 bool

	pendingScroll float64
	scroll        float32

	mouseButtons     [maxMouseButtons]bool
	mouseButtonsPrev [maxMouseButtons]bool

	tracked  []int
	keys     map[int]bool
	keysPrev map[int]bool

	mode MouseMode
}

// DefaultKeys are the keys polled by every harness variant.
var DefaultKeys = []int{
	core.KeyW, core.KeyA, core.KeyS, core.KeyD,
	core.KeySpace, core.KeyLeftControl, core.KeyLeftShift,
	core.KeyF, core.KeyP, core.KeyB, core.KeyEscape,
}

// NewManager registers the scroll callback on source and starts tracking keys.
func NewManager(source Source, keys ...int) *Manager {
	if len(keys) == 0 {
		keys = DefaultKeys
	}
	im := &Manager{
		source:   source,
		resync:   true,
		tracked:  keys,
		keys:     make(map[int]bool, len(keys)),
		keysPrev: make(map[int]bool, len(keys)),
	}

	source.SetScrollCallback(func(xoff, yoff float64) {
		im.pendingScroll += yoff
	})

	return im
}

// Update must be called once per frame before any query.
func (im *Manager) Update() {
	x, y := im.source.GetCursorPos()
	if im.resync {
		im.lastMouseX = x
		im.lastMouseY = y
		im.resync = false
	}
	im.deltaX = int(gomath.Round(x - im.lastMouseX))
	im.deltaY = int(gomath.Round(y - im.lastMouseY))
	im.lastMouseX = x
	im.lastMouseY = y

	im.scroll = float32(im.pendingScroll)
	im.pendingScroll = 0

	copy(im.mouseButtonsPrev[:], im.mouseButtons[:])
	for b := range im.mouseButtons {
		im.mouseButtons[b] = im.source.IsMouseButtonPressed(b)
	}

	for _, k := range im.tracked {
		im.keysPrev[k] = im.keys[k]
		im.keys[k] = im.source.IsKeyPressed(k)
	}
}

// GetKey answers for tracked keys only; untracked keys are never down.
func (im *Manager) GetKey(key int, state State) bool {
	return edge(im.keys[key], im.keysPrev[key], state)
}

func (im *Manager) GetMouseButton(button int, state State) bool {
	if button < 0 || button >= maxMouseButtons {
		return false
	}
	return edge(im.mouseButtons[button], im.mouseButtonsPrev[button], state)
}

func (im *Manager) GetMousePositionDelta() (int, int) {
	return im.deltaX, im.deltaY
}

func (im *Manager) GetMouseScroll() float32 {
	return im.scroll
}

// GetMovementVector maps A/D to x, W/S to y and Space/LeftControl to z.
func (im *Manager) GetMovementVector() math.Vec3 {
	return math.Vec3{
		X: axis(im.keys[core.KeyD], im.keys[core.KeyA]),
		Y: axis(im.keys[core.KeyW], im.keys[core.KeyS]),
		Z: axis(im.keys[core.KeySpace], im.keys[core.KeyLeftControl]),
	}
}

// ConfigureMouseMode captures or releases the cursor. Switching modes
// discards the next cursor delta so the jump is not read as motion.
func (im *Manager) ConfigureMouseMode(mode MouseMode) {
	if mode == im.mode {
		return
	}
	im.mode = mode
	im.source.SetCursorCaptured(mode == MouseCaptured)
	im.resync = true
}

func (im *Manager) MouseMode() MouseMode {
	return im.mode
}

func edge(now, prev bool, state State) bool {
	switch state {
	case Down:
		return now && !prev
	case Up:
		return !now && prev
	default:
		return now
	}
}

func axis(positive, negative bool) float32 {
	var v float32
	if positive {
		v++
	}
	if negative {
		v--
	}
	return v
}
