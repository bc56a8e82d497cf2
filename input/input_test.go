package input

import (
	"testing"

	"juliette/core"
	"juliette/math"
)

type fakeSource struct {
	keys     map[int]bool
	buttons  map[int]bool
	x, y     float64
	scroll   core.ScrollCallback
	captured bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{keys: map[int]bool{}, buttons: map[int]bool{}}
}

func (f *fakeSource) IsKeyPressed(key int) bool                { return f.keys[key] }
func (f *fakeSource) IsMouseButtonPressed(button int) bool     { return f.buttons[button] }
func (f *fakeSource) GetCursorPos() (float64, float64)         { return f.x, f.y }
func (f *fakeSource) SetScrollCallback(cb core.ScrollCallback) { f.scroll = cb }
func (f *fakeSource) SetCursorCaptured(captured bool)          { f.captured = captured }

func TestKeyEdges(t *testing.T) {
	src := newFakeSource()
	im := NewManager(src)

	src.keys[core.KeyF] = true
	im.Update()
	if !im.GetKey(core.KeyF, Down) || !im.GetKey(core.KeyF, Held) {
		t.Error("first pressed frame should report Down and Held")
	}

	im.Update()
	if im.GetKey(core.KeyF, Down) {
		t.Error("Down should fire once per press")
	}
	if !im.GetKey(core.KeyF, Held) {
		t.Error("key should still be held")
	}

	src.keys[core.KeyF] = false
	im.Update()
	if !im.GetKey(core.KeyF, Up) || im.GetKey(core.KeyF, Held) {
		t.Error("release frame should report Up only")
	}
}

func TestMouseButtonEdges(t *testing.T) {
	src := newFakeSource()
	im := NewManager(src)

	src.buttons[core.MouseButtonLeft] = true
	im.Update()
	if !im.GetMouseButton(core.MouseButtonLeft, Down) {
		t.Error("expected Down on press")
	}
	if im.GetMouseButton(99, Held) {
		t.Error("out-of-range button should never be held")
	}
}

func TestMouseDeltaAndScroll(t *testing.T) {
	src := newFakeSource()
	src.x, src.y = 100, 100
	im := NewManager(src)

	im.Update()
	if dx, dy := im.GetMousePositionDelta(); dx != 0 || dy != 0 {
		t.Errorf("first frame delta should be zero, got (%d, %d)", dx, dy)
	}

	src.x, src.y = 110, 95
	src.scroll(0, 2)
	src.scroll(0, 0.5)
	im.Update()
	if dx, dy := im.GetMousePositionDelta(); dx != 10 || dy != -5 {
		t.Errorf("expected delta (10, -5), got (%d, %d)", dx, dy)
	}
	if s := im.GetMouseScroll(); s != 2.5 {
		t.Errorf("expected scroll 2.5, got %v", s)
	}

	im.Update()
	if s := im.GetMouseScroll(); s != 0 {
		t.Errorf("scroll should reset each frame, got %v", s)
	}
}

func TestMovementVector(t *testing.T) {
	src := newFakeSource()
	im := NewManager(src)

	src.keys[core.KeyW] = true
	src.keys[core.KeyA] = true
	src.keys[core.KeySpace] = true
	im.Update()

	want := math.NewVec3(-1, 1, 1)
	if got := im.GetMovementVector(); got != want {
		t.Errorf("expected %v, got %v", want, got)
	}

	src.keys[core.KeyD] = true
	src.keys[core.KeyS] = true
	src.keys[core.KeyLeftControl] = true
	im.Update()
	if got := im.GetMovementVector(); got != math.Vec3Zero {
		t.Errorf("opposing keys should cancel, got %v", got)
	}
}

func TestMouseModeResyncsDelta(t *testing.T) {
	src := newFakeSource()
	im := NewManager(src)
	im.Update()

	im.ConfigureMouseMode(MouseCaptured)
	if !src.captured || im.MouseMode() != MouseCaptured {
		t.Fatal("expected cursor to be captured")
	}

	src.x, src.y = 500, 500
	im.Update()
	if dx, dy := im.GetMousePositionDelta(); dx != 0 || dy != 0 {
		t.Errorf("mode switch should discard the jump, got (%d, %d)", dx, dy)
	}
}
