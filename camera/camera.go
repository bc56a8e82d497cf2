// Package camera drives the main camera entity from per-frame input.
package camera

import (
	"juliette/core"
	"juliette/entity"
	"juliette/input"
	"juliette/math"
	"juliette/scene"
)

const (
	MaxPitch = 89

	MinFieldOfView  = 1
	MaxFieldOfView  = 179
	MinOrthoSize    = 0.1
	DefaultSpeed    = 10
	DefaultRotSpeed = 75
	lookMouseButton = core.MouseButtonLeft
)

// Input is the slice of the input manager the controllers read.
type Input interface {
	GetMouseButton(button int, state input.State) bool
	GetMousePositionDelta() (int, int)
	GetMouseScroll() float32
	GetMovementVector() math.Vec3
	ConfigureMouseMode(mode input.MouseMode)
}

// FreeLook flies the camera entity. Rotation X is pitch and Y is yaw, in
// degrees.
type FreeLook struct {
	Entities      *entity.Arena
	Camera        *scene.Camera
	Speed         float32
	RotationSpeed float32
}

func NewFreeLook(entities *entity.Arena, cam *scene.Camera) *FreeLook {
	return &FreeLook{
		Entities:      entities,
		Camera:        cam,
		Speed:         DefaultSpeed,
		RotationSpeed: DefaultRotSpeed,
	}
}

// Update applies zoom, then mouse look and movement while the look button
// is held.
func (f *FreeLook) Update(in Input, dt float32) {
	f.Zoom(in.GetMouseScroll())

	if !in.GetMouseButton(lookMouseButton, input.Held) {
		in.ConfigureMouseMode(input.MouseNormal)
		return
	}
	in.ConfigureMouseMode(input.MouseCaptured)

	e := f.Entities.Get(f.Camera.Slot)
	dx, dy := in.GetMousePositionDelta()
	f.Look(e, dx, dy, dt)
	f.Move(e, in.GetMovementVector(), dt)
}

// Zoom narrows the view by scroll, clamped to a usable range.
func (f *FreeLook) Zoom(scroll float32) {
	if scroll == 0 {
		return
	}
	size := f.Camera.Size - scroll
	if f.Camera.IsPerspective {
		size = math.Clamp(size, MinFieldOfView, MaxFieldOfView)
	} else if size < MinOrthoSize {
		size = MinOrthoSize
	}
	f.Camera.Size = size
}

func (f *FreeLook) Look(e *entity.Entity, dx, dy int, dt float32) {
	e.Rotation.Y += float32(dx) * f.RotationSpeed * dt
	e.Rotation.X -= float32(dy) * f.RotationSpeed * dt
	e.Rotation.X = math.Clamp(e.Rotation.X, -MaxPitch, MaxPitch)
}

// Move translates along the view direction (y), its right vector (x) and
// world up (z) at Speed units per second.
func (f *FreeLook) Move(e *entity.Entity, mv math.Vec3, dt float32) {
	forward := math.Direction(e.Rotation.X, e.Rotation.Y)
	right := forward.Cross(math.Vec3Up).Normalize()

	move := forward.Mul(mv.Y).Add(right.Mul(mv.X))
	move.Y += mv.Z

	if move.Length() > 0 {
		e.Position = e.Position.Add(move.Normalize().Mul(f.Speed * dt))
	}
}

// Player walks a non-camera entity on the XZ plane while the look button is
// up. It is an alternate scheme enabled by configuration.
type Player struct {
	Entities *entity.Arena
	Slot     entity.Slot
	Speed    float32
}

func (p *Player) Update(in Input, dt float32) {
	if in.GetMouseButton(lookMouseButton, input.Held) {
		return
	}
	mv := in.GetMovementVector()
	e := p.Entities.Get(p.Slot)
	e.Position.X += mv.X * dt * p.Speed
	e.Position.Z -= mv.Y * dt * p.Speed
}
