package scene

import (
	"juliette/entity"
	"juliette/math"
)

// Camera is a projection attached to an entity. The entity's position and
// rotation (pitch X, yaw Y, degrees) drive the view matrix.
type Camera struct {
	Slot entity.Slot

	IsPerspective bool
	// Size is the vertical field of view in degrees for a perspective
	// camera and the vertical half-extent for an orthographic one.
	Size          float32
	NearClipPlane float32
	FarClipPlane  float32
	AspectRatio   float32
}

func NewCamera(slot entity.Slot) *Camera {
	return &Camera{
		Slot:          slot,
		IsPerspective: true,
		Size:          90,
		NearClipPlane: 0.1,
		FarClipPlane:  1000,
		AspectRatio:   16.0 / 9.0,
	}
}

func (c *Camera) UpdateAspectRatio(width, height float32) {
	if height > 0 {
		c.AspectRatio = width / height
	}
}

func (c *Camera) ViewMatrix(e *entity.Entity) math.Mat4 {
	forward := math.Direction(e.Rotation.X, e.Rotation.Y)
	return math.Mat4LookAt(e.Position, e.Position.Add(forward), math.Vec3Up)
}

func (c *Camera) ProjectionMatrix() math.Mat4 {
	if c.IsPerspective {
		return math.Mat4Perspective(c.Size, c.AspectRatio, c.NearClipPlane, c.FarClipPlane)
	}
	return math.Mat4Orthographic(c.Size, c.AspectRatio, c.NearClipPlane, c.FarClipPlane)
}
