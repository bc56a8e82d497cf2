package scene

import "juliette/math"

// Plane is the half-space ax + by + cz + d >= 0; Normal points inside.
type Plane struct {
	Normal math.Vec3
	D      float32
}

// DistanceTo returns the signed distance from pt to the plane, positive
// inside.
func (p Plane) DistanceTo(pt math.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a view frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumFromMatrix extracts normalized planes from a projection*view
// matrix (Gribb/Hartmann). Mat4 is column-major, so row i is
// (m[i], m[4+i], m[8+i], m[12+i]).
func FrustumFromMatrix(vp math.Mat4) Frustum {
	row := func(i int) [4]float32 {
		return [4]float32{vp[i], vp[4+i], vp[8+i], vp[12+i]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	plane := func(a [4]float32, b [4]float32, sign float32) Plane {
		return normalizePlane(
			a[0]+sign*b[0],
			a[1]+sign*b[1],
			a[2]+sign*b[2],
			a[3]+sign*b[3],
		)
	}

	return Frustum{Planes: [6]Plane{
		plane(r3, r0, 1),
		plane(r3, r0, -1),
		plane(r3, r1, 1),
		plane(r3, r1, -1),
		plane(r3, r2, 1),
		plane(r3, r2, -1),
	}}
}

func normalizePlane(a, b, c, d float32) Plane {
	l := math.Vec3{X: a, Y: b, Z: c}.Length()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: math.Vec3{X: a / l, Y: b / l, Z: c / l}, D: d / l}
}

// Intersects returns false only if b lies completely outside f. For each
// plane it tests the corner furthest along the plane normal.
func (b Bounds) Intersects(f *Frustum) bool {
	for i := range f.Planes {
		p := f.Planes[i]
		corner := b.Max
		if p.Normal.X < 0 {
			corner.X = b.Min.X
		}
		if p.Normal.Y < 0 {
			corner.Y = b.Min.Y
		}
		if p.Normal.Z < 0 {
			corner.Z = b.Min.Z
		}
		if p.DistanceTo(corner) < 0 {
			return false
		}
	}
	return true
}

// Transform returns the world-space box enclosing the eight transformed
// corners of b.
func (b Bounds) Transform(m math.Mat4) Bounds {
	mn, mx := b.Min, b.Max
	corners := [8]math.Vec3{
		{X: mn.X, Y: mn.Y, Z: mn.Z},
		{X: mx.X, Y: mn.Y, Z: mn.Z},
		{X: mn.X, Y: mx.Y, Z: mn.Z},
		{X: mx.X, Y: mx.Y, Z: mn.Z},
		{X: mn.X, Y: mn.Y, Z: mx.Z},
		{X: mx.X, Y: mn.Y, Z: mx.Z},
		{X: mn.X, Y: mx.Y, Z: mx.Z},
		{X: mx.X, Y: mx.Y, Z: mx.Z},
	}
	first := math.TransformPoint(m, corners[0])
	out := Bounds{Min: first, Max: first}
	for _, c := range corners[1:] {
		p := math.TransformPoint(m, c)
		out.Min = math.Vec3{X: minf(out.Min.X, p.X), Y: minf(out.Min.Y, p.Y), Z: minf(out.Min.Z, p.Z)}
		out.Max = math.Vec3{X: maxf(out.Max.X, p.X), Y: maxf(out.Max.Y, p.Y), Z: maxf(out.Max.Z, p.Z)}
	}
	return out
}
