package math

import "github.com/go-gl/mathgl/mgl32"

// Mat4 is a column-major 4x4 matrix laid out the way OpenGL expects it.
type Mat4 = mgl32.Mat4

func Mat4Identity() Mat4 {
	return mgl32.Ident4()
}

func (v Vec3) mgl() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// Mat4Perspective builds a projection from a vertical field of view in degrees.
func Mat4Perspective(fovDeg, aspect, near, far float32) Mat4 {
	return mgl32.Perspective(Radians(fovDeg), aspect, near, far)
}

// Mat4Orthographic builds a projection whose vertical half-extent is size.
func Mat4Orthographic(size, aspect, near, far float32) Mat4 {
	return mgl32.Ortho(-size*aspect, size*aspect, -size, size, near, far)
}

func Mat4LookAt(eye, target, up Vec3) Mat4 {
	return mgl32.LookAtV(eye.mgl(), target.mgl(), up.mgl())
}

// Mat4Rotation applies Euler angles in degrees, yaw (Y) then pitch (X) then roll (Z).
func Mat4Rotation(eulerDeg Vec3) Mat4 {
	ry := mgl32.HomogRotate3DY(Radians(eulerDeg.Y))
	rx := mgl32.HomogRotate3DX(Radians(eulerDeg.X))
	rz := mgl32.HomogRotate3DZ(Radians(eulerDeg.Z))
	return ry.Mul4(rx).Mul4(rz)
}

// Mat4TRS composes translation, Euler rotation (degrees) and scale.
func Mat4TRS(translation, rotationDeg, scale Vec3) Mat4 {
	t := mgl32.Translate3D(translation.X, translation.Y, translation.Z)
	s := mgl32.Scale3D(scale.X, scale.Y, scale.Z)
	return t.Mul4(Mat4Rotation(rotationDeg)).Mul4(s)
}

// TransformPoint multiplies p (w = 1) by m.
func TransformPoint(m Mat4, p Vec3) Vec3 {
	r := m.Mul4x1(mgl32.Vec4{p.X, p.Y, p.Z, 1})
	return Vec3{X: r[0], Y: r[1], Z: r[2]}
}

// Mat4TRSQuat composes translation, a unit quaternion (x, y, z, w) and scale.
func Mat4TRSQuat(translation Vec3, q [4]float32, scale Vec3) Mat4 {
	t := mgl32.Translate3D(translation.X, translation.Y, translation.Z)
	r := mgl32.Quat{W: q[3], V: mgl32.Vec3{q[0], q[1], q[2]}}.Normalize().Mat4()
	s := mgl32.Scale3D(scale.X, scale.Y, scale.Z)
	return t.Mul4(r).Mul4(s)
}

// TransformDirection multiplies d (w = 0) by m and renormalizes it.
func TransformDirection(m Mat4, d Vec3) Vec3 {
	r := m.Mul4x1(mgl32.Vec4{d.X, d.Y, d.Z, 0})
	return Vec3{X: r[0], Y: r[1], Z: r[2]}.Normalize()
}
