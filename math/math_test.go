package math

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.0001
}

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	result := v1.Add(v2)
	expected := NewVec3(5, 7, 9)
	if result != expected {
		t.Errorf("Add: expected %v, got %v", expected, result)
	}

	result = v2.Sub(v1)
	expected = NewVec3(3, 3, 3)
	if result != expected {
		t.Errorf("Sub: expected %v, got %v", expected, result)
	}

	result = v1.Mul(2)
	expected = NewVec3(2, 4, 6)
	if result != expected {
		t.Errorf("Mul: expected %v, got %v", expected, result)
	}

	dot := v1.Dot(v2)
	if dot != 32 {
		t.Errorf("Dot: expected 32, got %v", dot)
	}

	// Right x Up = Front in a right-handed system
	cross := Vec3Right.Cross(Vec3Up)
	if cross != Vec3Front {
		t.Errorf("Cross: expected %v, got %v", Vec3Front, cross)
	}
}

func TestVec3Normalize(t *testing.T) {
	normalized := NewVec3(3, 0, 0).Normalize()
	if normalized != NewVec3(1, 0, 0) {
		t.Errorf("Normalize: expected (1,0,0), got %v", normalized)
	}
	if !approx(normalized.Length(), 1) {
		t.Errorf("Normalize: expected length 1, got %v", normalized.Length())
	}

	// The zero vector must come back untouched, not NaN.
	if z := Vec3Zero.Normalize(); z != Vec3Zero {
		t.Errorf("Normalize(zero): expected zero, got %v", z)
	}
}

func TestVec3InBounds(t *testing.T) {
	if !NewVec3(-10, 10, 0).InBounds(10) {
		t.Error("InBounds: edges should be inside")
	}
	if NewVec3(0, 10.01, 0).InBounds(10) {
		t.Error("InBounds: 10.01 should be outside")
	}
}

func TestDegreeTrig(t *testing.T) {
	if !approx(Cos(0), 1) || !approx(Sin(90), 1) || !approx(Cos(180), -1) {
		t.Errorf("degree trig: cos0=%v sin90=%v cos180=%v", Cos(0), Sin(90), Cos(180))
	}
}

func TestClamp(t *testing.T) {
	cases := []struct{ in, want float32 }{
		{-200, -89}, {200, 89}, {12.5, 12.5}, {-89, -89},
	}
	for _, c := range cases {
		if got := Clamp(c.in, -89, 89); got != c.want {
			t.Errorf("Clamp(%v): expected %v, got %v", c.in, c.want, got)
		}
	}
}

func TestDirection(t *testing.T) {
	d := Direction(0, 0)
	if !approx(d.X, 1) || !approx(d.Y, 0) || !approx(d.Z, 0) {
		t.Errorf("Direction(0,0): expected +X, got %v", d)
	}
	d = Direction(0, 90)
	if !approx(d.X, 0) || !approx(d.Z, 1) {
		t.Errorf("Direction(0,90): expected +Z, got %v", d)
	}
	d = Direction(89, 0)
	if d.Y < 0.99 || !approx(d.Length(), 1) {
		t.Errorf("Direction(89,0): expected nearly straight up, got %v", d)
	}
}

func TestMat4TRSQuat(t *testing.T) {
	// 90 degrees about Y as a quaternion.
	s := float32(math.Sqrt2 / 2)
	m := Mat4TRSQuat(NewVec3(0, 1, 0), [4]float32{0, s, 0, s}, NewVec3N(2))
	p := TransformPoint(m, Vec3Right)
	if !approx(p.X, 0) || !approx(p.Y, 1) || !approx(p.Z, -2) {
		t.Errorf("TRSQuat: expected (0,1,-2), got %v", p)
	}

	n := TransformDirection(m, Vec3Right)
	if !approx(n.Length(), 1) {
		t.Errorf("TransformDirection: expected unit length, got %v", n.Length())
	}
}

func TestMat4TRSTranslation(t *testing.T) {
	m := Mat4TRS(NewVec3(1, 2, 3), Vec3Zero, Vec3One)
	p := TransformPoint(m, Vec3Zero)
	if p != NewVec3(1, 2, 3) {
		t.Errorf("TRS: expected (1,2,3), got %v", p)
	}
}

func TestMat4RotationYaw(t *testing.T) {
	// 90 degrees of yaw turns +X into -Z
	p := TransformPoint(Mat4Rotation(NewVec3(0, 90, 0)), Vec3Right)
	if !approx(p.X, 0) || !approx(p.Y, 0) || !approx(p.Z, -1) {
		t.Errorf("Rotation: expected approximately (0,0,-1), got %v", p)
	}
}

func TestMat4LookAt(t *testing.T) {
	eye := NewVec3(0, 0, 5)
	m := Mat4LookAt(eye, Vec3Zero, Vec3Up)

	// The view matrix should transform the eye position to origin
	p := TransformPoint(m, eye)
	if !approx(p.X, 0) || !approx(p.Y, 0) || !approx(p.Z, 0) {
		t.Errorf("LookAt: expected eye to transform to origin, got %v", p)
	}
}

func TestMat4Projections(t *testing.T) {
	m := Mat4Perspective(45, 16.0/9.0, 0.1, 100)
	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective: expected non-zero X/Y scale")
	}

	o := Mat4Orthographic(5, 2, 0.1, 100)
	if !approx(o[0], 0.1) || !approx(o[5], 0.2) {
		t.Errorf("Orthographic: expected scale (0.1, 0.2), got (%v, %v)", o[0], o[5])
	}
}

func BenchmarkVec3Add(b *testing.B) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	for i := 0; i < b.N; i++ {
		_ = v1.Add(v2)
	}
}

func BenchmarkMat4TRS(b *testing.B) {
	pos := NewVec3(1, 2, 3)
	rot := NewVec3(10, 20, 30)

	for i := 0; i < b.N; i++ {
		_ = Mat4TRS(pos, rot, Vec3One)
	}
}
