package math

import "math"

// Angles throughout the engine are in degrees; these helpers convert at the
// trig boundary.

func Radians(deg float32) float32 {
	return deg * math.Pi / 180
}

func Cos(deg float32) float32 {
	return float32(math.Cos(float64(Radians(deg))))
}

func Sin(deg float32) float32 {
	return float32(math.Sin(float64(Radians(deg))))
}

func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Direction returns the unit forward vector for a pitch (X) and yaw (Y) in
// degrees. Zero pitch and yaw look down +X.
func Direction(pitch, yaw float32) Vec3 {
	return Vec3{
		X: Cos(pitch) * Cos(yaw),
		Y: Sin(pitch),
		Z: Cos(pitch) * Sin(yaw),
	}.Normalize()
}
