package math

type Vec2 struct {
	X, Y float32
}

func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Vec2Int is an integer pair used for window sizes and pixel deltas.
type Vec2Int struct {
	X, Y int
}

func NewVec2Int(x, y int) Vec2Int {
	return Vec2Int{X: x, Y: y}
}
