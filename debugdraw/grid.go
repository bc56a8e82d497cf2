package debugdraw

import (
	"juliette/core"
	"juliette/math"
)

var (
	gridColor  = core.Color{R: 0.35, G: 0.35, B: 0.35, A: 1}
	gridXColor = core.Color{R: 0.8, G: 0.15, B: 0.15, A: 1}
	gridZColor = core.Color{R: 0.15, G: 0.35, B: 0.9, A: 1}
)

// AddGrid lays a square grid of the given extent on the plane y, centered
// on the origin. With an even division count the center lines are the
// world X axis (red) and Z axis (blue).
func (l *Lines) AddGrid(size float32, divisions int, y float32) {
	if divisions < 1 {
		divisions = 1
	}
	half := size / 2
	step := size / float32(divisions)

	for i := 0; i <= divisions; i++ {
		x := -half + float32(i)*step
		c := gridColor
		if i == divisions/2 {
			c = gridZColor
		}
		l.AddLine(math.NewVec3(x, y, -half), math.NewVec3(x, y, half), c)
	}
	for i := 0; i <= divisions; i++ {
		z := -half + float32(i)*step
		c := gridColor
		if i == divisions/2 {
			c = gridXColor
		}
		l.AddLine(math.NewVec3(-half, y, z), math.NewVec3(half, y, z), c)
	}
}
