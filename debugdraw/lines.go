// Package debugdraw collects colored line segments each frame and draws them
// over the scene.
package debugdraw

import (
	"juliette/core"
	"juliette/internal/opengl"
	"juliette/math"
)

// Vertex is one end of a line segment.
type Vertex = opengl.LineVertex

// Lines is the CPU-side segment list for one frame. Segments past Max
// vertices are dropped and counted.
type Lines struct {
	Vertices []Vertex
	Max      int
	Dropped  int
}

func NewLines(maxVertices int) *Lines {
	return &Lines{Vertices: make([]Vertex, 0, maxVertices), Max: maxVertices}
}

func (l *Lines) Reset() {
	l.Vertices = l.Vertices[:0]
	l.Dropped = 0
}

func (l *Lines) AddLine(a, b math.Vec3, color core.Color) {
	if len(l.Vertices)+2 > l.Max {
		l.Dropped++
		return
	}
	l.Vertices = append(l.Vertices, Vertex{Position: a, Color: color}, Vertex{Position: b, Color: color})
}

// boxEdges indexes the 12 edges of a box into its 8 corners, where bit 0, 1
// and 2 of a corner index select +X, +Y and +Z.
var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// AddBox outlines an axis-aligned box. The box is all or nothing: if its 12
// edges do not fit, none are added.
func (l *Lines) AddBox(center, size math.Vec3, color core.Color) {
	if len(l.Vertices)+24 > l.Max {
		l.Dropped += 12
		return
	}
	half := size.Mul(0.5)
	var corners [8]math.Vec3
	for i := range corners {
		c := center.Sub(half)
		if i&1 != 0 {
			c.X += size.X
		}
		if i&2 != 0 {
			c.Y += size.Y
		}
		if i&4 != 0 {
			c.Z += size.Z
		}
		corners[i] = c
	}
	for _, e := range boxEdges {
		l.AddLine(corners[e[0]], corners[e[1]], color)
	}
}
