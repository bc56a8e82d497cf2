package debugdraw

import (
	"fmt"

	"juliette/core"
	"juliette/internal/opengl"
	"juliette/log"
	"juliette/math"
)

var logger = log.New("debugdraw")

// Renderer draws the accumulated lines with its own shader program.
type Renderer struct {
	lines   *Lines
	program *opengl.Program
	buffer  *opengl.LineBuffer
}

// New compiles the line shaders and allocates room for maxVertices.
// GL must already be initialized.
func New(vertexSrc, fragmentSrc string, maxVertices int) (*Renderer, error) {
	prog, err := opengl.NewProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("debug shader: %w", err)
	}
	return &Renderer{
		lines:   NewLines(maxVertices),
		program: prog,
		buffer:  opengl.NewLineBuffer(maxVertices),
	}, nil
}

func (r *Renderer) StartRendering() {
	r.lines.Reset()
}

func (r *Renderer) DrawBoxLines(center, size math.Vec3, color core.Color) {
	r.lines.AddBox(center, size, color)
}

func (r *Renderer) DrawGrid(size float32, divisions int, y float32) {
	r.lines.AddGrid(size, divisions, y)
}

// FinishRendering uploads this frame's lines and draws them.
func (r *Renderer) FinishRendering(projection, view math.Mat4) {
	if r.lines.Dropped > 0 {
		logger.Debugf("dropped %d lines over capacity %d", r.lines.Dropped, r.lines.Max)
	}
	r.program.Use()
	r.program.SetMat4("projection", projection)
	r.program.SetMat4("view", view)
	r.buffer.Draw(r.lines.Vertices)
}

func (r *Renderer) Terminate() {
	r.buffer.Delete()
	r.program.Delete()
}
