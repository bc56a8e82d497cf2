package opengl

import (
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"juliette/core"
	"juliette/math"
)

// LineVertex is one end of a debug line segment.
type LineVertex struct {
	Position math.Vec3
	Color    core.Color
}

// LineBuffer is a fixed-capacity dynamic vertex buffer drawn as GL_LINES.
type LineBuffer struct {
	VAO      uint32
	VBO      uint32
	capacity int
}

func NewLineBuffer(capacity int) *LineBuffer {
	lb := &LineBuffer{capacity: capacity}
	stride := int32(unsafe.Sizeof(LineVertex{}))

	gl.GenVertexArrays(1, &lb.VAO)
	gl.GenBuffers(1, &lb.VBO)
	gl.BindVertexArray(lb.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, lb.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, capacity*int(stride), nil, gl.DYNAMIC_DRAW)

	var v LineVertex
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Position))))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Color))))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return lb
}

// Draw uploads up to capacity vertices and draws them as line pairs.
func (lb *LineBuffer) Draw(vertices []LineVertex) {
	n := len(vertices)
	if n > lb.capacity {
		n = lb.capacity
	}
	n -= n % 2
	if n == 0 {
		return
	}
	stride := int(unsafe.Sizeof(LineVertex{}))

	gl.BindBuffer(gl.ARRAY_BUFFER, lb.VBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, n*stride, gl.Ptr(vertices))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.Disable(gl.CULL_FACE)
	gl.BindVertexArray(lb.VAO)
	gl.DrawArrays(gl.LINES, 0, int32(n))
	gl.BindVertexArray(0)
}

func (lb *LineBuffer) Delete() {
	gl.DeleteVertexArrays(1, &lb.VAO)
	gl.DeleteBuffers(1, &lb.VBO)
}
