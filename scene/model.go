package scene

import (
	"juliette/core"
	"juliette/math"
)

// Offsets are applied to a model's vertices once, when it is built.
// Rotation is in Euler degrees.
type Offsets struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
}

func NoOffsets() Offsets {
	return Offsets{Scale: math.Vec3One}
}

// Bounds is an axis-aligned box in model space.
type Bounds struct {
	Min, Max math.Vec3
}

func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Model holds CPU-side geometry shared by every instance of a batch.
// GPU upload is managed by the renderer backend.
type Model struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32
	Material *Material
	Bounds   Bounds

	// GPUData is set by the renderer backend (e.g. *opengl.GPUMesh).
	GPUData interface{}
}

// NewModel applies offsets to the vertices and computes the model bounds.
func NewModel(name string, vertices []core.Vertex, indices []uint32, material *Material, offsets Offsets) *Model {
	if material == nil {
		material = DefaultMaterial()
	}
	applyOffsets(vertices, offsets)

	m := &Model{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
		Material: material,
	}
	if len(vertices) > 0 {
		m.Bounds = computeBounds(vertices)
	}
	return m
}

func (m *Model) VertexCount() int {
	return len(m.Vertices)
}

func (m *Model) FaceCount() int {
	return len(m.Indices) / 3
}

func applyOffsets(vertices []core.Vertex, o Offsets) {
	if o == (Offsets{}) || o == NoOffsets() {
		return
	}
	if o.Scale == math.Vec3Zero {
		o.Scale = math.Vec3One
	}
	trs := math.Mat4TRS(o.Position, o.Rotation, o.Scale)
	rot := math.Mat4Rotation(o.Rotation)
	for i := range vertices {
		vertices[i].Position = math.TransformPoint(trs, vertices[i].Position)
		vertices[i].Normal = math.TransformDirection(rot, vertices[i].Normal)
	}
}

func computeBounds(vertices []core.Vertex) Bounds {
	min := vertices[0].Position
	max := vertices[0].Position
	for _, v := range vertices[1:] {
		p := v.Position
		min = math.Vec3{X: minf(min.X, p.X), Y: minf(min.Y, p.Y), Z: minf(min.Z, p.Z)}
		max = math.Vec3{X: maxf(max.X, p.X), Y: maxf(max.Y, p.Y), Z: maxf(max.Z, p.Z)}
	}
	return Bounds{Min: min, Max: max}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// CreateCubeModel builds a unit-normal cube of the given edge length with
// vertices colored by the material's diffuse color.
func CreateCubeModel(name string, size float32, material *Material) *Model {
	if material == nil {
		material = DefaultMaterial()
	}
	s := size / 2

	faces := []struct {
		normal  math.Vec3
		corners [4]math.Vec3
	}{
		{math.Vec3Front, [4]math.Vec3{{X: -s, Y: -s, Z: s}, {X: s, Y: -s, Z: s}, {X: s, Y: s, Z: s}, {X: -s, Y: s, Z: s}}},
		{math.Vec3Back, [4]math.Vec3{{X: s, Y: -s, Z: -s}, {X: -s, Y: -s, Z: -s}, {X: -s, Y: s, Z: -s}, {X: s, Y: s, Z: -s}}},
		{math.Vec3Up, [4]math.Vec3{{X: -s, Y: s, Z: s}, {X: s, Y: s, Z: s}, {X: s, Y: s, Z: -s}, {X: -s, Y: s, Z: -s}}},
		{math.Vec3Down, [4]math.Vec3{{X: -s, Y: -s, Z: -s}, {X: s, Y: -s, Z: -s}, {X: s, Y: -s, Z: s}, {X: -s, Y: -s, Z: s}}},
		{math.Vec3Right, [4]math.Vec3{{X: s, Y: -s, Z: s}, {X: s, Y: -s, Z: -s}, {X: s, Y: s, Z: -s}, {X: s, Y: s, Z: s}}},
		{math.Vec3Left, [4]math.Vec3{{X: -s, Y: -s, Z: -s}, {X: -s, Y: -s, Z: s}, {X: -s, Y: s, Z: s}, {X: -s, Y: s, Z: -s}}},
	}
	uvs := [4]math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}

	vertices := make([]core.Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(vertices))
		for i, c := range f.corners {
			vertices = append(vertices, core.Vertex{
				Position: c,
				Normal:   f.normal,
				UV:       uvs[i],
				Color:    material.Diffuse,
			})
		}
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}

	return NewModel(name, vertices, indices, material, NoOffsets())
}
