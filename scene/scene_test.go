package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"juliette/core"
	"juliette/entity"
	jmath "juliette/math"
)

const cubeMTL = `# two materials
newmtl Red
Kd 1.0 0.0 0.0
Ks 0.5 0.5 0.5
Ns 64
d 0.5

newmtl Blue
Kd 0 0 1
`

const quadOBJ = `o Quad
v -1 -1 0
v  1 -1 0
v  1  1 0
v -1  1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl Red
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.0001
}

func TestCreateMaterialsFromFile(t *testing.T) {
	mats, err := CreateMaterialsFromFile(cubeMTL, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mats) != 2 {
		t.Fatalf("expected 2 materials, got %d", len(mats))
	}

	red := mats.Lookup("Red")
	if red == nil {
		t.Fatal("Red not found")
	}
	if red.Diffuse != (core.Color{R: 1, G: 0, B: 0, A: 0.5}) {
		t.Errorf("unexpected Red diffuse %v", red.Diffuse)
	}
	if red.Shininess != 64 || red.Opacity != 0.5 {
		t.Errorf("unexpected Red shininess/opacity %v/%v", red.Shininess, red.Opacity)
	}
	if mats.Lookup("Green") != nil {
		t.Error("Lookup should miss unknown names")
	}
}

func TestCreateMaterialsLineLimit(t *testing.T) {
	mats, err := CreateMaterialsFromFile(cubeMTL, 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mats) != 1 {
		t.Errorf("expected only the first material, got %d", len(mats))
	}
}

func TestCreateMaterialsErrors(t *testing.T) {
	if _, err := CreateMaterialsFromFile("Kd 1 1 1\n", 0); err == nil {
		t.Error("expected error for Kd before newmtl")
	}
	if _, err := CreateMaterialsFromFile("# empty\n", 0); err == nil {
		t.Error("expected error for a library without materials")
	}
}

func TestCreateMaterialsWithTexture(t *testing.T) {
	rgb := []byte{255, 0, 0, 0, 255, 0}
	mats, err := CreateMaterialsWithTexture(cubeMTL, 0, rgb, 2, 1, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tex := mats[0].Texture
	if tex == nil || mats[1].Texture != tex {
		t.Fatal("expected one shared texture")
	}
	if len(tex.Pixels) != 8 || tex.Pixels[3] != 255 || tex.Pixels[5] != 255 {
		t.Errorf("unexpected RGBA expansion %v", tex.Pixels)
	}

	if _, err := CreateMaterialsWithTexture(cubeMTL, 0, rgb, 4, 4, 3); err == nil {
		t.Error("expected error for short pixel data")
	}
}

func TestNewTextureChannels(t *testing.T) {
	cases := []struct {
		channels int
		data     []byte
		want     []byte
	}{
		{1, []byte{10, 20, 30, 40}, []byte{10, 10, 10, 255, 20, 20, 20, 255}},
		{2, []byte{10, 1, 20, 2, 30, 3, 40, 4}, []byte{10, 10, 10, 1, 20, 20, 20, 2}},
		{3, make([]byte, 12), []byte{0, 0, 0, 255, 0, 0, 0, 255}},
		{4, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}, []byte{1, 2, 3, 4, 5, 6, 7, 8}},
	}
	for _, c := range cases {
		tex, err := NewTexture("t", c.data, 2, 2, c.channels)
		if err != nil {
			t.Fatalf("%d channels: %v", c.channels, err)
		}
		if len(tex.Pixels) != 16 {
			t.Fatalf("%d channels: expected 16 bytes, got %d", c.channels, len(tex.Pixels))
		}
		for i, b := range c.want {
			if tex.Pixels[i] != b {
				t.Errorf("%d channels: expected %v, got %v", c.channels, c.want, tex.Pixels[:len(c.want)])
				break
			}
		}
	}

	if _, err := NewTexture("t", make([]byte, 16), 4, 4, 1); err != nil {
		t.Errorf("a full single-channel buffer should load, got %v", err)
	}
	if _, err := NewTexture("t", make([]byte, 3), 2, 2, 1); err == nil {
		t.Error("expected error for short pixel data")
	}
	if _, err := NewTexture("t", make([]byte, 16), 2, 2, 5); err == nil {
		t.Error("expected error for five channels")
	}
}

func TestCreateModel(t *testing.T) {
	mats, _ := CreateMaterialsFromFile(cubeMTL, 0)
	model, err := CreateModel("quad", quadOBJ, 0, mats, NoOffsets())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if model.VertexCount() != 4 || model.FaceCount() != 2 {
		t.Errorf("expected 4 vertices and 2 faces, got %d and %d", model.VertexCount(), model.FaceCount())
	}
	if model.Material.Name != "Red" {
		t.Errorf("expected Red material, got %q", model.Material.Name)
	}
	if model.Vertices[0].Color.R != 1 {
		t.Errorf("expected baked red vertex color, got %v", model.Vertices[0].Color)
	}
	if model.Bounds.Size() != jmath.NewVec3(2, 2, 0) {
		t.Errorf("unexpected bounds %v", model.Bounds)
	}
}

func TestCreateModelOffsets(t *testing.T) {
	offsets := Offsets{
		Position: jmath.NewVec3(0, 5, 0),
		Scale:    jmath.NewVec3N(2),
	}
	model, err := CreateModel("quad", quadOBJ, 0, nil, offsets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.Bounds.Min != jmath.NewVec3(-2, 3, 0) || model.Bounds.Max != jmath.NewVec3(2, 7, 0) {
		t.Errorf("unexpected bounds after offsets %v", model.Bounds)
	}
	if model.Material.Name != "Default" {
		t.Errorf("expected default material, got %q", model.Material.Name)
	}
}

func TestCreateModelUnknownMaterial(t *testing.T) {
	mats, _ := CreateMaterialsFromFile(cubeMTL, 0)
	obj := "v 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl Red\nusemtl Nope\nf 1 2 3\n"
	model, err := CreateModel("tri", obj, 0, mats, NoOffsets())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.Material.Name != "Red" || model.Vertices[0].Color.R != 1 {
		t.Errorf("expected Red to stay active, got %q %v", model.Material.Name, model.Vertices[0].Color)
	}
}

func TestCreateModelGeneratesNormals(t *testing.T) {
	obj := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	model, err := CreateModel("tri", obj, 0, nil, NoOffsets())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := model.Vertices[0].Normal
	if !approx(n.Z, 1) {
		t.Errorf("expected +Z normal, got %v", n)
	}
}

func TestCreateModelErrors(t *testing.T) {
	cases := map[string]string{
		"no faces":   "v 0 0 0\n",
		"bad index":  "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n",
		"short face": "v 0 0 0\nv 1 0 0\nf 1 2\n",
		"bad vertex": "v 0 zero 0\n",
	}
	for name, obj := range cases {
		if _, err := CreateModel(name, obj, 0, nil, NoOffsets()); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestCreateModelNegativeIndices(t *testing.T) {
	obj := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"
	model, err := CreateModel("tri", obj, 0, nil, NoOffsets())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.Vertices[2].Position != jmath.NewVec3(0, 1, 0) {
		t.Errorf("unexpected vertex %v", model.Vertices[2].Position)
	}
}

func TestCreateCubeModel(t *testing.T) {
	cube := CreateCubeModel("cube", 2, nil)
	if cube.VertexCount() != 24 || cube.FaceCount() != 12 {
		t.Errorf("expected 24 vertices and 12 faces, got %d and %d", cube.VertexCount(), cube.FaceCount())
	}
	if cube.Bounds.Size() != jmath.NewVec3N(2) {
		t.Errorf("unexpected cube bounds %v", cube.Bounds)
	}
}

func TestCreateModelGLTF(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Materials = []*gltf.Material{{
		Name: "Green",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{0, 1, 0, 1},
		},
	}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: gltf.PrimitiveAttributes{gltf.POSITION: pos},
			Material:   gltf.Index(0),
		}},
	}}
	doc.Nodes = []*gltf.Node{
		{Translation: [3]float64{0, 0, 5}, Children: []int{1}},
		{Mesh: gltf.Index(0)},
	}
	doc.Scenes = []*gltf.Scene{{Nodes: []int{0}}}
	doc.Scene = gltf.Index(0)

	model, err := CreateModelGLTF("tri", doc, NoOffsets())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.VertexCount() != 3 || model.FaceCount() != 1 {
		t.Errorf("expected 3 vertices and 1 face, got %d and %d", model.VertexCount(), model.FaceCount())
	}
	if model.Vertices[1].Position != jmath.NewVec3(1, 0, 5) {
		t.Errorf("expected parent translation baked in, got %v", model.Vertices[1].Position)
	}
	if model.Material.Name != "Green" || model.Vertices[0].Color.G != 1 {
		t.Errorf("unexpected material %q color %v", model.Material.Name, model.Vertices[0].Color)
	}
}

func TestCreateModelGLTFMalformed(t *testing.T) {
	build := func(attrs gltf.PrimitiveAttributes, indices *int) *gltf.Document {
		doc := gltf.NewDocument()
		modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
		doc.Meshes = []*gltf.Mesh{{Primitives: []*gltf.Primitive{{Attributes: attrs, Indices: indices}}}}
		doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0)}}
		doc.Scenes = []*gltf.Scene{{Nodes: []int{0}}}
		return doc
	}

	cases := map[string]*gltf.Document{
		"position": build(gltf.PrimitiveAttributes{gltf.POSITION: 7}, nil),
		"normal":   build(gltf.PrimitiveAttributes{gltf.POSITION: 0, gltf.NORMAL: 7}, nil),
		"uv":       build(gltf.PrimitiveAttributes{gltf.POSITION: 0, gltf.TEXCOORD_0: 7}, nil),
		"indices":  build(gltf.PrimitiveAttributes{gltf.POSITION: 0}, gltf.Index(7)),
	}
	for name, doc := range cases {
		if _, err := CreateModelGLTF(name, doc, NoOffsets()); err == nil {
			t.Errorf("%s: expected an out of range accessor to fail", name)
		}
	}
}

func TestSceneBatches(t *testing.T) {
	arena := entity.NewArena(4)
	s := NewScene("test", arena, 1)
	cube := CreateCubeModel("cube", 1, nil)

	b, err := s.CreateBatch("cubes", cube, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.CreateBatch("more", cube, 2); !errors.Is(err, ErrTooManyBatches) {
		t.Errorf("expected ErrTooManyBatches, got %v", err)
	}

	for i := 0; i < 2; i++ {
		slot, _ := arena.Create("c", jmath.NewVec3(float32(i), 0, 0), jmath.Vec3Zero, jmath.Vec3One)
		if _, err := b.CreateComponent(slot); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	slot, _ := arena.Create("c", jmath.Vec3Zero, jmath.Vec3Zero, jmath.Vec3One)
	if _, err := b.CreateComponent(slot); !errors.Is(err, ErrBatchFull) {
		t.Errorf("expected ErrBatchFull, got %v", err)
	}
	if b.InstanceCount() != 2 {
		t.Errorf("expected 2 instances, got %d", b.InstanceCount())
	}
}

func TestSceneUpdateReadsArena(t *testing.T) {
	arena := entity.NewArena(2)
	s := NewScene("test", arena, 1)
	b, _ := s.CreateBatch("cubes", CreateCubeModel("cube", 1, nil), 1)

	slot, _ := arena.Create("c", jmath.Vec3Zero, jmath.Vec3Zero, jmath.Vec3One)
	b.CreateComponent(slot)
	camSlot, _ := arena.Create("camera", jmath.NewVec3(-10, 0, 0), jmath.Vec3Zero, jmath.Vec3One)
	s.SetMainCamera(NewCamera(camSlot))

	// Moving the entity after the component was created must be visible.
	arena.Get(slot).Position = jmath.NewVec3(3, 4, 5)
	s.Update()

	if len(b.Instances) != 1 {
		t.Fatalf("expected 1 instance matrix, got %d", len(b.Instances))
	}
	if p := jmath.TransformPoint(b.Instances[0], jmath.Vec3Zero); p != jmath.NewVec3(3, 4, 5) {
		t.Errorf("expected instance at (3,4,5), got %v", p)
	}

	// Camera at -10 on X looking down +X puts the origin 10 units ahead.
	p := jmath.TransformPoint(s.View, jmath.Vec3Zero)
	if !approx(p.Z, -10) || !approx(p.X, 0) {
		t.Errorf("expected origin at view-space (0,0,-10), got %v", p)
	}
}

func TestCameraProjection(t *testing.T) {
	c := NewCamera(0)
	c.UpdateAspectRatio(1080, 720)
	if !approx(c.AspectRatio, 1.5) {
		t.Errorf("expected aspect 1.5, got %v", c.AspectRatio)
	}
	persp := c.ProjectionMatrix()
	c.IsPerspective = false
	c.Size = 5
	ortho := c.ProjectionMatrix()
	if persp == ortho {
		t.Error("perspective and orthographic projections should differ")
	}
	if ortho[15] != 1 {
		t.Errorf("orthographic projection should be affine, got w=%v", ortho[15])
	}
}

func TestFrustumCulling(t *testing.T) {
	arena := entity.NewArena(5)
	s := NewScene("cull", arena, 1)
	s.Culling = true
	b, _ := s.CreateBatch("cubes", CreateCubeModel("cube", 1, nil), 4)

	for _, pos := range []jmath.Vec3{
		jmath.NewVec3(10, 0, 0),  // ahead
		jmath.NewVec3(-10, 0, 0), // behind
		jmath.NewVec3(10, 50, 0), // above the top plane
		jmath.NewVec3(5, 0, 4),   // ahead, off center
	} {
		slot, _ := arena.Create("c", pos, jmath.Vec3Zero, jmath.Vec3One)
		b.CreateComponent(slot)
	}
	camSlot, _ := arena.Create("camera", jmath.Vec3Zero, jmath.Vec3Zero, jmath.Vec3One)
	s.SetMainCamera(NewCamera(camSlot))

	s.Update()
	if len(b.Instances) != 2 || s.Culled != 2 {
		t.Fatalf("expected 2 drawn and 2 culled, got %d/%d", len(b.Instances), s.Culled)
	}
	if p := jmath.TransformPoint(b.Instances[0], jmath.Vec3Zero); p != jmath.NewVec3(10, 0, 0) {
		t.Errorf("expected the first visible instance at (10,0,0), got %v", p)
	}
	if b.InstanceCount() != 4 {
		t.Errorf("culling must not change the population, got %d", b.InstanceCount())
	}

	s.Culling = false
	s.Update()
	if len(b.Instances) != 4 || s.Culled != 0 {
		t.Errorf("expected every instance without culling, got %d/%d", len(b.Instances), s.Culled)
	}
}

func TestBoundsTransform(t *testing.T) {
	unit := Bounds{Min: jmath.NewVec3N(-0.5), Max: jmath.NewVec3N(0.5)}
	m := jmath.Mat4TRS(jmath.NewVec3(1, 2, 3), jmath.NewVec3(0, 90, 0), jmath.NewVec3(2, 1, 1))
	w := unit.Transform(m)

	// 90 degrees of yaw swaps the X and Z extents.
	size := w.Size()
	if !approx(size.X, 1) || !approx(size.Y, 1) || !approx(size.Z, 2) {
		t.Errorf("expected size (1,1,2), got %v", size)
	}
	center := w.Min.Add(w.Max).Mul(0.5)
	if !approx(center.X, 1) || !approx(center.Y, 2) || !approx(center.Z, 3) {
		t.Errorf("expected center (1,2,3), got %v", center)
	}
}
