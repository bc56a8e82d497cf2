package scene

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"juliette/core"
	"juliette/log"
	"juliette/math"
)

var logger = log.New("scene")

// LoadModelGLTF opens a .glb or .gltf file and flattens every mesh reachable
// from the default scene into one Model.
func LoadModelGLTF(name, path string, offsets Offsets) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	return CreateModelGLTF(name, doc, offsets)
}

// CreateModelGLTF flattens an already-decoded glTF document. Node transforms
// are baked into the vertices and each primitive's base color factor becomes
// its vertex color.
func CreateModelGLTF(name string, doc *gltf.Document, offsets Offsets) (*Model, error) {
	b := &gltfBuilder{doc: doc}

	for _, root := range gltfRoots(doc) {
		if err := b.visit(root, math.Mat4Identity(), 0); err != nil {
			return nil, fmt.Errorf("gltf %q: %w", name, err)
		}
	}
	if len(b.indices) == 0 {
		return nil, fmt.Errorf("gltf %q: no triangles", name)
	}

	return NewModel(name, b.vertices, b.indices, b.material(), offsets), nil
}

type gltfBuilder struct {
	doc      *gltf.Document
	vertices []core.Vertex
	indices  []uint32
	firstMat *int
}

const maxNodeDepth = 64

func (b *gltfBuilder) visit(nodeIdx int, parent math.Mat4, depth int) error {
	if depth > maxNodeDepth {
		return fmt.Errorf("node hierarchy deeper than %d", maxNodeDepth)
	}
	if nodeIdx < 0 || nodeIdx >= len(b.doc.Nodes) {
		return fmt.Errorf("node %d out of range", nodeIdx)
	}
	n := b.doc.Nodes[nodeIdx]

	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	local := math.Mat4TRSQuat(
		math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])},
		[4]float32{float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3])},
		math.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])},
	)
	world := parent.Mul4(local)

	if n.Mesh != nil && *n.Mesh >= 0 && *n.Mesh < len(b.doc.Meshes) {
		for pi, prim := range b.doc.Meshes[*n.Mesh].Primitives {
			if err := b.appendPrimitive(prim, world); err != nil {
				return fmt.Errorf("mesh %d primitive %d: %w", *n.Mesh, pi, err)
			}
		}
	}
	for _, child := range n.Children {
		if err := b.visit(child, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (b *gltfBuilder) appendPrimitive(prim *gltf.Primitive, world math.Mat4) error {
	if prim.Mode != gltf.PrimitiveTriangles {
		logger.Warningf("skipping non-triangle primitive (mode %d)", prim.Mode)
		return nil
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return fmt.Errorf("no POSITION attribute")
	}
	acr, err := b.accessor(posIdx)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}
	positions, err := modeler.ReadPosition(b.doc, acr, nil)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		acr, err := b.accessor(idx)
		if err == nil {
			normals, err = modeler.ReadNormal(b.doc, acr, nil)
		}
		if err != nil {
			return fmt.Errorf("normals: %w", err)
		}
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		acr, err := b.accessor(idx)
		if err == nil {
			uvs, err = modeler.ReadTextureCoord(b.doc, acr, nil)
		}
		if err != nil {
			return fmt.Errorf("texture coordinates: %w", err)
		}
	}

	color := core.ColorWhite
	if prim.Material != nil && *prim.Material >= 0 && *prim.Material < len(b.doc.Materials) {
		if b.firstMat == nil {
			b.firstMat = prim.Material
		}
		if pbr := b.doc.Materials[*prim.Material].PBRMetallicRoughness; pbr != nil {
			cf := pbr.BaseColorFactorOrDefault()
			color = core.Color{R: float32(cf[0]), G: float32(cf[1]), B: float32(cf[2]), A: float32(cf[3])}
		}
	}

	base := uint32(len(b.vertices))
	for i, p := range positions {
		v := core.Vertex{
			Position: math.TransformPoint(world, math.Vec3{X: p[0], Y: p[1], Z: p[2]}),
			Normal:   math.Vec3Up,
			Color:    color,
		}
		if i < len(normals) {
			n := normals[i]
			v.Normal = math.TransformDirection(world, math.Vec3{X: n[0], Y: n[1], Z: n[2]})
		}
		if i < len(uvs) {
			v.UV = math.Vec2{X: uvs[i][0], Y: uvs[i][1]}
		}
		b.vertices = append(b.vertices, v)
	}

	if prim.Indices == nil {
		for i := range positions {
			b.indices = append(b.indices, base+uint32(i))
		}
		return nil
	}
	acr, err = b.accessor(*prim.Indices)
	if err != nil {
		return fmt.Errorf("indices: %w", err)
	}
	indices, err := modeler.ReadIndices(b.doc, acr, nil)
	if err != nil {
		return fmt.Errorf("indices: %w", err)
	}
	for _, idx := range indices {
		if int(idx) >= len(positions) {
			return fmt.Errorf("index %d out of range", idx)
		}
		b.indices = append(b.indices, base+idx)
	}
	return nil
}

func (b *gltfBuilder) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return b.doc.Accessors[idx], nil
}

// material converts the first referenced glTF material, including an
// embedded base color texture when present.
func (b *gltfBuilder) material() *Material {
	mat := DefaultMaterial()
	if b.firstMat == nil {
		return mat
	}
	gm := b.doc.Materials[*b.firstMat]
	mat.Name = gm.Name

	pbr := gm.PBRMetallicRoughness
	if pbr == nil {
		return mat
	}
	cf := pbr.BaseColorFactorOrDefault()
	mat.Diffuse = core.Color{R: float32(cf[0]), G: float32(cf[1]), B: float32(cf[2]), A: float32(cf[3])}
	mat.Opacity = float32(cf[3])

	// Roughness maps to shininess, metallic to specular intensity.
	roughness := float32(pbr.RoughnessFactorOrDefault())
	metallic := float32(pbr.MetallicFactorOrDefault())
	mat.Shininess = (1-roughness)*(1-roughness)*128 + 1
	shine := metallic * 0.7
	mat.Specular = core.Color{R: shine, G: shine, B: shine, A: 1}

	if pbr.BaseColorTexture != nil {
		tex, err := b.embeddedTexture(pbr.BaseColorTexture.Index)
		if err != nil {
			logger.Warningf("material %q: %v", gm.Name, err)
		} else {
			mat.Texture = tex
		}
	}
	return mat
}

func (b *gltfBuilder) embeddedTexture(texIdx int) (*Texture, error) {
	if texIdx < 0 || texIdx >= len(b.doc.Textures) || b.doc.Textures[texIdx].Source == nil {
		return nil, fmt.Errorf("texture %d has no image", texIdx)
	}
	src := *b.doc.Textures[texIdx].Source
	if src < 0 || src >= len(b.doc.Images) {
		return nil, fmt.Errorf("texture %d: image %d out of range", texIdx, src)
	}
	img := b.doc.Images[src]
	if img.BufferView == nil {
		return nil, fmt.Errorf("texture %d is not embedded", texIdx)
	}
	if *img.BufferView < 0 || *img.BufferView >= len(b.doc.BufferViews) {
		return nil, fmt.Errorf("texture %d: buffer view %d out of range", texIdx, *img.BufferView)
	}
	raw, err := modeler.ReadBufferView(b.doc, b.doc.BufferViews[*img.BufferView])
	if err != nil {
		return nil, fmt.Errorf("texture %d: %w", texIdx, err)
	}
	decoded, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("texture %d decode: %w", texIdx, err)
	}
	name := img.Name
	if name == "" {
		name = fmt.Sprintf("gltf_img_%d", src)
	}
	return NewTextureFromImage(name, decoded), nil
}

// gltfRoots returns the nodes of the default scene, or every parentless node.
func gltfRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}
