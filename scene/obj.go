package scene

import (
	"fmt"
	"strconv"
	"strings"

	"juliette/core"
	"juliette/math"
)

// faceVertex holds 0-based position / UV / normal indices (-1 = absent).
type faceVertex struct{ v, vt, vn int }

type objFace struct {
	corners  [3]faceVertex
	material *Material
}

// CreateModel parses Wavefront OBJ text into a single Model. Groups and
// objects are merged; each face takes its vertex color from the material
// active at the time (usemtl); an unknown usemtl keeps the current material.
// Only the first lineCount lines are read; zero reads everything.
func CreateModel(name, text string, lineCount int, materials Materials, offsets Offsets) (*Model, error) {
	var positions []math.Vec3
	var normals []math.Vec3
	var uvs []math.Vec2
	var faces []objFace

	var current *Material
	if len(materials) > 0 {
		current = materials[0]
	}
	primary := current

	err := eachLine(text, lineCount, func(n int, fields []string) error {
		switch fields[0] {
		case "v", "vn":
			p, err := parseVec3(fields)
			if err != nil {
				return fmt.Errorf("line %d: %w", n, err)
			}
			if fields[0] == "v" {
				positions = append(positions, p)
			} else {
				normals = append(normals, p)
			}

		case "vt":
			if len(fields) < 3 {
				return fmt.Errorf("line %d: vt needs two components", n)
			}
			u, err1 := strconv.ParseFloat(fields[1], 32)
			v, err2 := strconv.ParseFloat(fields[2], 32)
			if err1 != nil || err2 != nil {
				return fmt.Errorf("line %d: malformed vt", n)
			}
			uvs = append(uvs, math.Vec2{X: float32(u), Y: float32(v)})

		case "usemtl":
			if len(fields) < 2 {
				return nil
			}
			m := materials.Lookup(fields[1])
			if m == nil {
				logger.Warningf("model %q line %d: unknown material %q, keeping the current one", name, n, fields[1])
				return nil
			}
			if len(faces) == 0 {
				primary = m
			}
			current = m

		case "f":
			if len(fields) < 4 {
				return fmt.Errorf("line %d: face needs at least three vertices", n)
			}
			corners := make([]faceVertex, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				fv, err := parseFaceVertex(tok, len(positions), len(uvs), len(normals))
				if err != nil {
					return fmt.Errorf("line %d: %w", n, err)
				}
				corners = append(corners, fv)
			}
			// Fan triangulation: 0-1-2, 0-2-3, 0-3-4, ...
			for i := 1; i+1 < len(corners); i++ {
				faces = append(faces, objFace{
					corners:  [3]faceVertex{corners[0], corners[i], corners[i+1]},
					material: current,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse model %q: %w", name, err)
	}
	if len(faces) == 0 {
		return nil, fmt.Errorf("parse model %q: no faces", name)
	}

	vertices, indices := buildVertices(faces, positions, normals, uvs)
	if len(normals) == 0 {
		generateNormals(vertices, indices)
	}
	return NewModel(name, vertices, indices, primary, offsets), nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	if len(fields) < 4 {
		return math.Vec3{}, fmt.Errorf("%s needs three components", fields[0])
	}
	var c [3]float32
	for i := range c {
		f, err := strconv.ParseFloat(fields[i+1], 32)
		if err != nil {
			return math.Vec3{}, err
		}
		c[i] = float32(f)
	}
	return math.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}

// parseFaceVertex parses "v", "v/vt", "v//vn" or "v/vt/vn". Negative indices
// are relative to the end of the lists read so far.
func parseFaceVertex(tok string, nv, nvt, nvn int) (faceVertex, error) {
	res := faceVertex{v: -1, vt: -1, vn: -1}
	parts := strings.Split(tok, "/")
	targets := []*int{&res.v, &res.vt, &res.vn}
	counts := []int{nv, nvt, nvn}

	for i := 0; i < len(parts) && i < 3; i++ {
		if parts[i] == "" {
			continue
		}
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return res, fmt.Errorf("face index %q: %w", tok, err)
		}
		idx := n - 1
		if n < 0 {
			idx = counts[i] + n
		}
		if idx < 0 || idx >= counts[i] {
			return res, fmt.Errorf("face index %q out of range", tok)
		}
		*targets[i] = idx
	}
	if res.v < 0 {
		return res, fmt.Errorf("face vertex %q has no position", tok)
	}
	return res, nil
}

// buildVertices deduplicates face corners into an indexed vertex list.
func buildVertices(faces []objFace, positions, normals []math.Vec3, uvs []math.Vec2) ([]core.Vertex, []uint32) {
	type key struct {
		fv  faceVertex
		mat *Material
	}
	seen := map[key]uint32{}
	var vertices []core.Vertex
	indices := make([]uint32, 0, len(faces)*3)

	for _, f := range faces {
		color := core.ColorWhite
		if f.material != nil {
			color = f.material.Diffuse
		}
		for _, c := range f.corners {
			k := key{c, f.material}
			if idx, ok := seen[k]; ok {
				indices = append(indices, idx)
				continue
			}
			v := core.Vertex{Position: positions[c.v], Normal: math.Vec3Up, Color: color}
			if c.vn >= 0 {
				v.Normal = normals[c.vn]
			}
			if c.vt >= 0 {
				v.UV = uvs[c.vt]
			}
			idx := uint32(len(vertices))
			vertices = append(vertices, v)
			seen[k] = idx
			indices = append(indices, idx)
		}
	}
	return vertices, indices
}

// generateNormals computes area-weighted vertex normals.
func generateNormals(vertices []core.Vertex, indices []uint32) {
	accum := make([]math.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		v0 := vertices[i0].Position
		n := vertices[i1].Position.Sub(v0).Cross(vertices[i2].Position.Sub(v0))
		accum[i0] = accum[i0].Add(n)
		accum[i1] = accum[i1].Add(n)
		accum[i2] = accum[i2].Add(n)
	}
	for i := range vertices {
		if accum[i] != math.Vec3Zero {
			vertices[i].Normal = accum[i].Normalize()
		}
	}
}
