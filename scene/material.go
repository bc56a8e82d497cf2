package scene

import (
	"bufio"
	"fmt"
	gomath "math"
	"strconv"
	"strings"

	"juliette/core"
)

// Material describes the surface of a model. Diffuse is baked into vertex
// colors at model build time; Texture, when set, is sampled on top.
type Material struct {
	Name      string
	Diffuse   core.Color
	Specular  core.Color
	Shininess float32
	Opacity   float32
	Texture   *Texture
}

// DefaultMaterial returns a plain white matte material.
func DefaultMaterial() *Material {
	return &Material{
		Name:      "Default",
		Diffuse:   core.ColorWhite,
		Specular:  core.Color{R: 0.3, G: 0.3, B: 0.3, A: 1},
		Shininess: 32,
		Opacity:   1,
	}
}

// Materials is an ordered material library.
type Materials []*Material

// Lookup returns the material called name, or nil.
func (m Materials) Lookup(name string) *Material {
	for _, mat := range m {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}

// CreateMaterialsFromFile parses MTL text. Only the first lineCount lines
// are read; zero reads everything.
func CreateMaterialsFromFile(text string, lineCount int) (Materials, error) {
	var mats Materials
	var cur *Material

	err := eachLine(text, lineCount, func(n int, fields []string) error {
		switch fields[0] {
		case "newmtl":
			if len(fields) < 2 {
				return fmt.Errorf("line %d: newmtl without a name", n)
			}
			cur = DefaultMaterial()
			cur.Name = fields[1]
			mats = append(mats, cur)
		case "Kd", "Ks":
			if cur == nil {
				return fmt.Errorf("line %d: %s before newmtl", n, fields[0])
			}
			c, err := parseColor(fields)
			if err != nil {
				return fmt.Errorf("line %d: %w", n, err)
			}
			if fields[0] == "Kd" {
				c.A = cur.Diffuse.A
				cur.Diffuse = c
			} else {
				cur.Specular = c
			}
		case "Ns":
			if cur == nil || len(fields) < 2 {
				return fmt.Errorf("line %d: malformed Ns", n)
			}
			ns, err := strconv.ParseFloat(fields[1], 32)
			if err != nil {
				return fmt.Errorf("line %d: %w", n, err)
			}
			cur.Shininess = float32(gomath.Max(1, ns))
		case "d":
			if cur == nil || len(fields) < 2 {
				return fmt.Errorf("line %d: malformed d", n)
			}
			d, err := strconv.ParseFloat(fields[1], 32)
			if err != nil {
				return fmt.Errorf("line %d: %w", n, err)
			}
			cur.Opacity = float32(d)
			cur.Diffuse.A = float32(d)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse materials: %w", err)
	}
	if len(mats) == 0 {
		return nil, fmt.Errorf("parse materials: no newmtl entries")
	}
	return mats, nil
}

// CreateMaterialsWithTexture parses MTL text and attaches one texture built
// from raw pixel data to every material.
func CreateMaterialsWithTexture(text string, lineCount int, data []byte, width, height, channels int) (Materials, error) {
	mats, err := CreateMaterialsFromFile(text, lineCount)
	if err != nil {
		return nil, err
	}
	tex, err := NewTexture(mats[0].Name, data, width, height, channels)
	if err != nil {
		return nil, fmt.Errorf("material texture: %w", err)
	}
	for _, m := range mats {
		m.Texture = tex
	}
	return mats, nil
}

func parseColor(fields []string) (core.Color, error) {
	if len(fields) < 4 {
		return core.Color{}, fmt.Errorf("%s needs three components", fields[0])
	}
	var rgb [3]float32
	for i := range rgb {
		f, err := strconv.ParseFloat(fields[i+1], 32)
		if err != nil {
			return core.Color{}, err
		}
		rgb[i] = float32(f)
	}
	return core.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: 1}, nil
}

// eachLine calls fn with the fields of every non-blank, non-comment line,
// stopping after limit lines when limit > 0.
func eachLine(text string, limit int, fn func(n int, fields []string) error) error {
	scanner := bufio.NewScanner(strings.NewReader(text))
	for n := 1; scanner.Scan(); n++ {
		if limit > 0 && n > limit {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(n, strings.Fields(line)); err != nil {
			return err
		}
	}
	return scanner.Err()
}
