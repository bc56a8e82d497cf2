// Package renderer draws a scene.Scene with one instanced call per batch.
package renderer

import (
	"errors"
	"fmt"

	"juliette/core"
	"juliette/internal/opengl"
	"juliette/log"
	"juliette/math"
	"juliette/scene"
)

var logger = log.New("renderer")

// ErrNoShaders is returned when drawing before ConfigureShaders succeeded.
var ErrNoShaders = errors.New("renderer shaders not configured")

// FrameStats describes the last rendered frame.
type FrameStats struct {
	DrawCalls int
	Instances int
	Triangles int
}

type Renderer struct {
	window     *core.Window
	program    *opengl.Program
	meshes     *opengl.MeshCache
	maxBatches int

	ClearColor     core.Color
	LightDirection math.Vec3
	Ambient        float32

	stats FrameStats
}

// New loads GL for the window's context. The window must be current.
func New(window *core.Window, maxBatches int) (*Renderer, error) {
	if err := opengl.Init(); err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}
	return &Renderer{
		window:         window,
		meshes:         opengl.NewMeshCache(),
		maxBatches:     maxBatches,
		ClearColor:     core.Color{R: 0.1, G: 0.1, B: 0.12, A: 1},
		LightDirection: math.NewVec3(-0.4, -1, -0.3).Normalize(),
		Ambient:        0.25,
	}, nil
}

// ConfigureShaders compiles the scene program, replacing any previous one.
func (r *Renderer) ConfigureShaders(vertexSrc, fragmentSrc string) error {
	prog, err := opengl.NewProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return fmt.Errorf("scene shader: %w", err)
	}
	if r.program != nil {
		r.program.Delete()
	}
	r.program = prog
	return nil
}

// StartRendering sizes the viewport to the framebuffer and clears it.
func (r *Renderer) StartRendering() {
	w, h := r.window.GetFramebufferSize()
	opengl.Viewport(w, h)
	opengl.Clear(r.ClearColor)
	r.stats = FrameStats{}
}

// RenderScene issues one instanced draw per non-empty batch. Batches beyond
// maxBatches are skipped.
func (r *Renderer) RenderScene(s *scene.Scene) error {
	if r.program == nil {
		return ErrNoShaders
	}

	r.program.Use()
	r.program.SetMat4("view", s.View)
	r.program.SetMat4("projection", s.Projection)
	r.program.SetVec3("lightDir", r.LightDirection)
	r.program.SetFloat("ambient", r.Ambient)
	r.program.SetInt("albedoTex", 0)

	for i, b := range s.Batches {
		if i >= r.maxBatches {
			logger.Warningf("scene %q has %d batches, drawing the first %d", s.Name, len(s.Batches), r.maxBatches)
			break
		}
		if len(b.Instances) == 0 {
			continue
		}
		gpu := r.meshes.Get(b.Model)
		if gpu == nil {
			continue
		}
		b.GPUData = gpu

		mat := b.Model.Material
		r.program.SetColor("specular", mat.Specular)
		r.program.SetFloat("shininess", mat.Shininess)
		r.program.SetBool("hasTexture", opengl.BindTexture(mat.Texture))

		opengl.DrawInstanced(gpu, b.Instances)

		r.stats.DrawCalls++
		r.stats.Instances += len(b.Instances)
		r.stats.Triangles += b.Model.FaceCount() * len(b.Instances)
	}
	return nil
}

// FinishRendering presents the frame.
func (r *Renderer) FinishRendering() {
	r.window.SwapBuffers()
}

// Terminate releases every GPU resource owned by the renderer.
func (r *Renderer) Terminate() {
	r.meshes.Release()
	if r.program != nil {
		r.program.Delete()
		r.program = nil
	}
	logger.Infof("renderer terminated, last frame: %d draws, %d instances, %d triangles",
		r.stats.DrawCalls, r.stats.Instances, r.stats.Triangles)
}
