package scene

import (
	"errors"
	"fmt"

	"juliette/entity"
	"juliette/math"
)

var (
	// ErrTooManyBatches is returned when a scene already holds maxBatches batches.
	ErrTooManyBatches = errors.New("scene batch limit reached")
	// ErrBatchFull is returned when a batch has no room for another instance.
	ErrBatchFull = errors.New("batch is full")
)

// Component is a renderable instance. It owns no transform; it reads the
// entity stored at Slot.
type Component struct {
	Slot entity.Slot
}

// Batch draws every component with the same model in one instanced call.
type Batch struct {
	Name       string
	Model      *Model
	Capacity   int
	Components []Component

	// Instances holds one model matrix per component, rebuilt by Scene.Update.
	Instances []math.Mat4

	// GPUData is set by the renderer backend.
	GPUData interface{}
}

func (b *Batch) CreateComponent(slot entity.Slot) (*Component, error) {
	if len(b.Components) >= b.Capacity {
		return nil, fmt.Errorf("batch %q: %w", b.Name, ErrBatchFull)
	}
	b.Components = append(b.Components, Component{Slot: slot})
	return &b.Components[len(b.Components)-1], nil
}

func (b *Batch) InstanceCount() int {
	return len(b.Components)
}

// Scene groups batches and the main camera over one entity arena.
type Scene struct {
	Name       string
	Entities   *entity.Arena
	Batches    []*Batch
	MaxBatches int
	MainCamera *Camera

	// Culling drops instances whose bounds fall outside the main camera
	// frustum. Culled counts the instances dropped by the last Update.
	Culling bool
	Culled  int

	View       math.Mat4
	Projection math.Mat4
}

func NewScene(name string, entities *entity.Arena, maxBatches int) *Scene {
	return &Scene{
		Name:       name,
		Entities:   entities,
		Batches:    make([]*Batch, 0, maxBatches),
		MaxBatches: maxBatches,
		View:       math.Mat4Identity(),
		Projection: math.Mat4Identity(),
	}
}

func (s *Scene) CreateBatch(name string, model *Model, capacity int) (*Batch, error) {
	if len(s.Batches) >= s.MaxBatches {
		return nil, fmt.Errorf("scene %q: create batch %q: %w", s.Name, name, ErrTooManyBatches)
	}
	if model == nil {
		return nil, fmt.Errorf("scene %q: create batch %q: nil model", s.Name, name)
	}
	b := &Batch{
		Name:       name,
		Model:      model,
		Capacity:   capacity,
		Components: make([]Component, 0, capacity),
		Instances:  make([]math.Mat4, 0, capacity),
	}
	s.Batches = append(s.Batches, b)
	return b, nil
}

func (s *Scene) SetMainCamera(camera *Camera) {
	s.MainCamera = camera
}

// Update refreshes the camera view and projection, then rebuilds the
// instance matrices from the arena.
func (s *Scene) Update() {
	if s.MainCamera != nil {
		s.View = s.MainCamera.ViewMatrix(s.Entities.Get(s.MainCamera.Slot))
		s.Projection = s.MainCamera.ProjectionMatrix()
	}

	var frustum *Frustum
	if s.Culling && s.MainCamera != nil {
		f := FrustumFromMatrix(s.Projection.Mul4(s.View))
		frustum = &f
	}
	s.Culled = 0

	for _, b := range s.Batches {
		b.Instances = b.Instances[:0]
		for _, c := range b.Components {
			e := s.Entities.Get(c.Slot)
			m := math.Mat4TRS(e.Position, e.Rotation, e.Scale)
			if frustum != nil && !b.Model.Bounds.Transform(m).Intersects(frustum) {
				s.Culled++
				continue
			}
			b.Instances = append(b.Instances, m)
		}
	}
}
