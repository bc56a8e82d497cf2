// Package populate fills render batches (and optionally the physics world)
// with entities placed by a policy.
package populate

import (
	"fmt"
	"math/rand/v2"

	"juliette/entity"
	"juliette/math"
	"juliette/physics"
	"juliette/scene"
)

// Placement is the initial state of one spawned entity.
type Placement struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
	Velocity math.Vec3
	Mass     float32
	Static   bool
}

// Policy decides where the i-th entity of a population goes.
type Policy interface {
	Place(i int, rng *rand.Rand) Placement
}

// Fixed places every entity at the same transform as a static body.
type Fixed struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
}

func (f Fixed) Place(int, *rand.Rand) Placement {
	return Placement{
		Position: f.Position,
		Rotation: f.Rotation,
		Scale:    f.Scale,
		Static:   true,
	}
}

// Random scatters dynamic bodies uniformly inside the cube [-Bounds, Bounds].
// A nonzero VelocityLimit gives each body a uniform random initial velocity
// in [-VelocityLimit, VelocityLimit] per axis.
type Random struct {
	Bounds        float32
	Scale         math.Vec3
	Mass          float32
	VelocityLimit float32
}

func (r Random) Place(_ int, rng *rand.Rand) Placement {
	p := Placement{
		Position: uniformVec3(rng, r.Bounds),
		Scale:    r.Scale,
		Mass:     r.Mass,
	}
	if r.VelocityLimit > 0 {
		p.Velocity = uniformVec3(rng, r.VelocityLimit)
	}
	return p
}

func uniform(rng *rand.Rand, limit float32) float32 {
	return (rng.Float32()*2 - 1) * limit
}

func uniformVec3(rng *rand.Rand, limit float32) math.Vec3 {
	return math.Vec3{X: uniform(rng, limit), Y: uniform(rng, limit), Z: uniform(rng, limit)}
}

// NewRand returns a source that yields the same sequence for the same seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Builder spawns entities into a shared arena. Physics may be nil, in which
// case only render components are created.
type Builder struct {
	Entities *entity.Arena
	Physics  *physics.Scene
	Rand     *rand.Rand
}

func NewBuilder(entities *entity.Arena, world *physics.Scene, seed uint64) *Builder {
	return &Builder{Entities: entities, Physics: world, Rand: NewRand(seed)}
}

// Populate creates count entities named name_i, adds each to batch and, when
// a physics world is attached, gives it a body sized to the batch model.
// Render and physics components share the entity's slot.
func (b *Builder) Populate(name string, batch *scene.Batch, count int, policy Policy) ([]entity.Slot, error) {
	slots := make([]entity.Slot, 0, count)
	collider := batch.Model.Bounds.Size()

	for i := 0; i < count; i++ {
		p := policy.Place(i, b.Rand)
		if p.Scale == math.Vec3Zero {
			p.Scale = math.Vec3One
		}

		slot, err := b.Entities.Create(fmt.Sprintf("%s_%d", name, i), p.Position, p.Rotation, p.Scale)
		if err != nil {
			return slots, fmt.Errorf("populate %q: %w", name, err)
		}
		if _, err := batch.CreateComponent(slot); err != nil {
			return slots, fmt.Errorf("populate %q: %w", name, err)
		}

		if b.Physics != nil {
			body, err := b.Physics.CreateComponent(slot, collider, p.Mass, p.Static)
			if err != nil {
				return slots, fmt.Errorf("populate %q: %w", name, err)
			}
			body.Velocity = p.Velocity
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
