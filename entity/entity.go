// Package entity owns the transforms shared by render and physics components.
package entity

import (
	"errors"
	"fmt"

	"juliette/math"
)

// ErrArenaFull is returned when an arena has no free slots left.
var ErrArenaFull = errors.New("entity arena is full")

// Slot identifies an entity inside its Arena.
type Slot int

// Entity is a named transform. Rotation is in Euler degrees.
type Entity struct {
	Name     string
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
}

// Arena is a fixed-capacity store of entities. Pointers returned by Get stay
// valid for the arena's lifetime since the backing slice never grows.
type Arena struct {
	entities []Entity
}

func NewArena(capacity int) *Arena {
	return &Arena{entities: make([]Entity, 0, capacity)}
}

// Create appends an entity and returns its slot.
func (a *Arena) Create(name string, position, rotation, scale math.Vec3) (Slot, error) {
	if len(a.entities) == cap(a.entities) {
		return -1, fmt.Errorf("create %q: %w", name, ErrArenaFull)
	}
	a.entities = append(a.entities, Entity{
		Name:     name,
		Position: position,
		Rotation: rotation,
		Scale:    scale,
	})
	return Slot(len(a.entities) - 1), nil
}

// Get returns the entity stored at slot. It panics on a slot the arena never
// handed out.
func (a *Arena) Get(slot Slot) *Entity {
	return &a.entities[slot]
}

func (a *Arena) Len() int {
	return len(a.entities)
}

func (a *Arena) Cap() int {
	return cap(a.entities)
}

// Each visits every entity in creation order.
func (a *Arena) Each(fn func(Slot, *Entity)) {
	for i := range a.entities {
		fn(Slot(i), &a.entities[i])
	}
}
