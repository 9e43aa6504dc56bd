package components

import (
	"github.com/flameline/ecs-core/internal/core/ecs"
	"github.com/flameline/ecs-core/internal/core/refl"
)

// Transform holds an entity's position, rotation (radians) and scale.
// It carries no parent/child pointers: this entity model is one value per
// component type per entity, addressed through Get/Set rather than a
// hierarchy of component objects, so there is nowhere for a parent pointer
// to live.
type Transform struct {
	Position Vector2
	Rotation float64
	Scale    Vector2
}

func init() {
	refl.RegisterStruct[Transform]("Transform")
	ecs.RegisterComponent[Transform](
		ecs.Default(func() Transform {
			return Transform{Scale: Vector2{X: 1, Y: 1}}
		}),
	)
}

// Translate moves e's Transform by delta and returns the new position.
func Translate(e *ecs.Entity, delta Vector2) Vector2 {
	t := ecs.MustGet[Transform](e)
	t.Position = t.Position.Add(delta)
	ecs.Set(e, t)
	return t.Position
}

// Rotate adds radians to e's Transform rotation and returns the new value.
func Rotate(e *ecs.Entity, radians float64) float64 {
	t := ecs.MustGet[Transform](e)
	t.Rotation += radians
	ecs.Set(e, t)
	return t.Rotation
}
