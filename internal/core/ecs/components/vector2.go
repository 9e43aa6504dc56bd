// Package components is the example component set: a small domain
// vocabulary (position, motion, health, rendering) exercising the ecs
// package's dependency solver and the refl package's aggregate codec
// together.
package components

import (
	"math"

	"github.com/flameline/ecs-core/internal/core/refl"
)

// Vector2 is a 2D vector used for position, velocity and similar quantities.
// It is registered as its own reflected aggregate so it can appear as an
// ordinary field inside any component without special-casing in the codec.
type Vector2 struct {
	X float64
	Y float64
}

func (v Vector2) Add(o Vector2) Vector2 { return Vector2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vector2) Scale(k float64) Vector2 { return Vector2{X: v.X * k, Y: v.Y * k} }

func (v Vector2) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

func init() {
	refl.RegisterStruct[Vector2]("Vector2")
}
