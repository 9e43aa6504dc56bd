package components

import (
	"math"

	"github.com/flameline/ecs-core/internal/core/ecs"
	"github.com/flameline/ecs-core/internal/core/refl"
)

// Physics holds an entity's motion state: velocity, acceleration, mass,
// friction, a speed cap and a static flag. Behavior lives in free
// functions rather than methods, since a component value is addressed
// through Get/Set rather than held by pointer.
type Physics struct {
	Velocity     Vector2
	Acceleration Vector2
	Mass         float64
	Friction     float64
	MaxSpeed     float64
	IsStatic     bool
}

func init() {
	refl.RegisterStruct[Physics]("Physics")
	ecs.RegisterComponent[Physics](
		ecs.Requires(ecs.TypeOf[Transform]()),
		ecs.Default(func() Physics {
			return Physics{Mass: 1, MaxSpeed: 10000}
		}),
	)
}

// ApplyForce sets e's acceleration from force (F = ma). A static body or a
// non-positive mass ignores the force entirely.
func ApplyForce(e *ecs.Entity, force Vector2) {
	p := ecs.MustGet[Physics](e)
	if p.IsStatic || p.Mass <= 0 {
		return
	}
	p.Acceleration = force.Scale(1 / p.Mass)
	ecs.Set(e, p)
}

// Integrate advances e's Physics and Transform by one step of dt seconds:
// velocity from acceleration, then friction, then the speed cap, then
// position from velocity, in that order every tick.
func Integrate(e *ecs.Entity, dt float64) {
	p := ecs.MustGet[Physics](e)
	if p.IsStatic {
		return
	}

	p.Velocity = p.Velocity.Add(p.Acceleration.Scale(dt))

	if p.Friction > 0 {
		factor := 1 - p.Friction*dt
		if factor < 0 {
			factor = 0
		}
		p.Velocity = p.Velocity.Scale(factor)
	}

	if p.MaxSpeed > 0 && !math.IsInf(p.MaxSpeed, 1) {
		if speed := p.Velocity.Length(); speed > p.MaxSpeed {
			p.Velocity = p.Velocity.Scale(p.MaxSpeed / speed)
		}
	}

	ecs.Set(e, p)
	Translate(e, p.Velocity.Scale(dt))
}
