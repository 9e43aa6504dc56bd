package systems

import (
	"math"

	"github.com/flameline/ecs-core/internal/core/ecs"
	"github.com/flameline/ecs-core/internal/core/ecs/components"
)

// AISystem drives every entity on a configured AI list toward a single
// target point (e.g. the player). The target is supplied directly as a
// point rather than an entity reference, since this engine has no separate
// entity-id lookup table to address a tracked entity through.
type AISystem struct {
	list   ecs.ListHandle
	target func() components.Vector2
}

// NewAISystem builds an AISystem over list (which must have been
// configured with a predicate matching AI and Transform), chasing
// whatever point target returns each tick.
func NewAISystem(list ecs.ListHandle, target func() components.Vector2) *AISystem {
	return &AISystem{list: list, target: target}
}

func (s *AISystem) Name() string { return "ai" }

func (s *AISystem) Priority() int { return 60 }

func (s *AISystem) Update(c *ecs.Controller, dt float64) error {
	l, err := c.List(s.list)
	if err != nil {
		return err
	}
	target := s.target()
	l.Each(func(e *ecs.Entity) bool {
		ai := ecs.MustGet[components.AI](e)
		tr := ecs.MustGet[components.Transform](e)
		delta := components.Vector2{X: target.X - tr.Position.X, Y: target.Y - tr.Position.Y}
		distance := delta.Length()

		switch {
		case distance <= ai.AttackRange:
			components.SetAIState(e, components.AIAttack)
		case distance <= ai.DetectionRadius:
			components.SetAIState(e, components.AIChase)
			step := math.Min(ai.Speed*dt, distance)
			components.Translate(e, delta.Scale(step/distance))
		default:
			components.SetAIState(e, components.AIIdle)
		}
		return true
	})
	return nil
}
