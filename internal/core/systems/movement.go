package systems

import (
	"github.com/flameline/ecs-core/internal/core/ecs"
	"github.com/flameline/ecs-core/internal/core/ecs/components"
)

// MovementSystem integrates every entity on a configured physics list one
// step per tick, in a single pass over a list the Controller already
// maintains incrementally rather than re-querying Transform+Physics each
// frame.
type MovementSystem struct {
	list ecs.ListHandle
}

// NewMovementSystem builds a MovementSystem that integrates every entity
// on list, which must have been configured with a predicate matching at
// least Transform and Physics.
func NewMovementSystem(list ecs.ListHandle) *MovementSystem {
	return &MovementSystem{list: list}
}

func (s *MovementSystem) Name() string { return "movement" }

func (s *MovementSystem) Priority() int { return 90 }

func (s *MovementSystem) Update(c *ecs.Controller, dt float64) error {
	l, err := c.List(s.list)
	if err != nil {
		return err
	}
	l.Each(func(e *ecs.Entity) bool {
		components.Integrate(e, dt)
		return true
	})
	return nil
}
