package systems

import (
	"github.com/flameline/ecs-core/internal/core/ecs"
	"github.com/flameline/ecs-core/internal/core/ecs/components"
)

// HealthSystem ticks status effects and applies passive regeneration for
// every entity on a configured health list, run uniformly once per tick for
// every entity that carries Health.
type HealthSystem struct {
	list ecs.ListHandle
}

// NewHealthSystem builds a HealthSystem over list, which must have been
// configured with a predicate matching Health.
func NewHealthSystem(list ecs.ListHandle) *HealthSystem {
	return &HealthSystem{list: list}
}

func (s *HealthSystem) Name() string { return "health" }

func (s *HealthSystem) Priority() int { return 70 }

func (s *HealthSystem) Update(c *ecs.Controller, dt float64) error {
	l, err := c.List(s.list)
	if err != nil {
		return err
	}
	l.Each(func(e *ecs.Entity) bool {
		components.TickStatusEffects(e, dt)
		h := ecs.MustGet[components.Health](e)
		if h.RegenPerTick > 0 {
			components.Heal(e, int(h.RegenPerTick*dt))
		}
		return true
	})
	return nil
}
