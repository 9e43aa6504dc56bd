package components

import (
	"github.com/flameline/ecs-core/internal/core/ecs"
	"github.com/flameline/ecs-core/internal/core/refl"
)

// Health tracks an entity's hit points, an optional shield buffer absorbed
// before hit points, and the status effects currently applied to it. It
// carries no last-damage timestamp: nothing in this engine's scope reads
// one, and an unused field has no home in a reflected aggregate.
type Health struct {
	Current       int
	Max           int
	Shield        int
	Invincible    bool
	RegenPerTick  float64
	StatusEffects []StatusEffect
}

func init() {
	refl.RegisterStruct[Health]("Health")
	ecs.RegisterComponent[Health](
		ecs.Default(func() Health {
			return Health{Current: 100, Max: 100}
		}),
	)
}

// TakeDamage applies damage to e's Health, shield first, and returns the
// amount actually removed from health (as opposed to absorbed by shield).
// An invincible entity, or non-positive damage, removes nothing.
func TakeDamage(e *ecs.Entity, damage int) int {
	h := ecs.MustGet[Health](e)
	if h.Invincible || damage <= 0 {
		return 0
	}

	remaining := damage
	if h.Shield > 0 {
		if h.Shield >= remaining {
			h.Shield -= remaining
			ecs.Set(e, h)
			return 0
		}
		remaining -= h.Shield
		h.Shield = 0
	}

	if remaining > h.Current {
		remaining = h.Current
	}
	h.Current -= remaining
	ecs.Set(e, h)
	return remaining
}

// Heal restores hit points, capped at Max, and returns the amount restored.
func Heal(e *ecs.Entity, amount int) int {
	if amount <= 0 {
		return 0
	}
	h := ecs.MustGet[Health](e)
	restored := amount
	if h.Current+amount > h.Max {
		restored = h.Max - h.Current
	}
	h.Current += restored
	ecs.Set(e, h)
	return restored
}

// IsDead reports whether e's Health has reached zero.
func IsDead(e *ecs.Entity) bool {
	return ecs.MustGet[Health](e).Current <= 0
}

// AddStatusEffect applies effect to e, replacing any existing effect of the
// same type rather than stacking it.
func AddStatusEffect(e *ecs.Entity, effect StatusEffect) {
	h := ecs.MustGet[Health](e)
	for i, existing := range h.StatusEffects {
		if existing.Type == effect.Type {
			h.StatusEffects[i] = effect
			ecs.Set(e, h)
			return
		}
	}
	h.StatusEffects = append(h.StatusEffects, effect)
	ecs.Set(e, h)
}

// TickStatusEffects advances every status effect's remaining duration by dt
// seconds and drops any that have expired.
func TickStatusEffects(e *ecs.Entity, dt float64) {
	h := ecs.MustGet[Health](e)
	if len(h.StatusEffects) == 0 {
		return
	}
	remaining := h.StatusEffects[:0]
	for _, effect := range h.StatusEffects {
		effect.Duration -= dt
		if effect.Duration > 0 {
			remaining = append(remaining, effect)
		}
	}
	h.StatusEffects = remaining
	ecs.Set(e, h)
}
