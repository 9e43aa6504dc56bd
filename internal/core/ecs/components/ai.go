package components

import (
	"github.com/flameline/ecs-core/internal/core/ecs"
	"github.com/flameline/ecs-core/internal/core/refl"
)

// AIState names where an AI-driven entity sits in its behavior loop.
type AIState int32

const (
	AIIdle AIState = iota
	AIPatrol
	AIChase
	AIAttack
)

// AI drives a non-player entity's behavior: its current state and the
// detection/attack ranges and speed the behavior loop reads. It holds no
// target; the AI system chases a point supplied to it from outside. It
// Requires Transform (an AI with nowhere to stand makes no sense) and
// Conflicts with Dead: a destroyed entity's AI never runs again.
type AI struct {
	State           AIState
	DetectionRadius float64
	AttackRange     float64
	Speed           float64
}

// Dead is a marker component with no fields: its presence on an entity
// means systems should stop driving it, rather than folding that meaning
// into a state value on AI itself. A dedicated marker lets Conflicts
// express "never alongside AI" directly,
// rather than every AI-aware system re-checking a state enum by hand.
type Dead struct{}

func init() {
	refl.RegisterEnum(false,
		refl.EnumValue[AIState]{Name: "Idle", Value: AIIdle},
		refl.EnumValue[AIState]{Name: "Patrol", Value: AIPatrol},
		refl.EnumValue[AIState]{Name: "Chase", Value: AIChase},
		refl.EnumValue[AIState]{Name: "Attack", Value: AIAttack},
	)
	refl.RegisterStruct[AI]("AI")
	refl.RegisterStruct[Dead]("Dead")

	ecs.RegisterComponent[AI](
		ecs.Requires(ecs.TypeOf[Transform]()),
		ecs.Conflicts(ecs.TypeOf[Dead]()),
		ecs.Default(func() AI {
			return AI{DetectionRadius: 50, AttackRange: 10, Speed: 100}
		}),
	)
	ecs.RegisterComponent[Dead]()
}

// SetAIState transitions e's AI to state.
func SetAIState(e *ecs.Entity, state AIState) {
	a := ecs.MustGet[AI](e)
	a.State = state
	ecs.Set(e, a)
}

// InRange reports whether distance is within e's AI detection radius.
func InRange(e *ecs.Entity, distance float64) bool {
	return distance <= ecs.MustGet[AI](e).DetectionRadius
}
