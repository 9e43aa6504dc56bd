package components

import "github.com/flameline/ecs-core/internal/core/refl"

// StatusType names a temporary effect a Health component can carry. It is a
// strict enum: an unnamed StatusType value is a serialization error rather
// than falling back to a bare integer, since every status type this engine
// knows about is expected to be registered.
type StatusType int32

const (
	StatusPoison StatusType = iota
	StatusBurn
	StatusStun
	StatusRegen
)

// StatusEffect is one timed effect applied to a Health component: which
// effect, how strong, and how many seconds remain.
type StatusEffect struct {
	Type     StatusType
	Strength float64
	Duration float64
}

func init() {
	refl.RegisterEnum(false,
		refl.EnumValue[StatusType]{Name: "Poison", Value: StatusPoison},
		refl.EnumValue[StatusType]{Name: "Burn", Value: StatusBurn},
		refl.EnumValue[StatusType]{Name: "Stun", Value: StatusStun},
		refl.EnumValue[StatusType]{Name: "Regen", Value: StatusRegen},
	)
	refl.RegisterStruct[StatusEffect]("StatusEffect")
}
