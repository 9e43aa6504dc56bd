package components

import (
	"github.com/flameline/ecs-core/internal/core/ecs"
	"github.com/flameline/ecs-core/internal/core/refl"
)

// Color is a packed RGBA color, registered the way Vector2 is so it can
// live as an ordinary field of Sprite.
type Color struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

// Sprite is the rendering-facing half of an entity: which texture, what
// layer to draw it on, and the flip/visibility flags a draw system reads.
// It Requires Transform, since drawing a sprite with no position is always
// a configuration mistake rather than a valid shape.
type Sprite struct {
	TextureID string
	Layer     int
	Color     Color
	Visible   bool
	FlipX     bool
	FlipY     bool
}

func init() {
	refl.RegisterStruct[Color]("Color")
	refl.RegisterStruct[Sprite]("Sprite")
	ecs.RegisterComponent[Sprite](
		ecs.Requires(ecs.TypeOf[Transform]()),
		ecs.Default(func() Sprite {
			return Sprite{Color: Color{R: 255, G: 255, B: 255, A: 255}, Visible: true}
		}),
	)
}

// SetTexture sets e's Sprite texture id and draw layer.
func SetTexture(e *ecs.Entity, textureID string, layer int) {
	s := ecs.MustGet[Sprite](e)
	s.TextureID = textureID
	s.Layer = layer
	ecs.Set(e, s)
}

// SetVisible sets e's Sprite visibility flag.
func SetVisible(e *ecs.Entity, visible bool) {
	s := ecs.MustGet[Sprite](e)
	s.Visible = visible
	ecs.Set(e, s)
}
