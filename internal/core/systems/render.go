package systems

import (
	"sort"

	"github.com/flameline/ecs-core/internal/core/ecs"
	"github.com/flameline/ecs-core/internal/core/ecs/components"
)

// Drawable is one entity's rendering-relevant snapshot, collected fresh
// every tick rather than held as a live pointer into component storage —
// entity creation/destruction between collection and draw would otherwise
// leave a dangling reference.
type Drawable struct {
	Position components.Vector2
	Rotation float64
	Scale    components.Vector2
	Sprite   components.Sprite
}

// RenderSystem does not draw anything itself; it collects the current
// frame's visible sprites, sorted by ascending layer, for cmd/game's
// ebiten draw loop to consume via DrawList.
type RenderSystem struct {
	list     ecs.ListHandle
	drawList []Drawable
}

// NewRenderSystem builds a RenderSystem over list, which must have been
// configured with a predicate matching Transform and Sprite.
func NewRenderSystem(list ecs.ListHandle) *RenderSystem {
	return &RenderSystem{list: list}
}

func (s *RenderSystem) Name() string { return "render" }

func (s *RenderSystem) Priority() int { return 20 }

func (s *RenderSystem) Update(c *ecs.Controller, dt float64) error {
	l, err := c.List(s.list)
	if err != nil {
		return err
	}
	s.drawList = s.drawList[:0]
	l.Each(func(e *ecs.Entity) bool {
		sprite := ecs.MustGet[components.Sprite](e)
		if !sprite.Visible {
			return true
		}
		tr := ecs.MustGet[components.Transform](e)
		s.drawList = append(s.drawList, Drawable{
			Position: tr.Position,
			Rotation: tr.Rotation,
			Scale:    tr.Scale,
			Sprite:   sprite,
		})
		return true
	})
	sort.SliceStable(s.drawList, func(i, j int) bool {
		return s.drawList[i].Sprite.Layer < s.drawList[j].Sprite.Layer
	})
	return nil
}

// DrawList returns the sprites collected by the most recent Update call,
// sorted by ascending layer.
func (s *RenderSystem) DrawList() []Drawable { return s.drawList }
