// Package core wires the ecs, systems, state and config packages together
// into one runnable World.
package core

import (
	"github.com/flameline/ecs-core/internal/core/config"
	"github.com/flameline/ecs-core/internal/core/ecs"
	"github.com/flameline/ecs-core/internal/core/ecs/components"
	"github.com/flameline/ecs-core/internal/core/state"
	"github.com/flameline/ecs-core/internal/core/systems"
)

// List handles for the lists World configures on its Controller. Declared
// as a block, in configuration order, so the predicate order passed to
// Configure can be read off this block directly.
const (
	ListAll ecs.ListHandle = iota
	ListPhysics
	ListHealth
	ListAI
	ListRenderable
)

// World owns one Controller plus the scheduler and state machine driving
// it. NewWorld wires the example component set's lists to the systems
// that read them; a caller embedding this engine in something other than
// cmd/game's ebiten harness can still drive World.Tick on its own loop.
type World struct {
	Controller *ecs.Controller
	Scheduler  *systems.Scheduler
	States     *state.Manager

	render *systems.RenderSystem
}

// WorldOption configures optional World construction behavior.
type WorldOption func(*worldOptions)

type worldOptions struct {
	target       func() components.Vector2
	initialState string
}

// WithChaseTarget supplies the point the AI system chases. Without this
// option the AI system chases the origin.
func WithChaseTarget(target func() components.Vector2) WorldOption {
	return func(o *worldOptions) { o.target = target }
}

// WithInitialState sets the state machine's first requested state, parsed
// the same way any other reflected text is (e.g. "Playing{}").
func WithInitialState(name string) WorldOption {
	return func(o *worldOptions) { o.initialState = name }
}

// NewWorld builds a configured Controller with the example component
// set's five lists, registers the standard systems against them, and
// returns the assembled World. cfg may be nil, in which case the
// allocator falls back to the heap allocator (no pooling).
func NewWorld(cfg *config.WorldConfig, opts ...WorldOption) (*World, error) {
	o := &worldOptions{target: func() components.Vector2 { return components.Vector2{} }}
	for _, opt := range opts {
		opt(o)
	}

	var controllerOpts []ecs.ControllerOption
	if cfg != nil && cfg.AllocatorPoolSize > 0 {
		controllerOpts = append(controllerOpts, ecs.WithAllocator(ecs.NewPoolAllocator(cfg.AllocatorPoolSize, nil)))
	}
	c := ecs.NewController(controllerOpts...)

	err := c.Configure(
		func(ecs.Oracle) bool { return true },
		ecs.HasComponents(ecs.TypeOf[components.Physics]()),
		ecs.HasComponents(ecs.TypeOf[components.Health]()),
		ecs.HasComponents(ecs.TypeOf[components.AI]()),
		ecs.HasComponents(ecs.TypeOf[components.Sprite]()),
	)
	if err != nil {
		return nil, err
	}

	render := systems.NewRenderSystem(ListRenderable)

	sched := systems.NewScheduler()
	sched.Register(systems.NewMovementSystem(ListPhysics))
	sched.Register(systems.NewHealthSystem(ListHealth))
	sched.Register(systems.NewAISystem(ListAI, o.target))
	sched.Register(render)

	w := &World{
		Controller: c,
		Scheduler:  sched,
		States:     state.NewManager(),
		render:     render,
	}
	if o.initialState != "" {
		w.States.SetNextState(o.initialState)
	}
	return w, nil
}

// Tick advances the state machine and then every system, in that order:
// a state transition requested last tick takes effect before this tick's
// systems run.
func (w *World) Tick(dt float64) error {
	if _, err := w.States.Tick(); err != nil {
		return err
	}
	return w.Scheduler.Tick(w.Controller, dt)
}

// DrawList returns the sprites collected by the most recent Tick, sorted
// by ascending layer, for a rendering frontend to draw.
func (w *World) DrawList() []systems.Drawable {
	return w.render.DrawList()
}
