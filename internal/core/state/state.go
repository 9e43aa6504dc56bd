// Package state implements the reflected state-machine driver: a manager
// owning a single polymorphic state handle, advanced one Tick at a time,
// where the current state requests its own successor by its reflected text.
package state

import (
	"reflect"

	"github.com/flameline/ecs-core/internal/core/refl"
)

var polyHandleType = reflect.TypeOf((*refl.PolyHandle[State])(nil)).Elem()

// State is the base interface every reflected state implements. Init runs
// once, immediately after the state is constructed and before its first
// Tick. Tick runs once per Manager.Tick call; setting *next to a non-empty
// reflected text (e.g. "World{Seed=7}") requests a transition effective
// next tick.
type State interface {
	Init()
	Tick(next *string)
}

// Manager owns exactly one State instance at a time, addressed through a
// refl.PolyHandle so states can be requested as reflected text: the
// registered name (as given to refl.RegisterPoly) followed by the state's
// field values, e.g. "Initial{}". The current state emits that text for its
// successor, and Manager parses it on the next Tick; a bare name without
// the braces does not parse.
type Manager struct {
	current refl.PolyHandle[State]
	pending string
}

// NewManager returns a Manager with no current state. The first Tick after
// SetNextState (or NewManagerWithInitial) performs the first transition.
func NewManager() *Manager {
	return &Manager{current: refl.NullPolyHandle[State]()}
}

// NewManagerWithInitial returns a Manager whose first Tick constructs and
// initializes the state described by the reflected text name; that state
// is first ticked on the following Tick.
func NewManagerWithInitial(name string) *Manager {
	m := NewManager()
	m.SetNextState(name)
	return m
}

// SetNextState requests a transition to the state described by the
// reflected text name, effective on the next Tick. An empty name is a
// no-op: it does not clear an already-pending request. A later non-empty
// request replaces an earlier one, so the last request before Tick wins.
func (m *Manager) SetNextState(name string) {
	if name == "" {
		return
	}
	m.pending = name
}

// Current returns the manager's current state, or nil if none is set.
func (m *Manager) Current() State {
	return m.current.Value
}

// Tick performs a pending transition if there is one and returns without
// ticking the new state; otherwise it ticks the current state, passing it
// a pointer to the next-state text so it can request its own successor.
// It returns false (and ticks nothing) once the manager has
// no current state and no pending transition — the halt condition described
// in §4.10.
func (m *Manager) Tick() (bool, error) {
	if m.pending != "" {
		v, err := refl.FromStringValue(m.pending, polyHandleType, refl.DefaultFromStringOptions)
		if err != nil {
			return false, err
		}
		handle := v.(refl.PolyHandle[State])
		m.pending = ""
		m.current = handle
		if m.current.Value != nil {
			m.current.Value.Init()
		}
		return true, nil
	}

	if m.current.Value == nil {
		return false, nil
	}

	var next string
	m.current.Value.Tick(&next)
	if next != "" {
		m.pending = next
	}
	return true, nil
}
