// Package ecs provides the entity-component core of the engine: a component
// dependency solver, intrusive multi-list entity storage, and the controller
// that ties them together.
package ecs

import (
	"reflect"
	"sort"
	"strings"
	"sync"
)

// componentInfo holds the dependency graph edges registered for one
// component type, plus an optional default-value factory.
type componentInfo struct {
	typ       reflect.Type
	requires  []reflect.Type
	implies   []reflect.Type
	conflicts []reflect.Type
	defaultFn func() any
}

var (
	registryMu sync.RWMutex
	registry   = map[reflect.Type]*componentInfo{}
)

// ComponentOption configures a component's dependency edges at registration
// time. See Requires, Implies and Conflicts.
type ComponentOption func(*componentInfo)

// Requires declares that a component cannot appear in an entity's full
// component set unless every type in types is also present.
func Requires(types ...reflect.Type) ComponentOption {
	return func(ci *componentInfo) { ci.requires = append(ci.requires, types...) }
}

// Implies declares that adding this component to an entity automatically
// pulls in every type in types (transitively).
func Implies(types ...reflect.Type) ComponentOption {
	return func(ci *componentInfo) { ci.implies = append(ci.implies, types...) }
}

// Conflicts declares that this component may never co-occur with any type
// in types in the same entity.
func Conflicts(types ...reflect.Type) ComponentOption {
	return func(ci *componentInfo) { ci.conflicts = append(ci.conflicts, types...) }
}

// Default registers a zero-value substitute used when an entity is created
// without an explicit override for this component. Go already zero-values
// everything, so this is only needed when the zero value is not a sane
// default (e.g. Health wanting a non-zero max).
func Default[C any](factory func() C) ComponentOption {
	return func(ci *componentInfo) {
		ci.defaultFn = func() any { return factory() }
	}
}

// RegisterComponent records the dependency edges for component type C.
// It is idempotent-unsafe by design: registering the same type twice
// panics, since that can only be a programming mistake (the original
// spec's "compile-time" component declarations don't admit redefinition
// either).
func RegisterComponent[C any](opts ...ComponentOption) {
	t := reflect.TypeOf((*C)(nil)).Elem()
	if t.Kind() == reflect.Ptr || t.Kind() == reflect.Interface {
		panic(&ComponentError{Message: "component type must be a concrete struct value, not a pointer or interface", Type: t})
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[t]; ok {
		panic(&ComponentError{Message: "component already registered", Type: t})
	}
	ci := &componentInfo{typ: t}
	for _, opt := range opts {
		opt(ci)
	}
	registry[t] = ci
}

func lookupComponent(t reflect.Type) *componentInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[t]
}

// ComponentError reports a dependency-solver failure. It names both
// offending types so the caller can fix either side.
type ComponentError struct {
	Message string
	Type    reflect.Type
	Other   reflect.Type
}

func (e *ComponentError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Type != nil {
		b.WriteString(": ")
		b.WriteString(e.Type.Name())
	}
	if e.Other != nil {
		b.WriteString(" / ")
		b.WriteString(e.Other.Name())
	}
	return b.String()
}

// solveCacheEntry is the memoized result of closing one declared component
// combination under the implies relation and validating it.
type solveCacheEntry struct {
	full []reflect.Type
	err  error
}

var (
	solveCacheMu sync.Mutex
	solveCache   = map[string]*solveCacheEntry{}
)

func canonicalKey(types []reflect.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.PkgPath() + "." + t.Name()
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

// Solve computes the full component set for declared, closing under Implies
// and validating Requires/Conflicts, then memoizes the result so repeated
// calls with the same (unordered) combination are O(1) after the first.
//
// Implied components are expanded to a fixed point before requirements and
// conflicts are checked, so a dependency satisfied transitively through an
// implication never spuriously fails.
func Solve(defaults []reflect.Type, declared ...reflect.Type) ([]reflect.Type, error) {
	key := canonicalKey(append(append([]reflect.Type{}, defaults...), declared...))

	solveCacheMu.Lock()
	if entry, ok := solveCache[key]; ok {
		solveCacheMu.Unlock()
		return entry.full, entry.err
	}
	solveCacheMu.Unlock()

	full, err := solve(defaults, declared)

	solveCacheMu.Lock()
	solveCache[key] = &solveCacheEntry{full: full, err: err}
	solveCacheMu.Unlock()

	return full, err
}

func solve(defaults []reflect.Type, declared []reflect.Type) ([]reflect.Type, error) {
	seen := map[reflect.Type]bool{}
	var full []reflect.Type

	add := func(t reflect.Type) {
		if !seen[t] {
			seen[t] = true
			full = append(full, t)
		}
	}
	for _, t := range defaults {
		add(t)
	}
	for _, t := range declared {
		add(t)
	}

	// Expand Implies to a fixed point, in declaration order.
	for i := 0; i < len(full); i++ {
		ci := lookupComponent(full[i])
		if ci == nil {
			continue
		}
		for _, implied := range ci.implies {
			add(implied)
		}
	}

	if len(full) == 0 {
		return nil, &ComponentError{Message: "full component set is empty"}
	}

	// Requires and Conflicts are independent passes so each failure names
	// precisely the offending pair.
	for _, t := range full {
		ci := lookupComponent(t)
		if ci == nil {
			continue
		}
		for _, req := range ci.requires {
			if !seen[req] {
				return nil, &ComponentError{Message: "missing required component", Type: t, Other: req}
			}
		}
		for _, conf := range ci.conflicts {
			if seen[conf] {
				return nil, &ComponentError{Message: "conflicting components", Type: t, Other: conf}
			}
		}
	}

	return full, nil
}

// TypeOf is a small ergonomic helper for building declared-component lists:
// TypeOf[Transform]() instead of reflect.TypeOf((*Transform)(nil)).Elem().
func TypeOf[C any]() reflect.Type {
	return reflect.TypeOf((*C)(nil)).Elem()
}
