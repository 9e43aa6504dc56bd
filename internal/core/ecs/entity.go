package ecs

import "reflect"

// Entity is a heap-allocated, non-copyable aggregate of component values.
// It is always referenced through a pointer; there is no way to obtain an
// Entity by value. Identity is the pointer itself, matching the original
// spec's "identified by reference."
//
// Entity has no exported fields: use Has, Get and Set (free generic
// functions — Go methods cannot introduce their own type parameters) to
// inspect or mutate its components.
type Entity struct {
	controller *Controller
	components map[reflect.Type]reflect.Value
	nodes      []listNode
	destroyed  bool
}

// Has reports whether e carries a component of type T.
func Has[T any](e *Entity) bool {
	_, ok := e.components[TypeOf[T]()]
	return ok
}

// Get returns e's component of type T and true, or the zero value and false
// if e has no such component.
func Get[T any](e *Entity) (T, bool) {
	v, ok := e.components[TypeOf[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.Interface().(T), true
}

// MustGet returns e's component of type T, panicking if absent. It is the
// direct analogue of the original's Entity::get<T>(), which throws.
func MustGet[T any](e *Entity) T {
	v, ok := Get[T](e)
	if !ok {
		panic(&ECSError{Code: ErrComponentNotFound, Message: "component not present on entity", Component: TypeOf[T]().Name()})
	}
	return v
}

// Set overwrites e's component of type T and returns e, allowing chaining,
// exactly like the original's Entity::set<T>(). It panics if e has no
// component of type T — Set never adds new components to a live entity,
// since doing so could invalidate list membership computed at creation.
func Set[T any](e *Entity, value T) *Entity {
	t := TypeOf[T]()
	if _, ok := e.components[t]; !ok {
		panic(&ECSError{Code: ErrComponentNotFound, Message: "cannot set absent component", Component: t.Name()})
	}
	e.components[t] = reflect.ValueOf(value)
	return e
}

// componentTypes returns the entity's full component set, used to build the
// membership oracle for list predicates.
func (e *Entity) componentTypes() []reflect.Type {
	types := make([]reflect.Type, 0, len(e.components))
	for t := range e.components {
		types = append(types, t)
	}
	return types
}

// oracle builds the membership predicate a list's Predicate is evaluated
// against: oracle(T) reports whether T is in the entity's full component set.
func (e *Entity) oracle() Oracle {
	return func(t reflect.Type) bool {
		_, ok := e.components[t]
		return ok
	}
}
