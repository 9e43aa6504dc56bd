package ecs

import (
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// HasComponents builds a predicate matching entities whose full component
// set contains every one of types. This is the Go rendering of the
// original's HasComponents<A, B, ...> list predicate.
func HasComponents(types ...reflect.Type) Predicate {
	return func(o Oracle) bool {
		for _, t := range types {
			if !o(t) {
				return false
			}
		}
		return true
	}
}

// HasAny builds a predicate matching entities carrying at least one of
// types.
func HasAny(types ...reflect.Type) Predicate {
	return func(o Oracle) bool {
		for _, t := range types {
			if o(t) {
				return true
			}
		}
		return false
	}
}

// Not inverts a predicate.
func Not(p Predicate) Predicate {
	return func(o Oracle) bool { return !p(o) }
}

// And combines predicates with logical conjunction.
func And(ps ...Predicate) Predicate {
	return func(o Oracle) bool {
		for _, p := range ps {
			if !p(o) {
				return false
			}
		}
		return true
	}
}

// Or combines predicates with logical disjunction.
func Or(ps ...Predicate) Predicate {
	return func(o Oracle) bool {
		for _, p := range ps {
			if p(o) {
				return true
			}
		}
		return false
	}
}

// ExprPredicate compiles a declarative boolean expression (expr-lang syntax,
// e.g. "Physics && !Dead") into a Predicate. Each name is resolved against
// componentNames: a component is considered present when its registered
// name maps to a type the oracle reports as present. This lets
// WorldConfig-driven list definitions stay data instead of Go closures,
// the same role expr-lang plays for rule conditions elsewhere in this
// corpus.
func ExprPredicate(script string, componentNames map[string]reflect.Type) (Predicate, error) {
	program, err := expr.Compile(script, expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return nil, &ECSError{Code: ErrListNotConfigured, Message: "invalid list predicate expression: " + err.Error()}
	}
	return func(o Oracle) bool {
		env := make(map[string]any, len(componentNames))
		for name, t := range componentNames {
			env[name] = o(t)
		}
		out, err := vm.Run(program, env)
		if err != nil {
			return false
		}
		result, _ := out.(bool)
		return result
	}, nil
}
