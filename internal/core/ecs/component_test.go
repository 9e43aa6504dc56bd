package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type compPosition struct{ X, Y float64 }
type compVelocity struct{ DX, DY float64 }
type compFrozen struct{}
type compBurning struct{}
type compNameTag struct{ Name string }
type compWithDefault struct{ Value int }

func init() {
	RegisterComponent[compPosition]()
	RegisterComponent[compVelocity](Requires(TypeOf[compPosition]()))
	RegisterComponent[compFrozen](Conflicts(TypeOf[compBurning]()))
	RegisterComponent[compBurning](Conflicts(TypeOf[compFrozen]()))
	RegisterComponent[compNameTag](Implies(TypeOf[compPosition]()))
	RegisterComponent[compWithDefault](Default(func() compWithDefault { return compWithDefault{Value: 7} }))
}

func Test_TypeOf_ReturnsConcreteStructType(t *testing.T) {
	// Act
	typ := TypeOf[compPosition]()

	// Assert
	assert.Equal(t, "compPosition", typ.Name())
}

func Test_RegisterComponent_PanicsOnPointerOrInterface(t *testing.T) {
	// Act & Assert
	assert.Panics(t, func() {
		RegisterComponent[*compPosition]()
	})
}

func Test_RegisterComponent_PanicsOnDuplicateRegistration(t *testing.T) {
	// Act & Assert
	assert.Panics(t, func() {
		RegisterComponent[compPosition]()
	})
}

func Test_Solve_SatisfiedRequirementSucceeds(t *testing.T) {
	// Act
	full, err := Solve(nil, TypeOf[compPosition](), TypeOf[compVelocity]())

	// Assert
	assert.NoError(t, err)
	assert.Len(t, full, 2)
}

func Test_Solve_MissingRequirementFails(t *testing.T) {
	// Act
	_, err := Solve(nil, TypeOf[compVelocity]())

	// Assert
	assert.Error(t, err)
	var cerr *ComponentError
	assert.ErrorAs(t, err, &cerr)
	assert.Equal(t, "compVelocity", cerr.Type.Name())
	assert.Equal(t, "compPosition", cerr.Other.Name())
}

func Test_Solve_ConflictingComponentsFail(t *testing.T) {
	// Act
	_, err := Solve(nil, TypeOf[compFrozen](), TypeOf[compBurning]())

	// Assert
	assert.Error(t, err)
}

func Test_Solve_ImpliesExpandsTransitivelyBeforeRequiresIsChecked(t *testing.T) {
	// compNameTag implies compPosition, which satisfies compVelocity's
	// requirement even though compPosition was never declared explicitly.
	full, err := Solve(nil, TypeOf[compNameTag](), TypeOf[compVelocity]())

	assert.NoError(t, err)
	names := map[string]bool{}
	for _, tp := range full {
		names[tp.Name()] = true
	}
	assert.True(t, names["compPosition"])
	assert.True(t, names["compNameTag"])
	assert.True(t, names["compVelocity"])
}

func Test_Solve_EmptyDeclarationFails(t *testing.T) {
	// Act
	_, err := Solve(nil)

	// Assert
	assert.Error(t, err)
}

func Test_Solve_MemoizesByCanonicalUnorderedKey(t *testing.T) {
	// Act
	a, errA := Solve(nil, TypeOf[compPosition](), TypeOf[compVelocity]())
	b, errB := Solve(nil, TypeOf[compVelocity](), TypeOf[compPosition]())

	// Assert
	assert.NoError(t, errA)
	assert.NoError(t, errB)
	assert.Equal(t, canonicalKey(a), canonicalKey(b))
}

func Test_ComponentError_ErrorIncludesBothTypeNames(t *testing.T) {
	// Arrange
	err := &ComponentError{Message: "missing required component", Type: TypeOf[compVelocity](), Other: TypeOf[compPosition]()}

	// Act
	msg := err.Error()

	// Assert
	assert.Contains(t, msg, "compVelocity")
	assert.Contains(t, msg, "compPosition")
}
