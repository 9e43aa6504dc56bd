package refl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SelectCodec_OverrideTakesPriorityOverBuiltins(t *testing.T) {
	// Arrange
	type customScalar int32
	RegisterCodec(typeOf(customScalar(0)), scalarCodec{})

	// Act
	c, err := SelectCodec(typeOf(customScalar(0)))

	// Assert
	require.NoError(t, err)
	assert.IsType(t, scalarCodec{}, c)
}

func Test_SelectCodec_UnregisteredStructTypeErrors(t *testing.T) {
	type neverRegistered struct{ Z int32 }

	_, err := SelectCodec(typeOf(neverRegistered{}))

	require.Error(t, err)
}

func Test_SelectCodec_SliceDispatchesToContainerCodec(t *testing.T) {
	c, err := SelectCodec(typeOf([]int32{}))

	require.NoError(t, err)
	assert.IsType(t, containerCodec{}, c)
}

func Test_ToString_And_FromStringValue_RoundTripThroughDispatch(t *testing.T) {
	s, err := ToString(testPoint{X: 1, Y: 2}, DefaultToStringOptions)
	require.NoError(t, err)
	assert.Equal(t, "Point{X=1, Y=2}", s)

	v, err := FromStringValue(s, typeOf(testPoint{}), DefaultFromStringOptions)
	require.NoError(t, err)
	assert.Equal(t, testPoint{X: 1, Y: 2}, v)
}

func Test_ToBinary_And_FromBinaryValue_RoundTripThroughDispatch(t *testing.T) {
	data, err := ToBinary(testPoint{X: 3, Y: 4})
	require.NoError(t, err)

	v, err := FromBinaryValue(data, typeOf(testPoint{}), DefaultFromBinaryOptions)
	require.NoError(t, err)
	assert.Equal(t, testPoint{X: 3, Y: 4}, v)
}
