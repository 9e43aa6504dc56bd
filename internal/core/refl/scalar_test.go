package refl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ScalarCodec_ToStringRendersDecimal(t *testing.T) {
	// Arrange
	c := scalarCodec{}
	w := NewTextWriter(DefaultToStringOptions)

	// Act
	err := c.ToString(w, valueOf(int32(-42)))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "-42", w.String())
}

func Test_ScalarCodec_ToStringRendersBool(t *testing.T) {
	c := scalarCodec{}
	w := NewTextWriter(DefaultToStringOptions)

	err := c.ToString(w, valueOf(true))

	require.NoError(t, err)
	assert.Equal(t, "true", w.String())
}

func Test_ScalarCodec_TextRoundTrip(t *testing.T) {
	c := scalarCodec{}
	w := NewTextWriter(DefaultToStringOptions)
	require.NoError(t, c.ToString(w, valueOf(uint16(65000))))

	r := NewTextReader(w.String())
	v, err := c.FromString(r, typeOf(uint16(0)), DefaultFromStringOptions)

	require.NoError(t, err)
	assert.Equal(t, uint16(65000), v.Interface())
}

func Test_ScalarCodec_BinaryRoundTrip_Int64(t *testing.T) {
	c := scalarCodec{}
	w := NewBinaryWriter()
	require.NoError(t, c.ToBinary(w, valueOf(int64(-1))))

	r := NewBinaryReader(w.Bytes())
	v, err := c.FromBinary(r, typeOf(int64(0)), DefaultFromBinaryOptions)

	require.NoError(t, err)
	assert.Equal(t, int64(-1), v.Interface())
}

func Test_ScalarCodec_BinaryRoundTrip_Float32(t *testing.T) {
	c := scalarCodec{}
	w := NewBinaryWriter()
	require.NoError(t, c.ToBinary(w, valueOf(float32(0.5))))
	assert.Equal(t, 4, len(w.Bytes()))

	r := NewBinaryReader(w.Bytes())
	v, err := c.FromBinary(r, typeOf(float32(0)), DefaultFromBinaryOptions)

	require.NoError(t, err)
	assert.Equal(t, float32(0.5), v.Interface())
}

func Test_ScalarCodec_FromBinary_PrematureEOF(t *testing.T) {
	c := scalarCodec{}
	r := NewBinaryReader([]byte{0x01, 0x02})

	_, err := c.FromBinary(r, typeOf(uint32(0)), DefaultFromBinaryOptions)

	require.Error(t, err)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.True(t, pe.Binary)
}
