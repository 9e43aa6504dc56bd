package refl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_StringCodec_ToStringEscapesControlCharacters(t *testing.T) {
	// Arrange
	c := stringCodec{}
	w := NewTextWriter(DefaultToStringOptions)

	// Act
	err := c.ToString(w, valueOf("line1\nline2\t\"quoted\"\\"))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, `"line1\nline2\t\"quoted\"\\"`, w.String())
}

func Test_StringCodec_ToStringPreservesNewlineWhenMultiline(t *testing.T) {
	c := stringCodec{}
	w := NewTextWriter(ToStringOptions{MultilineStrings: true})

	err := c.ToString(w, valueOf("a\nb"))

	require.NoError(t, err)
	assert.Equal(t, "\"a\nb\"", w.String())
}

func Test_StringCodec_TextRoundTrip(t *testing.T) {
	c := stringCodec{}
	w := NewTextWriter(DefaultToStringOptions)
	original := "tab\there, quote\", backslash\\"
	require.NoError(t, c.ToString(w, valueOf(original)))

	r := NewTextReader(w.String())
	v, err := c.FromString(r, typeOf(""), DefaultFromStringOptions)

	require.NoError(t, err)
	assert.Equal(t, original, v.Interface())
	assert.True(t, r.Done())
}

func Test_StringCodec_FromString_UnterminatedLiteral(t *testing.T) {
	c := stringCodec{}
	r := NewTextReader(`"unterminated`)

	_, err := c.FromString(r, typeOf(""), DefaultFromStringOptions)

	require.Error(t, err)
}

func Test_StringCodec_FromString_UnknownEscape(t *testing.T) {
	c := stringCodec{}
	r := NewTextReader(`"bad\qescape"`)

	_, err := c.FromString(r, typeOf(""), DefaultFromStringOptions)

	require.Error(t, err)
}

func Test_StringCodec_BinaryRoundTrip(t *testing.T) {
	c := stringCodec{}
	w := NewBinaryWriter()
	require.NoError(t, c.ToBinary(w, valueOf("hello")))

	r := NewBinaryReader(w.Bytes())
	v, err := c.FromBinary(r, typeOf(""), DefaultFromBinaryOptions)

	require.NoError(t, err)
	assert.Equal(t, "hello", v.Interface())
}

func Test_StringCodec_FromBinary_RejectsOversizedLengthPrefix(t *testing.T) {
	c := stringCodec{}
	w := NewBinaryWriter()
	w.WriteU32(1 << 30)

	r := NewBinaryReader(w.Bytes())
	_, err := c.FromBinary(r, typeOf(""), FromBinaryOptions{MaxReservedSize: 1024})

	require.Error(t, err)
}
