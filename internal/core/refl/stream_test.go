package refl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_TextWriter_EnterRestoresPriorOptionsAfterChildWrite(t *testing.T) {
	// Arrange
	w := NewTextWriter(ToStringOptions{Pretty: true, Indent: 2})

	// Act
	restore := w.Enter(w.Options().nested())
	duringChild := w.Options().ExtraIndent
	restore()

	// Assert
	assert.Equal(t, 2, duringChild)
	assert.Equal(t, 0, w.Options().ExtraIndent)
}

func Test_TextWriter_NewlineIndent_NoOpWhenCompact(t *testing.T) {
	w := NewTextWriter(DefaultToStringOptions)

	w.WriteString("a")
	w.NewlineIndent()
	w.WriteString("b")

	assert.Equal(t, "ab", w.String())
}

func Test_TextReader_SkipWS_SkipsLineAndBlockComments(t *testing.T) {
	r := NewTextReader("  // a comment\n /* block */ x")

	r.SkipWS()

	c, ok := r.Peek()
	require.True(t, ok)
	assert.Equal(t, byte('x'), c)
}

func Test_TextReader_PeekIdent_DoesNotAdvancePosition(t *testing.T) {
	r := NewTextReader("Initial{}")

	name := r.PeekIdent()

	assert.Equal(t, "Initial", name)
	assert.Equal(t, 0, r.Pos())
}

func Test_TextReader_Expect_FailsWithoutConsumingOnMismatch(t *testing.T) {
	r := NewTextReader("abc")

	err := r.Expect("xyz")

	require.Error(t, err)
	assert.Equal(t, 0, r.Pos())
}

func Test_TextReader_Expect_ConsumesOnMatch(t *testing.T) {
	r := NewTextReader("abc")

	err := r.Expect("ab")

	require.NoError(t, err)
	assert.Equal(t, 2, r.Pos())
}

func Test_BinaryWriter_WritesLittleEndian(t *testing.T) {
	w := NewBinaryWriter()

	w.WriteU16(0x0102)

	assert.Equal(t, []byte{0x02, 0x01}, w.Bytes())
}

func Test_BinaryReader_Require_ReportsPrematureEOF(t *testing.T) {
	r := NewBinaryReader([]byte{0x01})

	_, err := r.ReadU32()

	require.Error(t, err)
}

func Test_BinaryReader_Remaining(t *testing.T) {
	r := NewBinaryReader([]byte{1, 2, 3})

	b, err := r.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, byte(1), b)
	assert.Equal(t, 2, r.Remaining())
}
