package refl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPoint struct {
	X int32
	Y int32
}

type testLabeled struct {
	Name  string
	Point testPoint
	Note  Optional[string]
}

func init() {
	RegisterStruct[testPoint]("Point")
	RegisterStruct[testLabeled]("Labeled")
}

func Test_Struct_SelectCodec_ReturnsStructCodecForRegisteredType(t *testing.T) {
	// Arrange / Act
	c, err := SelectCodec(typeOf(testPoint{}))

	// Assert
	require.NoError(t, err)
	assert.IsType(t, structCodec{}, c)
}

func Test_Struct_ToString_Compact(t *testing.T) {
	info, _ := lookupStruct(typeOf(testPoint{}))
	c := structCodec{info: info}
	w := NewTextWriter(DefaultToStringOptions)

	err := c.ToString(w, valueOf(testPoint{X: 1, Y: 2}))

	require.NoError(t, err)
	assert.Equal(t, "Point{X=1, Y=2}", w.String())
}

func Test_Struct_ToString_Pretty(t *testing.T) {
	info, _ := lookupStruct(typeOf(testPoint{}))
	c := structCodec{info: info}
	w := NewTextWriter(ToStringOptions{Pretty: true, Indent: 2})

	err := c.ToString(w, valueOf(testPoint{X: 1, Y: 2}))

	require.NoError(t, err)
	assert.Equal(t, "Point {\n  X = 1,\n  Y = 2,\n}", w.String())
}

func Test_Struct_ToString_NestedAggregate(t *testing.T) {
	info, _ := lookupStruct(typeOf(testLabeled{}))
	c := structCodec{info: info}
	w := NewTextWriter(DefaultToStringOptions)

	value := testLabeled{Name: "origin", Point: testPoint{X: 0, Y: 0}, Note: NewOptional("ok")}
	err := c.ToString(w, valueOf(value))

	require.NoError(t, err)
	assert.Equal(t, `Labeled{Name="origin", Point=Point{X=0, Y=0}, Note=:"ok"}`, w.String())
}

func Test_Struct_FromString_RejectsWrongName(t *testing.T) {
	info, _ := lookupStruct(typeOf(testPoint{}))
	c := structCodec{info: info}
	r := NewTextReader("NotPoint{X=1, Y=2}")

	_, err := c.FromString(r, typeOf(testPoint{}), DefaultFromStringOptions)

	require.Error(t, err)
}

func Test_Struct_FromString_MissingNonOptionalFieldFails(t *testing.T) {
	info, _ := lookupStruct(typeOf(testPoint{}))
	c := structCodec{info: info}
	r := NewTextReader("Point{X=1}")

	_, err := c.FromString(r, typeOf(testPoint{}), DefaultFromStringOptions)

	require.Error(t, err)
}

func Test_Struct_FromString_ElidesOptionalField(t *testing.T) {
	info, _ := lookupStruct(typeOf(testLabeled{}))
	c := structCodec{info: info}
	r := NewTextReader(`Labeled{Name="x", Point=Point{X=0, Y=0}}`)

	v, err := c.FromString(r, typeOf(testLabeled{}), DefaultFromStringOptions)

	require.NoError(t, err)
	got := v.Interface().(testLabeled)
	assert.False(t, got.Note.Valid)
}

func Test_Struct_TextRoundTrip(t *testing.T) {
	info, _ := lookupStruct(typeOf(testLabeled{}))
	c := structCodec{info: info}
	w := NewTextWriter(DefaultToStringOptions)
	original := testLabeled{Name: "a", Point: testPoint{X: 3, Y: 4}, Note: NewEmptyOptional[string]()}
	require.NoError(t, c.ToString(w, valueOf(original)))

	r := NewTextReader(w.String())
	v, err := c.FromString(r, typeOf(testLabeled{}), DefaultFromStringOptions)

	require.NoError(t, err)
	assert.Equal(t, original, v.Interface())
}

func Test_Struct_BinaryRoundTrip(t *testing.T) {
	info, _ := lookupStruct(typeOf(testPoint{}))
	c := structCodec{info: info}
	w := NewBinaryWriter()
	original := testPoint{X: 5, Y: -5}
	require.NoError(t, c.ToBinary(w, valueOf(original)))

	r := NewBinaryReader(w.Bytes())
	v, err := c.FromBinary(r, typeOf(testPoint{}), DefaultFromBinaryOptions)

	require.NoError(t, err)
	assert.Equal(t, original, v.Interface())
}
