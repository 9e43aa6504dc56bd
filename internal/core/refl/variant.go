package refl

import "reflect"

// Variant is a tagged union over a closed, ordered set of alternative
// types. A language with variadic type-level lists could express the
// alternative list at the type level (Variant<A, B, C>); Go generics top
// out at a fixed type parameter arity, so an open list of alternatives is
// carried as data (Alternatives) instead of as part of Variant's own type.
// Because of that, Variant does not participate in SelectCodec's automatic
// dispatch — there is no single reflect.Type that tells the codec what the
// alternative list is — and is instead serialized through the dedicated
// functions below, which take the alternative list explicitly.
type Variant struct {
	Alternatives []reflect.Type
	Tag          int
	Value        any
}

// NewVariant builds a Variant holding value at the position of its dynamic
// type within alternatives. It fails if value's type is not among
// alternatives, or if there are more than 256 alternatives (the tag is a
// single byte on the wire).
func NewVariant(alternatives []reflect.Type, value any) (Variant, error) {
	if len(alternatives) > 256 {
		return Variant{}, &ParseError{Message: "variant has more than 256 alternatives"}
	}
	vt := reflect.TypeOf(value)
	for i, t := range alternatives {
		if t == vt {
			return Variant{Alternatives: alternatives, Tag: i, Value: value}, nil
		}
	}
	return Variant{}, &ParseError{Message: "value type " + vt.String() + " is not a declared alternative"}
}

// ToStringVariant writes v's active alternative as "<ReflectedName> <Value>".
func ToStringVariant(w *TextWriter, v Variant) error {
	if v.Tag < 0 || v.Tag >= len(v.Alternatives) {
		return &ParseError{Message: "variant is valueless"}
	}
	t := v.Alternatives[v.Tag]
	c, err := SelectCodec(t)
	if err != nil {
		return err
	}
	w.WriteString(reflectedName(t))
	w.WriteByte(' ')
	return c.ToString(w, reflect.ValueOf(v.Value))
}

// reflectedName returns the name used on the wire for a variant alternative:
// the registered aggregate name if there is one, else the bare type name.
func reflectedName(t reflect.Type) string {
	if info, ok := lookupStruct(t); ok {
		return info.name
	}
	return t.Name()
}

// FromStringVariant parses a Variant whose active alternative is named by
// one of alternatives' reflected names.
func FromStringVariant(r *TextReader, alternatives []reflect.Type, opts FromStringOptions) (Variant, error) {
	name := r.ReadWhile(isIdentByte)
	if name == "" {
		return Variant{}, wrapText(r, "expected a variant alternative name", nil)
	}
	r.SkipWS()

	for i, t := range alternatives {
		if reflectedName(t) == name {
			c, err := SelectCodec(t)
			if err != nil {
				return Variant{}, err
			}
			v, err := c.FromString(r, t, opts)
			if err != nil {
				return Variant{}, err
			}
			return Variant{Alternatives: alternatives, Tag: i, Value: v.Interface()}, nil
		}
	}
	return Variant{}, wrapText(r, "unknown variant alternative: "+name, nil)
}

// ToBinaryVariant writes an 8-bit tag followed by the active alternative.
func ToBinaryVariant(w *BinaryWriter, v Variant) error {
	if v.Tag < 0 || v.Tag >= len(v.Alternatives) {
		return &ParseError{Message: "variant is valueless"}
	}
	t := v.Alternatives[v.Tag]
	c, err := SelectCodec(t)
	if err != nil {
		return err
	}
	w.WriteU8(uint8(v.Tag))
	return c.ToBinary(w, reflect.ValueOf(v.Value))
}

// FromBinaryVariant reads an 8-bit tag and the corresponding alternative.
func FromBinaryVariant(r *BinaryReader, alternatives []reflect.Type, opts FromBinaryOptions) (Variant, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return Variant{}, wrapBinary(r, "reading variant tag", err)
	}
	if int(tag) >= len(alternatives) {
		return Variant{}, wrapBinary(r, "variant tag out of range", nil)
	}
	t := alternatives[tag]
	c, err := SelectCodec(t)
	if err != nil {
		return Variant{}, err
	}
	v, err := c.FromBinary(r, t, opts)
	if err != nil {
		return Variant{}, err
	}
	return Variant{Alternatives: alternatives, Tag: int(tag), Value: v.Interface()}, nil
}
