package refl

import "reflect"

// Optional represents a value that may or may not be present. Go has no
// built-in sum type for "present or not", but it does have generics, so each
// instantiation Optional[T] is a distinct, ordinary reflect-visible struct
// type — the element type is recovered from the Value field's declared
// type rather than from a runtime hint, so a plain Optional[T] round-trips
// through SelectCodec like any other reflected type.
type Optional[T any] struct {
	Valid bool
	Value T
}

// isOptionalMarker lets SelectCodec recognize any Optional[T] instantiation
// without enumerating T.
func (Optional[T]) isOptionalMarker() {}

type isOptional interface{ isOptionalMarker() }

var isOptionalType = reflect.TypeOf((*isOptional)(nil)).Elem()

// NewOptional wraps a present value.
func NewOptional[T any](v T) Optional[T] { return Optional[T]{Valid: true, Value: v} }

// NewEmptyOptional returns the empty optional for T.
func NewEmptyOptional[T any]() Optional[T] { return Optional[T]{} }

type optionalCodec struct{}

func (optionalCodec) ToString(w *TextWriter, v reflect.Value) error {
	valid := v.FieldByName("Valid").Bool()
	if !valid {
		w.WriteByte('?')
		return nil
	}
	w.WriteByte(':')
	if w.Options().Pretty {
		w.WriteByte(' ')
	}
	value := v.FieldByName("Value")
	elemCodec, err := SelectCodec(value.Type())
	if err != nil {
		return err
	}
	return elemCodec.ToString(w, value)
}

func (optionalCodec) FromString(r *TextReader, t reflect.Type, opts FromStringOptions) (reflect.Value, error) {
	elem := t.FieldByIndex([]int{1}).Type
	result := reflect.New(t).Elem()

	c, ok := r.Peek()
	if !ok {
		return reflect.Value{}, wrapText(r, "expected '?' or ':'", nil)
	}
	if c == '?' {
		r.Advance(1)
		return result, nil
	}
	if c != ':' {
		return reflect.Value{}, wrapText(r, "expected '?' or ':'", nil)
	}
	r.Advance(1)
	r.SkipWS()

	elemCodec, err := SelectCodec(elem)
	if err != nil {
		return reflect.Value{}, err
	}
	v, err := elemCodec.FromString(r, elem, opts)
	if err != nil {
		return reflect.Value{}, err
	}
	result.FieldByIndex([]int{0}).SetBool(true)
	result.FieldByIndex([]int{1}).Set(v)
	return result, nil
}

func (optionalCodec) ToBinary(w *BinaryWriter, v reflect.Value) error {
	valid := v.FieldByName("Valid").Bool()
	if !valid {
		w.WriteU8(0)
		return nil
	}
	w.WriteU8(1)
	value := v.FieldByName("Value")
	elemCodec, err := SelectCodec(value.Type())
	if err != nil {
		return err
	}
	return elemCodec.ToBinary(w, value)
}

func (optionalCodec) FromBinary(r *BinaryReader, t reflect.Type, opts FromBinaryOptions) (reflect.Value, error) {
	elem := t.FieldByIndex([]int{1}).Type
	result := reflect.New(t).Elem()

	flag, err := r.ReadU8()
	if err != nil {
		return reflect.Value{}, wrapBinary(r, "reading optional presence flag", err)
	}
	if flag == 0 {
		return result, nil
	}
	elemCodec, err := SelectCodec(elem)
	if err != nil {
		return reflect.Value{}, err
	}
	v, err := elemCodec.FromBinary(r, elem, opts)
	if err != nil {
		return reflect.Value{}, err
	}
	result.FieldByIndex([]int{0}).SetBool(true)
	result.FieldByIndex([]int{1}).Set(v)
	return result, nil
}
