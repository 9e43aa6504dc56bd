package refl

import (
	"reflect"
	"sync"
)

// Codec is the trait every reflected type supplies: to-string, from-string,
// to-binary and from-binary, operating on reflect.Value so containers and
// aggregates can recurse into element/field values without boxing through
// any. FromString/FromBinary receive the expected type and return a new
// value of exactly that type.
type Codec interface {
	ToString(w *TextWriter, v reflect.Value) error
	FromString(r *TextReader, t reflect.Type, opts FromStringOptions) (reflect.Value, error)
	ToBinary(w *BinaryWriter, v reflect.Value) error
	FromBinary(r *BinaryReader, t reflect.Type, opts FromBinaryOptions) (reflect.Value, error)
}

var (
	overrideMu sync.RWMutex
	overrides  = map[reflect.Type]Codec{}
)

// RegisterCodec installs a user-supplied Codec for t, taking priority over
// every built-in dispatch rule. This is the Go rendering of the original's
// "select-interface-for-T" specialization point.
func RegisterCodec(t reflect.Type, c Codec) {
	overrideMu.Lock()
	defer overrideMu.Unlock()
	overrides[t] = c
}

// SelectCodec picks the Codec for t: a registered override first, then the
// built-in rules for Optional, polymorphic handles, reflected enums,
// scalars, strings, containers and reflected aggregates, in that order.
// Variant is not dispatched here; it has its own standalone functions.
func SelectCodec(t reflect.Type) (Codec, error) {
	overrideMu.RLock()
	c, ok := overrides[t]
	overrideMu.RUnlock()
	if ok {
		return c, nil
	}

	if t.Implements(isOptionalType) {
		return optionalCodec{}, nil
	}
	if t.Implements(isPolyType) {
		return polyCodec{}, nil
	}
	if info, ok := lookupEnum(t); ok {
		return enumCodec{info: info}, nil
	}

	if isScalarKind(t.Kind()) {
		return scalarCodec{}, nil
	}
	if t.Kind() == reflect.String {
		return stringCodec{}, nil
	}
	if t.Kind() == reflect.Slice {
		elemCodec, err := SelectCodec(t.Elem())
		if err != nil {
			return nil, err
		}
		return containerCodec{elem: t.Elem(), elemCodec: elemCodec}, nil
	}
	if info, ok := lookupStruct(t); ok {
		return structCodec{info: info}, nil
	}
	return nil, &ParseError{Message: "no codec available for type " + t.String()}
}

func isScalarKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// ToString serializes v using opts, dispatching via SelectCodec.
func ToString(v any, opts ToStringOptions) (string, error) {
	rv := reflect.ValueOf(v)
	c, err := SelectCodec(rv.Type())
	if err != nil {
		return "", err
	}
	w := NewTextWriter(opts)
	if err := c.ToString(w, rv); err != nil {
		return "", err
	}
	return w.String(), nil
}

// FromStringValue parses s as a value of type t. The caller must have
// already trimmed surrounding whitespace/comments.
func FromStringValue(s string, t reflect.Type, opts FromStringOptions) (any, error) {
	c, err := SelectCodec(t)
	if err != nil {
		return nil, err
	}
	r := NewTextReader(s)
	v, err := c.FromString(r, t, opts)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// ToBinary serializes v to its binary form, dispatching via SelectCodec.
func ToBinary(v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	c, err := SelectCodec(rv.Type())
	if err != nil {
		return nil, err
	}
	w := NewBinaryWriter()
	if err := c.ToBinary(w, rv); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// FromBinaryValue parses data as a value of type t.
func FromBinaryValue(data []byte, t reflect.Type, opts FromBinaryOptions) (any, error) {
	c, err := SelectCodec(t)
	if err != nil {
		return nil, err
	}
	r := NewBinaryReader(data)
	v, err := c.FromBinary(r, t, opts)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}
