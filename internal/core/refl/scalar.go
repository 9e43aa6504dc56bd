package refl

import (
	"math"
	"reflect"
	"strconv"
)

// scalarCodec handles bool and every fixed-width integer/float kind. Text
// form is the ordinary decimal rendering; binary form is the type's native
// little-endian width.
type scalarCodec struct{}

func (scalarCodec) ToString(w *TextWriter, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			w.WriteString("true")
		} else {
			w.WriteString("false")
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		w.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		w.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32:
		w.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 32))
	case reflect.Float64:
		w.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	default:
		return &ParseError{Message: "not a scalar kind: " + v.Kind().String()}
	}
	return nil
}

func (scalarCodec) FromString(r *TextReader, t reflect.Type, opts FromStringOptions) (reflect.Value, error) {
	if t.Kind() == reflect.Bool {
		if err := r.Expect("true"); err == nil {
			return reflect.ValueOf(true).Convert(t), nil
		}
		if err := r.Expect("false"); err == nil {
			return reflect.ValueOf(false).Convert(t), nil
		}
		return reflect.Value{}, wrapText(r, "expected bool literal", nil)
	}

	tok := r.ReadWhile(func(c byte) bool {
		return c == '+' || c == '-' || c == '.' || c == 'e' || c == 'E' ||
			(c >= '0' && c <= '9')
	})
	if tok == "" {
		return reflect.Value{}, wrapText(r, "expected number", nil)
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return reflect.Value{}, wrapText(r, "malformed integer", err)
		}
		return reflect.ValueOf(n).Convert(t), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return reflect.Value{}, wrapText(r, "malformed integer", err)
		}
		return reflect.ValueOf(n).Convert(t), nil
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return reflect.Value{}, wrapText(r, "malformed float", err)
		}
		return reflect.ValueOf(n).Convert(t), nil
	}
	return reflect.Value{}, &ParseError{Message: "not a scalar kind: " + t.Kind().String()}
}

func (scalarCodec) ToBinary(w *BinaryWriter, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			w.WriteU8(1)
		} else {
			w.WriteU8(0)
		}
	case reflect.Int8, reflect.Uint8:
		w.WriteU8(uint8(v.Convert(reflect.TypeOf(uint64(0))).Uint()))
	case reflect.Int16, reflect.Uint16:
		w.WriteU16(uint16(v.Convert(reflect.TypeOf(uint64(0))).Uint()))
	case reflect.Int32, reflect.Uint32:
		w.WriteU32(uint32(v.Convert(reflect.TypeOf(uint64(0))).Uint()))
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		w.WriteU64(v.Convert(reflect.TypeOf(uint64(0))).Uint())
	case reflect.Float32:
		w.WriteU32(math.Float32bits(float32(v.Float())))
	case reflect.Float64:
		w.WriteU64(math.Float64bits(v.Float()))
	default:
		return &ParseError{Message: "not a scalar kind: " + v.Kind().String()}
	}
	return nil
}

func (scalarCodec) FromBinary(r *BinaryReader, t reflect.Type, opts FromBinaryOptions) (reflect.Value, error) {
	switch t.Kind() {
	case reflect.Bool:
		b, err := r.ReadU8()
		if err != nil {
			return reflect.Value{}, wrapBinary(r, "reading bool", err)
		}
		return reflect.ValueOf(b != 0).Convert(t), nil
	case reflect.Int8, reflect.Uint8:
		b, err := r.ReadU8()
		if err != nil {
			return reflect.Value{}, wrapBinary(r, "reading 8-bit scalar", err)
		}
		return reflect.ValueOf(b).Convert(t), nil
	case reflect.Int16, reflect.Uint16:
		b, err := r.ReadU16()
		if err != nil {
			return reflect.Value{}, wrapBinary(r, "reading 16-bit scalar", err)
		}
		return reflect.ValueOf(b).Convert(t), nil
	case reflect.Int32, reflect.Uint32:
		b, err := r.ReadU32()
		if err != nil {
			return reflect.Value{}, wrapBinary(r, "reading 32-bit scalar", err)
		}
		return reflect.ValueOf(b).Convert(t), nil
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64:
		b, err := r.ReadU64()
		if err != nil {
			return reflect.Value{}, wrapBinary(r, "reading 64-bit scalar", err)
		}
		return reflect.ValueOf(b).Convert(t), nil
	case reflect.Float32:
		b, err := r.ReadU32()
		if err != nil {
			return reflect.Value{}, wrapBinary(r, "reading float32", err)
		}
		return reflect.ValueOf(math.Float32frombits(b)).Convert(t), nil
	case reflect.Float64:
		b, err := r.ReadU64()
		if err != nil {
			return reflect.Value{}, wrapBinary(r, "reading float64", err)
		}
		return reflect.ValueOf(math.Float64frombits(b)).Convert(t), nil
	}
	return reflect.Value{}, &ParseError{Message: "not a scalar kind: " + t.Kind().String()}
}
