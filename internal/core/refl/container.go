package refl

import (
	"reflect"
)

// containerCodec handles Go slices as the design grammar's Container:
// `[e1, e2, ...]` in text, a u32 length prefix followed by elements in
// binary.
type containerCodec struct {
	elem      reflect.Type
	elemCodec Codec
}

func (c containerCodec) ToString(w *TextWriter, v reflect.Value) error {
	outerOpts := w.Options()
	n := v.Len()

	w.WriteByte('[')
	restore := w.Enter(outerOpts.nested())
	for i := 0; i < n; i++ {
		if i > 0 {
			w.WriteByte(',')
			if !outerOpts.Pretty {
				w.WriteByte(' ')
			}
		}
		if outerOpts.Pretty {
			w.NewlineIndent()
		}
		if err := c.elemCodec.ToString(w, v.Index(i)); err != nil {
			restore()
			return err
		}
	}
	restore()
	if outerOpts.Pretty && n > 0 {
		w.NewlineIndent()
	}
	w.WriteByte(']')
	return nil
}

func (c containerCodec) FromString(r *TextReader, t reflect.Type, opts FromStringOptions) (reflect.Value, error) {
	if err := r.Expect("["); err != nil {
		return reflect.Value{}, wrapText(r, "expected '['", err)
	}
	result := reflect.MakeSlice(t, 0, 0)
	for {
		r.SkipWS()
		if c, ok := r.Peek(); ok && c == ']' {
			r.Advance(1)
			break
		}
		ev, err := c.elemCodec.FromString(r, c.elem, opts)
		if err != nil {
			return reflect.Value{}, wrapText(r, "parsing container element", err)
		}
		result = reflect.Append(result, ev)
		r.SkipWS()
		if ch, ok := r.Peek(); ok && ch == ',' {
			r.Advance(1)
			continue
		}
		r.SkipWS()
		if err := r.Expect("]"); err != nil {
			return reflect.Value{}, wrapText(r, "expected ',' or ']'", err)
		}
		break
	}
	return result, nil
}

func (c containerCodec) ToBinary(w *BinaryWriter, v reflect.Value) error {
	n := v.Len()
	if uint(n) > 0xFFFFFFFF {
		return &ParseError{Message: "container length exceeds 2^32-1"}
	}
	w.WriteU32(uint32(n))
	for i := 0; i < n; i++ {
		if err := c.elemCodec.ToBinary(w, v.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (c containerCodec) FromBinary(r *BinaryReader, t reflect.Type, opts FromBinaryOptions) (reflect.Value, error) {
	n, err := r.ReadU32()
	if err != nil {
		return reflect.Value{}, wrapBinary(r, "reading container length", err)
	}
	reserve := n
	if opts.MaxReservedSize != 0 && reserve > opts.MaxReservedSize {
		reserve = opts.MaxReservedSize
	}
	result := reflect.MakeSlice(t, 0, int(reserve))
	for i := uint32(0); i < n; i++ {
		ev, err := c.elemCodec.FromBinary(r, c.elem, opts)
		if err != nil {
			return reflect.Value{}, wrapBinary(r, "parsing container element", err)
		}
		result = reflect.Append(result, ev)
	}
	return result, nil
}
