package refl

import (
	"reflect"
	"sync"

	"github.com/fatih/structs"
)

type structFieldInfo struct {
	name     string
	index    []int
	optional bool
}

type structInfo struct {
	name   string
	typ    reflect.Type
	fields []structFieldInfo
}

var (
	structRegistryMu sync.RWMutex
	structRegistry   = map[reflect.Type]*structInfo{}
)

// RegisterStruct records T as a reflected aggregate under name, walking its
// exported fields in declaration order via fatih/structs (which also
// respects a `structs:"-"` tag to exclude a field from reflection, the same
// convention the library uses for its own Map()/Values() walks). A field
// whose type is itself an Optional[U] is recorded as eligible for elision:
// a deserializer may omit it from the input entirely and get the zero
// Optional back.
func RegisterStruct[T any](name string) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	var zero T
	s := structs.New(&zero)

	info := &structInfo{name: name, typ: t}
	for _, f := range s.Fields() {
		if !f.IsExported() {
			continue
		}
		if f.Tag("structs") == "-" {
			continue
		}
		sf, ok := t.FieldByName(f.Name())
		if !ok {
			continue
		}
		info.fields = append(info.fields, structFieldInfo{
			name:     f.Name(),
			index:    sf.Index,
			optional: sf.Type.Implements(isOptionalType),
		})
	}

	structRegistryMu.Lock()
	defer structRegistryMu.Unlock()
	structRegistry[t] = info
}

func lookupStruct(t reflect.Type) (*structInfo, bool) {
	structRegistryMu.RLock()
	defer structRegistryMu.RUnlock()
	info, ok := structRegistry[t]
	return info, ok
}

type structCodec struct{ info *structInfo }

func (c structCodec) ToString(w *TextWriter, v reflect.Value) error {
	w.WriteString(c.info.name)
	outerOpts := w.Options()
	if outerOpts.Pretty {
		w.WriteByte(' ')
	}
	w.WriteByte('{')
	restore := w.Enter(outerOpts.nested())

	for i, f := range c.info.fields {
		if i > 0 {
			w.WriteByte(',')
			if !outerOpts.Pretty {
				w.WriteByte(' ')
			}
		}
		if outerOpts.Pretty {
			w.NewlineIndent()
		}
		w.WriteString(f.name)
		w.WriteByte('=')
		if outerOpts.Pretty {
			w.WriteByte(' ')
		}
		fv := v.FieldByIndex(f.index)
		fc, err := SelectCodec(fv.Type())
		if err != nil {
			restore()
			return err
		}
		if err := fc.ToString(w, fv); err != nil {
			restore()
			return err
		}
	}
	if outerOpts.Pretty && len(c.info.fields) > 0 {
		w.WriteByte(',')
	}
	restore()
	if outerOpts.Pretty && len(c.info.fields) > 0 {
		w.NewlineIndent()
	}
	w.WriteByte('}')
	return nil
}

func (c structCodec) FromString(r *TextReader, t reflect.Type, opts FromStringOptions) (reflect.Value, error) {
	name := r.ReadWhile(isIdentByte)
	if name != c.info.name {
		return reflect.Value{}, wrapText(r, "expected aggregate name "+c.info.name+", got "+name, nil)
	}
	r.SkipWS()
	if err := r.Expect("{"); err != nil {
		return reflect.Value{}, wrapText(r, "expected '{'", err)
	}

	result := reflect.New(t).Elem()
	seen := make(map[string]bool, len(c.info.fields))

	for {
		r.SkipWS()
		if ch, ok := r.Peek(); ok && ch == '}' {
			r.Advance(1)
			break
		}
		fieldName := r.ReadWhile(isIdentByte)
		if fieldName == "" {
			return reflect.Value{}, wrapText(r, "expected field name", nil)
		}
		fi, ok := c.fieldByName(fieldName)
		if !ok {
			return reflect.Value{}, wrapText(r, "unknown field: "+fieldName, nil)
		}
		r.SkipWS()
		if err := r.Expect("="); err != nil {
			return reflect.Value{}, wrapText(r, "expected '='", err)
		}
		r.SkipWS()

		fv := result.FieldByIndex(fi.index)
		fc, err := SelectCodec(fv.Type())
		if err != nil {
			return reflect.Value{}, err
		}
		parsed, err := fc.FromString(r, fv.Type(), opts)
		if err != nil {
			return reflect.Value{}, err
		}
		fv.Set(parsed)
		seen[fieldName] = true

		r.SkipWS()
		if ch, ok := r.Peek(); ok && ch == ',' {
			r.Advance(1)
			continue
		}
		r.SkipWS()
		if err := r.Expect("}"); err != nil {
			return reflect.Value{}, wrapText(r, "expected ',' or '}'", err)
		}
		break
	}

	for _, f := range c.info.fields {
		if !seen[f.name] && !f.optional {
			return reflect.Value{}, wrapText(r, "missing non-optional field: "+f.name, nil)
		}
	}
	return result, nil
}

func (c structCodec) fieldByName(name string) (structFieldInfo, bool) {
	for _, f := range c.info.fields {
		if f.name == name {
			return f, true
		}
	}
	return structFieldInfo{}, false
}

func (c structCodec) ToBinary(w *BinaryWriter, v reflect.Value) error {
	for _, f := range c.info.fields {
		fv := v.FieldByIndex(f.index)
		fc, err := SelectCodec(fv.Type())
		if err != nil {
			return err
		}
		if err := fc.ToBinary(w, fv); err != nil {
			return err
		}
	}
	return nil
}

func (c structCodec) FromBinary(r *BinaryReader, t reflect.Type, opts FromBinaryOptions) (reflect.Value, error) {
	result := reflect.New(t).Elem()
	for _, f := range c.info.fields {
		fv := result.FieldByIndex(f.index)
		fc, err := SelectCodec(fv.Type())
		if err != nil {
			return reflect.Value{}, err
		}
		parsed, err := fc.FromBinary(r, fv.Type(), opts)
		if err != nil {
			return reflect.Value{}, err
		}
		fv.Set(parsed)
	}
	return result, nil
}
