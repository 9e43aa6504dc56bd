package refl

import (
	"reflect"
	"sort"
	"strconv"
	"sync"
)

// EnumConstraint restricts RegisterEnum to named integer types, mirroring
// the original's "enum with an integral underlying type."
type EnumConstraint interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// EnumValue names one member of an enum registration.
type EnumValue[T EnumConstraint] struct {
	Name  string
	Value T
}

type enumEntry struct {
	value int64
	name  string
}

type enumInfo struct {
	typ     reflect.Type
	relaxed bool
	byValue []enumEntry // sorted by value
	byName  []enumEntry // sorted by name
}

var (
	enumRegistryMu sync.RWMutex
	enumRegistry   = map[reflect.Type]*enumInfo{}
)

// RegisterEnum records T's named values. A relaxed enum falls back to
// emitting/parsing the bare underlying integer for values with no
// registered name; a strict (non-relaxed) enum treats an unnamed value as
// a serialization error in both directions.
func RegisterEnum[T EnumConstraint](relaxed bool, values ...EnumValue[T]) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	info := &enumInfo{typ: t, relaxed: relaxed}
	for _, v := range values {
		e := enumEntry{value: int64(v.Value), name: v.Name}
		info.byValue = append(info.byValue, e)
		info.byName = append(info.byName, e)
	}
	sort.Slice(info.byValue, func(i, j int) bool { return info.byValue[i].value < info.byValue[j].value })
	sort.Slice(info.byName, func(i, j int) bool { return info.byName[i].name < info.byName[j].name })

	enumRegistryMu.Lock()
	defer enumRegistryMu.Unlock()
	enumRegistry[t] = info
}

func lookupEnum(t reflect.Type) (*enumInfo, bool) {
	enumRegistryMu.RLock()
	defer enumRegistryMu.RUnlock()
	info, ok := enumRegistry[t]
	return info, ok
}

func (info *enumInfo) findByValue(v int64) (string, bool) {
	i := sort.Search(len(info.byValue), func(i int) bool { return info.byValue[i].value >= v })
	if i < len(info.byValue) && info.byValue[i].value == v {
		return info.byValue[i].name, true
	}
	return "", false
}

func (info *enumInfo) findByName(name string) (int64, bool) {
	i := sort.Search(len(info.byName), func(i int) bool { return info.byName[i].name >= name })
	if i < len(info.byName) && info.byName[i].name == name {
		return info.byName[i].value, true
	}
	return 0, false
}

type enumCodec struct{ info *enumInfo }

func (c enumCodec) ToString(w *TextWriter, v reflect.Value) error {
	iv := asInt64(v)
	if name, ok := c.info.findByValue(iv); ok {
		w.WriteString(name)
		return nil
	}
	if !c.info.relaxed {
		return &ParseError{Message: "unnamed value for non-relaxed enum " + c.info.typ.String()}
	}
	w.WriteString(strconv.FormatInt(iv, 10))
	return nil
}

func asInt64(v reflect.Value) int64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	default:
		return int64(v.Uint())
	}
}

func (c enumCodec) FromString(r *TextReader, t reflect.Type, opts FromStringOptions) (reflect.Value, error) {
	ch, ok := r.Peek()
	if ok && c.info.relaxed && (ch == '+' || ch == '-' || (ch >= '0' && ch <= '9')) {
		tok := r.ReadWhile(func(b byte) bool {
			return b == '+' || b == '-' || (b >= '0' && b <= '9')
		})
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return reflect.Value{}, wrapText(r, "malformed enum integer literal", err)
		}
		return reflect.ValueOf(n).Convert(t), nil
	}

	name := r.ReadWhile(isIdentByte)
	if name == "" {
		return reflect.Value{}, wrapText(r, "expected enum identifier", nil)
	}
	v, ok := c.info.findByName(name)
	if !ok {
		return reflect.Value{}, wrapText(r, "unknown enum name: "+name, nil)
	}
	return reflect.ValueOf(v).Convert(t), nil
}

func (c enumCodec) ToBinary(w *BinaryWriter, v reflect.Value) error {
	return scalarCodec{}.ToBinary(w, v)
}

func (c enumCodec) FromBinary(r *BinaryReader, t reflect.Type, opts FromBinaryOptions) (reflect.Value, error) {
	return scalarCodec{}.FromBinary(r, t, FromBinaryOptions(opts))
}
