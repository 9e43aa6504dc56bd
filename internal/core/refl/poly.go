package refl

import (
	"reflect"
	"sort"
	"sync"
)

// maxDerivedPerBase is 2^16-2: the stable index must fit in a 16-bit wire
// field with 0xFFFF reserved for null.
const maxDerivedPerBase = 0xFFFE

// nullPolyIndex is the wire value meaning "no derived instance".
const nullPolyIndex = 0xFFFF

type polyEntry struct {
	name        string
	derivedType reflect.Type // the concrete struct type, never a pointer
	index       uint16
}

type polyBaseRegistry struct {
	mu        sync.Mutex
	finalized bool
	entries   []polyEntry
	byName    map[string]*polyEntry
}

var (
	polyRegistryMu sync.Mutex
	polyRegistries = map[reflect.Type]*polyBaseRegistry{}
)

func registryFor(baseType reflect.Type) *polyBaseRegistry {
	polyRegistryMu.Lock()
	defer polyRegistryMu.Unlock()
	reg, ok := polyRegistries[baseType]
	if !ok {
		reg = &polyBaseRegistry{}
		polyRegistries[baseType] = reg
	}
	return reg
}

// RegisterPoly records Derived as an instance of Base's polymorphic family
// under the wire/text name. It must be called before the registry for Base
// is finalized (the first to-string/from-string/to-binary/from-binary or
// explicit FinalizePoly call involving Base); calling it afterward is a
// hard registry error, matching the original's "registration after
// finalization is fatal" rule.
func RegisterPoly[Base any, Derived any](name string) {
	baseType := reflect.TypeOf((*Base)(nil)).Elem()
	derivedType := reflect.TypeOf((*Derived)(nil)).Elem()

	reg := registryFor(baseType)
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if reg.finalized {
		panic(&PolyError{Base: baseType.String(), Message: "registered derived class " + name + " after finalization"})
	}
	if len(reg.entries) >= maxDerivedPerBase {
		panic(&PolyError{Base: baseType.String(), Message: "more than 2^16-2 derived classes registered"})
	}
	reg.entries = append(reg.entries, polyEntry{name: name, derivedType: derivedType})
}

// finalize sorts reg's entries by name exactly once, rejecting adjacent
// duplicate names, and writes each entry's stable index back.
func (reg *polyBaseRegistry) finalize(baseType reflect.Type) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if reg.finalized {
		return
	}
	sort.Slice(reg.entries, func(i, j int) bool { return reg.entries[i].name < reg.entries[j].name })
	for i := range reg.entries {
		if i > 0 && reg.entries[i].name == reg.entries[i-1].name {
			panic(&PolyError{Base: baseType.String(), Message: "duplicate derived class name " + reg.entries[i].name})
		}
		reg.entries[i].index = uint16(i)
	}
	reg.byName = make(map[string]*polyEntry, len(reg.entries))
	for i := range reg.entries {
		reg.byName[reg.entries[i].name] = &reg.entries[i]
	}
	reg.finalized = true
}

func (reg *polyBaseRegistry) byIndex(i uint16) (*polyEntry, bool) {
	if int(i) >= len(reg.entries) {
		return nil, false
	}
	return &reg.entries[i], true
}

func (reg *polyBaseRegistry) entryForType(t reflect.Type) (*polyEntry, bool) {
	for i := range reg.entries {
		if reg.entries[i].derivedType == t {
			return &reg.entries[i], true
		}
	}
	return nil, false
}

// FinalizePoly forces Base's registry to finalize now rather than on first
// use. Calling it more than once, or calling it after it already finalized
// implicitly, is a no-op.
func FinalizePoly[Base any]() {
	baseType := reflect.TypeOf((*Base)(nil)).Elem()
	registryFor(baseType).finalize(baseType)
}

// PolyHandle is a value-semantic owner of exactly one heap instance of some
// type registered against Base, or nil for "no instance". Base is almost
// always an interface type.
type PolyHandle[Base any] struct {
	Value Base
}

func (PolyHandle[Base]) isPolyMarker() {}

type isPoly interface{ isPolyMarker() }

var isPolyType = reflect.TypeOf((*isPoly)(nil)).Elem()

// NewPolyHandle wraps an existing instance.
func NewPolyHandle[Base any](v Base) PolyHandle[Base] { return PolyHandle[Base]{Value: v} }

// NullPolyHandle returns the null handle for Base.
func NullPolyHandle[Base any]() PolyHandle[Base] { return PolyHandle[Base]{} }

// Name returns the registered name of h's concrete instance, or "" if h is
// null.
func Name[Base any](h PolyHandle[Base]) string {
	rv := reflect.ValueOf(h.Value)
	if !rv.IsValid() || rv.IsNil() {
		return ""
	}
	baseType := reflect.TypeOf((*Base)(nil)).Elem()
	reg := registryFor(baseType)
	reg.finalize(baseType)
	entry, ok := reg.entryForType(rv.Elem().Type())
	if !ok {
		return ""
	}
	return entry.name
}

type polyCodec struct{}

// ToString writes the null marker '0', or else delegates straight to the
// instance's own aggregate codec: a non-null handle's text form IS its
// instance's "Name{fields}" rendering — there is no separate poly-level
// prefix beyond what the aggregate codec already emits.
func (polyCodec) ToString(w *TextWriter, v reflect.Value) error {
	baseType := v.Type().FieldByIndex([]int{0}).Type
	value := v.FieldByIndex([]int{0})

	if value.IsNil() {
		w.WriteByte('0')
		return nil
	}

	reg := registryFor(baseType)
	reg.finalize(baseType)
	concretePtr := value.Elem()
	structVal := concretePtr.Elem()
	if _, ok := reg.entryForType(structVal.Type()); !ok {
		return &PolyError{Base: baseType.String(), Message: "instance type not registered: " + structVal.Type().String()}
	}

	sc, err := SelectCodec(structVal.Type())
	if err != nil {
		return err
	}
	return sc.ToString(w, structVal)
}

func (polyCodec) FromString(r *TextReader, t reflect.Type, opts FromStringOptions) (reflect.Value, error) {
	baseType := t.FieldByIndex([]int{0}).Type
	result := reflect.New(t).Elem()

	c, ok := r.Peek()
	if !ok {
		return reflect.Value{}, wrapText(r, "expected '0' or a class name", nil)
	}
	if c == '0' {
		r.Advance(1)
		return result, nil
	}

	name := r.PeekIdent()
	if name == "" {
		return reflect.Value{}, wrapText(r, "expected a polymorphic class name", nil)
	}

	reg := registryFor(baseType)
	reg.finalize(baseType)
	entry, ok := reg.byName[name]
	if !ok {
		return reflect.Value{}, wrapText(r, "unregistered polymorphic class name: "+name, nil)
	}

	sc, err := SelectCodec(entry.derivedType)
	if err != nil {
		return reflect.Value{}, err
	}
	structVal, err := sc.FromString(r, entry.derivedType, opts)
	if err != nil {
		return reflect.Value{}, err
	}

	ptr := reflect.New(entry.derivedType)
	ptr.Elem().Set(structVal)
	result.FieldByIndex([]int{0}).Set(ptr)
	return result, nil
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (polyCodec) ToBinary(w *BinaryWriter, v reflect.Value) error {
	baseType := v.Type().FieldByIndex([]int{0}).Type
	value := v.FieldByIndex([]int{0})

	if value.IsNil() {
		w.WriteU16(nullPolyIndex)
		return nil
	}

	reg := registryFor(baseType)
	reg.finalize(baseType)
	structVal := value.Elem().Elem()
	entry, ok := reg.entryForType(structVal.Type())
	if !ok {
		return &PolyError{Base: baseType.String(), Message: "instance type not registered: " + structVal.Type().String()}
	}

	w.WriteU16(entry.index)
	sc, err := SelectCodec(structVal.Type())
	if err != nil {
		return err
	}
	return sc.ToBinary(w, structVal)
}

func (polyCodec) FromBinary(r *BinaryReader, t reflect.Type, opts FromBinaryOptions) (reflect.Value, error) {
	baseType := t.FieldByIndex([]int{0}).Type
	result := reflect.New(t).Elem()

	idx, err := r.ReadU16()
	if err != nil {
		return reflect.Value{}, wrapBinary(r, "reading polymorphic index", err)
	}
	if idx == nullPolyIndex {
		return result, nil
	}

	reg := registryFor(baseType)
	reg.finalize(baseType)
	entry, ok := reg.byIndex(idx)
	if !ok {
		return reflect.Value{}, wrapBinary(r, "polymorphic index out of range", nil)
	}

	sc, err := SelectCodec(entry.derivedType)
	if err != nil {
		return reflect.Value{}, err
	}
	structVal, err := sc.FromBinary(r, entry.derivedType, opts)
	if err != nil {
		return reflect.Value{}, err
	}

	ptr := reflect.New(entry.derivedType)
	ptr.Elem().Set(structVal)
	result.FieldByIndex([]int{0}).Set(ptr)
	return result, nil
}
