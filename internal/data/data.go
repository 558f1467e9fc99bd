// Package data models runtime variables: the live values an expression
// tree reads from and writes to, the counterpart to internal/types'
// static type descriptions.
package data

import (
	"fmt"

	"oorgen/internal/langstd"
	"oorgen/internal/randsrc"
	"oorgen/internal/typedval"
	"oorgen/internal/types"
)

// ClassID discriminates the Data variants.
type ClassID int

const (
	ClassScalar ClassID = iota
	ClassStruct
	ClassArray
	ClassPointer
)

// Data is the common interface every runtime variable satisfies.
type Data interface {
	Name() string
	Type() types.Type
	Class() ClassID
}

// Scalar is a single integer-kinded variable tracking its initial and
// current value plus the bounds its values may be drawn from.
type Scalar struct {
	name    string
	typ     types.IntegerType
	initVal typedval.TypedVal
	curVal  typedval.TypedVal
	min     typedval.TypedVal
	max     typedval.TypedVal
	// fieldWidth is nonzero only for a scalar backing a bit-field
	// member: every stored value is narrowed to this many bits.
	fieldWidth int
	changed    bool
}

// NewScalar constructs a Scalar already holding its initial value as
// both init and current value, with min/max left at the kind's full
// range.
func NewScalar(name string, typ types.IntegerType, mode langstd.BitMode, initVal typedval.TypedVal) *Scalar {
	return &Scalar{
		name:    name,
		typ:     typ,
		initVal: initVal,
		curVal:  initVal,
		min:     typedval.Min(typ.IntKind, mode),
		max:     typedval.Max(typ.IntKind, mode),
	}
}

// GenerateScalar draws a fresh Scalar with a uniformly random initial
// value in [min, max].
// The current value starts equal to the initial value: until the first
// Assign writes through, the program's runtime state is exactly its
// initialization.
func GenerateScalar(rng randsrc.Source, name string, typ types.IntegerType, mode langstd.BitMode) *Scalar {
	min, max := typedval.Min(typ.IntKind, mode), typedval.Max(typ.IntKind, mode)
	init := typedval.GenerateRange(rng, typ.IntKind, mode, min, max)
	return &Scalar{
		name:    name,
		typ:     typ,
		initVal: init,
		curVal:  init,
		min:     min,
		max:     max,
	}
}

// NewBitFieldScalar constructs the Scalar backing one bit-field struct
// member: its stored values are always narrowed to width bits, its
// min/max are the field's range rather than the base kind's, and its
// initial value is drawn uniformly from that range.
func NewBitFieldScalar(rng randsrc.Source, name string, typ types.IntegerType, width int, mode langstd.BitMode) *Scalar {
	min := typedval.WidthMin(typ.IntKind, width)
	max := typedval.WidthMax(typ.IntKind, width)
	init := typedval.GenerateRange(rng, typ.IntKind, mode, min, max)
	return &Scalar{
		name:       name,
		typ:        typ,
		initVal:    init,
		curVal:     init,
		min:        min,
		max:        max,
		fieldWidth: width,
	}
}

func (s *Scalar) Name() string     { return s.name }
func (s *Scalar) Type() types.Type { return s.typ }
func (s *Scalar) Class() ClassID   { return ClassScalar }

// BitFieldWidth returns the backing bit-field's width, or 0 for a plain
// scalar.
func (s *Scalar) BitFieldWidth() int { return s.fieldWidth }

// Narrow applies the bit-field masking rule to v: identity for a plain
// scalar, low-fieldWidth-bits truncation (sign-extended for signed
// kinds) for a bit-field-backed one.
func (s *Scalar) Narrow(v typedval.TypedVal) typedval.TypedVal {
	if s.fieldWidth == 0 {
		return v
	}
	return typedval.MaskToWidth(v, s.fieldWidth)
}

func (s *Scalar) InitValue() typedval.TypedVal { return s.initVal }
func (s *Scalar) CurValue() typedval.TypedVal  { return s.curVal }
func (s *Scalar) Min() typedval.TypedVal       { return s.min }
func (s *Scalar) Max() typedval.TypedVal       { return s.max }
func (s *Scalar) WasChanged() bool             { return s.changed }

// SetInitValue resets both init and current value and clears the
// changed flag. Bit-field-backed scalars narrow v to the field width
// first.
func (s *Scalar) SetInitValue(v typedval.TypedVal) {
	v = s.Narrow(v)
	s.initVal, s.curVal, s.changed = v, v, false
}

// SetCurValue records a new current value, marking the scalar as
// changed since its last init — the "was this variable ever written"
// signal the statement generator reads for write-once outputs.
// Bit-field-backed scalars narrow v to the field width first.
func (s *Scalar) SetCurValue(v typedval.TypedVal) {
	s.curVal, s.changed = s.Narrow(v), true
}

func (s *Scalar) SetMin(v typedval.TypedVal) { s.min = v }
func (s *Scalar) SetMax(v typedval.TypedVal) { s.max = v }

// StaticRegistry lazily creates and caches the single Scalar backing
// every static struct member slot sharing a types.StaticKey — static
// members are aliased across every instance of their struct type.
// internal/types cannot own this cache itself without importing
// internal/data, so the registry lives here, one per generation run.
type StaticRegistry struct {
	slots map[types.StaticKey]*Scalar
}

// NewStaticRegistry returns an empty per-run static-member cache. A
// Context (internal/symtab) owns exactly one of these for its whole
// run, the same way it owns one names.Handler.
func NewStaticRegistry() *StaticRegistry {
	return &StaticRegistry{slots: make(map[types.StaticKey]*Scalar)}
}

// Get returns the shared Scalar for key, creating it via newFn on
// first access. Every StructObj instance of the owning struct type
// calls Get with the same key and therefore observes the same backing
// Scalar.
func (r *StaticRegistry) Get(key types.StaticKey, newFn func() *Scalar) *Scalar {
	if s, ok := r.slots[key]; ok {
		return s
	}
	s := newFn()
	r.slots[key] = s
	return s
}

// StructObj is a struct-typed variable: one Data per named member,
// static members resolved through a shared StaticRegistry.
type StructObj struct {
	name string
	typ  types.StructType
	memb []Data
}

// NewStructObj allocates one Data slot per named member of typ. Static
// members are fetched from reg (shared across every StructObj of this
// struct type); non-static members get a fresh Scalar/StructObj/etc of
// their own. newLeaf constructs a non-struct member's Data (Scalar,
// Array or Pointer as appropriate); it is supplied by the caller
// (internal/genstmt) since only the generator knows the policy driving
// nested member initialization.
func NewStructObj(name string, typ types.StructType, reg *StaticRegistry, newLeaf func(member types.StructMember, memberName string) Data) *StructObj {
	memb := make([]Data, len(typ.Members))
	for i, m := range typ.Members {
		memberName := fmt.Sprintf("%s.%s", name, m.Name)
		if m.IsStatic() {
			memb[i] = reg.Get(m.StaticKey, func() *Scalar {
				return newLeaf(m, memberName).(*Scalar)
			})
			continue
		}
		memb[i] = newLeaf(m, memberName)
	}
	return &StructObj{name: name, typ: typ, memb: memb}
}

func (s *StructObj) Name() string     { return s.name }
func (s *StructObj) Type() types.Type { return s.typ }
func (s *StructObj) Class() ClassID   { return ClassStruct }

// MemberCount returns the number of named members.
func (s *StructObj) MemberCount() int { return len(s.memb) }

// Member returns the Data backing the member at num, or false if out
// of range.
func (s *StructObj) Member(num int) (Data, bool) {
	if num < 0 || num >= len(s.memb) {
		return nil, false
	}
	return s.memb[num], true
}

// Array is a fixed-length homogeneous sequence of Data.
type Array struct {
	name string
	typ  types.ArrayType
	elem []Data
}

// NewArray wraps a pre-built element slice (length must equal
// typ.Length) into an Array Data.
func NewArray(name string, typ types.ArrayType, elements []Data) *Array {
	if len(elements) != typ.Length {
		panic("data: array element count does not match its type's length")
	}
	return &Array{name: name, typ: typ, elem: elements}
}

func (a *Array) Name() string     { return a.name }
func (a *Array) Type() types.Type { return a.typ }
func (a *Array) Class() ClassID   { return ClassArray }

func (a *Array) Len() int { return len(a.elem) }

// Element returns the Data at idx, or false if out of range — the
// generator must never emit an out-of-range constant index, but
// bounds checking here still guards against generator bugs.
func (a *Array) Element(idx int) (Data, bool) {
	if idx < 0 || idx >= len(a.elem) {
		return nil, false
	}
	return a.elem[idx], true
}

// Pointer aliases another Data. Null pointers are modeled at the
// typedval.NullDeref level, not by a nil Pointee here — a generated
// pointer always targets something real.
type Pointer struct {
	name    string
	typ     types.PointerType
	pointee Data
}

// NewPointer constructs a Pointer aliasing pointee.
func NewPointer(name string, typ types.PointerType, pointee Data) *Pointer {
	if pointee == nil {
		panic("data: pointer must have a non-nil pointee")
	}
	return &Pointer{name: name, typ: typ, pointee: pointee}
}

func (p *Pointer) Name() string     { return p.name }
func (p *Pointer) Type() types.Type { return p.typ }
func (p *Pointer) Class() ClassID   { return ClassPointer }

func (p *Pointer) Pointee() Data { return p.pointee }

// Retarget repoints p at a different Data of the same pointee type
// (pointer reassignment via `p = &other;`).
func (p *Pointer) Retarget(pointee Data) {
	if pointee == nil {
		panic("data: pointer cannot be retargeted to nil")
	}
	p.pointee = pointee
}
