// Package types models the target language's type system: integer
// ranks, bit-fields, cv-qualifiers, structs, arrays and pointers,
// built on top of internal/typedval's integer kinds.
//
// Every concrete type is immutable once constructed: a Type is either
// built directly (IntegerType{...}) or assembled by a generator that
// draws its shape from a policy, but nothing here mutates a Type after
// it starts being shared by expressions and declarations.
package types

import (
	"fmt"
	"strings"

	"oorgen/internal/typedval"
)

// TypeKind is the top-level discriminator over the five Type variants.
type TypeKind int

const (
	KindInteger TypeKind = iota
	KindBitField
	KindStruct
	KindArray
	KindPointer
)

// CVQual is a cv-qualifier combination.
type CVQual int

const (
	CVNone CVQual = iota
	CVVolatile
	CVConst
	CVConstVolatile
)

func (cv CVQual) String() string {
	switch cv {
	case CVVolatile:
		return "volatile"
	case CVConst:
		return "const"
	case CVConstVolatile:
		return "const volatile"
	default:
		return ""
	}
}

// Storage is a declaration's storage class.
type Storage int

const (
	Auto Storage = iota
	Static
)

// Type is the common interface every type variant satisfies. Kept
// deliberately small — callers that need variant-specific data do a
// type switch on the concrete struct.
type Type interface {
	Kind() TypeKind
	CVQual() CVQual
	Storage() Storage
	Align() uint32
	// String renders the C/C++ spelling of the type, cv-qualifiers and
	// alignment attribute included.
	String() string
}

type base struct {
	cv      CVQual
	storage Storage
	align   uint32
}

func (b base) CVQual() CVQual   { return b.cv }
func (b base) Storage() Storage { return b.storage }
func (b base) Align() uint32    { return b.align }

func (b base) prefix() string {
	var sb strings.Builder
	if b.storage == Static {
		sb.WriteString("static ")
	}
	if b.cv != CVNone {
		sb.WriteString(b.cv.String())
		sb.WriteByte(' ')
	}
	return sb.String()
}

func (b base) suffix() string {
	if b.align != 0 {
		return fmt.Sprintf(" __attribute__((aligned(%d)))", b.align)
	}
	return ""
}

// IntegerType is a plain integer kind with its cv-qualification,
// storage class, and optional alignment.
type IntegerType struct {
	base
	IntKind typedval.Kind
}

// NewIntegerType constructs an immutable IntegerType.
func NewIntegerType(k typedval.Kind, cv CVQual, storage Storage, align uint32) IntegerType {
	return IntegerType{base: base{cv: cv, storage: storage, align: align}, IntKind: k}
}

func (t IntegerType) Kind() TypeKind { return KindInteger }
func (t IntegerType) String() string {
	return t.prefix() + t.IntKind.String() + t.suffix()
}

// BitFieldType is a struct-member-only integer type with an explicit
// storage width. Bit-fields may never be static, so there is no
// Storage field here — the zero value (Auto) is the only legal state
// and base.Storage() always reports it.
type BitFieldType struct {
	base
	BaseKind typedval.Kind // restricted to Int/UInt under the C standards
	Width    int
	Name     string // "" for an unnamed (shadow-only) bit-field
}

// NewBitFieldType constructs an immutable BitFieldType. width must be
// in [1, kind_width]; callers (the generator) are responsible for
// drawing a width in range.
func NewBitFieldType(baseKind typedval.Kind, width int, cv CVQual, name string) BitFieldType {
	return BitFieldType{base: base{cv: cv}, BaseKind: baseKind, Width: width, Name: name}
}

func (t BitFieldType) Kind() TypeKind { return KindBitField }
func (t BitFieldType) String() string {
	return t.prefix() + t.BaseKind.String() + t.suffix()
}

// ArrayKind selects the element-subscript emission style: a plain C
// array, or one of two "container-style" C++ kinds that additionally
// support `.at(idx)`.
type ArrayKind int

const (
	PlainArray ArrayKind = iota
	StdArray
	StdVector
)

// ArrayType is a fixed-length homogeneous sequence.
type ArrayType struct {
	base
	Elem    Type
	Length  int
	ArrKind ArrayKind
}

// NewArrayType constructs an immutable ArrayType. length must be >= 1.
func NewArrayType(elem Type, length int, kind ArrayKind, cv CVQual) ArrayType {
	if length < 1 {
		panic("types: array length must be >= 1")
	}
	return ArrayType{base: base{cv: cv}, Elem: elem, Length: length, ArrKind: kind}
}

func (t ArrayType) Kind() TypeKind { return KindArray }
func (t ArrayType) String() string {
	switch t.ArrKind {
	case StdVector:
		return fmt.Sprintf("%sstd::vector<%s>%s", t.prefix(), t.Elem.String(), t.suffix())
	case StdArray:
		return fmt.Sprintf("%sstd::array<%s, %d>%s", t.prefix(), t.Elem.String(), t.Length, t.suffix())
	default:
		return fmt.Sprintf("%s%s%s", t.prefix(), t.Elem.String(), t.suffix())
	}
}

// PointerType points to another type; the pointee is always non-nil.
type PointerType struct {
	base
	Pointee Type
}

// NewPointerType constructs an immutable PointerType.
func NewPointerType(pointee Type, cv CVQual) PointerType {
	if pointee == nil {
		panic("types: pointer type must have a non-nil pointee")
	}
	return PointerType{base: base{cv: cv}, Pointee: pointee}
}

func (t PointerType) Kind() TypeKind { return KindPointer }
func (t PointerType) String() string {
	return fmt.Sprintf("%s%s*%s", t.prefix(), t.Pointee.String(), t.suffix())
}

// IsIntegerLike reports whether t is an Integer or BitField — the two
// variants that directly carry an typedval.Kind and participate in
// arithmetic.
func IsIntegerLike(t Type) bool {
	k := t.Kind()
	return k == KindInteger || k == KindBitField
}

// IntKindOf extracts the typedval.Kind backing an Integer or BitField
// type, panicking (an InvariantViolation upstream) for any other kind.
func IntKindOf(t Type) typedval.Kind {
	switch v := t.(type) {
	case IntegerType:
		return v.IntKind
	case BitFieldType:
		return v.BaseKind
	default:
		panic(fmt.Sprintf("types: IntKindOf called on non-integer type %T", t))
	}
}
