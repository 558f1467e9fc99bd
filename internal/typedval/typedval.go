package typedval

import (
	"oorgen/internal/langstd"

	"golang.org/x/exp/constraints"
)

// UBTag is the undefined-behavior classification attached to a
// TypedVal. When UBTag != None the value's bits are
// unspecified and the value must not feed another operator — it is a
// signal for internal/ir's rebuild loop, not a Go error.
type UBTag int

const (
	None UBTag = iota
	NullDeref
	SignedOverflow
	SignedOverflowMin
	DivByZero
	ShiftByNegative
	ShiftByTooLarge
	NegativeShiftee
	MissingMember
)

func (t UBTag) String() string {
	switch t {
	case None:
		return "none"
	case NullDeref:
		return "NullDeref"
	case SignedOverflow:
		return "SignedOverflow"
	case SignedOverflowMin:
		return "SignedOverflowMin"
	case DivByZero:
		return "DivByZero"
	case ShiftByNegative:
		return "ShiftByNegative"
	case ShiftByTooLarge:
		return "ShiftByTooLarge"
	case NegativeShiftee:
		return "NegativeShiftee"
	case MissingMember:
		return "MissingMember"
	default:
		return "UBTag(?)"
	}
}

// TypedVal is the pair (kind, raw-bits) plus a UBTag. Bits
// always holds the value canonicalized to its Kind's width under
// whatever BitMode was passed to the operation that produced it: zero-
// extended for unsigned kinds, sign-extended for signed kinds.
type TypedVal struct {
	Kind Kind
	Bits uint64
	UB   UBTag
}

// Zero constructs a TypedVal of kind k holding 0, with no UB tag.
func Zero(k Kind) TypedVal { return TypedVal{Kind: k} }

// FromSigned builds a TypedVal of kind k (which must be signed) from a
// generic signed host integer, canonicalizing to k's width under mode.
func FromSigned[T constraints.Signed](k Kind, mode langstd.BitMode, v T) TypedVal {
	return TypedVal{Kind: k, Bits: canonicalize(k, mode, uint64(int64(v)))}
}

// FromUnsigned builds a TypedVal of kind k (which must be unsigned)
// from a generic unsigned host integer, canonicalizing to k's width.
func FromUnsigned[T constraints.Unsigned](k Kind, mode langstd.BitMode, v T) TypedVal {
	return TypedVal{Kind: k, Bits: canonicalize(k, mode, uint64(v))}
}

// Signed interprets the value as a signed 64-bit quantity (valid
// regardless of whether Kind is itself signed — callers that know they
// hold a signed kind use this to read the logical value).
func (v TypedVal) Signed() int64 { return int64(v.Bits) }

// Unsigned interprets the value as an unsigned 64-bit quantity.
func (v TypedVal) Unsigned() uint64 { return v.Bits }

// IsZero reports whether the represented value is zero, regardless of
// signedness.
func (v TypedVal) IsZero() bool { return v.Bits == 0 }

// canonicalize re-applies the sign/zero-extension rule for v.Kind under
// mode; every arithmetic result is passed through this before return.
// bool collapses to 0/1 the way conversion to _Bool/bool does in the
// target language, not by bit truncation.
func canonicalize(k Kind, mode langstd.BitMode, bits uint64) uint64 {
	if k == Bool {
		if bits != 0 {
			return 1
		}
		return 0
	}
	w := Width(k, mode)
	if IsSigned(k) {
		return signExtend(bits, w)
	}
	return bits & maskWidth(w)
}

// fitsSigned reports whether the raw two's-complement value bits,
// computed at infinite precision then narrowed to w bits, round-trips
// without loss when reinterpreted as a signed w-bit quantity — i.e.
// whether wide (the pre-narrowing arithmetic result, held in a 64-bit
// Go int64 because no operator here can overflow int64 itself: every
// operand is at most 64 bits wide) equals the sign-extended narrow
// result.
func fitsSigned(wide int64, w int) bool {
	narrow := int64(signExtend(uint64(wide), w))
	return narrow == wide
}
