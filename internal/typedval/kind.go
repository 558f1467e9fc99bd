// Package typedval is the typed scalar value engine: a tagged union
// over the eleven fixed-width integer kinds, with every operator
// implemented to two's-complement bit-exactness and full
// undefined-behavior detection.
package typedval

import (
	"fmt"

	"oorgen/internal/langstd"
)

// Kind is one of the eleven integer ranks of the modeled type system.
// Declaration order follows conversion rank so that rank comparisons
// ("group") read directly off it.
type Kind int

const (
	Bool Kind = iota
	SChar
	UChar
	Short
	UShort
	Int
	UInt
	Long
	ULong
	LLong
	ULLong
	numKinds
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case SChar:
		return "signed char"
	case UChar:
		return "unsigned char"
	case Short:
		return "short"
	case UShort:
		return "unsigned short"
	case Int:
		return "int"
	case UInt:
		return "unsigned int"
	case Long:
		return "long"
	case ULong:
		return "unsigned long"
	case LLong:
		return "long long"
	case ULLong:
		return "unsigned long long"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsSigned reports whether k is a signed integer kind. bool is treated
// as unsigned (it has no negative representation).
func IsSigned(k Kind) bool {
	switch k {
	case SChar, Short, Int, Long, LLong:
		return true
	default:
		return false
	}
}

// group buckets kinds into the six standard integer-conversion-rank
// tiers: bool, char, short, int, long, long long. schar/uchar share a
// tier, as do short/ushort, int/uint, long/ulong, llong/ullong — usual
// arithmetic conversion compares tiers, not individual kinds.
func group(k Kind) int {
	switch k {
	case Bool:
		return 0
	case SChar, UChar:
		return 1
	case Short, UShort:
		return 2
	case Int, UInt:
		return 3
	case Long, ULong:
		return 4
	case LLong, ULLong:
		return 5
	default:
		panic(fmt.Sprintf("typedval: bad kind %d", int(k)))
	}
}

// Width returns the bit-width of k under the given bit-mode. Only
// Long/ULong vary with bit-mode: 32-bit long in 32-bit mode, 64-bit
// otherwise.
func Width(k Kind, mode langstd.BitMode) int {
	switch k {
	case Bool, SChar, UChar:
		return 8
	case Short, UShort:
		return 16
	case Int, UInt:
		return 32
	case Long, ULong:
		if mode == langstd.Bits32 {
			return 32
		}
		return 64
	case LLong, ULLong:
		return 64
	default:
		panic(fmt.Sprintf("typedval: bad kind %d", int(k)))
	}
}

// correspondingUnsigned maps a signed kind to its unsigned counterpart
// of the same tier (used by usual arithmetic conversion and by the
// NegativeShiftee rewrite).
func correspondingUnsigned(k Kind) Kind {
	switch k {
	case Bool:
		return Bool
	case SChar:
		return UChar
	case Short:
		return UShort
	case Int:
		return UInt
	case Long:
		return ULong
	case LLong:
		return ULLong
	default:
		return k // already unsigned
	}
}

// CorrespondingUnsigned is the exported form, used by internal/ir's
// NegativeShiftee rebuild rule.
func CorrespondingUnsigned(k Kind) Kind { return correspondingUnsigned(k) }

func correspondingSigned(k Kind) Kind {
	switch k {
	case Bool:
		return Bool
	case UChar:
		return SChar
	case UShort:
		return Short
	case UInt:
		return Int
	case ULong:
		return Long
	case ULLong:
		return LLong
	default:
		return k // already signed
	}
}

// maskWidth returns a mask with the low w bits set (w in [1,64]).
func maskWidth(w int) uint64 {
	if w >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(w)) - 1
}

// Min returns the smallest representable value of k under mode, as a
// zero-UBTag TypedVal.
func Min(k Kind, mode langstd.BitMode) TypedVal {
	w := Width(k, mode)
	if IsSigned(k) {
		var bits uint64
		if w >= 64 {
			bits = uint64(1) << 63
		} else {
			bits = uint64(1) << uint(w-1)
		}
		return TypedVal{Kind: k, Bits: signExtend(bits, w)}
	}
	return TypedVal{Kind: k, Bits: 0}
}

// Max returns the largest representable value of k under mode, as a
// zero-UBTag TypedVal. bool's range is [0, 1] regardless of its storage
// width: conversion to _Bool/bool collapses any nonzero value to 1, and
// the engine's values must match what the target program stores.
func Max(k Kind, mode langstd.BitMode) TypedVal {
	if k == Bool {
		return TypedVal{Kind: Bool, Bits: 1}
	}
	w := Width(k, mode)
	if IsSigned(k) {
		var bits uint64
		if w >= 64 {
			bits = ^(uint64(1) << 63)
		} else {
			bits = maskWidth(w) >> 1
		}
		return TypedVal{Kind: k, Bits: bits}
	}
	return TypedVal{Kind: k, Bits: maskWidth(w)}
}

// signExtend replicates bit w-1 of v into all bits above w-1, the raw
// two's-complement sign extension used throughout this package.
func signExtend(v uint64, w int) uint64 {
	if w >= 64 {
		return v
	}
	v &= maskWidth(w)
	signBit := uint64(1) << uint(w-1)
	if v&signBit != 0 {
		return v | ^maskWidth(w)
	}
	return v
}
