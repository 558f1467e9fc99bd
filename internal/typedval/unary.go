package typedval

import "oorgen/internal/langstd"

// Negate implements unary -: negating the minimum of a signed kind is
// SignedOverflowMin, anything else is a two's-complement negate.
func Negate(a TypedVal, mode langstd.BitMode) TypedVal {
	if a.UB != None {
		return TypedVal{Kind: a.Kind, UB: a.UB}
	}
	if IsSigned(a.Kind) {
		if a.Bits == Min(a.Kind, mode).Bits {
			return TypedVal{Kind: a.Kind, UB: SignedOverflowMin}
		}
		return TypedVal{Kind: a.Kind, Bits: canonicalize(a.Kind, mode, uint64(-a.Signed()))}
	}
	return TypedVal{Kind: a.Kind, Bits: canonicalize(a.Kind, mode, -a.Unsigned())}
}

// Plus implements unary + (identity, never UB beyond sticky
// propagation).
func Plus(a TypedVal) TypedVal {
	return a
}

// LogNot implements !: result kind int, value in {0,1}.
func LogNot(a TypedVal) TypedVal {
	if a.UB != None {
		return TypedVal{Kind: Int, UB: a.UB}
	}
	if a.IsZero() {
		return TypedVal{Kind: Int, Bits: 1}
	}
	return TypedVal{Kind: Int, Bits: 0}
}

// BitNot implements ~ (bitwise, never UB beyond sticky propagation).
func BitNot(a TypedVal, mode langstd.BitMode) TypedVal {
	if a.UB != None {
		return TypedVal{Kind: a.Kind, UB: a.UB}
	}
	return TypedVal{Kind: a.Kind, Bits: canonicalize(a.Kind, mode, ^a.Bits)}
}

// IncDec implements the arithmetic half of ++/-- (overflow behaves
// exactly as for +/-); the caller (internal/ir's Unary
// node) is responsible for writing the result back to the target
// Data and for choosing which value (pre- or post-) the expression
// itself evaluates to.
func IncDec(a TypedVal, mode langstd.BitMode, increment bool) TypedVal {
	one := TypedVal{Kind: a.Kind, Bits: 1}
	if increment {
		return Add(a, one, mode)
	}
	return Sub(a, one, mode)
}
