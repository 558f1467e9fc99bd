package typedval

import "oorgen/internal/langstd"

// Promote implements integral promotion: any kind whose rank is below
// int promotes to int. Every such kind (bool/schar/uchar/short/ushort)
// fits in a 32-bit int, so Promote never yields unsigned int; kinds of
// int rank or above are returned unchanged.
func Promote(k Kind) Kind {
	if group(k) >= group(Int) {
		return k
	}
	return Int
}

// CanRepresent reports whether every value of kind b is representable
// in kind a.
func CanRepresent(a, b Kind, mode langstd.BitMode) bool {
	wa, wb := Width(a, mode), Width(b, mode)
	if IsSigned(a) == IsSigned(b) {
		return wa >= wb
	}
	if IsSigned(a) && !IsSigned(b) {
		// signed a must have strictly more magnitude room than unsigned b
		return wa > wb
	}
	// a unsigned, b signed: a can't represent b's negative values.
	return false
}

// UsualArithConv implements the usual arithmetic conversion for a
// binary operator's two already-promoted-or-not operand kinds,
// returning the single kind both operands convert to.
func UsualArithConv(a, b Kind, mode langstd.BitMode) Kind {
	pa, pb := Promote(a), Promote(b)
	if pa == pb {
		return pa
	}
	sa, sb := IsSigned(pa), IsSigned(pb)
	if sa == sb {
		// (a) same signedness: lower rank converts to higher.
		if group(pa) >= group(pb) {
			return pa
		}
		return pb
	}
	// mixed signedness: identify which operand is which.
	var signedK, unsignedK Kind
	if sa {
		signedK, unsignedK = pa, pb
	} else {
		signedK, unsignedK = pb, pa
	}
	if group(unsignedK) >= group(signedK) {
		// (b) unsigned operand's rank >= signed's: convert signed->unsigned.
		return unsignedK
	}
	if CanRepresent(signedK, unsignedK, mode) {
		// (c) signed can represent all unsigned values.
		return signedK
	}
	// (d) convert both to the unsigned counterpart of the signed kind.
	return correspondingUnsigned(signedK)
}

// Cast reinterprets v under the target kind's conversion rules:
// to-unsigned is modulo 2^width; to-signed is value-preserving if
// representable, otherwise the engine chooses truncation +
// sign-extension on the low to_width bits (the usual
// implementation-defined choice). UBTag is preserved — a cast of an
// already-UB value stays tagged with the same UB, it does not clear or
// reclassify it.
func Cast(v TypedVal, to Kind, mode langstd.BitMode) TypedVal {
	return TypedVal{
		Kind: to,
		Bits: canonicalize(to, mode, v.Bits),
		UB:   v.UB,
	}
}

// MaskToWidth narrows v to a w-bit storage slot: the low w bits,
// sign-extended for signed kinds and zero-extended otherwise — the
// rule a bit-field assignment applies to its source value. The kind is
// unchanged; a bit-field's value still participates in arithmetic as
// its base kind.
func MaskToWidth(v TypedVal, w int) TypedVal {
	if IsSigned(v.Kind) {
		return TypedVal{Kind: v.Kind, Bits: signExtend(v.Bits, w), UB: v.UB}
	}
	return TypedVal{Kind: v.Kind, Bits: v.Bits & maskWidth(w), UB: v.UB}
}

// WidthMin returns the smallest value a w-bit slot of k's signedness
// can hold, as a TypedVal of kind k.
func WidthMin(k Kind, w int) TypedVal {
	if !IsSigned(k) || w < 1 {
		return TypedVal{Kind: k}
	}
	return TypedVal{Kind: k, Bits: signExtend(uint64(1)<<uint(w-1), w)}
}

// WidthMax returns the largest value a w-bit slot of k's signedness can
// hold, as a TypedVal of kind k.
func WidthMax(k Kind, w int) TypedVal {
	if IsSigned(k) {
		return TypedVal{Kind: k, Bits: maskWidth(w) >> 1}
	}
	return TypedVal{Kind: k, Bits: maskWidth(w)}
}
