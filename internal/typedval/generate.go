package typedval

import (
	"oorgen/internal/langstd"
	"oorgen/internal/randsrc"
)

// Generate draws a uniformly random TypedVal of kind k — used for
// scalar initial values, array bounds, and the per-statement constant
// buffers.
func Generate(rng randsrc.Source, k Kind, mode langstd.BitMode) TypedVal {
	return GenerateRange(rng, k, mode, Min(k, mode), Max(k, mode))
}

// GenerateRange draws a uniformly random TypedVal of kind k within
// [lo, hi] inclusive (both must already be of kind k).
func GenerateRange(rng randsrc.Source, k Kind, mode langstd.BitMode, lo, hi TypedVal) TypedVal {
	if lo.Kind != k || hi.Kind != k {
		panic("typedval: GenerateRange bounds kind mismatch")
	}
	if IsSigned(k) {
		span := uint64(hi.Signed() - lo.Signed())
		if hi.Signed() < lo.Signed() {
			panic("typedval: GenerateRange lo > hi")
		}
		if span == 0 {
			return lo
		}
		if span == ^uint64(0) {
			// full 64-bit range: [MIN, MAX] of a 64-bit kind
			return TypedVal{Kind: k, Bits: rng.Uint64()}
		}
		draw := rng.Uint64() % (span + 1)
		return TypedVal{Kind: k, Bits: canonicalize(k, mode, uint64(lo.Signed())+draw)}
	}
	span := hi.Unsigned() - lo.Unsigned()
	if span == ^uint64(0) {
		return TypedVal{Kind: k, Bits: rng.Uint64()}
	}
	draw := rng.Uint64() % (span + 1)
	return TypedVal{Kind: k, Bits: canonicalize(k, mode, lo.Unsigned()+draw)}
}
