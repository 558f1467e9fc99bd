package types

import (
	"oorgen/internal/langstd"
	"oorgen/internal/names"
	"oorgen/internal/randsrc"
	"oorgen/internal/typedval"
)

// StructGenPolicy is the narrow slice of internal/policy.Policy this
// package's struct generator needs. internal/policy sits a layer above
// this package, so the generator takes its inputs as plain
// values/closures instead of importing it.
type StructGenPolicy struct {
	// PickIntKind draws one allowed integer kind per the caller's
	// policy (internal/policy.Policy.AllowedIntKinds).
	PickIntKind func(rng randsrc.Source) typedval.Kind
	// PickMemberClass reports whether a slot should embed another
	// struct (true) or draw a scalar/bit-field (false), per the
	// caller's MemberClass distribution.
	PickMemberClass func(rng randsrc.Source) bool
	// PickBitfieldClass reports none/named/unnamed for a scalar slot,
	// per the caller's BitfieldProb distribution. Values mirror
	// policy.BitfieldClass (0 = none, 1 = named, 2 = unnamed).
	PickBitfieldClass func(rng randsrc.Source) int
	AllowStaticMember bool
	MinMembers        int
	MaxMembers        int
	MaxNestDepth      int
}

// GenerateStructType builds one StructType: draws a member count in
// [MinMembers, MaxMembers], then for each slot either embeds a struct
// drawn from pool (restricted to those whose NestDepth+1 <
// MaxNestDepth) or draws an integer kind or bit-field per the
// three-way probability. Under the C standards (std.IsC()) a
// bit-field's base kind is narrowed to Int/UInt before use.
func GenerateStructType(rng randsrc.Source, id uint64, name string, std langstd.Standard, mode langstd.BitMode, gp StructGenPolicy, pool []StructType) StructType {
	b := NewStructBuilder(id, name)

	lo, hi := gp.MinMembers, gp.MaxMembers
	if hi < lo {
		hi = lo
	}
	n := lo
	if hi > lo {
		n = lo + rng.Intn(hi-lo+1)
	}
	if n < 1 {
		n = 1
	}

	var embeddable []StructType
	for _, st := range pool {
		if st.NestDepth+1 < gp.MaxNestDepth {
			embeddable = append(embeddable, st)
		}
	}

	for i := 0; i < n; i++ {
		if gp.PickMemberClass(rng) && len(embeddable) > 0 {
			// An embedded struct member is never itself marked static
			// (a static slot resolves through StaticRegistry.Get, which
			// only ever caches a *Scalar): only a plain
			// integer/bit-field slot below can draw Static storage.
			inner := embeddable[rng.Intn(len(embeddable))]
			memberName := names.MemberName(id, i)
			b.AddMember(inner, memberName)
			continue
		}

		storage := Auto
		if gp.AllowStaticMember && rng.Bool() {
			storage = Static
		}
		k := gp.PickIntKind(rng)
		bfClass := gp.PickBitfieldClass(rng)
		if bfClass != 0 && std.IsC() {
			k = cBitfieldBaseKind(k)
		}
		switch {
		case bfClass == 0 || storage == Static:
			// Bit-fields may never be static: a static draw always
			// falls back to a plain integer member.
			memberName := names.MemberName(id, i)
			b.AddMember(NewIntegerType(k, CVNone, storage, 0), memberName)
		case bfClass == 1:
			memberName := names.MemberName(id, i)
			width := bitfieldWidth(rng, k, mode)
			b.AddMember(NewBitFieldType(k, width, CVNone, memberName), memberName)
		default: // unnamed bit-field: shadow-only, never Member-index-reachable
			width := bitfieldWidth(rng, k, mode)
			b.AddShadowMember(NewBitFieldType(k, width, CVNone, ""))
		}
	}
	return b.Build()
}

// cBitfieldBaseKind narrows k to Int or UInt, the only base kinds the C
// standards permit for a bit-field: signed kinds fall back to Int,
// unsigned kinds to UInt.
func cBitfieldBaseKind(k typedval.Kind) typedval.Kind {
	if typedval.IsSigned(k) {
		return typedval.Int
	}
	return typedval.UInt
}

// bitfieldWidth draws a width in [1, kind_width].
func bitfieldWidth(rng randsrc.Source, k typedval.Kind, mode langstd.BitMode) int {
	w := typedval.Width(k, mode)
	if w <= 1 {
		return 1
	}
	return 1 + rng.Intn(w)
}
