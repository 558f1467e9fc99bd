// Package policy is the weighted-distribution bundle that drives every
// random choice the generator makes: which integer kinds, operators,
// statement shapes, and structural limits a given run may draw.
package policy

import (
	"oorgen/internal/langstd"
	"oorgen/internal/typedval"
)

// Weighted is a generic categorical distribution: parallel slices of
// values and their relative weights. A zero Weight is legal and means
// "never chosen".
type Weighted[T any] struct {
	Values  []T
	Weights []int
}

// Pick draws one value from w using draw, a uniform integer in
// [0, total weight) supplied by the caller (kept separate from
// randsrc.Source here so this package stays free of a dependency on
// any particular RNG interface).
func (w Weighted[T]) Pick(draw int) T {
	for i, weight := range w.Weights {
		if draw < weight {
			return w.Values[i]
		}
		draw -= weight
	}
	return w.Values[len(w.Values)-1]
}

// TotalWeight sums w's weights, the span Pick's draw argument must be
// drawn uniformly from.
func (w Weighted[T]) TotalWeight() int {
	total := 0
	for _, weight := range w.Weights {
		total += weight
	}
	return total
}

// merge element-wise multiplies two distributions over the same Values
// slice — composing two policies multiplies weights, so a choice
// either side forbids (weight 0) stays forbidden; an overlay can bias
// a policy but never resurrect a choice it rules out. Values absent
// from b keep a's weight (an implicit factor of 1).
func merge[T comparable](a, b Weighted[T]) Weighted[T] {
	out := Weighted[T]{Values: append([]T(nil), a.Values...), Weights: append([]int(nil), a.Weights...)}
	for i, v := range b.Values {
		for j, av := range out.Values {
			if av == v {
				out.Weights[j] *= b.Weights[i]
				break
			}
		}
	}
	return out
}

// UnaryOpSet / BinaryOpSet name the operator-kind enums policy deals
// in without importing internal/ir — kept as plain ints
// mirrored 1:1 onto ir.UnaryOp / ir.BinaryOp by the generator package.
type UnaryOpSet = int
type BinaryOpSet = int

// StmtKind enumerates the statement kinds the statement generator
// chooses among.
type StmtKind int

const (
	StmtDecl StmtKind = iota
	StmtExpr
	StmtIf
	StmtScope
)

// MemberClass enumerates what kind of member a struct generates for
// one of its slots.
type MemberClass int

const (
	MemberScalar MemberClass = iota
	MemberStruct
)

// DeclClass enumerates what kind of variable a Decl statement
// introduces: a plain scalar, a struct instance, a fixed-length array,
// or a pointer.
type DeclClass int

const (
	DeclScalar DeclClass = iota
	DeclStruct
	DeclArray
	DeclPointer
)

// BitfieldClass enumerates a struct member's bit-field probability
// bucket.
type BitfieldClass int

const (
	BitfieldNone BitfieldClass = iota
	BitfieldNamed
	BitfieldUnnamed
)

// ExprOpKind is the top-level choice the expression generator makes
// before it picks a concrete operator.
type ExprOpKind int

const (
	OpUnary ExprOpKind = iota
	OpBinary
	OpTernary
)

// LeafKind enumerates the expression leaves the generator chooses
// among once depth or budget forces a leaf.
type LeafKind int

const (
	LeafVarUse LeafKind = iota
	LeafConst
	LeafMember
	LeafIndex
	LeafDeref
)

// SSPKind enumerates the self-similar patterns: a per-operand draw
// that temporarily biases the sub-policy one recursion level down so a
// subexpression resembles its parent — constant-heavy (ConstUse) or
// repeating the parent operator (SimilarOp).
type SSPKind int

const (
	SSPNone SSPKind = iota
	SSPConstUse
	SSPSimilarOp
)

// Policy is the full bundle of weighted distributions and structural
// limits one generation run draws from.
type Policy struct {
	AllowedIntKinds   Weighted[typedval.Kind]
	AllowedCVQuals    Weighted[int] // types.CVQual values, kept as int so this package does not import internal/types
	AllowStaticVar    bool
	AllowStaticMember bool

	BitfieldProb       Weighted[BitfieldClass]
	MemberClass        Weighted[MemberClass]
	MinStructMembers   int
	MaxStructMembers   int
	MaxStructNestDepth int

	AllowedStmtKinds Weighted[StmtKind]
	AllowedUnaryOps  Weighted[UnaryOpSet]
	AllowedBinaryOps Weighted[BinaryOpSet]
	ExprOpKinds      Weighted[ExprOpKind]
	LeafKinds        Weighted[LeafKind]

	// SSPKinds is drawn once per operand; the factors below are the
	// multiplicative bias the chosen pattern composes into that
	// operand's sub-policy.
	SSPKinds           Weighted[SSPKind]
	SSPConstUseWeight  int // factor ConstUse multiplies the Const leaf weight by
	SSPSimilarOpWeight int // factor SimilarOp multiplies the parent operator's weight by

	MaxExprDepth  int
	MaxScopeDepth int
	MaxIfDepth    int

	MinScopeStmts   int
	MaxScopeStmts   int
	TotalExprBudget int

	ArraySubscriptStyle ArraySubscriptStyle

	// DeclKinds picks what a generated Decl statement introduces;
	// weighted toward DeclScalar so ordinary arithmetic still dominates
	// a generated function's body.
	DeclKinds   Weighted[DeclClass]
	MinArrayLen int
	MaxArrayLen int

	// AllowedAligns drives the __attribute__((aligned(N))) suffix drawn
	// for local scalar declarations; 0 means no alignment attribute.
	AllowedAligns Weighted[uint32]
}

// ArraySubscriptStyle chooses between `a[i]` and `a.at(i)` emission.
type ArraySubscriptStyle int

const (
	BracketStyle ArraySubscriptStyle = iota
	AtStyle
)

// Default returns a reasonable starting policy for the given standard
// and bit-mode: every bare-integer kind equally weighted, no static
// variables or members (conservative default; nothing in the generator
// turns them on), small struct/expr bounds, both
// unary and binary operators fully enabled, and the self-similar
// patterns firing on roughly a quarter of all operands.
func Default(std langstd.Standard, mode langstd.BitMode) Policy {
	kinds := []typedval.Kind{
		typedval.Bool, typedval.SChar, typedval.UChar, typedval.Short, typedval.UShort,
		typedval.Int, typedval.UInt, typedval.Long, typedval.ULong, typedval.LLong, typedval.ULLong,
	}
	weights := make([]int, len(kinds))
	for i := range weights {
		weights[i] = 1
	}
	// Operator sets mirror internal/ir's UnaryOp/BinaryOp enum values
	// one-to-one (policy sits a layer below ir, so they are carried as
	// plain ints): 4..7 are the non-side-effecting prefix unary ops
	// (+, -, !, ~); 0..17 span the full binary set Add..LogOr.
	unaryOps := Weighted[UnaryOpSet]{Values: []UnaryOpSet{4, 5, 6, 7}, Weights: []int{1, 1, 1, 1}}
	binaryOps := Weighted[BinaryOpSet]{Values: make([]BinaryOpSet, 18), Weights: make([]int, 18)}
	for i := range binaryOps.Values {
		binaryOps.Values[i] = i
		binaryOps.Weights[i] = 1
	}
	return Policy{
		AllowedIntKinds: Weighted[typedval.Kind]{Values: kinds, Weights: weights},
		AllowedCVQuals:  Weighted[int]{Values: []int{0, 1, 2, 3}, Weights: []int{4, 1, 1, 1}},

		BitfieldProb: Weighted[BitfieldClass]{
			Values: []BitfieldClass{BitfieldNone, BitfieldNamed, BitfieldUnnamed}, Weights: []int{8, 1, 1},
		},
		MemberClass: Weighted[MemberClass]{
			Values: []MemberClass{MemberScalar, MemberStruct}, Weights: []int{4, 1},
		},
		MinStructMembers:   1,
		MaxStructMembers:   6,
		MaxStructNestDepth: 2,

		AllowedStmtKinds: Weighted[StmtKind]{
			Values:  []StmtKind{StmtDecl, StmtExpr, StmtIf, StmtScope},
			Weights: []int{2, 4, 1, 1},
		},
		AllowedUnaryOps:  unaryOps,
		AllowedBinaryOps: binaryOps,
		ExprOpKinds: Weighted[ExprOpKind]{
			Values: []ExprOpKind{OpUnary, OpBinary, OpTernary}, Weights: []int{1, 3, 1},
		},
		LeafKinds: Weighted[LeafKind]{
			Values:  []LeafKind{LeafVarUse, LeafConst, LeafMember, LeafIndex, LeafDeref},
			Weights: []int{3, 2, 1, 1, 1},
		},

		SSPKinds: Weighted[SSPKind]{
			Values: []SSPKind{SSPNone, SSPConstUse, SSPSimilarOp}, Weights: []int{6, 1, 1},
		},
		SSPConstUseWeight:  3,
		SSPSimilarOpWeight: 4,

		MaxExprDepth:    6,
		MaxScopeDepth:   4,
		MaxIfDepth:      3,
		MinScopeStmts:   3,
		MaxScopeStmts:   10,
		TotalExprBudget: 500,

		DeclKinds: Weighted[DeclClass]{
			Values:  []DeclClass{DeclScalar, DeclStruct, DeclArray, DeclPointer},
			Weights: []int{6, 1, 1, 1},
		},
		MinArrayLen: 2,
		MaxArrayLen: 5,

		AllowedAligns: Weighted[uint32]{
			Values: []uint32{0, 8, 16, 32}, Weights: []int{8, 1, 1, 1},
		},
	}
}

// ConstUseOverlay is the constant-heavy self-similar pattern: under
// Compose its only effect is multiplying the Const leaf weight by
// factor. Callers apply the composed result to exactly one operand's
// Context via Context.WithPolicy, never to the ambient policy in
// place.
func ConstUseOverlay(factor int) Policy {
	return Policy{LeafKinds: Weighted[LeafKind]{
		Values: []LeafKind{LeafConst}, Weights: []int{factor},
	}}
}

// SimilarOpOverlay is the same-operator self-similar pattern for a
// binary parent: multiplies parentOp's weight in AllowedBinaryOps by
// factor.
func SimilarOpOverlay(parentOp BinaryOpSet, factor int) Policy {
	return Policy{AllowedBinaryOps: Weighted[BinaryOpSet]{
		Values: []BinaryOpSet{parentOp}, Weights: []int{factor},
	}}
}

// SimilarUnaryOverlay is the same-operator self-similar pattern for a
// unary parent: multiplies parentOp's weight in AllowedUnaryOps by
// factor.
func SimilarUnaryOverlay(parentOp UnaryOpSet, factor int) Policy {
	return Policy{AllowedUnaryOps: Weighted[UnaryOpSet]{
		Values: []UnaryOpSet{parentOp}, Weights: []int{factor},
	}}
}

// ComposeConstUse composes the ConstUse overlay into p.
func (p Policy) ComposeConstUse(factor int) Policy {
	return p.Compose(ConstUseOverlay(factor))
}

// ComposeSimilarOp composes the binary SimilarOp overlay into p.
func (p Policy) ComposeSimilarOp(parentOp BinaryOpSet, factor int) Policy {
	return p.Compose(SimilarOpOverlay(parentOp, factor))
}

// Compose element-wise multiplies every weighted field of other into
// p, returning a new Policy; booleans are taken from other when it
// sets a true value, otherwise kept from p. An overlay that names only
// some values of a distribution leaves the rest of that distribution
// untouched, and a weight of 0 on either side stays 0.
func (p Policy) Compose(other Policy) Policy {
	cp := p
	cp.AllowedIntKinds = merge(p.AllowedIntKinds, other.AllowedIntKinds)
	cp.AllowedCVQuals = merge(p.AllowedCVQuals, other.AllowedCVQuals)
	cp.BitfieldProb = merge(p.BitfieldProb, other.BitfieldProb)
	cp.MemberClass = merge(p.MemberClass, other.MemberClass)
	cp.AllowedStmtKinds = merge(p.AllowedStmtKinds, other.AllowedStmtKinds)
	cp.AllowedUnaryOps = merge(p.AllowedUnaryOps, other.AllowedUnaryOps)
	cp.AllowedBinaryOps = merge(p.AllowedBinaryOps, other.AllowedBinaryOps)
	cp.ExprOpKinds = merge(p.ExprOpKinds, other.ExprOpKinds)
	cp.LeafKinds = merge(p.LeafKinds, other.LeafKinds)
	cp.SSPKinds = merge(p.SSPKinds, other.SSPKinds)
	cp.DeclKinds = merge(p.DeclKinds, other.DeclKinds)
	cp.AllowedAligns = merge(p.AllowedAligns, other.AllowedAligns)
	if other.AllowStaticVar {
		cp.AllowStaticVar = true
	}
	if other.AllowStaticMember {
		cp.AllowStaticMember = true
	}
	return cp
}

// WeightOf returns v's weight in w, or 0 when v is not present.
func WeightOf[T comparable](w Weighted[T], v T) int {
	for i, val := range w.Values {
		if val == v {
			return w.Weights[i]
		}
	}
	return 0
}
