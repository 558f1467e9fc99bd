// Package ir is the expression/statement tree: the generator's
// working representation of a test function's body. Every non-leaf
// constructor performs type propagation (inserting implicit casts) and
// value propagation (evaluating the node over its children's live
// values), and a Rebuild hook rewrites any node whose evaluation hit
// undefined behavior.
//
// Every node owns its children outright and carries the live Data it
// currently evaluates to, so a tree can be walked bottom-up to retype
// and re-evaluate it after a rewrite without re-running the generator.
package ir

import (
	"fmt"
	"math"
	"strings"

	"oorgen/internal/data"
	"oorgen/internal/langstd"
	"oorgen/internal/typedval"
	"oorgen/internal/types"
)

// Expr is the common interface every expression node satisfies. The
// TypedVal a node currently evaluates to is read through valueOf (or
// the exported Value); AddressOfExpr and StubExpr carry none, since a
// pointer's target is modeled by a backing data.Pointer rather than a
// TypedVal.
type Expr interface {
	// Complexity is the node's contribution to the tree's size budget.
	Complexity() uint32
	// Emit renders the node's C/C++/OpenCL spelling onto sb, indented
	// by offset (only multi-line nodes use offset; most expressions
	// ignore it and render inline).
	Emit(sb *strings.Builder, offset string)
}

// scalarExpr is embedded by every leaf/arithmetic node: it carries the
// current TypedVal the node evaluates to, separately from any backing
// variable Data (VarUseExpr, MemberExpr and IndexExpr have one of those).
type scalarExpr struct {
	kind  typedval.Kind
	val   typedval.TypedVal
	compl uint32
}

func (e *scalarExpr) Complexity() uint32 { return e.compl }

// TypedVal returns the node's current value (the common read path for
// propagate_value implementations; a backing data.Scalar keeps the
// variable's own value separately, read through its CurValue).
func (e *scalarExpr) TypedVal() typedval.TypedVal { return e.val }
func (e *scalarExpr) Kind() typedval.Kind         { return e.kind }

// VarUseExpr reads (and, as an assignment target, writes) a Data.
type VarUseExpr struct {
	scalarExpr
	Var *data.Scalar
}

// NewVarUseExpr wraps a scalar variable for use as an expression leaf.
func NewVarUseExpr(v *data.Scalar) *VarUseExpr {
	it := v.Type().(types.IntegerType)
	return &VarUseExpr{scalarExpr: scalarExpr{kind: it.IntKind, val: v.CurValue(), compl: 1}, Var: v}
}

// RawValue exposes the underlying Data directly (used by AssignExpr's
// write-back path).
func (e *VarUseExpr) RawValue() *data.Scalar { return e.Var }

func (e *VarUseExpr) Emit(sb *strings.Builder, offset string) {
	sb.WriteString(e.Var.Name())
}

// ConstExpr is a literal.
type ConstExpr struct {
	scalarExpr
}

// NewConstExpr wraps a literal TypedVal.
func NewConstExpr(v typedval.TypedVal) *ConstExpr {
	return &ConstExpr{scalarExpr{kind: v.Kind, val: v, compl: 1}}
}

func (e *ConstExpr) Emit(sb *strings.Builder, offset string) {
	sb.WriteString(formatLiteral(e.val))
}

// FormatInitLiteral renders a TypedVal the same way ConstExpr.Emit
// does, for callers (cmd/oorgen) that need to print a variable's
// initial value outside of any expression tree.
func FormatInitLiteral(v typedval.TypedVal) string {
	return formatLiteral(v)
}

func formatLiteral(v typedval.TypedVal) string {
	suffix := ""
	switch v.Kind {
	case typedval.ULong:
		suffix = "UL"
	case typedval.Long:
		suffix = "L"
	case typedval.ULLong:
		suffix = "ULL"
	case typedval.LLong:
		suffix = "LL"
	case typedval.UInt, typedval.UShort, typedval.UChar:
		suffix = "U"
	}
	if typedval.IsSigned(v.Kind) {
		s := v.Signed()
		// -2147483648 / -9223372036854775808 cannot be spelled as a
		// single literal: the positive part overflows the target type
		// and the whole expression changes type. Spell MIN as the
		// classic (-MAX - 1) instead.
		if s == math.MinInt64 {
			return fmt.Sprintf("(-%d%s - 1%s)", int64(math.MaxInt64), suffix, suffix)
		}
		if s == math.MinInt32 && (v.Kind == typedval.Int || v.Kind == typedval.Long) {
			return fmt.Sprintf("(-%d%s - 1%s)", int32(math.MaxInt32), suffix, suffix)
		}
		return fmt.Sprintf("%d%s", s, suffix)
	}
	return fmt.Sprintf("%d%s", v.Unsigned(), suffix)
}

// TypeCastExpr represents an implicit or explicit conversion.
type TypeCastExpr struct {
	scalarExpr
	Expr       Expr
	ToType     types.Type
	IsImplicit bool
}

// NewTypeCastExpr wraps expr in a cast to toKind, recomputing its
// value via typedval.Cast.
func NewTypeCastExpr(expr Expr, toType types.Type, mode langstd.BitMode, implicit bool) *TypeCastExpr {
	toKind := types.IntKindOf(toType)
	v := typedval.Cast(valueOf(expr), toKind, mode)
	return &TypeCastExpr{
		scalarExpr: scalarExpr{kind: toKind, val: v, compl: 1 + expr.Complexity()},
		Expr:       expr, ToType: toType, IsImplicit: implicit,
	}
}

func (e *TypeCastExpr) Emit(sb *strings.Builder, offset string) {
	if e.IsImplicit {
		e.Expr.Emit(sb, offset)
		return
	}
	sb.WriteString("(")
	sb.WriteString(e.ToType.String())
	sb.WriteString(")(")
	e.Expr.Emit(sb, offset)
	sb.WriteString(")")
}

// valueOf extracts the TypedVal a generic Expr currently holds,
// panicking for node types that don't carry one (AddressOfExpr,
// StubExpr; an AssignExpr's value is read through Value instead).
func valueOf(e Expr) typedval.TypedVal {
	switch v := e.(type) {
	case *VarUseExpr:
		return v.val
	case *ConstExpr:
		return v.val
	case *TypeCastExpr:
		return v.val
	case *UnaryExpr:
		return v.val
	case *BinaryExpr:
		return v.val
	case *MemberExpr:
		return v.val
	case *IndexExpr:
		return v.val
	case *DerefExpr:
		return v.val
	default:
		panic(fmt.Sprintf("ir: valueOf called on unsupported node %T", e))
	}
}

// Value returns the TypedVal e currently evaluates to, for any node
// kind that carries one (the exported companion to valueOf; callers in
// internal/genstmt use it to read a completed condition's truth value).
func Value(e Expr) typedval.TypedVal {
	if a, ok := e.(*AssignExpr); ok {
		return a.val
	}
	return valueOf(e)
}

// RootUBTag reports the UBTag carried by e's current value, or
// typedval.None for node kinds that don't track one (AddressOfExpr,
// StubExpr). Callers
// (internal/genstmt) check this on every completed top-level
// expression before handing it to a Stmt constructor: a UBTag
// surviving to an expression's root is an InvariantViolation, not a
// value the generator may emit.
func RootUBTag(e Expr) typedval.UBTag {
	switch v := e.(type) {
	case *AssignExpr:
		return v.val.UB
	case *AddressOfExpr:
		return typedval.None
	case *StubExpr:
		return typedval.None
	default:
		return valueOf(e).UB
	}
}

// AssignExpr represents `to = from`. Taken controls
// whether the write-back to To's backing Data actually happens — an
// untaken assignment (inside a branch that generation decided not to
// take) still emits but must not mutate runtime state.
type AssignExpr struct {
	scalarExpr
	To, From Expr
	Taken    bool
}

// NewAssignExpr builds an assignment, inserting an implicit
// TypeCastExpr around From if its kind differs from To's, and — when
// taken — writing the converted value back to To's backing Data. A
// bit-field target additionally narrows the stored value to the
// field's width, and the assignment expression itself
// evaluates to that narrowed value, matching the target language.
func NewAssignExpr(to, from Expr, mode langstd.BitMode, taken bool) *AssignExpr {
	toKind := valueOf(to).Kind
	if valueOf(from).Kind != toKind {
		from = NewTypeCastExpr(from, integerTypeOf(toKind), mode, true)
	}
	v := narrowForTarget(to, valueOf(from))
	if taken {
		writeBack(to, v)
	}
	return &AssignExpr{
		scalarExpr: scalarExpr{kind: toKind, val: v, compl: 1 + to.Complexity() + from.Complexity()},
		To:         to, From: from, Taken: taken,
	}
}

// narrowForTarget applies the target's bit-field masking rule to v, if
// the lhs expression resolves to a bit-field-backed Scalar.
func narrowForTarget(lhs Expr, v typedval.TypedVal) typedval.TypedVal {
	switch e := lhs.(type) {
	case *VarUseExpr:
		return e.Var.Narrow(v)
	case *MemberExpr:
		return e.Member.Narrow(v)
	case *IndexExpr:
		return e.Elem.Narrow(v)
	default:
		return v
	}
}

// integerTypeOf builds a bare IntegerType wrapper around k, used only
// to drive TypeCastExpr's emitted cast spelling.
func integerTypeOf(k typedval.Kind) types.Type {
	return types.NewIntegerType(k, types.CVNone, types.Auto, 0)
}

// writeBack propagates an assignment's new value into the Data the lhs
// expression ultimately names.
func writeBack(lhs Expr, v typedval.TypedVal) {
	switch e := lhs.(type) {
	case *VarUseExpr:
		e.Var.SetCurValue(v)
		e.val = v
	case *MemberExpr:
		e.Member.SetCurValue(v)
		e.val = v
	case *IndexExpr:
		e.Elem.SetCurValue(v)
		e.val = v
	case *DerefExpr:
		if scalar, ok := e.Ptr.Pointee().(*data.Scalar); ok {
			scalar.SetCurValue(v)
		}
		e.val = v
	default:
		panic(fmt.Sprintf("ir: assignment target must be VarUseExpr, MemberExpr, IndexExpr, or DerefExpr, got %T", lhs))
	}
}

func (e *AssignExpr) Emit(sb *strings.Builder, offset string) {
	e.To.Emit(sb, offset)
	sb.WriteString(" = ")
	e.From.Emit(sb, offset)
}

// UnaryExpr represents a prefix unary operator.
type UnaryExpr struct {
	scalarExpr
	Op  UnaryOp
	Arg Expr
}

// UnaryOp enumerates unary operators.
type UnaryOp int

const (
	PreInc UnaryOp = iota
	PreDec
	PostInc
	PostDec
	UPlus
	UNegate
	ULogNot
	UBitNot
)

var unarySpelling = map[UnaryOp]string{
	PreInc: "++", PreDec: "--", PostInc: "++", PostDec: "--",
	UPlus: "+", UNegate: "-", ULogNot: "!", UBitNot: "~",
}

// NewUnaryExpr builds and evaluates a unary node, applying arg's
// integral promotion first (arithmetic ops operate on the promoted
// kind, as C prescribes).
func NewUnaryExpr(op UnaryOp, arg Expr, mode langstd.BitMode) *UnaryExpr {
	promoted := arg
	if op == UPlus || op == UNegate || op == UBitNot {
		promoted = promoteIfNeeded(arg, mode)
	}
	av := valueOf(promoted)
	var v typedval.TypedVal
	switch op {
	case UPlus:
		v = typedval.Plus(av)
	case UNegate:
		v = typedval.Negate(av, mode)
	case ULogNot:
		v = typedval.LogNot(av)
	case UBitNot:
		v = typedval.BitNot(av, mode)
	case PreInc, PreDec, PostInc, PostDec:
		v = typedval.IncDec(av, mode, op == PreInc || op == PostInc)
		writeBack(arg, v)
		if op == PostInc || op == PostDec {
			v = av
		}
	}
	return &UnaryExpr{scalarExpr: scalarExpr{kind: v.Kind, val: v, compl: 1 + arg.Complexity()}, Op: op, Arg: promoted}
}

func promoteIfNeeded(arg Expr, mode langstd.BitMode) Expr {
	k := valueOf(arg).Kind
	promoted := typedval.Promote(k)
	if promoted == k {
		return arg
	}
	return NewTypeCastExpr(arg, integerTypeOf(promoted), mode, true)
}

// Rebuild is the UB-elimination rewrite for a unary node: -INT_MIN is
// rewritten to its bitwise complement, which can never overflow.
func (e *UnaryExpr) Rebuild(mode langstd.BitMode) {
	if e.Op == UNegate && e.val.UB == typedval.SignedOverflowMin {
		e.Op = UBitNot
		e.val = typedval.BitNot(valueOf(e.Arg), mode)
	}
}

func (e *UnaryExpr) Emit(sb *strings.Builder, offset string) {
	switch e.Op {
	case PostInc, PostDec:
		e.Arg.Emit(sb, offset)
		sb.WriteString(unarySpelling[e.Op])
	default:
		sb.WriteString(unarySpelling[e.Op])
		sb.WriteString("(")
		e.Arg.Emit(sb, offset)
		sb.WriteString(")")
	}
}

// BinaryExpr represents an infix binary operator, and doubles as the
// ternary conditional (Cond != nil) — one node type with an optional
// extra child rather than a parallel hierarchy, so propagation and
// rebuild have a single code path.
type BinaryExpr struct {
	scalarExpr
	Op         BinaryOp
	Lhs, Rhs   Expr
	Cond       Expr // non-nil only for the ternary form
}

// BinaryOp enumerates binary operators.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	Shl
	Shr
	Lt
	Gt
	Le
	Ge
	Eq
	Ne
	BitAnd
	BitXor
	BitOr
	LogAnd
	LogOr
)

var binarySpelling = map[BinaryOp]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/", Mod: "%",
	Shl: "<<", Shr: ">>", Lt: "<", Gt: ">", Le: "<=", Ge: ">=",
	Eq: "==", Ne: "!=", BitAnd: "&", BitXor: "^", BitOr: "|",
	LogAnd: "&&", LogOr: "||",
}

// NewBinaryExpr builds and evaluates a binary node, performing the
// usual arithmetic conversion on lhs/rhs first — except for the shift
// operators, whose rhs keeps its own kind per the C standard.
func NewBinaryExpr(op BinaryOp, lhs, rhs Expr, mode langstd.BitMode) *BinaryExpr {
	if op != Shl && op != Shr {
		common := typedval.UsualArithConv(valueOf(lhs).Kind, valueOf(rhs).Kind, mode)
		lhs = castTo(lhs, common, mode)
		rhs = castTo(rhs, common, mode)
	} else {
		lhs = promoteIfNeeded(lhs, mode)
		rhs = promoteIfNeeded(rhs, mode)
	}
	a, b := valueOf(lhs), valueOf(rhs)
	v := evalBinary(op, a, b, mode)
	return &BinaryExpr{scalarExpr: scalarExpr{kind: v.Kind, val: v, compl: 1 + lhs.Complexity() + rhs.Complexity()}, Op: op, Lhs: lhs, Rhs: rhs}
}

// NewTernaryExpr builds the conditional (cond ? lhs : rhs) form,
// sharing BinaryExpr's representation.
func NewTernaryExpr(cond, lhs, rhs Expr, mode langstd.BitMode) *BinaryExpr {
	common := typedval.UsualArithConv(valueOf(lhs).Kind, valueOf(rhs).Kind, mode)
	lhs = castTo(lhs, common, mode)
	rhs = castTo(rhs, common, mode)
	var v typedval.TypedVal
	if valueOf(cond).IsZero() {
		v = valueOf(rhs)
	} else {
		v = valueOf(lhs)
	}
	return &BinaryExpr{scalarExpr: scalarExpr{kind: v.Kind, val: v, compl: 1 + cond.Complexity() + lhs.Complexity() + rhs.Complexity()}, Lhs: lhs, Rhs: rhs, Cond: cond}
}

func castTo(e Expr, k typedval.Kind, mode langstd.BitMode) Expr {
	if valueOf(e).Kind == k {
		return e
	}
	return NewTypeCastExpr(e, integerTypeOf(k), mode, true)
}

// explicitCastTo wraps e in a visible (to_type)(expr) cast to k. Unlike
// castTo's implicit form — used where the target language already
// performs the conversion automatically (usual arithmetic conversion,
// assignment conversion) — a Rebuild rewrite changes the kind an
// operator computes in, which a real C compiler will only honor if the
// cast appears in the emitted source; omitting it would change the
// program right back to the UB the rewrite exists to avoid.
func explicitCastTo(e Expr, k typedval.Kind, mode langstd.BitMode) Expr {
	if valueOf(e).Kind == k {
		return e
	}
	return NewTypeCastExpr(e, integerTypeOf(k), mode, false)
}

func evalBinary(op BinaryOp, a, b typedval.TypedVal, mode langstd.BitMode) typedval.TypedVal {
	switch op {
	case Add:
		return typedval.Add(a, b, mode)
	case Sub:
		return typedval.Sub(a, b, mode)
	case Mul:
		return typedval.Mul(a, b, mode)
	case Div:
		return typedval.Div(a, b, mode)
	case Mod:
		return typedval.Mod(a, b, mode)
	case Shl:
		return typedval.Shl(a, b, mode)
	case Shr:
		return typedval.Shr(a, b, mode)
	case Lt:
		return typedval.Lt(a, b)
	case Gt:
		return typedval.Gt(a, b)
	case Le:
		return typedval.Le(a, b)
	case Ge:
		return typedval.Ge(a, b)
	case Eq:
		return typedval.Eq(a, b)
	case Ne:
		return typedval.Ne(a, b)
	case BitAnd:
		return typedval.BitAnd(a, b, mode)
	case BitXor:
		return typedval.BitXor(a, b, mode)
	case BitOr:
		return typedval.BitOr(a, b, mode)
	case LogAnd:
		return typedval.LogAnd(a, b)
	case LogOr:
		return typedval.LogOr(a, b)
	default:
		panic("ir: unknown binary operator")
	}
}

// Rebuild is the bounded (<=2 attempt) UB-elimination rewrite for a
// binary node, using a fixed deterministic mapping so identical seeds
// always yield identical trees:
//
//   - /,% by zero, and INT_MIN / -1: replace the operator with *
//     (multiplication can hit neither).
//   - overflowing + <-> -; overflowing * becomes / with its rhs
//     clamped to >= 1 so the division itself stays defined.
//   - shift amount out of range: replace rhs with rhs mod the promoted
//     lhs width, as an unsigned constant.
//   - negative shiftee, and << overflowing the signed promoted-lhs
//     type: cast lhs to its corresponding unsigned kind. The cast is
//     explicit — it changes the arithmetic the target compiler
//     performs, so omitting it from the emitted source would put the
//     UB right back.
func (e *BinaryExpr) Rebuild(mode langstd.BitMode) {
	switch e.val.UB {
	case typedval.DivByZero, typedval.SignedOverflowMin:
		if e.Op == Div || e.Op == Mod {
			e.Op = Mul
			e.val = evalBinary(Mul, valueOf(e.Lhs), valueOf(e.Rhs), mode)
		}
	case typedval.SignedOverflow:
		switch e.Op {
		case Add:
			e.Op = Sub
		case Sub:
			e.Op = Add
		case Mul:
			e.Op = Div
			if rhs := valueOf(e.Rhs); typedval.IsSigned(rhs.Kind) && rhs.Signed() < 1 {
				e.Rhs = NewConstExpr(typedval.FromSigned(rhs.Kind, mode, int64(1)))
			}
		case Shl, Shr:
			uk := typedval.CorrespondingUnsigned(valueOf(e.Lhs).Kind)
			e.Lhs = explicitCastTo(e.Lhs, uk, mode)
		}
		e.val = evalBinary(e.Op, valueOf(e.Lhs), valueOf(e.Rhs), mode)
		e.kind = e.val.Kind
	case typedval.ShiftByTooLarge, typedval.ShiftByNegative:
		width := int64(typedval.Width(valueOf(e.Lhs).Kind, mode))
		rhsVal := valueOf(e.Rhs)
		rk := typedval.CorrespondingUnsigned(rhsVal.Kind)
		var wrapped int64
		if typedval.IsSigned(rhsVal.Kind) {
			wrapped = rhsVal.Signed() % width
			if wrapped < 0 {
				wrapped += width
			}
		} else {
			wrapped = int64(rhsVal.Unsigned() % uint64(width))
		}
		e.Rhs = NewConstExpr(typedval.FromUnsigned(rk, mode, uint64(wrapped)))
		e.val = evalBinary(e.Op, valueOf(e.Lhs), valueOf(e.Rhs), mode)
	case typedval.NegativeShiftee:
		uk := typedval.CorrespondingUnsigned(valueOf(e.Lhs).Kind)
		e.Lhs = explicitCastTo(e.Lhs, uk, mode)
		e.val = evalBinary(e.Op, valueOf(e.Lhs), valueOf(e.Rhs), mode)
		e.kind = e.val.Kind
	}
}

func (e *BinaryExpr) Emit(sb *strings.Builder, offset string) {
	if e.Cond != nil {
		sb.WriteString("(")
		e.Cond.Emit(sb, offset)
		sb.WriteString(" ? ")
		e.Lhs.Emit(sb, offset)
		sb.WriteString(" : ")
		e.Rhs.Emit(sb, offset)
		sb.WriteString(")")
		return
	}
	sb.WriteString("(")
	e.Lhs.Emit(sb, offset)
	sb.WriteString(" ")
	sb.WriteString(binarySpelling[e.Op])
	sb.WriteString(" ")
	e.Rhs.Emit(sb, offset)
	sb.WriteString(")")
}

// MemberExpr accesses a struct member, resolved through zero or more
// levels of struct nesting down to its scalar leaf.
type MemberExpr struct {
	scalarExpr
	Root    *data.StructObj
	Indices []int
	Member  *data.Scalar
}

// NewMemberExpr walks s through indices, recursing into any nested
// data.StructObj member until the chain bottoms out at a data.Scalar.
// A single index reaches a
// top-level scalar member directly; additional indices drill through
// an embedded struct member the same way.
func NewMemberExpr(s *data.StructObj, indices ...int) *MemberExpr {
	if len(indices) == 0 {
		panic("ir: member access requires at least one index")
	}
	var cur data.Data = s
	for _, idx := range indices {
		obj, ok := cur.(*data.StructObj)
		if !ok {
			panic("ir: member index chain walks past a scalar leaf")
		}
		m, ok := obj.Member(idx)
		if !ok {
			panic("ir: member index out of range")
		}
		cur = m
	}
	scalar, ok := cur.(*data.Scalar)
	if !ok {
		panic("ir: member index chain does not resolve to a scalar leaf")
	}
	it := scalar.Type().(types.IntegerType)
	return &MemberExpr{
		scalarExpr: scalarExpr{kind: it.IntKind, val: scalar.CurValue(), compl: uint32(len(indices))},
		Root:       s, Indices: append([]int(nil), indices...), Member: scalar,
	}
}

func (e *MemberExpr) Emit(sb *strings.Builder, offset string) {
	// Member.Name() is already the fully-qualified "owner.member" path
	// data.NewStructObj assigned at construction time, so there's
	// nothing to prepend here regardless of whether this access chains
	// through nested struct members.
	sb.WriteString(e.Member.Name())
}

// IndexExpr accesses one element of a fixed-length array, emitted as
// either `a[i]` or `a.at(i)` per AtStyle.
type IndexExpr struct {
	scalarExpr
	Arr     *data.Array
	Idx     int
	AtStyle bool
	Elem    *data.Scalar
}

// NewIndexExpr builds an access to a[idx]; atStyle selects `.at(idx)`
// emission over the default `[idx]` bracket form.
func NewIndexExpr(a *data.Array, idx int, atStyle bool) *IndexExpr {
	el, ok := a.Element(idx)
	if !ok {
		panic("ir: array index out of range")
	}
	scalar, ok := el.(*data.Scalar)
	if !ok {
		panic("ir: array element is not a scalar")
	}
	it := scalar.Type().(types.IntegerType)
	return &IndexExpr{
		scalarExpr: scalarExpr{kind: it.IntKind, val: scalar.CurValue(), compl: 1},
		Arr:        a, Idx: idx, AtStyle: atStyle, Elem: scalar,
	}
}

func (e *IndexExpr) Emit(sb *strings.Builder, offset string) {
	sb.WriteString(e.Arr.Name())
	if e.AtStyle {
		sb.WriteString(".at(")
		sb.WriteString(itoa(e.Idx))
		sb.WriteString(")")
		return
	}
	sb.WriteString("[")
	sb.WriteString(itoa(e.Idx))
	sb.WriteString("]")
}

// AddressOfExpr represents `&expr`.
type AddressOfExpr struct {
	scalarExpr
	Inner Expr
}

// NewAddressOfExpr wraps inner; the result carries no TypedVal of its
// own (pointer values are modeled at the data.Pointer level, not as
// typedval.TypedVal), so its scalarExpr fields are unused beyond
// Complexity.
func NewAddressOfExpr(inner Expr) *AddressOfExpr {
	return &AddressOfExpr{scalarExpr: scalarExpr{compl: 1 + inner.Complexity()}, Inner: inner}
}

func (e *AddressOfExpr) Emit(sb *strings.Builder, offset string) {
	sb.WriteString("&")
	e.Inner.Emit(sb, offset)
}

// DerefExpr represents `*expr`.
type DerefExpr struct {
	scalarExpr
	Ptr     *data.Pointer
	Pointee Expr
}

// NewDerefExpr dereferences ptr; Pointee is the Expr rebuilt over
// ptr's current pointee, kept so Emit and write-back see a live
// expression rather than a raw Data.
func NewDerefExpr(ptr *data.Pointer, pointee Expr) *DerefExpr {
	v := valueOf(pointee)
	return &DerefExpr{scalarExpr: scalarExpr{kind: v.Kind, val: v, compl: 1 + pointee.Complexity()}, Ptr: ptr, Pointee: pointee}
}

func (e *DerefExpr) Emit(sb *strings.Builder, offset string) {
	sb.WriteString("(*")
	sb.WriteString(e.Ptr.Name())
	sb.WriteString(")")
}

// StubExpr wraps a literal snippet of emitted text — never produced by
// the expression generator itself, but useful where a declaration
// needs a non-expression initializer form (array brace lists) or a
// partially-built tree needs a placeholder child.
type StubExpr struct {
	scalarExpr
	Text string
}

// NewStubExpr wraps a literal snippet of text.
func NewStubExpr(text string) *StubExpr {
	return &StubExpr{scalarExpr: scalarExpr{compl: 1}, Text: text}
}

func (e *StubExpr) Emit(sb *strings.Builder, offset string) {
	sb.WriteString(e.Text)
}
