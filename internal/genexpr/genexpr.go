// Package genexpr implements the recursive expression-tree generator:
// top-down construction of expression trees within the policy's depth
// and complexity budgets, with every freshly built node run through
// internal/ir's UB-elimination rewrite before it is returned.
package genexpr

import (
	"oorgen/internal/data"
	"oorgen/internal/ir"
	"oorgen/internal/policy"
	"oorgen/internal/symtab"
	"oorgen/internal/typedval"
)

// ConstBuffers holds the per-statement constant pools refilled before
// every new statement. One instance is built per
// statement via RefillConstBuffers and threaded explicitly alongside
// ctx — storing it on Context.Shared.RunState would make it visible
// to every nested scope for the whole run, when each statement needs
// its own.
type ConstBuffers struct {
	Arith  []typedval.TypedVal
	BitLog []typedval.TypedVal
}

// RefillConstBuffers draws two small pools of constants for kind k,
// one for arithmetic context and one for bit-logical context, so that
// constants within a statement are reused and common subexpressions
// arise. Called once before each new statement.
func RefillConstBuffers(ctx *symtab.Context, k typedval.Kind, count int) *ConstBuffers {
	cb := &ConstBuffers{}
	for i := 0; i < count; i++ {
		cb.Arith = append(cb.Arith, typedval.Generate(ctx.Shared.RNG, k, ctx.Shared.Mode))
		cb.BitLog = append(cb.BitLog, typedval.Generate(ctx.Shared.RNG, k, ctx.Shared.Mode))
	}
	return cb
}

// LeafContext selects which constant buffer a Const leaf draws from:
// arithmetic context or bit-logical context.
type LeafContext int

const (
	ArithContext LeafContext = iota
	BitLogContext
)

// GenerateExpr grows one expression tree: a leaf once depth or the
// complexity budget runs out, an operator node otherwise. lctx selects
// which constant buffer Const leaves draw from; lvalue permits
// Member/Index/Deref leaves over in-scope struct, array, and pointer
// variables, not just plain scalars.
func GenerateExpr(ctx *symtab.Context, inputs []data.Data, depth int, cb *ConstBuffers, lctx LeafContext, lvalue bool) ir.Expr {
	budgetNearlyExhausted := ctx.Shared.Budget.FuncExprCount+1 >= ctx.Policy.TotalExprBudget
	if depth >= ctx.Policy.MaxExprDepth || budgetNearlyExhausted {
		return generateLeaf(ctx, inputs, cb, lctx, lvalue)
	}
	kind := pickOpKind(ctx)
	switch kind {
	case policy.OpUnary:
		return generateUnary(ctx, inputs, depth, cb, lctx, lvalue)
	case policy.OpTernary:
		return generateTernary(ctx, inputs, depth, cb, lctx, lvalue)
	default:
		return generateBinary(ctx, inputs, depth, cb, lctx, lvalue)
	}
}

func pickOpKind(ctx *symtab.Context) policy.ExprOpKind {
	total := ctx.Policy.ExprOpKinds.TotalWeight()
	if total == 0 {
		return policy.OpBinary
	}
	return ctx.Policy.ExprOpKinds.Pick(ctx.Shared.RNG.Intn(total))
}

// generateLeaf picks a leaf: VarUse, Const, or — in an lvalue
// context — a Member, array element, or pointer dereference.
func generateLeaf(ctx *symtab.Context, inputs []data.Data, cb *ConstBuffers, lctx LeafContext, lvalue bool) ir.Expr {
	type choice int
	const (
		chVarUse choice = iota
		chConst
		chMember
		chIndex
		chDeref
	)
	var choices []choice
	var weights []int
	lk := ctx.Policy.LeafKinds
	if len(inputs) > 0 {
		if w := policy.WeightOf(lk, policy.LeafVarUse); w > 0 {
			choices = append(choices, chVarUse)
			weights = append(weights, w)
		}
	}
	constWeight := policy.WeightOf(lk, policy.LeafConst)
	if constWeight < 1 {
		constWeight = 1 // Const is the leaf of last resort and stays drawable
	}
	choices = append(choices, chConst)
	weights = append(weights, constWeight)
	var structs []*data.StructObj
	var arrays []*data.Array
	var pointers []*data.Pointer
	if lvalue {
		for _, v := range ctx.VisibleVars() {
			switch d := v.(type) {
			case *data.StructObj:
				if hasScalarLeaf(d) {
					structs = append(structs, d)
				}
			case *data.Array:
				if d.Len() > 0 {
					arrays = append(arrays, d)
				}
			case *data.Pointer:
				if _, ok := d.Pointee().(*data.Scalar); ok {
					pointers = append(pointers, d)
				}
			}
		}
	}
	if w := policy.WeightOf(lk, policy.LeafMember); w > 0 && len(structs) > 0 {
		choices = append(choices, chMember)
		weights = append(weights, w)
	}
	if w := policy.WeightOf(lk, policy.LeafIndex); w > 0 && len(arrays) > 0 {
		choices = append(choices, chIndex)
		weights = append(weights, w)
	}
	if w := policy.WeightOf(lk, policy.LeafDeref); w > 0 && len(pointers) > 0 {
		choices = append(choices, chDeref)
		weights = append(weights, w)
	}

	total := 0
	for _, w := range weights {
		total += w
	}
	draw := ctx.Shared.RNG.Intn(total)
	var picked choice
	for i, w := range weights {
		if draw < w {
			picked = choices[i]
			break
		}
		draw -= w
	}

	switch picked {
	case chVarUse:
		scalars := filterScalars(inputs)
		if len(scalars) == 0 {
			return generateConst(ctx, cb, lctx)
		}
		return ir.NewVarUseExpr(scalars[ctx.Shared.RNG.Intn(len(scalars))])
	case chMember:
		s := structs[ctx.Shared.RNG.Intn(len(structs))]
		return ir.NewMemberExpr(s, randomMemberPath(ctx, s)...)
	case chIndex:
		a := arrays[ctx.Shared.RNG.Intn(len(arrays))]
		idx := ctx.Shared.RNG.Intn(a.Len())
		return ir.NewIndexExpr(a, idx, ctx.Policy.ArraySubscriptStyle == policy.AtStyle)
	case chDeref:
		p := pointers[ctx.Shared.RNG.Intn(len(pointers))]
		scalar := p.Pointee().(*data.Scalar)
		return ir.NewDerefExpr(p, ir.NewVarUseExpr(scalar))
	default:
		return generateConst(ctx, cb, lctx)
	}
}

// hasScalarLeaf reports whether at least one Scalar is reachable from
// s through named members — the precondition for Member-expression
// access (a struct whose named slots are all scalar-free nested structs
// has nothing an expression can read).
func hasScalarLeaf(s *data.StructObj) bool {
	for i := 0; i < s.MemberCount(); i++ {
		m, _ := s.Member(i)
		switch d := m.(type) {
		case *data.Scalar:
			return true
		case *data.StructObj:
			if hasScalarLeaf(d) {
				return true
			}
		}
	}
	return false
}

// randomMemberPath walks down from s one random slot at a time,
// recursing through nested struct members, until it lands on a slot
// backed by a plain Scalar — the index chain ir.NewMemberExpr needs to
// resolve a Member leaf. Only slots that lead to a scalar are eligible
// at each level, and the caller guarantees hasScalarLeaf(s), so the
// walk always terminates on a Scalar (bounded struct nesting bounds
// its length).
func randomMemberPath(ctx *symtab.Context, s *data.StructObj) []int {
	var path []int
	cur := s
	for {
		var eligible []int
		for i := 0; i < cur.MemberCount(); i++ {
			m, _ := cur.Member(i)
			switch d := m.(type) {
			case *data.Scalar:
				eligible = append(eligible, i)
			case *data.StructObj:
				if hasScalarLeaf(d) {
					eligible = append(eligible, i)
				}
			}
		}
		idx := eligible[ctx.Shared.RNG.Intn(len(eligible))]
		path = append(path, idx)
		m, _ := cur.Member(idx)
		if nested, ok := m.(*data.StructObj); ok {
			cur = nested
			continue
		}
		return path
	}
}

func filterScalars(inputs []data.Data) []*data.Scalar {
	var out []*data.Scalar
	for _, d := range inputs {
		if s, ok := d.(*data.Scalar); ok {
			out = append(out, s)
		}
	}
	return out
}

func generateConst(ctx *symtab.Context, cb *ConstBuffers, lctx LeafContext) ir.Expr {
	var pool []typedval.TypedVal
	if cb != nil {
		if lctx == BitLogContext {
			pool = cb.BitLog
		} else {
			pool = cb.Arith
		}
	}
	if len(pool) == 0 {
		k := pickIntKind(ctx)
		return ir.NewConstExpr(typedval.Generate(ctx.Shared.RNG, k, ctx.Shared.Mode))
	}
	return ir.NewConstExpr(pool[ctx.Shared.RNG.Intn(len(pool))])
}

func pickIntKind(ctx *symtab.Context) typedval.Kind {
	total := ctx.Policy.AllowedIntKinds.TotalWeight()
	if total == 0 {
		return typedval.Int
	}
	return ctx.Policy.AllowedIntKinds.Pick(ctx.Shared.RNG.Intn(total))
}

// applySSP draws one self-similar pattern for an operand and composes
// the matching overlay into that operand's sub-Context: ConstUse
// multiplies the Const leaf weight, SimilarOp multiplies the parent
// operator's own weight. The bias lives for exactly the one recursive
// call the returned Context is passed to; ctx itself is never mutated.
func applySSP(ctx *symtab.Context, similarOverlay policy.Policy) *symtab.Context {
	switch pickSSPKind(ctx) {
	case policy.SSPConstUse:
		return ctx.WithPolicy(ctx.Policy.ComposeConstUse(ctx.Policy.SSPConstUseWeight))
	case policy.SSPSimilarOp:
		return ctx.WithPolicy(ctx.Policy.Compose(similarOverlay))
	default:
		return ctx
	}
}

func pickSSPKind(ctx *symtab.Context) policy.SSPKind {
	total := ctx.Policy.SSPKinds.TotalWeight()
	if total == 0 {
		return policy.SSPNone
	}
	return ctx.Policy.SSPKinds.Pick(ctx.Shared.RNG.Intn(total))
}

// leafContextForUnary classifies an operator's operands as arithmetic
// or bit-logical so Const leaves under it draw from the matching
// buffer.
func leafContextForUnary(op ir.UnaryOp) LeafContext {
	if op == ir.UBitNot || op == ir.ULogNot {
		return BitLogContext
	}
	return ArithContext
}

func leafContextForBinary(op ir.BinaryOp) LeafContext {
	switch op {
	case ir.Shl, ir.Shr, ir.BitAnd, ir.BitXor, ir.BitOr, ir.LogAnd, ir.LogOr:
		return BitLogContext
	default:
		return ArithContext
	}
}

func generateUnary(ctx *symtab.Context, inputs []data.Data, depth int, cb *ConstBuffers, lctx LeafContext, lvalue bool) ir.Expr {
	op := pickUnaryOp(ctx)
	overlay := policy.SimilarUnaryOverlay(int(op), ctx.Policy.SSPSimilarOpWeight)
	argCtx := applySSP(ctx.PushExpr(), overlay)
	arg := GenerateExpr(argCtx, inputs, depth+1, cb, leafContextForUnary(op), lvalue)
	ctx.Shared.Budget.AddExpr(1)
	n := ir.NewUnaryExpr(op, arg, ctx.Shared.Mode)
	rebuildUnary(n, ctx)
	return n
}

func pickUnaryOp(ctx *symtab.Context) ir.UnaryOp {
	ops := []ir.UnaryOp{ir.UPlus, ir.UNegate, ir.ULogNot, ir.UBitNot}
	total := ctx.Policy.AllowedUnaryOps.TotalWeight()
	if total == 0 {
		return ops[ctx.Shared.RNG.Intn(len(ops))]
	}
	return ir.UnaryOp(ctx.Policy.AllowedUnaryOps.Pick(ctx.Shared.RNG.Intn(total)))
}

// rebuildUnary applies the bounded (<=2 attempts) UB-elimination
// loop to a freshly built unary node.
func rebuildUnary(n *ir.UnaryExpr, ctx *symtab.Context) {
	for i := 0; i < 2; i++ {
		n.Rebuild(ctx.Shared.Mode)
	}
}

func generateBinary(ctx *symtab.Context, inputs []data.Data, depth int, cb *ConstBuffers, lctx LeafContext, lvalue bool) ir.Expr {
	op := pickBinaryOp(ctx)
	overlay := policy.SimilarOpOverlay(int(op), ctx.Policy.SSPSimilarOpWeight)
	lhsCtx := applySSP(ctx.PushExpr(), overlay)
	rhsCtx := applySSP(ctx.PushExpr(), overlay)
	opLctx := leafContextForBinary(op)
	lhs := GenerateExpr(lhsCtx, inputs, depth+1, cb, opLctx, lvalue)
	// Generator-level restriction (see DESIGN.md):
	// never place a side-effecting expression as the right operand of
	// && or ||, since value propagation always evaluates both sides
	// regardless of short-circuiting. GenerateExpr never produces an
	// AssignExpr or ++/-- on its own (those only appear as whole
	// ExprStmt bodies built by internal/genstmt), so plain recursive
	// generation already satisfies this.
	rhs := GenerateExpr(rhsCtx, inputs, depth+1, cb, opLctx, lvalue)
	ctx.Shared.Budget.AddExpr(1)
	n := ir.NewBinaryExpr(op, lhs, rhs, ctx.Shared.Mode)
	for i := 0; i < 2; i++ {
		n.Rebuild(ctx.Shared.Mode)
	}
	return n
}

func pickBinaryOp(ctx *symtab.Context) ir.BinaryOp {
	ops := []ir.BinaryOp{
		ir.Add, ir.Sub, ir.Mul, ir.Div, ir.Mod, ir.Shl, ir.Shr,
		ir.Lt, ir.Gt, ir.Le, ir.Ge, ir.Eq, ir.Ne,
		ir.BitAnd, ir.BitXor, ir.BitOr, ir.LogAnd, ir.LogOr,
	}
	total := ctx.Policy.AllowedBinaryOps.TotalWeight()
	if total == 0 {
		return ops[ctx.Shared.RNG.Intn(len(ops))]
	}
	return ir.BinaryOp(ctx.Policy.AllowedBinaryOps.Pick(ctx.Shared.RNG.Intn(total)))
}

func generateTernary(ctx *symtab.Context, inputs []data.Data, depth int, cb *ConstBuffers, lctx LeafContext, lvalue bool) ir.Expr {
	condCtx := ctx.PushExpr()
	cond := GenerateExpr(condCtx, inputs, depth+1, cb, lctx, false)
	lhs := GenerateExpr(ctx.PushExpr(), inputs, depth+1, cb, lctx, lvalue)
	rhs := GenerateExpr(ctx.PushExpr(), inputs, depth+1, cb, lctx, lvalue)
	ctx.Shared.Budget.AddExpr(1)
	return ir.NewTernaryExpr(cond, lhs, rhs, ctx.Shared.Mode)
}
