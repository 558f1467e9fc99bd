// Package genstmt implements scope and statement generation plus the
// top-level program driver: declarations, assignments, conditionals,
// and nested scopes, assembled per function under the active policy.
package genstmt

import (
	"fmt"
	"runtime"

	"oorgen/internal/data"
	"oorgen/internal/genexpr"
	"oorgen/internal/ierrors"
	"oorgen/internal/ir"
	"oorgen/internal/names"
	"oorgen/internal/policy"
	"oorgen/internal/symtab"
	"oorgen/internal/typedval"
	"oorgen/internal/types"
)

// assertNoUB panics with an InvariantViolation if e's root value still
// carries a UBTag: a completed expression must evaluate UB-free.
// Every top-level expression this package hands to a Stmt constructor
// passes through here first — internal/ir's rebuild loop eliminates UB
// at each node as it's built, but a tag can still survive to the root
// via sticky propagation from a child the rebuild rules don't cover,
// and the outermost node is where that chain ends.
func assertNoUB(e ir.Expr) {
	if tag := ir.RootUBTag(e); tag != typedval.None {
		pc, file, line, _ := runtime.Caller(1)
		fn := runtime.FuncForPC(pc).Name()
		panic(ierrors.NewInvariantViolation(
			fmt.Sprintf("generated expression root still carries UBTag %s", tag),
			file, line, fn,
		))
	}
}

// GenerateScope builds one scope: a statement count is drawn from
// [policy.MinScopeStmts, MaxScopeStmts], and each slot draws a
// statement kind per policy and calls its generator.
func GenerateScope(ctx *symtab.Context) *ir.ScopeStmt {
	scope := ir.NewScopeStmt()
	lo, hi := ctx.Policy.MinScopeStmts, ctx.Policy.MaxScopeStmts
	if hi < lo {
		hi = lo
	}
	n := lo
	if hi > lo {
		n = lo + ctx.Shared.RNG.Intn(hi-lo+1)
	}
	for i := 0; i < n; i++ {
		if ctx.Shared.Budget.FuncExprCount >= ctx.Policy.TotalExprBudget {
			break
		}
		scope.Add(generateStmt(ctx))
	}
	return scope
}

func generateStmt(ctx *symtab.Context) ir.Stmt {
	kind := pickStmtKind(ctx)
	switch kind {
	case policy.StmtDecl:
		return generateDecl(ctx)
	case policy.StmtIf:
		if ctx.IfDepth >= ctx.Policy.MaxIfDepth {
			return generateExprStmt(ctx)
		}
		return generateIf(ctx)
	case policy.StmtScope:
		if ctx.ScopeDepth >= ctx.Policy.MaxScopeDepth {
			return generateExprStmt(ctx)
		}
		ctx.Shared.Budget.AddStmt()
		return GenerateScope(ctx.Push())
	default:
		return generateExprStmt(ctx)
	}
}

func pickStmtKind(ctx *symtab.Context) policy.StmtKind {
	total := ctx.Policy.AllowedStmtKinds.TotalWeight()
	if total == 0 {
		return policy.StmtExpr
	}
	return ctx.Policy.AllowedStmtKinds.Pick(ctx.Shared.RNG.Intn(total))
}

func pickIntKind(ctx *symtab.Context) typedval.Kind {
	total := ctx.Policy.AllowedIntKinds.TotalWeight()
	if total == 0 {
		return typedval.Int
	}
	return ctx.Policy.AllowedIntKinds.Pick(ctx.Shared.RNG.Intn(total))
}

func pickCVQual(ctx *symtab.Context) types.CVQual {
	total := ctx.Policy.AllowedCVQuals.TotalWeight()
	if total == 0 {
		return types.CVNone
	}
	return types.CVQual(ctx.Policy.AllowedCVQuals.Pick(ctx.Shared.RNG.Intn(total)))
}

func pickAlign(ctx *symtab.Context) uint32 {
	total := ctx.Policy.AllowedAligns.TotalWeight()
	if total == 0 {
		return 0
	}
	return ctx.Policy.AllowedAligns.Pick(ctx.Shared.RNG.Intn(total))
}

// generateDecl dispatches to a scalar, struct, array, or pointer
// declaration per policy.DeclKinds, weighted toward scalars so ordinary arithmetic still
// dominates a generated function's body.
func generateDecl(ctx *symtab.Context) ir.Stmt {
	switch pickDeclKind(ctx) {
	case policy.DeclStruct:
		return generateStructDecl(ctx)
	case policy.DeclArray:
		return generateArrayDecl(ctx)
	case policy.DeclPointer:
		return generatePointerDecl(ctx)
	default:
		return generateScalarDecl(ctx)
	}
}

func pickDeclKind(ctx *symtab.Context) policy.DeclClass {
	total := ctx.Policy.DeclKinds.TotalWeight()
	if total == 0 {
		return policy.DeclScalar
	}
	return ctx.Policy.DeclKinds.Pick(ctx.Shared.RNG.Intn(total))
}

// generateScalarDecl builds a DeclStmt for a fresh local scalar,
// registers it in the current scope's symbol table, and records the
// statement against the run's budget.
func generateScalarDecl(ctx *symtab.Context) ir.Stmt {
	k := pickIntKind(ctx)
	name := ctx.Shared.Names.ScalarVarName()
	it := types.NewIntegerType(k, types.CVNone, types.Auto, pickAlign(ctx))
	v := data.GenerateScalar(ctx.Shared.RNG, name, it, ctx.Shared.Mode)
	ctx.Local.AddVar(symtab.Local, v)
	ctx.Shared.Budget.AddStmt()

	inputs := ctx.VisibleVars()
	cb := genexpr.RefillConstBuffers(ctx, k, 4)
	expr := genexpr.GenerateExpr(ctx.PushExpr(), inputs, 0, cb, genexpr.ArithContext, true)
	assertNoUB(expr)
	return ir.NewDeclStmt(v, expr)
}

// generateExprStmt builds a statement out of an assignment to an
// existing in-scope scalar, or — if none is writable yet — a bare
// DeclStmt fallback.
func generateExprStmt(ctx *symtab.Context) ir.Stmt {
	scalars := writableScalars(ctx)
	if len(scalars) == 0 {
		return generateDecl(ctx)
	}
	ctx.Shared.Budget.AddStmt()
	target := scalars[ctx.Shared.RNG.Intn(len(scalars))]
	lhs := ir.NewVarUseExpr(target)
	it := target.Type().(types.IntegerType)
	cb := genexpr.RefillConstBuffers(ctx, it.IntKind, 4)
	rhs := genexpr.GenerateExpr(ctx.PushExpr(), ctx.VisibleVars(), 0, cb, genexpr.ArithContext, true)
	assign := ir.NewAssignExpr(lhs, rhs, ctx.Shared.Mode, true)
	assertNoUB(assign)
	return ir.NewExprStmt(assign)
}

// writableScalars collects the scalars an assignment may target,
// honoring the variable categories: input variables are
// read-only after init, output variables are written at most once
// (skipped once WasChanged reports a prior write), const-qualified
// variables never qualify.
func writableScalars(ctx *symtab.Context) []*data.Scalar {
	var out []*data.Scalar
	for c := ctx; c != nil; c = c.Parent {
		for _, class := range []symtab.VarClass{symtab.Mixed, symtab.Output, symtab.Local} {
			for _, v := range c.Local.Vars(class) {
				s, ok := v.(*data.Scalar)
				if !ok {
					continue
				}
				if cv := s.Type().CVQual(); cv == types.CVConst || cv == types.CVConstVolatile {
					continue
				}
				if class == symtab.Output && s.WasChanged() {
					continue
				}
				out = append(out, s)
			}
		}
	}
	return out
}

// generateIf builds an IfStmt: the condition's value is known at
// generation time (it's fully evaluated, not symbolic), so taken is
// set directly from cond's truthiness, and only the taken branch's
// assignments actually land in Data — the untaken branch still emits,
// its writes just never happen.
func generateIf(ctx *symtab.Context) ir.Stmt {
	return generateIfTaken(ctx, true)
}

// generateIfTaken is generateIf inside a branch that may itself be
// untaken: a branch only executes at runtime when the whole chain of
// enclosing conditions does, so each branch's effective taken flag is
// outerTaken ANDed with this condition's truthiness.
func generateIfTaken(ctx *symtab.Context, outerTaken bool) ir.Stmt {
	ctx.Shared.Budget.AddStmt()
	condCtx := ctx.PushIf()
	k := pickIntKind(ctx)
	cb := genexpr.RefillConstBuffers(ctx, k, 4)
	cond := genexpr.GenerateExpr(condCtx, ctx.VisibleVars(), 0, cb, genexpr.ArithContext, true)
	assertNoUB(cond)
	condTrue := !ir.Value(cond).IsZero()
	taken := outerTaken && condTrue

	thenCtx := condCtx.Push()
	thenScope := generateTakenScope(thenCtx, taken)

	var elseScope *ir.ScopeStmt
	if ctx.Shared.RNG.Bool() {
		elseCtx := condCtx.Push()
		elseScope = generateTakenScope(elseCtx, outerTaken && !condTrue)
	}
	return ir.NewIfStmt(cond, thenScope, elseScope, taken)
}

// generateTakenScope generates a scope's statements and passes taken
// down to every assignment and nested if it builds: NewAssignExpr
// writes its value back through SetCurValue only when its taken flag
// is true, so assignments in an untaken branch never change a
// variable's current value.
func generateTakenScope(ctx *symtab.Context, taken bool) *ir.ScopeStmt {
	scope := ir.NewScopeStmt()
	lo, hi := ctx.Policy.MinScopeStmts, ctx.Policy.MaxScopeStmts
	if hi < lo {
		hi = lo
	}
	n := lo
	if hi > lo {
		n = lo + ctx.Shared.RNG.Intn(hi-lo+1)
	}
	for i := 0; i < n; i++ {
		if ctx.Shared.Budget.FuncExprCount >= ctx.Policy.TotalExprBudget {
			break
		}
		scope.Add(generateStmtTaken(ctx, taken))
	}
	return scope
}

func generateStmtTaken(ctx *symtab.Context, taken bool) ir.Stmt {
	kind := pickStmtKind(ctx)
	switch kind {
	case policy.StmtDecl:
		return generateDecl(ctx)
	case policy.StmtIf:
		if ctx.IfDepth >= ctx.Policy.MaxIfDepth {
			return generateExprStmtTaken(ctx, taken)
		}
		return generateIfTaken(ctx, taken)
	case policy.StmtScope:
		if ctx.ScopeDepth >= ctx.Policy.MaxScopeDepth {
			return generateExprStmtTaken(ctx, taken)
		}
		ctx.Shared.Budget.AddStmt()
		return generateTakenScope(ctx.Push(), taken)
	default:
		return generateExprStmtTaken(ctx, taken)
	}
}

func generateExprStmtTaken(ctx *symtab.Context, taken bool) ir.Stmt {
	scalars := writableScalars(ctx)
	if len(scalars) == 0 {
		return generateDecl(ctx)
	}
	ctx.Shared.Budget.AddStmt()
	target := scalars[ctx.Shared.RNG.Intn(len(scalars))]
	lhs := ir.NewVarUseExpr(target)
	it := target.Type().(types.IntegerType)
	cb := genexpr.RefillConstBuffers(ctx, it.IntKind, 4)
	rhs := genexpr.GenerateExpr(ctx.PushExpr(), ctx.VisibleVars(), 0, cb, genexpr.ArithContext, true)
	assign := ir.NewAssignExpr(lhs, rhs, ctx.Shared.Mode, taken)
	assertNoUB(assign)
	return ir.NewExprStmt(assign)
}

// Function is one generated test function: its body scope plus the
// name it was generated under.
type Function struct {
	Name string
	Body *ir.ScopeStmt
}

// Program is the top-level driver's result: the extern variables plus
// every generated function. ExternInp, ExternMix and ExternOut all
// reference the root Context's one symbol table, which keeps the
// input, mixed and output variables apart by VarClass.
type Program struct {
	RootCtx   *symtab.Context
	ExternInp *symtab.SymbolTable
	ExternMix *symtab.SymbolTable
	ExternOut *symtab.SymbolTable
	Functions []Function
}

// GenerateProgram takes the run's root Context, materializes the
// extern variables of each class by generating top-level variables per policy,
// then repeatedly generates function scopes until funcCount is
// reached, resetting the per-function counters before each.
func GenerateProgram(ctx *symtab.Context, funcCount int, varsPerClass int) *Program {
	prog := &Program{RootCtx: ctx, ExternInp: ctx.Local, ExternMix: ctx.Local, ExternOut: ctx.Local}
	formExternSymTable(ctx, varsPerClass)

	for i := 0; i < funcCount; i++ {
		ctx.Shared.Budget.ZeroFunc()
		fnName := fmt.Sprintf("test_func_%d", i)
		body := GenerateScope(ctx.Push())
		prog.Functions = append(prog.Functions, Function{Name: fnName, Body: body})
	}
	return prog
}

// formExternSymTable generates varsPerClass top-level variables for
// each of input/mixed/output: all three kinds are declared extern for the
// core test functions to defeat constant propagation, and are
// initialized at program startup to avoid reading an uninitialized
// value (UB the generator must never emit). Only the input class draws
// cv-qualifiers from the policy: inputs are read-only after init, so a
// const or volatile spelling never conflicts with an assignment target.
func formExternSymTable(ctx *symtab.Context, varsPerClass int) {
	for _, class := range []symtab.VarClass{symtab.Input, symtab.Mixed, symtab.Output} {
		for i := 0; i < varsPerClass; i++ {
			k := pickIntKind(ctx)
			cv := types.CVNone
			if class == symtab.Input {
				cv = pickCVQual(ctx)
			}
			name := ctx.Shared.Names.ScalarVarName()
			it := types.NewIntegerType(k, cv, types.Auto, 0)
			v := data.GenerateScalar(ctx.Shared.RNG, name, it, ctx.Shared.Mode)
			ctx.Local.AddVar(class, v)
		}
	}
}

// Reset makes the Context fit for a fresh run with an independent
// names.Handler and static registry, so a later run never observes the
// earlier run's generated names or static members.
func Reset(ctx *symtab.Context) {
	ctx.Shared.Names = names.New()
	ctx.Shared.Statics = data.NewStaticRegistry()
}
