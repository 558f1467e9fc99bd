package symtab

import (
	"testing"

	"oorgen/internal/data"
	"oorgen/internal/langstd"
	"oorgen/internal/policy"
	"oorgen/internal/randsrc"
	"oorgen/internal/typedval"
	"oorgen/internal/types"
)

func newScalar(name string) *data.Scalar {
	it := types.NewIntegerType(typedval.Int, types.CVNone, types.Auto, 0)
	return data.NewScalar(name, it, langstd.Bits64, typedval.Zero(typedval.Int))
}

func newTestRoot() *Context {
	return NewRoot(policy.Default(langstd.C99, langstd.Bits64), langstd.Bits64, langstd.C99, randsrc.NewPCG(1))
}

func TestChildScopeReadsThroughParent(t *testing.T) {
	root := newTestRoot()
	root.Local.AddVar(Local, newScalar("outer"))

	child := root.Push()
	if _, ok := child.LookupVar("outer"); !ok {
		t.Fatalf("child scope cannot see parent's variable")
	}

	child.Local.AddVar(Local, newScalar("inner"))
	if _, ok := root.LookupVar("inner"); ok {
		t.Fatalf("child's declaration leaked into the parent scope")
	}
	if child.ScopeDepth != root.ScopeDepth+1 {
		t.Fatalf("ScopeDepth = %d, want %d", child.ScopeDepth, root.ScopeDepth+1)
	}
}

func TestVisibleVarsInnermostFirst(t *testing.T) {
	root := newTestRoot()
	root.Local.AddVar(Local, newScalar("a"))
	child := root.Push()
	child.Local.AddVar(Local, newScalar("b"))

	vars := child.VisibleVars()
	if len(vars) != 2 {
		t.Fatalf("VisibleVars = %d entries, want 2", len(vars))
	}
	if vars[0].Name() != "b" || vars[1].Name() != "a" {
		t.Fatalf("VisibleVars order = [%s %s], want innermost first [b a]", vars[0].Name(), vars[1].Name())
	}
}

func TestSymbolTableClassBuckets(t *testing.T) {
	st := NewSymbolTable()
	st.AddVar(Input, newScalar("in0"))
	st.AddVar(Output, newScalar("out0"))

	if got := len(st.Vars(Input)); got != 1 {
		t.Fatalf("Vars(Input) = %d, want 1", got)
	}
	if got := len(st.Vars(Mixed)); got != 0 {
		t.Fatalf("Vars(Mixed) = %d, want 0", got)
	}
	all := st.AllVars()
	if len(all) != 2 || all[0].Name() != "in0" {
		t.Fatalf("AllVars order/content wrong: %v", all)
	}
}

func TestBudgetCounters(t *testing.T) {
	var b Budget
	b.AddExpr(3)
	b.AddStmt()
	b.ZeroFunc()
	b.AddExpr(2)

	if b.TotalExprCount != 5 || b.FuncExprCount != 2 {
		t.Fatalf("expr counters = total %d / func %d, want 5 / 2", b.TotalExprCount, b.FuncExprCount)
	}
	if b.TotalStmtCount != 1 || b.FuncStmtCount != 0 {
		t.Fatalf("stmt counters = total %d / func %d, want 1 / 0", b.TotalStmtCount, b.FuncStmtCount)
	}
}
