// Package symtab implements the scoped symbol table and the Context
// stack frame that threads policy, name allocation, and budget
// counters down through generation.
package symtab

import (
	"oorgen/internal/data"
	"oorgen/internal/langstd"
	"oorgen/internal/names"
	"oorgen/internal/policy"
	"oorgen/internal/randsrc"
	"oorgen/internal/types"
)

// contextless helper so RunState can expose a read-only view of its
// struct-type pool without importing internal/genstmt (which depends
// on symtab, not the other way around).
type structPool struct {
	types []types.StructType
}

func (p *structPool) add(t types.StructType)  { p.types = append(p.types, t) }
func (p *structPool) all() []types.StructType { return p.types }

// VarClass categorizes a symbol table entry for emission purposes:
// inputs are read-only after init, mixed are read-write, outputs are
// written at most once, locals never outlive their function.
type VarClass int

const (
	Input VarClass = iota
	Mixed
	Output
	Local
)

// SymbolTable maps names to Data and type names to Type, bucketed by
// VarClass.
type SymbolTable struct {
	vars  [4][]data.Data
	types map[string]types.Type
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{types: make(map[string]types.Type)}
}

// AddVar registers d under class c.
func (st *SymbolTable) AddVar(c VarClass, d data.Data) {
	st.vars[c] = append(st.vars[c], d)
}

// Vars returns every variable registered under class c.
func (st *SymbolTable) Vars(c VarClass) []data.Data {
	return st.vars[c]
}

// AllVars returns every variable in the table regardless of class,
// input first then mixed, output, local — the order the generator
// uses to build an inputs list for expression generation.
func (st *SymbolTable) AllVars() []data.Data {
	var out []data.Data
	for c := Input; c <= Local; c++ {
		out = append(out, st.vars[c]...)
	}
	return out
}

// AddType registers a named type (struct types are the only kind that
// need this — scalar kinds are always anonymous).
func (st *SymbolTable) AddType(name string, t types.Type) {
	st.types[name] = t
}

// LookupType returns the type registered under name, if any.
func (st *SymbolTable) LookupType(name string) (types.Type, bool) {
	t, ok := st.types[name]
	return t, ok
}

// Budget tracks the process-wide and per-function expression/statement
// counters policy decisions read, halting generation once exhausted.
type Budget struct {
	TotalExprCount int
	FuncExprCount  int
	TotalStmtCount int
	FuncStmtCount  int
}

// AddExpr records n more generated expression nodes.
func (b *Budget) AddExpr(n int) { b.TotalExprCount += n; b.FuncExprCount += n }

// AddStmt records one more generated statement.
func (b *Budget) AddStmt() { b.TotalStmtCount++; b.FuncStmtCount++ }

// ZeroFunc resets the per-function counters at the start of a new
// function.
func (b *Budget) ZeroFunc() { b.FuncExprCount = 0; b.FuncStmtCount = 0 }

// RunState is the handful of genuinely run-wide shared mutables: the
// name handler, the static struct member registry, the budget
// counters, and the run's fixed bit-mode/standard/RNG. Every Context
// in a run points at the same RunState; nothing here is ever shared
// across runs.
type RunState struct {
	Names   *names.Handler
	Statics *data.StaticRegistry
	Budget  *Budget
	Mode    langstd.BitMode
	Std     langstd.Standard
	RNG     randsrc.Source

	structs structPool
}

// AddStructType records t in the run's pool of already-generated struct
// types, making it available for later generation decisions to embed
// as a member.
func (r *RunState) AddStructType(t types.StructType) { r.structs.add(t) }

// StructTypePool returns every struct type generated so far this run.
func (r *RunState) StructTypePool() []types.StructType { return r.structs.all() }

// Context is one stack frame of the generation run: a pointer to its
// parent, a local symbol table, the active (possibly SSP-composed)
// policy, and nesting depths, plus a shared reference to the run's
// RunState.
type Context struct {
	Parent *Context
	Local  *SymbolTable
	Policy policy.Policy

	ScopeDepth int
	ExprDepth  int
	IfDepth    int

	Shared *RunState
}

// NewRoot creates the top-level Context for a generation run: fresh
// name handler, fresh static-member registry, zeroed budget, and the
// run's fixed bit-mode/standard/RNG.
func NewRoot(p policy.Policy, mode langstd.BitMode, std langstd.Standard, rng randsrc.Source) *Context {
	return &Context{
		Local:  NewSymbolTable(),
		Policy: p,
		Shared: &RunState{
			Names:   names.New(),
			Statics: data.NewStaticRegistry(),
			Budget:  &Budget{},
			Mode:    mode,
			Std:     std,
			RNG:     rng,
		},
	}
}

// Push creates a child Context for a new scope: it inherits the
// parent's symbol table by reference for reads (via LookupVar /
// VisibleVars, which walk Parent) but all writes land only in the
// child's own Local table.
func (c *Context) Push() *Context {
	return &Context{
		Parent:     c,
		Local:      NewSymbolTable(),
		Policy:     c.Policy,
		ScopeDepth: c.ScopeDepth + 1,
		ExprDepth:  c.ExprDepth,
		IfDepth:    c.IfDepth,
		Shared:     c.Shared,
	}
}

// PushExpr returns a copy of c with ExprDepth incremented, used when
// recursing into a subexpression.
func (c *Context) PushExpr() *Context {
	cc := *c
	cc.ExprDepth++
	return &cc
}

// PushIf returns a copy of c with IfDepth incremented, used when
// entering an if statement's branch scopes.
func (c *Context) PushIf() *Context {
	cc := *c
	cc.IfDepth++
	return &cc
}

// WithPolicy returns a copy of c using p as its active policy — the
// mechanism by which an SSP-composed policy is applied to exactly one
// subexpression's generation without mutating any ancestor Context.
func (c *Context) WithPolicy(p policy.Policy) *Context {
	cc := *c
	cc.Policy = p
	return &cc
}

// LookupVar searches c's local table, then walks up through parents,
// returning the first Data found with the given name.
func (c *Context) LookupVar(name string) (data.Data, bool) {
	for ctx := c; ctx != nil; ctx = ctx.Parent {
		for _, v := range ctx.Local.AllVars() {
			if v.Name() == name {
				return v, true
			}
		}
	}
	return nil, false
}

// VisibleVars collects every variable visible from c: c's own locals
// plus every ancestor's, innermost first — the inputs list the
// expression generator draws VarUse leaves from.
func (c *Context) VisibleVars() []data.Data {
	var out []data.Data
	for ctx := c; ctx != nil; ctx = ctx.Parent {
		out = append(out, ctx.Local.AllVars()...)
	}
	return out
}
