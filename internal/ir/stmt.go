package ir

import (
	"strings"

	"oorgen/internal/data"
	"oorgen/internal/types"
)

// Stmt is the common interface every statement node satisfies.
type Stmt interface {
	Emit(sb *strings.Builder, offset string)
}

// DeclStmt declares a new variable, with an optional initializer.
// IsExtern switches emission to an `extern` declaration with
// no initializer — used only when rendering a translation unit's global
// forward declarations, not during generation itself.
type DeclStmt struct {
	Var      data.Data
	Init     Expr
	IsExtern bool
}

// NewDeclStmt builds a declaration statement for var_, optionally
// initialized by init (nil for an uninitialized declaration). When
// var_ is a *data.Scalar and init is non-nil, its init/current value is
// overwritten to init's computed value — the emitted C initializer and
// the generator's own value prediction must agree, so a Decl can't
// leave var_ holding the independently-random value
// data.GenerateScalar drew for it at construction.
func NewDeclStmt(var_ data.Data, init Expr) *DeclStmt {
	if init != nil {
		if s, ok := var_.(*data.Scalar); ok {
			s.SetInitValue(valueOf(init))
		}
	}
	return &DeclStmt{Var: var_, Init: init}
}

func (s *DeclStmt) Emit(sb *strings.Builder, offset string) {
	sb.WriteString(offset)
	if s.IsExtern {
		sb.WriteString("extern ")
	}
	if at, ok := s.Var.Type().(types.ArrayType); ok && at.ArrKind == types.PlainArray {
		// A plain C array's length lives in the declarator, not the
		// type spelling: "int name[3];", never "int[3] name;".
		sb.WriteString(at.Elem.String())
		sb.WriteString(" ")
		sb.WriteString(s.Var.Name())
		sb.WriteString("[")
		sb.WriteString(itoa(at.Length))
		sb.WriteString("]")
	} else {
		sb.WriteString(s.Var.Type().String())
		sb.WriteString(" ")
		sb.WriteString(s.Var.Name())
	}
	if !s.IsExtern && s.Init != nil {
		sb.WriteString(" = ")
		s.Init.Emit(sb, offset)
	}
	sb.WriteString(";\n")
}

// FormatInt renders n in decimal, shared with cmd/oorgen's struct
// definition emission (bit-field widths, array lengths).
func FormatInt(n int) string { return itoa(n) }

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// ExprStmt turns any expression into a statement —
// its chief use is an AssignExpr evaluated purely for its side effect.
type ExprStmt struct {
	Expr Expr
}

// NewExprStmt wraps expr as a statement.
func NewExprStmt(expr Expr) *ExprStmt {
	return &ExprStmt{Expr: expr}
}

func (s *ExprStmt) Emit(sb *strings.Builder, offset string) {
	sb.WriteString(offset)
	s.Expr.Emit(sb, offset)
	sb.WriteString(";\n")
}

// ScopeStmt is a brace-delimited sequence of statements.
type ScopeStmt struct {
	Stmts []Stmt
}

// NewScopeStmt returns an empty scope.
func NewScopeStmt() *ScopeStmt {
	return &ScopeStmt{}
}

// Add appends one or more statements to the scope's body.
func (s *ScopeStmt) Add(stmts ...Stmt) {
	s.Stmts = append(s.Stmts, stmts...)
}

func (s *ScopeStmt) Emit(sb *strings.Builder, offset string) {
	sb.WriteString(offset)
	sb.WriteString("{\n")
	inner := offset + "    "
	for _, st := range s.Stmts {
		st.Emit(sb, inner)
	}
	sb.WriteString(offset)
	sb.WriteString("}\n")
}

// StmtList is a flat sequence of sibling statements emitted without
// braces — used when one generation step yields several statements that
// must share the enclosing scope (a struct declaration followed by its
// member initializers).
type StmtList struct {
	Stmts []Stmt
}

// NewStmtList wraps stmts as one unbraced statement sequence.
func NewStmtList(stmts ...Stmt) *StmtList {
	return &StmtList{Stmts: stmts}
}

func (s *StmtList) Emit(sb *strings.Builder, offset string) {
	for _, st := range s.Stmts {
		st.Emit(sb, offset)
	}
}

// IfStmt represents an if/else; Else may be nil.
type IfStmt struct {
	Cond  Expr
	Then  *ScopeStmt
	Else  *ScopeStmt
	Taken bool // whether generation evaluated the then-branch as executed
}

// NewIfStmt builds an if statement. taken records which branch the
// generator chose to evaluate for write-back purposes: a branch not
// taken must still be syntactically valid but its assignments must
// not have mutated any Data.
func NewIfStmt(cond Expr, then, els *ScopeStmt, taken bool) *IfStmt {
	return &IfStmt{Cond: cond, Then: then, Else: els, Taken: taken}
}

func (s *IfStmt) Emit(sb *strings.Builder, offset string) {
	sb.WriteString(offset)
	sb.WriteString("if (")
	s.Cond.Emit(sb, offset)
	sb.WriteString(") {\n")
	inner := offset + "    "
	for _, st := range s.Then.Stmts {
		st.Emit(sb, inner)
	}
	sb.WriteString(offset)
	sb.WriteString("}")
	if s.Else != nil {
		sb.WriteString(" else {\n")
		for _, st := range s.Else.Stmts {
			st.Emit(sb, inner)
		}
		sb.WriteString(offset)
		sb.WriteString("}")
	}
	sb.WriteString("\n")
}
