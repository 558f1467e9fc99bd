// Aggregate declarations: struct, array, and pointer locals.
// Split from genstmt.go since scalar Decl/If/Expr generation already
// fills that file and these three share little code with it beyond the
// Context plumbing.
package genstmt

import (
	"strconv"

	"oorgen/internal/data"
	"oorgen/internal/ir"
	"oorgen/internal/names"
	"oorgen/internal/policy"
	"oorgen/internal/randsrc"
	"oorgen/internal/symtab"
	"oorgen/internal/typedval"
	"oorgen/internal/types"
)

// generateStructDecl builds a fresh StructType per the current policy,
// allocates a StructObj of that type,
// registers both with the run, and emits an initializer assignment for
// every scalar leaf so the struct's runtime member values agree with
// the Data graph's tracked values from the moment the declaration
// executes — a C struct member left holding an indeterminate value is
// exactly the kind of UB the generator exists to never emit.
func generateStructDecl(ctx *symtab.Context) ir.Stmt {
	id := ctx.Shared.Names.StructTypeID()
	typeName := names.StructTypeName(id)
	gp := structGenPolicyFrom(ctx)
	st := types.GenerateStructType(ctx.Shared.RNG, id, typeName, ctx.Shared.Std, ctx.Shared.Mode, gp, ctx.Shared.StructTypePool())
	ctx.Shared.AddStructType(st)
	ctx.Local.AddType(typeName, st)

	varName := ctx.Shared.Names.StructVarName()
	obj := data.NewStructObj(varName, st, ctx.Shared.Statics, newStructLeaf(ctx))
	ctx.Local.AddVar(symtab.Local, obj)
	ctx.Shared.Budget.AddStmt()

	stmts := []ir.Stmt{ir.NewDeclStmt(obj, nil)}
	for i := 0; i < obj.MemberCount(); i++ {
		m, _ := obj.Member(i)
		stmts = append(stmts, initMember(ctx, obj, i, m)...)
	}
	// Flat, not a nested Scope: the declaration must stay visible to the
	// rest of the enclosing scope, which already sees obj via the symbol
	// table.
	return ir.NewStmtList(stmts...)
}

// initMember emits one assignment per scalar leaf reachable from
// member (itself, if it's a plain Scalar, or every scalar nested inside
// it if it's a StructObj), anchored at obj's i'th top-level slot.
func initMember(ctx *symtab.Context, obj *data.StructObj, i int, member data.Data) []ir.Stmt {
	switch v := member.(type) {
	case *data.Scalar:
		lhs := ir.NewMemberExpr(obj, i)
		return []ir.Stmt{ir.NewExprStmt(ir.NewAssignExpr(lhs, ir.NewConstExpr(v.InitValue()), ctx.Shared.Mode, true))}
	case *data.StructObj:
		return initNestedMembers(ctx, obj, []int{i}, v)
	default:
		return nil
	}
}

// initNestedMembers recurses through an embedded struct member's own
// members, appending each further slot's index onto prefix so the
// assignment's MemberExpr carries the full index chain from the
// top-level struct variable down to its scalar leaf.
func initNestedMembers(ctx *symtab.Context, root *data.StructObj, prefix []int, obj *data.StructObj) []ir.Stmt {
	var out []ir.Stmt
	for i := 0; i < obj.MemberCount(); i++ {
		m, _ := obj.Member(i)
		path := append(append([]int(nil), prefix...), i)
		switch v := m.(type) {
		case *data.Scalar:
			lhs := ir.NewMemberExpr(root, path...)
			out = append(out, ir.NewExprStmt(ir.NewAssignExpr(lhs, ir.NewConstExpr(v.InitValue()), ctx.Shared.Mode, true)))
		case *data.StructObj:
			out = append(out, initNestedMembers(ctx, root, path, v)...)
		}
	}
	return out
}

// structGenPolicyFrom adapts the ambient policy.Policy's weighted
// distributions into the plain closures types.GenerateStructType
// needs, keeping internal/types free of a dependency on
// internal/policy (see internal/types/generate.go's StructGenPolicy
// doc comment for why).
func structGenPolicyFrom(ctx *symtab.Context) types.StructGenPolicy {
	p := ctx.Policy
	return types.StructGenPolicy{
		PickIntKind: func(rng randsrc.Source) typedval.Kind {
			total := p.AllowedIntKinds.TotalWeight()
			if total == 0 {
				return typedval.Int
			}
			return p.AllowedIntKinds.Pick(rng.Intn(total))
		},
		PickMemberClass: func(rng randsrc.Source) bool {
			total := p.MemberClass.TotalWeight()
			if total == 0 {
				return false
			}
			return p.MemberClass.Pick(rng.Intn(total)) == policy.MemberStruct
		},
		PickBitfieldClass: func(rng randsrc.Source) int {
			total := p.BitfieldProb.TotalWeight()
			if total == 0 {
				return 0
			}
			return int(p.BitfieldProb.Pick(rng.Intn(total)))
		},
		AllowStaticMember: p.AllowStaticMember,
		MinMembers:        p.MinStructMembers,
		MaxMembers:        p.MaxStructMembers,
		MaxNestDepth:      p.MaxStructNestDepth,
	}
}

// newStructLeaf returns the per-member Data constructor data.NewStructObj
// needs: a fresh Scalar for a plain integer/bit-field member, or a
// fresh nested StructObj (recursing through the same static registry)
// for a member whose type is itself a struct.
func newStructLeaf(ctx *symtab.Context) func(types.StructMember, string) data.Data {
	return func(m types.StructMember, memberName string) data.Data {
		switch mt := m.Type.(type) {
		case types.StructType:
			return data.NewStructObj(memberName, mt, ctx.Shared.Statics, newStructLeaf(ctx))
		case types.BitFieldType:
			it := types.NewIntegerType(mt.BaseKind, mt.CVQual(), types.Auto, 0)
			return data.NewBitFieldScalar(ctx.Shared.RNG, memberName, it, mt.Width, ctx.Shared.Mode)
		default:
			k := types.IntKindOf(m.Type)
			it := types.NewIntegerType(k, m.Type.CVQual(), m.Type.Storage(), m.Type.Align())
			return data.GenerateScalar(ctx.Shared.RNG, memberName, it, ctx.Shared.Mode)
		}
	}
}

// generateArrayDecl builds a fixed-length array of freshly generated
// scalars of one integer kind, declared with a brace initializer list so
// every element's runtime value matches its tracked init value from
// the moment the declaration executes.
func generateArrayDecl(ctx *symtab.Context) ir.Stmt {
	k := pickIntKind(ctx)
	elemType := types.NewIntegerType(k, types.CVNone, types.Auto, 0)
	lo, hi := ctx.Policy.MinArrayLen, ctx.Policy.MaxArrayLen
	if hi < lo {
		hi = lo
	}
	n := lo
	if hi > lo {
		n = lo + ctx.Shared.RNG.Intn(hi-lo+1)
	}
	if n < 1 {
		n = 1
	}
	name := ctx.Shared.Names.ArrayVarName()
	elems := make([]data.Data, n)
	for i := range elems {
		elemName := name + "_" + strconv.Itoa(i)
		elems[i] = data.GenerateScalar(ctx.Shared.RNG, elemName, elemType, ctx.Shared.Mode)
	}
	arrType := types.NewArrayType(elemType, n, types.PlainArray, types.CVNone)
	arr := data.NewArray(name, arrType, elems)
	ctx.Local.AddVar(symtab.Local, arr)
	ctx.Shared.Budget.AddStmt()

	var lits []string
	for _, e := range elems {
		lits = append(lits, ir.FormatInitLiteral(e.(*data.Scalar).InitValue()))
	}
	return ir.NewDeclStmt(arr, ir.NewStubExpr("{"+joinComma(lits)+"}"))
}

func joinComma(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

// generatePointerDecl builds a pointer local aliasing an existing
// in-scope scalar, so later expression generation can dereference it
// through a DerefExpr without ever synthesizing a null pointer — a
// NullDeref tag is never allowed to be constructed in the first place.
func generatePointerDecl(ctx *symtab.Context) ir.Stmt {
	scalars := writableScalars(ctx)
	if len(scalars) == 0 {
		return generateScalarDecl(ctx)
	}
	target := scalars[ctx.Shared.RNG.Intn(len(scalars))]
	it := target.Type().(types.IntegerType)
	ptrType := types.NewPointerType(it, types.CVNone)
	name := ctx.Shared.Names.ScalarVarName()
	ptr := data.NewPointer(name, ptrType, target)
	ctx.Local.AddVar(symtab.Local, ptr)
	ctx.Shared.Budget.AddStmt()

	addr := ir.NewAddressOfExpr(ir.NewVarUseExpr(target))
	return ir.NewDeclStmt(ptr, addr)
}
