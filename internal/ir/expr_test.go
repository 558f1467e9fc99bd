package ir

import (
	"strings"
	"testing"

	"oorgen/internal/data"
	"oorgen/internal/langstd"
	"oorgen/internal/typedval"
	"oorgen/internal/types"
)

func TestBinaryExprRebuildsDivByZeroToMul(t *testing.T) {
	mode := langstd.Bits64
	five := NewConstExpr(typedval.FromSigned(typedval.Int, mode, int32(5)))
	zero := NewConstExpr(typedval.FromSigned(typedval.Int, mode, int32(0)))

	n := NewBinaryExpr(Div, five, zero, mode)
	if n.val.UB != typedval.DivByZero {
		t.Fatalf("expected DivByZero before rebuild, got %v", n.val.UB)
	}
	n.Rebuild(mode)
	if n.Op != Mul {
		t.Fatalf("expected operator rewritten to Mul, got %v", n.Op)
	}
	if n.val.UB != typedval.None {
		t.Fatalf("expected UB cleared after rebuild, got %v", n.val.UB)
	}
	if n.val.Signed() != 0 {
		t.Fatalf("expected value 0 after rebuild, got %d", n.val.Signed())
	}
}

func TestUnaryExprRebuildsNegateIntMin(t *testing.T) {
	mode := langstd.Bits64
	min := NewConstExpr(typedval.Min(typedval.Int, mode))

	n := NewUnaryExpr(UNegate, min, mode)
	if n.val.UB != typedval.SignedOverflowMin {
		t.Fatalf("expected SignedOverflowMin before rebuild, got %v", n.val.UB)
	}
	n.Rebuild(mode)
	if n.Op != UBitNot {
		t.Fatalf("expected operator rewritten to UBitNot, got %v", n.Op)
	}
	if n.val.UB != typedval.None {
		t.Fatalf("expected UB cleared after rebuild, got %v", n.val.UB)
	}
}

func TestAssignExprInsertsImplicitCast(t *testing.T) {
	mode := langstd.Bits64
	longType := types.NewIntegerType(typedval.Long, types.CVNone, types.Auto, 0)
	target := data.NewScalar("var_0", longType, mode, typedval.Zero(typedval.Long))

	src := NewConstExpr(typedval.FromUnsigned(typedval.UShort, mode, uint16(0xFFFF)))
	assign := NewAssignExpr(NewVarUseExpr(target), src, mode, true)

	cast, ok := assign.From.(*TypeCastExpr)
	if !ok {
		t.Fatalf("expected implicit TypeCastExpr wrapping rhs, got %T", assign.From)
	}
	if cast.ToType == nil {
		t.Fatalf("cast has no target type")
	}
	if assign.val.Kind != typedval.Long {
		t.Fatalf("assign value kind = %v, want Long", assign.val.Kind)
	}
	if assign.val.Unsigned() != 0xFFFF {
		t.Fatalf("assign value = %d, want 65535", assign.val.Unsigned())
	}
	if target.CurValue().Signed() != 0xFFFF {
		t.Fatalf("target cur_val = %d, want 65535", target.CurValue().Signed())
	}
}

func TestAssignMasksBitFieldTarget(t *testing.T) {
	mode := langstd.Bits64
	intType := types.NewIntegerType(typedval.Int, types.CVNone, types.Auto, 0)
	b := types.NewStructBuilder(0, "Struct_0")
	b.AddMember(types.NewBitFieldType(typedval.Int, 3, types.CVNone, "member_0_0"), "member_0_0")
	st := b.Build()

	reg := data.NewStaticRegistry()
	obj := data.NewStructObj("struct_obj_0", st, reg, func(m types.StructMember, name string) data.Data {
		bf := m.Type.(types.BitFieldType)
		s := data.NewBitFieldScalar(zeroSource{}, name, intType, bf.Width, mode)
		return s
	})

	lhs := NewMemberExpr(obj, 0)
	nine := NewConstExpr(typedval.FromSigned(typedval.Int, mode, int32(9)))
	assign := NewAssignExpr(lhs, nine, mode, true)

	m, _ := obj.Member(0)
	got := m.(*data.Scalar).CurValue().Signed()
	if got != 1 {
		t.Fatalf("bit-field<3> = 9 stored %d, want 1 (9 & 0b111, sign-extended)", got)
	}
	if assign.val.Signed() != 1 {
		t.Fatalf("assignment expression value = %d, want the narrowed 1", assign.val.Signed())
	}
}

// zeroSource is a degenerate randsrc.Source for tests that need a
// deterministic, all-zero draw sequence.
type zeroSource struct{}

func (zeroSource) Intn(n int) int       { return 0 }
func (zeroSource) Int64N(n int64) int64 { return 0 }
func (zeroSource) Uint64() uint64       { return 0 }
func (zeroSource) Bool() bool           { return false }

func TestBinaryExprInsertsPromotionCasts(t *testing.T) {
	mode := langstd.Bits64
	a := NewConstExpr(typedval.FromSigned(typedval.Short, mode, int16(3)))
	b := NewConstExpr(typedval.FromSigned(typedval.SChar, mode, int8(4)))
	n := NewBinaryExpr(Add, a, b, mode)

	lc, ok := n.Lhs.(*TypeCastExpr)
	if !ok {
		t.Fatalf("lhs not wrapped in a promotion cast, got %T", n.Lhs)
	}
	rc, ok := n.Rhs.(*TypeCastExpr)
	if !ok {
		t.Fatalf("rhs not wrapped in a promotion cast, got %T", n.Rhs)
	}
	if !lc.IsImplicit || !rc.IsImplicit {
		t.Fatalf("promotion casts must be implicit")
	}
	if lc.Kind() != typedval.Int || rc.Kind() != typedval.Int {
		t.Fatalf("promotion casts target %v / %v, want int / int", lc.Kind(), rc.Kind())
	}
	if n.val.Kind != typedval.Int || n.val.Signed() != 7 {
		t.Fatalf("result = kind %v value %d, want int 7", n.val.Kind, n.val.Signed())
	}
}

func TestBinaryExprRebuildsAddOverflowToSub(t *testing.T) {
	mode := langstd.Bits64
	one := NewConstExpr(typedval.FromSigned(typedval.Int, mode, int32(1)))
	max := NewConstExpr(typedval.Max(typedval.Int, mode))

	n := NewBinaryExpr(Add, one, max, mode)
	if n.val.UB != typedval.SignedOverflow {
		t.Fatalf("expected SignedOverflow before rebuild, got %v", n.val.UB)
	}
	n.Rebuild(mode)
	if n.Op != Sub {
		t.Fatalf("expected operator swapped to Sub, got %v", n.Op)
	}
	if n.val.UB != typedval.None {
		t.Fatalf("expected UB cleared after rebuild, got %v", n.val.UB)
	}
	if want := int64(1) - int64(2147483647); n.val.Signed() != want {
		t.Fatalf("value = %d, want %d", n.val.Signed(), want)
	}
}

func TestBinaryExprEmitsInfixExpression(t *testing.T) {
	mode := langstd.Bits64
	a := NewConstExpr(typedval.FromSigned(typedval.Int, mode, int32(1)))
	b := NewConstExpr(typedval.FromSigned(typedval.Int, mode, int32(2)))
	n := NewBinaryExpr(Add, a, b, mode)

	var sb strings.Builder
	n.Emit(&sb, "")
	got := sb.String()
	if got != "(1 + 2)" {
		t.Fatalf("Emit = %q, want \"(1 + 2)\"", got)
	}
}
