package data

import (
	"testing"

	"oorgen/internal/langstd"
	"oorgen/internal/typedval"
	"oorgen/internal/types"
)

func TestStaticMemberAliasingAcrossInstances(t *testing.T) {
	mode := langstd.Bits64
	b := types.NewStructBuilder(1, "Struct_1")
	staticInt := types.NewIntegerType(typedval.Int, types.CVNone, types.Static, 0)
	b.AddMember(staticInt, "member_1_0")
	structType := b.Build()

	reg := NewStaticRegistry()
	newLeaf := func(m types.StructMember, name string) Data {
		it := m.Type.(types.IntegerType)
		return NewScalar(name, it, mode, typedval.Zero(it.IntKind))
	}

	obj1 := NewStructObj("s1", structType, reg, newLeaf)
	obj2 := NewStructObj("s2", structType, reg, newLeaf)

	m1, _ := obj1.Member(0)
	m2, _ := obj2.Member(0)
	scalar1 := m1.(*Scalar)
	scalar2 := m2.(*Scalar)

	newVal := typedval.FromSigned(typedval.Int, mode, int32(42))
	scalar1.SetCurValue(newVal)

	if scalar2.CurValue().Signed() != 42 {
		t.Fatalf("static member write via obj1 not visible through obj2: got %d, want 42",
			scalar2.CurValue().Signed())
	}
	if scalar1 != scalar2 {
		t.Fatalf("expected obj1 and obj2 to share the exact same backing Scalar for a static member")
	}
}

func TestNonStaticMembersAreIndependent(t *testing.T) {
	mode := langstd.Bits64
	b := types.NewStructBuilder(2, "Struct_2")
	b.AddMember(types.NewIntegerType(typedval.Int, types.CVNone, types.Auto, 0), "member_2_0")
	structType := b.Build()

	reg := NewStaticRegistry()
	newLeaf := func(m types.StructMember, name string) Data {
		it := m.Type.(types.IntegerType)
		return NewScalar(name, it, mode, typedval.Zero(it.IntKind))
	}

	obj1 := NewStructObj("s1", structType, reg, newLeaf)
	obj2 := NewStructObj("s2", structType, reg, newLeaf)

	m1, _ := obj1.Member(0)
	m2, _ := obj2.Member(0)
	m1.(*Scalar).SetCurValue(typedval.FromSigned(typedval.Int, mode, int32(7)))

	if m2.(*Scalar).CurValue().Signed() == 7 {
		t.Fatalf("non-static member write leaked across instances")
	}
}
