package types

import (
	"testing"

	"oorgen/internal/typedval"
)

func TestStructBuilderAssignsStaticKeys(t *testing.T) {
	b := NewStructBuilder(7, "Struct_7")
	staticInt := NewIntegerType(typedval.Int, CVNone, Static, 0)
	b.AddMember(staticInt, "member_7_0")
	st := b.Build()

	m, ok := st.Member(0)
	if !ok {
		t.Fatalf("Member(0) not found")
	}
	if !m.IsStatic() {
		t.Fatalf("expected member to be static")
	}
	want := StaticKey{StructTypeID: 7, MemberIndex: 0}
	if m.StaticKey != want {
		t.Fatalf("StaticKey = %+v, want %+v", m.StaticKey, want)
	}
}

func TestStructBuilderTracksNestDepth(t *testing.T) {
	inner := NewStructBuilder(1, "Struct_1").Build()
	outer := NewStructBuilder(2, "Struct_2")
	outer.AddMember(inner, "inner")
	built := outer.Build()
	if built.NestDepth != 1 {
		t.Fatalf("NestDepth = %d, want 1", built.NestDepth)
	}
}

func TestShadowMembersIncludeUnnamedBitFields(t *testing.T) {
	b := NewStructBuilder(3, "Struct_3")
	b.AddMember(NewIntegerType(typedval.Int, CVNone, Auto, 0), "a")
	b.AddShadowMember(NewBitFieldType(typedval.Int, 3, CVNone, ""))
	built := b.Build()
	if len(built.Members) != 1 {
		t.Fatalf("Members = %d, want 1 (shadow bit-field excluded)", len(built.Members))
	}
	if len(built.ShadowMembers) != 2 {
		t.Fatalf("ShadowMembers = %d, want 2", len(built.ShadowMembers))
	}
}
