package types

// StaticKey identifies one static struct member slot across every
// instance of its owning struct type. internal/data keys its
// lazily-created static member singletons by this, since Data can't
// live in this package without an import cycle.
type StaticKey struct {
	StructTypeID uint64
	MemberIndex  int
}

// StructMember is one slot of a struct's declaration order.
type StructMember struct {
	Name string // "" for an unnamed bit-field (shadow-only)
	Type Type
	// StaticKey is the zero value unless Type.Storage() == Static, in
	// which case it names the shared backing Data every StructObj
	// instance of this struct type must alias.
	StaticKey StaticKey
}

// IsStatic reports whether this member slot is backed by a shared
// static Data handle.
func (m StructMember) IsStatic() bool { return m.Type.Storage() == Static }

// StructType is a struct/record type.
type StructType struct {
	base
	id   uint64
	Name string
	// Members holds only named slots, in declaration order — used for
	// index-based Member-expression access.
	Members []StructMember
	// ShadowMembers additionally includes unnamed bit-fields, in
	// declaration order — used only for struct-definition emission.
	ShadowMembers []StructMember
	NestDepth     int
}

func (t StructType) Kind() TypeKind { return KindStruct }
func (t StructType) ID() uint64     { return t.id }

func (t StructType) String() string {
	return t.prefix() + t.Name + t.suffix()
}

// MemberCount returns the number of named members.
func (t StructType) MemberCount() int { return len(t.Members) }

// Member returns the named member at num, or false if out of range.
func (t StructType) Member(num int) (StructMember, bool) {
	if num < 0 || num >= len(t.Members) {
		return StructMember{}, false
	}
	return t.Members[num], true
}

// StructBuilder assembles a StructType incrementally before Build()
// freezes it into an immutable value.
type StructBuilder struct {
	id            uint64
	name          string
	cv            CVQual
	storage       Storage
	align         uint32
	members       []StructMember
	shadowMembers []StructMember
	nestDepth     int
}

// NewStructBuilder starts a struct type with the given unique id
// (from internal/names.Handler.StructTypeID) and generated name.
func NewStructBuilder(id uint64, name string) *StructBuilder {
	return &StructBuilder{id: id, name: name}
}

// SetCVQual sets the struct type's own cv-qualification.
func (b *StructBuilder) SetCVQual(cv CVQual) *StructBuilder { b.cv = cv; return b }

// SetStorage sets the struct type's own storage class.
func (b *StructBuilder) SetStorage(s Storage) *StructBuilder { b.storage = s; return b }

// AddMember appends a named member. If memberType is itself a
// StructType, the builder's nest depth is updated to
// max(nestDepth, memberType.NestDepth+1).
func (b *StructBuilder) AddMember(memberType Type, name string) StructMember {
	member := StructMember{Name: name, Type: memberType}
	if memberType.Storage() == Static {
		member.StaticKey = StaticKey{StructTypeID: b.id, MemberIndex: len(b.members)}
	}
	if st, ok := memberType.(StructType); ok && st.NestDepth+1 > b.nestDepth {
		b.nestDepth = st.NestDepth + 1
	}
	b.members = append(b.members, member)
	b.shadowMembers = append(b.shadowMembers, member)
	return member
}

// AddShadowMember appends an unnamed bit-field to the shadow list only
// (it never becomes reachable via Member-expression index access).
func (b *StructBuilder) AddShadowMember(bf BitFieldType) {
	b.shadowMembers = append(b.shadowMembers, StructMember{Name: "", Type: bf})
}

// Build freezes the builder into an immutable StructType.
func (b *StructBuilder) Build() StructType {
	return StructType{
		base:          base{cv: b.cv, storage: b.storage, align: b.align},
		id:            b.id,
		Name:          b.name,
		Members:       append([]StructMember(nil), b.members...),
		ShadowMembers: append([]StructMember(nil), b.shadowMembers...),
		NestDepth:     b.nestDepth,
	}
}
