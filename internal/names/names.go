// Package names hands out unique identifiers for generated
// declarations: a monotonic counter per category (scalar var, struct
// var, array var, struct type), reset at the start of each generation
// run. A Handler is owned by one run's root Context and threaded down
// by reference — nothing here is a package-level global, so concurrent
// runs (internal/genstmt's property-sweep test) each get independent,
// deterministic naming.
package names

import "fmt"

// Handler is the per-run name source.
type Handler struct {
	scalarVar  uint64
	structVar  uint64
	arrayVar   uint64
	structType uint64
}

// New returns a freshly reset Handler for the start of a generation
// run.
func New() *Handler {
	return &Handler{}
}

// ScalarVarName returns the next unique scalar-variable identifier.
func (h *Handler) ScalarVarName() string {
	name := fmt.Sprintf("var_%d", h.scalarVar)
	h.scalarVar++
	return name
}

// StructVarName returns the next unique struct-variable identifier.
func (h *Handler) StructVarName() string {
	name := fmt.Sprintf("struct_obj_%d", h.structVar)
	h.structVar++
	return name
}

// ArrayVarName returns the next unique array-variable identifier.
func (h *Handler) ArrayVarName() string {
	name := fmt.Sprintf("array_%d", h.arrayVar)
	h.arrayVar++
	return name
}

// StructTypeID allocates and returns the next unique struct-type id.
// The id doubles as the key component for static-member aliasing
// (internal/data's StaticKey) and drives the type's generated name.
func (h *Handler) StructTypeID() uint64 {
	id := h.structType
	h.structType++
	return id
}

// StructTypeName formats a struct-type id into its generated type name.
func StructTypeName(id uint64) string {
	return fmt.Sprintf("Struct_%d", id)
}

// MemberName formats a struct member's generated name from its owning
// type id and slot index.
func MemberName(structTypeID uint64, memberIndex int) string {
	return fmt.Sprintf("member_%d_%d", structTypeID, memberIndex)
}
