package main

import (
	"os"
	"path/filepath"
	"strings"

	"oorgen/internal/data"
	"oorgen/internal/genstmt"
	"oorgen/internal/ir"
	"oorgen/internal/symtab"
	"oorgen/internal/types"
)

// emitProgram renders the three emitted artifacts — extern
// declarations, function bodies, and main — into outDir. The checksum
// primitive itself is external: main calls a supplied `hash(...)` the
// emitted declarations file forward-declares but never defines.
func emitProgram(outDir string, prog *genstmt.Program) error {
	if err := os.WriteFile(filepath.Join(outDir, "decl.h"), []byte(emitDecl(prog)), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "func.c"), []byte(emitFunc(prog)), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "main.c"), []byte(emitMain(prog)), 0o644); err != nil {
		return err
	}
	return nil
}

func emitDecl(prog *genstmt.Program) string {
	var sb strings.Builder
	sb.WriteString("#include <stdint.h>\n")
	sb.WriteString("#include <stdbool.h>\n\n")
	sb.WriteString("extern unsigned long long hash(unsigned long long, unsigned long long);\n\n")
	// Struct types generated during function bodies need
	// their definition visible to every translation unit that declares
	// one of their instances; prog.RootCtx.Shared.StructTypePool() is in
	// creation order, so an embedding struct always appears after the
	// struct types it nests (internal/types.GenerateStructType only ever
	// embeds from the pool it was handed).
	for _, st := range prog.RootCtx.Shared.StructTypePool() {
		// C and OpenCL both need the typedef spelling; C++ does not.
		emitStructDef(&sb, st, !prog.RootCtx.Shared.Std.IsCXX())
	}
	for _, class := range []symtab.VarClass{symtab.Input, symtab.Mixed, symtab.Output} {
		for _, v := range prog.RootCtx.Local.Vars(class) {
			decl := ir.NewDeclStmt(v, nil)
			decl.IsExtern = true
			decl.Emit(&sb, "")
		}
	}
	return sb.String()
}

// emitStructDef renders one generated struct type's definition,
// listing every shadow member
// (named members plus unnamed bit-fields) in declaration order so the
// emitted layout matches what internal/data.NewStructObj indexed. When
// isC is set (the caller sets it for C and OpenCL) the definition gets
// the `typedef struct Name { ... } Name;` spelling so
// instance declarations can use the bare type name in both language
// families.
func emitStructDef(sb *strings.Builder, st types.StructType, isC bool) {
	if isC {
		sb.WriteString("typedef ")
	}
	sb.WriteString("struct ")
	sb.WriteString(st.Name)
	sb.WriteString(" {\n")
	for _, m := range st.ShadowMembers {
		sb.WriteString("    ")
		switch mt := m.Type.(type) {
		case types.BitFieldType:
			sb.WriteString(mt.String())
			if m.Name != "" {
				sb.WriteString(" ")
				sb.WriteString(m.Name)
			}
			sb.WriteString(" : ")
			sb.WriteString(ir.FormatInt(mt.Width))
			sb.WriteString(";\n")
		case types.StructType:
			sb.WriteString("struct ")
			sb.WriteString(mt.Name)
			sb.WriteString(" ")
			sb.WriteString(m.Name)
			sb.WriteString(";\n")
		default:
			sb.WriteString(m.Type.String())
			sb.WriteString(" ")
			sb.WriteString(m.Name)
			sb.WriteString(";\n")
		}
	}
	sb.WriteString("}")
	if isC {
		sb.WriteString(" ")
		sb.WriteString(st.Name)
	}
	sb.WriteString(";\n\n")
}

func emitFunc(prog *genstmt.Program) string {
	var sb strings.Builder
	sb.WriteString("#include \"decl.h\"\n\n")
	for _, class := range []symtab.VarClass{symtab.Input, symtab.Mixed, symtab.Output} {
		for _, v := range prog.RootCtx.Local.Vars(class) {
			// const-qualified inputs can only be initialized at their
			// definition; everything else is assigned by main at startup.
			// C++ additionally needs the definition spelled extern, or a
			// namespace-scope const silently gets internal linkage.
			if s, ok := v.(*data.Scalar); ok && isConstQualified(v) {
				if prog.RootCtx.Shared.Std.IsCXX() {
					sb.WriteString("extern ")
				}
				ir.NewDeclStmt(v, ir.NewConstExpr(s.InitValue())).Emit(&sb, "")
				continue
			}
			ir.NewDeclStmt(v, nil).Emit(&sb, "")
		}
	}
	sb.WriteString("\n")
	for _, fn := range prog.Functions {
		sb.WriteString("void ")
		sb.WriteString(fn.Name)
		sb.WriteString(" (void) {\n")
		for _, st := range fn.Body.Stmts {
			st.Emit(&sb, "    ")
		}
		sb.WriteString("}\n\n")
	}
	return sb.String()
}

func isConstQualified(v data.Data) bool {
	cv := v.Type().CVQual()
	return cv == types.CVConst || cv == types.CVConstVolatile
}

func emitMain(prog *genstmt.Program) string {
	var sb strings.Builder
	sb.WriteString("#include <stdio.h>\n")
	sb.WriteString("#include \"decl.h\"\n\n")
	sb.WriteString("int main(void) {\n")
	for _, class := range []symtab.VarClass{symtab.Input, symtab.Mixed, symtab.Output} {
		for _, v := range prog.RootCtx.Local.Vars(class) {
			s, ok := v.(*data.Scalar)
			if !ok || isConstQualified(v) {
				continue
			}
			sb.WriteString("    ")
			sb.WriteString(v.Name())
			sb.WriteString(" = ")
			sb.WriteString(ir.FormatInitLiteral(s.InitValue()))
			sb.WriteString(";\n")
		}
	}
	for _, fn := range prog.Functions {
		sb.WriteString("    ")
		sb.WriteString(fn.Name)
		sb.WriteString("();\n")
	}
	sb.WriteString("    unsigned long long checksum = 0;\n")
	for _, class := range []symtab.VarClass{symtab.Mixed, symtab.Output} {
		for _, v := range prog.RootCtx.Local.Vars(class) {
			sb.WriteString("    checksum = hash(checksum, (unsigned long long)")
			sb.WriteString(v.Name())
			sb.WriteString(");\n")
		}
	}
	sb.WriteString("    printf(\"%llu\\n\", checksum);\n")
	sb.WriteString("    return 0;\n")
	sb.WriteString("}\n")
	return sb.String()
}
