// Package langstd models the target language standard selected for a
// generation run: which of C, C++, or OpenCL it is, and the bit-mode
// (32 vs 64-bit long/pointer width) the run was configured with.
package langstd

import "fmt"

// Standard identifies one of the language standards the CLI accepts
// via --std.
type Standard int

const (
	C99 Standard = iota
	C11
	CXX98
	CXX03
	CXX11
	CXX14
	CXX17
	OpenCL10
	OpenCL11
	OpenCL12
	OpenCL20
	OpenCL21
	OpenCL22
)

var names = map[string]Standard{
	"c99":         C99,
	"c11":         C11,
	"c++98":       CXX98,
	"c++03":       CXX03,
	"c++11":       CXX11,
	"c++14":       CXX14,
	"c++17":       CXX17,
	"opencl_1_0":  OpenCL10,
	"opencl_1_1":  OpenCL11,
	"opencl_1_2":  OpenCL12,
	"opencl_2_0":  OpenCL20,
	"opencl_2_1":  OpenCL21,
	"opencl_2_2":  OpenCL22,
}

// Parse resolves a --std option value. ok is false for any name not in
// the allowed list; callers treat that as fatal.
func Parse(name string) (std Standard, ok bool) {
	std, ok = names[name]
	return std, ok
}

func (s Standard) String() string {
	for name, id := range names {
		if id == s {
			return name
		}
	}
	return fmt.Sprintf("Standard(%d)", int(s))
}

// IsC reports whether s is one of the two C standards. Bit-field base
// kinds are restricted to int/uint only for these.
func (s Standard) IsC() bool {
	return s == C99 || s == C11
}

// IsCXX reports whether s is a C++ standard.
func (s Standard) IsCXX() bool {
	return s == CXX98 || s == CXX03 || s == CXX11 || s == CXX14 || s == CXX17
}

// IsOpenCL reports whether s is an OpenCL kernel-language standard.
func (s Standard) IsOpenCL() bool {
	switch s {
	case OpenCL10, OpenCL11, OpenCL12, OpenCL20, OpenCL21, OpenCL22:
		return true
	default:
		return false
	}
}

// BitMode selects the width of `long` and of pointers.
type BitMode int

const (
	Bits32 BitMode = 32
	Bits64 BitMode = 64
)

// ParseBitMode resolves the -m/--bit-mode option value.
func ParseBitMode(v int) (BitMode, bool) {
	switch v {
	case 32:
		return Bits32, true
	case 64:
		return Bits64, true
	default:
		return 0, false
	}
}
