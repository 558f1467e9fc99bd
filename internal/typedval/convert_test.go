package typedval

import (
	"testing"

	"oorgen/internal/langstd"
)

func TestPromote(t *testing.T) {
	tests := []struct {
		name string
		in   Kind
		want Kind
	}{
		{"bool promotes to int", Bool, Int},
		{"schar promotes to int", SChar, Int},
		{"uchar promotes to int", UChar, Int},
		{"short promotes to int", Short, Int},
		{"ushort promotes to int", UShort, Int},
		{"int stays int", Int, Int},
		{"uint stays uint", UInt, UInt},
		{"long stays long", Long, Long},
		{"ullong stays ullong", ULLong, ULLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Promote(tt.in); got != tt.want {
				t.Fatalf("Promote(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestUsualArithConv(t *testing.T) {
	tests := []struct {
		name string
		a, b Kind
		mode langstd.BitMode
		want Kind
	}{
		{"both below int meet at int", SChar, UShort, langstd.Bits64, Int},
		{"same signedness takes higher rank", Int, Long, langstd.Bits64, Long},
		{"unsigned rank >= signed converts to unsigned", Int, UInt, langstd.Bits64, UInt},
		{"wider signed absorbs narrower unsigned", UInt, Long, langstd.Bits64, Long},
		{"equal-width signed/unsigned falls to unsigned counterpart", UInt, Long, langstd.Bits32, ULong},
		{"ullong dominates llong", LLong, ULLong, langstd.Bits64, ULLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UsualArithConv(tt.a, tt.b, tt.mode); got != tt.want {
				t.Fatalf("UsualArithConv(%v, %v, %d-bit) = %v, want %v", tt.a, tt.b, tt.mode, got, tt.want)
			}
		})
	}
}

func TestCastWrapsModuloWidth(t *testing.T) {
	mode := langstd.Bits64
	v := FromSigned(Int, mode, int32(-1))
	got := Cast(v, UChar, mode)
	if got.Unsigned() != 0xFF {
		t.Fatalf("Cast(-1, uchar) = %d, want 255", got.Unsigned())
	}
	back := Cast(got, SChar, mode)
	if back.Signed() != -1 {
		t.Fatalf("Cast(255, schar) = %d, want -1 (truncation + sign-extension)", back.Signed())
	}
}

func TestCastToBoolCollapsesToOneBit(t *testing.T) {
	mode := langstd.Bits64
	v := FromSigned(Int, mode, int32(6))
	got := Cast(v, Bool, mode)
	if got.Unsigned() != 1 {
		t.Fatalf("Cast(6, bool) = %d, want 1", got.Unsigned())
	}
	if z := Cast(Zero(Int), Bool, mode); z.Unsigned() != 0 {
		t.Fatalf("Cast(0, bool) = %d, want 0", z.Unsigned())
	}
}

func TestMaskToWidth(t *testing.T) {
	mode := langstd.Bits64
	tests := []struct {
		name  string
		v     TypedVal
		width int
		want  int64
	}{
		{"signed 9 in 3 bits is 1", FromSigned(Int, mode, int32(9)), 3, 1},
		{"signed 7 in 3 bits is -1", FromSigned(Int, mode, int32(7)), 3, -1},
		{"unsigned 9 in 3 bits is 1", FromUnsigned(UInt, mode, uint32(9)), 3, 1},
		{"value already in range unchanged", FromSigned(Int, mode, int32(-4)), 3, -4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaskToWidth(tt.v, tt.width)
			if got.Signed() != tt.want {
				t.Fatalf("MaskToWidth(%d, %d) = %d, want %d", tt.v.Signed(), tt.width, got.Signed(), tt.want)
			}
		})
	}
}
