package typedval

import (
	"testing"

	"oorgen/internal/langstd"
)

func TestAddOverflowDetected(t *testing.T) {
	mode := langstd.Bits64
	one := FromSigned(Int, mode, int32(1))
	max := Max(Int, mode)

	got := Add(one, max, mode)
	if got.UB != SignedOverflow {
		t.Fatalf("Add(1, INT_MAX) = %+v, want UB = SignedOverflow", got)
	}
}

func TestDivByZeroRewrittenToMul(t *testing.T) {
	mode := langstd.Bits64
	five := FromSigned(Int, mode, int32(5))
	zero := FromSigned(Int, mode, int32(0))

	div := Div(five, zero, mode)
	if div.UB != DivByZero {
		t.Fatalf("Div(5,0).UB = %v, want DivByZero", div.UB)
	}
	mul := Mul(five, zero, mode)
	if mul.UB != None {
		t.Fatalf("Mul(5,0).UB = %v, want None", mul.UB)
	}
	if mul.Signed() != 0 {
		t.Fatalf("Mul(5,0) = %d, want 0", mul.Signed())
	}
}

func TestShiftByTooLargeIn32Bit(t *testing.T) {
	mode := langstd.Bits32
	one := FromSigned(Int, mode, int32(1))
	thirtyThree := FromSigned(Int, mode, int32(33))

	got := Shl(one, thirtyThree, mode)
	if got.UB != ShiftByTooLarge {
		t.Fatalf("Shl(1,33) in 32-bit mode UB = %v, want ShiftByTooLarge", got.UB)
	}

	// The rewrite the generator performs narrows the shift amount
	// modulo the operand width: 33 mod 32 = 1, giving a defined value
	// of 2.
	one2 := FromSigned(Int, mode, int32(1))
	narrowed := FromSigned(Int, mode, int32(33%32))
	fixed := Shl(one2, narrowed, mode)
	if fixed.UB != None || fixed.Signed() != 2 {
		t.Fatalf("Shl(1,1) = %+v, want value=2 UB=None", fixed)
	}
}

func TestNegateIntMinIsUB(t *testing.T) {
	mode := langstd.Bits64
	min := Min(Int, mode)
	got := Negate(min, mode)
	if got.UB != SignedOverflowMin {
		t.Fatalf("Negate(INT_MIN).UB = %v, want SignedOverflowMin", got.UB)
	}
}

func TestNegateIntMinRebuildsToBitNot(t *testing.T) {
	mode := langstd.Bits64
	min := Min(Int, mode)
	fixed := BitNot(min, mode)
	if fixed.UB != None {
		t.Fatalf("BitNot(INT_MIN).UB = %v, want None", fixed.UB)
	}
}

func TestAssignWidensWithImplicitCast(t *testing.T) {
	mode := langstd.Bits64
	src := FromUnsigned(UShort, mode, uint16(0xFFFF))
	cast := Cast(src, Long, mode)
	if cast.Kind != Long {
		t.Fatalf("Cast kind = %v, want Long", cast.Kind)
	}
	if cast.Signed() != 0xFFFF {
		t.Fatalf("Cast value = %d, want 65535", cast.Signed())
	}
}

func TestLogAndLogOrNeverShortCircuit(t *testing.T) {
	zero := FromSigned(Int, langstd.Bits64, int32(0))
	one := FromSigned(Int, langstd.Bits64, int32(1))

	and := LogAnd(zero, one)
	if and.Signed() != 0 {
		t.Fatalf("LogAnd(0,1) = %d, want 0", and.Signed())
	}
	or := LogOr(zero, one)
	if or.Signed() != 1 {
		t.Fatalf("LogOr(0,1) = %d, want 1", or.Signed())
	}
}

func TestBitFieldMasking(t *testing.T) {
	mode := langstd.Bits64
	// 9 masked to 3 bits is 0b001 = 1, which sign-extends to 1 either way.
	nine := FromSigned(Int, mode, int32(9))
	masked := MaskToWidth(nine, 3).Signed()
	if masked != 1 {
		t.Fatalf("MaskToWidth(9, 3) = %d, want 1", masked)
	}
}
