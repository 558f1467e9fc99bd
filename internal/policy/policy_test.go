package policy

import (
	"testing"

	"oorgen/internal/langstd"
	"oorgen/internal/typedval"
)

func TestWeightedPickWalksBuckets(t *testing.T) {
	w := Weighted[string]{Values: []string{"a", "b", "c"}, Weights: []int{2, 0, 3}}
	if got := w.TotalWeight(); got != 5 {
		t.Fatalf("TotalWeight = %d, want 5", got)
	}
	tests := []struct {
		draw int
		want string
	}{
		{0, "a"}, {1, "a"}, {2, "c"}, {4, "c"},
	}
	for _, tt := range tests {
		if got := w.Pick(tt.draw); got != tt.want {
			t.Fatalf("Pick(%d) = %q, want %q (zero-weight bucket must never be chosen)", tt.draw, got, tt.want)
		}
	}
}

func TestComposeSimilarOpMultipliesParentWeight(t *testing.T) {
	p := Default(langstd.C99, langstd.Bits64)
	p.AllowedBinaryOps = Weighted[BinaryOpSet]{Values: []BinaryOpSet{0, 1, 2}, Weights: []int{1, 2, 1}}
	p.SSPSimilarOpWeight = 4

	composed := p.ComposeSimilarOp(1, p.SSPSimilarOpWeight)
	if got := composed.AllowedBinaryOps.Weights[1]; got != 8 {
		t.Fatalf("parent operator weight = %d, want 8 (2 * 4)", got)
	}
	if got := composed.AllowedBinaryOps.Weights[0]; got != 1 {
		t.Fatalf("sibling operator weight = %d, want 1 (untouched)", got)
	}
	// the ambient policy value is untouched: composition returns a copy
	if got := p.AllowedBinaryOps.Weights[1]; got != 2 {
		t.Fatalf("ComposeSimilarOp mutated its receiver: weight = %d, want 2", got)
	}
}

func TestComposeMergesElementWise(t *testing.T) {
	p := Default(langstd.C99, langstd.Bits64)
	var overlay Policy
	overlay.AllowedIntKinds = Weighted[typedval.Kind]{
		Values: []typedval.Kind{typedval.Int}, Weights: []int{9},
	}
	overlay.AllowStaticVar = true

	merged := p.Compose(overlay)
	for i, v := range merged.AllowedIntKinds.Values {
		want := 1
		if v == typedval.Int {
			want = 9
		}
		if merged.AllowedIntKinds.Weights[i] != want {
			t.Fatalf("weight for %v = %d, want %d", v, merged.AllowedIntKinds.Weights[i], want)
		}
	}
	if !merged.AllowStaticVar {
		t.Fatalf("Compose dropped AllowStaticVar")
	}
	if p.AllowStaticVar {
		t.Fatalf("Compose mutated its receiver")
	}
}

func TestComposeNeverResurrectsForbiddenChoice(t *testing.T) {
	p := Default(langstd.C99, langstd.Bits64)
	p.AllowedBinaryOps = Weighted[BinaryOpSet]{Values: []BinaryOpSet{0, 1, 2}, Weights: []int{2, 0, 3}}

	composed := p.ComposeSimilarOp(1, 5)
	if got := composed.AllowedBinaryOps.Weights[1]; got != 0 {
		t.Fatalf("forbidden operator weight = %d after composition, want 0 (0 * 5)", got)
	}
}

func TestDefaultEnablesSelfSimilarPatterns(t *testing.T) {
	p := Default(langstd.C99, langstd.Bits64)
	if WeightOf(p.SSPKinds, SSPConstUse) == 0 || WeightOf(p.SSPKinds, SSPSimilarOp) == 0 {
		t.Fatalf("Default policy never draws a self-similar pattern: %+v", p.SSPKinds)
	}
	if p.SSPConstUseWeight <= 1 || p.SSPSimilarOpWeight <= 1 {
		t.Fatalf("Default SSP factors (%d, %d) apply no bias", p.SSPConstUseWeight, p.SSPSimilarOpWeight)
	}
	if p.AllowedBinaryOps.TotalWeight() == 0 || p.AllowedUnaryOps.TotalWeight() == 0 {
		t.Fatalf("Default operator distributions are empty; SimilarOp overlays would have nothing to bias")
	}
}
