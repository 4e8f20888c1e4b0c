package terrain

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func waterLand() CategorySet {
	return NewCategorySet(
		Category{Name: "water", Threshold: 0.4},
		Category{Name: "land", Threshold: 1.0},
	)
}

func TestClassifyFirstGreaterThreshold(t *testing.T) {
	set := DefaultParams(1).Height.Categories
	cases := map[float64]string{
		0:     "water",
		0.39:  "water",
		0.4:   "sand", // threshold is exclusive
		0.44:  "sand",
		0.5:   "grass",
		0.75:  "mountain",
		0.999: "snow",
	}
	for v, want := range cases {
		if got := set.Classify(v); got.Name != want {
			t.Errorf("Classify(%v) = %q, expected %q", v, got.Name, want)
		}
	}
}

func TestClassifyIsTotal(t *testing.T) {
	set := waterLand()
	for _, v := range []float64{-5, 1, 1.0001, 42, math.Inf(1), math.Inf(-1), math.NaN()} {
		got := set.Classify(v)
		if got.Name != "water" && got.Name != "land" {
			t.Fatalf("Classify(%v) returned unknown category %q", v, got.Name)
		}
	}
	if got := set.Classify(7); got.Index != len(set)-1 {
		t.Errorf("expected catch-all for value above every threshold, got %q", got.Name)
	}
	if got := set.Classify(math.NaN()); got.Name != "land" {
		t.Errorf("expected NaN to fall through to the last category, got %q", got.Name)
	}
}

func TestNewCategorySetAssignsIndex(t *testing.T) {
	set := waterLand()
	for i, c := range set {
		if c.Index != i {
			t.Errorf("category %q has index %d, expected %d", c.Name, c.Index, i)
		}
	}
	if !slices.Equal(set.Names(), []string{"water", "land"}) {
		t.Errorf("unexpected names %v", set.Names())
	}
}

func TestCategorySetValidate(t *testing.T) {
	if err := waterLand().Validate(); err != nil {
		t.Fatalf("valid set rejected: %v", err)
	}
	unsorted := NewCategorySet(Category{Name: "b", Threshold: 0.8}, Category{Name: "a", Threshold: 0.2})
	if err := unsorted.Validate(); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration for unsorted set, got %v", err)
	}
	if err := (CategorySet{}).Validate(); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration for empty set, got %v", err)
	}
	misindexed := CategorySet{{Name: "a", Threshold: 0.1, Index: 3}}
	if err := misindexed.Validate(); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration for bad index, got %v", err)
	}
}

func TestKeyframesEvaluate(t *testing.T) {
	k := Keyframes{{In: 0, Out: 0}, {In: 0.4, Out: 0}, {In: 1, Out: 1}}
	if err := k.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	cases := map[float64]float64{-1: 0, 0: 0, 0.2: 0, 0.4: 0, 0.7: 0.5, 1: 1, 3: 1}
	for in, want := range cases {
		if got := k.Evaluate(in); math.Abs(got-want) > 1e-9 {
			t.Errorf("Evaluate(%v) = %v, expected %v", in, got, want)
		}
	}
	bad := Keyframes{{In: 0.5, Out: 0}, {In: 0.5, Out: 1}}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration for duplicate inputs, got %v", err)
	}
	if err := (Keyframes{}).Validate(); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration for empty curve, got %v", err)
	}
}

func TestBiomeTableValidate(t *testing.T) {
	p := DefaultParams(1)
	if err := p.Biomes.Validate(4, 4); err != nil {
		t.Fatalf("default table rejected: %v", err)
	}
	if err := p.Biomes.Validate(3, 4); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration for row mismatch, got %v", err)
	}
	if err := p.Biomes.Validate(4, 5); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration for column mismatch, got %v", err)
	}
	if got := p.Biomes.Lookup(0, 0).Name; got != "desert" {
		t.Errorf("expected driest/hottest to be desert, got %q", got)
	}
}
