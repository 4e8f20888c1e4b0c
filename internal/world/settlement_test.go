package world

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

func landMap(t testing.TB, depth, width int) *Map {
	rows := make([][]float64, depth)
	for z := range rows {
		rows[z] = make([]float64, width)
		for x := range rows[z] {
			rows[z][x] = 0.5
		}
	}
	return testMap(t, rows)
}

func TestClearOfBoundary(t *testing.T) {
	existing := []Settlement{{Coord: Coord{0, 0}}, {Coord: Coord{10, 10}}}
	if !clearOf(existing, Coord{3, 4}, 5) {
		t.Errorf("distance equal to the radius should be accepted")
	}
	if clearOf(existing, Coord{3, 3}, 5) {
		t.Errorf("distance below the radius should be rejected")
	}
	// Far from the first settlement but too close to the second.
	if clearOf(existing, Coord{9, 9}, 5) {
		t.Errorf("candidate must clear every settlement")
	}
	if !clearOf(nil, Coord{0, 0}, 100) {
		t.Errorf("no settlements should always be clear")
	}
}

func TestChooseSpawnRespectsMargin(t *testing.T) {
	m := landMap(t, 20, 20)
	r := NewRand(4)
	cfg := Settlements{Margin: 0.25, Names: DefaultNames()}
	for i := 0; i < 200; i++ {
		c, err := ChooseSpawn(m, nil, cfg, r)
		if err != nil {
			t.Fatalf("ChooseSpawn: %v", err)
		}
		if c.Z < 5 || c.Z >= 15 || c.X < 5 || c.X >= 15 {
			t.Fatalf("spawn %v outside the inner area", c)
		}
	}
}

func TestChooseSpawnRejectsWater(t *testing.T) {
	m := testMap(t, [][]float64{
		{0.1, 0.1, 0.1},
		{0.1, 0.7, 0.1},
		{0.1, 0.1, 0.1},
	})
	c, err := ChooseSpawn(m, nil, Settlements{}, NewRand(8))
	if err != nil {
		t.Fatalf("ChooseSpawn: %v", err)
	}
	if c != (Coord{1, 1}) {
		t.Errorf("expected the only land cell, got %v", c)
	}
}

func TestPlaceSettlementsSpacing(t *testing.T) {
	m := landMap(t, 40, 40)
	cfg := Settlements{Count: 6, MinRadius: 8, Margin: 0.1, Names: DefaultNames()}
	placed, err := PlaceSettlements(m, cfg, NewRand(21), quiet())
	if err != nil {
		t.Fatalf("PlaceSettlements: %v", err)
	}
	if len(placed) != 6 {
		t.Fatalf("expected 6 settlements, got %d", len(placed))
	}
	for i, a := range placed {
		if a.Name == "" || a.Biome == "" {
			t.Errorf("settlement %d missing name or biome: %+v", i, a)
		}
		if a.Position.X() != float32(a.Coord.X) || a.Position.Z() != float32(a.Coord.Z) {
			t.Errorf("settlement %d position %v does not match %v", i, a.Position, a.Coord)
		}
		for j, b := range placed[i+1:] {
			if d := a.Distance(b.Coord); d < cfg.MinRadius {
				t.Errorf("settlements %d and %d are %v apart", i, i+1+j, d)
			}
			if a.ID == b.ID {
				t.Errorf("settlements %d and %d share ID %v", i, i+1+j, a.ID)
			}
		}
	}
}

func TestPlaceSettlementsExhausted(t *testing.T) {
	m := landMap(t, 10, 10)
	// Two settlements can never be 100 cells apart on a 10x10 map.
	cfg := Settlements{Count: 3, MinRadius: 100, MaxAttempts: 50, Names: DefaultNames()}
	placed, err := PlaceSettlements(m, cfg, NewRand(2), quiet())
	if !errors.Is(err, ErrPlacementExhausted) {
		t.Fatalf("expected ErrPlacementExhausted, got %v", err)
	}
	if len(placed) != 1 {
		t.Errorf("expected the first settlement to be kept, got %d", len(placed))
	}
	if !strings.Contains(err.Error(), "placed 1 of 3") {
		t.Errorf("expected the error to report progress, got %q", err)
	}
}

func TestPlaceSettlementsDeterministic(t *testing.T) {
	m := landMap(t, 30, 30)
	cfg := Settlements{Count: 4, MinRadius: 5, Names: DefaultNames()}
	a, _ := PlaceSettlements(m, cfg, NewRand(77), quiet())
	b, _ := PlaceSettlements(m, cfg, NewRand(77), quiet())
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Name != b[i].Name || a[i].Coord != b[i].Coord {
			t.Fatalf("settlement %d differs between equal seeds: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestNameVocabulary(t *testing.T) {
	v := NameVocabulary{
		Biomes:   map[string]Affixes{"desert": {Prefixes: []string{"Dun"}, Suffixes: []string{"ra"}}},
		Fallback: Affixes{Prefixes: []string{"New"}, Suffixes: []string{"ton"}},
		Middles:  []string{"el"},
	}
	if err := v.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	r := rand.New(rand.NewPCG(1, 2))
	if got := v.Name("desert", r); got != "Dunelra" {
		t.Errorf("expected Dunelra, got %q", got)
	}
	if got := v.Name("swamp", r); got != "Neweltton" {
		t.Errorf("expected fallback name Neweltton, got %q", got)
	}
	v.Middles = nil
	if err := v.Validate(); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestDefaultNamesCoverDefaultBiomes(t *testing.T) {
	v := DefaultNames()
	if err := v.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	for _, name := range DefaultConfig(1).Terrain.Biomes.Names() {
		if _, ok := v.Biomes[name]; !ok {
			t.Errorf("no vocabulary for biome %q", name)
		}
	}
}
