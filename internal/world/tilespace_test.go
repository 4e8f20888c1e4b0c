package world

import (
	"errors"
	"slices"
	"testing"
)

func TestNewTileSpaceInvalid(t *testing.T) {
	for _, dims := range [][4]int{{0, 1, 4, 4}, {1, -1, 4, 4}, {1, 1, 0, 4}, {1, 1, 4, 0}} {
		if _, err := NewTileSpace(dims[0], dims[1], dims[2], dims[3]); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("NewTileSpace%v: expected ErrInvalidConfiguration, got %v", dims, err)
		}
	}
}

func TestToTileInvertsLocalIndex(t *testing.T) {
	s, err := NewTileSpace(2, 3, 4, 5)
	if err != nil {
		t.Fatal(err)
	}
	cases := map[Coord]TileCoord{
		{0, 0}:  {TileRow: 0, TileCol: 0, LocalZ: 3, LocalX: 4},
		{3, 4}:  {TileRow: 0, TileCol: 0, LocalZ: 0, LocalX: 0},
		{4, 5}:  {TileRow: 1, TileCol: 1, LocalZ: 3, LocalX: 4},
		{7, 14}: {TileRow: 1, TileCol: 2, LocalZ: 0, LocalX: 0},
		{5, 12}: {TileRow: 1, TileCol: 2, LocalZ: 2, LocalX: 2},
	}
	for c, want := range cases {
		got, err := s.ToTile(c)
		if err != nil {
			t.Fatalf("ToTile(%v): %v", c, err)
		}
		if got != want {
			t.Errorf("ToTile(%v) = %+v, expected %+v", c, got, want)
		}
	}
}

// TestTileSpaceRoundTrip checks every in-bounds coordinate survives
// ToTile followed by ToGlobal, with unequal tile depth and width.
func TestTileSpaceRoundTrip(t *testing.T) {
	s, err := NewTileSpace(3, 2, 6, 9)
	if err != nil {
		t.Fatal(err)
	}
	if s.Depth() != 18 || s.Width() != 18 {
		t.Fatalf("expected 18x18 map, got %dx%d", s.Depth(), s.Width())
	}
	seen := make(map[TileCoord]bool)
	for z := 0; z < s.Depth(); z++ {
		for x := 0; x < s.Width(); x++ {
			c := Coord{z, x}
			tc, err := s.ToTile(c)
			if err != nil {
				t.Fatalf("ToTile(%v): %v", c, err)
			}
			if seen[tc] {
				t.Fatalf("ToTile(%v) = %+v already produced by another coordinate", c, tc)
			}
			seen[tc] = true
			back, err := s.ToGlobal(tc)
			if err != nil {
				t.Fatalf("ToGlobal(%+v): %v", tc, err)
			}
			if back != c {
				t.Fatalf("round trip %v -> %+v -> %v", c, tc, back)
			}
		}
	}
}

func TestTileSpaceOutOfBounds(t *testing.T) {
	s, _ := NewTileSpace(2, 2, 4, 4)
	for _, c := range []Coord{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {100, 100}} {
		if s.Contains(c) {
			t.Errorf("expected %v outside the map", c)
		}
		if _, err := s.ToTile(c); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("ToTile(%v): expected ErrOutOfBounds, got %v", c, err)
		}
	}
	for _, tc := range []TileCoord{{TileRow: 2}, {TileCol: -1}, {LocalZ: 4}, {LocalX: -1}} {
		if _, err := s.ToGlobal(tc); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("ToGlobal(%+v): expected ErrOutOfBounds, got %v", tc, err)
		}
	}
}

func TestNeighborsOrder(t *testing.T) {
	s, _ := NewTileSpace(1, 1, 4, 4)
	got := s.Neighbors(Coord{1, 1}, nil)
	want := []Coord{{0, 1}, {2, 1}, {1, 0}, {1, 2}}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	corner := s.Neighbors(Coord{0, 3}, nil)
	if !slices.Equal(corner, []Coord{{1, 3}, {0, 2}}) {
		t.Errorf("unexpected corner neighbours %v", corner)
	}
}
