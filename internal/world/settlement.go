package world

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// settlementSpace namespaces settlement IDs so equal seeds give equal IDs.
var settlementSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("tileworld:settlement"))

// Settlements configures settlement placement.
type Settlements struct {
	Count int
	// MinRadius is the smallest allowed distance between two settlements.
	MinRadius float64
	// Margin is the fraction of each axis trimmed from both map edges
	// before sampling.
	Margin float64
	// MaxAttempts caps the spawn search of each settlement.
	MaxAttempts int
	Names       NameVocabulary
}

func (s Settlements) withDefaults() Settlements {
	if s.MaxAttempts <= 0 {
		s.MaxAttempts = 1000
	}
	if s.Names.Middles == nil && s.Names.Biomes == nil {
		s.Names = DefaultNames()
	}
	return s
}

func (s Settlements) validate() error {
	switch {
	case s.Count < 0:
		return fmt.Errorf("%w: settlement count %d is negative", ErrInvalidConfiguration, s.Count)
	case s.MinRadius < 0 || math.IsNaN(s.MinRadius):
		return fmt.Errorf("%w: settlement radius %v must not be negative", ErrInvalidConfiguration, s.MinRadius)
	case s.Margin < 0 || s.Margin >= 0.5 || math.IsNaN(s.Margin):
		return fmt.Errorf("%w: settlement margin %v must be in [0, 0.5)", ErrInvalidConfiguration, s.Margin)
	}
	if s.Count > 0 {
		return s.Names.Validate()
	}
	return nil
}

// Settlement is a placed settlement.
type Settlement struct {
	ID    uuid.UUID
	Coord Coord
	Name  string
	Biome string
	// Position is the world-space point for a marker: x and z from Coord,
	// y from the terrain elevation.
	Position mgl32.Vec3
}

// Distance returns the Euclidean distance between two settlements on the
// x/z plane.
func (s Settlement) Distance(c Coord) float64 {
	return math.Hypot(float64(s.Coord.X-c.X), float64(s.Coord.Z-c.Z))
}

// sampleRange returns the half-open sampling interval of an axis of n cells.
func sampleRange(n int, margin float64) (lo, hi int) {
	lo = int(margin * float64(n))
	hi = int((1 - margin) * float64(n))
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// ChooseSpawn samples land cells inside the margins until one lies at
// least cfg.MinRadius from every existing settlement.
func ChooseSpawn(m *Map, existing []Settlement, cfg Settlements, r *rand.Rand) (Coord, error) {
	cfg = cfg.withDefaults()
	zLo, zHi := sampleRange(m.space.Depth(), cfg.Margin)
	xLo, xHi := sampleRange(m.space.Width(), cfg.Margin)

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		c := Coord{Z: zLo + r.IntN(zHi-zLo), X: xLo + r.IntN(xHi-xLo)}
		if b, err := m.Biome(c); err != nil || b == nil {
			continue
		}
		if clearOf(existing, c, cfg.MinRadius) {
			return c, nil
		}
	}
	return Coord{}, fmt.Errorf("%w: no land cell at least %v from %d settlements after %d attempts",
		ErrPlacementExhausted, cfg.MinRadius, len(existing), cfg.MaxAttempts)
}

// clearOf reports whether c keeps at least radius from every settlement.
func clearOf(existing []Settlement, c Coord, radius float64) bool {
	for _, s := range existing {
		if s.Distance(c) < radius {
			return false
		}
	}
	return true
}

// PlaceSettlements places up to cfg.Count settlements in order. When a spawn
// search is exhausted it returns the settlements placed so far together with
// an error wrapping ErrPlacementExhausted.
func PlaceSettlements(m *Map, cfg Settlements, r *rand.Rand, log *slog.Logger) ([]Settlement, error) {
	cfg = cfg.withDefaults()
	if log == nil {
		log = slog.Default()
	}
	placed := make([]Settlement, 0, cfg.Count)
	for n := 0; n < cfg.Count; n++ {
		c, err := ChooseSpawn(m, placed, cfg, r)
		if err != nil {
			return placed, fmt.Errorf("placed %d of %d settlements: %w", len(placed), cfg.Count, err)
		}
		biome, _ := m.Biome(c)
		elevation, _ := m.Elevation(c)
		name := cfg.Names.Name(biome.Name, r)
		s := Settlement{
			ID:       uuid.NewSHA1(settlementSpace, fmt.Appendf(nil, "%d/%d/%d/%s", n, c.Z, c.X, name)),
			Coord:    c,
			Name:     name,
			Biome:    biome.Name,
			Position: mgl32.Vec3{float32(c.X), elevation, float32(c.Z)},
		}
		placed = append(placed, s)
		log.Debug("Placed settlement.", "name", s.Name, "biome", s.Biome, "at", c)
	}
	return placed, nil
}
