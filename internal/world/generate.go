package world

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"tileworld/internal/noise"
	"tileworld/internal/profiling"
	"tileworld/internal/terrain"
)

// Config holds the runtime configuration of a world generation run.
type Config struct {
	// Log is the logger generation reports to. Defaults to slog.Default().
	Log *slog.Logger

	// TilesDeep and TilesWide are the number of tile rows and columns.
	TilesDeep, TilesWide int
	// TileDepth and TileWidth are the vertex counts of one tile.
	TileDepth, TileWidth int
	// TileSize is the distance in noise units between the origins of two
	// neighbouring tiles. When zero each axis steps by its vertex count less
	// one, which makes tile edges line up.
	TileSize float64

	Terrain *terrain.Params

	// RandomizeSeeds draws fresh wave seeds for every channel at the start
	// of the run, each in [0, SeedSpan).
	RandomizeSeeds bool
	SeedSpan       float64

	Rivers      Rivers
	Settlements Settlements
}

// DefaultConfig returns a 3x3 world of 32x32-vertex tiles on the default
// terrain.
func DefaultConfig(seed int64) Config {
	return Config{
		TilesDeep: 3, TilesWide: 3,
		TileDepth: 32, TileWidth: 32,
		Terrain:        terrain.DefaultParams(seed),
		RandomizeSeeds: true,
		SeedSpan:       10000,
		Rivers: Rivers{
			Count:           6,
			HeightThreshold: 0.6,
			Color:           DefaultRiverColor,
		},
		Settlements: Settlements{
			Count:     8,
			MinRadius: 12,
			Margin:    0.1,
			Names:     DefaultNames(),
		},
	}
}

func (c Config) withDefaults() Config {
	if c.Log == nil {
		c.Log = slog.Default()
	}
	if c.SeedSpan <= 0 {
		c.SeedSpan = 10000
	}
	c.Rivers = c.Rivers.withDefaults()
	c.Settlements = c.Settlements.withDefaults()
	return c
}

// steps returns how far apart neighbouring tile origins are in noise units.
func (c Config) steps() (z, x float64) {
	if c.TileSize > 0 {
		return c.TileSize, c.TileSize
	}
	return float64(max(c.TileDepth-1, 1)), float64(max(c.TileWidth-1, 1))
}

// Validate fails with ErrInvalidConfiguration, wrapping the terrain or noise
// error where one applies, before any generation work starts. Zero values
// that have defaults are accepted.
func (c Config) Validate() error {
	c = c.withDefaults()
	if _, err := NewTileSpace(c.TilesDeep, c.TilesWide, c.TileDepth, c.TileWidth); err != nil {
		return err
	}
	if c.TileSize < 0 {
		return fmt.Errorf("%w: tile size %v is negative", ErrInvalidConfiguration, c.TileSize)
	}
	if c.Terrain == nil {
		return fmt.Errorf("%w: no terrain parameters", ErrInvalidConfiguration)
	}
	if err := c.Terrain.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if err := c.Rivers.validate(); err != nil {
		return err
	}
	return c.Settlements.validate()
}

// Result is the outcome of one generation run. River and settlement
// failures are recoverable and reported here rather than failing the run.
type Result struct {
	Map         *Map
	Rivers      []River
	RiverErrors []error
	Settlements []Settlement
	// SettlementErr wraps ErrPlacementExhausted when fewer settlements than
	// requested could be placed.
	SettlementErr error
	// Profile holds the time spent in every phase.
	Profile *profiling.Recorder
}

// NewRand returns the deterministic random source of a generation run.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// Generate runs one world generation: seed randomization, tile building in
// row-major order, river carving and then settlement placement. All
// randomness comes from r.
func Generate(cfg Config, r *rand.Rand) (*Result, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Log
	res := &Result{Profile: profiling.NewRecorder()}
	start := time.Now()

	params := *cfg.Terrain
	if cfg.RandomizeSeeds {
		params.Height.Waves = noise.RandomizeSeeds(r, params.Height.Waves, cfg.SeedSpan)
		params.Heat.Waves = noise.RandomizeSeeds(r, params.Heat.Waves, cfg.SeedSpan)
		params.Moisture.Waves = noise.RandomizeSeeds(r, params.Moisture.Waves, cfg.SeedSpan)
	}

	space, _ := NewTileSpace(cfg.TilesDeep, cfg.TilesWide, cfg.TileDepth, cfg.TileWidth)
	stepZ, stepX := cfg.steps()
	stop := res.Profile.Track("world.buildTiles")
	m, err := buildTiles(space, &params, stepZ, stepX)
	stop()
	if err != nil {
		return nil, err
	}
	res.Map = m
	log.Debug("Built tiles.", "tiles", len(m.tiles), "depth", space.Depth(), "width", space.Width())

	stop = res.Profile.Track("world.CarveRivers")
	res.Rivers, res.RiverErrors = CarveRivers(m, cfg.Rivers, r, log)
	stop()

	stop = res.Profile.Track("world.PlaceSettlements")
	res.Settlements, res.SettlementErr = PlaceSettlements(m, cfg.Settlements, r, log)
	stop()
	if res.SettlementErr != nil {
		log.Warn("Placed fewer settlements than requested.", "placed", len(res.Settlements), "requested", cfg.Settlements.Count, "error", res.SettlementErr)
	}

	log.Info("Generated world.",
		"tiles", len(m.tiles),
		"rivers", len(res.Rivers),
		"riverFailures", len(res.RiverErrors),
		"settlements", len(res.Settlements),
		"took", time.Since(start))
	return res, nil
}
