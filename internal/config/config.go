package config

import (
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/pelletier/go-toml"
)

// UserConfig is the user facing configuration of world generation. It is
// read from and written to TOML and converted to a world.Config using
// UserConfig.Config.
type UserConfig struct {
	World struct {
		// Seed seeds the noise sampler and the random source of a run. When
		// zero, SeedPhrase is hashed into the seed instead.
		Seed       int64
		SeedPhrase string
		// TilesDeep and TilesWide are the number of tile rows and columns.
		TilesDeep, TilesWide int
		// TileDepth and TileWidth are the vertex counts of one tile.
		TileDepth, TileWidth int
		// TileSize is the noise distance between tile origins. Zero lines up
		// tile edges.
		TileSize float64
		// RandomizeSeeds redraws every wave seed at the start of a run.
		RandomizeSeeds bool
		SeedSpan       float64
	}
	Terrain struct {
		// Noise is the sampler backend: value, perlin or simplex.
		Noise            string
		Scale            float64
		HeightMultiplier float64
		// WaterName is the height category marking water.
		WaterName  string
		WaterColor string
		// Mode is the visualization mode: height, heat, moisture or biome.
		Mode string
	}
	Height, Heat, Moisture Channel

	Biomes struct {
		// Table holds biome names indexed [moisture][heat].
		Table [][]string
		// Colors maps every biome name to a "#rrggbb" colour.
		Colors map[string]string
	}
	Rivers struct {
		Count             int
		HeightThreshold   float64
		Color             string
		MaxOriginAttempts int
	}
	Settlements struct {
		Count       int
		MinRadius   float64
		Margin      float64
		MaxAttempts int
		Middles     []string
		Fallback    Affixes
		Names       map[string]Affixes
	}
	Render struct {
		// Output is the path of the PNG preview.
		Output string
		Scale  int
		Labels bool
	}
}

// Channel configures one noise channel: its octaves, its classification
// bands and its response curve as [in, out] pairs.
type Channel struct {
	Waves      []Wave
	Categories []Category
	Curve      [][]float64
}

// Wave is one noise octave.
type Wave struct {
	Seed, Frequency, Amplitude float64
}

// Category is one classification band.
type Category struct {
	Name      string
	Threshold float64
	Color     string
}

// Affixes are the settlement name prefixes and suffixes of a biome.
type Affixes struct {
	Prefixes, Suffixes []string
}

// Seed returns the configured seed, hashing the seed phrase when no numeric
// seed is set.
func (uc UserConfig) Seed() int64 {
	if uc.World.Seed == 0 && uc.World.SeedPhrase != "" {
		return SeedFromPhrase(uc.World.SeedPhrase)
	}
	return uc.World.Seed
}

// SeedFromPhrase hashes a phrase into a seed.
func SeedFromPhrase(phrase string) int64 {
	return int64(xxhash.Sum64String(phrase))
}

// Load reads the TOML file at path over DefaultConfig. Values absent from
// the file keep their defaults.
func Load(path string) (UserConfig, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("decode config %s: %w", path, err)
	}
	return c, nil
}

// Write encodes uc as TOML to path.
func Write(path string, uc UserConfig) error {
	data, err := toml.Marshal(uc)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
