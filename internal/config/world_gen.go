package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"strings"

	"tileworld/internal/noise"
	"tileworld/internal/terrain"
	"tileworld/internal/world"
)

// DefaultConfig returns a configuration with the default values filled out.
func DefaultConfig() UserConfig {
	c := FromWorld(world.DefaultConfig(0), noise.KindValue)
	c.World.Seed = 0
	c.World.SeedPhrase = "tileworld"
	c.Render.Output = "world.png"
	c.Render.Scale = 4
	c.Render.Labels = true
	return c
}

// Config converts a UserConfig to a world.Config and validates it. Every
// conversion failure wraps world.ErrInvalidConfiguration.
func (uc UserConfig) Config(log *slog.Logger) (world.Config, error) {
	seed := uc.Seed()
	kind, err := noise.ParseKind(uc.Terrain.Noise)
	if err != nil {
		return world.Config{}, invalid("terrain noise", err)
	}
	sampler, err := noise.New(kind, seed)
	if err != nil {
		return world.Config{}, invalid("terrain noise", err)
	}
	mode, err := terrain.ParseMode(uc.Terrain.Mode)
	if err != nil {
		return world.Config{}, invalid("terrain mode", err)
	}
	waterColor, err := ParseColor(uc.Terrain.WaterColor)
	if err != nil {
		return world.Config{}, invalid("terrain water colour", err)
	}

	p := &terrain.Params{
		Sampler:          sampler,
		Scale:            uc.Terrain.Scale,
		HeightMultiplier: uc.Terrain.HeightMultiplier,
		WaterName:        uc.Terrain.WaterName,
		WaterColor:       waterColor,
		Mode:             mode,
	}
	channels := []struct {
		name  string
		in    Channel
		out   *terrain.Channel
		curve *terrain.Curve
	}{
		{"height", uc.Height, &p.Height, &p.HeightCurve},
		{"heat", uc.Heat, &p.Heat, &p.HeatCurve},
		{"moisture", uc.Moisture, &p.Moisture, &p.MoistureCurve},
	}
	for _, ch := range channels {
		if *ch.out, err = ch.in.channel(); err != nil {
			return world.Config{}, invalid(ch.name, err)
		}
		if *ch.curve, err = keyframes(ch.in.Curve); err != nil {
			return world.Config{}, invalid(ch.name+" curve", err)
		}
	}
	if p.Biomes, err = uc.biomeTable(); err != nil {
		return world.Config{}, invalid("biomes", err)
	}

	riverColor, err := ParseColor(uc.Rivers.Color)
	if err != nil {
		return world.Config{}, invalid("river colour", err)
	}
	names := world.NameVocabulary{
		Biomes:   make(map[string]world.Affixes, len(uc.Settlements.Names)),
		Fallback: world.Affixes(uc.Settlements.Fallback),
		Middles:  uc.Settlements.Middles,
	}
	for biome, a := range uc.Settlements.Names {
		names.Biomes[biome] = world.Affixes(a)
	}

	conf := world.Config{
		Log:            log,
		TilesDeep:      uc.World.TilesDeep,
		TilesWide:      uc.World.TilesWide,
		TileDepth:      uc.World.TileDepth,
		TileWidth:      uc.World.TileWidth,
		TileSize:       uc.World.TileSize,
		Terrain:        p,
		RandomizeSeeds: uc.World.RandomizeSeeds,
		SeedSpan:       uc.World.SeedSpan,
		Rivers: world.Rivers{
			Count:             uc.Rivers.Count,
			HeightThreshold:   uc.Rivers.HeightThreshold,
			Color:             riverColor,
			MaxOriginAttempts: uc.Rivers.MaxOriginAttempts,
		},
		Settlements: world.Settlements{
			Count:       uc.Settlements.Count,
			MinRadius:   uc.Settlements.MinRadius,
			Margin:      uc.Settlements.Margin,
			MaxAttempts: uc.Settlements.MaxAttempts,
			Names:       names,
		},
	}
	return conf, conf.Validate()
}

func invalid(field string, err error) error {
	if errors.Is(err, world.ErrInvalidConfiguration) {
		return fmt.Errorf("%s: %w", field, err)
	}
	return fmt.Errorf("%w: %s: %w", world.ErrInvalidConfiguration, field, err)
}

func (c Channel) channel() (terrain.Channel, error) {
	out := terrain.Channel{Waves: make([]noise.Wave, len(c.Waves))}
	for i, w := range c.Waves {
		out.Waves[i] = noise.Wave(w)
	}
	categories := make([]terrain.Category, len(c.Categories))
	for i, cat := range c.Categories {
		col, err := ParseColor(cat.Color)
		if err != nil {
			return out, fmt.Errorf("category %q: %w", cat.Name, err)
		}
		categories[i] = terrain.Category{Name: cat.Name, Threshold: cat.Threshold, Color: col}
	}
	out.Categories = terrain.NewCategorySet(categories...)
	return out, nil
}

// keyframes converts [in, out] pairs to a curve.
func keyframes(pairs [][]float64) (terrain.Keyframes, error) {
	k := make(terrain.Keyframes, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("keyframe %d has %d values, expected [in, out]", i, len(p))
		}
		k[i] = terrain.Keyframe{In: p[0], Out: p[1]}
	}
	return k, nil
}

func (uc UserConfig) biomeTable() (terrain.BiomeTable, error) {
	table := make(terrain.BiomeTable, len(uc.Biomes.Table))
	for m, row := range uc.Biomes.Table {
		table[m] = make([]terrain.Biome, len(row))
		for h, name := range row {
			hexColor, ok := uc.Biomes.Colors[name]
			if !ok {
				return nil, fmt.Errorf("no colour for biome %q", name)
			}
			col, err := ParseColor(hexColor)
			if err != nil {
				return nil, fmt.Errorf("biome %q: %w", name, err)
			}
			table[m][h] = terrain.Biome{Name: name, Color: col}
		}
	}
	return table, nil
}

// FromWorld describes a runtime configuration as a UserConfig. Curves that
// are not keyframes are dropped.
func FromWorld(wc world.Config, kind noise.Kind) UserConfig {
	var c UserConfig
	c.World.TilesDeep, c.World.TilesWide = wc.TilesDeep, wc.TilesWide
	c.World.TileDepth, c.World.TileWidth = wc.TileDepth, wc.TileWidth
	c.World.TileSize = wc.TileSize
	c.World.RandomizeSeeds = wc.RandomizeSeeds
	c.World.SeedSpan = wc.SeedSpan

	if p := wc.Terrain; p != nil {
		c.Terrain.Noise = string(kind)
		c.Terrain.Scale = p.Scale
		c.Terrain.HeightMultiplier = p.HeightMultiplier
		c.Terrain.WaterName = p.WaterName
		c.Terrain.WaterColor = FormatColor(p.WaterColor)
		c.Terrain.Mode = string(p.Mode)
		c.Height = fromChannel(p.Height, p.HeightCurve)
		c.Heat = fromChannel(p.Heat, p.HeatCurve)
		c.Moisture = fromChannel(p.Moisture, p.MoistureCurve)

		c.Biomes.Colors = make(map[string]string)
		c.Biomes.Table = make([][]string, len(p.Biomes))
		for m, row := range p.Biomes {
			for _, b := range row {
				c.Biomes.Table[m] = append(c.Biomes.Table[m], b.Name)
				c.Biomes.Colors[b.Name] = FormatColor(b.Color)
			}
		}
	}

	c.Rivers.Count = wc.Rivers.Count
	c.Rivers.HeightThreshold = wc.Rivers.HeightThreshold
	c.Rivers.Color = FormatColor(wc.Rivers.Color)
	c.Rivers.MaxOriginAttempts = wc.Rivers.MaxOriginAttempts

	s := wc.Settlements
	c.Settlements.Count = s.Count
	c.Settlements.MinRadius = s.MinRadius
	c.Settlements.Margin = s.Margin
	c.Settlements.MaxAttempts = s.MaxAttempts
	c.Settlements.Middles = s.Names.Middles
	c.Settlements.Fallback = Affixes(s.Names.Fallback)
	c.Settlements.Names = make(map[string]Affixes, len(s.Names.Biomes))
	for biome, a := range s.Names.Biomes {
		c.Settlements.Names[biome] = Affixes(a)
	}
	return c
}

func fromChannel(ch terrain.Channel, curve terrain.Curve) Channel {
	out := Channel{Waves: make([]Wave, len(ch.Waves))}
	for i, w := range ch.Waves {
		out.Waves[i] = Wave(w)
	}
	for _, cat := range ch.Categories {
		out.Categories = append(out.Categories, Category{Name: cat.Name, Threshold: cat.Threshold, Color: FormatColor(cat.Color)})
	}
	if k, ok := curve.(terrain.Keyframes); ok {
		for _, key := range k {
			out.Curve = append(out.Curve, []float64{key.In, key.Out})
		}
	}
	return out
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". An empty string is the zero
// colour.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "" {
		return color.RGBA{}, nil
	}
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("colour %q is not #rrggbb or #rrggbbaa", s)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	c := color.RGBA{R: b[0], G: b[1], B: b[2], A: 255}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}

// FormatColor formats c as "#rrggbb", or "#rrggbbaa" when it is not opaque.
func FormatColor(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
