package terrain

import (
	"fmt"
	"image/color"
	"strings"

	"tileworld/internal/noise"
)

// Channel is the octave stack and classification table of one scalar field.
type Channel struct {
	Waves      []noise.Wave
	Categories CategorySet
}

func (c Channel) validate(name string) error {
	if err := noise.ValidateWaves(c.Waves); err != nil {
		return fmt.Errorf("%s waves: %w", name, err)
	}
	if err := c.Categories.Validate(); err != nil {
		return fmt.Errorf("%s categories: %w", name, err)
	}
	return nil
}

// Params holds everything a tile needs to build itself. A single Params
// value is shared by every tile of a world.
type Params struct {
	Sampler noise.Sampler
	// Scale divides sample coordinates before the wave frequencies apply.
	Scale float64

	Height, Heat, Moisture Channel
	Biomes                 BiomeTable

	// HeightCurve shapes elevation before HeightMultiplier applies.
	HeightCurve Curve
	// HeatCurve maps squared height to a value added to heat.
	HeatCurve Curve
	// MoistureCurve maps squared height to a value subtracted from moisture.
	MoistureCurve    Curve
	HeightMultiplier float64

	// WaterName is the height category name that marks water cells.
	WaterName  string
	WaterColor color.RGBA
	Mode       Mode
}

// Validate fails with ErrInvalidConfiguration when the parameters cannot
// build a tile.
func (p *Params) Validate() error {
	if p.Sampler == nil {
		return fmt.Errorf("%w: no noise sampler", ErrInvalidConfiguration)
	}
	if p.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive, got %v", ErrInvalidConfiguration, p.Scale)
	}
	channels := []struct {
		name string
		ch   Channel
	}{{"height", p.Height}, {"heat", p.Heat}, {"moisture", p.Moisture}}
	for _, c := range channels {
		if err := c.ch.validate(c.name); err != nil {
			return err
		}
	}
	if err := p.Biomes.Validate(len(p.Moisture.Categories), len(p.Heat.Categories)); err != nil {
		return err
	}
	curves := []struct {
		name  string
		curve Curve
	}{{"height", p.HeightCurve}, {"heat", p.HeatCurve}, {"moisture", p.MoistureCurve}}
	for _, c := range curves {
		if c.curve == nil {
			return fmt.Errorf("%w: missing %s curve", ErrInvalidConfiguration, c.name)
		}
		if k, ok := c.curve.(Keyframes); ok {
			if err := k.Validate(); err != nil {
				return fmt.Errorf("%s curve: %w", c.name, err)
			}
		}
	}
	if !p.hasWater() {
		return fmt.Errorf("%w: no height category named %q", ErrInvalidConfiguration, p.WaterName)
	}
	if _, err := ParseMode(string(p.Mode)); err != nil {
		return err
	}
	return nil
}

func (p *Params) hasWater() bool {
	for _, c := range p.Height.Categories {
		if isWater(c.Name, p.WaterName) {
			return true
		}
	}
	return false
}

func isWater(name, water string) bool {
	return strings.EqualFold(name, water)
}

// Placement locates a tile within the world.
type Placement struct {
	Row, Col     int
	Depth, Width int
	// OffsetX and OffsetZ shift the wave noise sample position.
	OffsetX, OffsetZ float64
	// GradientOffsetZ, CenterZ and MaxDistanceZ parameterise the latitude
	// gradient that scales heat.
	GradientOffsetZ float64
	CenterZ         float64
	MaxDistanceZ    float64
}

// Tile is the generated data of one world tile. All grids share the
// Depth x Width row-major layout of the tile's vertex grid.
type Tile struct {
	Row, Col     int
	Depth, Width int

	Height, Heat, Moisture *noise.Grid

	HeightTypes, HeatTypes, MoistureTypes []Category
	// Biomes is nil at water cells.
	Biomes []*Biome

	// Elevation holds the vertical offset of every mesh vertex.
	Elevation []float32
	// Texture holds the surface colour of every cell.
	Texture []color.RGBA
	// Rivers marks cells painted by a river.
	Rivers []bool

	waterName  string
	waterColor color.RGBA
	riverColor color.RGBA
}

// Build generates a tile: noise fields, per-channel classification, biome
// assignment, surface colours and vertex elevation. Given equal Params and
// Placement the output is identical. Invalid params fail with
// ErrInvalidConfiguration before any noise is sampled.
func Build(p *Params, pl Placement) (*Tile, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	depth, width := pl.Depth, pl.Width

	height, err := noise.GenerateWaveNoise(p.Sampler, depth, width, p.Scale, pl.OffsetX, pl.OffsetZ, p.Height.Waves)
	if err != nil {
		return nil, fmt.Errorf("height map: %w", err)
	}
	gradient, err := noise.GenerateGradientNoise(depth, width, pl.CenterZ, pl.MaxDistanceZ, pl.GradientOffsetZ)
	if err != nil {
		return nil, fmt.Errorf("heat gradient: %w", err)
	}
	heat, err := noise.GenerateWaveNoise(p.Sampler, depth, width, p.Scale, pl.OffsetX, pl.OffsetZ, p.Heat.Waves)
	if err != nil {
		return nil, fmt.Errorf("heat map: %w", err)
	}
	moisture, err := noise.GenerateWaveNoise(p.Sampler, depth, width, p.Scale, pl.OffsetX, pl.OffsetZ, p.Moisture.Waves)
	if err != nil {
		return nil, fmt.Errorf("moisture map: %w", err)
	}

	n := depth * width
	for i := 0; i < n; i++ {
		h2 := height.Values[i] * height.Values[i]
		heat.Values[i] = gradient.Values[i]*heat.Values[i] + p.HeatCurve.Evaluate(h2)
		moisture.Values[i] -= p.MoistureCurve.Evaluate(h2)
	}

	t := &Tile{
		Row: pl.Row, Col: pl.Col,
		Depth: depth, Width: width,
		Height: height, Heat: heat, Moisture: moisture,
		HeightTypes:   make([]Category, n),
		HeatTypes:     make([]Category, n),
		MoistureTypes: make([]Category, n),
		Biomes:        make([]*Biome, n),
		Elevation:     make([]float32, n),
		Rivers:        make([]bool, n),
		waterName:     p.WaterName,
		waterColor:    p.WaterColor,
	}
	for i := 0; i < n; i++ {
		t.HeightTypes[i] = p.Height.Categories.Classify(height.Values[i])
		t.HeatTypes[i] = p.Heat.Categories.Classify(heat.Values[i])
		t.MoistureTypes[i] = p.Moisture.Categories.Classify(moisture.Values[i])

		if !isWater(t.HeightTypes[i].Name, p.WaterName) {
			t.Biomes[i] = p.Biomes.Lookup(t.MoistureTypes[i].Index, t.HeatTypes[i].Index)
		}
		t.Elevation[i] = float32(p.HeightCurve.Evaluate(height.Values[i]) * p.HeightMultiplier)
	}
	t.Texture = t.Surface(p.Mode)
	return t, nil
}

// Index returns the cell index of local coordinate (z, x).
func (t *Tile) Index(z, x int) int { return z*t.Width + x }

// IsWater reports whether the cell at index i is classified as water.
func (t *Tile) IsWater(i int) bool {
	return isWater(t.HeightTypes[i].Name, t.waterName)
}

// PaintRiver marks the cell at index i as river and recolours its texture.
func (t *Tile) PaintRiver(i int, c color.RGBA) {
	t.Rivers[i] = true
	t.riverColor = c
	t.Texture[i] = c
}

// RiverCells counts the painted river cells.
func (t *Tile) RiverCells() int {
	var n int
	for _, r := range t.Rivers {
		if r {
			n++
		}
	}
	return n
}
