package terrain

import (
	"fmt"
	"image/color"
	"strings"
)

// Mode selects which classification colours a tile's surface shows.
type Mode string

const (
	ModeHeight   Mode = "height"
	ModeHeat     Mode = "heat"
	ModeMoisture Mode = "moisture"
	ModeBiome    Mode = "biome"
)

// ParseMode resolves a visualization mode name. An empty name selects the
// biome view.
func ParseMode(name string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(name))); m {
	case "":
		return ModeBiome, nil
	case ModeHeight, ModeHeat, ModeMoisture, ModeBiome:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown visualization mode %q", ErrInvalidConfiguration, name)
}

// Surface returns the colour of every cell for the mode passed, with painted
// river cells drawn on top. Water cells use the water colour in biome mode.
func (t *Tile) Surface(mode Mode) []color.RGBA {
	out := make([]color.RGBA, len(t.HeightTypes))
	for i := range out {
		switch mode {
		case ModeHeight:
			out[i] = t.HeightTypes[i].Color
		case ModeHeat:
			out[i] = t.HeatTypes[i].Color
		case ModeMoisture:
			out[i] = t.MoistureTypes[i].Color
		default:
			if b := t.Biomes[i]; b != nil {
				out[i] = b.Color
			} else {
				out[i] = t.waterColor
			}
		}
		if t.Rivers[i] {
			out[i] = t.riverColor
		}
	}
	return out
}

// SetMode recolours the tile texture for another visualization mode,
// keeping painted rivers.
func (t *Tile) SetMode(mode Mode) {
	t.Texture = t.Surface(mode)
}
