package terrain

import (
	"image/color"

	"tileworld/internal/noise"
)

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }

// DefaultParams returns the stock terrain: six height bands, four heat and
// moisture bands, and a 4x4 biome table. Sampler is value noise seeded with
// seed.
func DefaultParams(seed int64) *Params {
	return &Params{
		Sampler: noise.NewValue(seed),
		Scale:   6,
		Height: Channel{
			Waves: []noise.Wave{
				{Seed: 56, Frequency: 0.3, Amplitude: 1},
				{Seed: 199.36, Frequency: 0.6, Amplitude: 0.5},
				{Seed: 7.1, Frequency: 1.4, Amplitude: 0.25},
			},
			Categories: NewCategorySet(
				Category{Name: "water", Threshold: 0.4, Color: rgb(42, 92, 170)},
				Category{Name: "sand", Threshold: 0.45, Color: rgb(222, 206, 148)},
				Category{Name: "grass", Threshold: 0.6, Color: rgb(86, 152, 64)},
				Category{Name: "hills", Threshold: 0.75, Color: rgb(62, 110, 48)},
				Category{Name: "mountain", Threshold: 0.9, Color: rgb(120, 104, 92)},
				Category{Name: "snow", Threshold: 1, Color: rgb(240, 240, 245)},
			),
		},
		Heat: Channel{
			Waves: []noise.Wave{
				{Seed: 31, Frequency: 0.2, Amplitude: 1},
				{Seed: 3.3, Frequency: 0.8, Amplitude: 0.5},
			},
			Categories: NewCategorySet(
				Category{Name: "hottest", Threshold: 0.25, Color: rgb(230, 60, 30)},
				Category{Name: "hot", Threshold: 0.5, Color: rgb(240, 160, 60)},
				Category{Name: "cold", Threshold: 0.75, Color: rgb(130, 190, 230)},
				Category{Name: "coldest", Threshold: 1, Color: rgb(225, 240, 255)},
			),
		},
		Moisture: Channel{
			Waves: []noise.Wave{
				{Seed: 621, Frequency: 0.25, Amplitude: 1},
				{Seed: 12.6, Frequency: 0.9, Amplitude: 0.4},
			},
			Categories: NewCategorySet(
				Category{Name: "driest", Threshold: 0.25, Color: rgb(238, 220, 150)},
				Category{Name: "dry", Threshold: 0.5, Color: rgb(190, 210, 120)},
				Category{Name: "wet", Threshold: 0.75, Color: rgb(80, 170, 170)},
				Category{Name: "wettest", Threshold: 1, Color: rgb(30, 90, 160)},
			),
		},
		// Rows run driest to wettest, columns hottest to coldest.
		Biomes: BiomeTable{
			{desert, savanna, tundra, tundra},
			{savanna, grassland, borealForest, tundra},
			{seasonalForest, temperateForest, borealForest, tundra},
			{tropicalRainforest, temperateRainforest, borealForest, tundra},
		},
		HeightCurve:      Keyframes{{In: 0, Out: 0}, {In: 0.4, Out: 0}, {In: 1, Out: 1}},
		HeatCurve:        Keyframes{{In: 0, Out: 0}, {In: 1, Out: 0.5}},
		MoistureCurve:    Keyframes{{In: 0, Out: 0}, {In: 1, Out: 0.4}},
		HeightMultiplier: 3,
		WaterName:        "water",
		WaterColor:       rgb(42, 92, 170),
		Mode:             ModeBiome,
	}
}

var (
	desert              = Biome{Name: "desert", Color: rgb(238, 218, 130)}
	savanna             = Biome{Name: "savanna", Color: rgb(177, 209, 110)}
	tundra              = Biome{Name: "tundra", Color: rgb(190, 200, 190)}
	grassland           = Biome{Name: "grassland", Color: rgb(120, 190, 80)}
	borealForest        = Biome{Name: "boreal forest", Color: rgb(95, 115, 62)}
	seasonalForest      = Biome{Name: "seasonal forest", Color: rgb(73, 145, 60)}
	temperateForest     = Biome{Name: "temperate forest", Color: rgb(44, 137, 103)}
	tropicalRainforest  = Biome{Name: "tropical rainforest", Color: rgb(7, 120, 40)}
	temperateRainforest = Biome{Name: "temperate rainforest", Color: rgb(29, 110, 90)}
)
