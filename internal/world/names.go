package world

import (
	"fmt"
	"math/rand/v2"
)

// Affixes are the name fragments that open and close a settlement name.
type Affixes struct {
	Prefixes []string
	Suffixes []string
}

func (a Affixes) empty() bool { return len(a.Prefixes) == 0 || len(a.Suffixes) == 0 }

// NameVocabulary builds settlement names from per-biome affixes and a
// shared pool of middle syllables.
type NameVocabulary struct {
	// Biomes maps a biome name to its affixes.
	Biomes map[string]Affixes
	// Fallback serves biomes missing from Biomes.
	Fallback Affixes
	Middles  []string
}

// Validate checks every affix list and the middle pool are populated.
func (v NameVocabulary) Validate() error {
	if len(v.Middles) == 0 {
		return fmt.Errorf("%w: name vocabulary has no middle syllables", ErrInvalidConfiguration)
	}
	if v.Fallback.empty() {
		return fmt.Errorf("%w: name vocabulary fallback needs prefixes and suffixes", ErrInvalidConfiguration)
	}
	for biome, a := range v.Biomes {
		if a.empty() {
			return fmt.Errorf("%w: name vocabulary for %q needs prefixes and suffixes", ErrInvalidConfiguration, biome)
		}
	}
	return nil
}

// Name returns prefix + middle + suffix for a settlement in biome.
func (v NameVocabulary) Name(biome string, r *rand.Rand) string {
	a, ok := v.Biomes[biome]
	if !ok || a.empty() {
		a = v.Fallback
	}
	return pick(a.Prefixes, r) + pick(v.Middles, r) + pick(a.Suffixes, r)
}

func pick(list []string, r *rand.Rand) string {
	if len(list) == 0 {
		return ""
	}
	return list[r.IntN(len(list))]
}

// DefaultNames returns the stock vocabulary covering the default biomes.
func DefaultNames() NameVocabulary {
	return NameVocabulary{
		Biomes: map[string]Affixes{
			"desert":               {Prefixes: []string{"Dun", "Sar", "Kha", "Zar"}, Suffixes: []string{"ra", "mir", "sand", "ah"}},
			"savanna":              {Prefixes: []string{"Ola", "Mba", "Tem", "Ka"}, Suffixes: []string{"veld", "ngo", "ru", "wa"}},
			"tundra":               {Prefixes: []string{"Frost", "Kald", "Ys", "Hvit"}, Suffixes: []string{"heim", "vik", "mark", "fell"}},
			"grassland":            {Prefixes: []string{"Green", "Mead", "Fair", "Lea"}, Suffixes: []string{"field", "ford", "ton", "ham"}},
			"boreal forest":        {Prefixes: []string{"Pine", "Fir", "Tall", "Elk"}, Suffixes: []string{"wood", "holt", "grove", "den"}},
			"seasonal forest":      {Prefixes: []string{"Oak", "Ash", "Bel", "Wyn"}, Suffixes: []string{"dale", "ley", "brook", "shaw"}},
			"temperate forest":     {Prefixes: []string{"Elm", "Birch", "Haw", "Thorn"}, Suffixes: []string{"hurst", "wick", "stead", "wood"}},
			"tropical rainforest":  {Prefixes: []string{"Ama", "Itza", "Yax", "Tupa"}, Suffixes: []string{"lan", "pec", "tla", "ra"}},
			"temperate rainforest": {Prefixes: []string{"Moss", "Fern", "Mist", "Cedar"}, Suffixes: []string{"glen", "hollow", "mere", "vale"}},
		},
		Fallback: Affixes{Prefixes: []string{"New", "Old", "High", "Low"}, Suffixes: []string{"ton", "burg", "port", "by"}},
		Middles:  []string{"", "a", "en", "il", "or", "ar", "es", "ith"},
	}
}
