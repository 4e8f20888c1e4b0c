package terrain

import (
	"fmt"
	"image/color"
)

// Biome is the climate classification of a land cell.
type Biome struct {
	Name  string
	Color color.RGBA
}

// BiomeTable is a fixed lookup matrix indexed [moisture][heat] by category
// index.
type BiomeTable [][]Biome

// Validate checks the table has exactly one row per moisture category and
// one column per heat category.
func (t BiomeTable) Validate(moistureCount, heatCount int) error {
	if len(t) != moistureCount {
		return fmt.Errorf("%w: biome table has %d rows, expected %d moisture categories",
			ErrInvalidConfiguration, len(t), moistureCount)
	}
	for i, row := range t {
		if len(row) != heatCount {
			return fmt.Errorf("%w: biome table row %d has %d columns, expected %d heat categories",
				ErrInvalidConfiguration, i, len(row), heatCount)
		}
	}
	return nil
}

// Lookup returns the biome for a moisture and heat category index. The
// pointer refers into the table, so cells classified alike share one Biome.
func (t BiomeTable) Lookup(moisture, heat int) *Biome {
	return &t[moisture][heat]
}

// Names lists every distinct biome name in table order.
func (t BiomeTable) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, row := range t {
		for _, b := range row {
			if !seen[b.Name] {
				seen[b.Name] = true
				names = append(names, b.Name)
			}
		}
	}
	return names
}
