package terrain

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// ErrInvalidConfiguration is returned when category sets, biome tables or
// curves are malformed.
var ErrInvalidConfiguration = errors.New("invalid terrain configuration")

// Category is a named threshold bucket for one scalar channel.
type Category struct {
	Name      string
	Threshold float64
	Color     color.RGBA
	// Index is the position of the category within its set.
	Index int
}

// CategorySet is ordered ascending by threshold. The last entry is the
// catch-all: it is returned for any value no earlier threshold exceeds,
// even when the value is above its own threshold.
type CategorySet []Category

// NewCategorySet builds a set from categories in ascending order, assigning
// each its Index.
func NewCategorySet(categories ...Category) CategorySet {
	set := make(CategorySet, len(categories))
	for i, c := range categories {
		c.Index = i
		set[i] = c
	}
	return set
}

// Validate reports whether the set is non-empty, sorted by threshold and
// indexed by position.
func (s CategorySet) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: empty category set", ErrInvalidConfiguration)
	}
	for i, c := range s {
		if math.IsNaN(c.Threshold) {
			return fmt.Errorf("%w: category %q has NaN threshold", ErrInvalidConfiguration, c.Name)
		}
		if c.Index != i {
			return fmt.Errorf("%w: category %q has index %d at position %d", ErrInvalidConfiguration, c.Name, c.Index, i)
		}
		if i > 0 && c.Threshold < s[i-1].Threshold {
			return fmt.Errorf("%w: category %q threshold %v below %q threshold %v",
				ErrInvalidConfiguration, c.Name, c.Threshold, s[i-1].Name, s[i-1].Threshold)
		}
	}
	return nil
}

// Classify returns the first category whose threshold is strictly greater
// than value, or the last category if there is none. The set must not be
// empty.
func (s CategorySet) Classify(value float64) Category {
	for _, c := range s {
		if value < c.Threshold {
			return c
		}
	}
	return s[len(s)-1]
}

// Names lists the category names in order.
func (s CategorySet) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}
