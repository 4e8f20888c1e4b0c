package world

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/brentp/intintmap"
)

var (
	// ErrNoPathToWater is returned when a river reaches a cell whose every
	// in-bounds neighbour has already been visited.
	ErrNoPathToWater = errors.New("river has no path to water")
	// ErrPlacementExhausted is returned when a bounded search for a river
	// origin or settlement spawn runs out of attempts.
	ErrPlacementExhausted = errors.New("placement attempts exhausted")
)

// DefaultRiverColor is the colour rivers are painted with when none is set.
var DefaultRiverColor = color.RGBA{R: 30, G: 120, B: 220, A: 255}

// Rivers configures river carving.
type Rivers struct {
	// Count is the number of rivers requested.
	Count int
	// HeightThreshold is the minimum height noise value of a river source.
	HeightThreshold float64
	Color           color.RGBA
	// MaxOriginAttempts caps the random search for each river source.
	MaxOriginAttempts int
}

func (r Rivers) withDefaults() Rivers {
	if r.MaxOriginAttempts <= 0 {
		r.MaxOriginAttempts = 1000
	}
	if r.Color == (color.RGBA{}) {
		r.Color = DefaultRiverColor
	}
	return r
}

func (r Rivers) validate() error {
	if r.Count < 0 {
		return fmt.Errorf("%w: river count %d is negative", ErrInvalidConfiguration, r.Count)
	}
	if math.IsNaN(r.HeightThreshold) {
		return fmt.Errorf("%w: river height threshold is NaN", ErrInvalidConfiguration)
	}
	return nil
}

// River is one completed river. Path runs from Origin downhill and ends on
// the first water cell reached; no cell appears twice.
type River struct {
	Origin Coord
	Path   []Coord
}

// Length returns the number of land cells the river covers.
func (r River) Length() int { return len(r.Path) - 1 }

// CarveRivers carves up to cfg.Count rivers into m. Each river is
// independent: a failed search or a dead end is recorded in the returned
// errors and the remaining rivers still run. Only completed rivers are
// painted, excluding their terminal water cell.
func CarveRivers(m *Map, cfg Rivers, r *rand.Rand, log *slog.Logger) ([]River, []error) {
	if cfg.Count <= 0 {
		return nil, nil
	}
	cfg = cfg.withDefaults()
	if log == nil {
		log = slog.Default()
	}

	var (
		rivers []River
		errs   []error
	)
	for n := 0; n < cfg.Count; n++ {
		origin, err := findRiverOrigin(m, cfg, r)
		if err != nil {
			err = fmt.Errorf("river %d: %w", n, err)
			log.Warn("Skipping river.", "river", n, "error", err)
			errs = append(errs, err)
			continue
		}
		path, err := flow(m, origin)
		if err != nil {
			err = fmt.Errorf("river %d: %w", n, err)
			log.Warn("Skipping river.", "river", n, "origin", origin, "error", err)
			errs = append(errs, err)
			continue
		}
		// Path cells all lie inside the map.
		for _, c := range path[:len(path)-1] {
			_ = m.PaintRiver(c, cfg.Color)
		}
		rivers = append(rivers, River{Origin: origin, Path: path})
		log.Debug("Carved river.", "river", n, "origin", origin, "length", len(path)-1)
	}
	return rivers, errs
}

// findRiverOrigin samples random cells until one is at least as high as the
// configured threshold.
func findRiverOrigin(m *Map, cfg Rivers, r *rand.Rand) (Coord, error) {
	depth, width := m.space.Depth(), m.space.Width()
	for attempt := 0; attempt < cfg.MaxOriginAttempts; attempt++ {
		c := Coord{Z: r.IntN(depth), X: r.IntN(width)}
		if h, _ := m.Height(c); h >= cfg.HeightThreshold {
			return c, nil
		}
	}
	return Coord{}, fmt.Errorf("%w: no source at height >= %v after %d attempts",
		ErrPlacementExhausted, cfg.HeightThreshold, cfg.MaxOriginAttempts)
}

// flow follows the strictly lowest unvisited neighbour from origin until it
// reaches water. Ties go to the first neighbour in Neighbors order.
func flow(m *Map, origin Coord) ([]Coord, error) {
	s := m.space
	visited := intintmap.New(64, 0.6)
	neighbours := make([]Coord, 0, 4)

	cur := origin
	var path []Coord
	for {
		path = append(path, cur)
		if water, _ := m.IsWater(cur); water {
			return path, nil
		}
		visited.Put(int64(s.Index(cur)), 1)

		var (
			next  Coord
			found bool
			best  = math.Inf(1)
		)
		neighbours = s.Neighbors(cur, neighbours[:0])
		for _, n := range neighbours {
			if _, seen := visited.Get(int64(s.Index(n))); seen {
				continue
			}
			if h, _ := m.Height(n); h < best {
				next, best, found = n, h, true
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: stuck at %v after %d cells from %v", ErrNoPathToWater, cur, len(path), origin)
		}
		cur = next
	}
}
