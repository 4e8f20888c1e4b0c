// Package noise produces the scalar fields that drive tile generation: layered
// octave noise for height, heat and moisture, and a latitude-like gradient.
package noise

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// ErrInvalidConfiguration is returned when noise parameters cannot produce a
// well-defined grid.
var ErrInvalidConfiguration = errors.New("invalid noise configuration")

// Wave is one octave of a noise channel.
type Wave struct {
	Seed      float64
	Frequency float64
	Amplitude float64
}

// Grid is a dense depth x width field of samples stored row-major, with row
// index z and column index x.
type Grid struct {
	Depth, Width int
	Values       []float64
}

// NewGrid allocates a zeroed grid.
func NewGrid(depth, width int) *Grid {
	return &Grid{Depth: depth, Width: width, Values: make([]float64, depth*width)}
}

// Index returns the slice index of cell (z, x).
func (g *Grid) Index(z, x int) int { return z*g.Width + x }

// At returns the value of cell (z, x).
func (g *Grid) At(z, x int) float64 { return g.Values[z*g.Width+x] }

// Set stores v in cell (z, x).
func (g *Grid) Set(z, x int, v float64) { g.Values[z*g.Width+x] = v }

// Range returns the smallest and largest value in the grid.
func (g *Grid) Range() (lo, hi float64) {
	if len(g.Values) == 0 {
		return 0, 0
	}
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range g.Values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// ValidateWaves checks that a wave set can be used as a normalised octave
// stack.
func ValidateWaves(waves []Wave) error {
	if len(waves) == 0 {
		return fmt.Errorf("%w: empty wave set", ErrInvalidConfiguration)
	}
	var sum float64
	for i, w := range waves {
		if w.Amplitude < 0 || math.IsNaN(w.Amplitude) || math.IsInf(w.Amplitude, 0) {
			return fmt.Errorf("%w: wave %d has amplitude %v", ErrInvalidConfiguration, i, w.Amplitude)
		}
		sum += w.Amplitude
	}
	if sum <= 0 {
		return fmt.Errorf("%w: wave amplitudes sum to %v", ErrInvalidConfiguration, sum)
	}
	return nil
}

// GenerateWaveNoise samples s over a depth x width grid. Each cell (z, x) is
// the amplitude-weighted mean of the waves evaluated at
// ((x+offsetX)/scale, (z+offsetZ)/scale), scaled by the wave frequency and
// shifted by the wave seed. Output lies in [0,1].
func GenerateWaveNoise(s Sampler, depth, width int, scale, offsetX, offsetZ float64, waves []Wave) (*Grid, error) {
	if depth <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: grid size %dx%d", ErrInvalidConfiguration, depth, width)
	}
	if scale <= 0 || math.IsNaN(scale) {
		return nil, fmt.Errorf("%w: scale must be positive, got %v", ErrInvalidConfiguration, scale)
	}
	if err := ValidateWaves(waves); err != nil {
		return nil, err
	}
	var norm float64
	for _, w := range waves {
		norm += w.Amplitude
	}

	g := NewGrid(depth, width)
	for z := 0; z < depth; z++ {
		sampleZ := (float64(z) + offsetZ) / scale
		for x := 0; x < width; x++ {
			sampleX := (float64(x) + offsetX) / scale

			var sum float64
			for _, w := range waves {
				sum += w.Amplitude * s.Sample(sampleX*w.Frequency+w.Seed, sampleZ*w.Frequency+w.Seed)
			}
			g.Values[z*width+x] = sum / norm
		}
	}
	return g, nil
}

// GenerateGradientNoise produces a latitude-like field: every row holds the
// distance of (z+offsetZ) from centerZ divided by maxDistanceZ. Rows are
// written bottom-up, so sample z lands in row depth-1-z. Values are not
// clamped.
func GenerateGradientNoise(depth, width int, centerZ, maxDistanceZ, offsetZ float64) (*Grid, error) {
	if depth <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: grid size %dx%d", ErrInvalidConfiguration, depth, width)
	}
	if maxDistanceZ <= 0 || math.IsNaN(maxDistanceZ) {
		return nil, fmt.Errorf("%w: max distance must be positive, got %v", ErrInvalidConfiguration, maxDistanceZ)
	}

	g := NewGrid(depth, width)
	for z := 0; z < depth; z++ {
		v := math.Abs(float64(z)+offsetZ-centerZ) / maxDistanceZ
		row := g.Values[(depth-1-z)*width : (depth-z)*width]
		for x := range row {
			row[x] = v
		}
	}
	return g, nil
}

// RandomizeSeeds returns a copy of waves with every seed redrawn from
// [0, span).
func RandomizeSeeds(r *rand.Rand, waves []Wave, span float64) []Wave {
	out := make([]Wave, len(waves))
	for i, w := range waves {
		w.Seed = r.Float64() * span
		out[i] = w
	}
	return out
}
