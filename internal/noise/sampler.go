package noise

import (
	"fmt"
	"math"
	"strings"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Sampler evaluates a smooth, deterministic 2D noise function. Every
// implementation returns values in [0,1] and yields identical output for
// identical input.
type Sampler interface {
	Sample(x, z float64) float64
}

// Kind names a Sampler implementation.
type Kind string

const (
	KindValue   Kind = "value"
	KindPerlin  Kind = "perlin"
	KindSimplex Kind = "simplex"
)

// ParseKind resolves a sampler name. An empty name selects value noise.
func ParseKind(name string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(name))) {
	case "", KindValue:
		return KindValue, nil
	case KindPerlin:
		return KindPerlin, nil
	case KindSimplex, "opensimplex":
		return KindSimplex, nil
	}
	return "", fmt.Errorf("%w: unknown noise kind %q", ErrInvalidConfiguration, name)
}

// New returns the Sampler of the given kind seeded with seed.
func New(kind Kind, seed int64) (Sampler, error) {
	switch kind {
	case KindValue, "":
		return NewValue(seed), nil
	case KindPerlin:
		return NewPerlin(seed), nil
	case KindSimplex:
		return NewSimplex(seed), nil
	}
	return nil, fmt.Errorf("%w: unknown noise kind %q", ErrInvalidConfiguration, kind)
}

// Value is hashed-lattice value noise with quintic interpolation.
type Value struct {
	seed int64
}

// NewValue creates value noise for the seed passed.
func NewValue(seed int64) *Value {
	return &Value{seed: seed}
}

// Sample implements Sampler.
func (v *Value) Sample(x, z float64) float64 {
	x0 := math.Floor(x)
	z0 := math.Floor(z)

	fx := fade(x - x0)
	fz := fade(z - z0)

	ix, iz := int64(x0), int64(z0)
	v00 := latticeValue(ix, iz, v.seed)
	v10 := latticeValue(ix+1, iz, v.seed)
	v01 := latticeValue(ix, iz+1, v.seed)
	v11 := latticeValue(ix+1, iz+1, v.seed)

	return lerp(lerp(v00, v10, fx), lerp(v01, v11, fx), fz)
}

// fade is the smootherstep curve 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// hash2 is a SplitMix64 style integer hash, stable across runs.
func hash2(x, z, seed int64) uint64 {
	v := uint64(x) + (uint64(z) << 1) + uint64(seed)*0x9E3779B97F4A7C15
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

func latticeValue(x, z, seed int64) float64 {
	return float64(hash2(x, z, seed)&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

// Perlin wraps go-perlin gradient noise, remapped from [-1,1] to [0,1].
type Perlin struct {
	p *perlin.Perlin
}

// NewPerlin creates single-octave Perlin noise. Octaves are layered by the
// Wave set rather than by the generator itself.
func NewPerlin(seed int64) *Perlin {
	return &Perlin{p: perlin.NewPerlin(2, 2, 1, seed)}
}

// Sample implements Sampler.
func (p *Perlin) Sample(x, z float64) float64 {
	return clamp01((p.p.Noise2D(x, z) + 1) * 0.5)
}

// Simplex wraps normalized OpenSimplex noise.
type Simplex struct {
	n opensimplex.Noise
}

// NewSimplex creates OpenSimplex noise for the seed passed.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{n: opensimplex.NewNormalized(seed)}
}

// Sample implements Sampler.
func (s *Simplex) Sample(x, z float64) float64 {
	return clamp01(s.n.Eval2(x, z))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
