package terrain

import (
	"fmt"
	"math"
)

// Curve maps an input in roughly [0,1] to a response value. Curves shape
// elevation, the altitude heat penalty and the altitude dryness penalty.
type Curve interface {
	Evaluate(t float64) float64
}

// CurveFunc adapts a plain function to a Curve.
type CurveFunc func(t float64) float64

// Evaluate implements Curve.
func (f CurveFunc) Evaluate(t float64) float64 { return f(t) }

// Identity returns its input unchanged.
var Identity Curve = CurveFunc(func(t float64) float64 { return t })

// Keyframe is one control point of a Keyframes curve.
type Keyframe struct {
	In, Out float64
}

// Keyframes is a piecewise-linear curve through control points sorted by In.
// Inputs outside the first and last key are clamped to the end values.
type Keyframes []Keyframe

// Validate checks the curve has at least one key and strictly ascending
// inputs.
func (k Keyframes) Validate() error {
	if len(k) == 0 {
		return fmt.Errorf("%w: curve has no keyframes", ErrInvalidConfiguration)
	}
	for i, key := range k {
		if math.IsNaN(key.In) || math.IsNaN(key.Out) {
			return fmt.Errorf("%w: keyframe %d is NaN", ErrInvalidConfiguration, i)
		}
		if i > 0 && key.In <= k[i-1].In {
			return fmt.Errorf("%w: keyframe %d input %v not after %v", ErrInvalidConfiguration, i, key.In, k[i-1].In)
		}
	}
	return nil
}

// Evaluate implements Curve.
func (k Keyframes) Evaluate(t float64) float64 {
	switch {
	case len(k) == 0:
		return 0
	case t <= k[0].In:
		return k[0].Out
	case t >= k[len(k)-1].In:
		return k[len(k)-1].Out
	}
	for i := 1; i < len(k); i++ {
		if t <= k[i].In {
			a, b := k[i-1], k[i]
			return a.Out + (t-a.In)/(b.In-a.In)*(b.Out-a.Out)
		}
	}
	return k[len(k)-1].Out
}
