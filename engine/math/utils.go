package math

import "golang.org/x/exp/constraints"

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// WrapDegrees folds an angle into [0, 360).
func WrapDegrees[T constraints.Float](angle T) T {
	for angle >= 360 {
		angle -= 360
	}
	for angle < 0 {
		angle += 360
	}
	return angle
}
