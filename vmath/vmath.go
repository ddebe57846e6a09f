package vmath

import (
	"math"
)

// --- Scalars ---

func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func Clamp01(x float64) float64 { return Clamp(x, 0, 1) }

func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// ToByte rounds half-up to the nearest 0-255 integer, saturating outside the range
func ToByte(x float64) uint8 {
	if math.IsNaN(x) || x <= 0 {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(math.Floor(x + 0.5))
}

// UnitToByte maps [0,1] to 0-255 with ToByte rounding
func UnitToByte(x float64) uint8 {
	return ToByte(Clamp01(x) * 255)
}

// WrapDegrees folds an angle into [0, 360)
func WrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -0 and float error at the boundary
	if deg >= 360 || deg == 0 {
		return 0
	}
	return deg
}

// Min3 and Max3 avoid variadic allocation on channel triples
func Min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func Max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }
