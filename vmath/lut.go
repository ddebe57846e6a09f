package vmath

import (
	"math"
)

func init() {
	// sRGB decode LUT, one entry per 8-bit channel value
	for i := 0; i < 256; i++ {
		LinearLUT[i] = srgbDecode(float64(i) / 255.0)
	}
}

// LinearLUT maps an 8-bit sRGB channel to linear light in [0,1]
var LinearLUT [256]float64

// srgbDecode applies the IEC 61966-2-1 transfer function inverse
func srgbDecode(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// Linearize returns linear light for an 8-bit sRGB channel
func Linearize(c uint8) float64 {
	return LinearLUT[c]
}

// Delinearize encodes linear light back to gamma-encoded [0,1]
// Inputs are clamped first
func Delinearize(l float64) float64 {
	if l >= 1 {
		return 1
	}
	if l <= 0.0031308 {
		if l < 0 {
			return 0
		}
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1/2.4) - 0.055
}
