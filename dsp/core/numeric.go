package core

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// PowerRatioDB converts an energy ratio to dB (10*log10 convention).
// Zero, negative and NaN ratios map to floorDB.
func PowerRatioDB(ratio, floorDB float64) float64 {
	if !(ratio > 0) {
		return floorDB
	}

	return 10 * math.Log10(ratio)
}
