package util

import "math"

// Round rounds to the given number of decimal places.
func Round(value float64, places int) float64 {
	mult := math.Pow(10, float64(places))
	return math.Round(value*mult) / mult
}

// PercentChange returns (current-base)/base*100. ok is false when base is 0.
func PercentChange(current, base float64) (pct float64, ok bool) {
	if base == 0 {
		return 0, false
	}
	return (current - base) / base * 100, true
}

// Float returns a pointer to v, for optional JSON numbers.
func Float(v float64) *float64 { return &v }
