// Package format renders metric values for display. Large magnitudes are
// abbreviated so KPI cards stay readable regardless of the active filters.
package format

import (
	"fmt"
	"math"
	"strconv"
)

// Currency formats a monetary value in pounds sterling. Millions are shown
// with one decimal, thousands rounded to a whole number of K. Rounding is
// half away from zero, so 2500 renders as "£3K".
func Currency(value float64) string {
	switch {
	case value >= 1_000_000:
		return fmt.Sprintf("£%.1fM", value/1_000_000)
	case value >= 1_000:
		return fmt.Sprintf("£%.0fK", math.Round(value/1_000))
	default:
		return fmt.Sprintf("£%.0f", math.Round(value))
	}
}

// Count formats a cardinality for display. Values of a thousand or more are
// abbreviated to K; smaller ones get thousands separators.
func Count(value int) string {
	if value >= 1_000 {
		return fmt.Sprintf("%.0fK", math.Round(float64(value)/1_000))
	}
	return group(value)
}

// group inserts comma separators into a non-negative integer.
func group(value int) string {
	s := strconv.Itoa(value)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
