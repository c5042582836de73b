package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{1_500_000, "£1.5M"},
		{1_000_000, "£1.0M"},
		{2_500, "£3K"},   // half rounds away from zero
		{2_499, "£2K"},
		{45_000, "£45K"},
		{1_000, "£1K"},
		{999, "£999"},
		{123.4, "£123"},
		{0.6, "£1"},
		{0, "£0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Currency(tt.value))
		})
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{2_500_000, "2500K"},
		{18_500, "19K"},
		{1_000, "1K"},
		{999, "999"},
		{1234, "1K"},
		{532, "532"},
		{0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Count(tt.value))
		})
	}
}

func TestCount_GroupsSmallValues(t *testing.T) {
	// Grouping only applies below the K threshold; exercise it directly.
	assert.Equal(t, "100", group(100))
	assert.Equal(t, "1,234", group(1234))
	assert.Equal(t, "1,234,567", group(1234567))
}
