package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoints(t *testing.T) {
	tests := []struct {
		tier float64
		want int
	}{
		{10, 1}, {7, 1}, {5, 1},
		{4, 2}, {3, 2},
		{2.5, 3}, {2, 3},
		{1.5, 5},
		{1, 8},
		{99, 1}, {0, 1}, {4.5, 1}, {11, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Points(tt.tier), "tier %v", tt.tier)
	}
}

func TestPercentage(t *testing.T) {
	assert.InDelta(t, 70.0, Percentage(7, 10), 1e-9)
	assert.InDelta(t, 100.0, Percentage(2, 2), 1e-9)
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 0.0, Percentage(3, 0))
}
