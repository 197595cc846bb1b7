package billing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreditsForDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		rate     int
		want     int
	}{
		{"missing duration bills one minute", 0, 1, 1},
		{"negative duration bills one minute", -5, 1, 1},
		{"nan duration bills one minute", math.NaN(), 1, 1},
		{"short clip rounds up", 3.2, 1, 1},
		{"exactly one minute", 60, 1, 1},
		{"just over a minute", 60.01, 1, 2},
		{"125 seconds", 125, 1, 3},
		{"rate multiplies", 125, 2, 6},
		{"fallback uses rate", 0, 3, 3},
		{"zero rate floors to one credit", 125, 0, 1},
		{"one hour", 3600, 1, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CreditsForDuration(tt.duration, tt.rate))
		})
	}
}

func TestMinimumCredits(t *testing.T) {
	assert.Equal(t, 1, MinimumCredits(1))
	assert.Equal(t, 5, MinimumCredits(5))
}
