package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsSelectable(t *testing.T) {
	today := time.Date(2026, time.March, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		candidate time.Time
		want      bool
	}{
		{"yesterday", today.AddDate(0, 0, -1), false},
		{"last month", today.AddDate(0, -1, 0), false},
		{"today midnight", time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), true},
		{"today later", time.Date(2026, time.March, 15, 23, 59, 0, 0, time.UTC), true},
		{"tomorrow", today.AddDate(0, 0, 1), true},
		{"next year", today.AddDate(1, 0, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSelectable(tt.candidate, today))
		})
	}
}

func TestIsSelectableIgnoresTimeOfDay(t *testing.T) {
	// Candidate earlier in the day than "now" is still today, so selectable.
	today := time.Date(2026, time.March, 15, 18, 0, 0, 0, time.UTC)
	candidate := time.Date(2026, time.March, 15, 6, 0, 0, 0, time.UTC)
	assert.True(t, IsSelectable(candidate, today))
}
