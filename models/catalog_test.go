package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLowStock(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		threshold int
		want      bool
	}{
		{"well below", 5, 10, true},
		{"just below", 9, 10, true},
		{"at threshold", 10, 10, false},
		{"above", 15, 10, false},
		{"zero stock", 0, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLowStock(tt.stock, tt.threshold))
		})
	}
}

func TestStatusForStock(t *testing.T) {
	assert.Equal(t, StatusInStock, StatusForStock(1))
	assert.Equal(t, StatusOutOfStock, StatusForStock(0))
}
