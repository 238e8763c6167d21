package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"plain integer", "1234", 1234},
		{"thousands separators", "1,234.5", 1234.5},
		{"quoted", `"8,964"`, 8964},
		{"placeholder dash", "-", 0},
		{"empty", "", 0},
		{"whitespace only", "   ", 0},
		{"negative", "-250", -250},
		{"garbage", "N/A", 0},
		{"mixed garbage", "12a4", 0},
		{"decimal", "0.5", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceFloat(tt.raw))
		})
	}
}
