package usecase

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		want  float64
	}{
		{name: "whole price", price: 100, want: 108.00},
		{name: "fractional price", price: 99.99, want: 107.99},
		{name: "small price", price: 0.01, want: 0.01},
		{name: "rounding up", price: 33.33, want: 36.00},
		{name: "large price", price: 25000, want: 27000.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeTotal(tt.price)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestComputeTotalRejectsInvalidPrices(t *testing.T) {
	tests := []struct {
		name  string
		price float64
	}{
		{name: "zero", price: 0},
		{name: "negative", price: -10},
		{name: "NaN", price: math.NaN()},
		{name: "positive infinity", price: math.Inf(1)},
		{name: "negative infinity", price: math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeTotal(tt.price)
			assert.ErrorIs(t, err, ErrInvalidPrice)
		})
	}
}
