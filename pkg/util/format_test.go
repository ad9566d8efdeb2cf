package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatIDR(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{name: "Zero", amount: 0, want: "Rp0"},
		{name: "Under a thousand", amount: 950, want: "Rp950"},
		{name: "Typical product price", amount: 15000, want: "Rp15.000"},
		{name: "Cart total", amount: 48000, want: "Rp48.000"},
		{name: "Millions", amount: 1250000, want: "Rp1.250.000"},
		{name: "Negative adjustment", amount: -15000, want: "-Rp15.000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatIDR(tt.amount))
		})
	}
}

func TestClampQuantity(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		min  int
		max  int
		want int
	}{
		{name: "Within range", raw: "5", min: 1, max: 10, want: 5},
		{name: "Below minimum", raw: "0", min: 1, max: 10, want: 1},
		{name: "Above maximum", raw: "99", min: 1, max: 10, want: 10},
		{name: "Garbage input falls back to min", raw: "abc", min: 1, max: 10, want: 1},
		{name: "Empty input falls back to min", raw: "", min: 1, max: 10, want: 1},
		{name: "Exactly max", raw: "10", min: 1, max: 10, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampQuantity(tt.raw, tt.min, tt.max))
		})
	}
}

func TestFormatEpoch(t *testing.T) {
	assert.Equal(t, "", FormatEpoch(0))
	assert.NotEmpty(t, FormatEpoch(1698392482))
}

func TestGenerateInvoiceNumber(t *testing.T) {
	now := time.Date(2023, 10, 27, 12, 0, 0, 0, time.UTC)

	inv := GenerateInvoiceNumber(now)
	assert.Contains(t, inv, "INV-20231027-")
	assert.Len(t, inv, len("INV-20231027-")+8)

	// Suffixes are random per call
	assert.NotEqual(t, inv, GenerateInvoiceNumber(now))
}
