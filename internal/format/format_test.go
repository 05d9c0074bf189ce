package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTime(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{65, "01:05"},
		{0, "00:00"},
		{-5, "00:00"},
		{math.NaN(), "00:00"},
		{59.9, "00:59"},
		{356, "05:56"},
		{3725, "62:05"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Time(tt.in), "Time(%v)", tt.in)
	}
}

func TestViewCount(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{1_500_000, "1.5M"},
		{85_000, "85K"},
		{2_300_000_000, "2.3B"},
		{999, "999"},
		{0, "0"},
		{1_000, "1K"},
		{120_500, "121K"},
		{1_250_000, "1.3M"},
		{750_000, "750K"},
		{1_450_000, "1.4M"},
		{4_350_000, "4.3M"},
		{1_050_000_000, "1.1B"},
		{12_503, "13K"},
		{1_500, "2K"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ViewCount(tt.in), "ViewCount(%d)", tt.in)
	}
}

func TestCount(t *testing.T) {
	assert.Equal(t, "12,503", Count(12_503))
	assert.Equal(t, "999", Count(999))
	assert.Equal(t, "0", Count(0))
	assert.Equal(t, "2,345,678", Count(2_345_678))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "EDJ", Initials("epic drone journeys"))
	assert.Equal(t, "T", Initials("TravelExplorer"))
	assert.Equal(t, "AB", Initials("  ada \t bob  "))
	assert.Equal(t, "", Initials(""))
	assert.Equal(t, "ÉZ", Initials("élodie zola"))
}

func TestChannelGlyph(t *testing.T) {
	assert.Equal(t, "K", ChannelGlyph("kitchenCraft"))
	assert.Equal(t, "", ChannelGlyph(""))
}

func TestRateLabel(t *testing.T) {
	assert.Equal(t, "Normal", RateLabel(1))
	assert.Equal(t, "0.75x", RateLabel(0.75))
	assert.Equal(t, "2x", RateLabel(2))
}
