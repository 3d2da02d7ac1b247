package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSeason(t *testing.T) {
	tests := []struct {
		name     string
		seasonID int
		expected string
	}{
		{"standard season", 20232024, "23/24"},
		{"lockout style gap", 20192020, "19/20"},
		{"century boundary digits", 19992000, "99/00"},
		{"non 8 digit passthrough", 2023, "2023"},
		{"zero passthrough", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatSeason(tt.seasonID))
		})
	}
}

func TestTimeOnIceDisplay(t *testing.T) {
	tests := []struct {
		name     string
		seconds  float64
		expected string
	}{
		{"typical shift load", 1337, "22:17"},
		{"zero padded seconds", 1205, "20:05"},
		{"exact minute", 1200, "20:00"},
		{"zero", 0, "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := PlayerStats{TimeOnIcePerGame: tt.seconds}
			assert.Equal(t, tt.expected, stats.TimeOnIceDisplay())
		})
	}
}

func TestShootingPercentDisplay(t *testing.T) {
	assert.Equal(t, "18.18", PlayerStats{ShootingPercent: 0.1818}.ShootingPercentDisplay())
	assert.Equal(t, "0.00", PlayerStats{}.ShootingPercentDisplay())
	assert.Equal(t, "10.00", PlayerStats{ShootingPercent: 0.1}.ShootingPercentDisplay())
}

func TestIsDefense(t *testing.T) {
	assert.True(t, Player{Position: "D"}.IsDefense())
	assert.False(t, Player{Position: "C"}.IsDefense())
	assert.False(t, Player{Position: "L"}.IsDefense())
}
