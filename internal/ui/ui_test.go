package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestColorValues(t *testing.T) {
	tests := []struct {
		name     string
		color    lipgloss.Color
		expected string
	}{
		{"ColorSuccess is green", ColorSuccess, "2"},
		{"ColorError is red", ColorError, "1"},
		{"ColorWarning is yellow", ColorWarning, "3"},
		{"ColorInfo is cyan", ColorInfo, "6"},
		{"ColorPrimary is default", ColorPrimary, "7"},
		{"ColorSecondary is blue", ColorSecondary, "4"},
		{"ColorMuted is gray", ColorMuted, "8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.color))
		})
	}
}

func TestColorsAreUnique(t *testing.T) {
	semanticColors := []lipgloss.Color{
		ColorSuccess,
		ColorError,
		ColorWarning,
		ColorInfo,
	}

	seen := make(map[string]bool)
	for _, c := range semanticColors {
		colorStr := string(c)
		assert.False(t, seen[colorStr], "semantic colors should be unique, found duplicate: %s", colorStr)
		seen[colorStr] = true
	}
}

func TestSymbolsAreUnique(t *testing.T) {
	symbols := []string{
		SymbolSuccess,
		SymbolFail,
		SymbolComplete,
		SymbolSkipped,
		SymbolArrow,
	}

	seen := make(map[string]bool)
	for _, s := range symbols {
		assert.False(t, seen[s], "symbols should be unique, found duplicate: %s", s)
		seen[s] = true
	}
}
