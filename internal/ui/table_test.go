package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func lipglossRender(s string) string {
	return lipgloss.NewStyle().Foreground(ColorError).Render(s)
}

func TestNewTable(t *testing.T) {
	columns := []TableColumn{
		{Title: "Host", Width: 20},
		{Title: "Groups", Width: 10},
	}
	rows := []table.Row{
		{"web1", "web"},
		{"db1", "db"},
	}

	view := NewTable(columns, rows).View()
	assert.Contains(t, view, "Host")
	assert.Contains(t, view, "Groups")
	assert.Contains(t, view, "web1")
	assert.Contains(t, view, "db1")
}

func TestRenderSimpleTable(t *testing.T) {
	DisableColors()

	columns := []TableColumn{
		{Title: "Host"},
		{Title: "User", Width: 12},
	}
	rows := [][]string{
		{"a-rather-long-hostname.example.com", "deploy"},
		{"db1", "root"},
	}

	out := RenderSimpleTable(columns, rows)
	assert.Contains(t, out, "a-rather-long-hostname.example.com", "auto-sized column isn't truncated")
	assert.Contains(t, out, "deploy")
	assert.Contains(t, out, "root")

	assert.Empty(t, RenderSimpleTable(columns, nil))
}
