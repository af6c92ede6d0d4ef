package config

import (
	"strings"

	"github.com/samber/lo"
)

// ParseList splits a comma separated flag value into trimmed, non-empty items.
func ParseList(s string) []string {
	items := lo.Map(strings.Split(s, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	})
	return lo.Compact(items)
}
