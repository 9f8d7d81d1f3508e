package utils

import "strings"

// NormalizePlate strips inner spaces and upper-cases a plate so lookups
// match the stored format (ABC-1234). Dashes are kept.
func NormalizePlate(raw string) string {
	normalized := strings.TrimSpace(raw)
	normalized = strings.ReplaceAll(normalized, " ", "")
	return strings.ToUpper(normalized)
}
