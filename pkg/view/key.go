package view

import "strings"

// NormalizeKey derives a lookup key from a display name: lowercase, with
// spaces replaced by underscores. Other punctuation is kept as is.
//
//	"Pain Elemental"  -> "pain_elemental"
//	"Arch-Vile Prime" -> "arch-vile_prime"
func NormalizeKey(displayName string) string {
	return strings.ReplaceAll(strings.ToLower(displayName), " ", "_")
}
