package utils

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// GenerateScanID creates a human-readable scan ID.
// Format: {operation}-{cardSlug}-{8charHexUUID}
//
// Example:
//   - Input: operation="scan", cardName="Charizard ex (Full Art)"
//   - Output: "scan-charizard-ex-full-art-a3f8e2b1"
func GenerateScanID(operation, cardName string) string {
	slug := slugify(cardName)
	if slug == "" {
		return operation + "-" + generateShortUUID()
	}
	return operation + "-" + slug + "-" + generateShortUUID()
}

// slugify lower-cases a name and collapses every run of non-alphanumeric
// characters into a single hyphen. Slugs are capped at 32 characters.
//   - "Charizard ex (Full Art)" -> "charizard-ex-full-art"
//   - "Pokémon 151" -> "pokémon-151"
//   - "  --  " -> ""
func slugify(name string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	runes := []rune(b.String())
	if len(runes) > 32 {
		return strings.TrimRight(string(runes[:32]), "-")
	}
	return string(runes)
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
