package validation

import (
	"strings"
	"unicode/utf8"
)

// MaxInputLength is the truncation limit applied by SanitizeInput, in bytes.
const MaxInputLength = 10000

// SanitizeInput strips angle brackets and truncates to at most
// MaxInputLength bytes, cutting on a rune boundary so a multi-byte
// character is never split. This is a crude allow-most sanitizer, not an
// HTML parser; it is intentionally permissive and only removes the
// characters that could open a tag.
func SanitizeInput(value string) string {
	cleaned := strings.NewReplacer("<", "", ">", "").Replace(value)

	if len(cleaned) > MaxInputLength {
		cut := MaxInputLength
		for cut > 0 && !utf8.RuneStart(cleaned[cut]) {
			cut--
		}
		cleaned = cleaned[:cut]
	}

	return cleaned
}

// PrepareFormData trims string values and drops entries that are nil or
// empty after trimming, so optional fields the user left blank never reach
// the persistence layer.
func PrepareFormData(data map[string]interface{}) map[string]interface{} {
	prepared := make(map[string]interface{}, len(data))

	for key, value := range data {
		if value == nil {
			continue
		}

		if s, ok := value.(string); ok {
			trimmed := strings.TrimSpace(s)
			if trimmed == "" {
				continue
			}
			prepared[key] = trimmed
			continue
		}

		prepared[key] = value
	}

	return prepared
}
