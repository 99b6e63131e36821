package utils

import (
	"strings"
	"unicode"
)

// SanitizeLogMessage strips non-printable runes (newline and tab excepted)
// from request-supplied values before they reach the log.
func SanitizeLogMessage(msg string) string {
	var sb strings.Builder
	for _, r := range msg {
		if r == '\n' || r == '\t' {
			sb.WriteRune(r)
		} else if unicode.IsPrint(r) || unicode.IsGraphic(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// SanitizeLogUsername truncates and sanitizes a login identifier for logs.
func SanitizeLogUsername(username string) string {
	if len(username) > 50 {
		username = username[:50] + "..."
	}
	return SanitizeLogMessage(username)
}
