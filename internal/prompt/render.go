package prompt

import "strings"

const (
	// TableToken is replaced with the rendered table text.
	TableToken = "{table}"

	// CustomToken is replaced with user supplied text in freeform templates.
	CustomToken = "{custom}"
)

// Render replaces every literal occurrence of token in body with text.
// Matches are non-overlapping and scanned left to right; the inserted text is
// never re-scanned. An empty token leaves body untouched.
func Render(body, text, token string) string {
	if token == "" {
		return body
	}
	return strings.ReplaceAll(body, token, text)
}
