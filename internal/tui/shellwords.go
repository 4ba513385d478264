package tui

import (
	"strings"
	"unicode"
)

// splitShellWords splits an $EDITOR value into argv. It understands single
// quotes, double quotes and backslash escapes outside single quotes.
func splitShellWords(s string) []string {
	var (
		out     []string
		word    strings.Builder
		quote   rune
		escaped bool
	)

	for _, r := range s {
		switch {
		case escaped:
			word.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
		case quote == 0 && unicode.IsSpace(r):
			if word.Len() > 0 {
				out = append(out, word.String())
			}
			word.Reset()
		default:
			word.WriteRune(r)
		}
	}
	if word.Len() > 0 {
		out = append(out, word.String())
	}
	return out
}
