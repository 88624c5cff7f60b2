package session

import "strings"

// ParseTechInput splits a free-form technology field on commas, semicolons
// and newlines, dropping blanks.
func ParseTechInput(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	items := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}
