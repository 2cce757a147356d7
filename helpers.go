package cms

import "strings"

// Slugify converts a title to a URL-safe slug: lower-cased, runs of
// non-alphanumeric characters collapsed to a single hyphen, edge hyphens
// trimmed. An empty result falls back to "post" so a slug always exists.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if out == "" {
		return "post"
	}
	return out
}
