// Package slug maps display names to URL-safe identifiers. Slugs are a
// presentation artifact: they are lossy, and two names that slugify to the
// same value are a known, unresolved limitation (lookup behavior between
// them is undefined). Callers needing stable identity carry the real id.
package slug

import "strings"

// ToSlug lowercases name, collapses whitespace runs into single hyphens and
// strips everything outside [a-z0-9-]. Applying it to an already-slugged
// string is a no-op.
func ToSlug(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(lowered))
	lastHyphen := false
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '\t' || r == '\n' || r == '-' || r == '_':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		default:
			// drop punctuation and symbols
		}
	}

	return strings.TrimRight(b.String(), "-")
}
