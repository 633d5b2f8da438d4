package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var reSlug = regexp.MustCompile(`^[a-z0-9-]{2,40}$`)

// IsSlug returns true if s matches ^[a-z0-9-]{2,40}$
func IsSlug(s string) bool {
	return reSlug.MatchString(s)
}

// fold strips diacritics so "Alimentação" slugs to "alimentacao".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Slugify converts s to a slug: diacritics folded, lowercase, non [a-z0-9] -> '-', collapse repeats, trim to 40, and trim leading/trailing '-'.
func Slugify(s string) string {
	if s == "" {
		return s
	}
	out := make([]rune, 0, len(s))
	prevDash := false
	for _, r := range strings.ToLower(fold(s)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			out = append(out, r)
			prevDash = false
		} else if !prevDash {
			out = append(out, '-')
			prevDash = true
		}
		if len(out) >= 40 {
			break
		}
	}
	// trim leading/trailing dashes
	return strings.Trim(string(out), "-")
}
