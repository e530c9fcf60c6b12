package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// deaccent strips combining marks so "Café" folds to "Cafe"
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives the canonical URL slug for a name: lowercase ASCII
// letters and digits, runs of whitespace/hyphens/underscores collapsed
// to a single hyphen, everything else dropped. The derivation is
// deterministic, so two records with the same name always collide on
// slug uniqueness rather than silently diverging.
func Slugify(name string) string {
	folded, _, err := transform.String(deaccent, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '-' || r == '_':
			pendingHyphen = true
		}
	}
	return b.String()
}
