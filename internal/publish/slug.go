package publish

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength is the default upper bound on derived slugs.
const MaxSlugLength = 50

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the public slug from a title: lower-case, strip diacritics,
// collapse every run of other characters into one hyphen, trim hyphens and
// truncate to MaxSlugLength. Identical titles always yield identical slugs.
func Slugify(title string) string {
	return SlugifyN(title, MaxSlugLength)
}

// SlugifyN is Slugify with an explicit length limit.
func SlugifyN(title string, limit int) string {
	lowered := strings.ToLower(title)
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), lowered)
	if err != nil {
		stripped = lowered
	}
	out := strings.Trim(nonAlphanumeric.ReplaceAllString(stripped, "-"), "-")
	if limit > 0 && len(out) > limit {
		out = strings.TrimRight(out[:limit], "-")
	}
	return out
}
