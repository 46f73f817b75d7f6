package generator

import (
	"strings"

	"github.com/goliatone/go-microsite/internal/publish"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/website"
)

// CoupleTitle joins both partner names, or returns the generic title when
// either is missing.
func CoupleTitle(profile interfaces.Profile) string {
	one := strings.TrimSpace(profile.PartnerOne)
	two := strings.TrimSpace(profile.PartnerTwo)
	if one == "" || two == "" {
		return website.DefaultTitle
	}
	return one + " & " + two
}

// DefaultFor builds the static two-section template for a profile. The slug is
// always the generic default so fallback sites never collide with a derived
// slug by accident.
func DefaultFor(profile interfaces.Profile, opts ...website.DefaultOption) website.Document {
	title := CoupleTitle(profile)
	options := append([]website.DefaultOption{
		website.WithTitle(title),
		website.WithSlug(website.DefaultSlug),
	}, opts...)
	doc := website.NewDefault(options...)

	for idx := range doc.Sections {
		section := &doc.Sections[idx]
		switch section.Type {
		case website.SectionHero:
			if date := strings.TrimSpace(profile.WeddingDate); date != "" {
				section.Data["date"] = date
			}
		case website.SectionStory:
			if story := strings.TrimSpace(profile.Story); story != "" {
				section.Data["body"] = story
			}
		}
	}
	return doc
}

// SuggestedSlug is the slug a profile would publish under.
func SuggestedSlug(profile interfaces.Profile) string {
	return publish.Slugify(CoupleTitle(profile))
}
