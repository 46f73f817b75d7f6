package builder

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-microsite/internal/render"
	"github.com/goliatone/go-microsite/internal/reorder"
	"github.com/goliatone/go-microsite/website"
)

// SectionItem is one row of the section list.
type SectionItem struct {
	ID      string              `json:"id"`
	Type    website.SectionType `json:"type"`
	Order   int                 `json:"order"`
	Visible bool                `json:"visible"`
	Label   string              `json:"label"`
}

var sectionLabels = map[website.SectionType]string{
	website.SectionHero:      "Cover",
	website.SectionStory:     "Our story",
	website.SectionEventInfo: "Event details",
	website.SectionGallery:   "Gallery",
	website.SectionRSVP:      "RSVP",
	website.SectionMap:       "Map",
	website.SectionTimeline:  "Timeline",
	website.SectionGiftList:  "Gift list",
}

// SectionListPanel lists sections in display order and toggles or reorders
// them.
type SectionListPanel struct {
	shell *Shell
}

// Items returns every section, hidden ones included, in display order.
func (p *SectionListPanel) Items() []SectionItem {
	sections := p.shell.Document().SortedSections()
	items := make([]SectionItem, len(sections))
	for idx, section := range sections {
		label, ok := sectionLabels[section.Type.Normalize()]
		if !ok {
			label = string(section.Type)
		}
		items[idx] = SectionItem{
			ID:      section.ID,
			Type:    section.Type,
			Order:   section.Order,
			Visible: section.Visible,
			Label:   label,
		}
	}
	return items
}

// ToggleVisibility flips the visible flag through the mutation funnel.
func (p *SectionListPanel) ToggleVisibility(sectionID string) error {
	_, err := p.shell.Update(func(doc website.Document) (website.Document, bool, error) {
		next, err := render.ToggleVisibility(doc, sectionID, p.shell.now())
		if err != nil {
			if errors.Is(err, render.ErrSectionNotFound) {
				return doc, false, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
			}
			return doc, false, err
		}
		return next, true, nil
	})
	return err
}

// Reorder applies a completed drag. It reports whether anything moved.
func (p *SectionListPanel) Reorder(event reorder.DragEvent) bool {
	moved := false
	p.shell.Update(func(doc website.Document) (website.Document, bool, error) {
		next, ok := reorder.Apply(doc, event)
		if ok {
			next.Meta.UpdatedAt = p.shell.now().UTC()
		}
		moved = ok
		return next, ok, nil
	})
	return moved
}
