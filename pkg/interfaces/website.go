package interfaces

import (
	"context"

	"github.com/goliatone/go-microsite/website"
)

// Profile carries the couple details a content generator seeds a site from.
type Profile struct {
	PartnerOne        string `json:"partnerOne"`
	PartnerTwo        string `json:"partnerTwo"`
	WeddingDate       string `json:"weddingDate,omitempty"`
	CeremonyTime      string `json:"ceremonyTime,omitempty"`
	CeremonyVenue     string `json:"ceremonyVenue,omitempty"`
	CeremonyAddress   string `json:"ceremonyAddress,omitempty"`
	ReceptionTime     string `json:"receptionTime,omitempty"`
	ReceptionVenue    string `json:"receptionVenue,omitempty"`
	ReceptionAddress  string `json:"receptionAddress,omitempty"`
	Story             string `json:"story,omitempty"`
	WeddingStyle      string `json:"weddingStyle,omitempty"`
	ContactEmail      string `json:"contactEmail,omitempty"`
	GiftAccountDetail string `json:"giftAccount,omitempty"`
}

// ContentGenerator produces a complete website document from a profile.
// Failures are recovered by the caller.
type ContentGenerator interface {
	Generate(ctx context.Context, profile Profile) (website.Document, error)
}

// PublishResponse is returned by the publish endpoint once a page is live.
type PublishResponse struct {
	Slug string `json:"slug"`
	URL  string `json:"url"`
}

// PublishEndpoint makes a document publicly reachable.
type PublishEndpoint interface {
	Publish(ctx context.Context, ownerID, weddingID string, doc website.Document) (PublishResponse, error)
}

// DocumentStore persists the draft document of a wedding.
type DocumentStore interface {
	Save(ctx context.Context, ownerID, weddingID string, doc website.Document) error
	Load(ctx context.Context, ownerID, weddingID string) (website.Document, error)
}

// Clipboard receives copied text, typically the public URL.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// ShareData is the payload handed to a native share sheet.
type ShareData struct {
	Title string
	Text  string
	URL   string
}

// NativeSharer is an optional host capability for system share sheets.
type NativeSharer interface {
	CanShare() bool
	Share(ctx context.Context, data ShareData) error
}
