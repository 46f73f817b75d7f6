package websitecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/website"
)

const (
	generateMessageType = "microsite.website.generate"
	saveMessageType     = "microsite.website.save"
	publishMessageType  = "microsite.website.publish"
)

// GenerateWebsiteCommand seeds a draft for a wedding from the couple profile.
type GenerateWebsiteCommand struct {
	OwnerID   string             `json:"owner_id"`
	WeddingID string             `json:"wedding_id"`
	Profile   interfaces.Profile `json:"profile"`
	// Overwrite replaces an existing draft. Without it an existing draft is kept.
	Overwrite bool `json:"overwrite,omitempty"`
}

// Type implements command.Message.
func (GenerateWebsiteCommand) Type() string { return generateMessageType }

// Validate ensures the wedding is addressable.
func (cmd GenerateWebsiteCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.OwnerID, validation.Required, validation.By(notBlank("owner_id"))),
		validation.Field(&cmd.WeddingID, validation.Required, validation.By(notBlank("wedding_id"))),
	)
}

// SaveWebsiteCommand persists the current draft. Invalid documents are
// rejected before reaching the store.
type SaveWebsiteCommand struct {
	OwnerID   string           `json:"owner_id"`
	WeddingID string           `json:"wedding_id"`
	Document  website.Document `json:"document"`
}

// Type implements command.Message.
func (SaveWebsiteCommand) Type() string { return saveMessageType }

// Validate runs the document invariants alongside the key checks.
func (cmd SaveWebsiteCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.OwnerID, validation.Required, validation.By(notBlank("owner_id"))),
		validation.Field(&cmd.WeddingID, validation.Required, validation.By(notBlank("wedding_id"))),
		validation.Field(&cmd.Document, validation.By(validDocument)),
	)
}

// PublishWebsiteCommand publishes a wedding's website. A nil Document
// publishes the stored draft.
type PublishWebsiteCommand struct {
	OwnerID   string            `json:"owner_id"`
	WeddingID string            `json:"wedding_id"`
	Document  *website.Document `json:"document,omitempty"`
}

// Type implements command.Message.
func (PublishWebsiteCommand) Type() string { return publishMessageType }

// Validate checks keys and, when supplied, the document.
func (cmd PublishWebsiteCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.OwnerID, validation.Required, validation.By(notBlank("owner_id"))),
		validation.Field(&cmd.WeddingID, validation.Required, validation.By(notBlank("wedding_id"))),
		validation.Field(&cmd.Document, validation.When(cmd.Document != nil, validation.By(validDocument))),
	)
}

func notBlank(field string) validation.RuleFunc {
	return func(value any) error {
		if str, ok := value.(string); ok && strings.TrimSpace(str) == "" {
			return validation.NewError("microsite.website."+field+"_required", field+" is required")
		}
		return nil
	}
}

func validDocument(value any) error {
	var doc website.Document
	switch typed := value.(type) {
	case website.Document:
		doc = typed
	case *website.Document:
		if typed == nil {
			return nil
		}
		doc = *typed
	default:
		return nil
	}
	result := website.Validate(doc)
	if result.Valid {
		return nil
	}
	return validation.NewError("microsite.website.document_invalid", strings.Join(result.Errors, "; "))
}
