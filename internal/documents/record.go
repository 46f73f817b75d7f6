// Package documents persists website drafts keyed by owner and wedding.
package documents

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-microsite/internal/identity"
	"github.com/goliatone/go-microsite/website"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	// ErrDocumentNotFound is the sentinel every NotFoundError matches.
	ErrDocumentNotFound = errors.New("documents: document not found")
	// ErrOwnerRequired indicates a blank owner id.
	ErrOwnerRequired = errors.New("documents: owner id required")
	// ErrWeddingRequired indicates a blank wedding id.
	ErrWeddingRequired = errors.New("documents: wedding id required")
)

// NotFoundError identifies the missing draft.
type NotFoundError struct {
	OwnerID   string
	WeddingID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("website document for owner %q wedding %q not found", e.OwnerID, e.WeddingID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrDocumentNotFound
}

// Record is the persisted form of a draft.
type Record struct {
	bun.BaseModel `bun:"table:website_documents,alias:wd"`

	ID        uuid.UUID        `bun:",pk,type:uuid" json:"id"`
	Key       string           `bun:"key,notnull,unique" json:"key"`
	OwnerID   string           `bun:"owner_id,notnull" json:"owner_id"`
	WeddingID string           `bun:"wedding_id,notnull" json:"wedding_id"`
	Title     string           `bun:"title" json:"title"`
	Slug      string           `bun:"slug" json:"slug"`
	Document  website.Document `bun:"document,type:jsonb" json:"document"`
	Revision  int              `bun:"revision,notnull,default:0" json:"revision"`
	CreatedAt time.Time        `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time        `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// RecordKey is the stable identifier for an owner/wedding pair.
func RecordKey(ownerID, weddingID string) string {
	return strings.TrimSpace(ownerID) + ":" + strings.TrimSpace(weddingID)
}

// RecordID derives the deterministic primary key for an owner/wedding pair.
func RecordID(ownerID, weddingID string) uuid.UUID {
	return identity.Document(ownerID, weddingID)
}

func checkKeys(ownerID, weddingID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return ErrOwnerRequired
	}
	if strings.TrimSpace(weddingID) == "" {
		return ErrWeddingRequired
	}
	return nil
}

func cloneRecord(record *Record) *Record {
	if record == nil {
		return nil
	}
	cloned := *record
	cloned.Document = record.Document.Clone()
	return &cloned
}
