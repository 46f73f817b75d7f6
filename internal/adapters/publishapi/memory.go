package publishapi

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/website"
)

// ErrSlugTaken is returned when another wedding already owns the slug.
var ErrSlugTaken = errors.New("publishapi: slug already taken")

// MemoryEndpoint publishes into process memory. Slugs are owned by the first
// wedding that publishes them; republishing the same wedding is allowed.
type MemoryEndpoint struct {
	mu      sync.RWMutex
	baseURL string
	owners  map[string]string
	pages   map[string]website.Document
}

// NewMemoryEndpoint serves published pages under baseURL.
func NewMemoryEndpoint(baseURL string) *MemoryEndpoint {
	return &MemoryEndpoint{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		owners:  map[string]string{},
		pages:   map[string]website.Document{},
	}
}

// Publish stores the document under its slug.
func (m *MemoryEndpoint) Publish(ctx context.Context, ownerID, weddingID string, doc website.Document) (interfaces.PublishResponse, error) {
	if err := ctx.Err(); err != nil {
		return interfaces.PublishResponse{}, err
	}
	slug := strings.TrimSpace(doc.Meta.Slug)
	key := ownerID + ":" + weddingID

	m.mu.Lock()
	defer m.mu.Unlock()
	if owner, ok := m.owners[slug]; ok && owner != key {
		return interfaces.PublishResponse{}, ErrSlugTaken
	}
	m.owners[slug] = key
	m.pages[slug] = doc.Clone()
	return interfaces.PublishResponse{Slug: slug, URL: m.baseURL + "/" + slug}, nil
}

// Page returns the published document for slug.
func (m *MemoryEndpoint) Page(slug string) (website.Document, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.pages[slug]
	if !ok {
		return website.Document{}, false
	}
	return doc.Clone(), true
}
