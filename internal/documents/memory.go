package documents

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-microsite/internal/logging"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/website"
)

// MemoryStore keeps drafts in process.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
	logger  interfaces.Logger
	now     func() time.Time
}

// NewMemoryStore constructs an empty memory-backed store.
func NewMemoryStore(opts ...StoreOption) *MemoryStore {
	cfg := resolveOptions(opts)
	return &MemoryStore{
		records: make(map[string]*Record),
		logger:  cfg.logger,
		now:     cfg.now,
	}
}

// Save creates or replaces the draft for the owner/wedding pair.
func (m *MemoryStore) Save(ctx context.Context, ownerID, weddingID string, doc website.Document) error {
	if err := checkKeys(ownerID, weddingID); err != nil {
		return err
	}
	key := RecordKey(ownerID, weddingID)
	now := m.now().UTC()

	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[key]
	if !ok {
		record = &Record{
			ID:        RecordID(ownerID, weddingID),
			Key:       key,
			OwnerID:   ownerID,
			WeddingID: weddingID,
			CreatedAt: now,
		}
		m.records[key] = record
	}
	record.Document = doc.Clone()
	record.Title = doc.Meta.Title
	record.Slug = doc.Meta.Slug
	record.Revision++
	record.UpdatedAt = now

	logging.FromContext(m.logger, ctx).Debug("documents.saved", "owner_id", ownerID, "wedding_id", weddingID, "document_id", doc.Meta.ID)
	return nil
}

// Load returns the stored draft.
func (m *MemoryStore) Load(ctx context.Context, ownerID, weddingID string) (website.Document, error) {
	record, err := m.Record(ctx, ownerID, weddingID)
	if err != nil {
		return website.Document{}, err
	}
	return record.Document, nil
}

// Record returns the stored row including bookkeeping fields.
func (m *MemoryStore) Record(_ context.Context, ownerID, weddingID string) (*Record, error) {
	if err := checkKeys(ownerID, weddingID); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.records[RecordKey(ownerID, weddingID)]
	if !ok {
		return nil, &NotFoundError{OwnerID: ownerID, WeddingID: weddingID}
	}
	return cloneRecord(record), nil
}

// ListByOwner returns every draft an owner has saved, newest first.
func (m *MemoryStore) ListByOwner(_ context.Context, ownerID string) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*Record{}
	for _, record := range m.records {
		if record.OwnerID == ownerID {
			out = append(out, cloneRecord(record))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}
