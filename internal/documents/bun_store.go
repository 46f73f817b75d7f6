package documents

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-microsite/internal/logging"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/website"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"
)

// BunStore implements interfaces.DocumentStore on a bun database with
// optional read caching.
type BunStore struct {
	repo   repository.Repository[*Record]
	logger interfaces.Logger
	now    func() time.Time
}

// StoreOption configures a store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	logger interfaces.Logger
	now    func() time.Time
}

// WithLogger overrides the store logger.
func WithLogger(logger interfaces.Logger) StoreOption {
	return func(o *storeOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(o *storeOptions) {
		if now != nil {
			o.now = now
		}
	}
}

func resolveOptions(opts []StoreOption) storeOptions {
	cfg := storeOptions{logger: logging.NoOp(), now: time.Now}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// NewBunStore creates a store without caching.
func NewBunStore(db *bun.DB, opts ...StoreOption) *BunStore {
	return NewBunStoreWithCache(db, nil, nil, opts...)
}

// NewBunStoreWithCache creates a store whose reads go through the cache
// service when both cache arguments are set.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer, opts ...StoreOption) *BunStore {
	base := NewRecordRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	cfg := resolveOptions(opts)
	return &BunStore{repo: base, logger: cfg.logger, now: cfg.now}
}

// RegisterModels creates the documents table when missing.
func RegisterModels(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*Record)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Save creates or replaces the draft for the owner/wedding pair.
func (s *BunStore) Save(ctx context.Context, ownerID, weddingID string, doc website.Document) error {
	if err := checkKeys(ownerID, weddingID); err != nil {
		return err
	}
	id := RecordID(ownerID, weddingID)
	now := s.now().UTC()

	existing, err := s.repo.GetByID(ctx, id.String())
	switch {
	case err == nil:
		existing.Document = doc.Clone()
		existing.Title = doc.Meta.Title
		existing.Slug = doc.Meta.Slug
		existing.Revision++
		existing.UpdatedAt = now
		if _, err := s.repo.Update(ctx, existing); err != nil {
			return mapRepositoryError(err, ownerID, weddingID)
		}
	case errors.IsCategory(err, repository.CategoryDatabaseNotFound):
		record := &Record{
			ID:        id,
			Key:       RecordKey(ownerID, weddingID),
			OwnerID:   ownerID,
			WeddingID: weddingID,
			Title:     doc.Meta.Title,
			Slug:      doc.Meta.Slug,
			Document:  doc.Clone(),
			Revision:  1,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if _, err := s.repo.Create(ctx, record); err != nil {
			return fmt.Errorf("documents: create record: %w", err)
		}
	default:
		return mapRepositoryError(err, ownerID, weddingID)
	}

	logging.FromContext(s.logger, ctx).Debug("documents.saved", "owner_id", ownerID, "wedding_id", weddingID, "document_id", doc.Meta.ID)
	return nil
}

// Load returns the stored draft.
func (s *BunStore) Load(ctx context.Context, ownerID, weddingID string) (website.Document, error) {
	record, err := s.Record(ctx, ownerID, weddingID)
	if err != nil {
		return website.Document{}, err
	}
	return record.Document.Clone(), nil
}

// Record returns the stored row including bookkeeping columns.
func (s *BunStore) Record(ctx context.Context, ownerID, weddingID string) (*Record, error) {
	if err := checkKeys(ownerID, weddingID); err != nil {
		return nil, err
	}
	record, err := s.repo.GetByID(ctx, RecordID(ownerID, weddingID).String())
	if err != nil {
		return nil, mapRepositoryError(err, ownerID, weddingID)
	}
	return cloneRecord(record), nil
}

// ListByOwner returns every draft an owner has saved, newest first.
func (s *BunStore) ListByOwner(ctx context.Context, ownerID string) ([]*Record, error) {
	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.owner_id = ?", ownerID).OrderExpr("?TableAlias.updated_at DESC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("documents: list by owner: %w", err)
	}
	return records, nil
}

func mapRepositoryError(err error, ownerID, weddingID string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{OwnerID: ownerID, WeddingID: weddingID}
	}
	return fmt.Errorf("documents: repository error: %w", err)
}
