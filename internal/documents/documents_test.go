package documents_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-microsite/internal/documents"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/pkg/testsupport"
	"github.com/goliatone/go-microsite/website"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

type recordStore interface {
	interfaces.DocumentStore
	Record(ctx context.Context, ownerID, weddingID string) (*documents.Record, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*documents.Record, error)
}

func newBunDB(t *testing.T) *bun.DB {
	t.Helper()
	db, err := testsupport.NewBunSQLite()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := documents.RegisterModels(context.Background(), db); err != nil {
		t.Fatalf("register models: %v", err)
	}
	return db
}

func stores(t *testing.T, now func() time.Time) map[string]recordStore {
	t.Helper()
	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheSvc, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("cache service: %v", err)
	}
	return map[string]recordStore{
		"memory": documents.NewMemoryStore(documents.WithClock(now)),
		"bun":    documents.NewBunStore(newBunDB(t), documents.WithClock(now)),
		"bun+cache": documents.NewBunStoreWithCache(newBunDB(t), cacheSvc, repocache.NewDefaultKeySerializer(),
			documents.WithClock(now)),
	}
}

func TestStoresSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	for name, store := range stores(t, clock) {
		t.Run(name, func(t *testing.T) {
			owner := "owner-" + name
			doc := website.NewDefault(website.WithDocumentID("web_"+name), website.WithClock(clock))

			if _, err := store.Load(ctx, owner, "wedding-1"); !errors.Is(err, documents.ErrDocumentNotFound) {
				t.Fatalf("expected not found before save, got %v", err)
			}
			if err := store.Save(ctx, owner, "wedding-1", doc); err != nil {
				t.Fatalf("save: %v", err)
			}

			loaded, err := store.Load(ctx, owner, "wedding-1")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if loaded.Meta.ID != doc.Meta.ID || len(loaded.Sections) != 2 {
				t.Fatalf("unexpected loaded document %+v", loaded.Meta)
			}
			if loaded.Styles.Colors != doc.Styles.Colors {
				t.Fatalf("expected styles to round-trip, got %+v", loaded.Styles.Colors)
			}

			doc.Meta.Title = "Ana & Luis"
			if err := store.Save(ctx, owner, "wedding-1", doc); err != nil {
				t.Fatalf("second save: %v", err)
			}
			record, err := store.Record(ctx, owner, "wedding-1")
			if err != nil {
				t.Fatalf("record: %v", err)
			}
			if record.Title != "Ana & Luis" || record.Revision != 2 {
				t.Fatalf("unexpected record title=%q revision=%d", record.Title, record.Revision)
			}
			if record.ID != documents.RecordID(owner, "wedding-1") {
				t.Fatalf("expected deterministic id, got %s", record.ID)
			}

			listed, err := store.ListByOwner(ctx, owner)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(listed) != 1 {
				t.Fatalf("expected one record for owner, got %d", len(listed))
			}
		})
	}
}

func TestStoresRejectBlankKeys(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t, time.Now) {
		t.Run(name, func(t *testing.T) {
			if err := store.Save(ctx, " ", "w", website.Document{}); !errors.Is(err, documents.ErrOwnerRequired) {
				t.Fatalf("expected ErrOwnerRequired, got %v", err)
			}
			if _, err := store.Load(ctx, "o", ""); !errors.Is(err, documents.ErrWeddingRequired) {
				t.Fatalf("expected ErrWeddingRequired, got %v", err)
			}
		})
	}
}

func TestMemoryStoreIsolatesCopies(t *testing.T) {
	ctx := context.Background()
	store := documents.NewMemoryStore()
	doc := website.NewDefault(website.WithDocumentID("web_iso"))
	if err := store.Save(ctx, "o", "w", doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	doc.Sections[0].Data["title"] = "mutated"

	loaded, _ := store.Load(ctx, "o", "w")
	if loaded.Sections[0].Data["title"] == "mutated" {
		t.Fatal("expected stored document to be isolated from caller")
	}
	loaded.Sections[0].Data["title"] = "mutated again"
	again, _ := store.Load(ctx, "o", "w")
	if again.Sections[0].Data["title"] == "mutated again" {
		t.Fatal("expected loaded document to be a copy")
	}
}

func TestOpenSelectsDialect(t *testing.T) {
	db, err := documents.Open("sqlite", "file:open_test?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if db.Dialect().Name() != dialect.SQLite {
		t.Fatalf("expected sqlite dialect, got %v", db.Dialect().Name())
	}

	ctx := context.Background()
	if err := documents.RegisterModels(ctx, db); err != nil {
		t.Fatalf("register models: %v", err)
	}
	store := documents.NewBunStore(db)
	if err := store.Save(ctx, "o", "w", website.NewDefault()); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := documents.Open("oracle", "dsn"); !errors.Is(err, documents.ErrUnsupportedDriver) {
		t.Fatalf("expected ErrUnsupportedDriver, got %v", err)
	}
}
