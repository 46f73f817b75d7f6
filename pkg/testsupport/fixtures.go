package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/goliatone/go-microsite/website"
)

// LoadFixture reads a raw fixture file.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// LoadGolden decodes a JSON golden file into v.
func LoadGolden(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("testsupport: read golden %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("testsupport: decode golden %s: %w", path, err)
	}
	return nil
}

// FixedClock returns a clock frozen at 2024-06-01 12:00 UTC.
func FixedClock() func() time.Time {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

// WeddingDocument builds the default two-section document for Ana & Luis with
// a deterministic id and timestamps.
func WeddingDocument() website.Document {
	return website.NewDefault(
		website.WithDocumentID("web_fixture"),
		website.WithTitle("Ana & Luis"),
		website.WithSlug("ana-luis"),
		website.WithClock(FixedClock()),
	)
}
