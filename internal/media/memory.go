package media

import (
	"context"
	"strings"
	"sync"

	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/google/uuid"
)

// MemoryUploader keeps uploads in process. Used by tests and the example
// host.
type MemoryUploader struct {
	mu      sync.RWMutex
	baseURL string
	prefix  string
	objects map[string]interfaces.UploadObject
	newID   func() string
}

// NewMemoryUploader returns an uploader serving objects under baseURL.
func NewMemoryUploader(baseURL, prefix string) *MemoryUploader {
	return &MemoryUploader{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		prefix:  prefix,
		objects: map[string]interfaces.UploadObject{},
		newID:   uuid.NewString,
	}
}

// Upload stores a copy of the object.
func (m *MemoryUploader) Upload(ctx context.Context, object interfaces.UploadObject) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := ObjectKey(m.prefix, m.newID(), object.Name)
	stored := object
	stored.Data = append([]byte(nil), object.Data...)

	m.mu.Lock()
	m.objects[key] = stored
	m.mu.Unlock()

	return m.baseURL + "/" + key, nil
}

// Object returns a stored upload by key.
func (m *MemoryUploader) Object(key string) (interfaces.UploadObject, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	object, ok := m.objects[key]
	return object, ok
}

// Len reports how many objects are stored.
func (m *MemoryUploader) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
