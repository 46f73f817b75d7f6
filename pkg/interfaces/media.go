package interfaces

import "context"

// UploadObject is a single file handed to a storage backend.
type UploadObject struct {
	Name        string
	ContentType string
	Data        []byte
}

// StorageUploader persists file bytes and returns a durable public URL.
type StorageUploader interface {
	Upload(ctx context.Context, object UploadObject) (string, error)
}
