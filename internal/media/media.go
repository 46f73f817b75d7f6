// Package media validates image uploads and stores them through pluggable
// uploaders (in-memory or Google Cloud Storage).
package media

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-microsite/pkg/interfaces"
)

// DefaultMaxUploadBytes caps a single image at 5 MiB.
const DefaultMaxUploadBytes int64 = 5 * 1024 * 1024

var (
	// ErrUploadRejected is the sentinel every per-file rejection unwraps to.
	ErrUploadRejected = errors.New("media: upload rejected")
	// ErrNotImage indicates neither the declared nor the sniffed type is image/*.
	ErrNotImage = errors.New("media: file is not an image")
	// ErrTooLarge indicates the file exceeds the configured limit.
	ErrTooLarge = errors.New("media: file exceeds size limit")
	// ErrEmptyFile indicates a zero-byte upload.
	ErrEmptyFile = errors.New("media: file is empty")
	// ErrUploaderUnavailable is returned when no storage backend is wired.
	ErrUploaderUnavailable = errors.New("media: uploader unavailable")
)

const rejectedTextCode = "UPLOAD_REJECTED"

// RejectedError explains why a single file of a batch was refused.
type RejectedError struct {
	Name   string
	Reason error
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrUploadRejected, e.Name, e.Reason)
}

func (e *RejectedError) Unwrap() []error {
	return []error{ErrUploadRejected, e.Reason}
}

// Message is the user-facing text shown next to the rejected file.
func (e *RejectedError) Message() string {
	switch {
	case errors.Is(e.Reason, ErrTooLarge):
		return fmt.Sprintf("%s is larger than the allowed size", e.Name)
	case errors.Is(e.Reason, ErrNotImage):
		return fmt.Sprintf("%s is not an image", e.Name)
	case errors.Is(e.Reason, ErrEmptyFile):
		return fmt.Sprintf("%s is empty", e.Name)
	default:
		return fmt.Sprintf("%s could not be uploaded", e.Name)
	}
}

func reject(name string, reason error) error {
	return goerrors.Wrap(&RejectedError{Name: name, Reason: reason}, goerrors.CategoryValidation, "image upload rejected").
		WithTextCode(rejectedTextCode).
		WithMetadata(map[string]any{"file": name})
}

// Check validates an upload and returns the content type to store it under.
// A declared image/* type is trusted; anything else is sniffed from the bytes.
func Check(object interfaces.UploadObject, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	name := strings.TrimSpace(object.Name)
	if name == "" {
		name = "file"
	}
	size := int64(len(object.Data))
	if size == 0 {
		return "", reject(name, ErrEmptyFile)
	}
	if size > maxBytes {
		return "", reject(name, fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, size, maxBytes))
	}

	declared := strings.ToLower(strings.TrimSpace(object.ContentType))
	if isImage(declared) {
		return declared, nil
	}
	detected := mimetype.Detect(object.Data)
	if isImage(detected.String()) {
		return baseType(detected.String()), nil
	}
	return "", reject(name, fmt.Errorf("%w: %s", ErrNotImage, detected.String()))
}

// IsRejected reports whether err is a per-file rejection.
func IsRejected(err error) bool {
	return errors.Is(err, ErrUploadRejected)
}

// RejectionOf extracts the rejection details from err.
func RejectionOf(err error) (*RejectedError, bool) {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected, true
	}
	return nil, false
}

// ObjectKey builds the storage key for an upload under prefix.
func ObjectKey(prefix, id, name string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "image"
	}
	return strings.TrimPrefix(path.Join(strings.Trim(prefix, "/"), id+"-"+base), "/")
}

func isImage(contentType string) bool {
	return strings.HasPrefix(baseType(contentType), "image/")
}

func baseType(contentType string) string {
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	return strings.TrimSpace(contentType)
}
