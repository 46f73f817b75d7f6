package publish

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

var (
	// ErrNoDocument is returned when publishing before a document was loaded.
	ErrNoDocument = errors.New("publish: no document loaded")
	// ErrReservedSlug indicates the derived slug collides with a platform path.
	ErrReservedSlug = errors.New("publish: slug is reserved")
	// ErrEmptySlug indicates neither the title nor meta.slug yield a usable slug.
	ErrEmptySlug = errors.New("publish: slug is empty")
	// ErrAlreadyPublished is returned when publishing from the terminal state.
	ErrAlreadyPublished = errors.New("publish: website already published")
	// ErrPublishInFlight is returned while an earlier publish awaits the endpoint.
	ErrPublishInFlight = errors.New("publish: publish already in progress")
	// ErrEndpointMissing indicates the workflow has no publish endpoint.
	ErrEndpointMissing = errors.New("publish: endpoint not configured")
	// ErrNoResult is returned by share actions before a successful publish.
	ErrNoResult = errors.New("publish: nothing published yet")
)

const (
	validationTextCode = "WEBSITE_VALIDATION_FAILED"
	publishTextCode    = "PUBLISH_FAILED"
	inFlightTextCode   = "PUBLISH_IN_PROGRESS"
)

func wrapValidation(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "website cannot be published").
		WithTextCode(validationTextCode)
}

func wrapPublishFailure(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, "publish endpoint failed").
		WithTextCode(publishTextCode)
}

func wrapConflict(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryConflict, "website is being published").
		WithTextCode(inFlightTextCode)
}
