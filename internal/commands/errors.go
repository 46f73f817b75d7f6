package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to failures that leave a handler untagged.
const (
	CodeInvalidMessage = "WEBSITE_COMMAND_INVALID"
	CodeCanceled       = "WEBSITE_COMMAND_CANCELED"
	CodeTimeout        = "WEBSITE_COMMAND_TIMEOUT"
	CodeFailed         = "WEBSITE_COMMAND_FAILED"
)

type failureStage int

const (
	stageValidate failureStage = iota
	stageExecute
)

// classify tags err with a category and text code. Errors already wrapped by
// go-errors further down (publish, upload, document validation) keep their
// own category so callers can still map them to HTTP statuses.
func classify(err error, stage failureStage) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case stage == stageValidate:
		return goerrors.Wrap(err, goerrors.CategoryValidation, "website command rejected").
			WithTextCode(CodeInvalidMessage)
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "website command cancelled").
			WithTextCode(CodeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "website command timed out").
			WithTextCode(CodeTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "website command failed").
			WithTextCode(CodeFailed)
	}
}

// ErrorCode returns the text code carried by err, if any.
func ErrorCode(err error) string {
	var typed *goerrors.Error
	if errors.As(err, &typed) {
		return typed.TextCode
	}
	return ""
}
