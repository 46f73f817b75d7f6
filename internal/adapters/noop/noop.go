// Package noop provides inert host capabilities for embedding the builder
// where clipboard, share sheet or content generation are unavailable.
package noop

import (
	"context"
	"errors"

	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/website"
)

// ErrGeneratorDisabled is returned by the no-op content generator.
var ErrGeneratorDisabled = errors.New("noop: content generator disabled")

// Generator returns a content generator that always fails, so callers fall
// back to the static default document.
func Generator() interfaces.ContentGenerator {
	return generatorAdapter{}
}

type generatorAdapter struct{}

func (generatorAdapter) Generate(context.Context, interfaces.Profile) (website.Document, error) {
	return website.Document{}, ErrGeneratorDisabled
}

// Clipboard returns a clipboard that discards text.
func Clipboard() interfaces.Clipboard {
	return clipboardAdapter{}
}

type clipboardAdapter struct{}

func (clipboardAdapter) WriteText(context.Context, string) error {
	return nil
}

// Sharer returns a native sharer that reports itself unavailable.
func Sharer() interfaces.NativeSharer {
	return sharerAdapter{}
}

type sharerAdapter struct{}

func (sharerAdapter) CanShare() bool {
	return false
}

func (sharerAdapter) Share(context.Context, interfaces.ShareData) error {
	return nil
}
