package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-microsite/pkg/interfaces"
)

type contextKey struct{}

// ContextWithFields returns ctx carrying fields merged over any fields already
// on it. Loggers bound with WithContext add them to every entry.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}
	merged := ContextFields(ctx)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, contextKey{}, merged)
}

// ContextFields returns a copy of the fields stored on ctx.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, ok := ctx.Value(contextKey{}).(map[string]any)
	if !ok || len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}

// ContextWithWebsite tags ctx with the owner and wedding a request acts on.
func ContextWithWebsite(ctx context.Context, ownerID, weddingID string) context.Context {
	fields := map[string]any{}
	if owner := strings.TrimSpace(ownerID); owner != "" {
		fields["owner_id"] = owner
	}
	if wedding := strings.TrimSpace(weddingID); wedding != "" {
		fields["wedding_id"] = wedding
	}
	return ContextWithFields(ctx, fields)
}

// FromContext binds logger to ctx so context fields reach its entries.
func FromContext(logger interfaces.Logger, ctx context.Context) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	if ctx == nil {
		return logger
	}
	return logger.WithContext(ctx)
}
