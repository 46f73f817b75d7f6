package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-microsite/internal/logging"
	"github.com/goliatone/go-microsite/pkg/interfaces"
)

// TelemetryStatus is the outcome of one command run.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes a finished command run.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	// Code is the go-errors text code of Error, empty on success.
	Code   string
	Status TelemetryStatus
	Logger interfaces.Logger
}

// Telemetry receives every finished run in place of the default outcome log.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs outcomes as website.command.<status> with the run
// duration and, on failure, the error code.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	logger = EnsureLogger(logger)
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logger, info.Fields)
		args := []any{"duration_ms", info.Duration.Milliseconds()}
		if info.Status == TelemetryStatusSuccess {
			entry.Info("website.command.succeeded", args...)
			return
		}
		args = append(args, "error", info.Error, "code", info.Code)
		if info.Status == TelemetryStatusContextError {
			entry.Warn("website.command.interrupted", args...)
			return
		}
		entry.Error("website.command.failed", args...)
	}
}
