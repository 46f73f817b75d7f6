package di_test

import (
	"context"
	"maps"
	"sync"
	"testing"

	websitecmd "github.com/goliatone/go-microsite/internal/commands/website"
	"github.com/goliatone/go-microsite/internal/di"
	"github.com/goliatone/go-microsite/internal/logging"
	"github.com/goliatone/go-microsite/internal/runtimeconfig"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/pkg/testsupport"
)

func TestContainerRoutesModuleLogsThroughProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true

	sink := &logSink{}
	container, err := di.NewContainer(cfg, di.WithLoggerProvider(sink))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	ctx := logging.ContextWithWebsite(context.Background(), "owner", "wedding")
	if err := container.DocumentStore().Save(ctx, "owner", "wedding", testsupport.WeddingDocument()); err != nil {
		t.Fatalf("save: %v", err)
	}

	entry, ok := sink.find("documents.saved")
	if !ok {
		t.Fatalf("expected documents.saved entry, got %v", sink.messages())
	}
	if entry.fields["module"] != "microsite.documents" {
		t.Fatalf("expected microsite.documents module, got %v", entry.fields["module"])
	}
	if entry.fields["owner_id"] != "owner" || entry.fields["document_id"] != "web_fixture" {
		t.Fatalf("unexpected fields %v", entry.fields)
	}
}

func TestSaveCommandFieldsReachStoreLogs(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true

	sink := &logSink{}
	container, err := di.NewContainer(cfg, di.WithLoggerProvider(sink))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	msg := websitecmd.SaveWebsiteCommand{OwnerID: "owner", WeddingID: "wedding", Document: testsupport.WeddingDocument()}
	if err := container.Commands().Save.Execute(context.Background(), msg); err != nil {
		t.Fatalf("save command: %v", err)
	}

	saved, ok := sink.find("documents.saved")
	if !ok {
		t.Fatalf("expected documents.saved entry, got %v", sink.messages())
	}
	if saved.fields["operation"] != "website.save" || saved.fields["sections"] != 2 {
		t.Fatalf("expected command fields lifted from the context, got %v", saved.fields)
	}
	if _, ok := sink.find("website.command.succeeded"); !ok {
		t.Fatalf("expected command telemetry entry, got %v", sink.messages())
	}
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]any
}

type logSink struct {
	mu      sync.Mutex
	entries []logEntry
}

func (s *logSink) GetLogger(name string) interfaces.Logger {
	return &sinkLogger{sink: s, fields: map[string]any{"logger": name}}
}

func (s *logSink) find(msg string) (logEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.entries {
		if entry.msg == msg {
			return entry, true
		}
	}
	return logEntry{}, false
}

func (s *logSink) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, entry.level+" "+entry.msg)
	}
	return out
}

type sinkLogger struct {
	sink   *logSink
	fields map[string]any
}

var _ interfaces.Logger = (*sinkLogger)(nil)

func (l *sinkLogger) Trace(msg string, args ...any) { l.log("TRACE", msg, args) }
func (l *sinkLogger) Debug(msg string, args ...any) { l.log("DEBUG", msg, args) }
func (l *sinkLogger) Info(msg string, args ...any)  { l.log("INFO", msg, args) }
func (l *sinkLogger) Warn(msg string, args ...any)  { l.log("WARN", msg, args) }
func (l *sinkLogger) Error(msg string, args ...any) { l.log("ERROR", msg, args) }
func (l *sinkLogger) Fatal(msg string, args ...any) { l.log("FATAL", msg, args) }

func (l *sinkLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := maps.Clone(l.fields)
	maps.Copy(merged, fields)
	return &sinkLogger{sink: l.sink, fields: merged}
}

func (l *sinkLogger) WithContext(ctx context.Context) interfaces.Logger {
	return l.WithFields(logging.ContextFields(ctx))
}

func (l *sinkLogger) log(level, msg string, args []any) {
	fields := maps.Clone(l.fields)
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok && key != "" {
			fields[key] = args[i+1]
		}
	}
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.entries = append(l.sink.entries, logEntry{level: level, msg: msg, fields: fields})
}
