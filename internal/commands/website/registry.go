package websitecmd

import (
	"time"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-microsite/internal/commands"
	"github.com/goliatone/go-microsite/internal/generator"
	"github.com/goliatone/go-microsite/internal/validation"
	"github.com/goliatone/go-microsite/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Dependencies are the collaborators the handlers act on.
type Dependencies struct {
	Generator *generator.Service
	Store     interfaces.DocumentStore
	// NewWorkflow builds the publish lifecycle of each wedding.
	NewWorkflow WorkflowFactory
	// Timeout bounds each handler execution when positive.
	Timeout time.Duration
	// SchemaLookup enables advisory section payload checks on save.
	SchemaLookup validation.SchemaLookup
}

// HandlerSet groups the website command handlers.
type HandlerSet struct {
	Generate *GenerateWebsiteHandler
	Save     *SaveWebsiteHandler
	Publish  *PublishWebsiteHandler
}

// RegisterWebsiteCommands builds the handlers and registers them with reg
// when it is non-nil.
func RegisterWebsiteCommands(reg CommandRegistry, deps Dependencies, provider interfaces.LoggerProvider) (*HandlerSet, error) {
	logger := commands.CommandLogger(provider, "website")

	set := &HandlerSet{
		Generate: NewGenerateWebsiteHandler(deps.Generator, deps.Store, logger, timeoutOption[GenerateWebsiteCommand](deps.Timeout)...),
		Save:     NewSaveWebsiteHandler(deps.Store, logger, timeoutOption[SaveWebsiteCommand](deps.Timeout)...).WithSchemaChecks(deps.SchemaLookup),
		Publish:  NewPublishWebsiteHandler(deps.NewWorkflow, deps.Store, logger, timeoutOption[PublishWebsiteCommand](deps.Timeout)...),
	}
	if reg != nil {
		for _, handler := range []any{set.Generate, set.Save, set.Publish} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

// SubscribeDispatcher routes the website messages dispatched through
// go-command to the handler set. The returned func removes the subscriptions.
func SubscribeDispatcher(set *HandlerSet) func() {
	if set == nil {
		return func() {}
	}
	subs := []interface{ Unsubscribe() }{
		dispatcher.SubscribeCommand(set.Generate),
		dispatcher.SubscribeCommand(set.Save),
		dispatcher.SubscribeCommand(set.Publish),
	}
	return func() {
		for _, sub := range subs {
			sub.Unsubscribe()
		}
	}
}

func timeoutOption[T command.Message](timeout time.Duration) []commands.HandlerOption[T] {
	if timeout <= 0 {
		return nil
	}
	return []commands.HandlerOption[T]{commands.WithTimeout[T](timeout)}
}
