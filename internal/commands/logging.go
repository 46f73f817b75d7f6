package commands

import (
	"strings"

	"github.com/goliatone/go-microsite/internal/logging"
	"github.com/goliatone/go-microsite/pkg/interfaces"
)

// CommandLogger scopes the commands logger to one handler group, for example
// "website", and tags entries with that group.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	group = strings.ToLower(strings.TrimSpace(group))
	if group == "" {
		return logging.CommandsLogger(provider)
	}
	logger := logging.ModuleLogger(provider, "microsite.commands."+group)
	return logging.WithFields(logger, map[string]any{"command_group": group})
}
