// Package workflow compiles configured lifecycles into definitions the
// workflow engine can register.
package workflow

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-microsite/internal/runtimeconfig"
	"github.com/goliatone/go-microsite/pkg/interfaces"
)

var (
	ErrDefinitionEntityRequired = errors.New("workflow: definition entity required")
	ErrDefinitionStatesRequired = errors.New("workflow: definition requires at least one state")
	ErrStateNameRequired        = errors.New("workflow: state name required")
	ErrDuplicateState           = errors.New("workflow: duplicate state")
	ErrDuplicateDefinition      = errors.New("workflow: duplicate entity definition")
	ErrTransitionNameRequired   = errors.New("workflow: transition name required")
	ErrTransitionStateUnknown   = errors.New("workflow: transition references unknown state")
	ErrDuplicateTransition      = errors.New("workflow: duplicate transition for state")
	ErrInitialStateInvalid      = errors.New("workflow: invalid initial state")
	// ErrLifecycleIncomplete is returned when a website lifecycle drops a
	// transition the publish workflow fires.
	ErrLifecycleIncomplete = errors.New("workflow: website lifecycle missing transition")
)

// WebsiteEntity is the entity type driven by the publish workflow.
const WebsiteEntity = "website"

// WebsiteTransitions lists the transitions the publish workflow fires. A host
// may add transitions to the website lifecycle but not remove these.
var WebsiteTransitions = []string{"load", "edit", "preview", "publish", "succeed", "fail"}

// CompileDefinitionConfigs turns configured lifecycles into engine
// definitions, typically to extend the website lifecycle with transitions
// such as unpublish.
func CompileDefinitionConfigs(configs []runtimeconfig.WorkflowDefinitionConfig) ([]interfaces.WorkflowDefinition, error) {
	if len(configs) == 0 {
		return nil, nil
	}
	definitions := make([]interfaces.WorkflowDefinition, 0, len(configs))
	seen := make(map[string]bool, len(configs))
	for _, cfg := range configs {
		entity := normalize(cfg.Entity)
		if entity == "" {
			return nil, ErrDefinitionEntityRequired
		}
		if seen[entity] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDefinition, entity)
		}
		seen[entity] = true

		definition, err := compileDefinition(entity, cfg)
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, definition)
	}
	return definitions, nil
}

func compileDefinition(entity string, cfg runtimeconfig.WorkflowDefinitionConfig) (interfaces.WorkflowDefinition, error) {
	if len(cfg.States) == 0 {
		return interfaces.WorkflowDefinition{}, fmt.Errorf("%w: %s", ErrDefinitionStatesRequired, entity)
	}
	states, initial, err := compileStates(cfg.States)
	if err != nil {
		return interfaces.WorkflowDefinition{}, err
	}
	transitions, err := compileTransitions(cfg.Transitions, states)
	if err != nil {
		return interfaces.WorkflowDefinition{}, err
	}
	if entity == WebsiteEntity {
		if err := requireTransitions(transitions, WebsiteTransitions); err != nil {
			return interfaces.WorkflowDefinition{}, err
		}
	}
	return interfaces.WorkflowDefinition{
		EntityType:   entity,
		InitialState: initial,
		States:       states,
		Transitions:  transitions,
	}, nil
}

// compileStates normalises state names. The first state is initial unless
// exactly one state is flagged Initial.
func compileStates(configs []runtimeconfig.WorkflowStateConfig) ([]interfaces.WorkflowStateDefinition, interfaces.WorkflowState, error) {
	states := make([]interfaces.WorkflowStateDefinition, 0, len(configs))
	var initial interfaces.WorkflowState
	for idx, cfg := range configs {
		name := interfaces.WorkflowState(normalize(cfg.Name))
		if name == "" {
			return nil, "", fmt.Errorf("%w at index %d", ErrStateNameRequired, idx)
		}
		if hasState(states, name) {
			return nil, "", fmt.Errorf("%w: %s", ErrDuplicateState, name)
		}
		if cfg.Initial {
			if initial != "" {
				return nil, "", fmt.Errorf("%w: both %s and %s flagged initial", ErrInitialStateInvalid, initial, name)
			}
			initial = name
		}
		states = append(states, interfaces.WorkflowStateDefinition{
			Name:        name,
			Description: strings.TrimSpace(cfg.Description),
			Terminal:    cfg.Terminal,
		})
	}
	if initial == "" {
		initial = states[0].Name
	}
	return states, initial, nil
}

func compileTransitions(configs []runtimeconfig.WorkflowTransitionConfig, states []interfaces.WorkflowStateDefinition) ([]interfaces.WorkflowTransition, error) {
	transitions := make([]interfaces.WorkflowTransition, 0, len(configs))
	seen := make(map[string]bool, len(configs))
	for idx, cfg := range configs {
		name := strings.TrimSpace(cfg.Name)
		if name == "" {
			return nil, fmt.Errorf("%w at index %d", ErrTransitionNameRequired, idx)
		}
		from := interfaces.WorkflowState(normalize(cfg.From))
		to := interfaces.WorkflowState(normalize(cfg.To))
		for _, state := range []interfaces.WorkflowState{from, to} {
			if !hasState(states, state) {
				return nil, fmt.Errorf("%w: %q in %s", ErrTransitionStateUnknown, state, name)
			}
		}
		key := strings.ToLower(name) + "::" + string(from)
		if seen[key] {
			return nil, fmt.Errorf("%w: %s from %s", ErrDuplicateTransition, name, from)
		}
		seen[key] = true
		transitions = append(transitions, interfaces.WorkflowTransition{
			Name:        name,
			Description: strings.TrimSpace(cfg.Description),
			From:        from,
			To:          to,
		})
	}
	return transitions, nil
}

func requireTransitions(transitions []interfaces.WorkflowTransition, required []string) error {
	var missing []error
	for _, name := range required {
		found := slices.ContainsFunc(transitions, func(t interfaces.WorkflowTransition) bool {
			return strings.EqualFold(t.Name, name)
		})
		if !found {
			missing = append(missing, fmt.Errorf("%w: %s", ErrLifecycleIncomplete, name))
		}
	}
	return errors.Join(missing...)
}

func hasState(states []interfaces.WorkflowStateDefinition, name interfaces.WorkflowState) bool {
	return slices.ContainsFunc(states, func(s interfaces.WorkflowStateDefinition) bool { return s.Name == name })
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
