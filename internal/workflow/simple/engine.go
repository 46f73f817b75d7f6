// Package simple is an in-process workflow engine seeded with the website
// publish lifecycle.
package simple

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-microsite/pkg/interfaces"
)

// EntityTypeWebsite is the entity the default lifecycle is registered under.
const EntityTypeWebsite = "website"

// Website lifecycle states.
const (
	StateDraft      interfaces.WorkflowState = "draft"
	StatePreviewing interfaces.WorkflowState = "previewing"
	StateEditing    interfaces.WorkflowState = "editing"
	StatePublishing interfaces.WorkflowState = "publishing"
	StatePublished  interfaces.WorkflowState = "published"
	StateError      interfaces.WorkflowState = "error"
)

// Website lifecycle transitions.
const (
	TransitionLoad    = "load"
	TransitionEdit    = "edit"
	TransitionPreview = "preview"
	TransitionPublish = "publish"
	TransitionSucceed = "succeed"
	TransitionFail    = "fail"
)

var (
	ErrUnknownEntityType = errors.New("workflow: entity type not registered")
	ErrInvalidTransition = errors.New("workflow: transition not allowed")
	ErrMissingTransition = errors.New("workflow: transition name required")
	ErrEmptyEntityID     = errors.New("workflow: entity id required")
	ErrEntityTypeMissing = errors.New("workflow: entity type required")
)

const defaultHistoryLimit = 32

// Engine keeps lifecycles in memory and a bounded transition history per
// entity.
type Engine struct {
	mu           sync.RWMutex
	machines     map[string]*machine
	history      map[string][]interfaces.TransitionResult
	historyLimit int
	now          func() time.Time
}

// Option configures the engine.
type Option func(*Engine)

// WithClock overrides the clock used for CompletedAt.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.now = clock
		}
	}
}

// WithHistoryLimit caps how many results History keeps per entity. Zero or
// less disables history.
func WithHistoryLimit(limit int) Option {
	return func(e *Engine) {
		e.historyLimit = limit
	}
}

// New returns an engine with the website lifecycle registered.
func New(opts ...Option) *Engine {
	engine := &Engine{
		machines:     make(map[string]*machine),
		history:      make(map[string][]interfaces.TransitionResult),
		historyLimit: defaultHistoryLimit,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(engine)
	}
	_ = engine.RegisterWorkflow(context.Background(), WebsiteWorkflowDefinition())
	return engine
}

// RegisterWorkflow installs or replaces the lifecycle for an entity type.
func (e *Engine) RegisterWorkflow(_ context.Context, definition interfaces.WorkflowDefinition) error {
	entity := normalizeEntity(definition.EntityType)
	if entity == "" {
		return ErrEntityTypeMissing
	}
	m := buildMachine(definition)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.machines[entity] = m
	return nil
}

// Transition applies the named transition from input.CurrentState.
func (e *Engine) Transition(_ context.Context, input interfaces.TransitionInput) (*interfaces.TransitionResult, error) {
	if strings.TrimSpace(input.EntityID) == "" {
		return nil, ErrEmptyEntityID
	}
	name := strings.ToLower(strings.TrimSpace(input.Transition))
	if name == "" {
		return nil, ErrMissingTransition
	}
	m, err := e.machine(input.EntityType)
	if err != nil {
		return nil, err
	}

	from := m.initial
	if strings.TrimSpace(string(input.CurrentState)) != "" {
		from = normalizeState(input.CurrentState)
	}
	edge, ok := m.edges[edgeKey{name: name, from: from}]
	if !ok {
		return nil, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, name, from)
	}

	result := interfaces.TransitionResult{
		EntityID:    input.EntityID,
		EntityType:  input.EntityType,
		Transition:  edge.Name,
		FromState:   from,
		ToState:     edge.To,
		Terminal:    m.terminal[edge.To],
		CompletedAt: e.now(),
		Metadata:    maps.Clone(input.Metadata),
	}
	e.record(result)
	return &result, nil
}

// AvailableTransitions lists the transitions leaving query.State in
// declaration order.
func (e *Engine) AvailableTransitions(_ context.Context, query interfaces.TransitionQuery) ([]interfaces.WorkflowTransition, error) {
	m, err := e.machine(query.EntityType)
	if err != nil {
		return nil, err
	}
	state := m.initial
	if strings.TrimSpace(string(query.State)) != "" {
		state = normalizeState(query.State)
	}
	return slices.Clone(m.outgoing[state]), nil
}

// History returns the most recent transitions applied to an entity, oldest
// first.
func (e *Engine) History(entityType, entityID string) []interfaces.TransitionResult {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.history[historyKey(entityType, entityID)])
}

func (e *Engine) record(result interfaces.TransitionResult) {
	if e.historyLimit <= 0 {
		return
	}
	key := historyKey(result.EntityType, result.EntityID)
	e.mu.Lock()
	defer e.mu.Unlock()
	entries := append(e.history[key], result)
	if overflow := len(entries) - e.historyLimit; overflow > 0 {
		entries = slices.Clone(entries[overflow:])
	}
	e.history[key] = entries
}

func (e *Engine) machine(entityType string) (*machine, error) {
	e.mu.RLock()
	m, ok := e.machines[normalizeEntity(entityType)]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntityType, entityType)
	}
	return m, nil
}

type edgeKey struct {
	name string
	from interfaces.WorkflowState
}

type machine struct {
	initial  interfaces.WorkflowState
	edges    map[edgeKey]interfaces.WorkflowTransition
	outgoing map[interfaces.WorkflowState][]interfaces.WorkflowTransition
	terminal map[interfaces.WorkflowState]bool
}

func buildMachine(definition interfaces.WorkflowDefinition) *machine {
	m := &machine{
		initial:  StateDraft,
		edges:    make(map[edgeKey]interfaces.WorkflowTransition),
		outgoing: make(map[interfaces.WorkflowState][]interfaces.WorkflowTransition),
		terminal: make(map[interfaces.WorkflowState]bool),
	}
	if strings.TrimSpace(string(definition.InitialState)) != "" {
		m.initial = normalizeState(definition.InitialState)
	}
	for _, state := range definition.States {
		if state.Terminal {
			m.terminal[normalizeState(state.Name)] = true
		}
	}
	for _, transition := range definition.Transitions {
		transition.From = normalizeState(transition.From)
		transition.To = normalizeState(transition.To)
		m.edges[edgeKey{name: strings.ToLower(strings.TrimSpace(transition.Name)), from: transition.From}] = transition
		m.outgoing[transition.From] = append(m.outgoing[transition.From], transition)
	}
	return m
}

func historyKey(entityType, entityID string) string {
	return normalizeEntity(entityType) + "/" + entityID
}

func normalizeEntity(entityType string) string {
	return strings.ToLower(strings.TrimSpace(entityType))
}

func normalizeState(state interfaces.WorkflowState) interfaces.WorkflowState {
	return interfaces.WorkflowState(strings.ToLower(strings.TrimSpace(string(state))))
}

// WebsiteWorkflowDefinition is the draft-to-published lifecycle. Error is
// recoverable: publish may be retried from it.
func WebsiteWorkflowDefinition() interfaces.WorkflowDefinition {
	return interfaces.WorkflowDefinition{
		EntityType:   EntityTypeWebsite,
		InitialState: StateDraft,
		States: []interfaces.WorkflowStateDefinition{
			{Name: StateDraft, Description: "No document loaded yet"},
			{Name: StatePreviewing, Description: "Document rendered read-only"},
			{Name: StateEditing, Description: "Document rendered with edit affordances"},
			{Name: StatePublishing, Description: "Publish call in flight"},
			{Name: StatePublished, Description: "Public page is live", Terminal: true},
			{Name: StateError, Description: "Last publish attempt failed"},
		},
		Transitions: []interfaces.WorkflowTransition{
			{Name: TransitionLoad, From: StateDraft, To: StatePreviewing},
			{Name: TransitionEdit, From: StatePreviewing, To: StateEditing},
			{Name: TransitionPreview, From: StateEditing, To: StatePreviewing},
			{Name: TransitionPublish, From: StatePreviewing, To: StatePublishing},
			{Name: TransitionPublish, From: StateEditing, To: StatePublishing},
			{Name: TransitionPublish, From: StateError, To: StatePublishing},
			{Name: TransitionSucceed, From: StatePublishing, To: StatePublished},
			{Name: TransitionFail, From: StatePublishing, To: StateError},
			{Name: TransitionEdit, From: StateError, To: StateEditing},
			{Name: TransitionPreview, From: StateError, To: StatePreviewing},
		},
	}
}
