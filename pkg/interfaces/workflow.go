package interfaces

import (
	"context"
	"time"
)

// WorkflowState names a lifecycle stage, for example "draft" or "published".
type WorkflowState string

// WorkflowEngine runs named transitions over registered lifecycles. The
// publish workflow uses one to move a website from draft to published.
type WorkflowEngine interface {
	Transition(ctx context.Context, input TransitionInput) (*TransitionResult, error)
	AvailableTransitions(ctx context.Context, query TransitionQuery) ([]WorkflowTransition, error)
	// RegisterWorkflow installs or replaces the lifecycle of an entity type.
	RegisterWorkflow(ctx context.Context, definition WorkflowDefinition) error
}

// TransitionInput fires Transition on an entity sitting in CurrentState. An
// empty CurrentState means the lifecycle's initial state.
type TransitionInput struct {
	EntityID     string
	EntityType   string
	CurrentState WorkflowState
	Transition   string
	Metadata     map[string]any
}

// TransitionResult records an applied transition.
type TransitionResult struct {
	EntityID    string
	EntityType  string
	Transition  string
	FromState   WorkflowState
	ToState     WorkflowState
	Terminal    bool
	CompletedAt time.Time
	Metadata    map[string]any
}

// TransitionQuery asks for the transitions leaving State.
type TransitionQuery struct {
	EntityType string
	State      WorkflowState
}

// WorkflowDefinition is the lifecycle of one entity type.
type WorkflowDefinition struct {
	EntityType   string
	InitialState WorkflowState
	States       []WorkflowStateDefinition
	Transitions  []WorkflowTransition
}

type WorkflowStateDefinition struct {
	Name        WorkflowState
	Description string
	Terminal    bool
}

// WorkflowTransition is a named edge between two states. The same name may
// leave several states.
type WorkflowTransition struct {
	Name        string
	Description string
	From        WorkflowState
	To          WorkflowState
}
