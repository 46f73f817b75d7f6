package runtimeconfig

// WorkflowDefinitionConfig declares a lifecycle for one entity type.
type WorkflowDefinitionConfig struct {
	Entity      string
	States      []WorkflowStateConfig
	Transitions []WorkflowTransitionConfig
}

// WorkflowStateConfig declares a single lifecycle state.
type WorkflowStateConfig struct {
	Name        string
	Description string
	Terminal    bool
	Initial     bool
}

// WorkflowTransitionConfig declares an allowed move between two states.
type WorkflowTransitionConfig struct {
	Name        string
	Description string
	From        string
	To          string
}
