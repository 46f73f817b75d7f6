package workflow_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-microsite/internal/runtimeconfig"
	"github.com/goliatone/go-microsite/internal/workflow"
	"github.com/goliatone/go-microsite/internal/workflow/simple"
	"github.com/goliatone/go-microsite/pkg/interfaces"
)

func unpublishableWebsite() runtimeconfig.WorkflowDefinitionConfig {
	return runtimeconfig.WorkflowDefinitionConfig{
		Entity: "Website",
		States: []runtimeconfig.WorkflowStateConfig{
			{Name: "draft", Description: "Nothing loaded", Initial: true},
			{Name: "previewing"},
			{Name: "editing"},
			{Name: "publishing"},
			{Name: "published"},
			{Name: "error"},
		},
		Transitions: []runtimeconfig.WorkflowTransitionConfig{
			{Name: "load", From: "draft", To: "previewing"},
			{Name: "edit", From: "previewing", To: "editing"},
			{Name: "preview", From: "editing", To: "previewing"},
			{Name: "publish", From: "previewing", To: "publishing"},
			{Name: "publish", From: "editing", To: "publishing"},
			{Name: "succeed", From: "publishing", To: "published"},
			{Name: "fail", From: "publishing", To: "error"},
			{Name: "publish", From: "error", To: "publishing"},
			{Name: "unpublish", From: "Published", To: "editing"},
		},
	}
}

func TestCompileDefinitionConfigs_Success(t *testing.T) {
	defs, err := workflow.CompileDefinitionConfigs([]runtimeconfig.WorkflowDefinitionConfig{unpublishableWebsite()})
	if err != nil {
		t.Fatalf("CompileDefinitionConfigs returned error: %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("expected single definition, got %d", len(defs))
	}

	def := defs[0]
	if def.EntityType != simple.EntityTypeWebsite {
		t.Fatalf("expected entity 'website', got %q", def.EntityType)
	}
	if def.InitialState != simple.StateDraft {
		t.Fatalf("expected initial state 'draft', got %q", def.InitialState)
	}
	if len(def.States) != 6 {
		t.Fatalf("expected 6 states, got %d", len(def.States))
	}
	if len(def.Transitions) != 9 {
		t.Fatalf("expected 9 transitions, got %d", len(def.Transitions))
	}

	engine := simple.New()
	if err := engine.RegisterWorkflow(context.Background(), def); err != nil {
		t.Fatalf("register: %v", err)
	}
	res, err := engine.Transition(context.Background(), interfaces.TransitionInput{
		EntityID:     "web_1",
		EntityType:   simple.EntityTypeWebsite,
		CurrentState: simple.StatePublished,
		Transition:   "unpublish",
	})
	if err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if res.ToState != simple.StateEditing || res.Terminal {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestCompileDefinitionConfigs_DuplicateEntity(t *testing.T) {
	configs := []runtimeconfig.WorkflowDefinitionConfig{
		{Entity: "guestbook", States: []runtimeconfig.WorkflowStateConfig{{Name: "open"}}},
		{Entity: "Guestbook", States: []runtimeconfig.WorkflowStateConfig{{Name: "open"}}},
	}

	_, err := workflow.CompileDefinitionConfigs(configs)
	if !errors.Is(err, workflow.ErrDuplicateDefinition) {
		t.Fatalf("expected duplicate entity error, got %v", err)
	}
}

func TestCompileDefinitionConfigs_InvalidTransition(t *testing.T) {
	configs := []runtimeconfig.WorkflowDefinitionConfig{
		{
			Entity: "website",
			States: []runtimeconfig.WorkflowStateConfig{{Name: "draft"}},
			Transitions: []runtimeconfig.WorkflowTransitionConfig{
				{Name: "publish", From: "draft", To: "published"},
			},
		},
	}

	_, err := workflow.CompileDefinitionConfigs(configs)
	if !errors.Is(err, workflow.ErrTransitionStateUnknown) {
		t.Fatalf("expected unknown state error, got %v", err)
	}
}

func TestCompileDefinitionConfigs_WebsiteLifecycleMustKeepPublishTransitions(t *testing.T) {
	cfg := unpublishableWebsite()
	var trimmed []runtimeconfig.WorkflowTransitionConfig
	for _, transition := range cfg.Transitions {
		if transition.Name != "fail" {
			trimmed = append(trimmed, transition)
		}
	}
	cfg.Transitions = trimmed

	_, err := workflow.CompileDefinitionConfigs([]runtimeconfig.WorkflowDefinitionConfig{cfg})
	if !errors.Is(err, workflow.ErrLifecycleIncomplete) || !strings.Contains(err.Error(), "fail") {
		t.Fatalf("expected missing fail transition, got %v", err)
	}
}

func TestCompileDefinitionConfigs_RejectsTwoInitialStates(t *testing.T) {
	configs := []runtimeconfig.WorkflowDefinitionConfig{{
		Entity: "guestbook",
		States: []runtimeconfig.WorkflowStateConfig{{Name: "open", Initial: true}, {Name: "closed", Initial: true}},
	}}
	if _, err := workflow.CompileDefinitionConfigs(configs); !errors.Is(err, workflow.ErrInitialStateInvalid) {
		t.Fatalf("expected ErrInitialStateInvalid, got %v", err)
	}
}
