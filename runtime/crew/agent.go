// Package crew runs named collections of agents and tasks. An Agent is a
// persona bound to a model client, a Task is a unit of work assigned to an
// agent with an optional output schema, and a Crew executes its tasks under a
// Process. Crews are configuration driven: agents and tasks are typically
// built from the definitions in package config.
package crew

import (
	"errors"
	"fmt"

	"github.com/vmakoed/wordpan/runtime/agent/model"
	"github.com/vmakoed/wordpan/runtime/crew/config"
)

// Agent is a configured persona that invokes a language model.
type Agent struct {
	// Name is the configuration key of the agent.
	Name string
	// Role, Goal and Backstory make up the persona. They may contain
	// {placeholders} interpolated from kickoff inputs.
	Role      string
	Goal      string
	Backstory string
	// LLM is the model handle used to run the agent's tasks.
	LLM model.Client
	// Model overrides the model identifier of LLM when not empty.
	Model string
	// Temperature and MaxTokens override the client defaults when positive.
	Temperature float32
	MaxTokens   int
}

// NewAgent builds the named agent from its configuration and model handle.
func NewAgent(name string, cfg config.AgentConfig, llm model.Client) (*Agent, error) {
	if name == "" {
		return nil, errors.New("crew: agent name is required")
	}
	if llm == nil {
		return nil, fmt.Errorf("crew: agent %q: llm is required", name)
	}
	return &Agent{
		Name:        name,
		Role:        cfg.Role,
		Goal:        cfg.Goal,
		Backstory:   cfg.Backstory,
		LLM:         llm,
		Model:       cfg.LLM,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}, nil
}
