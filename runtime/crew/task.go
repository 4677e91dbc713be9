package crew

import (
	"errors"
	"fmt"

	"github.com/vmakoed/wordpan/runtime/agent/model"
	"github.com/vmakoed/wordpan/runtime/crew/config"
)

type (
	// Task is a unit of work assigned to an agent.
	Task struct {
		// Name is the configuration key of the task.
		Name string
		// Description and ExpectedOutput are rendered into the prompt. They may
		// contain {placeholders} interpolated from kickoff inputs.
		Description    string
		ExpectedOutput string
		// Agent runs the task.
		Agent *Agent
		// Output, when set, is the schema the task result must satisfy.
		Output *OutputSchema
	}

	// TaskOutput is the result of running a task.
	TaskOutput struct {
		// Task is the task name.
		Task string
		// Agent is the name of the agent that ran the task.
		Agent string
		// Raw is the text produced by the model.
		Raw string
		// JSON is the validated output document. Nil when the task has no
		// output schema.
		JSON map[string]any
		// Usage reports the tokens consumed by the task.
		Usage model.TokenUsage
	}
)

// NewTask builds the named task from its configuration. When the
// configuration names an agent it must be agent.
func NewTask(name string, cfg config.TaskConfig, agent *Agent, output *OutputSchema) (*Task, error) {
	if name == "" {
		return nil, errors.New("crew: task name is required")
	}
	if agent == nil {
		return nil, fmt.Errorf("crew: task %q: agent is required", name)
	}
	if cfg.Agent != "" && cfg.Agent != agent.Name {
		return nil, fmt.Errorf("crew: task %q is configured for agent %q, got %q", name, cfg.Agent, agent.Name)
	}
	return &Task{
		Name:           name,
		Description:    cfg.Description,
		ExpectedOutput: cfg.ExpectedOutput,
		Agent:          agent,
		Output:         output,
	}, nil
}
