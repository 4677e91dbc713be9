// Package translateflashcard implements the flashcard translation crew: a
// single translator agent running one task whose output must be a JSON object
// with a required "translation" string.
package translateflashcard

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/vmakoed/wordpan/runtime/agent/model"
	"github.com/vmakoed/wordpan/runtime/agent/telemetry"
	"github.com/vmakoed/wordpan/runtime/crew"
	"github.com/vmakoed/wordpan/runtime/crew/config"
)

const (
	// CrewName identifies the crew in logs and telemetry.
	CrewName = "translate_flashcard"
	// AgentName is the configuration key of the translator agent.
	AgentName = "flashcard_translator"
	// TaskName is the configuration key of the translation task.
	TaskName = "translation_task"
)

//go:embed config/*.yaml
var configFS embed.FS

type (
	// Options configures the crew telemetry. Nil fields default to no-ops.
	Options struct {
		Logger  telemetry.Logger
		Metrics telemetry.Metrics
		Tracer  telemetry.Tracer
	}

	// Crew translates flashcard text.
	Crew struct {
		crew *crew.Crew
	}
)

// LoadConfig returns the embedded agent and task definitions.
func LoadConfig() (*config.Config, error) {
	return config.Load(configFS, "config/agents.yaml", "config/tasks.yaml")
}

// New builds the translation crew on top of llm, typically the handle returned
// by base.DefaultLLM.
func New(llm model.Client, opts Options) (*Crew, error) {
	if llm == nil {
		return nil, errors.New("translateflashcard: llm is required")
	}
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("translateflashcard: %w", err)
	}
	ac, err := cfg.Agent(AgentName)
	if err != nil {
		return nil, fmt.Errorf("translateflashcard: %w", err)
	}
	translator, err := crew.NewAgent(AgentName, ac, llm)
	if err != nil {
		return nil, err
	}
	tc, err := cfg.Task(TaskName)
	if err != nil {
		return nil, fmt.Errorf("translateflashcard: %w", err)
	}
	task, err := crew.NewTask(TaskName, tc, translator, TranslationSchema)
	if err != nil {
		return nil, err
	}
	c, err := crew.New(crew.Options{
		Name:    CrewName,
		Agents:  []*crew.Agent{translator},
		Tasks:   []*crew.Task{task},
		Process: crew.ProcessSequential,
		Logger:  opts.Logger,
		Metrics: opts.Metrics,
		Tracer:  opts.Tracer,
	})
	if err != nil {
		return nil, err
	}
	return &Crew{crew: c}, nil
}

// Translate translates text into language. language is free form, typically
// a language code or name. A model output that does not match
// TranslationSchema yields a *crew.ValidationError.
func (c *Crew) Translate(ctx context.Context, text, language string) (*TranslationOutput, error) {
	out, err := c.crew.Kickoff(ctx, map[string]string{"text": text, "language": language})
	if err != nil {
		return nil, err
	}
	return crew.Decode[TranslationOutput](out.Tasks[len(out.Tasks)-1])
}
