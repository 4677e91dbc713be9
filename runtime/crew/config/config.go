// Package config loads crew agent and task definitions from YAML documents.
//
// Agents and tasks are declared in two files keyed by name:
//
//	# agents.yaml
//	flashcard_translator:
//	  role: Flashcard Translator
//	  goal: Translate flashcard text into {language}
//	  backstory: ...
//
//	# tasks.yaml
//	translation_task:
//	  description: Translate "{text}" into {language}.
//	  expected_output: A JSON object with a translation field.
//	  agent: flashcard_translator
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type (
	// Config holds the agent and task definitions of a crew.
	Config struct {
		Agents map[string]AgentConfig
		Tasks  map[string]TaskConfig
	}

	// AgentConfig describes an agent persona.
	AgentConfig struct {
		Role      string `yaml:"role"`
		Goal      string `yaml:"goal"`
		Backstory string `yaml:"backstory"`
		// LLM optionally overrides the model identifier of the default model
		// handle for this agent.
		LLM string `yaml:"llm"`
		// Temperature optionally overrides the sampling temperature.
		Temperature float32 `yaml:"temperature"`
		// MaxTokens optionally overrides the completion token cap.
		MaxTokens int `yaml:"max_tokens"`
	}

	// TaskConfig describes a unit of work.
	TaskConfig struct {
		Description    string `yaml:"description"`
		ExpectedOutput string `yaml:"expected_output"`
		// Agent names the agent assigned to the task.
		Agent string `yaml:"agent"`
	}
)

// Load reads agent and task definitions from fsys.
func Load(fsys fs.FS, agentsPath, tasksPath string) (*Config, error) {
	agents := make(map[string]AgentConfig)
	if err := decodeFile(fsys, agentsPath, &agents); err != nil {
		return nil, err
	}
	tasks := make(map[string]TaskConfig)
	if err := decodeFile(fsys, tasksPath, &tasks); err != nil {
		return nil, err
	}
	cfg := &Config{Agents: make(map[string]AgentConfig, len(agents)), Tasks: make(map[string]TaskConfig, len(tasks))}
	for name, a := range agents {
		a.Role = strings.TrimSpace(a.Role)
		a.Goal = strings.TrimSpace(a.Goal)
		a.Backstory = strings.TrimSpace(a.Backstory)
		a.LLM = strings.TrimSpace(a.LLM)
		if err := a.validate(); err != nil {
			return nil, fmt.Errorf("%s: agent %q: %w", agentsPath, name, err)
		}
		cfg.Agents[name] = a
	}
	for name, t := range tasks {
		t.Description = strings.TrimSpace(t.Description)
		t.ExpectedOutput = strings.TrimSpace(t.ExpectedOutput)
		t.Agent = strings.TrimSpace(t.Agent)
		if err := t.validate(); err != nil {
			return nil, fmt.Errorf("%s: task %q: %w", tasksPath, name, err)
		}
		cfg.Tasks[name] = t
	}
	return cfg, nil
}

// Agent returns the definition of the named agent.
func (c *Config) Agent(name string) (AgentConfig, error) {
	a, ok := c.Agents[name]
	if !ok {
		return AgentConfig{}, fmt.Errorf("agent %q not found (known: %s)", name, keys(c.Agents))
	}
	return a, nil
}

// Task returns the definition of the named task.
func (c *Config) Task(name string) (TaskConfig, error) {
	t, ok := c.Tasks[name]
	if !ok {
		return TaskConfig{}, fmt.Errorf("task %q not found (known: %s)", name, keys(c.Tasks))
	}
	return t, nil
}

func (a AgentConfig) validate() error {
	var errs []error
	if a.Role == "" {
		errs = append(errs, errors.New("role is required"))
	}
	if a.Goal == "" {
		errs = append(errs, errors.New("goal is required"))
	}
	if a.Backstory == "" {
		errs = append(errs, errors.New("backstory is required"))
	}
	if a.Temperature < 0 {
		errs = append(errs, errors.New("temperature must not be negative"))
	}
	if a.MaxTokens < 0 {
		errs = append(errs, errors.New("max_tokens must not be negative"))
	}
	return errors.Join(errs...)
}

func (t TaskConfig) validate() error {
	var errs []error
	if t.Description == "" {
		errs = append(errs, errors.New("description is required"))
	}
	if t.ExpectedOutput == "" {
		errs = append(errs, errors.New("expected_output is required"))
	}
	return errors.Join(errs...)
}

func decodeFile(fsys fs.FS, path string, v any) error {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func keys[V any](m map[string]V) string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
