package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const agentsYAML = `
flashcard_translator:
  role: >
    Flashcard Translator
  goal: >
    Translate into {language}
  backstory: >
    A linguist.
  temperature: 0.1
`

const tasksYAML = `
translation_task:
  description: >
    Translate "{text}".
  expected_output: >
    A JSON object.
  agent: flashcard_translator
`

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"config/agents.yaml": {Data: []byte(agentsYAML)},
		"config/tasks.yaml":  {Data: []byte(tasksYAML)},
	}
	cfg, err := Load(fsys, "config/agents.yaml", "config/tasks.yaml")
	require.NoError(t, err)

	a, err := cfg.Agent("flashcard_translator")
	require.NoError(t, err)
	assert.Equal(t, "Flashcard Translator", a.Role)
	assert.Equal(t, "Translate into {language}", a.Goal)
	assert.Equal(t, "A linguist.", a.Backstory)
	assert.InDelta(t, 0.1, a.Temperature, 1e-6)

	task, err := cfg.Task("translation_task")
	require.NoError(t, err)
	assert.Equal(t, `Translate "{text}".`, task.Description)
	assert.Equal(t, "A JSON object.", task.ExpectedOutput)
	assert.Equal(t, "flashcard_translator", task.Agent)
}

func TestLookupUnknownNames(t *testing.T) {
	cfg := &Config{
		Agents: map[string]AgentConfig{"b": {}, "a": {}},
		Tasks:  map[string]TaskConfig{},
	}
	_, err := cfg.Agent("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `agent "missing" not found (known: a, b)`)

	_, err = cfg.Task("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `task "missing" not found`)
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]struct {
		agents string
		tasks  string
		want   string
	}{
		"missing role": {
			agents: "a:\n  goal: g\n  backstory: b\n",
			tasks:  tasksYAML,
			want:   "role is required",
		},
		"missing expected output": {
			agents: agentsYAML,
			tasks:  "t:\n  description: d\n",
			want:   "expected_output is required",
		},
		"unknown field": {
			agents: "a:\n  role: r\n  goal: g\n  backstory: b\n  tools: [x]\n",
			tasks:  tasksYAML,
			want:   "field tools not found",
		},
		"negative max tokens": {
			agents: "a:\n  role: r\n  goal: g\n  backstory: b\n  max_tokens: -1\n",
			tasks:  tasksYAML,
			want:   "max_tokens must not be negative",
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"agents.yaml": {Data: []byte(c.agents)},
				"tasks.yaml":  {Data: []byte(c.tasks)},
			}
			_, err := Load(fsys, "agents.yaml", "tasks.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(fstest.MapFS{}, "agents.yaml", "tasks.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read agents.yaml")
}
