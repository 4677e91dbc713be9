package crew

import (
	"fmt"
	"strings"

	"github.com/vmakoed/wordpan/runtime/agent/model"
)

// renderedTask is a task with its agent persona interpolated for one kickoff.
type renderedTask struct {
	task           *Task
	role           string
	goal           string
	backstory      string
	description    string
	expectedOutput string
}

func renderTask(t *Task, inputs map[string]string, missing map[string]struct{}) renderedTask {
	return renderedTask{
		task:           t,
		role:           interpolate(t.Agent.Role, inputs, missing),
		goal:           interpolate(t.Agent.Goal, inputs, missing),
		backstory:      interpolate(t.Agent.Backstory, inputs, missing),
		description:    interpolate(t.Description, inputs, missing),
		expectedOutput: interpolate(t.ExpectedOutput, inputs, missing),
	}
}

// request builds the model request for rt. prior holds the outputs of the
// tasks already run in this kickoff.
func (rt renderedTask) request(prior []*TaskOutput) *model.Request {
	a := rt.task.Agent
	req := &model.Request{
		Model:       a.Model,
		Temperature: a.Temperature,
		MaxTokens:   a.MaxTokens,
		Messages: []*model.Message{
			{Role: model.ConversationRoleSystem, Content: rt.systemPrompt()},
			{Role: model.ConversationRoleUser, Content: rt.userPrompt(prior)},
		},
	}
	if rt.task.Output != nil {
		req.Output = rt.task.Output.Format()
	}
	return req
}

func (rt renderedTask) systemPrompt() string {
	return fmt.Sprintf("You are %s. %s\nYour personal goal is: %s", rt.role, rt.backstory, rt.goal)
}

func (rt renderedTask) userPrompt(prior []*TaskOutput) string {
	var b strings.Builder
	b.WriteString("Current Task: ")
	b.WriteString(rt.description)
	if len(prior) > 0 {
		b.WriteString("\n\nThis is the context you're working with:\n")
		for i, out := range prior {
			if i > 0 {
				b.WriteString("\n\n----------\n\n")
			}
			b.WriteString(out.Raw)
		}
	}
	b.WriteString("\n\nThis is the expected criteria for your final answer: ")
	b.WriteString(rt.expectedOutput)
	if s := rt.task.Output; s != nil {
		b.WriteString("\n\nYour final answer must be a single JSON object, with no surrounding text, that satisfies this JSON Schema:\n")
		b.Write(s.JSON())
	}
	b.WriteString("\n\nBegin! This is VERY important to you, give your best final answer.")
	return b.String()
}
