// Package model provides interfaces for LLM clients used by crews.
// It defines a provider-agnostic abstraction over chat completion APIs
// (OpenAI, Bedrock, Anthropic) so agents can invoke models without coupling to
// specific SDKs. Implementations translate these normalized types into
// provider-specific formats.
package model

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

type (
	// Client defines the contract agents use to invoke LLM calls. Implementations
	// wrap provider SDKs and translate Request/Response to provider-specific
	// formats. Clients must be safe for concurrent use.
	Client interface {
		// Complete sends a chat completion request to the model provider and
		// returns the generated response. Returns an error if the model is
		// unavailable, quota is exceeded, or the request is malformed.
		Complete(ctx context.Context, req *Request) (*Response, error)
	}

	// Request captures the normalized parameters for a model invocation. Fields
	// map to common provider parameters but may not be supported by all
	// backends.
	Request struct {
		// Model identifies the target model using the provider-specific
		// identifier (e.g., "gpt-4o-mini", "claude-sonnet-4-5"). Empty selects
		// the client default.
		Model string

		// Messages is the ordered chat history provided to the model, including
		// system prompts and user inputs.
		Messages []*Message

		// Temperature controls sampling temperature. Zero selects the client
		// default.
		Temperature float32

		// MaxTokens caps the number of completion tokens. Zero selects the
		// client default.
		MaxTokens int

		// Output optionally describes the JSON document the model must produce.
		// Providers with native structured output support use it to constrain
		// decoding; others rely on the prompt alone.
		Output *OutputFormat
	}

	// OutputFormat names a JSON Schema the model output must satisfy.
	OutputFormat struct {
		// Name is a short identifier for the schema (e.g., "translation_output").
		Name string
		// Description documents the expected document.
		Description string
		// Schema is the JSON Schema document.
		Schema json.RawMessage
	}

	// Response wraps the generated content returned by the model provider.
	Response struct {
		// Content contains the assistant messages returned by the model.
		Content []Message

		// Usage reports token usage when available.
		Usage TokenUsage

		// StopReason explains why the model stopped generating. Values are
		// provider-specific and may be empty.
		StopReason string
	}

	// Message mirrors an LLM chat message with role and content.
	Message struct {
		// Role indicates the message role.
		Role ConversationRole

		// Content is the message text.
		Content string
	}

	// ConversationRole is the role of a message author.
	ConversationRole string

	// TokenUsage records prompt/completion token counts when provided by the
	// model provider. All fields are zero if the provider doesn't report usage.
	TokenUsage struct {
		// Model is the concrete model identifier that produced the usage.
		Model string
		// InputTokens counts tokens consumed by the prompt.
		InputTokens int
		// OutputTokens counts tokens produced by the model.
		OutputTokens int
		// TotalTokens reports the aggregate tokens consumed.
		TotalTokens int
	}
)

const (
	// ConversationRoleSystem is the role of instruction messages.
	ConversationRoleSystem ConversationRole = "system"
	// ConversationRoleUser is the role of end-user input.
	ConversationRoleUser ConversationRole = "user"
	// ConversationRoleAssistant is the role of model responses.
	ConversationRoleAssistant ConversationRole = "assistant"
)

// ErrRateLimited indicates the provider throttled the request. Clients wrap
// provider errors with it so middlewares can adapt their budget.
var ErrRateLimited = errors.New("model: rate limited")

// Text returns the concatenated text of all assistant messages in r.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	for _, m := range r.Content {
		b.WriteString(m.Content)
	}
	return b.String()
}

// Add returns the sum of u and o. The model of u is kept unless empty.
func (u TokenUsage) Add(o TokenUsage) TokenUsage {
	m := u.Model
	if m == "" {
		m = o.Model
	}
	return TokenUsage{
		Model:        m,
		InputTokens:  u.InputTokens + o.InputTokens,
		OutputTokens: u.OutputTokens + o.OutputTokens,
		TotalTokens:  u.TotalTokens + o.TotalTokens,
	}
}
