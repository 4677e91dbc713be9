// Package openai provides a model.Client implementation backed by the OpenAI
// Chat Completions API. It translates crew requests into ChatCompletion calls
// using github.com/openai/openai-go and maps responses back to the generic
// model structures. Output formats are forwarded as json_schema response
// formats so compatible models decode against the task schema.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/vmakoed/wordpan/runtime/agent/model"
)

const providerName = "openai"

// ChatClient captures the subset of the openai-go client used by the adapter.
// It is satisfied by *openai.ChatCompletionService.
type ChatClient interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Options configures the OpenAI adapter.
type Options struct {
	// Client is the chat completions service, typically &client.Chat.Completions.
	Client ChatClient
	// DefaultModel is used when model.Request.Model is empty.
	DefaultModel string
	// Temperature is used when a request does not specify Temperature.
	Temperature float32
	// MaxTokens is used when a request does not specify MaxTokens.
	MaxTokens int
}

// Client implements model.Client via the OpenAI Chat Completions API.
type Client struct {
	chat   ChatClient
	model  string
	temp   float32
	maxTok int
}

// New builds an OpenAI-backed model client from the provided options.
func New(opts Options) (*Client, error) {
	if opts.Client == nil {
		return nil, errors.New("openai client is required")
	}
	if opts.DefaultModel == "" {
		return nil, errors.New("default model is required")
	}
	return &Client{chat: opts.Client, model: opts.DefaultModel, temp: opts.Temperature, maxTok: opts.MaxTokens}, nil
}

// NewFromAPIKey constructs a client using the default openai-go HTTP client.
// baseURL optionally targets an OpenAI compatible endpoint.
func NewFromAPIKey(apiKey, baseURL string, opts Options) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("api key is required")
	}
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	oc := openai.NewClient(reqOpts...)
	opts.Client = &oc.Chat.Completions
	return New(opts)
}

// Complete renders a chat completion using the configured OpenAI client.
func (c *Client) Complete(ctx context.Context, req *model.Request) (*model.Response, error) {
	params, err := c.prepareRequest(req)
	if err != nil {
		return nil, err
	}
	resp, err := c.chat.New(ctx, params)
	if err != nil {
		return nil, classifyError(err)
	}
	return translateResponse(resp)
}

func (c *Client) prepareRequest(req *model.Request) (openai.ChatCompletionNewParams, error) {
	if req == nil || len(req.Messages) == 0 {
		return openai.ChatCompletionNewParams{}, errors.New("openai: messages are required")
	}
	modelID := req.Model
	if modelID == "" {
		modelID = c.model
	}
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, m := range req.Messages {
		if m == nil {
			continue
		}
		switch m.Role {
		case model.ConversationRoleSystem:
			messages = append(messages, openai.SystemMessage(m.Content))
		case model.ConversationRoleUser:
			messages = append(messages, openai.UserMessage(m.Content))
		case model.ConversationRoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			return openai.ChatCompletionNewParams{}, fmt.Errorf("openai: unsupported message role %q", m.Role)
		}
	}
	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(modelID),
		Messages: messages,
	}
	temp := req.Temperature
	if temp <= 0 {
		temp = c.temp
	}
	if temp > 0 {
		params.Temperature = openai.Float(float64(temp))
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTok
	}
	if maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(maxTokens))
	}
	if f := req.Output; f != nil && len(f.Schema) > 0 {
		schema := shared.ResponseFormatJSONSchemaJSONSchemaParam{
			Name:   f.Name,
			Schema: f.Schema,
		}
		if f.Description != "" {
			schema.Description = openai.String(f.Description)
		}
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{JSONSchema: schema},
		}
	}
	return params, nil
}

func translateResponse(resp *openai.ChatCompletion) (*model.Response, error) {
	if resp == nil {
		return nil, errors.New("openai: response is nil")
	}
	out := &model.Response{
		Usage: model.TokenUsage{
			Model:        resp.Model,
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:  int(resp.Usage.TotalTokens),
		},
	}
	for _, choice := range resp.Choices {
		if choice.Message.Content == "" {
			continue
		}
		out.Content = append(out.Content, model.Message{Role: model.ConversationRoleAssistant, Content: choice.Message.Content})
	}
	if len(resp.Choices) > 0 {
		out.StopReason = string(resp.Choices[0].FinishReason)
		if out.Content == nil && resp.Choices[0].Message.Refusal != "" {
			return nil, model.NewProviderError(providerName, "chat.completions", 0, model.ProviderErrorKindInvalidRequest,
				"refusal", resp.Choices[0].Message.Refusal, false, nil)
		}
	}
	return out, nil
}

// classifyError converts openai-go API errors into model.ProviderError so
// rate limits surface as model.ErrRateLimited.
func classifyError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		kind, retryable := model.ClassifyStatus(apiErr.StatusCode)
		return model.NewProviderError(providerName, "chat.completions", apiErr.StatusCode, kind, apiErr.Code, apiErr.Message, retryable, err)
	}
	return model.NewProviderError(providerName, "chat.completions", 0, model.ProviderErrorKindUnavailable, "", "", true, err)
}
