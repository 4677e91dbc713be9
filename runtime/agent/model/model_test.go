package model

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseText(t *testing.T) {
	var nilResp *Response
	assert.Empty(t, nilResp.Text())

	resp := &Response{Content: []Message{
		{Role: ConversationRoleAssistant, Content: `{"translation":`},
		{Role: ConversationRoleAssistant, Content: ` "hola"}`},
	}}
	assert.Equal(t, `{"translation": "hola"}`, resp.Text())
}

func TestTokenUsageAdd(t *testing.T) {
	a := TokenUsage{InputTokens: 10, OutputTokens: 2, TotalTokens: 12}
	b := TokenUsage{Model: "gpt-4o-mini", InputTokens: 5, OutputTokens: 1, TotalTokens: 6}

	sum := a.Add(b)
	assert.Equal(t, "gpt-4o-mini", sum.Model)
	assert.Equal(t, 15, sum.InputTokens)
	assert.Equal(t, 3, sum.OutputTokens)
	assert.Equal(t, 18, sum.TotalTokens)
}

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		status    int
		kind      ProviderErrorKind
		retryable bool
	}{
		{http.StatusBadRequest, ProviderErrorKindInvalidRequest, false},
		{http.StatusUnauthorized, ProviderErrorKindAuth, false},
		{http.StatusForbidden, ProviderErrorKindAuth, false},
		{http.StatusTooManyRequests, ProviderErrorKindRateLimited, true},
		{http.StatusBadGateway, ProviderErrorKindUnavailable, true},
		{0, ProviderErrorKindUnknown, false},
	}
	for _, c := range cases {
		kind, retryable := ClassifyStatus(c.status)
		assert.Equal(t, c.kind, kind, "status %d", c.status)
		assert.Equal(t, c.retryable, retryable, "status %d", c.status)
	}
}

func TestProviderErrorChain(t *testing.T) {
	cause := errors.New("boom")
	pe := NewProviderError("openai", "chat.completions", 429, ProviderErrorKindRateLimited, "rate_limit_exceeded", "slow down", true, cause)
	wrapped := errors.Join(errors.New("context"), pe)

	got, ok := AsProviderError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "openai", got.Provider())
	assert.Equal(t, 429, got.HTTPStatus())
	assert.True(t, got.Retryable())
	assert.ErrorIs(t, wrapped, ErrRateLimited)
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "openai rate_limited 429 (chat.completions): rate_limit_exceeded: slow down", pe.Error())

	other := NewProviderError("openai", "", 0, ProviderErrorKindUnknown, "", "", false, cause)
	assert.NotErrorIs(t, other, ErrRateLimited)
	assert.Equal(t, "openai unknown (request): boom", other.Error())
}

func TestNewProviderErrorRequiresProviderAndKind(t *testing.T) {
	assert.Panics(t, func() { NewProviderError("", "", 0, ProviderErrorKindUnknown, "", "", false, nil) })
	assert.Panics(t, func() { NewProviderError("openai", "", 0, "", "", "", false, nil) })
}
