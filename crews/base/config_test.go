package base

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLLMConfigDefaults(t *testing.T) {
	v := viper.New()
	v.Set("OPENAI_API_KEY", "sk-test")

	cfg, err := loadLLMConfig(v)
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.InDelta(t, 0.2, cfg.Temperature, 1e-6)
	assert.Equal(t, 1024, cfg.MaxTokens)
	assert.Equal(t, 60000.0, cfg.TPM)
	assert.Zero(t, cfg.MaxTPM)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
}

func TestLoadLLMConfigFromEnv(t *testing.T) {
	t.Setenv("WORDPAN_LLM_PROVIDER", " Anthropic ")
	t.Setenv("WORDPAN_LLM_MODEL", "claude-sonnet-4-5")
	t.Setenv("WORDPAN_LLM_TEMPERATURE", "0.7")
	t.Setenv("WORDPAN_LLM_MAX_TOKENS", "512")
	t.Setenv("WORDPAN_LLM_TPM", "30000")
	t.Setenv("ANTHROPIC_API_KEY", "ak-test")

	cfg, err := LoadLLMConfig()
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "claude-sonnet-4-5", cfg.Model)
	assert.InDelta(t, 0.7, cfg.Temperature, 1e-6)
	assert.Equal(t, 512, cfg.MaxTokens)
	assert.Equal(t, 30000.0, cfg.TPM)
	assert.Equal(t, "ak-test", cfg.Anthropic.APIKey)
}

func TestLLMConfigValidate(t *testing.T) {
	cases := map[string]struct {
		cfg  LLMConfig
		want string
	}{
		"missing openai key":   {cfg: LLMConfig{Provider: ProviderOpenAI, Model: "m"}, want: "OPENAI_API_KEY is required"},
		"missing anthropic":    {cfg: LLMConfig{Provider: ProviderAnthropic, Model: "m"}, want: "ANTHROPIC_API_KEY is required"},
		"missing aws keys":     {cfg: LLMConfig{Provider: ProviderBedrock, Model: "m", Bedrock: BedrockConfig{Region: "us-east-1"}}, want: "AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are required"},
		"unsupported provider": {cfg: LLMConfig{Provider: "gemini", Model: "m"}, want: `unsupported WORDPAN_LLM_PROVIDER "gemini"`},
		"missing model":        {cfg: LLMConfig{Provider: ProviderOpenAI, OpenAI: OpenAIConfig{APIKey: "k"}}, want: "WORDPAN_LLM_MODEL is required"},
		"negative tokens":      {cfg: LLMConfig{Provider: ProviderOpenAI, Model: "m", MaxTokens: -1, OpenAI: OpenAIConfig{APIKey: "k"}}, want: "WORDPAN_LLM_MAX_TOKENS must not be negative"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			err := c.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.want)
		})
	}
}

func TestDefaultLLM(t *testing.T) {
	ctx := context.Background()
	for _, cfg := range []*LLMConfig{
		{Provider: ProviderOpenAI, Model: "gpt-4o-mini", MaxTokens: 256, OpenAI: OpenAIConfig{APIKey: "sk-test"}},
		{Provider: ProviderAnthropic, Model: "claude-sonnet-4-5", MaxTokens: 256, Anthropic: AnthropicConfig{APIKey: "ak-test"}},
		{Provider: ProviderBedrock, Model: "anthropic.claude-3-haiku", Bedrock: BedrockConfig{Region: "us-east-1", AccessKeyID: "a", SecretAccessKey: "b"}},
	} {
		llm, err := DefaultLLM(ctx, cfg, LLMOptions{})
		require.NoError(t, err, cfg.Provider)
		assert.NotNil(t, llm, cfg.Provider)
	}

	_, err := DefaultLLM(ctx, nil, LLMOptions{})
	assert.Error(t, err)
	_, err = DefaultLLM(ctx, &LLMConfig{Provider: "gemini", Model: "m"}, LLMOptions{})
	assert.Error(t, err)
}
