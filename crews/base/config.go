// Package base holds the pieces shared by every crew: the provider settings
// read from the environment and the default model handle built from them.
package base

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Supported model providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderBedrock   = "bedrock"
)

type (
	// LLMConfig selects and configures the default model provider.
	LLMConfig struct {
		Provider    string
		Model       string
		Temperature float32
		MaxTokens   int
		// TPM and MaxTPM bound the adaptive tokens-per-minute limiter.
		TPM    float64
		MaxTPM float64

		OpenAI    OpenAIConfig
		Anthropic AnthropicConfig
		Bedrock   BedrockConfig
	}

	// OpenAIConfig holds OpenAI credentials. BaseURL targets OpenAI compatible
	// endpoints.
	OpenAIConfig struct {
		APIKey  string
		BaseURL string
	}

	// AnthropicConfig holds Anthropic credentials.
	AnthropicConfig struct {
		APIKey string
	}

	// BedrockConfig holds AWS settings for Bedrock.
	BedrockConfig struct {
		Region          string
		AccessKeyID     string
		SecretAccessKey string
		SessionToken    string
	}
)

var llmDefaults = map[string]any{
	"WORDPAN_LLM_PROVIDER":    ProviderOpenAI,
	"WORDPAN_LLM_MODEL":       "gpt-4o-mini",
	"WORDPAN_LLM_TEMPERATURE": 0.2,
	"WORDPAN_LLM_MAX_TOKENS":  1024,
	"WORDPAN_LLM_TPM":         60000,
	"WORDPAN_LLM_MAX_TPM":     0,
	"OPENAI_API_KEY":          "",
	"OPENAI_BASE_URL":         "",
	"ANTHROPIC_API_KEY":       "",
	"AWS_REGION":              "us-east-1",
	"AWS_ACCESS_KEY_ID":       "",
	"AWS_SECRET_ACCESS_KEY":   "",
	"AWS_SESSION_TOKEN":       "",
}

// LoadLLMConfig reads the provider settings from the environment.
func LoadLLMConfig() (*LLMConfig, error) {
	v := viper.New()
	v.AutomaticEnv()
	return loadLLMConfig(v)
}

func loadLLMConfig(v *viper.Viper) (*LLMConfig, error) {
	for k, d := range llmDefaults {
		v.SetDefault(k, d)
	}
	cfg := &LLMConfig{
		Provider:    strings.ToLower(strings.TrimSpace(v.GetString("WORDPAN_LLM_PROVIDER"))),
		Model:       strings.TrimSpace(v.GetString("WORDPAN_LLM_MODEL")),
		Temperature: float32(v.GetFloat64("WORDPAN_LLM_TEMPERATURE")),
		MaxTokens:   v.GetInt("WORDPAN_LLM_MAX_TOKENS"),
		TPM:         v.GetFloat64("WORDPAN_LLM_TPM"),
		MaxTPM:      v.GetFloat64("WORDPAN_LLM_MAX_TPM"),
		OpenAI: OpenAIConfig{
			APIKey:  v.GetString("OPENAI_API_KEY"),
			BaseURL: v.GetString("OPENAI_BASE_URL"),
		},
		Anthropic: AnthropicConfig{
			APIKey: v.GetString("ANTHROPIC_API_KEY"),
		},
		Bedrock: BedrockConfig{
			Region:          v.GetString("AWS_REGION"),
			AccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    v.GetString("AWS_SESSION_TOKEN"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected provider is fully configured.
func (c *LLMConfig) Validate() error {
	var errs []error
	if c.Model == "" {
		errs = append(errs, errors.New("WORDPAN_LLM_MODEL is required"))
	}
	if c.Temperature < 0 {
		errs = append(errs, fmt.Errorf("WORDPAN_LLM_TEMPERATURE must not be negative, got %v", c.Temperature))
	}
	if c.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("WORDPAN_LLM_MAX_TOKENS must not be negative, got %d", c.MaxTokens))
	}
	if c.TPM < 0 || c.MaxTPM < 0 {
		errs = append(errs, errors.New("WORDPAN_LLM_TPM and WORDPAN_LLM_MAX_TPM must not be negative"))
	}
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required"))
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			errs = append(errs, errors.New("ANTHROPIC_API_KEY is required"))
		}
	case ProviderBedrock:
		if c.Bedrock.Region == "" {
			errs = append(errs, errors.New("AWS_REGION is required"))
		}
		if c.Bedrock.AccessKeyID == "" || c.Bedrock.SecretAccessKey == "" {
			errs = append(errs, errors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported WORDPAN_LLM_PROVIDER %q", c.Provider))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("llm config: %w", err)
	}
	return nil
}
