package base

import (
	"context"
	"errors"
	"fmt"

	"goa.design/pulse/rmap"

	"github.com/vmakoed/wordpan/features/model/anthropic"
	"github.com/vmakoed/wordpan/features/model/bedrock"
	"github.com/vmakoed/wordpan/features/model/middleware"
	"github.com/vmakoed/wordpan/features/model/openai"
	"github.com/vmakoed/wordpan/runtime/agent/model"
	"github.com/vmakoed/wordpan/runtime/agent/telemetry"
)

// LLMOptions carries the optional collaborators of DefaultLLM.
type LLMOptions struct {
	// Cluster shares the tokens-per-minute budget with other processes under
	// the provider and model name. Nil keeps the budget process local.
	Cluster *rmap.Map
	// Logger and Metrics observe every model call. Nil values are no-ops.
	Logger  telemetry.Logger
	Metrics telemetry.Metrics
}

// DefaultLLM builds the model handle shared by crews: the configured provider
// adapter observed by Logger and Metrics and guarded by the adaptive rate
// limiter.
func DefaultLLM(ctx context.Context, cfg *LLMConfig, opts LLMOptions) (model.Client, error) {
	if cfg == nil {
		return nil, errors.New("llm config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := newProviderClient(cfg, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("%s client: %w", cfg.Provider, err)
	}
	limiter := middleware.New(ctx, middleware.Options{
		TPM:     cfg.TPM,
		MaxTPM:  cfg.MaxTPM,
		Cluster: opts.Cluster,
		Key:     cfg.Provider + ":" + cfg.Model,
		Logger:  opts.Logger,
	})
	return middleware.Chain(client,
		middleware.Observe(cfg.Provider, opts.Logger, opts.Metrics),
		limiter.Middleware())
}

func newProviderClient(cfg *LLMConfig, logger telemetry.Logger) (model.Client, error) {
	switch cfg.Provider {
	case ProviderOpenAI:
		c, err := openai.NewFromAPIKey(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, openai.Options{
			DefaultModel: cfg.Model,
			Temperature:  cfg.Temperature,
			MaxTokens:    cfg.MaxTokens,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case ProviderAnthropic:
		c, err := anthropic.NewFromAPIKey(cfg.Anthropic.APIKey, anthropic.Options{
			DefaultModel: cfg.Model,
			Temperature:  float64(cfg.Temperature),
			MaxTokens:    cfg.MaxTokens,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case ProviderBedrock:
		rt, err := bedrock.NewRuntime(cfg.Bedrock.Region, bedrock.StaticCredentials{
			AccessKeyID:     cfg.Bedrock.AccessKeyID,
			SecretAccessKey: cfg.Bedrock.SecretAccessKey,
			SessionToken:    cfg.Bedrock.SessionToken,
		})
		if err != nil {
			return nil, err
		}
		c, err := bedrock.New(bedrock.Options{
			Runtime:      rt,
			DefaultModel: cfg.Model,
			Temperature:  cfg.Temperature,
			MaxTokens:    cfg.MaxTokens,
			Logger:       logger,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
}
