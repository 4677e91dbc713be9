package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/vmakoed/wordpan/runtime/agent/model"
	"github.com/vmakoed/wordpan/runtime/agent/telemetry"
)

// Observe logs and measures every completion under the provider tag. Nil
// logger and metrics default to no-ops.
func Observe(provider string, logger telemetry.Logger, metrics telemetry.Metrics) Middleware {
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, req *model.Request) (*model.Response, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			elapsed := time.Since(start)
			metrics.RecordTimer("model.complete.duration", elapsed, "provider", provider)
			if err != nil {
				kind := errorKind(err)
				metrics.IncCounter("model.complete.errors", 1, "provider", provider, "kind", kind)
				logger.Warn(ctx, "model call failed", "provider", provider, "kind", kind, "duration_ms", elapsed.Milliseconds(), "err", err)
				return nil, err
			}
			if resp != nil {
				metrics.IncCounter("model.tokens", float64(resp.Usage.TotalTokens), "provider", provider)
				logger.Debug(ctx, "model call completed",
					"provider", provider,
					"model", resp.Usage.Model,
					"input_tokens", resp.Usage.InputTokens,
					"output_tokens", resp.Usage.OutputTokens,
					"stop_reason", resp.StopReason,
					"duration_ms", elapsed.Milliseconds())
			}
			return resp, nil
		}
	}
}

func errorKind(err error) string {
	if pe, ok := model.AsProviderError(err); ok {
		return string(pe.Kind())
	}
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}
	return string(model.ProviderErrorKindUnknown)
}
