package middleware

import (
	"context"
	"errors"

	"github.com/vmakoed/wordpan/runtime/agent/model"
)

type (
	// Handler processes a single completion request. It implements model.Client
	// so a composed chain can be handed to crews directly.
	Handler func(ctx context.Context, req *model.Request) (*model.Response, error)

	// Middleware wraps a Handler to add behavior before, after or around the
	// call. Middleware receives the next handler in the chain and typically
	// calls it after performing setup.
	Middleware func(next Handler) Handler
)

// ErrClientRequired indicates that Chain was called without a client.
var ErrClientRequired = errors.New("model middleware: client is required")

// Complete invokes h.
func (h Handler) Complete(ctx context.Context, req *model.Request) (*model.Response, error) {
	return h(ctx, req)
}

// Chain wraps client with mws. Middleware are applied in the order given: the
// first one is the outermost layer and the client is the innermost.
func Chain(client model.Client, mws ...Middleware) (model.Client, error) {
	if client == nil {
		return nil, ErrClientRequired
	}
	h := Handler(client.Complete)
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			h = mws[i](h)
		}
	}
	return h, nil
}

// Middleware returns the limiter as a chain element.
func (l *Limiter) Middleware() Middleware {
	return func(next Handler) Handler {
		return (&limitedClient{next: next, limiter: l}).Complete
	}
}
