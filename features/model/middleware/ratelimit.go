// Package middleware provides model.Client middlewares. The adaptive limiter
// keeps provider calls under a tokens-per-minute budget and shrinks that
// budget when the provider starts throttling.
package middleware

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"goa.design/pulse/rmap"
	"golang.org/x/time/rate"

	"github.com/vmakoed/wordpan/runtime/agent/model"
	"github.com/vmakoed/wordpan/runtime/agent/telemetry"
)

const (
	// DefaultTPM is the budget used when Options.TPM is not positive.
	DefaultTPM = 60000

	// promptOverhead accounts for provider framing around the messages.
	promptOverhead = 500

	clusterUpdateTimeout  = 2 * time.Second
	clusterUpdateAttempts = 3
)

type (
	// Options configures a Limiter.
	Options struct {
		// TPM is the initial tokens-per-minute budget. Defaults to DefaultTPM.
		TPM float64
		// MaxTPM caps the budget reached by recovery. Values below TPM are
		// clamped to TPM.
		MaxTPM float64
		// Cluster, when set together with Key, shares the budget across
		// processes through a Pulse replicated map.
		Cluster *rmap.Map
		// Key names the budget entry in Cluster, typically the model id.
		Key string
		// Logger reports budget adjustments. Defaults to a no-op logger.
		Logger telemetry.Logger
	}

	// Limiter applies an AIMD token bucket on top of a model.Client. It
	// estimates the token cost of each request, blocks callers until capacity
	// is available, halves its budget when the provider reports
	// model.ErrRateLimited and recovers it linearly on success.
	//
	// Create one Limiter per provider budget and wrap the client with Wrap
	// before handing it to crews.
	Limiter struct {
		mu      sync.Mutex
		bucket  *rate.Limiter
		tpm     float64
		minTPM  float64
		maxTPM  float64
		step    float64
		logger  telemetry.Logger
		onShift func(shrink bool)
	}

	limitedClient struct {
		next    model.Client
		limiter *Limiter
	}

	// clusterMap is the subset of rmap.Map used to share the budget.
	clusterMap interface {
		Get(key string) (string, bool)
		SetIfNotExists(ctx context.Context, key, value string) (bool, error)
		TestAndSet(ctx context.Context, key, test, value string) (string, error)
		Subscribe() <-chan rmap.EventKind
	}
)

// New returns a limiter configured by opts. When opts.Cluster is set the
// budget is seeded in and reconciled with the shared map until ctx is done.
func New(ctx context.Context, opts Options) *Limiter {
	var cm clusterMap
	if opts.Cluster != nil {
		cm = opts.Cluster
	}
	return newLimiter(ctx, cm, opts)
}

func newLimiter(ctx context.Context, cm clusterMap, opts Options) *Limiter {
	tpm := opts.TPM
	if tpm <= 0 {
		tpm = DefaultTPM
	}
	if cm == nil || opts.Key == "" {
		return newLocalLimiter(tpm, opts.MaxTPM, opts.Logger)
	}
	if _, ok := cm.Get(opts.Key); !ok {
		if _, err := cm.SetIfNotExists(ctx, opts.Key, formatTPM(tpm)); err != nil {
			l := newLocalLimiter(tpm, opts.MaxTPM, opts.Logger)
			l.logger.Warn(ctx, "rate limiter running process-local", "key", opts.Key, "err", err)
			return l
		}
	}
	shared := tpm
	if v, ok := parseTPM(cm.Get(opts.Key)); ok {
		shared = v
	}
	maxTPM := opts.MaxTPM
	if maxTPM < tpm {
		maxTPM = tpm
	}
	l := newLocalLimiter(shared, maxTPM, opts.Logger)
	floor, ceiling, step := l.minTPM, l.maxTPM, l.step
	l.onShift = func(shrink bool) {
		if shrink {
			go updateShared(cm, opts.Key, func(cur float64) float64 { return max(cur*0.5, floor) })
			return
		}
		go updateShared(cm, opts.Key, func(cur float64) float64 { return min(cur+step, ceiling) })
	}
	ch := cm.Subscribe()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				if v, ok := parseTPM(cm.Get(opts.Key)); ok {
					l.set(v)
				}
			}
		}
	}()
	return l
}

func newLocalLimiter(tpm, maxTPM float64, logger telemetry.Logger) *Limiter {
	if maxTPM < tpm {
		maxTPM = tpm
	}
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	return &Limiter{
		bucket: rate.NewLimiter(rate.Limit(tpm/60.0), int(tpm)),
		tpm:    tpm,
		minTPM: max(tpm*0.1, 1),
		maxTPM: maxTPM,
		step:   max(tpm*0.05, 1),
		logger: logger,
	}
}

// Wrap returns next guarded by the limiter.
func (l *Limiter) Wrap(next model.Client) model.Client {
	if next == nil {
		return nil
	}
	return &limitedClient{next: next, limiter: l}
}

// TPM returns the current tokens-per-minute budget.
func (l *Limiter) TPM() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tpm
}

// Complete waits for capacity before delegating to the underlying client.
// A request estimated above the current burst reserves the whole burst so a
// shrunk budget never rejects it outright.
func (c *limitedClient) Complete(ctx context.Context, req *model.Request) (*model.Response, error) {
	n := min(estimateTokens(req), c.limiter.bucket.Burst())
	if err := c.limiter.bucket.WaitN(ctx, n); err != nil {
		return nil, err
	}
	resp, err := c.next.Complete(ctx, req)
	c.limiter.observe(ctx, err)
	return resp, err
}

func (l *Limiter) observe(ctx context.Context, err error) {
	switch {
	case err == nil:
		l.shift(ctx, false)
	case errors.Is(err, model.ErrRateLimited):
		l.shift(ctx, true)
	}
}

// shift halves the budget when shrink is set and adds one recovery step
// otherwise, within [minTPM, maxTPM].
func (l *Limiter) shift(ctx context.Context, shrink bool) {
	l.mu.Lock()
	next := min(l.tpm+l.step, l.maxTPM)
	if shrink {
		next = max(l.tpm*0.5, l.minTPM)
	}
	if next == l.tpm {
		l.mu.Unlock()
		return
	}
	l.apply(next)
	cb := l.onShift
	l.mu.Unlock()

	if shrink {
		l.logger.Warn(ctx, "rate limited, reducing token budget", "tpm", next)
	}
	if cb != nil {
		cb(shrink)
	}
}

// set replaces the budget with tpm clamped to [minTPM, maxTPM].
func (l *Limiter) set(tpm float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	tpm = min(max(tpm, l.minTPM), l.maxTPM)
	if tpm != l.tpm {
		l.apply(tpm)
	}
}

// apply must be called with l.mu held.
func (l *Limiter) apply(tpm float64) {
	l.tpm = tpm
	l.bucket.SetLimit(rate.Limit(tpm / 60.0))
	l.bucket.SetBurst(int(tpm))
}

// estimateTokens approximates the cost of req: one token per three characters
// of message content, the requested completion cap and a fixed overhead.
func estimateTokens(req *model.Request) int {
	if req == nil {
		return promptOverhead
	}
	chars := 0
	for _, m := range req.Messages {
		if m != nil {
			chars += len(m.Content)
		}
	}
	return chars/3 + max(req.MaxTokens, 0) + promptOverhead
}

// updateShared applies fn to the shared budget with optimistic concurrency.
func updateShared(m clusterMap, key string, fn func(float64) float64) {
	ctx, cancel := context.WithTimeout(context.Background(), clusterUpdateTimeout)
	defer cancel()
	for range clusterUpdateAttempts {
		curStr, ok := m.Get(key)
		if !ok {
			return
		}
		cur, ok := parseTPM(curStr, true)
		if !ok {
			return
		}
		next := fn(cur)
		if next == cur {
			return
		}
		prev, err := m.TestAndSet(ctx, key, curStr, formatTPM(next))
		if err != nil || prev == curStr {
			return
		}
	}
}

func formatTPM(v float64) string { return strconv.Itoa(int(v)) }

func parseTPM(s string, ok bool) (float64, bool) {
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
