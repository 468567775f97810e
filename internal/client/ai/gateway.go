package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/atscv/internal/logging"
)

const (
	MaxAttempts  = 3
	InitialDelay = time.Second

	DefaultModel = "gemini-2.5-pro"
)

// Request is a single call to the model. Schema is nil in free-text mode.
type Request struct {
	Model  string
	Prompt string
	Schema *Schema
}

// Model is the remote transport. One Generate call is one network attempt.
type Model interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

type Gateway struct {
	model        Model
	modelName    string
	apiKey       string
	maxAttempts  int
	initialDelay time.Duration
	limiter      *rate.Limiter
	sleep        SleepFunc
	logger       logging.Logger
}

type Option func(*Gateway)

func WithModelName(name string) Option {
	return func(g *Gateway) {
		if name != "" {
			g.modelName = name
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// WithSleep replaces the backoff wait, for tests.
func WithSleep(fn SleepFunc) Option {
	return func(g *Gateway) { g.sleep = fn }
}

// WithRateLimit paces attempts through l. Nil disables pacing.
func WithRateLimit(l *rate.Limiter) Option {
	return func(g *Gateway) { g.limiter = l }
}

// NewGateway returns a gateway calling model. An empty apiKey is accepted
// here and reported as ErrNotConfigured on first use.
func NewGateway(model Model, apiKey string, opts ...Option) *Gateway {
	g := &Gateway{
		model:        model,
		modelName:    DefaultModel,
		apiKey:       apiKey,
		maxAttempts:  MaxAttempts,
		initialDelay: InitialDelay,
		sleep:        sleepCtx,
		logger:       logging.Nop(),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// DefaultRateLimit allows one call per second with a burst of three.
func DefaultRateLimit() *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Second), 3)
}

// Configured reports whether an API key is present.
func (g *Gateway) Configured() bool {
	return strings.TrimSpace(g.apiKey) != ""
}

// Text asks for a free-text answer and returns it as is.
func (g *Gateway) Text(ctx context.Context, prompt string) (string, error) {
	var out string
	err := g.invoke(ctx, Request{Prompt: prompt}, func(body string) error {
		out = body
		return nil
	})
	return out, err
}

// JSON asks for a JSON answer matching schema and decodes it into T.
// Responses that fail validation or decoding are retried like transport
// errors.
func JSON[T any](ctx context.Context, g *Gateway, prompt string, schema *Schema) (T, error) {
	var out T
	if schema == nil {
		return out, ErrSchemaRequired
	}
	err := g.invoke(ctx, Request{Prompt: prompt, Schema: schema}, func(body string) error {
		raw := []byte(stripFence(body))
		if err := schema.Validate(raw); err != nil {
			return err
		}
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		out = v
		return nil
	})
	return out, err
}

func (g *Gateway) invoke(ctx context.Context, req Request, accept func(body string) error) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return ErrEmptyPrompt
	}
	if !g.Configured() {
		return ErrNotConfigured
	}
	req.Model = g.modelName

	backoff := retry.WithMaxRetries(uint64(g.maxAttempts-1), retry.NewExponential(g.initialDelay))

	var last error
	for attempt := 1; ; attempt++ {
		last = g.attempt(ctx, req, accept)
		if last == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !IsRetryable(last) {
			return last
		}

		g.logger.Warn(ctx, "ai attempt failed", "attempt", attempt, "max", g.maxAttempts, "err", last)

		delay, stop := backoff.Next()
		if stop {
			return &UnavailableError{Attempts: attempt, Last: last}
		}
		if err := g.sleep(ctx, delay); err != nil {
			return err
		}
	}
}

func (g *Gateway) attempt(ctx context.Context, req Request, accept func(body string) error) error {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
	}

	body, err := g.model.Generate(ctx, req)
	if err != nil {
		return err
	}
	if strings.TrimSpace(body) == "" {
		return ErrEmptyResponse
	}
	return accept(body)
}

// stripFence removes a surrounding ```json fence some models add even in
// JSON mode.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// IsRetryable reports whether err is one the gateway would try again.
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrNotConfigured), errors.Is(err, ErrEmptyPrompt),
		errors.Is(err, ErrSchemaRequired), errors.Is(err, ErrServiceUnavailable),
		errors.Is(err, ErrRateLimited),
		errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	default:
		return true
	}
}
