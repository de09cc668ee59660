package models

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
	"google.golang.org/adk/model"
)

// ErrCircuitOpen is returned while the generator circuit is open.
var ErrCircuitOpen = errors.New("generator circuit breaker is open")

// GuardConfig configures NewGuardedModel.
type GuardConfig struct {
	// RequestsPerSecond of zero disables throttling.
	RequestsPerSecond float64
	Burst             int
	// MaxFailures consecutive failures trip the circuit.
	MaxFailures uint32
	// Timeout is how long the circuit stays open before a trial request.
	Timeout time.Duration
}

// guardedModel throttles and circuit-breaks calls to an inner model.
type guardedModel struct {
	inner   model.LLM
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// NewGuardedModel wraps llm with a rate limiter and a circuit breaker.
func NewGuardedModel(llm model.LLM, cfg GuardConfig) model.LLM {
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	g := &guardedModel{inner: llm}
	if cfg.RequestsPerSecond > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)
	}
	g.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        llm.Name(),
		MaxRequests: 1,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("generator circuit state changed", "model", name, "from", from.String(), "to", to.String())
		},
	})
	return g
}

func (g *guardedModel) Name() string {
	return g.inner.Name()
}

// GenerateContent drains the inner sequence inside the breaker so a failure
// anywhere in the stream counts against the circuit.
func (g *guardedModel) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				yield(nil, fmt.Errorf("failed to wait for rate limiter: %w", err))
				return
			}
		}

		result, err := g.breaker.Execute(func() (interface{}, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			var responses []*model.LLMResponse
			for resp, err := range g.inner.GenerateContent(ctx, req, stream) {
				if err != nil {
					return nil, err
				}
				if resp != nil && resp.ErrorCode != "" {
					return nil, fmt.Errorf("model error %s: %s", resp.ErrorCode, resp.ErrorMessage)
				}
				responses = append(responses, resp)
			}
			return responses, nil
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				err = ErrCircuitOpen
			}
			yield(nil, err)
			return
		}

		for _, resp := range result.([]*model.LLMResponse) {
			if !yield(resp, nil) {
				return
			}
		}
	}
}
