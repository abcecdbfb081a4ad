// Package judge delegates subjective scoring to a language model. Callers
// send a prompt and receive free text; interpreting it, and falling back
// when it cannot be interpreted, is the caller's job.
package judge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
	"golang.org/x/time/rate"

	"github.com/JaimeStill/palette/pkg/metrics"
)

// Judge answers a prompt with free-form text.
type Judge interface {
	Judge(ctx context.Context, prompt string) (string, error)
}

// Func adapts a function to the Judge interface.
type Func func(ctx context.Context, prompt string) (string, error)

func (f Func) Judge(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Options configures an agent-backed Judge.
type Options struct {
	RequestsPerMinute int
	Timeout           time.Duration
}

type agentJudge struct {
	cfg     gaconfig.AgentConfig
	limiter *rate.Limiter
	timeout time.Duration
	metrics metrics.Sink
	logger  *slog.Logger
}

// New creates a Judge that sends each prompt as a single chat call through a
// go-agents agent. Calls are paced by a shared limiter and bounded by Timeout.
func New(cfg gaconfig.AgentConfig, opts Options, sink metrics.Sink, logger *slog.Logger) Judge {
	rpm := max(opts.RequestsPerMinute, 1)
	return &agentJudge{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
		timeout: opts.Timeout,
		metrics: sink,
		logger:  logger.With("system", "judge"),
	}
}

func (j *agentJudge) Judge(ctx context.Context, prompt string) (string, error) {
	if err := j.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limiter: %w", ErrJudgeFailed, err)
	}

	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	start := time.Now()
	content, err := j.chat(ctx, prompt)
	j.metrics.ObserveGeneration(ctx, "judge", time.Since(start), err == nil)

	if err != nil {
		j.logger.WarnContext(ctx, "judge call failed", "error", err)
		return "", err
	}
	return content, nil
}

func (j *agentJudge) chat(ctx context.Context, prompt string) (string, error) {
	a, err := agent.New(&j.cfg)
	if err != nil {
		return "", fmt.Errorf("%w: create agent: %w", ErrJudgeFailed, err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: chat call: %w", ErrJudgeFailed, err)
	}
	return resp.Content(), nil
}

// Unavailable returns a Judge that always fails with ErrUnavailable, leaving
// every caller on its fallback path.
func Unavailable() Judge {
	return Func(func(context.Context, string) (string, error) {
		return "", ErrUnavailable
	})
}
