package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/mathquest/internal/logging"
)

// RetryProvider retries failed calls with exponential backoff and ±20%
// jitter. Rate limits and outages are retried up to MaxAttempts and a reply
// that fails schema validation is retried once. Cancellation, deadlines
// and truncated replies are returned at once.
type RetryProvider struct {
	inner Provider
	cfg   RetryConfig
	log   logrus.FieldLogger
}

// WithRetry wraps p with cfg's retry policy. A non-positive MaxAttempts
// still makes one call. log may be nil.
func WithRetry(p Provider, cfg RetryConfig, log logrus.FieldLogger) Provider {
	if log == nil {
		log = logging.Discard()
	}
	return &RetryProvider{inner: p, cfg: cfg, log: log}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.cfg.MaxAttempts, 1)
	invalidSeen := false

	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt == attempts || !retryable(err, &invalidSeen) {
			return nil, err
		}

		wait := r.backoff(attempt, err)
		r.log.WithError(err).WithFields(logrus.Fields{
			"purpose": PurposeFrom(ctx),
			"attempt": attempt,
			"wait":    wait.String(),
		}).Debug("retrying llm request")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// retryable reports whether err is worth another call. invalidSeen
// remembers that the single invalid-reply retry was used.
func retryable(err error, invalidSeen *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *invalidSeen {
			return false
		}
		*invalidSeen = true
	}
	return true
}

// backoff returns the wait after the given 1-based attempt. A rate limit
// with RetryAfter wins over the computed delay.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt-1))
	wait = min(wait, float64(r.cfg.MaxWait))
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(max(wait, 0))
}
