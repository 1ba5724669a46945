package customers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"service-dispatch/internal/domain"
	"service-dispatch/internal/logx"
)

type gateway interface {
	ResolveAddress(ctx context.Context, customerID, addressID string) (*domain.Address, error)
}

type counter interface {
	Inc()
}

// RetryConfig describes the RetryingGateway behavior.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingGateway retries transient customers service failures with
// exponential backoff.
type RetryingGateway struct {
	next    gateway
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingGateway wraps next with retry behavior. Returns nil when next is nil.
func NewRetryingGateway(next gateway, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingGateway {
	if next == nil {
		return nil
	}
	return &RetryingGateway{next: next, logger: logger, retries: retries, cfg: cfg}
}

// ResolveAddress delegates to the wrapped gateway, retrying transient errors.
func (g *RetryingGateway) ResolveAddress(ctx context.Context, customerID, addressID string) (*domain.Address, error) {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		addr, err := g.next.ResolveAddress(ctx, customerID, addressID)
		if err == nil {
			return addr, nil
		}
		lastErr = err
		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}
		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("customers gateway retry",
			logx.String("method", "ResolveAddress"),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Any("err", err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return nil, lastErr
}

// isRetryable reports whether the failure is worth another attempt. Transport
// errors and throttling or server-side statuses are transient; everything
// else is permanent.
func isRetryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		switch se.code {
		case http.StatusTooManyRequests,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
	var ue *url.Error
	return errors.As(err, &ue)
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
