package llm

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitedProvider holds each call until the limiter grants a token.
type RateLimitedProvider struct {
	inner   Provider
	limiter *rate.Limiter
}

// WithRateLimit wraps p so that at most perMinute requests start in any
// minute. A non-positive perMinute returns p unchanged.
func WithRateLimit(p Provider, perMinute int) Provider {
	if perMinute <= 0 {
		return p
	}
	every := rate.Every(time.Minute / time.Duration(perMinute))
	return &RateLimitedProvider{inner: p, limiter: rate.NewLimiter(every, 1)}
}

func (r *RateLimitedProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return r.inner.Generate(ctx, req)
}

func (r *RateLimitedProvider) ModelID() string {
	return r.inner.ModelID()
}
