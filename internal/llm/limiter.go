package llm

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/sbogelman-afk/hart-backend-dual/internal/evaluation"
)

// RateLimited paces calls to the underlying generator. The core places no
// concurrency bound of its own; this mirrors the provider's own request
// limits on the client side.
type RateLimited struct {
	inner   evaluation.Generator
	limiter *rate.Limiter
}

func NewRateLimited(inner evaluation.Generator, requestsPerMinute int) *RateLimited {
	return &RateLimited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
	}
}

func (r *RateLimited) Generate(ctx context.Context, prompt string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return r.inner.Generate(ctx, prompt)
}
