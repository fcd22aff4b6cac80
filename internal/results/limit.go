package results

import (
	"context"

	"golang.org/x/time/rate"
)

type rateLimited struct {
	inner   Resolver
	limiter *rate.Limiter
}

// RateLimited wraps a resolver so that calls wait on `limiter` first. The engine
// itself never throttles, this is for callers that need to be gentle with the upstream.
func RateLimited(inner Resolver, limiter *rate.Limiter) Resolver {
	if limiter == nil {
		return inner
	}
	return rateLimited{inner: inner, limiter: limiter}
}

func (r rateLimited) Resolve(ctx context.Context, rollNumber string) (Lookup, error) {
	err := r.limiter.Wait(ctx)
	if err != nil {
		return Lookup{}, err
	}
	return r.inner.Resolve(ctx, rollNumber)
}
