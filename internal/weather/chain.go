package weather

import (
	"context"
	"log"

	"github.com/parkscope/parkscope/internal/upstream"
)

// Chain tries providers in a fixed priority order, stopping at the first
// success and stamping provenance on the result. Any failure from the
// current provider is sufficient to advance to the next one; the failure
// kind is never inspected. If every provider fails, the last provider's
// classified error is surfaced.
type Chain struct {
	providers []Provider
}

// NewChain builds a fallback chain. Order is priority order.
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Current resolves one weather lookup through the chain.
func (c *Chain) Current(ctx context.Context, q Query) (Reading, *upstream.Error) {
	var last *upstream.Error
	for i, p := range c.providers {
		reading, cerr := p.Current(ctx, q)
		if cerr != nil {
			log.Printf("weather provider %s failed (%s); advancing", p.Name(), cerr.Kind)
			last = cerr
			continue
		}

		reading.Source = upstream.Provenance{Provider: p.Name(), Fallback: i > 0}
		if i > 0 {
			reading.Source.FallbackReason = c.providers[0].Name() + " unavailable"
		}
		return reading, nil
	}

	if last == nil {
		last = &upstream.Error{Kind: upstream.KindUnknown, Message: "no weather providers configured"}
	}
	return Reading{}, last
}
