package metadata

import "context"

// Provider searches one metadata source. An empty result covers both
// "no matches" and "source unavailable"; failures are logged, not returned.
type Provider interface {
	ID() string
	Search(ctx context.Context, query, genericCover, locale string) []Record
}
