package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/levelup-labs/jobscout/internal/profile"
	"github.com/levelup-labs/jobscout/internal/search"
	"github.com/levelup-labs/jobscout/internal/utils"
)

const (
	defaultTimeout = 20 * time.Second
	retryBaseDelay = time.Second
)

var wait = utils.WaitFor

// Pipeline turns a profile into an ordered, enriched listing set: build the
// query, call the search gateway under a bounded timeout and capped retry,
// then enrich each result in provider order.
type Pipeline struct {
	Searcher   search.Searcher
	Enricher   Enricher
	MaxResults int
	Topic      string
	Timeout    time.Duration
	MaxRetries int
	Logger     *zap.Logger
}

// Run executes the full search and enrichment pass. A profile that fails
// validation returns a *profile.ValidationError; an exhausted search comes
// back as a *search.UnavailableError with no listings.
func (p *Pipeline) Run(ctx context.Context, prof profile.Profile) ([]Listing, error) {
	query, err := prof.BuildQuery()
	if err != nil {
		return nil, err
	}

	p.Logger.Info("starting the search", zap.String("query", query))

	results, err := p.searchWithRetry(ctx, query)
	if err != nil {
		return nil, err
	}

	listings := make([]Listing, 0, len(results))
	for _, result := range results {
		listing := NewListing(result)
		listing.Summary = p.Enricher.Enrich(ctx, result)
		listings = append(listings, listing)
	}

	p.Logger.Info("search completed", zap.Int("count", len(listings)))

	return listings, nil
}

func (p *Pipeline) searchWithRetry(ctx context.Context, query string) ([]search.Result, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var results []search.Result
	var err error
	for attempt := 0; ; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		results, err = p.Searcher.Search(attemptCtx, query, p.MaxResults, p.Topic)
		cancel()
		if err == nil {
			return results, nil
		}

		if attempt >= p.MaxRetries || ctx.Err() != nil {
			return nil, err
		}

		delay := retryBaseDelay * time.Duration(attempt+1)
		p.Logger.Warn("search attempt failed, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		if waitErr := wait(ctx, delay); waitErr != nil {
			return nil, err
		}
	}
}
