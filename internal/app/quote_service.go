package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

var errEmptyQuote = errors.New("source returned no quote")

// QuoteService serves the open read operations. It depends on the
// QuoteSource port, not on a concrete provider.
type QuoteService struct {
	source ports.QuoteSource
}

// QuoteServiceConfig contains the dependencies of the quote service.
type QuoteServiceConfig struct {
	Source ports.QuoteSource
}

// NewQuoteService creates a new quote service. It panics without a source.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Source == nil {
		panic("app: QuoteService requires a QuoteSource")
	}

	return &QuoteService{source: cfg.Source}
}

// ByCategory returns the quotes for a UI category, translated to the
// provider's tag.
func (s *QuoteService) ByCategory(ctx context.Context, categoryID string) ([]*domain.Quote, error) {
	if err := requireText("categoryId", categoryID); err != nil {
		return nil, err
	}

	tag := domain.MapCategory(categoryID)
	logging.FromContext(ctx).DebugContext(ctx, "fetching quotes by category",
		slog.String("category", categoryID),
		slog.String("tag", tag),
	)

	quotes, err := s.source.QuotesByTag(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("fetching quotes for category %q: %w", categoryID, err)
	}

	return fresh(quotes), nil
}

// Random returns one random quote.
func (s *QuoteService) Random(ctx context.Context) (*domain.Quote, error) {
	quote, err := s.source.RandomQuote(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching random quote: %w", err)
	}

	if quote == nil {
		return nil, domain.NewDependencyError(domain.FailureMalformedUpstream, "quotes", "random", errEmptyQuote)
	}

	quote.IsFavorite = false

	return quote, nil
}

// Search returns the quotes matching a free-text query.
func (s *QuoteService) Search(ctx context.Context, query string) ([]*domain.Quote, error) {
	if err := requireText("query", query); err != nil {
		return nil, err
	}

	quotes, err := s.source.SearchQuotes(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("searching quotes: %w", err)
	}

	return fresh(quotes), nil
}

// fresh marks provider quotes as not favorited; favorite state only ever
// comes from the store. Always returns a non-nil slice.
func fresh(quotes []*domain.Quote) []*domain.Quote {
	if quotes == nil {
		return []*domain.Quote{}
	}

	for _, q := range quotes {
		q.IsFavorite = false
	}

	return quotes
}
