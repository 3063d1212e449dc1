// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Failures are reported as *domain.DependencyError with a FailureKind
package ports

import (
	"context"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// QuoteSource fetches quotes from the upstream quotes provider.
// Implementations return either a complete result or an error, never a partial list.
type QuoteSource interface {
	// QuotesByTag returns up to a fixed number of quotes carrying the upstream tag.
	QuotesByTag(ctx context.Context, tag string) ([]*domain.Quote, error)

	// RandomQuote returns a single random quote.
	RandomQuote(ctx context.Context) (*domain.Quote, error)

	// SearchQuotes returns up to a fixed number of quotes matching the free-text query.
	SearchQuotes(ctx context.Context, query string) ([]*domain.Quote, error)
}

// FavoritesStore persists favorite quotes keyed by (user id, quote id).
// Every method is scoped to a single user; implementations must never read
// or write another user's records.
type FavoritesStore interface {
	// Save inserts or overwrites the record for (userID, quote.ID) and stamps
	// it with the current server time. Saving twice leaves a single record.
	Save(ctx context.Context, userID string, quote *domain.Quote) (*domain.FavoriteRecord, error)

	// Remove deletes the record for (userID, quoteID). A missing record is not an error.
	Remove(ctx context.Context, userID, quoteID string) error

	// List returns all of userID's records, newest first. Never nil.
	List(ctx context.Context, userID string) ([]*domain.FavoriteRecord, error)
}
