package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

// Operation names used in unauthenticated errors.
const (
	opSaveFavorite   = "saveFavoriteQuote"
	opRemoveFavorite = "removeFavoriteQuote"
	opListFavorites  = "getFavoriteQuotes"
)

// FavoritesService serves the authenticated favorites operations. Every
// call is scoped to the caller's user ID; the store is never reached
// without one.
type FavoritesService struct {
	store ports.FavoritesStore
}

// FavoritesServiceConfig contains the dependencies of the favorites service.
type FavoritesServiceConfig struct {
	Store ports.FavoritesStore
}

// NewFavoritesService creates a new favorites service. It panics without a store.
func NewFavoritesService(cfg FavoritesServiceConfig) *FavoritesService {
	if cfg.Store == nil {
		panic("app: FavoritesService requires a FavoritesStore")
	}

	return &FavoritesService{store: cfg.Store}
}

// Save upserts quote into userID's favorites. The quote is stored as sent,
// including its isFavorite flag.
func (s *FavoritesService) Save(ctx context.Context, userID string, quote *domain.Quote) (*domain.FavoriteRecord, error) {
	if userID == "" {
		return nil, domain.NewUnauthenticatedError(opSaveFavorite)
	}

	if quote == nil {
		return nil, domain.NewValidationError("quote", "is required")
	}

	if err := requireText("quote.id", quote.ID); err != nil {
		return nil, err
	}

	record, err := s.store.Save(ctx, userID, quote)
	if err != nil {
		return nil, fmt.Errorf("saving favorite %q: %w", quote.ID, err)
	}

	logging.FromContext(ctx).InfoContext(ctx, "favorite saved", slog.String("quote_id", quote.ID))

	return record, nil
}

// Remove deletes quoteID from userID's favorites. Removing a quote that was
// never saved succeeds.
func (s *FavoritesService) Remove(ctx context.Context, userID, quoteID string) error {
	if userID == "" {
		return domain.NewUnauthenticatedError(opRemoveFavorite)
	}

	if err := requireText("quoteId", quoteID); err != nil {
		return err
	}

	if err := s.store.Remove(ctx, userID, quoteID); err != nil {
		return fmt.Errorf("removing favorite %q: %w", quoteID, err)
	}

	logging.FromContext(ctx).InfoContext(ctx, "favorite removed", slog.String("quote_id", quoteID))

	return nil
}

// List returns userID's favorites, newest first.
func (s *FavoritesService) List(ctx context.Context, userID string) ([]*domain.FavoriteRecord, error) {
	if userID == "" {
		return nil, domain.NewUnauthenticatedError(opListFavorites)
	}

	records, err := s.store.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing favorites: %w", err)
	}

	if records == nil {
		records = []*domain.FavoriteRecord{}
	}

	return records, nil
}
