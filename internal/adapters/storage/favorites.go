package storage

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

const dependencyName = "favorites"

// favoriteRow is one saved quote. The (user_id, quote_id) primary key makes
// a save idempotent and keeps users apart.
type favoriteRow struct {
	UserID     string    `gorm:"primaryKey;size:128;index:idx_favorites_user_created,priority:1"`
	QuoteID    string    `gorm:"primaryKey;size:256"`
	Text       string    `gorm:"not null"`
	Author     string    `gorm:"size:256;not null"`
	IsFavorite bool      `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null;index:idx_favorites_user_created,priority:2"`
}

func (favoriteRow) TableName() string {
	return "favorites"
}

func (r *favoriteRow) toDomain() *domain.FavoriteRecord {
	return &domain.FavoriteRecord{
		Quote: domain.Quote{
			ID:         r.QuoteID,
			Text:       r.Text,
			Author:     r.Author,
			IsFavorite: r.IsFavorite,
		},
		CreatedAt: r.CreatedAt.UTC(),
	}
}

// FavoritesStore implements ports.FavoritesStore.
type FavoritesStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewFavoritesStore creates a favorites store on an open database.
func NewFavoritesStore(db *DB) *FavoritesStore {
	return &FavoritesStore{
		db:  db.gorm,
		now: time.Now,
	}
}

// Save upserts the quote for userID and stamps it with the current time.
// Re-saving overwrites the quote fields and the timestamp.
func (s *FavoritesStore) Save(ctx context.Context, userID string, quote *domain.Quote) (*domain.FavoriteRecord, error) {
	row := favoriteRow{
		UserID:     userID,
		QuoteID:    quote.ID,
		Text:       quote.Text,
		Author:     quote.Author,
		IsFavorite: quote.IsFavorite,
		// Postgres keeps microseconds; truncate so the returned record
		// matches what a later List reads back.
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "quote_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"text", "author", "is_favorite", "created_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return nil, domain.NewDependencyError(domain.FailureStore, dependencyName, "save", err)
	}

	return row.toDomain(), nil
}

// Remove deletes the record for (userID, quoteID); a missing record is not
// an error.
func (s *FavoritesStore) Remove(ctx context.Context, userID, quoteID string) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND quote_id = ?", userID, quoteID).
		Delete(&favoriteRow{}).Error
	if err != nil {
		return domain.NewDependencyError(domain.FailureStore, dependencyName, "remove", err)
	}

	return nil
}

// List returns userID's records, newest first with ties broken by quote ID.
func (s *FavoritesStore) List(ctx context.Context, userID string) ([]*domain.FavoriteRecord, error) {
	var rows []favoriteRow

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("quote_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, domain.NewDependencyError(domain.FailureStore, dependencyName, "list", err)
	}

	records := make([]*domain.FavoriteRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].toDomain())
	}

	return records, nil
}
