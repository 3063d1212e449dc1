package dto

import (
	"time"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// QuoteDTO is the wire form of a quote.
type QuoteDTO struct {
	ID         string `json:"id"         validate:"required,notblank,max=256"`
	Text       string `json:"text"`
	Author     string `json:"author"`
	IsFavorite bool   `json:"isFavorite"`
}

// FavoriteDTO is a saved quote with its server-assigned creation time.
type FavoriteDTO struct {
	QuoteDTO

	CreatedAt time.Time `json:"createdAt"`
}

// QuotesByCategoryRequest is the input of getQuotesByCategory.
type QuotesByCategoryRequest struct {
	CategoryID string `json:"categoryId" validate:"required,notblank,max=256"`
}

// SearchQuotesRequest is the input of searchQuotes.
type SearchQuotesRequest struct {
	Query string `json:"query" validate:"required,notblank,max=256"`
}

// SaveFavoriteRequest is the input of saveFavoriteQuote.
type SaveFavoriteRequest struct {
	Quote *QuoteDTO `json:"quote" validate:"required"`
}

// RemoveFavoriteRequest is the input of removeFavoriteQuote.
type RemoveFavoriteRequest struct {
	QuoteID string `json:"quoteId" validate:"required,notblank,max=256"`
}

// QuotesResponse is the payload of getQuotesByCategory and searchQuotes.
type QuotesResponse struct {
	Quotes  []QuoteDTO `json:"quotes"`
	Success bool       `json:"success"`
}

// QuoteResponse is the payload of getRandomQuote.
type QuoteResponse struct {
	Quote   QuoteDTO `json:"quote"`
	Success bool     `json:"success"`
}

// FavoritesResponse is the payload of getFavoriteQuotes.
type FavoritesResponse struct {
	Favorites []FavoriteDTO `json:"favorites"`
	Success   bool          `json:"success"`
}

// SuccessResponse acknowledges a mutation.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// QuoteFromDomain converts a domain quote.
func QuoteFromDomain(q *domain.Quote) QuoteDTO {
	return QuoteDTO{
		ID:         q.ID,
		Text:       q.Text,
		Author:     q.Author,
		IsFavorite: q.IsFavorite,
	}
}

// ToDomain converts the wire quote to a domain quote.
func (q *QuoteDTO) ToDomain() *domain.Quote {
	return &domain.Quote{
		ID:         q.ID,
		Text:       q.Text,
		Author:     q.Author,
		IsFavorite: q.IsFavorite,
	}
}

// NewQuotesResponse builds a list payload; the list is never null.
func NewQuotesResponse(quotes []*domain.Quote) QuotesResponse {
	out := make([]QuoteDTO, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, QuoteFromDomain(q))
	}

	return QuotesResponse{Quotes: out, Success: true}
}

// NewFavoritesResponse builds the favorites payload; the list is never null.
func NewFavoritesResponse(records []*domain.FavoriteRecord) FavoritesResponse {
	out := make([]FavoriteDTO, 0, len(records))
	for _, r := range records {
		out = append(out, FavoriteDTO{
			QuoteDTO:  QuoteFromDomain(&r.Quote),
			CreatedAt: r.CreatedAt,
		})
	}

	return FavoritesResponse{Favorites: out, Success: true}
}
