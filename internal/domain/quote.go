// Package domain contains core business entities and rules.
package domain

import (
	"strings"
	"time"
)

// Quote represents a quotation with its author.
// This is a domain entity - it has no knowledge of external systems.
type Quote struct {
	// ID is the opaque identifier assigned by the upstream provider.
	ID string

	// Text is the quotation itself.
	Text string

	// Author is who said or wrote the quote.
	Author string

	// IsFavorite is client-side UI state. Freshly fetched quotes always carry false.
	IsFavorite bool
}

// FavoriteRecord is a Quote saved by a user, stamped by the server on save.
type FavoriteRecord struct {
	Quote

	// CreatedAt is assigned by the store on every save.
	CreatedAt time.Time
}

// categoryTags maps the app's category identifiers to upstream tags.
var categoryTags = map[string]string{
	"alone":        "solitude",
	"angry":        "anger",
	"attitude":     "attitude",
	"breakup":      "love",
	"emotional":    "emotions",
	"family":       "family",
	"friends":      "friendship",
	"funny":        "humor",
	"love":         "love",
	"motivational": "motivational",
	"success":      "success",
	"wisdom":       "wisdom",
}

// MapCategory translates a category identifier to the upstream tag vocabulary.
// Lookup is case-insensitive; unknown categories pass through lower-cased.
func MapCategory(categoryID string) string {
	key := strings.ToLower(categoryID)
	if tag, ok := categoryTags[key]; ok {
		return tag
	}

	return key
}
