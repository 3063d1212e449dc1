package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// quotableQuote is a quote as quotable.io returns it.
type quotableQuote struct {
	ID      string   `json:"_id"`
	Content string   `json:"content"`
	Author  string   `json:"author"`
	Tags    []string `json:"tags"`
}

// quotableList is the paginated envelope of the list endpoints.
type quotableList struct {
	Count   int             `json:"count"`
	Results []quotableQuote `json:"results"`
}

// Translator converts a provider DTO to a domain value, rejecting
// incomplete input.
type Translator[External any, Domain any] func(ext *External) (*Domain, error)

// TranslateSlice applies translate to every item. The first failure aborts
// the whole batch.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]*D, error) {
	result := make([]*D, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		result = append(result, translated)
	}

	return result, nil
}

// decodeJSON decodes a single JSON document from body.
func decodeJSON[T any](body io.Reader) (*T, error) {
	if body == nil {
		return nil, errors.New("response body is nil")
	}

	var result T
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

// translateQuote maps a provider quote to a fresh domain quote.
func translateQuote(ext *quotableQuote) (*domain.Quote, error) {
	switch {
	case strings.TrimSpace(ext.ID) == "":
		return nil, fmt.Errorf("%w: _id", errMissingField)
	case strings.TrimSpace(ext.Content) == "":
		return nil, fmt.Errorf("%w: content", errMissingField)
	case strings.TrimSpace(ext.Author) == "":
		return nil, fmt.Errorf("%w: author", errMissingField)
	}

	return &domain.Quote{
		ID:     ext.ID,
		Text:   ext.Content,
		Author: ext.Author,
	}, nil
}

// translateList maps a list envelope. A missing or null results array is
// malformed; an empty one is not.
func translateList(ext *quotableList) ([]*domain.Quote, error) {
	if ext.Results == nil {
		return nil, fmt.Errorf("%w: results", errMissingField)
	}

	return TranslateSlice(ext.Results, translateQuote)
}
