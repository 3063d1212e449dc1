package acl

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/jsamuelsen/quotes-service/internal/adapters/clients"
	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
)

// listLimit is the fixed page size of the list endpoints.
const listLimit = 10

// Operation names used in failures and logs.
const (
	opQuotesByTag  = "quotesByTag"
	opRandomQuote  = "randomQuote"
	opSearchQuotes = "searchQuotes"
	opHealthCheck  = "healthCheck"
)

// QuoteClientConfig contains configuration for the quote client.
type QuoteClientConfig struct {
	// Client is the HTTP client to use for requests.
	// The client's BaseURL should be set to the quote API endpoint.
	Client *clients.Client

	// Logger is the structured logger.
	Logger *slog.Logger
}

// QuoteClient implements ports.QuoteSource and ports.HealthChecker against
// the quotable.io API.
type QuoteClient struct {
	client *clients.Client
	logger *slog.Logger
}

// NewQuoteClient creates a new quote client adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewQuoteClient(cfg QuoteClientConfig) *QuoteClient {
	if cfg.Client == nil {
		panic("QuoteClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteClient{
		client: cfg.Client,
		logger: logger,
	}
}

// QuotesByTag fetches up to ten quotes carrying tag.
func (c *QuoteClient) QuotesByTag(ctx context.Context, tag string) ([]*domain.Quote, error) {
	q := url.Values{}
	q.Set("tags", tag)
	q.Set("limit", strconv.Itoa(listLimit))

	return c.list(ctx, opQuotesByTag, "/quotes?"+q.Encode())
}

// SearchQuotes fetches up to ten quotes matching query.
func (c *QuoteClient) SearchQuotes(ctx context.Context, query string) ([]*domain.Quote, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("limit", strconv.Itoa(listLimit))

	return c.list(ctx, opSearchQuotes, "/search/quotes?"+q.Encode())
}

// RandomQuote fetches a single random quote.
func (c *QuoteClient) RandomQuote(ctx context.Context) (*domain.Quote, error) {
	body, err := c.fetch(ctx, opRandomQuote, "/random")
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	ext, err := decodeJSON[quotableQuote](body)
	if err != nil {
		return nil, malformed(err, opRandomQuote)
	}

	quote, err := translateQuote(ext)
	if err != nil {
		return nil, malformed(err, opRandomQuote)
	}

	c.logger.Log(ctx, logging.LevelTrace, "translated upstream quote",
		slog.String("quote_id", quote.ID),
		slog.String("author", quote.Author))

	return quote, nil
}

func (c *QuoteClient) list(ctx context.Context, operation, path string) ([]*domain.Quote, error) {
	body, err := c.fetch(ctx, operation, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	ext, err := decodeJSON[quotableList](body)
	if err != nil {
		return nil, malformed(err, operation)
	}

	quotes, err := translateList(ext)
	if err != nil {
		return nil, malformed(err, operation)
	}

	c.logger.Log(ctx, logging.LevelTrace, "translated upstream quotes",
		slog.String("operation", operation),
		slog.Int("count", len(quotes)),
		slog.Int("upstream_count", ext.Count))

	return quotes, nil
}

// fetch performs a GET and returns the body of a 2xx response; the caller
// closes it.
func (c *QuoteClient) fetch(ctx context.Context, operation, path string) (io.ReadCloser, error) {
	c.logger.Log(ctx, logging.LevelTrace, "starting request",
		slog.String("operation", operation),
		slog.String("path", path))

	resp, err := c.client.Get(ctx, path)
	if err != nil {
		return nil, mapClientError(err, operation)
	}

	c.logger.Log(ctx, logging.LevelTrace, "request complete",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode))

	if !isSuccess(resp.StatusCode) {
		defer func() { _ = resp.Body.Close() }()

		err := mapStatus(resp, operation)
		c.logger.WarnContext(ctx, "quote API error",
			slog.String("operation", operation),
			slog.Int("status_code", resp.StatusCode),
			slog.Any("error", err),
		)

		return nil, err
	}

	return resp.Body, nil
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *QuoteClient) Name() string {
	return dependencyName
}

// Check verifies the provider answers /random with a 2xx.
// Implements ports.HealthChecker.
func (c *QuoteClient) Check(ctx context.Context) error {
	body, err := c.fetch(ctx, opHealthCheck, "/random")
	if err != nil {
		return err
	}

	_, _ = io.Copy(io.Discard, body)

	return body.Close()
}
