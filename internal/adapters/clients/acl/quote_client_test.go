package acl

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-service/internal/adapters/clients"
	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/platform/config"
)

func newClient(t *testing.T, baseURL string, maxFailures int) *clients.Client {
	t.Helper()

	client, err := clients.New(&clients.Config{
		ServiceName: "quotable",
		BaseURL:     baseURL,
		Timeout:     2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     100 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   maxFailures,
			Timeout:       30 * time.Second,
			HalfOpenLimit: 1,
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	return client
}

// setupQuoteClient creates a QuoteClient with a test HTTP server.
func setupQuoteClient(t *testing.T, handler http.HandlerFunc) *QuoteClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewQuoteClient(QuoteClientConfig{
		Client: newClient(t, server.URL, 10),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func requireKind(t *testing.T, err error, want domain.FailureKind) {
	t.Helper()

	require.Error(t, err)

	kind, ok := domain.FailureKindOf(err)
	require.True(t, ok, "expected a dependency error, got %v", err)
	assert.Equal(t, want, kind)
}

const twoQuotes = `{
	"count": 2,
	"results": [
		{"_id":"q1","content":"Stay hungry.","author":"Steve Jobs","tags":["wisdom"]},
		{"_id":"q2","content":"Less is more.","author":"Mies","tags":["wisdom"]}
	]
}`

func TestNewQuoteClient_PanicsWithoutClient(t *testing.T) {
	assert.Panics(t, func() {
		NewQuoteClient(QuoteClientConfig{})
	})
}

func TestQuoteClient_QuotesByTag(t *testing.T) {
	var gotPath, gotQuery string

	client := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		respond(http.StatusOK, twoQuotes)(w, r)
	})

	quotes, err := client.QuotesByTag(context.Background(), "humor")
	require.NoError(t, err)

	assert.Equal(t, "/quotes", gotPath)
	assert.Equal(t, "limit=10&tags=humor", gotQuery)
	require.Len(t, quotes, 2)
	assert.Equal(t, &domain.Quote{ID: "q1", Text: "Stay hungry.", Author: "Steve Jobs"}, quotes[0])
	assert.Equal(t, "q2", quotes[1].ID)
}

func TestQuoteClient_SearchQuotesEscapesQuery(t *testing.T) {
	var gotPath, gotQuery string

	client := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		respond(http.StatusOK, `{"count":0,"results":[]}`)(w, r)
	})

	quotes, err := client.SearchQuotes(context.Background(), "life & love?#")
	require.NoError(t, err)

	assert.Equal(t, "/search/quotes", gotPath)
	assert.Equal(t, "life & love?#", gotQuery)
	assert.NotNil(t, quotes)
	assert.Empty(t, quotes)
}

func TestQuoteClient_RandomQuote(t *testing.T) {
	client := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/random", r.URL.Path)
		respond(http.StatusOK, `{"_id":"q7","content":"Be yourself.","author":"Oscar Wilde","tags":[]}`)(w, r)
	})

	quote, err := client.RandomQuote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &domain.Quote{ID: "q7", Text: "Be yourself.", Author: "Oscar Wilde"}, quote)
}

func TestQuoteClient_Failures(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		call     func(*QuoteClient) error
		wantKind domain.FailureKind
	}{
		{
			name:     "list non-2xx",
			handler:  respond(http.StatusServiceUnavailable, `{"statusCode":503}`),
			call:     func(c *QuoteClient) error { _, err := c.QuotesByTag(context.Background(), "love"); return err },
			wantKind: domain.FailureUpstreamStatus,
		},
		{
			name:     "random not found",
			handler:  respond(http.StatusNotFound, ``),
			call:     func(c *QuoteClient) error { _, err := c.RandomQuote(context.Background()); return err },
			wantKind: domain.FailureUpstreamStatus,
		},
		{
			name:     "undecodable body",
			handler:  respond(http.StatusOK, `<html>`),
			call:     func(c *QuoteClient) error { _, err := c.SearchQuotes(context.Background(), "x"); return err },
			wantKind: domain.FailureMalformedUpstream,
		},
		{
			name:     "missing results",
			handler:  respond(http.StatusOK, `{"count":0}`),
			call:     func(c *QuoteClient) error { _, err := c.QuotesByTag(context.Background(), "love"); return err },
			wantKind: domain.FailureMalformedUpstream,
		},
		{
			name: "one item without author fails the whole list",
			handler: respond(http.StatusOK, `{"results":[
				{"_id":"q1","content":"ok","author":"a"},
				{"_id":"q2","content":"no author"}
			]}`),
			call:     func(c *QuoteClient) error { _, err := c.SearchQuotes(context.Background(), "x"); return err },
			wantKind: domain.FailureMalformedUpstream,
		},
		{
			name:     "random without id",
			handler:  respond(http.StatusOK, `{"content":"c","author":"a"}`),
			call:     func(c *QuoteClient) error { _, err := c.RandomQuote(context.Background()); return err },
			wantKind: domain.FailureMalformedUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := setupQuoteClient(t, tt.handler)

			requireKind(t, tt.call(client), tt.wantKind)
		})
	}
}

func TestQuoteClient_StatusErrorKeepsBodyExcerpt(t *testing.T) {
	client := setupQuoteClient(t, respond(http.StatusBadGateway, `upstream exploded`))

	_, err := client.RandomQuote(context.Background())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "upstream exploded", statusErr.Body)
}

func TestQuoteClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client := NewQuoteClient(QuoteClientConfig{Client: newClient(t, baseURL, 10)})

	_, err := client.RandomQuote(context.Background())
	requireKind(t, err, domain.FailureNetwork)
	assert.ErrorIs(t, err, clients.ErrRequestFailed)
}

func TestQuoteClient_CircuitOpenIsNetworkFailure(t *testing.T) {
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewQuoteClient(QuoteClientConfig{Client: newClient(t, server.URL, 1)})

	_, err := client.RandomQuote(context.Background())
	requireKind(t, err, domain.FailureUpstreamStatus)

	_, err = client.RandomQuote(context.Background())
	requireKind(t, err, domain.FailureNetwork)
	assert.ErrorIs(t, err, clients.ErrCircuitOpen)
	assert.Equal(t, int32(1), hits.Load())
}

func TestQuoteClient_RequestDeadlineIsVisible(t *testing.T) {
	release := make(chan struct{})
	client := setupQuoteClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.RandomQuote(ctx)
	requireKind(t, err, domain.FailureNetwork)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestQuoteClient_HealthCheck(t *testing.T) {
	healthy := setupQuoteClient(t, respond(http.StatusOK, `{}`))
	assert.Equal(t, "quotable", healthy.Name())
	require.NoError(t, healthy.Check(context.Background()))

	unhealthy := setupQuoteClient(t, respond(http.StatusServiceUnavailable, ``))
	require.Error(t, unhealthy.Check(context.Background()))
}
