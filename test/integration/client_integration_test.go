//go:build integration

package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-service/internal/adapters/clients"
	"github.com/jsamuelsen/quotes-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotes-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotes-service/internal/domain"
)

func newQuoteClient(t *testing.T, cfg *clients.Config) *acl.QuoteClient {
	t.Helper()

	client, err := clients.New(cfg)
	require.NoError(t, err)

	return acl.NewQuoteClient(acl.QuoteClientConfig{Client: client, Logger: discardLogger()})
}

func requireKind(t *testing.T, err error, want domain.FailureKind) {
	t.Helper()

	require.Error(t, err)

	kind, ok := domain.FailureKindOf(err)
	require.True(t, ok, "expected a dependency error, got %v", err)
	assert.Equal(t, want, kind)
}

// TestQuoteSource_RetryRecoversTransientFailures verifies that enabling
// retries hides transient provider failures.
func TestQuoteSource_RetryRecoversTransientFailures(t *testing.T) {
	upstream := newFakeQuotable()
	defer upstream.close()

	var attempts atomic.Int32
	flaky := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		upstream.server.Config.Handler.ServeHTTP(w, r)
	}))
	defer flaky.Close()

	cfg := testClientConfig(flaky.URL)
	cfg.Retry.MaxAttempts = 3

	quote, err := newQuoteClient(t, cfg).RandomQuote(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "q1", quote.ID)
	assert.Equal(t, int32(3), attempts.Load(), "expected 3 attempts (2 failures + 1 success)")
}

// TestQuoteSource_SingleAttemptByDefault verifies that the default policy
// surfaces the first failure.
func TestQuoteSource_SingleAttemptByDefault(t *testing.T) {
	upstream := newFakeQuotable()
	defer upstream.close()

	upstream.failWith(http.StatusServiceUnavailable)

	_, err := newQuoteClient(t, testClientConfig(upstream.server.URL)).QuotesByTag(context.Background(), "love")

	requireKind(t, err, domain.FailureUpstreamStatus)
	assert.Equal(t, int32(1), upstream.hits.Load())
}

// TestQuoteSource_CircuitBreaker verifies the breaker opens on repeated
// provider failures, short-circuits, then recovers.
func TestQuoteSource_CircuitBreaker(t *testing.T) {
	upstream := newFakeQuotable()
	defer upstream.close()

	upstream.failWith(http.StatusInternalServerError)

	cfg := testClientConfig(upstream.server.URL)
	cfg.Circuit.MaxFailures = 2
	cfg.Circuit.Timeout = 50 * time.Millisecond

	client := newQuoteClient(t, cfg)
	ctx := context.Background()

	for range 2 {
		_, err := client.RandomQuote(ctx)
		requireKind(t, err, domain.FailureUpstreamStatus)
	}

	hitsBefore := upstream.hits.Load()

	_, err := client.RandomQuote(ctx)
	requireKind(t, err, domain.FailureNetwork)
	assert.ErrorIs(t, err, clients.ErrCircuitOpen)
	assert.Equal(t, hitsBefore, upstream.hits.Load(), "no provider call while the circuit is open")

	time.Sleep(60 * time.Millisecond)
	upstream.failWith(0)

	quote, err := client.RandomQuote(ctx)
	require.NoError(t, err)
	assert.Equal(t, "q1", quote.ID)
}

// TestQuoteSource_SlowProvider verifies the per-attempt timeout.
func TestQuoteSource_SlowProvider(t *testing.T) {
	upstream := newFakeQuotable()
	defer upstream.close()

	upstream.setDelay(300 * time.Millisecond)

	cfg := testClientConfig(upstream.server.URL)
	cfg.Timeout = 50 * time.Millisecond

	start := time.Now()
	_, err := newQuoteClient(t, cfg).SearchQuotes(context.Background(), "love")

	requireKind(t, err, domain.FailureNetwork)
	assert.Less(t, time.Since(start), 250*time.Millisecond, "should time out quickly")
}

// TestQuoteSource_HeaderPropagation verifies that request and correlation
// IDs reach the provider.
func TestQuoteSource_HeaderPropagation(t *testing.T) {
	var requestID, correlationID string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get(middleware.HeaderRequestID)
		correlationID = r.Header.Get(middleware.HeaderCorrelationID)
		writeJSON(w, upstreamQuote{ID: "q1", Content: "c", Author: "a"})
	}))
	defer server.Close()

	ctx := middleware.ContextWithRequestID(context.Background(), "req-integration-123")
	ctx = middleware.ContextWithCorrelationID(ctx, "corr-integration-456")

	_, err := newQuoteClient(t, testClientConfig(server.URL)).RandomQuote(ctx)
	require.NoError(t, err)

	assert.Equal(t, "req-integration-123", requestID)
	assert.Equal(t, "corr-integration-456", correlationID)
}

// TestQuoteSource_ConcurrentRequests verifies a shared client under load.
func TestQuoteSource_ConcurrentRequests(t *testing.T) {
	upstream := newFakeQuotable()
	defer upstream.close()

	upstream.setDelay(5 * time.Millisecond)

	client := newQuoteClient(t, testClientConfig(upstream.server.URL))

	const workers = 20

	var (
		wg       sync.WaitGroup
		failures atomic.Int32
	)

	for i := range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			var err error
			if i%2 == 0 {
				_, err = client.QuotesByTag(context.Background(), "love")
			} else {
				_, err = client.SearchQuotes(context.Background(), "stay")
			}

			if err != nil {
				failures.Add(1)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(0), failures.Load())
	assert.Equal(t, int32(workers), upstream.hits.Load())
}
