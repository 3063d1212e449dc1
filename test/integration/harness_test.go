//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-service/internal/adapters/clients"
	"github.com/jsamuelsen/quotes-service/internal/adapters/clients/acl"
	httpadapter "github.com/jsamuelsen/quotes-service/internal/adapters/http"
	"github.com/jsamuelsen/quotes-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotes-service/internal/adapters/storage"
	"github.com/jsamuelsen/quotes-service/internal/app"
	"github.com/jsamuelsen/quotes-service/internal/platform/config"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type upstreamQuote struct {
	ID      string   `json:"_id"`
	Content string   `json:"content"`
	Author  string   `json:"author"`
	Tags    []string `json:"tags"`
}

// fakeQuotable is an in-memory stand-in for the quotable.io API.
type fakeQuotable struct {
	server *httptest.Server

	mu     sync.Mutex
	quotes []upstreamQuote
	status int
	delay  time.Duration
	hits   atomic.Int32
}

func newFakeQuotable() *fakeQuotable {
	f := &fakeQuotable{
		quotes: []upstreamQuote{
			{ID: "q1", Content: "Stay hungry, stay foolish.", Author: "Steve Jobs", Tags: []string{"wisdom", "success"}},
			{ID: "q2", Content: "Love all, trust a few.", Author: "William Shakespeare", Tags: []string{"love"}},
			{ID: "q3", Content: "I am so clever that sometimes I don't understand a single word of what I am saying.", Author: "Oscar Wilde", Tags: []string{"humor"}},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /quotes", func(w http.ResponseWriter, r *http.Request) {
		tag := r.URL.Query().Get("tags")
		f.respondList(w, func(q upstreamQuote) bool {
			for _, t := range q.Tags {
				if t == tag {
					return true
				}
			}

			return false
		})
	})
	mux.HandleFunc("GET /search/quotes", func(w http.ResponseWriter, r *http.Request) {
		query := strings.ToLower(r.URL.Query().Get("query"))
		f.respondList(w, func(q upstreamQuote) bool {
			return strings.Contains(strings.ToLower(q.Content), query) ||
				strings.Contains(strings.ToLower(q.Author), query)
		})
	})
	mux.HandleFunc("GET /random", func(w http.ResponseWriter, _ *http.Request) {
		if !f.begin(w) {
			return
		}

		f.mu.Lock()
		q := f.quotes[0]
		f.mu.Unlock()

		writeJSON(w, q)
	})

	f.server = httptest.NewServer(mux)

	return f
}

// begin applies the configured delay and failure status. It reports false
// when the response has already been written.
func (f *fakeQuotable) begin(w http.ResponseWriter) bool {
	f.hits.Add(1)

	f.mu.Lock()
	status, delay := f.status, f.delay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	if status != 0 {
		w.WriteHeader(status)
		return false
	}

	return true
}

func (f *fakeQuotable) respondList(w http.ResponseWriter, match func(upstreamQuote) bool) {
	if !f.begin(w) {
		return
	}

	f.mu.Lock()
	results := make([]upstreamQuote, 0, len(f.quotes))
	for _, q := range f.quotes {
		if match(q) {
			results = append(results, q)
		}
	}
	f.mu.Unlock()

	writeJSON(w, map[string]any{"count": len(results), "results": results})
}

func (f *fakeQuotable) failWith(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.status = status
}

func (f *fakeQuotable) setDelay(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.delay = d
}

func (f *fakeQuotable) setQuotes(quotes ...upstreamQuote) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.quotes = quotes
}

func (f *fakeQuotable) close() {
	f.server.Close()
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClientConfig(baseURL string) *clients.Config {
	return &clients.Config{
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
			MaxFailures:   3,
			Timeout:       100 * time.Millisecond,
			HalfOpenLimit: 1,
		},
		Logger: discardLogger(),
	}
}

// service is the full stack (router, services, quotable ACL, sqlite store)
// served over a real listener.
type service struct {
	upstream *fakeQuotable
	db       *storage.DB
	server   *httptest.Server
}

type serviceOptions struct {
	requestTimeout time.Duration
	auth           *config.AuthConfig
}

func startService(opts serviceOptions) (*service, error) {
	upstream := newFakeQuotable()

	db, err := storage.Open(context.Background(), &config.StoreConfig{
		Driver:      config.StoreDriverSQLite,
		DSN:         ":memory:",
		AutoMigrate: true,
	}, discardLogger())
	if err != nil {
		upstream.close()
		return nil, err
	}

	client, err := clients.New(testClientConfig(upstream.server.URL))
	if err != nil {
		upstream.close()
		_ = db.Close()

		return nil, err
	}

	quoteClient := acl.NewQuoteClient(acl.QuoteClientConfig{Client: client, Logger: discardLogger()})

	registry := ports.NewHealthRegistry()
	if err := registry.RegisterOptional(quoteClient); err != nil {
		return nil, err
	}

	if err := registry.Register(db); err != nil {
		return nil, err
	}

	metrics, err := handlers.NewFailureMetrics(prometheus.NewRegistry())
	if err != nil {
		return nil, err
	}

	if opts.requestTimeout == 0 {
		opts.requestTimeout = 5 * time.Second
	}

	if opts.auth == nil {
		opts.auth = &config.AuthConfig{Mode: config.AuthModeHeader, SubjectHeader: "X-User-ID"}
	}

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Logger:        discardLogger(),
		AppConfig:     &config.AppConfig{Name: "quotes-service"},
		AuthConfig:    opts.auth,
		HealthHandler: handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "test", ""), prometheus.NewRegistry()),
		QuoteHandler: handlers.NewQuoteHandler(
			app.NewQuoteService(app.QuoteServiceConfig{Source: quoteClient}), metrics),
		FavoritesHandler: handlers.NewFavoritesHandler(
			app.NewFavoritesService(app.FavoritesServiceConfig{Store: storage.NewFavoritesStore(db)}), metrics),
		RequestTimeout: opts.requestTimeout,
	})

	return &service{
		upstream: upstream,
		db:       db,
		server:   httptest.NewServer(engine),
	}, nil
}

func (s *service) stop() {
	s.server.Close()
	s.upstream.close()
	_ = s.db.Close()
}

func newService(t *testing.T, opts serviceOptions) *service {
	t.Helper()

	svc, err := startService(opts)
	require.NoError(t, err)
	t.Cleanup(svc.stop)

	return svc
}

// call POSTs body to an operation as user ("" for anonymous).
func call(ctx context.Context, client *http.Client, baseURL, op, user, body string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/v1/"+op, strings.NewReader(body))
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)

	return resp, data, err
}
