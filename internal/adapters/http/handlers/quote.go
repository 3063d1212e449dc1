package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-service/internal/app"
)

// Operation names. Each is served at POST /api/v1/<name>.
const (
	OpGetQuotesByCategory = "getQuotesByCategory"
	OpGetRandomQuote      = "getRandomQuote"
	OpSearchQuotes        = "searchQuotes"
	OpSaveFavoriteQuote   = "saveFavoriteQuote"
	OpRemoveFavoriteQuote = "removeFavoriteQuote"
	OpGetFavoriteQuotes   = "getFavoriteQuotes"
)

// QuoteHandler serves the open quote operations.
type QuoteHandler struct {
	service *app.QuoteService
	metrics *FailureMetrics
}

// NewQuoteHandler creates a new quote handler. metrics may be nil.
func NewQuoteHandler(service *app.QuoteService, metrics *FailureMetrics) *QuoteHandler {
	return &QuoteHandler{
		service: service,
		metrics: metrics,
	}
}

// GetQuotesByCategory handles POST /api/v1/getQuotesByCategory.
func (h *QuoteHandler) GetQuotesByCategory(c *gin.Context) {
	var req dto.QuotesByCategoryRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	quotes, err := h.service.ByCategory(c.Request.Context(), req.CategoryID)
	if err != nil {
		fail(c, h.metrics, OpGetQuotesByCategory, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuotesResponse(quotes))
}

// GetRandomQuote handles POST /api/v1/getRandomQuote. The body is ignored.
func (h *QuoteHandler) GetRandomQuote(c *gin.Context) {
	quote, err := h.service.Random(c.Request.Context())
	if err != nil {
		fail(c, h.metrics, OpGetRandomQuote, err)
		return
	}

	c.JSON(http.StatusOK, dto.QuoteResponse{Quote: dto.QuoteFromDomain(quote), Success: true})
}

// SearchQuotes handles POST /api/v1/searchQuotes.
func (h *QuoteHandler) SearchQuotes(c *gin.Context) {
	var req dto.SearchQuotesRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	quotes, err := h.service.Search(c.Request.Context(), req.Query)
	if err != nil {
		fail(c, h.metrics, OpSearchQuotes, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuotesResponse(quotes))
}

// RegisterRoutes registers the open operations on rg.
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/"+OpGetQuotesByCategory, h.GetQuotesByCategory)
	rg.POST("/"+OpGetRandomQuote, h.GetRandomQuote)
	rg.POST("/"+OpSearchQuotes, h.SearchQuotes)
}

// fail counts the failure and writes the error envelope.
func fail(c *gin.Context, metrics *FailureMetrics, operation string, err error) {
	metrics.Record(operation, err)
	dto.HandleError(c, err)
}
