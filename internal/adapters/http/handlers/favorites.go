package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotes-service/internal/app"
)

// FavoritesHandler serves the authenticated favorites operations. The user
// ID always comes from the verified caller, never from the payload.
type FavoritesHandler struct {
	service *app.FavoritesService
	metrics *FailureMetrics
}

// NewFavoritesHandler creates a new favorites handler. metrics may be nil.
func NewFavoritesHandler(service *app.FavoritesService, metrics *FailureMetrics) *FavoritesHandler {
	return &FavoritesHandler{
		service: service,
		metrics: metrics,
	}
}

// SaveFavoriteQuote handles POST /api/v1/saveFavoriteQuote.
func (h *FavoritesHandler) SaveFavoriteQuote(c *gin.Context) {
	var req dto.SaveFavoriteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	_, err := h.service.Save(c.Request.Context(), middleware.UserID(c), req.Quote.ToDomain())
	if err != nil {
		fail(c, h.metrics, OpSaveFavoriteQuote, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// RemoveFavoriteQuote handles POST /api/v1/removeFavoriteQuote.
func (h *FavoritesHandler) RemoveFavoriteQuote(c *gin.Context) {
	var req dto.RemoveFavoriteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	if err := h.service.Remove(c.Request.Context(), middleware.UserID(c), req.QuoteID); err != nil {
		fail(c, h.metrics, OpRemoveFavoriteQuote, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// GetFavoriteQuotes handles POST /api/v1/getFavoriteQuotes. The body is ignored.
func (h *FavoritesHandler) GetFavoriteQuotes(c *gin.Context) {
	records, err := h.service.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, h.metrics, OpGetFavoriteQuotes, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewFavoritesResponse(records))
}

// RegisterRoutes registers the favorites operations on rg. rg must already
// carry the authentication middleware.
func (h *FavoritesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/"+OpSaveFavoriteQuote, h.SaveFavoriteQuote)
	rg.POST("/"+OpRemoveFavoriteQuote, h.RemoveFavoriteQuote)
	rg.POST("/"+OpGetFavoriteQuotes, h.GetFavoriteQuotes)
}
