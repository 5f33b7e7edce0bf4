package quotes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Belhormamohamed13/RohWinBghit-sub002/pkg/common"
	"github.com/Belhormamohamed13/RohWinBghit-sub002/pkg/pagination"
)

// Handler handles HTTP requests for the quote audit trail
type Handler struct {
	service *Service
}

// NewHandler creates a new quote handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetQuote returns a single recorded quote
// GET /api/v1/quotes/:id
func (h *Handler) GetQuote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid quote id")
		return
	}

	quote, err := h.service.GetQuote(c.Request.Context(), id)
	if err != nil {
		if appErr, ok := err.(*common.AppError); ok {
			common.AppErrorResponse(c, appErr)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to get quote")
		return
	}

	common.SuccessResponse(c, quote)
}

// ListQuotes returns recent quotes
// GET /api/v1/quotes?limit=20&offset=0
func (h *Handler) ListQuotes(c *gin.Context) {
	params := pagination.ParseParams(c)

	result, total, err := h.service.ListRecent(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list quotes")
		return
	}

	meta := pagination.BuildMeta(params.Limit, params.Offset, int64(total))
	common.SuccessResponseWithMeta(c, gin.H{"quotes": result}, meta)
}

// RegisterRoutes registers quote routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/quotes")
	{
		group.GET("", h.ListQuotes)
		group.GET("/:id", h.GetQuote)
	}
}
