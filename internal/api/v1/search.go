package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/service"
)

type SearchHandler struct {
	service service.SearchService
	log     *logger.Logger
}

func NewSearchHandler(service service.SearchService, log *logger.Logger) *SearchHandler {
	return &SearchHandler{service: service, log: log}
}

// @Summary Search
// @Description Search customers, invoices and tickets in one call
// @Tags Search
// @Produce json
// @Security ApiKeyAuth
// @Param q query string true "Search query"
// @Success 200 {object} dto.SearchResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.Error(ierr.NewError("search query is required").
			WithHint("Provide a q query parameter").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
