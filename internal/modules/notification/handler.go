package notification

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"temple/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notifications/summary", h.GetSummary)
}

func (h *Handler) GetSummary(c *gin.Context) {
	viewer := Viewer{
		UserID: c.GetInt64("user_id"),
		Role:   c.GetString("role"),
	}

	summary := h.service.Summarize(c.Request.Context(), viewer)
	response.Success(c, http.StatusOK, summary)
}
