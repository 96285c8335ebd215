package catalog

import (
	"log"
	"net/http"

	"tutorhub/internal/middleware"
	"tutorhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/services", h.LandingServices)
	r.POST("/admin/services/refresh", middleware.RequireAdmin(), h.Refresh)
}

func (h *Handler) LandingServices(c *gin.Context) {
	services, err := h.svc.LandingServices(c.Request.Context())
	if err != nil {
		log.Printf("catalog: landing services failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to load services.")
		return
	}
	response.Success(c, http.StatusOK, services)
}

func (h *Handler) Refresh(c *gin.Context) {
	if err := h.svc.Refresh(c.Request.Context()); err != nil {
		log.Printf("catalog: refresh failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "CACHE_ERROR", "Failed to refresh services.")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"refreshed": true})
}
