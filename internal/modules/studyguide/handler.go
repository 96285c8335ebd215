package studyguide

import (
	"log"

	"tutorhub/internal/pkg/flash"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/study-guide", h.RequestGuide)
}

func (h *Handler) RequestGuide(c *gin.Context) {
	var req GuideRequest
	if err := c.ShouldBind(&req); err != nil {
		flash.Redirect(c, "error", "Name, a valid email and your major are required.", "/")
		return
	}

	if err := h.svc.SendGuide(c.Request.Context(), req); err != nil {
		log.Printf("studyguide: send to %s failed: %v", req.Email, err)
		flash.Redirect(c, "error", "We couldn't send your guide. Please try again.", "/")
		return
	}
	flash.Redirect(c, "success", "Check your inbox! Your study guide is on its way.", "/")
}
