package message

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"tutorhub/internal/middleware"
	"tutorhub/internal/pkg/flash"
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
	m := r.Group("/messages", middleware.RequireLogin())
	{
		m.GET("", h.Conversations)
		m.POST("/send", h.SendForm)
		m.POST("/api/send", h.SendJSON)
		m.GET("/api/check-messages", h.Check)
	}
}

// Conversations is the student messages page: orders sorted by recent
// activity.
func (h *Handler) Conversations(c *gin.Context) {
	user := middleware.CurrentUser(c)

	page, err := h.svc.Conversations(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("message: conversations failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to load conversations.")
		return
	}
	response.Success(c, http.StatusOK, page)
}

// SendForm handles the in-thread form post and bounces back to the
// order page, on the dashboard that matches the sender's role.
func (h *Handler) SendForm(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req SendRequest
	_ = c.ShouldBind(&req)

	orderID, parseErr := strconv.ParseInt(req.OrderID, 10, 64)
	back := user.Role.HomePath()
	if parseErr == nil {
		back = fmt.Sprintf("/orders/%d", orderID)
	}

	if parseErr != nil {
		flash.Redirect(c, "error", "Order not found.", user.Role.HomePath())
		return
	}

	_, err := h.svc.Send(c.Request.Context(), user.ID, user.Name, user.Role, orderID, req.Content)
	switch {
	case errors.Is(err, ErrEmptyMessage):
		flash.Redirect(c, "error", "Message cannot be empty.", back)
	case errors.Is(err, ErrNotFound):
		flash.Redirect(c, "error", "Order not found.", user.Role.HomePath())
	case errors.Is(err, ErrForbidden):
		flash.Redirect(c, "error", "You are not authorized to view this order", user.Role.HomePath())
	case err != nil:
		log.Printf("message: send failed: %v", err)
		flash.Redirect(c, "error", "Failed to send message.", back)
	default:
		flash.Redirect(c, "success", "Message sent.", back)
	}
}

func (h *Handler) SendJSON(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	orderID, parseErr := strconv.ParseInt(req.OrderID, 10, 64)
	if parseErr != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
		return
	}

	m, err := h.svc.Send(c.Request.Context(), user.ID, user.Name, user.Role, orderID, req.Content)
	switch {
	case errors.Is(err, ErrEmptyMessage):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Message cannot be empty")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not authorized for this order")
	case err != nil:
		log.Printf("message: send failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to send message")
	default:
		response.Success(c, http.StatusCreated, m)
	}
}

// Check answers one poll for new messages on an order.
func (h *Handler) Check(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orderID, parseErr := strconv.ParseInt(c.Query("orderId"), 10, 64)
	if parseErr != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
		return
	}

	result, err := h.svc.CheckNew(c.Request.Context(), user.ID, user.Role, orderID)
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not authorized for this order")
	case err != nil:
		log.Printf("message: check failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to check messages")
	default:
		response.Success(c, http.StatusOK, result)
	}
}
