package admin

import (
	"errors"
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
	a := r.Group("/admin", middleware.RequireAdmin())
	{
		a.GET("/dashboard", h.Dashboard)
		a.GET("/analytics", h.Analytics)
		a.GET("/financial", h.Financial)
		a.GET("/activity", h.Activity)
		a.GET("/users", h.Users)
		a.GET("/orders/:id", h.OrderDetail)
		a.POST("/users/update-role", h.UpdateRole)
		a.POST("/orders/assign", h.AssignOrder)
	}
}

func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		log.Printf("admin: dashboard failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to load dashboard.")
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) Analytics(c *gin.Context) {
	page, err := h.svc.Analytics(c.Request.Context())
	if err != nil {
		log.Printf("admin: analytics failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to load analytics.")
		return
	}
	response.Success(c, http.StatusOK, page)
}

func (h *Handler) Financial(c *gin.Context) {
	page, err := h.svc.Financial(c.Request.Context())
	if err != nil {
		log.Printf("admin: financial failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to load financials.")
		return
	}
	response.Success(c, http.StatusOK, page)
}

func (h *Handler) Activity(c *gin.Context) {
	page, err := h.svc.Activity(c.Request.Context())
	if err != nil {
		log.Printf("admin: activity failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to load activity.")
		return
	}
	response.Success(c, http.StatusOK, page)
}

func (h *Handler) Users(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		log.Printf("admin: users failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to load users.")
		return
	}
	response.Success(c, http.StatusOK, users)
}

func (h *Handler) OrderDetail(c *gin.Context) {
	orderID, parseErr := strconv.ParseInt(c.Param("id"), 10, 64)
	if parseErr != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
		return
	}

	page, err := h.svc.OrderDetail(c.Request.Context(), orderID)
	switch {
	case errors.Is(err, ErrOrderNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
	case err != nil:
		log.Printf("admin: order detail failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to load order.")
	default:
		response.Success(c, http.StatusOK, page)
	}
}

func (h *Handler) UpdateRole(c *gin.Context) {
	admin := middleware.CurrentUser(c)

	var req UpdateRoleRequest
	_ = c.ShouldBind(&req)

	userID, parseErr := strconv.ParseInt(req.UserID, 10, 64)
	if parseErr != nil {
		flash.Redirect(c, "error", "User not found.", "/admin/users")
		return
	}

	switch err := h.svc.UpdateRole(c.Request.Context(), admin.ID, userID, req.Role); {
	case errors.Is(err, ErrInvalidRole):
		flash.Redirect(c, "error", "Invalid role.", "/admin/users")
	case errors.Is(err, ErrSelfDemotion):
		flash.Redirect(c, "error", "You cannot change your own role.", "/admin/users")
	case errors.Is(err, ErrUserNotFound):
		flash.Redirect(c, "error", "User not found.", "/admin/users")
	case err != nil:
		log.Printf("admin: update role failed: %v", err)
		flash.Redirect(c, "error", "Something went wrong. Please try again.", "/admin/users")
	default:
		flash.Redirect(c, "success", "Role updated.", "/admin/users")
	}
}

func (h *Handler) AssignOrder(c *gin.Context) {
	var req AssignOrderRequest
	_ = c.ShouldBind(&req)

	orderID, err1 := strconv.ParseInt(req.OrderID, 10, 64)
	writerID, err2 := strconv.ParseInt(req.WriterID, 10, 64)
	if err1 != nil || err2 != nil {
		flash.Redirect(c, "error", "Order not found.", "/admin/dashboard")
		return
	}

	switch err := h.svc.AssignOrder(c.Request.Context(), orderID, writerID); {
	case errors.Is(err, ErrNotAWriter):
		flash.Redirect(c, "error", "Selected user is not a tutor.", "/admin/dashboard")
	case errors.Is(err, ErrOrderNotFound):
		flash.Redirect(c, "error", "Order not found.", "/admin/dashboard")
	case err != nil:
		log.Printf("admin: assign failed: %v", err)
		flash.Redirect(c, "error", "Something went wrong. Please try again.", "/admin/dashboard")
	default:
		flash.Redirect(c, "success", "Order assigned.", "/admin/dashboard")
	}
}
