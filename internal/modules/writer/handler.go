package writer

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
	w := r.Group("/writer", middleware.RequireWriter())
	{
		w.GET("/dashboard", h.Dashboard)
		w.GET("/jobs", h.AvailableJobs)
		w.GET("/orders", h.MyOrders)
		w.GET("/earnings", h.Earnings)
		w.POST("/bid", h.Claim)
		w.POST("/orders/update-status", h.UpdateStatus)
	}
}

func (h *Handler) Dashboard(c *gin.Context) {
	user := middleware.CurrentUser(c)

	stats, err := h.svc.Dashboard(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("writer: dashboard failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to load dashboard.")
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) AvailableJobs(c *gin.Context) {
	jobs, err := h.svc.AvailableJobs(c.Request.Context())
	if err != nil {
		log.Printf("writer: jobs failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to load available orders.")
		return
	}
	response.Success(c, http.StatusOK, jobs)
}

func (h *Handler) MyOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orders, err := h.svc.MyOrders(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("writer: orders failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to load orders.")
		return
	}
	response.Success(c, http.StatusOK, orders)
}

func (h *Handler) Earnings(c *gin.Context) {
	user := middleware.CurrentUser(c)

	page, err := h.svc.Earnings(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("writer: earnings failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to load earnings.")
		return
	}
	response.Success(c, http.StatusOK, page)
}

func (h *Handler) Claim(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req ClaimRequest
	_ = c.ShouldBind(&req)

	orderID, err := strconv.ParseInt(req.OrderID, 10, 64)
	if err != nil {
		flash.Redirect(c, "error", "This order is no longer available.", "/writer/jobs")
		return
	}

	switch err := h.svc.Claim(c.Request.Context(), orderID, user.ID); {
	case errors.Is(err, ErrOrderTaken):
		flash.Redirect(c, "error", "This order is no longer available.", "/writer/jobs")
	case err != nil:
		log.Printf("writer: claim failed: %v", err)
		flash.Redirect(c, "error", "Something went wrong. Please try again.", "/writer/jobs")
	default:
		flash.Redirect(c, "success", "Order claimed successfully!", "/writer/dashboard")
	}
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req UpdateStatusRequest
	_ = c.ShouldBind(&req)

	orderID, err := strconv.ParseInt(req.OrderID, 10, 64)
	if err != nil {
		flash.Redirect(c, "error", "Order not found or unauthorized", "/writer/dashboard")
		return
	}

	switch err := h.svc.UpdateStatus(c.Request.Context(), user.ID, orderID, req.Status); {
	case errors.Is(err, ErrNotFound):
		flash.Redirect(c, "error", "Order not found or unauthorized", "/writer/dashboard")
	case errors.Is(err, ErrBadTransition):
		flash.Redirect(c, "error", "Invalid status change.", "/writer/dashboard")
	case err != nil:
		log.Printf("writer: update status failed: %v", err)
		flash.Redirect(c, "error", "Something went wrong. Please try again.", "/writer/dashboard")
	default:
		flash.Redirect(c, "success", "Order updated.", "/writer/dashboard")
	}
}
