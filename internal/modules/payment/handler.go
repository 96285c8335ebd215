package payment

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"tutorhub/internal/middleware"
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
	p := r.Group("/", middleware.RequireLogin())
	{
		p.POST("/create-payment", h.CreatePayment)
		p.GET("/payment/success", h.Success)
		p.GET("/payment/cancel", h.Cancel)
	}
}

func (h *Handler) CreatePayment(c *gin.Context) {
	user := middleware.CurrentUser(c)

	amount, err := strconv.ParseFloat(c.PostForm("amount"), 64)
	if err != nil {
		flash.Redirect(c, "error", "Please enter a valid amount.", "/profile")
		return
	}

	approvalURL, err := h.svc.StartTopUp(c.Request.Context(), user.ID, amount)
	switch {
	case errors.Is(err, ErrInvalidAmount):
		flash.Redirect(c, "error", "Please enter a valid amount.", "/profile")
	case err != nil:
		log.Printf("payment: start top-up failed: %v", err)
		flash.Redirect(c, "error", "Payment could not be started. Please try again.", "/profile")
	default:
		c.Redirect(http.StatusSeeOther, approvalURL)
	}
}

func (h *Handler) Success(c *gin.Context) {
	user := middleware.CurrentUser(c)

	paymentID := c.Query("paymentId")
	payerID := c.Query("PayerID")

	amount, err := h.svc.CompleteTopUp(c.Request.Context(), user.ID, paymentID, payerID)
	switch {
	case errors.Is(err, ErrNoPending), errors.Is(err, ErrAlreadyProcessed):
		flash.Redirect(c, "error", "No pending payment found.", "/profile")
	case errors.Is(err, ErrPaymentMismatch):
		flash.Redirect(c, "error", "Payment verification failed.", "/profile")
	case err != nil:
		log.Printf("payment: complete top-up failed: %v", err)
		flash.Redirect(c, "error", "Payment could not be completed. Please contact support.", "/profile")
	default:
		flash.Redirect(c, "success", fmt.Sprintf("$%.2f added to your wallet!", amount), "/profile")
	}
}

func (h *Handler) Cancel(c *gin.Context) {
	flash.Redirect(c, "error", "Payment was cancelled.", "/profile")
}
