package order

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"tutorhub/internal/domain"
	"tutorhub/internal/middleware"
	"tutorhub/internal/pkg/flash"
	"tutorhub/internal/pkg/mail"
	"tutorhub/internal/pkg/response"
	"tutorhub/internal/pkg/upload"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc      *Service
	saver    *upload.Saver
	mailer   mail.Mailer
	opsEmail string
	baseURL  string
}

func NewHandler(svc *Service, saver *upload.Saver, mailer mail.Mailer, opsEmail, baseURL string) *Handler {
	return &Handler{svc: svc, saver: saver, mailer: mailer, opsEmail: opsEmail, baseURL: baseURL}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	student := r.Group("/", middleware.RequireStudent())
	{
		student.POST("/place-order", h.PlaceOrder)
		student.GET("/orders", h.ListMine)
		student.POST("/orders/api/place-order", h.APIPlaceOrder)
	}

	// Shared: owner, assigned writer or admin; checked against the order.
	r.GET("/orders/:id", middleware.RequireLogin(), h.Detail)
}

func (h *Handler) PlaceOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req PlaceOrderRequest
	if err := c.ShouldBind(&req); err != nil {
		flash.Redirect(c, "error", "Failed to place order. Please try again.", "/place-order")
		return
	}

	files, err := h.saveAttachments(c, user.ID)
	if err != nil {
		flash.Redirect(c, "error", err.Error(), "/place-order")
		return
	}

	o, err := h.svc.Place(c.Request.Context(), user.ID, req, files)
	if err != nil {
		log.Printf("order: place failed: %v", err)
		flash.Redirect(c, "error", "Failed to place order. Please try again.", "/place-order")
		return
	}

	flash.Redirect(c, "success", "Order placed successfully!", fmt.Sprintf("/orders/%d", o.ID))
}

func (h *Handler) ListMine(c *gin.Context) {
	user := middleware.CurrentUser(c)

	status := c.DefaultQuery("status", "all")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	result, err := h.svc.ListMine(c.Request.Context(), user.ID, status, page, DefaultPageSize)
	if err != nil {
		log.Printf("order: list failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to load orders.")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Detail(c *gin.Context) {
	user := middleware.CurrentUser(c)

	// A malformed id and a missing order surface identically.
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		flash.Redirect(c, "error", "Order not found.", user.Role.HomePath())
		return
	}

	detail, err := h.svc.Detail(c.Request.Context(), user.ID, user.Role, orderID)
	switch {
	case errors.Is(err, ErrNotFound):
		flash.Redirect(c, "error", "Order not found.", user.Role.HomePath())
	case errors.Is(err, ErrForbidden):
		flash.Redirect(c, "error", "You are not authorized to view this order", user.Role.HomePath())
	case err != nil:
		log.Printf("order: detail failed: %v", err)
		flash.Redirect(c, "error", "Something went wrong. Please try again.", user.Role.HomePath())
	default:
		response.Success(c, http.StatusOK, detail)
	}
}

// APIPlaceOrder creates a quote-pending order and dispatches the two
// notification emails. Email failures are logged, never rolled into the
// response: the order is already placed.
func (h *Handler) APIPlaceOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req APIPlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing required fields: subject, deadline, instructions")
		return
	}

	o, err := h.svc.PlaceFromAPI(c.Request.Context(), user.ID, req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing required fields: subject, deadline, instructions")
			return
		}
		log.Printf("order: api place failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Error processing order")
		return
	}

	opsBody := fmt.Sprintf(
		"<h2>New Order Received!</h2>"+
			"<p><strong>Order ID:</strong> %d</p>"+
			"<p><strong>Student:</strong> %s (%s)</p>"+
			"<p><strong>Subject:</strong> %s</p>"+
			"<p><strong>Level:</strong> %s</p>"+
			"<p><strong>Deadline:</strong> %s</p>"+
			"<p><a href=%q>View Order in Dashboard</a></p>",
		o.ID, user.Name, user.Email, o.Subject, o.Level, req.Deadline,
		fmt.Sprintf("%s/admin/orders/%d", h.baseURL, o.ID),
	)
	mail.Dispatch(h.mailer, h.opsEmail, "New Order: "+o.Subject, opsBody)

	confirmBody := fmt.Sprintf(
		"<h2>Thank you for your order!</h2>"+
			"<p>Hi %s,</p>"+
			"<p>We've received your order and our team will review it shortly.</p>"+
			"<ul><li>Order ID: %d</li><li>Subject: %s</li><li>Deadline: %s</li></ul>"+
			"<p>You'll receive a follow-up email with a quote and timeline within 24 hours.</p>",
		user.Name, o.ID, o.Subject, req.Deadline,
	)
	mail.Dispatch(h.mailer, user.Email, "Order Received - We will be in touch shortly", confirmBody)

	response.Success(c, http.StatusCreated, gin.H{"order_id": o.ID})
}

func (h *Handler) saveAttachments(c *gin.Context, userID int64) ([]domain.OrderFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body means no attachments.
		return nil, nil
	}

	fhs := form.File["files"]
	files := make([]domain.OrderFile, 0, len(fhs))
	for _, fh := range fhs {
		f, err := h.saver.Save(c, userID, fh)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}
