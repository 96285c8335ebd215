package auth

import (
	"errors"
	"log"
	"net/http"

	"tutorhub/internal/domain"
	"tutorhub/internal/middleware"
	"tutorhub/internal/pkg/flash"
	jwtsvc "tutorhub/internal/pkg/jwt"
	"tutorhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc          *Service
	jwt          *jwtsvc.Service
	google       GoogleVerifier
	cookieMaxAge int
}

func NewHandler(svc *Service, jwt *jwtsvc.Service, google GoogleVerifier, cookieMaxAge int) *Handler {
	return &Handler{svc: svc, jwt: jwt, google: google, cookieMaxAge: cookieMaxAge}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
	r.POST("/forgot-password", h.ForgotPassword)
	r.GET("/reset-password/:token", h.ShowResetToken)
	r.POST("/reset-password/:token", h.ResetPassword)
	r.GET("/auth/google/callback", h.GoogleCallback)
	r.GET("/profile", middleware.RequireLogin(), h.Profile)
}

// Profile is the student home view. The user row is re-read so the
// wallet balance reflects completed top-ups, not the stale cookie
// claims; any flash notice from the preceding redirect rides along.
func (h *Handler) Profile(c *gin.Context) {
	session := middleware.CurrentUser(c)

	user, err := h.svc.Profile(c.Request.Context(), session.ID)
	if err != nil {
		log.Printf("auth: profile failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to load profile.")
		return
	}

	payload := gin.H{"user": user}
	if notice, ok := flash.Take(c); ok {
		payload["notice"] = notice
	}
	response.Success(c, http.StatusOK, payload)
}

func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		flash.Redirect(c, "error", "Name, email and password are required.", "/signup")
		return
	}

	_, err := h.svc.Signup(c.Request.Context(), req)
	switch {
	case errors.Is(err, ErrPasswordTooShort):
		flash.Redirect(c, "error", "Password must be at least 8 characters long.", "/signup")
	case errors.Is(err, ErrEmailAlreadyExists):
		flash.Redirect(c, "error", "That email is already registered. Please login.", "/signup")
	case err != nil:
		log.Printf("auth: signup failed: %v", err)
		flash.Redirect(c, "error", "Signup failed. Please try again.", "/signup")
	default:
		flash.Redirect(c, "success", "Account created! Please log in.", "/login")
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		flash.Redirect(c, "error", "Email and password are required.", "/login")
		return
	}

	user, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			flash.Redirect(c, "error", "Invalid email or password", "/login")
			return
		}
		log.Printf("auth: login failed: %v", err)
		flash.Redirect(c, "error", "Something went wrong. Please try again.", "/login")
		return
	}

	if err := h.issueSession(c, user); err != nil {
		log.Printf("auth: session issue failed: %v", err)
		flash.Redirect(c, "error", "Session error - please try again", "/login")
		return
	}

	flash.Redirect(c, "success", "Welcome back, "+user.Name+"!", user.Role.HomePath())
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		flash.Redirect(c, "error", "Email is required.", "/forgot-password")
		return
	}

	if err := h.svc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		log.Printf("auth: password reset request failed: %v", err)
		flash.Redirect(c, "error", "Something went wrong. Please try again.", "/forgot-password")
		return
	}

	// Same notice whether or not the account exists.
	flash.Redirect(c, "success", "If an account exists, a reset email has been sent", "/forgot-password")
}

func (h *Handler) ShowResetToken(c *gin.Context) {
	token := c.Param("token")
	if err := h.svc.ValidateResetToken(c.Request.Context(), token); err != nil {
		flash.Redirect(c, "error", "Password reset token is invalid or has expired.", "/forgot-password")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": token})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		flash.Redirect(c, "error", "Password and confirmation are required.", "/forgot-password")
		return
	}

	token := c.Param("token")
	err := h.svc.ResetPassword(c.Request.Context(), token, req)
	switch {
	case errors.Is(err, ErrPasswordMismatch):
		flash.Redirect(c, "error", "Passwords do not match", "/reset-password/"+token)
	case errors.Is(err, ErrPasswordTooShort):
		flash.Redirect(c, "error", "Password must be at least 8 characters long.", "/reset-password/"+token)
	case errors.Is(err, ErrInvalidResetToken):
		flash.Redirect(c, "error", "Password reset token is invalid or has expired", "/forgot-password")
	case err != nil:
		log.Printf("auth: password reset failed: %v", err)
		flash.Redirect(c, "error", "Failed to reset password", "/forgot-password")
	default:
		flash.Redirect(c, "success", "Success! Your password has been changed.", "/login")
	}
}

func (h *Handler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		flash.Redirect(c, "error", "Google login failed. Please try again.", "/login")
		return
	}

	identity, err := h.google.Verify(c.Request.Context(), code)
	if err != nil {
		log.Printf("auth: google verify failed: %v", err)
		flash.Redirect(c, "error", "Google login failed. Please try again.", "/login")
		return
	}

	user, err := h.svc.ExternalLogin(c.Request.Context(), *identity)
	if err != nil {
		log.Printf("auth: external login failed: %v", err)
		flash.Redirect(c, "error", "Google login failed. Please try again.", "/login")
		return
	}

	if err := h.issueSession(c, user); err != nil {
		log.Printf("auth: session issue failed: %v", err)
		flash.Redirect(c, "error", "Session error - please try again", "/login")
		return
	}

	flash.Redirect(c, "success", "Welcome back, "+user.Name+"!", user.Role.HomePath())
}

func (h *Handler) issueSession(c *gin.Context, user *domain.User) error {
	token, err := h.jwt.GenerateToken(jwtsvc.Claims{
		UserID:        user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Role:          string(user.Role),
		WalletBalance: user.WalletBalance,
		AuthProvider:  string(user.AuthProvider),
	})
	if err != nil {
		return err
	}
	c.SetCookie(middleware.SessionCookie, token, h.cookieMaxAge, "/", "", false, true)
	return nil
}
