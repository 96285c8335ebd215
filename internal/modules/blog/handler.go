package blog

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
	svc     *Service
	baseURL string
}

func NewHandler(svc *Service, baseURL string) *Handler {
	return &Handler{svc: svc, baseURL: baseURL}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/blog", h.List)
	r.GET("/blog/:slug", h.GetBySlug)
	r.GET("/sitemap.xml", h.Sitemap)

	w := r.Group("/writer/posts", middleware.RequireWriter())
	{
		w.POST("", h.Create)
		w.POST("/:id/update", h.Update)
		w.POST("/:id/delete", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	posts, err := h.svc.List(c.Request.Context())
	if err != nil {
		log.Printf("blog: list failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to load posts.")
		return
	}
	response.Success(c, http.StatusOK, posts)
}

func (h *Handler) GetBySlug(c *gin.Context) {
	post, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	switch {
	case errors.Is(err, ErrPostNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Post not found")
	case err != nil:
		log.Printf("blog: get failed: %v", err)
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "Failed to load post.")
	default:
		response.Success(c, http.StatusOK, post)
	}
}

func (h *Handler) Sitemap(c *gin.Context) {
	body, err := h.svc.Sitemap(c.Request.Context(), h.baseURL)
	if err != nil {
		log.Printf("blog: sitemap failed: %v", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

func (h *Handler) Create(c *gin.Context) {
	var req PostRequest
	_ = c.ShouldBind(&req)

	post, err := h.svc.Create(c.Request.Context(), req)
	switch {
	case errors.Is(err, ErrValidation):
		flash.Redirect(c, "error", "Title and content are required.", "/writer/dashboard")
	case errors.Is(err, ErrSlugTaken):
		flash.Redirect(c, "error", "A post with this title already exists.", "/writer/dashboard")
	case err != nil:
		log.Printf("blog: create failed: %v", err)
		flash.Redirect(c, "error", "Failed to publish post.", "/writer/dashboard")
	default:
		flash.Redirect(c, "success", "Post published.", "/blog/"+post.Slug)
	}
}

func (h *Handler) Update(c *gin.Context) {
	id, parseErr := strconv.ParseInt(c.Param("id"), 10, 64)
	if parseErr != nil {
		flash.Redirect(c, "error", "Post not found.", "/writer/dashboard")
		return
	}

	var req PostRequest
	_ = c.ShouldBind(&req)

	post, err := h.svc.Update(c.Request.Context(), id, req)
	switch {
	case errors.Is(err, ErrValidation):
		flash.Redirect(c, "error", "Title and content are required.", "/writer/dashboard")
	case errors.Is(err, ErrPostNotFound):
		flash.Redirect(c, "error", "Post not found.", "/writer/dashboard")
	case errors.Is(err, ErrSlugTaken):
		flash.Redirect(c, "error", "A post with this title already exists.", "/writer/dashboard")
	case err != nil:
		log.Printf("blog: update failed: %v", err)
		flash.Redirect(c, "error", "Failed to update post.", "/writer/dashboard")
	default:
		flash.Redirect(c, "success", "Post updated.", "/blog/"+post.Slug)
	}
}

func (h *Handler) Delete(c *gin.Context) {
	id, parseErr := strconv.ParseInt(c.Param("id"), 10, 64)
	if parseErr != nil {
		flash.Redirect(c, "error", "Post not found.", "/writer/dashboard")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		log.Printf("blog: delete failed: %v", err)
		flash.Redirect(c, "error", "Failed to delete post.", "/writer/dashboard")
		return
	}
	flash.Redirect(c, "success", "Post deleted.", "/writer/dashboard")
}
