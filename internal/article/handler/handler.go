package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/conduitapp/articled/internal/article"
	"github.com/conduitapp/articled/internal/article/service"
	"github.com/conduitapp/articled/pkg/logger"
	"github.com/conduitapp/articled/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// Handler exposes the article service over HTTP.
type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the article routes. Listing and single-article reads use
// optional auth (invalid credentials degrade to anonymous); everything that
// writes requires a verified viewer.
func (h *Handler) Register(r *gin.Engine, ver middleware.Verifier) {
	a := r.Group("/api/articles")
	a.GET("", middleware.OptionalAuth(ver), h.List)
	a.GET("/feed", middleware.RequireAuth(ver), h.Feed)
	a.POST("", middleware.RequireAuth(ver), h.Create)
	a.GET("/:slug", middleware.OptionalAuth(ver), h.Get)
	a.PUT("/:slug", middleware.RequireAuth(ver), h.Update)
	a.DELETE("/:slug", middleware.RequireAuth(ver), h.Delete)
	a.POST("/:slug/favorite", middleware.RequireAuth(ver), h.Favorite)
	a.DELETE("/:slug/favorite", middleware.RequireAuth(ver), h.Unfavorite)
}

// articleBody is the request envelope for create and update.
type articleBody struct {
	Article struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Body        *string   `json:"body"`
		TagList     *[]string `json:"tagList"`
	} `json:"article" binding:"required"`
}

// writeError maps service errors onto the HTTP taxonomy. Store failures are
// logged and surfaced as 500, never swallowed.
func writeError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"missing": verr.Missing}})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "not the article author"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "could not assign a unique slug"})
	default:
		logger.Errorf("article handler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func listParams(c *gin.Context) service.ListParams {
	p := service.ListParams{
		Tags:        c.QueryArray("tag"),
		Author:      c.Query("author"),
		FavoritedBy: c.QueryArray("favorited"),
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			p.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			p.Offset = n
		}
	}
	return p
}

func (h *Handler) List(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	res, err := h.svc.List(c.Request.Context(), listParams(c), id.Subject)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Feed(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	res, err := h.svc.Feed(c.Request.Context(), listParams(c), id.Subject)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) Get(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	p, err := h.svc.Get(c.Request.Context(), c.Param("slug"), id.Subject)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": p})
}

func (h *Handler) Create(c *gin.Context) {
	var req articleBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in := service.CreateInput{}
	if req.Article.Title != nil {
		in.Title = *req.Article.Title
	}
	if req.Article.Description != nil {
		in.Description = *req.Article.Description
	}
	if req.Article.Body != nil {
		in.Body = *req.Article.Body
	}
	if req.Article.TagList != nil {
		in.TagList = *req.Article.TagList
	}
	id := middleware.IdentityFrom(c)
	p, err := h.svc.Create(c.Request.Context(), in, id.Subject)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": p})
}

func (h *Handler) Update(c *gin.Context) {
	var req articleBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ch := article.Changes{
		Title:       req.Article.Title,
		Description: req.Article.Description,
		Body:        req.Article.Body,
		TagList:     req.Article.TagList,
	}
	id := middleware.IdentityFrom(c)
	p, err := h.svc.Update(c.Request.Context(), c.Param("slug"), ch, id.Subject)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": p})
}

func (h *Handler) Delete(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	if err := h.svc.Delete(c.Request.Context(), c.Param("slug"), id.Subject); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *Handler) Favorite(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	p, err := h.svc.Favorite(c.Request.Context(), c.Param("slug"), id.Subject)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": p})
}

func (h *Handler) Unfavorite(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	p, err := h.svc.Unfavorite(c.Request.Context(), c.Param("slug"), id.Subject)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": p})
}
