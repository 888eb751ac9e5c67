package handlers

import (
	"context"
	"net/http"

	"github.com/conduitapp/articled/internal/models"
	"github.com/conduitapp/articled/internal/users"
	"github.com/conduitapp/articled/pkg/logger"
	"github.com/conduitapp/articled/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// ProfileHandler exposes the user directory's public profile surface.
type ProfileHandler struct {
	users *users.Service
}

func NewProfileHandler(us *users.Service) *ProfileHandler {
	return &ProfileHandler{users: us}
}

func (h *ProfileHandler) Register(r *gin.Engine, ver middleware.Verifier) {
	p := r.Group("/api/profiles")
	p.GET("/:username", middleware.OptionalAuth(ver), h.Get)
	p.POST("/:username/follow", middleware.RequireAuth(ver), h.Follow)
	p.DELETE("/:username/follow", middleware.RequireAuth(ver), h.Unfollow)
}

func profileJSON(target *models.User, viewer *models.User) gin.H {
	following := viewer != nil && viewer.IsFollowing(target.ID)
	return gin.H{"profile": gin.H{
		"username":  target.Username,
		"bio":       target.Bio,
		"image":     target.Image,
		"following": following,
	}}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	target, err := h.users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		logger.Errorf("profile lookup: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	var viewer *models.User
	if id := middleware.IdentityFrom(c); !id.Anonymous() {
		viewer, err = h.users.GetByID(c.Request.Context(), id.Subject)
		if err != nil {
			logger.Errorf("viewer lookup: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
	}
	c.JSON(http.StatusOK, profileJSON(target, viewer))
}

func (h *ProfileHandler) Follow(c *gin.Context) {
	h.mutateFollow(c, h.users.Follow)
}

func (h *ProfileHandler) Unfollow(c *gin.Context) {
	h.mutateFollow(c, h.users.Unfollow)
}

func (h *ProfileHandler) mutateFollow(c *gin.Context, op func(ctx context.Context, viewerID, username string) (*models.User, error)) {
	id := middleware.IdentityFrom(c)
	target, err := op(c.Request.Context(), id.Subject, c.Param("username"))
	if err != nil {
		logger.Errorf("follow mutation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	viewer, err := h.users.GetByID(c.Request.Context(), id.Subject)
	if err != nil {
		logger.Errorf("viewer lookup: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, profileJSON(target, viewer))
}
