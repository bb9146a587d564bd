package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"lune/internal/api/dto"
	"lune/internal/api/middleware"
	"lune/internal/api/models"
	"lune/internal/api/service"

	"github.com/gin-gonic/gin"
)

type SocialHandler struct {
	svc      service.SocialService
	statsSvc service.StatsService
}

func NewSocialHandler(svc service.SocialService, statsSvc service.StatsService) *SocialHandler {
	return &SocialHandler{svc: svc, statsSvc: statsSvc}
}

func (h *SocialHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/:id/follow", h.Follow)
	rg.DELETE("/:id/follow", h.Unfollow)
	rg.GET("/:id/followers", h.Followers)
	rg.GET("/:id/following", h.Following)
	rg.GET("/:id/stats", h.Stats)
}

// Follow is idempotent: re-following reports success.
func (h *SocialHandler) Follow(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Follow(ctx, userID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot follow yourself"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to follow user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *SocialHandler) Unfollow(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Unfollow(ctx, userID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotFollowing) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not following this user"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unfollow user"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SocialHandler) Followers(c *gin.Context) {
	h.listUsers(c, h.svc.Followers)
}

func (h *SocialHandler) Following(c *gin.Context) {
	h.listUsers(c, h.svc.Following)
}

func (h *SocialHandler) listUsers(c *gin.Context, load func(context.Context, string) ([]models.User, error)) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, err := load(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		view := dto.FromUser(user)
		view.Email = "" // other users' emails stay private
		resp = append(resp, view)
	}
	c.JSON(http.StatusOK, gin.H{"users": resp, "total": len(resp)})
}

// Stats returns the aggregated consumption stats for a user.
func (h *SocialHandler) Stats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	stats, err := h.statsSvc.ForUser(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	followers, following, err := h.svc.Counts(ctx, c.Param("id"))
	if err == nil {
		c.JSON(http.StatusOK, gin.H{
			"stats":     stats,
			"followers": followers,
			"following": following,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
