package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"lune/internal/api/dto"
	"lune/internal/api/middleware"
	"lune/internal/api/service"

	"github.com/gin-gonic/gin"
)

type LibraryHandler struct {
	svc service.LibraryService
}

func NewLibraryHandler(svc service.LibraryService) *LibraryHandler {
	return &LibraryHandler{svc: svc}
}

func (h *LibraryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Save)
	rg.GET("", h.List)
	rg.GET("/:media_id", h.Get)
	rg.DELETE("/:media_id", h.Remove)
}

// Save reconciles a partial save payload into the user's library.
func (h *LibraryHandler) Save(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.SaveLibraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Save(ctx, userID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "must be logged in"})
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		case errors.Is(err, service.ErrCatalogWrite):
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to save media details"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update your library"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// List returns the user's library, optionally filtered by status.
func (h *LibraryHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entries, err := h.svc.List(ctx, userID, c.Query("status"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load your library"})
		return
	}

	items := make([]dto.LibraryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.FromLibraryEntry(entry))
	}

	c.JSON(http.StatusOK, dto.LibraryListResponse{
		Items: items,
		Total: len(items),
	})
}

// Get returns one tracked item with its catalog metadata.
func (h *LibraryHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entry, err := h.svc.Get(ctx, userID, c.Param("media_id"))
	if err != nil {
		if errors.Is(err, service.ErrNotInLibrary) {
			c.JSON(http.StatusNotFound, gin.H{"error": "media not in library"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load library entry"})
		return
	}

	c.JSON(http.StatusOK, dto.FromLibraryEntry(*entry))
}

// Remove deletes a tracked item. This is the explicit delete path; the
// reconciler itself never removes rows.
func (h *LibraryHandler) Remove(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Remove(ctx, userID, c.Param("media_id")); err != nil {
		if errors.Is(err, service.ErrNotInLibrary) {
			c.JSON(http.StatusNotFound, gin.H{"error": "media not in library"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update your library"})
		return
	}

	c.Status(http.StatusNoContent)
}
