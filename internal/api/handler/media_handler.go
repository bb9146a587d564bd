package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"lune/internal/api/dto"
	"lune/internal/api/repository"
	"lune/internal/metadata"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MediaHandler serves the public discovery surface: trending feeds, search
// against the upstream providers, and catalog lookups.
type MediaHandler struct {
	meta        *metadata.Service
	catalogRepo repository.CatalogRepository
}

func NewMediaHandler(meta *metadata.Service, catalogRepo repository.CatalogRepository) *MediaHandler {
	return &MediaHandler{meta: meta, catalogRepo: catalogRepo}
}

func (h *MediaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/trending", h.Trending)
	rg.GET("/search", h.Search)
	rg.GET("/:media_id", h.Get)
}

func (h *MediaHandler) Trending(c *gin.Context) {
	mediaType := c.Query("type")
	page := 1
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	items, err := h.meta.Trending(ctx, mediaType, page)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown media type"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (h *MediaHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	items, err := h.meta.Search(ctx, c.Query("type"), query)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown media type"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// Get looks up an entry in the local catalog.
func (h *MediaHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	item, err := h.catalogRepo.GetByID(ctx, c.Param("media_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load media"})
		return
	}

	c.JSON(http.StatusOK, dto.FromMediaItem(*item))
}
