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

type CollectionHandler struct {
	svc service.CollectionService
}

func NewCollectionHandler(svc service.CollectionService) *CollectionHandler {
	return &CollectionHandler{svc: svc}
}

func (h *CollectionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/items", h.AddItem)
	rg.DELETE("/:id/items/:media_id", h.RemoveItem)
}

// collectionError maps service errors onto HTTP statuses.
func collectionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCollectionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "collection not found"})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "collection belongs to another user"})
	case errors.Is(err, service.ErrMediaNotInCatalog):
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
	case errors.Is(err, service.ErrItemNotInCollection):
		c.JSON(http.StatusNotFound, gin.H{"error": "media not in collection"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update collection"})
	}
}

func (h *CollectionHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	collection, err := h.svc.Create(ctx, userID, &req)
	if err != nil {
		collectionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromCollection(*collection))
}

func (h *CollectionHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	collections, err := h.svc.ListByUser(ctx, userID)
	if err != nil {
		collectionError(c, err)
		return
	}

	resp := make([]dto.CollectionResponse, 0, len(collections))
	for _, collection := range collections {
		resp = append(resp, dto.FromCollection(collection))
	}
	c.JSON(http.StatusOK, gin.H{"collections": resp, "total": len(resp)})
}

func (h *CollectionHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	collection, err := h.svc.Get(ctx, c.Param("id"))
	if err != nil {
		collectionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCollection(*collection))
}

func (h *CollectionHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Update(ctx, userID, c.Param("id"), &req); err != nil {
		collectionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CollectionHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, userID, c.Param("id")); err != nil {
		collectionError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddItem is idempotent: re-adding an item reports success.
func (h *CollectionHandler) AddItem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.AddCollectionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.AddItem(ctx, userID, c.Param("id"), req.MediaID); err != nil {
		collectionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CollectionHandler) RemoveItem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.RemoveItem(ctx, userID, c.Param("id"), c.Param("media_id")); err != nil {
		collectionError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
