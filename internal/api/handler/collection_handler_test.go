package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lune/internal/api/dto"
	"lune/internal/api/models"
	"lune/internal/api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCollectionService mocks the CollectionService interface
type MockCollectionService struct {
	mock.Mock
}

func (m *MockCollectionService) Create(ctx context.Context, userID string, req *dto.CreateCollectionRequest) (*models.Collection, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockCollectionService) Get(ctx context.Context, id string) (*models.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockCollectionService) ListByUser(ctx context.Context, userID string) ([]models.Collection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Collection), args.Error(1)
}

func (m *MockCollectionService) Update(ctx context.Context, userID, id string, req *dto.UpdateCollectionRequest) error {
	args := m.Called(ctx, userID, id, req)
	return args.Error(0)
}

func (m *MockCollectionService) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockCollectionService) AddItem(ctx context.Context, userID, id, mediaID string) error {
	args := m.Called(ctx, userID, id, mediaID)
	return args.Error(0)
}

func (m *MockCollectionService) RemoveItem(ctx context.Context, userID, id, mediaID string) error {
	args := m.Called(ctx, userID, id, mediaID)
	return args.Error(0)
}

func newCollectionRouter(svc service.CollectionService) *gin.Engine {
	router := setupRouter()
	group := router.Group("/collections")
	group.Use(asUser("user-1"))
	NewCollectionHandler(svc).RegisterRoutes(group)
	return router
}

func TestCollectionCreateEndpoint(t *testing.T) {
	mockSvc := new(MockCollectionService)
	router := newCollectionRouter(mockSvc)

	mockSvc.On("Create", mock.Anything, "user-1", mock.Anything).
		Return(&models.Collection{ID: "col-1", UserID: "user-1", Name: "Winter reads"}, nil)

	body, _ := json.Marshal(dto.CreateCollectionRequest{Name: "Winter reads"})
	req, _ := http.NewRequest("POST", "/collections", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.CollectionResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "col-1", resp.ID)
}

func TestCollectionCreate_EmptyName(t *testing.T) {
	mockSvc := new(MockCollectionService)
	router := newCollectionRouter(mockSvc)

	req, _ := http.NewRequest("POST", "/collections", bytes.NewBufferString(`{"name": ""}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCollectionUpdate_Forbidden(t *testing.T) {
	mockSvc := new(MockCollectionService)
	router := newCollectionRouter(mockSvc)

	mockSvc.On("Update", mock.Anything, "user-1", "col-9", mock.Anything).
		Return(service.ErrNotOwner)

	body, _ := json.Marshal(dto.UpdateCollectionRequest{Name: strPtr("New name")})
	req, _ := http.NewRequest("PUT", "/collections/col-9", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCollectionAddItem_MediaMissing(t *testing.T) {
	mockSvc := new(MockCollectionService)
	router := newCollectionRouter(mockSvc)

	mockSvc.On("AddItem", mock.Anything, "user-1", "col-1", "movie-404").
		Return(service.ErrMediaNotInCatalog)

	body, _ := json.Marshal(dto.AddCollectionItemRequest{MediaID: "movie-404"})
	req, _ := http.NewRequest("POST", "/collections/col-1/items", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCollectionAddItem_Success(t *testing.T) {
	mockSvc := new(MockCollectionService)
	router := newCollectionRouter(mockSvc)

	mockSvc.On("AddItem", mock.Anything, "user-1", "col-1", "movie-603").Return(nil)

	body, _ := json.Marshal(dto.AddCollectionItemRequest{MediaID: "movie-603"})
	req, _ := http.NewRequest("POST", "/collections/col-1/items", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCollectionRemoveItem(t *testing.T) {
	mockSvc := new(MockCollectionService)
	router := newCollectionRouter(mockSvc)

	mockSvc.On("RemoveItem", mock.Anything, "user-1", "col-1", "movie-603").Return(nil)

	req, _ := http.NewRequest("DELETE", "/collections/col-1/items/movie-603", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func strPtr(s string) *string { return &s }
