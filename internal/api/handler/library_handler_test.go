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

// MockLibraryService mocks the LibraryService interface
type MockLibraryService struct {
	mock.Mock
}

func (m *MockLibraryService) Save(ctx context.Context, userID string, req *dto.SaveLibraryRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}

func (m *MockLibraryService) Get(ctx context.Context, userID, mediaID string) (*models.LibraryEntry, error) {
	args := m.Called(ctx, userID, mediaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LibraryEntry), args.Error(1)
}

func (m *MockLibraryService) List(ctx context.Context, userID, status string) ([]models.LibraryEntry, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LibraryEntry), args.Error(1)
}

func (m *MockLibraryService) Remove(ctx context.Context, userID, mediaID string) error {
	args := m.Called(ctx, userID, mediaID)
	return args.Error(0)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// asUser fakes an authenticated request.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func newLibraryRouter(svc service.LibraryService, userID string) *gin.Engine {
	router := setupRouter()
	group := router.Group("/library")
	if userID != "" {
		group.Use(asUser(userID))
	}
	NewLibraryHandler(svc).RegisterRoutes(group)
	return router
}

func TestLibrarySave_Success(t *testing.T) {
	mockSvc := new(MockLibraryService)
	router := newLibraryRouter(mockSvc, "user-1")

	mockSvc.On("Save", mock.Anything, "user-1", mock.MatchedBy(func(req *dto.SaveLibraryRequest) bool {
		return req.MediaID == "movie-603" && *req.Status == "completed"
	})).Return(nil)

	body, _ := json.Marshal(gin.H{
		"media_id":   "movie-603",
		"media_type": "movie",
		"title":      "The Matrix",
		"status":     "completed",
	})

	req, _ := http.NewRequest("POST", "/library", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestLibrarySave_Unauthenticated(t *testing.T) {
	mockSvc := new(MockLibraryService)
	router := newLibraryRouter(mockSvc, "")

	body, _ := json.Marshal(gin.H{
		"media_id":   "movie-603",
		"media_type": "movie",
		"title":      "The Matrix",
	})

	req, _ := http.NewRequest("POST", "/library", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockSvc.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestLibrarySave_MalformedBody(t *testing.T) {
	mockSvc := new(MockLibraryService)
	router := newLibraryRouter(mockSvc, "user-1")

	req, _ := http.NewRequest("POST", "/library", bytes.NewBufferString(`{"media_id":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLibrarySave_CatalogFailureIsBadGateway(t *testing.T) {
	mockSvc := new(MockLibraryService)
	router := newLibraryRouter(mockSvc, "user-1")

	mockSvc.On("Save", mock.Anything, "user-1", mock.Anything).Return(service.ErrCatalogWrite)

	body, _ := json.Marshal(gin.H{
		"media_id":   "movie-603",
		"media_type": "movie",
		"title":      "The Matrix",
	})

	req, _ := http.NewRequest("POST", "/library", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestLibraryList_FiltersByStatus(t *testing.T) {
	mockSvc := new(MockLibraryService)
	router := newLibraryRouter(mockSvc, "user-1")

	status := "watching"
	mockSvc.On("List", mock.Anything, "user-1", "watching").Return([]models.LibraryEntry{
		{ID: 1, MediaID: "tv-1399", Status: &status},
	}, nil)

	req, _ := http.NewRequest("GET", "/library?status=watching", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.LibraryListResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "tv-1399", resp.Items[0].MediaID)
}

func TestLibraryGet_NotFound(t *testing.T) {
	mockSvc := new(MockLibraryService)
	router := newLibraryRouter(mockSvc, "user-1")

	mockSvc.On("Get", mock.Anything, "user-1", "movie-404").Return(nil, service.ErrNotInLibrary)

	req, _ := http.NewRequest("GET", "/library/movie-404", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLibraryRemove(t *testing.T) {
	mockSvc := new(MockLibraryService)
	router := newLibraryRouter(mockSvc, "user-1")

	mockSvc.On("Remove", mock.Anything, "user-1", "movie-603").Return(nil)

	req, _ := http.NewRequest("DELETE", "/library/movie-603", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockSvc.AssertExpectations(t)
}
