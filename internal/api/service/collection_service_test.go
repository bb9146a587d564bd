package service

import (
	"context"
	"testing"

	"lune/internal/api/dto"
	"lune/internal/api/models"
	"lune/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockCollectionRepository mocks the CollectionRepository interface
type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) Create(ctx context.Context, collection *models.Collection) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}

func (m *MockCollectionRepository) GetByID(ctx context.Context, id string) (*models.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockCollectionRepository) ListByUser(ctx context.Context, userID string) ([]models.Collection, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Collection), args.Error(1)
}

func (m *MockCollectionRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockCollectionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCollectionRepository) AddItem(ctx context.Context, item *models.CollectionItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCollectionRepository) RemoveItem(ctx context.Context, collectionID, mediaID string) error {
	args := m.Called(ctx, collectionID, mediaID)
	return args.Error(0)
}

func ownedCollection() *models.Collection {
	return &models.Collection{ID: "col-1", UserID: "user-1", Name: "Rainy day films"}
}

func TestCollectionCreate(t *testing.T) {
	repo := new(MockCollectionRepository)
	svc := NewCollectionService(repo, new(MockCatalogRepository))

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Collection) bool {
		return c.UserID == "user-1" && c.Name == "Rainy day films"
	})).Return(nil)

	collection, err := svc.Create(context.Background(), "user-1", &dto.CreateCollectionRequest{
		Name: "Rainy day films",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", collection.UserID)
	repo.AssertExpectations(t)
}

func TestCollectionUpdate_OwnershipEnforced(t *testing.T) {
	repo := new(MockCollectionRepository)
	svc := NewCollectionService(repo, new(MockCatalogRepository))

	repo.On("GetByID", mock.Anything, "col-1").Return(ownedCollection(), nil)

	err := svc.Update(context.Background(), "user-2", "col-1", &dto.UpdateCollectionRequest{
		Name: ptr("Stolen"),
	})

	assert.ErrorIs(t, err, ErrNotOwner)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestCollectionUpdate_PartialFields(t *testing.T) {
	repo := new(MockCollectionRepository)
	svc := NewCollectionService(repo, new(MockCatalogRepository))

	repo.On("GetByID", mock.Anything, "col-1").Return(ownedCollection(), nil)
	repo.On("Update", mock.Anything, "col-1", map[string]any{"name": "Renamed"}).Return(nil)

	err := svc.Update(context.Background(), "user-1", "col-1", &dto.UpdateCollectionRequest{
		Name: ptr("Renamed"),
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCollectionGet_NotFound(t *testing.T) {
	repo := new(MockCollectionRepository)
	svc := NewCollectionService(repo, new(MockCatalogRepository))

	repo.On("GetByID", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCollectionNotFound)
}

func TestAddItem_RequiresCatalogEntry(t *testing.T) {
	repo := new(MockCollectionRepository)
	catalog := new(MockCatalogRepository)
	svc := NewCollectionService(repo, catalog)

	repo.On("GetByID", mock.Anything, "col-1").Return(ownedCollection(), nil)
	catalog.On("GetByID", mock.Anything, "movie-404").Return(nil, gorm.ErrRecordNotFound)

	err := svc.AddItem(context.Background(), "user-1", "col-1", "movie-404")

	assert.ErrorIs(t, err, ErrMediaNotInCatalog)
	repo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything)
}

func TestAddItem_IdempotentOnDuplicate(t *testing.T) {
	repo := new(MockCollectionRepository)
	catalog := new(MockCatalogRepository)
	svc := NewCollectionService(repo, catalog)

	repo.On("GetByID", mock.Anything, "col-1").Return(ownedCollection(), nil)
	catalog.On("GetByID", mock.Anything, "movie-42").
		Return(&models.MediaItem{ID: "movie-42"}, nil)
	repo.On("AddItem", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	// Re-adding an existing member reports success.
	assert.NoError(t, svc.AddItem(context.Background(), "user-1", "col-1", "movie-42"))
}

func TestRemoveItem_NotInCollection(t *testing.T) {
	repo := new(MockCollectionRepository)
	svc := NewCollectionService(repo, new(MockCatalogRepository))

	repo.On("GetByID", mock.Anything, "col-1").Return(ownedCollection(), nil)
	repo.On("RemoveItem", mock.Anything, "col-1", "movie-404").Return(gorm.ErrRecordNotFound)

	err := svc.RemoveItem(context.Background(), "user-1", "col-1", "movie-404")
	assert.ErrorIs(t, err, ErrItemNotInCollection)
}

func TestCollectionDelete_Owned(t *testing.T) {
	repo := new(MockCollectionRepository)
	svc := NewCollectionService(repo, new(MockCatalogRepository))

	repo.On("GetByID", mock.Anything, "col-1").Return(ownedCollection(), nil)
	repo.On("Delete", mock.Anything, "col-1").Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), "user-1", "col-1"))
	repo.AssertExpectations(t)
}
