package service

import (
	"context"
	"errors"
	"fmt"

	"lune/internal/api/dto"
	"lune/internal/api/models"
	"lune/internal/api/repository"

	"gorm.io/gorm"
)

var (
	ErrCollectionNotFound  = errors.New("collection not found")
	ErrNotOwner            = errors.New("collection belongs to another user")
	ErrMediaNotInCatalog   = errors.New("media not found in catalog")
	ErrItemNotInCollection = errors.New("media not in collection")
)

type CollectionService interface {
	Create(ctx context.Context, userID string, req *dto.CreateCollectionRequest) (*models.Collection, error)
	Get(ctx context.Context, id string) (*models.Collection, error)
	ListByUser(ctx context.Context, userID string) ([]models.Collection, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateCollectionRequest) error
	Delete(ctx context.Context, userID, id string) error
	AddItem(ctx context.Context, userID, id, mediaID string) error
	RemoveItem(ctx context.Context, userID, id, mediaID string) error
}

type collectionService struct {
	repo        repository.CollectionRepository
	catalogRepo repository.CatalogRepository
}

func NewCollectionService(repo repository.CollectionRepository, catalogRepo repository.CatalogRepository) CollectionService {
	return &collectionService{
		repo:        repo,
		catalogRepo: catalogRepo,
	}
}

func (s *collectionService) Create(ctx context.Context, userID string, req *dto.CreateCollectionRequest) (*models.Collection, error) {
	collection := &models.Collection{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

func (s *collectionService) Get(ctx context.Context, id string) (*models.Collection, error) {
	collection, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, fmt.Errorf("get collection: %w", err)
	}
	return collection, nil
}

func (s *collectionService) ListByUser(ctx context.Context, userID string) ([]models.Collection, error) {
	return s.repo.ListByUser(ctx, userID)
}

// requireOwned loads the collection and checks it belongs to userID.
func (s *collectionService) requireOwned(ctx context.Context, userID, id string) (*models.Collection, error) {
	collection, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if collection.UserID != userID {
		return nil, ErrNotOwner
	}
	return collection, nil
}

func (s *collectionService) Update(ctx context.Context, userID, id string, req *dto.UpdateCollectionRequest) error {
	if _, err := s.requireOwned(ctx, userID, id); err != nil {
		return err
	}
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if len(fields) == 0 {
		return nil
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *collectionService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.requireOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// AddItem is idempotent: adding a media item that is already in the
// collection is success, not a conflict.
func (s *collectionService) AddItem(ctx context.Context, userID, id, mediaID string) error {
	if _, err := s.requireOwned(ctx, userID, id); err != nil {
		return err
	}
	// Membership rows reference the catalog; the entry must already exist
	// (created by a library save or a prior search).
	if _, err := s.catalogRepo.GetByID(ctx, mediaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMediaNotInCatalog
		}
		return fmt.Errorf("check catalog entry: %w", err)
	}
	err := s.repo.AddItem(ctx, &models.CollectionItem{
		CollectionID: id,
		MediaID:      mediaID,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil
	}
	return err
}

func (s *collectionService) RemoveItem(ctx context.Context, userID, id, mediaID string) error {
	if _, err := s.requireOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.RemoveItem(ctx, id, mediaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotInCollection
		}
		return err
	}
	return nil
}
