package repository

import (
	"context"
	"fmt"

	"lune/internal/api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogRepository manages the shared media catalog.
type CatalogRepository interface {
	Upsert(ctx context.Context, item *models.MediaItem) error
	GetByID(ctx context.Context, mediaID string) (*models.MediaItem, error)
	GetByIDs(ctx context.Context, mediaIDs []string) ([]models.MediaItem, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// Upsert writes the catalog entry, replacing every column when the row
// already exists. Catalog entries are owned by whoever saved last.
func (r *catalogRepository) Upsert(ctx context.Context, item *models.MediaItem) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(item).Error; err != nil {
		return fmt.Errorf("upsert catalog entry: %w", err)
	}
	return nil
}

func (r *catalogRepository) GetByID(ctx context.Context, mediaID string) (*models.MediaItem, error) {
	var item models.MediaItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", mediaID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *catalogRepository) GetByIDs(ctx context.Context, mediaIDs []string) ([]models.MediaItem, error) {
	var items []models.MediaItem
	if len(mediaIDs) == 0 {
		return items, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", mediaIDs).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("get catalog entries: %w", err)
	}
	return items, nil
}
