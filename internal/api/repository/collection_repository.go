package repository

import (
	"context"
	"errors"
	"fmt"

	"lune/internal/api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicate is returned when an insert hits a unique constraint. Callers
// that want idempotent adds treat it as success.
var ErrDuplicate = errors.New("duplicate row")

// isUniqueViolation inspects the postgres error code for a unique-constraint
// violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type CollectionRepository interface {
	Create(ctx context.Context, collection *models.Collection) error
	GetByID(ctx context.Context, id string) (*models.Collection, error)
	ListByUser(ctx context.Context, userID string) ([]models.Collection, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	AddItem(ctx context.Context, item *models.CollectionItem) error
	RemoveItem(ctx context.Context, collectionID, mediaID string) error
}

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Create(ctx context.Context, collection *models.Collection) error {
	if err := r.db.WithContext(ctx).Create(collection).Error; err != nil {
		return fmt.Errorf("create collection: %w", err)
	}
	return nil
}

func (r *collectionRepository) GetByID(ctx context.Context, id string) (*models.Collection, error) {
	var collection models.Collection
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Media").
		First(&collection, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

func (r *collectionRepository) ListByUser(ctx context.Context, userID string) ([]models.Collection, error) {
	var collections []models.Collection
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&collections).Error; err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return collections, nil
}

func (r *collectionRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Collection{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return fmt.Errorf("update collection: %w", err)
	}
	return nil
}

func (r *collectionRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Collection{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return nil
}

func (r *collectionRepository) AddItem(ctx context.Context, item *models.CollectionItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("add collection item: %w", err)
	}
	return nil
}

func (r *collectionRepository) RemoveItem(ctx context.Context, collectionID, mediaID string) error {
	result := r.db.WithContext(ctx).
		Where("collection_id = ? AND media_id = ?", collectionID, mediaID).
		Delete(&models.CollectionItem{})
	if result.Error != nil {
		return fmt.Errorf("remove collection item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
