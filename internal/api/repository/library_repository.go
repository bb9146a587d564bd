package repository

import (
	"context"
	"fmt"

	"lune/internal/api/models"

	"gorm.io/gorm"
)

// LibraryRepository manages per-user tracking rows. GetByUserAndMedia returns
// gorm.ErrRecordNotFound unwrapped so callers can tell "no row yet" apart
// from real storage failures.
type LibraryRepository interface {
	GetByUserAndMedia(ctx context.Context, userID, mediaID string) (*models.LibraryEntry, error)
	Insert(ctx context.Context, entry *models.LibraryEntry) error
	UpdateFields(ctx context.Context, entryID int64, fields map[string]any) error
	ListByUser(ctx context.Context, userID, status string) ([]models.LibraryEntry, error)
	Remove(ctx context.Context, userID, mediaID string) error
}

type libraryRepository struct {
	db *gorm.DB
}

func NewLibraryRepository(db *gorm.DB) LibraryRepository {
	return &libraryRepository{db: db}
}

func (r *libraryRepository) GetByUserAndMedia(ctx context.Context, userID, mediaID string) (*models.LibraryEntry, error) {
	var entry models.LibraryEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND media_id = ?", userID, mediaID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *libraryRepository) Insert(ctx context.Context, entry *models.LibraryEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("insert library entry: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update keyed by the row's own id. Only the
// given columns are touched; everything else keeps its stored value.
func (r *libraryRepository) UpdateFields(ctx context.Context, entryID int64, fields map[string]any) error {
	if err := r.db.WithContext(ctx).
		Model(&models.LibraryEntry{}).
		Where("id = ?", entryID).
		Updates(fields).Error; err != nil {
		return fmt.Errorf("update library entry: %w", err)
	}
	return nil
}

func (r *libraryRepository) ListByUser(ctx context.Context, userID, status string) ([]models.LibraryEntry, error) {
	var entries []models.LibraryEntry
	q := r.db.WithContext(ctx).
		Preload("Media").
		Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("updated_at DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list library: %w", err)
	}
	return entries, nil
}

func (r *libraryRepository) Remove(ctx context.Context, userID, mediaID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND media_id = ?", userID, mediaID).
		Delete(&models.LibraryEntry{})
	if result.Error != nil {
		return fmt.Errorf("remove library entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
