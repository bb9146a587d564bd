package repository

import (
	"context"
	"fmt"

	"lune/internal/api/models"

	"gorm.io/gorm"
)

type FollowRepository interface {
	Create(ctx context.Context, follow *models.Follow) error
	Delete(ctx context.Context, followerID, followeeID string) error
	Followers(ctx context.Context, userID string) ([]models.User, error)
	Following(ctx context.Context, userID string) ([]models.User, error)
	Counts(ctx context.Context, userID string) (followers, following int64, err error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create follow: %w", err)
	}
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID string) error {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return fmt.Errorf("delete follow: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *followRepository) Followers(ctx context.Context, userID string) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return users, nil
}

func (r *followRepository) Following(ctx context.Context, userID string) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return users, nil
}

func (r *followRepository) Counts(ctx context.Context, userID string) (int64, int64, error) {
	var followers, following int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("followee_id = ?", userID).
		Count(&followers).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&following).Error; err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
