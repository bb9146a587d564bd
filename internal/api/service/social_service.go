package service

import (
	"context"
	"errors"
	"fmt"

	"lune/internal/api/models"
	"lune/internal/api/repository"

	"gorm.io/gorm"
)

var (
	ErrSelfFollow   = errors.New("cannot follow yourself")
	ErrUserNotFound = errors.New("user not found")
	ErrNotFollowing = errors.New("not following this user")
)

type SocialService interface {
	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error
	Followers(ctx context.Context, userID string) ([]models.User, error)
	Following(ctx context.Context, userID string) ([]models.User, error)
	Counts(ctx context.Context, userID string) (followers, following int64, err error)
}

type socialService struct {
	repo     repository.FollowRepository
	userRepo repository.UserRepository
}

func NewSocialService(repo repository.FollowRepository, userRepo repository.UserRepository) SocialService {
	return &socialService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// Follow is idempotent: following a user twice is success.
func (s *socialService) Follow(ctx context.Context, followerID, followeeID string) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}
	if _, err := s.userRepo.FindByID(followeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	err := s.repo.Create(ctx, &models.Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil
	}
	return err
}

func (s *socialService) Unfollow(ctx context.Context, followerID, followeeID string) error {
	if err := s.repo.Delete(ctx, followerID, followeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFollowing
		}
		return err
	}
	return nil
}

func (s *socialService) Followers(ctx context.Context, userID string) ([]models.User, error) {
	return s.repo.Followers(ctx, userID)
}

func (s *socialService) Following(ctx context.Context, userID string) ([]models.User, error) {
	return s.repo.Following(ctx, userID)
}

func (s *socialService) Counts(ctx context.Context, userID string) (int64, int64, error) {
	return s.repo.Counts(ctx, userID)
}
