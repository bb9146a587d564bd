package service

import (
	"context"
	"testing"

	"lune/internal/api/models"
	"lune/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockFollowRepository mocks the FollowRepository interface
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(ctx context.Context, follow *models.Follow) error {
	args := m.Called(ctx, follow)
	return args.Error(0)
}

func (m *MockFollowRepository) Delete(ctx context.Context, followerID, followeeID string) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}

func (m *MockFollowRepository) Followers(ctx context.Context, userID string) ([]models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockFollowRepository) Following(ctx context.Context, userID string) ([]models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockFollowRepository) Counts(ctx context.Context, userID string) (int64, int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) TouchLastLogin(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestFollow_Self(t *testing.T) {
	svc := NewSocialService(new(MockFollowRepository), new(MockUserRepository))

	err := svc.Follow(context.Background(), "user-1", "user-1")
	assert.ErrorIs(t, err, ErrSelfFollow)
}

func TestFollow_UnknownUser(t *testing.T) {
	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	svc := NewSocialService(followRepo, userRepo)

	userRepo.On("FindByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

	err := svc.Follow(context.Background(), "user-1", "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
	followRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFollow_Success(t *testing.T) {
	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	svc := NewSocialService(followRepo, userRepo)

	userRepo.On("FindByID", "user-2").Return(&models.User{ID: "user-2"}, nil)
	followRepo.On("Create", mock.Anything, mock.MatchedBy(func(f *models.Follow) bool {
		return f.FollowerID == "user-1" && f.FolloweeID == "user-2"
	})).Return(nil)

	assert.NoError(t, svc.Follow(context.Background(), "user-1", "user-2"))
	followRepo.AssertExpectations(t)
}

func TestFollow_AlreadyFollowingIsSuccess(t *testing.T) {
	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	svc := NewSocialService(followRepo, userRepo)

	userRepo.On("FindByID", "user-2").Return(&models.User{ID: "user-2"}, nil)
	followRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

	assert.NoError(t, svc.Follow(context.Background(), "user-1", "user-2"))
}

func TestUnfollow_NotFollowing(t *testing.T) {
	followRepo := new(MockFollowRepository)
	svc := NewSocialService(followRepo, new(MockUserRepository))

	followRepo.On("Delete", mock.Anything, "user-1", "user-2").Return(gorm.ErrRecordNotFound)

	err := svc.Unfollow(context.Background(), "user-1", "user-2")
	assert.ErrorIs(t, err, ErrNotFollowing)
}

func TestFollowers(t *testing.T) {
	followRepo := new(MockFollowRepository)
	svc := NewSocialService(followRepo, new(MockUserRepository))

	followRepo.On("Followers", mock.Anything, "user-1").
		Return([]models.User{{ID: "a"}, {ID: "b"}}, nil)

	users, err := svc.Followers(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
