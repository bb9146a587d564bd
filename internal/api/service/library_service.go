package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lune/internal/api/dto"
	"lune/internal/api/models"
	"lune/internal/api/repository"

	"gorm.io/gorm"
)

var (
	// ErrUnauthenticated: no authenticated identity; nothing was written.
	ErrUnauthenticated = errors.New("must be logged in")
	// ErrInvalidInput: malformed payload; nothing was written.
	ErrInvalidInput = errors.New("invalid input")
	// ErrCatalogWrite: the catalog upsert failed; the library write was never attempted.
	ErrCatalogWrite = errors.New("failed to save media details")
	// ErrStorage: library read or write failed (anything other than "not found").
	ErrStorage = errors.New("failed to update your library")
	// ErrNotInLibrary: the (user, media) pair has no tracking row.
	ErrNotInLibrary = errors.New("media not in library")
)

type LibraryService interface {
	Save(ctx context.Context, userID string, req *dto.SaveLibraryRequest) error
	Get(ctx context.Context, userID, mediaID string) (*models.LibraryEntry, error)
	List(ctx context.Context, userID, status string) ([]models.LibraryEntry, error)
	Remove(ctx context.Context, userID, mediaID string) error
}

type libraryService struct {
	repo        repository.LibraryRepository
	catalogRepo repository.CatalogRepository
}

func NewLibraryService(repo repository.LibraryRepository, catalogRepo repository.CatalogRepository) LibraryService {
	return &libraryService{
		repo:        repo,
		catalogRepo: catalogRepo,
	}
}

// updateSet holds the candidate fields that survived the field-level rules.
// Nil means "leave the stored value alone".
type updateSet struct {
	status         *string
	rating         *int
	isFavourite    *bool
	currentEpisode *int
	currentSeason  *int
	currentPage    *int
	completedAt    *time.Time
}

func (u *updateSet) empty() bool {
	return u.status == nil && u.rating == nil && u.isFavourite == nil &&
		u.currentEpisode == nil && u.currentSeason == nil &&
		u.currentPage == nil && u.completedAt == nil
}

// createsEntry reports whether the set is enough to create a new row. Bare
// progress or rating updates never create one.
func (u *updateSet) createsEntry() bool {
	return u.status != nil || u.isFavourite != nil
}

func (u *updateSet) fields() map[string]any {
	fields := map[string]any{}
	if u.status != nil {
		fields["status"] = *u.status
	}
	if u.rating != nil {
		fields["rating"] = *u.rating
	}
	if u.isFavourite != nil {
		fields["is_favourite"] = *u.isFavourite
	}
	if u.currentEpisode != nil {
		fields["current_episode"] = *u.currentEpisode
	}
	if u.currentSeason != nil {
		fields["current_season"] = *u.currentSeason
	}
	if u.currentPage != nil {
		fields["current_page"] = *u.currentPage
	}
	if u.completedAt != nil {
		fields["completed_at"] = *u.completedAt
	}
	return fields
}

func (u *updateSet) newEntry(userID, mediaID string) *models.LibraryEntry {
	entry := &models.LibraryEntry{
		UserID:         userID,
		MediaID:        mediaID,
		Status:         u.status,
		Rating:         u.rating,
		CurrentEpisode: u.currentEpisode,
		CurrentSeason:  u.currentSeason,
		CurrentPage:    u.currentPage,
		CompletedAt:    u.completedAt,
	}
	if u.isFavourite != nil {
		entry.IsFavourite = *u.isFavourite
	}
	return entry
}

// Save reconciles a partial save payload against the user's stored tracking
// state for one media item. The catalog entry is refreshed first; if that
// fails, nothing else runs. A catalog refresh without a library change is
// fine, so there is no rollback pairing the two writes.
func (s *libraryService) Save(ctx context.Context, userID string, req *dto.SaveLibraryRequest) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if req == nil || req.MediaID == "" {
		return ErrInvalidInput
	}
	mediaType := models.MediaType(req.MediaType)
	if !mediaType.Valid() {
		return ErrInvalidInput
	}
	if req.Status != nil && !models.ValidStatus(*req.Status) {
		return ErrInvalidInput
	}

	if err := s.catalogRepo.Upsert(ctx, req.CatalogItem()); err != nil {
		return fmt.Errorf("%w: %v", ErrCatalogWrite, err)
	}

	existing, err := s.repo.GetByUserAndMedia(ctx, userID, req.MediaID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
		existing = nil
	}

	updates := s.buildUpdateSet(req, mediaType, existing)

	switch {
	case existing != nil:
		if updates.empty() {
			return nil
		}
		if err := s.repo.UpdateFields(ctx, existing.ID, updates.fields()); err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
	case updates.createsEntry():
		if err := s.repo.Insert(ctx, updates.newEntry(userID, req.MediaID)); err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
	default:
		// Progress or rating on an untracked item is dropped silently.
	}
	return nil
}

// buildUpdateSet applies the field-level rules:
//   - status goes through as provided
//   - rating only sticks when positive and a status exists, old or new
//   - favourite is independent of status, explicit false included
//   - progress fields are gated by media type
//   - completed_at is written exactly once, on the first completion
func (s *libraryService) buildUpdateSet(req *dto.SaveLibraryRequest, mediaType models.MediaType, existing *models.LibraryEntry) *updateSet {
	updates := &updateSet{
		status:      req.Status,
		isFavourite: req.IsFavourite,
	}

	if req.Rating != nil && *req.Rating > 0 {
		hasStatus := req.Status != nil || (existing != nil && existing.Status != nil)
		if hasStatus {
			updates.rating = req.Rating
		}
	}

	if mediaType.Episodic() {
		updates.currentEpisode = req.CurrentEpisode
		updates.currentSeason = req.CurrentSeason
	}
	if mediaType.Paginated() {
		updates.currentPage = req.CurrentPage
	}

	if req.Status != nil && *req.Status == models.StatusCompleted {
		if existing == nil || existing.CompletedAt == nil {
			now := time.Now()
			updates.completedAt = &now
		}
	}

	return updates
}

func (s *libraryService) Get(ctx context.Context, userID, mediaID string) (*models.LibraryEntry, error) {
	entry, err := s.repo.GetByUserAndMedia(ctx, userID, mediaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotInLibrary
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if media, err := s.catalogRepo.GetByID(ctx, mediaID); err == nil {
		entry.Media = media
	}
	return entry, nil
}

func (s *libraryService) List(ctx context.Context, userID, status string) ([]models.LibraryEntry, error) {
	if status != "" && !models.ValidStatus(status) {
		return nil, ErrInvalidInput
	}
	entries, err := s.repo.ListByUser(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return entries, nil
}

func (s *libraryService) Remove(ctx context.Context, userID, mediaID string) error {
	if err := s.repo.Remove(ctx, userID, mediaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotInLibrary
		}
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}
