// internal/service/settings_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rarebit-ledger/internal/domain"
	"rarebit-ledger/internal/repository"
	"rarebit-ledger/internal/util"
)

// SettingsService covers the small user-scoped settings surfaces: categories
// and the profile.
type SettingsService interface {
	CreateCategory(ctx context.Context, userID int64, name string, color *string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID int64) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID int64) error

	GetProfile(ctx context.Context, userID int64) (*domain.Profile, error)
	SaveProfile(ctx context.Context, userID int64, username, avatarURL *string) (*domain.Profile, error)
}

type settingsService struct {
	dbExecutor   repository.DBExecutor
	categoryRepo repository.CategoryRepository
	profileRepo  repository.ProfileRepository
}

// NewSettingsService creates a new instance of SettingsService.
func NewSettingsService(dbExecutor repository.DBExecutor, categoryRepo repository.CategoryRepository, profileRepo repository.ProfileRepository) SettingsService {
	return &settingsService{
		dbExecutor:   dbExecutor,
		categoryRepo: categoryRepo,
		profileRepo:  profileRepo,
	}
}

func (s *settingsService) CreateCategory(ctx context.Context, userID int64, name string, color *string) (*domain.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", util.ErrInvalidInput)
	}
	category := &domain.Category{
		UserID:    userID,
		Name:      name,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.categoryRepo.CreateCategory(ctx, s.dbExecutor, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *settingsService) ListCategories(ctx context.Context, userID int64) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *settingsService) DeleteCategory(ctx context.Context, userID, categoryID int64) error {
	if err := s.categoryRepo.DeleteCategory(ctx, s.dbExecutor, userID, categoryID); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return util.ErrNotFound
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func (s *settingsService) GetProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetProfile(ctx, s.dbExecutor, userID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			// A user without a saved profile still has one, just empty.
			return &domain.Profile{UserID: userID}, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

func (s *settingsService) SaveProfile(ctx context.Context, userID int64, username, avatarURL *string) (*domain.Profile, error) {
	profile := &domain.Profile{
		UserID:    userID,
		Username:  username,
		AvatarURL: avatarURL,
	}
	if err := s.profileRepo.UpsertProfile(ctx, s.dbExecutor, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}
