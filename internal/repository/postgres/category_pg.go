// internal/repository/postgres/category_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"rarebit-ledger/internal/domain"
	"rarebit-ledger/internal/repository"
	"rarebit-ledger/internal/util"
)

// CategoryRepository implements repository.CategoryRepository for PostgreSQL.
type CategoryRepository struct{}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) repository.CategoryRepository {
	return &CategoryRepository{}
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, q repository.DBExecutor, category *domain.Category) error {
	query := `INSERT INTO categories (user_id, name, color, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	err := q.QueryRowContext(ctx, query, category.UserID, category.Name, category.Color, category.CreatedAt).Scan(&category.ID)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) ListCategories(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Category, error) {
	categories := []domain.Category{}
	query := `SELECT id, user_id, name, color, created_at FROM categories WHERE user_id = $1 ORDER BY name ASC`
	if err := q.SelectContext(ctx, &categories, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list categories for user %d: %w", userID, err)
	}
	return categories, nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, q repository.DBExecutor, userID, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting category %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// ProfileRepository implements repository.ProfileRepository for PostgreSQL.
type ProfileRepository struct{}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &ProfileRepository{}
}

func (r *ProfileRepository) GetProfile(ctx context.Context, q repository.DBExecutor, userID int64) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT user_id, username, avatar_url, updated_at FROM profiles WHERE user_id = $1`
	err := q.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile for user %d: %w", userID, err)
	}
	return &profile, nil
}

// UpsertProfile inserts or updates the user's profile row.
func (r *ProfileRepository) UpsertProfile(ctx context.Context, q repository.DBExecutor, profile *domain.Profile) error {
	profile.UpdatedAt = time.Now().UTC()
	query := `INSERT INTO profiles (user_id, username, avatar_url, updated_at)
              VALUES ($1, $2, $3, $4)
              ON CONFLICT (user_id) DO UPDATE SET username = $2, avatar_url = $3, updated_at = $4`
	if _, err := q.ExecContext(ctx, query, profile.UserID, profile.Username, profile.AvatarURL, profile.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert profile for user %d: %w", profile.UserID, err)
	}
	return nil
}
