// internal/repository/postgres/item_pg.go
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

const itemColumns = `id, user_id, name, category, cost_price, selling_price, status, date_bought, date_sold, platforms, sold_platforms, image_url, client_id, created_at, updated_at`

// ItemRepository implements repository.ItemRepository for PostgreSQL.
type ItemRepository struct{}

// NewItemRepository creates a new ItemRepository.
func NewItemRepository(db *sqlx.DB) repository.ItemRepository {
	return &ItemRepository{}
}

// CreateItem inserts a new item using the provided DBExecutor.
func (r *ItemRepository) CreateItem(ctx context.Context, q repository.DBExecutor, item *domain.Item) error {
	query := `INSERT INTO items (user_id, name, category, cost_price, selling_price, status, date_bought, date_sold, platforms, sold_platforms, image_url, client_id, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		item.UserID,
		item.Name,
		item.Category,
		item.CostPrice,
		item.SellingPrice,
		item.Status,
		item.DateBought,
		item.DateSold,
		item.Platforms,
		item.SoldPlatforms,
		item.ImageURL,
		item.ClientID,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// UpdateItem overwrites an existing item's fields by ID.
func (r *ItemRepository) UpdateItem(ctx context.Context, q repository.DBExecutor, item *domain.Item) error {
	query := `UPDATE items
              SET name = $1, category = $2, cost_price = $3, selling_price = $4, status = $5,
                  date_bought = $6, date_sold = $7, platforms = $8, sold_platforms = $9,
                  image_url = $10, client_id = $11, updated_at = $12
              WHERE id = $13 AND user_id = $14`
	result, err := q.ExecContext(ctx, query,
		item.Name,
		item.Category,
		item.CostPrice,
		item.SellingPrice,
		item.Status,
		item.DateBought,
		item.DateSold,
		item.Platforms,
		item.SoldPlatforms,
		item.ImageURL,
		item.ClientID,
		time.Now().UTC(),
		item.ID,
		item.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item %d: %w", item.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating item %d: %w", item.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// GetItemByID retrieves an item by its ID using the provided DBExecutor.
func (r *ItemRepository) GetItemByID(ctx context.Context, q repository.DBExecutor, userID, id int64) (*domain.Item, error) {
	var item domain.Item
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 AND user_id = $2`
	err := q.GetContext(ctx, &item, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get item by ID %d: %w", id, err)
	}
	return &item, nil
}

// ListItems retrieves all of a user's items, newest first.
func (r *ItemRepository) ListItems(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Item, error) {
	items := []domain.Item{}
	query := `SELECT ` + itemColumns + ` FROM items WHERE user_id = $1 ORDER BY created_at DESC`
	if err := q.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list items for user %d: %w", userID, err)
	}
	return items, nil
}

// ListSoldItems retrieves a user's sold items, most recently sold first.
func (r *ItemRepository) ListSoldItems(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Item, error) {
	items := []domain.Item{}
	query := `SELECT ` + itemColumns + ` FROM items
              WHERE user_id = $1 AND status = $2
              ORDER BY date_sold DESC NULLS LAST, id DESC`
	if err := q.SelectContext(ctx, &items, query, userID, domain.ItemStatusSold); err != nil {
		return nil, fmt.Errorf("failed to list sold items for user %d: %w", userID, err)
	}
	return items, nil
}

// ListItemsByClient retrieves the sold items linked to a client.
func (r *ItemRepository) ListItemsByClient(ctx context.Context, q repository.DBExecutor, userID, clientID int64) ([]domain.Item, error) {
	items := []domain.Item{}
	query := `SELECT ` + itemColumns + ` FROM items
              WHERE user_id = $1 AND client_id = $2
              ORDER BY date_sold DESC NULLS LAST, id DESC`
	if err := q.SelectContext(ctx, &items, query, userID, clientID); err != nil {
		return nil, fmt.Errorf("failed to list items for client %d: %w", clientID, err)
	}
	return items, nil
}

// DeleteItem removes an item by ID.
func (r *ItemRepository) DeleteItem(ctx context.Context, q repository.DBExecutor, userID, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM items WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting item %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
