// internal/repository/item_repo.go
package repository

import (
	"context"

	"rarebit-ledger/internal/domain"
)

// ItemRepository defines the interface for inventory item data operations.
type ItemRepository interface {
	// CreateItem adds a new item and fills in its generated ID.
	CreateItem(ctx context.Context, q DBExecutor, item *domain.Item) error
	// UpdateItem overwrites an existing item's fields by ID.
	UpdateItem(ctx context.Context, q DBExecutor, item *domain.Item) error
	// GetItemByID retrieves one of the user's items by ID.
	GetItemByID(ctx context.Context, q DBExecutor, userID, id int64) (*domain.Item, error)
	// ListItems retrieves all of the user's items, newest first.
	ListItems(ctx context.Context, q DBExecutor, userID int64) ([]domain.Item, error)
	// ListSoldItems retrieves the user's sold items, most recently sold first.
	ListSoldItems(ctx context.Context, q DBExecutor, userID int64) ([]domain.Item, error)
	// ListItemsByClient retrieves the sold items linked to a client.
	ListItemsByClient(ctx context.Context, q DBExecutor, userID, clientID int64) ([]domain.Item, error)
	// DeleteItem removes one of the user's items by ID.
	DeleteItem(ctx context.Context, q DBExecutor, userID, id int64) error
}
