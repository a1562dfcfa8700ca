// internal/repository/client_repo.go
package repository

import (
	"context"

	"rarebit-ledger/internal/domain"
)

// ClientRepository defines the interface for client data operations. Phones
// and addresses are owned rows replaced wholesale on save.
type ClientRepository interface {
	CreateClient(ctx context.Context, q DBExecutor, client *domain.Client) error
	UpdateClient(ctx context.Context, q DBExecutor, client *domain.Client) error
	GetClientByID(ctx context.Context, q DBExecutor, userID, id int64) (*domain.Client, error)
	ListClients(ctx context.Context, q DBExecutor, userID int64) ([]domain.Client, error)
	DeleteClient(ctx context.Context, q DBExecutor, userID, id int64) error

	// ReplacePhones deletes a client's phone rows and inserts the given set.
	ReplacePhones(ctx context.Context, q DBExecutor, clientID int64, phones []domain.ClientPhone) error
	// ReplaceAddresses deletes a client's address rows and inserts the given set.
	ReplaceAddresses(ctx context.Context, q DBExecutor, clientID int64, addresses []domain.ClientAddress) error
	ListPhones(ctx context.Context, q DBExecutor, clientID int64) ([]domain.ClientPhone, error)
	ListAddresses(ctx context.Context, q DBExecutor, clientID int64) ([]domain.ClientAddress, error)
}

// CategoryRepository defines the interface for category data operations.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, q DBExecutor, category *domain.Category) error
	ListCategories(ctx context.Context, q DBExecutor, userID int64) ([]domain.Category, error)
	DeleteCategory(ctx context.Context, q DBExecutor, userID, id int64) error
}

// ProfileRepository defines the interface for profile data operations.
type ProfileRepository interface {
	GetProfile(ctx context.Context, q DBExecutor, userID int64) (*domain.Profile, error)
	// UpsertProfile inserts or updates the user's profile row.
	UpsertProfile(ctx context.Context, q DBExecutor, profile *domain.Profile) error
}
