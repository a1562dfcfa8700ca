// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"rarebit-ledger/internal/domain"
)

// TransactionRepository defines the interface for transaction data operations.
type TransactionRepository interface {
	// CreateTransaction adds a new transaction record and fills in its ID.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionByID retrieves one of the user's transactions by ID.
	GetTransactionByID(ctx context.Context, q DBExecutor, userID, id int64) (*domain.Transaction, error)
	// GetTransactionByItemID retrieves the sale transaction linked to an item.
	// At most one such row exists per item.
	GetTransactionByItemID(ctx context.Context, q DBExecutor, userID, itemID int64) (*domain.Transaction, error)
	// ListTransactionsByTransferID retrieves both legs of a transfer pair.
	ListTransactionsByTransferID(ctx context.Context, q DBExecutor, userID int64, transferID string) ([]domain.Transaction, error)
	// ListTransactions retrieves the user's transactions, newest first, with
	// the total count for pagination.
	ListTransactions(ctx context.Context, q DBExecutor, userID int64, limit, offset int) ([]domain.Transaction, int64, error)
	// ListTransactionsByWallet retrieves a wallet's transactions, newest first,
	// with the total count for pagination.
	ListTransactionsByWallet(ctx context.Context, q DBExecutor, userID, walletID int64, limit, offset int) ([]domain.Transaction, int64, error)
	// UpdateTransaction overwrites a transaction row's mutable fields.
	UpdateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// DeleteTransaction removes one transaction row by ID.
	DeleteTransaction(ctx context.Context, q DBExecutor, id int64) error
}
