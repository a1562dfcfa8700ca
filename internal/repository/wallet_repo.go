// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"rarebit-ledger/internal/domain"
)

// WalletRepository defines the interface for wallet data operations. All
// methods take a DBExecutor so they can run inside or outside a transaction.
type WalletRepository interface {
	// CreateWallet adds a new wallet and fills in its generated ID.
	CreateWallet(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	// GetWalletByID retrieves one of the user's wallets by ID.
	GetWalletByID(ctx context.Context, q DBExecutor, userID, id int64) (*domain.Wallet, error)
	// ListWallets retrieves all wallets belonging to the user, oldest first.
	ListWallets(ctx context.Context, q DBExecutor, userID int64) ([]domain.Wallet, error)
	// UpdateWalletDetails changes a wallet's name and account type. The balance
	// is deliberately not touched here; it only moves through ledger operations.
	UpdateWalletDetails(ctx context.Context, q DBExecutor, userID, id int64, name string, accountType domain.AccountType) error
	// ApplyToBalance adds the signed delta to the wallet balance.
	ApplyToBalance(ctx context.Context, q DBExecutor, walletID int64, delta decimal.Decimal) error
	// SetBalance overwrites the wallet balance with an absolute value.
	SetBalance(ctx context.Context, q DBExecutor, walletID int64, balance decimal.Decimal) error
	// DeleteWallet removes one of the user's wallets. Its transactions cascade
	// at the storage layer.
	DeleteWallet(ctx context.Context, q DBExecutor, userID, id int64) error
}
