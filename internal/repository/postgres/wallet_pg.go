// internal/repository/postgres/wallet_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"rarebit-ledger/internal/domain"
	"rarebit-ledger/internal/repository"
	"rarebit-ledger/internal/util"
)

// WalletRepository implements repository.WalletRepository for PostgreSQL.
type WalletRepository struct{}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(db *sqlx.DB) repository.WalletRepository {
	return &WalletRepository{}
}

// CreateWallet inserts a new wallet using the provided DBExecutor.
func (r *WalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	query := `INSERT INTO wallets (user_id, name, account_type, balance, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := q.QueryRowContext(ctx, query, wallet.UserID, wallet.Name, wallet.AccountType, wallet.Balance, wallet.CreatedAt, wallet.UpdatedAt).Scan(&wallet.ID)
	if err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

// GetWalletByID retrieves a wallet by its ID using the provided DBExecutor.
func (r *WalletRepository) GetWalletByID(ctx context.Context, q repository.DBExecutor, userID, id int64) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT id, user_id, name, account_type, balance, created_at, updated_at
              FROM wallets WHERE id = $1 AND user_id = $2`
	err := q.GetContext(ctx, &wallet, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wallet by ID %d: %w", id, err)
	}
	return &wallet, nil
}

// ListWallets retrieves all of a user's wallets, oldest first.
func (r *WalletRepository) ListWallets(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Wallet, error) {
	wallets := []domain.Wallet{}
	query := `SELECT id, user_id, name, account_type, balance, created_at, updated_at
              FROM wallets WHERE user_id = $1 ORDER BY created_at ASC`
	if err := q.SelectContext(ctx, &wallets, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list wallets for user %d: %w", userID, err)
	}
	return wallets, nil
}

// UpdateWalletDetails changes a wallet's name and account type only.
func (r *WalletRepository) UpdateWalletDetails(ctx context.Context, q repository.DBExecutor, userID, id int64, name string, accountType domain.AccountType) error {
	query := `UPDATE wallets SET name = $1, account_type = $2, updated_at = $3 WHERE id = $4 AND user_id = $5`
	result, err := q.ExecContext(ctx, query, name, accountType, time.Now().UTC(), id, userID)
	if err != nil {
		return fmt.Errorf("failed to update wallet %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating wallet %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// ApplyToBalance adds the signed delta to the wallet balance.
func (r *WalletRepository) ApplyToBalance(ctx context.Context, q repository.DBExecutor, walletID int64, delta decimal.Decimal) error {
	query := `UPDATE wallets SET balance = balance + $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, delta, time.Now().UTC(), walletID)
	if err != nil {
		return fmt.Errorf("failed to apply delta to wallet balance for ID %d: %w", walletID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating wallet balance for ID %d: %w", walletID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no rows affected when updating wallet balance for ID %d, wallet might not exist", walletID)
	}
	return nil
}

// SetBalance overwrites the wallet balance with an absolute value.
func (r *WalletRepository) SetBalance(ctx context.Context, q repository.DBExecutor, walletID int64, balance decimal.Decimal) error {
	query := `UPDATE wallets SET balance = $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, balance, time.Now().UTC(), walletID)
	if err != nil {
		return fmt.Errorf("failed to set wallet balance for ID %d: %w", walletID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after setting wallet balance for ID %d: %w", walletID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no rows affected when setting wallet balance for ID %d, wallet might not exist", walletID)
	}
	return nil
}

// DeleteWallet removes a wallet; its transactions cascade at the storage layer.
func (r *WalletRepository) DeleteWallet(ctx context.Context, q repository.DBExecutor, userID, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM wallets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete wallet %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting wallet %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
