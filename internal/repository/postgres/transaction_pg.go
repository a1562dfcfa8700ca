// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"rarebit-ledger/internal/domain"
	"rarebit-ledger/internal/repository"
	"rarebit-ledger/internal/util"
)

const transactionColumns = `id, user_id, wallet_id, type, amount, transaction_date, description, category, item_id, transfer_id, created_at`

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction inserts a new transaction record using the provided DBExecutor.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (user_id, wallet_id, type, amount, transaction_date, description, category, item_id, transfer_id, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`

	err := q.QueryRowContext(ctx, query,
		transaction.UserID,
		transaction.WalletID,
		transaction.Type,
		transaction.Amount,
		transaction.TransactionDate,
		transaction.Description,
		transaction.Category,
		transaction.ItemID,
		transaction.TransferID,
		transaction.CreatedAt,
	).Scan(&transaction.ID)

	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetTransactionByID retrieves one transaction by ID.
func (r *TransactionRepository) GetTransactionByID(ctx context.Context, q repository.DBExecutor, userID, id int64) (*domain.Transaction, error) {
	var tx domain.Transaction
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_id = $2`
	err := q.GetContext(ctx, &tx, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by ID %d: %w", id, err)
	}
	return &tx, nil
}

// GetTransactionByItemID retrieves the sale transaction linked to an item.
func (r *TransactionRepository) GetTransactionByItemID(ctx context.Context, q repository.DBExecutor, userID, itemID int64) (*domain.Transaction, error) {
	var tx domain.Transaction
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE item_id = $1 AND user_id = $2`
	err := q.GetContext(ctx, &tx, query, itemID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction for item %d: %w", itemID, err)
	}
	return &tx, nil
}

// ListTransactionsByTransferID retrieves both legs of a transfer pair.
func (r *TransactionRepository) ListTransactionsByTransferID(ctx context.Context, q repository.DBExecutor, userID int64, transferID string) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transfer_id = $1 AND user_id = $2 ORDER BY id ASC`
	if err := q.SelectContext(ctx, &transactions, query, transferID, userID); err != nil {
		return nil, fmt.Errorf("failed to fetch transfer legs for %s: %w", transferID, err)
	}
	return transactions, nil
}

// ListTransactions retrieves a paginated list of all the user's transactions.
// It performs two queries: one for the data and one for the total count.
func (r *TransactionRepository) ListTransactions(ctx context.Context, q repository.DBExecutor, userID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	transactions := []domain.Transaction{}
	query := `SELECT ` + transactionColumns + `
              FROM transactions WHERE user_id = $1
              ORDER BY transaction_date DESC, id DESC
              LIMIT $2 OFFSET $3`
	if err := q.SelectContext(ctx, &transactions, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions for user %d: %w", userID, err)
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM transactions WHERE user_id = $1`
	if err := q.GetContext(ctx, &totalCount, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to get total transaction count for user %d: %w", userID, err)
	}

	return transactions, totalCount, nil
}

// ListTransactionsByWallet retrieves a paginated list of a wallet's transactions.
func (r *TransactionRepository) ListTransactionsByWallet(ctx context.Context, q repository.DBExecutor, userID, walletID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	transactions := []domain.Transaction{}
	query := `SELECT ` + transactionColumns + `
              FROM transactions WHERE user_id = $1 AND wallet_id = $2
              ORDER BY transaction_date DESC, id DESC
              LIMIT $3 OFFSET $4`
	if err := q.SelectContext(ctx, &transactions, query, userID, walletID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions for wallet %d: %w", walletID, err)
	}

	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM transactions WHERE user_id = $1 AND wallet_id = $2`
	if err := q.GetContext(ctx, &totalCount, countQuery, userID, walletID); err != nil {
		return nil, 0, fmt.Errorf("failed to get total transaction count for wallet %d: %w", walletID, err)
	}

	return transactions, totalCount, nil
}

// UpdateTransaction overwrites a transaction row's mutable fields.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `UPDATE transactions
              SET wallet_id = $1, type = $2, amount = $3, transaction_date = $4, description = $5, category = $6
              WHERE id = $7 AND user_id = $8`
	result, err := q.ExecContext(ctx, query,
		transaction.WalletID,
		transaction.Type,
		transaction.Amount,
		transaction.TransactionDate,
		transaction.Description,
		transaction.Category,
		transaction.ID,
		transaction.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", transaction.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating transaction %d: %w", transaction.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// DeleteTransaction removes one transaction row by ID.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting transaction %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
