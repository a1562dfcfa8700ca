// internal/domain/transaction.go
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionType defines the kind of ledger movement. The values are the wire
// and storage representation and are kept as-is for compatibility with existing
// data.
type TransactionType string

const (
	TransactionTypeSale           TransactionType = "jualan"
	TransactionTypeIncome         TransactionType = "pendapatan"
	TransactionTypeExpense        TransactionType = "perbelanjaan"
	TransactionTypeTransferOut    TransactionType = "pemindahan_keluar"
	TransactionTypeTransferIn     TransactionType = "pemindahan_masuk"
	TransactionTypeManualIncrease TransactionType = "pelarasan_manual_tambah"
	TransactionTypeManualDecrease TransactionType = "pelarasan_manual_kurang"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeSale, TransactionTypeIncome, TransactionTypeExpense,
		TransactionTypeTransferOut, TransactionTypeTransferIn,
		TransactionTypeManualIncrease, TransactionTypeManualDecrease:
		return true
	}
	return false
}

// Sign returns +1 for types that add to a wallet balance and -1 for types that
// remove from it. Zero for unknown types; callers must Valid()-check first.
func (t TransactionType) Sign() int {
	switch t {
	case TransactionTypeSale, TransactionTypeIncome, TransactionTypeTransferIn, TransactionTypeManualIncrease:
		return 1
	case TransactionTypeExpense, TransactionTypeTransferOut, TransactionTypeManualDecrease:
		return -1
	}
	return 0
}

// IsTransfer reports whether t is one leg of a transfer pair.
func (t TransactionType) IsTransfer() bool {
	return strings.HasPrefix(string(t), "pemindahan")
}

// RequiresCategory reports whether a category must accompany this type.
func (t TransactionType) RequiresCategory() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// Transaction represents one signed movement of funds into or out of a wallet.
// Amount is always the non-negative magnitude; the direction is derived from
// Type. A transfer is two rows sharing one TransferID, one outflow and one
// inflow of equal amount. A sale row links to the item that generated it via
// ItemID; at most one sale row exists per item.
type Transaction struct {
	ID              int64           `db:"id" json:"id"`
	UserID          int64           `db:"user_id" json:"user_id"`
	WalletID        int64           `db:"wallet_id" json:"wallet_id"`
	Type            TransactionType `db:"type" json:"type"`
	Amount          decimal.Decimal `db:"amount" json:"amount"` // NUMERIC(20, 4) in DB
	TransactionDate time.Time       `db:"transaction_date" json:"transaction_date"`
	Description     *string         `db:"description" json:"description"`
	Category        *string         `db:"category" json:"category"`
	ItemID          *int64          `db:"item_id" json:"item_id"`
	TransferID      *string         `db:"transfer_id" json:"transfer_id"` // UUID shared by both legs of a transfer
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// SignedAmount returns the amount with the sign implied by the transaction
// type, i.e. the contribution of this row to its wallet's balance.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type.Sign() < 0 {
		return t.Amount.Neg()
	}
	return t.Amount
}

// NewTransaction creates a new Transaction instance.
func NewTransaction(userID, walletID int64, txType TransactionType, amount decimal.Decimal, date time.Time, description, category *string) *Transaction {
	return &Transaction{
		UserID:          userID,
		WalletID:        walletID,
		Type:            txType,
		Amount:          amount,
		TransactionDate: date,
		Description:     description,
		Category:        category,
		CreatedAt:       time.Now().UTC(),
	}
}
