// internal/domain/wallet.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// AccountType tags a wallet as a business or personal account.
type AccountType string

const (
	AccountTypeBusiness AccountType = "Business"
	AccountTypePersonal AccountType = "Personal"
)

// Valid reports whether the account type is one of the known values.
func (a AccountType) Valid() bool {
	return a == AccountTypeBusiness || a == AccountTypePersonal
}

// Wallet is a named account holding a monetary balance. The balance must at all
// times equal the signed sum of the transactions referencing this wallet; only
// the ledger service may move it.
type Wallet struct {
	ID          int64           `db:"id" json:"id"`
	UserID      int64           `db:"user_id" json:"user_id"`
	Name        string          `db:"name" json:"name"`
	AccountType AccountType     `db:"account_type" json:"account_type"`
	Balance     decimal.Decimal `db:"balance" json:"balance"` // NUMERIC(20, 4) in DB
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// NewWallet creates a new Wallet instance with its starting balance. The
// starting balance is definitionally correct and does not generate a ledger
// transaction.
func NewWallet(userID int64, name string, accountType AccountType, balance decimal.Decimal) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		UserID:      userID,
		Name:        name,
		AccountType: accountType,
		Balance:     balance,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
