// internal/service/ledger_service.go
package service

import (
	"errors"
	"fmt"
	"time"

	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rarebit-ledger/internal/domain"
	"rarebit-ledger/internal/repository"
	"rarebit-ledger/internal/util"
	"rarebit-ledger/pkg/db"
)

// TransactionInput carries the fields for creating a generic ledger
// transaction (income, expense, or a manually entered sale).
type TransactionInput struct {
	WalletID        int64
	Type            domain.TransactionType
	Amount          decimal.Decimal
	TransactionDate time.Time
	Description     *string
	Category        *string
}

// TransactionUpdate carries the new values for editing an existing
// transaction. The wallet may differ from the original; the edit reverses the
// old amount on the old wallet and applies the new amount on the new wallet as
// one atomic unit.
type TransactionUpdate struct {
	WalletID        int64
	Amount          decimal.Decimal
	TransactionDate time.Time
	Description     *string
	Category        *string
}

// TransferInput carries the fields for an inter-wallet fund transfer.
type TransferInput struct {
	SourceWalletID      int64
	DestinationWalletID int64
	Amount              decimal.Decimal
	TransactionDate     time.Time
	Description         *string
}

// WalletInput carries the fields for creating or editing a wallet. On create
// Balance is the starting balance; on edit (ID set) the balance is immutable
// through this path and only Name and AccountType are applied.
type WalletInput struct {
	ID          *int64
	Name        string
	AccountType domain.AccountType
	Balance     decimal.Decimal
}

// LedgerService owns wallet balances and transaction records. Every operation
// that touches more than one row runs inside a single database transaction, so
// that after any completed operation each touched wallet's balance equals the
// signed sum of its transactions. No other component writes balances.
type LedgerService interface {
	RecordSale(ctx context.Context, userID, itemID, walletID int64, sellingPrice decimal.Decimal, dateSold time.Time) (*domain.Transaction, error)
	ReverseSaleForItem(ctx context.Context, userID, itemID int64) error
	CreateTransaction(ctx context.Context, userID int64, in TransactionInput) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, userID, transactionID int64, in TransactionUpdate) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID int64) error
	TransferFunds(ctx context.Context, userID int64, in TransferInput) (transferID string, err error)
	AdjustBalance(ctx context.Context, userID, walletID int64, newBalance decimal.Decimal) (*domain.Transaction, error)

	UpsertWallet(ctx context.Context, userID int64, in WalletInput) (*domain.Wallet, error)
	DeleteWallet(ctx context.Context, userID, walletID int64) error

	GetWallet(ctx context.Context, userID, walletID int64) (*domain.Wallet, error)
	ListWallets(ctx context.Context, userID int64) ([]domain.Wallet, error)
	ListTransactions(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, int64, error)
	ListWalletTransactions(ctx context.Context, userID, walletID int64, limit, offset int) ([]domain.Transaction, int64, error)
}

// ledgerService implements the LedgerService interface.
type ledgerService struct {
	dbBeginner      db.DBTxBeginner
	dbExecutor      repository.DBExecutor
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewLedgerService creates a new instance of LedgerService.
func NewLedgerService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) LedgerService {
	return &ledgerService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

// begin starts a database transaction and returns its controller together with
// the executor view that repositories operate on.
func (s *ledgerService) begin(ctx context.Context, op string) (db.TxController, repository.DBExecutor, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		s.rollbackTx(txController)
		return nil, nil, fmt.Errorf("%s: transaction controller does not implement DBExecutor", op)
	}
	return txController, txExecutor, nil
}

// RecordSale creates one sale transaction linked to the item and increases the
// receiving wallet's balance by the selling price, as one atomic unit.
func (s *ledgerService) RecordSale(ctx context.Context, userID, itemID, walletID int64, sellingPrice decimal.Decimal, dateSold time.Time) (*domain.Transaction, error) {
	if sellingPrice.IsNegative() {
		return nil, fmt.Errorf("record sale: selling price must not be negative: %w", util.ErrInvalidInput)
	}

	txController, txExecutor, err := s.begin(ctx, "record sale")
	if err != nil {
		return nil, err
	}
	defer s.rollbackTx(txController)

	if _, err := s.walletRepo.GetWalletByID(ctx, txExecutor, userID, walletID); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("record sale: failed to get wallet %d: %w", walletID, err)
	}

	transaction := domain.NewTransaction(userID, walletID, domain.TransactionTypeSale, sellingPrice, dateSold, nil, nil)
	transaction.ItemID = &itemID
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, fmt.Errorf("record sale: failed to create transaction: %w", err)
	}

	if err := s.walletRepo.ApplyToBalance(ctx, txExecutor, walletID, sellingPrice); err != nil {
		return nil, fmt.Errorf("record sale: failed to update wallet balance: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("record sale: failed to commit transaction: %w", err)
	}
	return transaction, nil
}

// ReverseSaleForItem undoes the ledger effect of a previously recorded item
// sale: it removes the sale transaction and gives its amount back out of the
// wallet. Absence of a sale transaction is not an error, so re-running a
// reversal is harmless.
func (s *ledgerService) ReverseSaleForItem(ctx context.Context, userID, itemID int64) error {
	txController, txExecutor, err := s.begin(ctx, "reverse sale")
	if err != nil {
		return err
	}
	defer s.rollbackTx(txController)

	transaction, err := s.transactionRepo.GetTransactionByItemID(ctx, txExecutor, userID, itemID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			// Nothing to reverse.
			return nil
		}
		return fmt.Errorf("reverse sale: failed to find transaction for item %d: %w", itemID, err)
	}

	if err := s.walletRepo.ApplyToBalance(ctx, txExecutor, transaction.WalletID, transaction.Amount.Neg()); err != nil {
		return fmt.Errorf("reverse sale: failed to reverse wallet balance: %w", err)
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, txExecutor, transaction.ID); err != nil {
		return fmt.Errorf("reverse sale: failed to delete transaction %d: %w", transaction.ID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("reverse sale: failed to commit transaction: %w", err)
	}
	return nil
}

// CreateTransaction inserts a generic transaction and applies its signed
// amount to the wallet balance as one atomic unit.
func (s *ledgerService) CreateTransaction(ctx context.Context, userID int64, in TransactionInput) (*domain.Transaction, error) {
	if !in.Type.Valid() {
		return nil, fmt.Errorf("create transaction: %w", util.ErrUnknownTransactionType)
	}
	if in.Type.IsTransfer() {
		// Transfer legs are only created in pairs through TransferFunds.
		return nil, fmt.Errorf("create transaction: transfer legs cannot be created individually: %w", util.ErrInvalidInput)
	}
	if in.Amount.IsNegative() || in.Amount.IsZero() {
		return nil, fmt.Errorf("create transaction: amount must be positive: %w", util.ErrInvalidInput)
	}
	if in.Type.RequiresCategory() && (in.Category == nil || *in.Category == "") {
		return nil, util.ErrCategoryRequired
	}

	txController, txExecutor, err := s.begin(ctx, "create transaction")
	if err != nil {
		return nil, err
	}
	defer s.rollbackTx(txController)

	if _, err := s.walletRepo.GetWalletByID(ctx, txExecutor, userID, in.WalletID); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("create transaction: failed to get wallet %d: %w", in.WalletID, err)
	}

	transaction := domain.NewTransaction(userID, in.WalletID, in.Type, in.Amount, in.TransactionDate, in.Description, in.Category)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, fmt.Errorf("create transaction: failed to create transaction: %w", err)
	}

	if err := s.walletRepo.ApplyToBalance(ctx, txExecutor, in.WalletID, transaction.SignedAmount()); err != nil {
		return nil, fmt.Errorf("create transaction: failed to update wallet balance: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create transaction: failed to commit transaction: %w", err)
	}
	return transaction, nil
}

// UpdateTransaction atomically reverses the old amount from the old wallet,
// applies the new amount to the (possibly different) new wallet, and updates
// the transaction row to the new values. The transaction's type is not
// editable; transfer legs are rejected since both legs must stay in step.
func (s *ledgerService) UpdateTransaction(ctx context.Context, userID, transactionID int64, in TransactionUpdate) (*domain.Transaction, error) {
	if in.Amount.IsNegative() || in.Amount.IsZero() {
		return nil, fmt.Errorf("update transaction: amount must be positive: %w", util.ErrInvalidInput)
	}

	txController, txExecutor, err := s.begin(ctx, "update transaction")
	if err != nil {
		return nil, err
	}
	defer s.rollbackTx(txController)

	transaction, err := s.transactionRepo.GetTransactionByID(ctx, txExecutor, userID, transactionID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("update transaction: failed to get transaction %d: %w", transactionID, err)
	}
	if transaction.Type.IsTransfer() {
		return nil, fmt.Errorf("update transaction: transfer legs are not editable: %w", util.ErrInvalidInput)
	}
	if transaction.Type.RequiresCategory() && (in.Category == nil || *in.Category == "") {
		return nil, util.ErrCategoryRequired
	}

	if _, err := s.walletRepo.GetWalletByID(ctx, txExecutor, userID, in.WalletID); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("update transaction: failed to get wallet %d: %w", in.WalletID, err)
	}

	// Take the old contribution off the old wallet, then put the new
	// contribution on the new wallet. Both are the same wallet in the common
	// case; the two updates still net out correctly.
	if err := s.walletRepo.ApplyToBalance(ctx, txExecutor, transaction.WalletID, transaction.SignedAmount().Neg()); err != nil {
		return nil, fmt.Errorf("update transaction: failed to reverse old wallet balance: %w", err)
	}

	transaction.WalletID = in.WalletID
	transaction.Amount = in.Amount
	transaction.TransactionDate = in.TransactionDate
	transaction.Description = in.Description
	transaction.Category = in.Category

	if err := s.walletRepo.ApplyToBalance(ctx, txExecutor, transaction.WalletID, transaction.SignedAmount()); err != nil {
		return nil, fmt.Errorf("update transaction: failed to apply new wallet balance: %w", err)
	}

	if err := s.transactionRepo.UpdateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, fmt.Errorf("update transaction: failed to update transaction row: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("update transaction: failed to commit transaction: %w", err)
	}
	return transaction, nil
}

// DeleteTransaction removes a transaction and reverses its balance effect. If
// the transaction is one leg of a transfer, both legs are deleted and both
// wallets reversed as one unit; deleting a single leg is forbidden. Deleting
// an already-deleted transaction is a no-op.
func (s *ledgerService) DeleteTransaction(ctx context.Context, userID, transactionID int64) error {
	txController, txExecutor, err := s.begin(ctx, "delete transaction")
	if err != nil {
		return err
	}
	defer s.rollbackTx(txController)

	transaction, err := s.transactionRepo.GetTransactionByID(ctx, txExecutor, userID, transactionID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("delete transaction: failed to get transaction %d: %w", transactionID, err)
	}

	legs := []domain.Transaction{*transaction}
	if transaction.Type.IsTransfer() {
		if transaction.TransferID == nil {
			return fmt.Errorf("delete transaction: transfer leg %d has no transfer id", transaction.ID)
		}
		legs, err = s.transactionRepo.ListTransactionsByTransferID(ctx, txExecutor, userID, *transaction.TransferID)
		if err != nil {
			return fmt.Errorf("delete transaction: failed to load transfer pair %s: %w", *transaction.TransferID, err)
		}
	}

	for i := range legs {
		leg := &legs[i]
		if err := s.walletRepo.ApplyToBalance(ctx, txExecutor, leg.WalletID, leg.SignedAmount().Neg()); err != nil {
			return fmt.Errorf("delete transaction: failed to reverse wallet %d balance: %w", leg.WalletID, err)
		}
		if err := s.transactionRepo.DeleteTransaction(ctx, txExecutor, leg.ID); err != nil {
			return fmt.Errorf("delete transaction: failed to delete transaction %d: %w", leg.ID, err)
		}
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("delete transaction: failed to commit transaction: %w", err)
	}
	return nil
}

// TransferFunds moves an amount between two wallets by creating the
// outflow/inflow transaction pair sharing a fresh transfer ID and adjusting
// both balances, all as one atomic unit.
func (s *ledgerService) TransferFunds(ctx context.Context, userID int64, in TransferInput) (string, error) {
	if in.Amount.IsNegative() || in.Amount.IsZero() {
		return "", fmt.Errorf("transfer funds: amount must be positive: %w", util.ErrInvalidInput)
	}
	if in.SourceWalletID == in.DestinationWalletID {
		return "", util.ErrSameWalletTransfer
	}

	txController, txExecutor, err := s.begin(ctx, "transfer funds")
	if err != nil {
		return "", err
	}
	defer s.rollbackTx(txController)

	for _, walletID := range []int64{in.SourceWalletID, in.DestinationWalletID} {
		if _, err := s.walletRepo.GetWalletByID(ctx, txExecutor, userID, walletID); err != nil {
			if errors.Is(err, util.ErrNotFound) {
				return "", util.ErrWalletNotFound
			}
			return "", fmt.Errorf("transfer funds: failed to get wallet %d: %w", walletID, err)
		}
	}

	transferID := uuid.NewString()

	out := domain.NewTransaction(userID, in.SourceWalletID, domain.TransactionTypeTransferOut, in.Amount, in.TransactionDate, in.Description, nil)
	out.TransferID = &transferID
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, out); err != nil {
		return "", fmt.Errorf("transfer funds: failed to create outflow leg: %w", err)
	}

	inLeg := domain.NewTransaction(userID, in.DestinationWalletID, domain.TransactionTypeTransferIn, in.Amount, in.TransactionDate, in.Description, nil)
	inLeg.TransferID = &transferID
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, inLeg); err != nil {
		return "", fmt.Errorf("transfer funds: failed to create inflow leg: %w", err)
	}

	if err := s.walletRepo.ApplyToBalance(ctx, txExecutor, in.SourceWalletID, in.Amount.Neg()); err != nil {
		return "", fmt.Errorf("transfer funds: failed to update source wallet balance: %w", err)
	}
	if err := s.walletRepo.ApplyToBalance(ctx, txExecutor, in.DestinationWalletID, in.Amount); err != nil {
		return "", fmt.Errorf("transfer funds: failed to update destination wallet balance: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return "", fmt.Errorf("transfer funds: failed to commit transaction: %w", err)
	}
	return transferID, nil
}

// AdjustBalance reconciles a wallet to a user-specified balance. It records a
// manual adjustment transaction for the difference and then sets the balance
// to the absolute target value, not by incremental application, so the result
// cannot drift from accumulated rounding. A zero difference is a no-op.
func (s *ledgerService) AdjustBalance(ctx context.Context, userID, walletID int64, newBalance decimal.Decimal) (*domain.Transaction, error) {
	txController, txExecutor, err := s.begin(ctx, "adjust balance")
	if err != nil {
		return nil, err
	}
	defer s.rollbackTx(txController)

	wallet, err := s.walletRepo.GetWalletByID(ctx, txExecutor, userID, walletID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("adjust balance: failed to get wallet %d: %w", walletID, err)
	}

	delta := newBalance.Sub(wallet.Balance)
	if delta.IsZero() {
		return nil, nil
	}

	txType := domain.TransactionTypeManualIncrease
	if delta.IsNegative() {
		txType = domain.TransactionTypeManualDecrease
	}

	transaction := domain.NewTransaction(userID, walletID, txType, delta.Abs(), time.Now().UTC(), nil, nil)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, fmt.Errorf("adjust balance: failed to create adjustment transaction: %w", err)
	}

	if err := s.walletRepo.SetBalance(ctx, txExecutor, walletID, newBalance); err != nil {
		return nil, fmt.Errorf("adjust balance: failed to set wallet balance: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("adjust balance: failed to commit transaction: %w", err)
	}
	return transaction, nil
}

// UpsertWallet creates a wallet with its starting balance (no transaction is
// generated for it) or, when in.ID is set, renames or retypes an existing
// wallet. The balance is immutable through the edit path.
func (s *ledgerService) UpsertWallet(ctx context.Context, userID int64, in WalletInput) (*domain.Wallet, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("upsert wallet: name is required: %w", util.ErrInvalidInput)
	}
	if !in.AccountType.Valid() {
		return nil, fmt.Errorf("upsert wallet: unknown account type %q: %w", in.AccountType, util.ErrInvalidInput)
	}

	if in.ID == nil {
		wallet := domain.NewWallet(userID, in.Name, in.AccountType, in.Balance)
		if err := s.walletRepo.CreateWallet(ctx, s.dbExecutor, wallet); err != nil {
			return nil, fmt.Errorf("upsert wallet: failed to create wallet: %w", err)
		}
		return wallet, nil
	}

	if err := s.walletRepo.UpdateWalletDetails(ctx, s.dbExecutor, userID, *in.ID, in.Name, in.AccountType); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("upsert wallet: failed to update wallet %d: %w", *in.ID, err)
	}
	wallet, err := s.walletRepo.GetWalletByID(ctx, s.dbExecutor, userID, *in.ID)
	if err != nil {
		return nil, fmt.Errorf("upsert wallet: failed to re-fetch wallet %d: %w", *in.ID, err)
	}
	return wallet, nil
}

// DeleteWallet removes a wallet. Its transactions cascade at the storage
// layer; this is an explicit destructive action initiated by the user.
func (s *ledgerService) DeleteWallet(ctx context.Context, userID, walletID int64) error {
	if err := s.walletRepo.DeleteWallet(ctx, s.dbExecutor, userID, walletID); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return util.ErrWalletNotFound
		}
		return fmt.Errorf("delete wallet: failed to delete wallet %d: %w", walletID, err)
	}
	return nil
}

func (s *ledgerService) GetWallet(ctx context.Context, userID, walletID int64) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetWalletByID(ctx, s.dbExecutor, userID, walletID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("get wallet: failed to get wallet %d: %w", walletID, err)
	}
	return wallet, nil
}

func (s *ledgerService) ListWallets(ctx context.Context, userID int64) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.ListWallets(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	return wallets, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	transactions, totalCount, err := s.transactionRepo.ListTransactions(ctx, s.dbExecutor, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, totalCount, nil
}

func (s *ledgerService) ListWalletTransactions(ctx context.Context, userID, walletID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	if _, err := s.walletRepo.GetWalletByID(ctx, s.dbExecutor, userID, walletID); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, 0, util.ErrWalletNotFound
		}
		return nil, 0, fmt.Errorf("list wallet transactions: failed to check wallet %d: %w", walletID, err)
	}
	transactions, totalCount, err := s.transactionRepo.ListTransactionsByWallet(ctx, s.dbExecutor, userID, walletID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list wallet transactions: %w", err)
	}
	return transactions, totalCount, nil
}
