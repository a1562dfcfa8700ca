// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"
	"io"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"rarebit-ledger/internal/domain"
	"rarebit-ledger/internal/repository"
	"rarebit-ledger/pkg/db"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController is a mock implementation of db.TxController. It embeds
// MockDBExecutor so it also satisfies repository.DBExecutor, the way a real
// *sqlx.Tx does.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockWalletRepository is a mock implementation of repository.WalletRepository.
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	args := m.Called(ctx, q, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetWalletByID(ctx context.Context, q repository.DBExecutor, userID, id int64) (*domain.Wallet, error) {
	args := m.Called(ctx, q, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListWallets(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Wallet, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) UpdateWalletDetails(ctx context.Context, q repository.DBExecutor, userID, id int64, name string, accountType domain.AccountType) error {
	args := m.Called(ctx, q, userID, id, name, accountType)
	return args.Error(0)
}

func (m *MockWalletRepository) ApplyToBalance(ctx context.Context, q repository.DBExecutor, walletID int64, delta decimal.Decimal) error {
	args := m.Called(ctx, q, walletID, delta)
	return args.Error(0)
}

func (m *MockWalletRepository) SetBalance(ctx context.Context, q repository.DBExecutor, walletID int64, balance decimal.Decimal) error {
	args := m.Called(ctx, q, walletID, balance)
	return args.Error(0)
}

func (m *MockWalletRepository) DeleteWallet(ctx context.Context, q repository.DBExecutor, userID, id int64) error {
	args := m.Called(ctx, q, userID, id)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	args := m.Called(ctx, q, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetTransactionByID(ctx context.Context, q repository.DBExecutor, userID, id int64) (*domain.Transaction, error) {
	args := m.Called(ctx, q, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetTransactionByItemID(ctx context.Context, q repository.DBExecutor, userID, itemID int64) (*domain.Transaction, error) {
	args := m.Called(ctx, q, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByTransferID(ctx context.Context, q repository.DBExecutor, userID int64, transferID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, q, userID, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, q repository.DBExecutor, userID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, q, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) ListTransactionsByWallet(ctx context.Context, q repository.DBExecutor, userID, walletID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, q, userID, walletID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	args := m.Called(ctx, q, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, q repository.DBExecutor, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

// MockItemRepository is a mock implementation of repository.ItemRepository.
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) CreateItem(ctx context.Context, q repository.DBExecutor, item *domain.Item) error {
	args := m.Called(ctx, q, item)
	return args.Error(0)
}

func (m *MockItemRepository) UpdateItem(ctx context.Context, q repository.DBExecutor, item *domain.Item) error {
	args := m.Called(ctx, q, item)
	return args.Error(0)
}

func (m *MockItemRepository) GetItemByID(ctx context.Context, q repository.DBExecutor, userID, id int64) (*domain.Item, error) {
	args := m.Called(ctx, q, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) ListItems(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Item, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) ListSoldItems(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.Item, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) ListItemsByClient(ctx context.Context, q repository.DBExecutor, userID, clientID int64) ([]domain.Item, error) {
	args := m.Called(ctx, q, userID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) DeleteItem(ctx context.Context, q repository.DBExecutor, userID, id int64) error {
	args := m.Called(ctx, q, userID, id)
	return args.Error(0)
}

// MockLedgerService is a mock implementation of LedgerService for testing the
// item lifecycle without a real ledger behind it.
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) RecordSale(ctx context.Context, userID, itemID, walletID int64, sellingPrice decimal.Decimal, dateSold time.Time) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, itemID, walletID, sellingPrice, dateSold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) ReverseSaleForItem(ctx context.Context, userID, itemID int64) error {
	args := m.Called(ctx, userID, itemID)
	return args.Error(0)
}

func (m *MockLedgerService) CreateTransaction(ctx context.Context, userID int64, in TransactionInput) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) UpdateTransaction(ctx context.Context, userID, transactionID int64, in TransactionUpdate) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) DeleteTransaction(ctx context.Context, userID, transactionID int64) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

func (m *MockLedgerService) TransferFunds(ctx context.Context, userID int64, in TransferInput) (string, error) {
	args := m.Called(ctx, userID, in)
	return args.String(0), args.Error(1)
}

func (m *MockLedgerService) AdjustBalance(ctx context.Context, userID, walletID int64, newBalance decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, walletID, newBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) UpsertWallet(ctx context.Context, userID int64, in WalletInput) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockLedgerService) DeleteWallet(ctx context.Context, userID, walletID int64) error {
	args := m.Called(ctx, userID, walletID)
	return args.Error(0)
}

func (m *MockLedgerService) GetWallet(ctx context.Context, userID, walletID int64) (*domain.Wallet, error) {
	args := m.Called(ctx, userID, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockLedgerService) ListWallets(ctx context.Context, userID int64) ([]domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockLedgerService) ListTransactions(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockLedgerService) ListWalletTransactions(ctx context.Context, userID, walletID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, userID, walletID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

// MockBlobStore is a mock implementation of blob.Store.
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	args := m.Called(ctx, file, folder, publicID)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) DeleteByURL(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

// ledgerFixture bundles a ledger service with the mocks behind it.
type ledgerFixture struct {
	service         LedgerService
	dbBeginner      *MockDBBeginner
	dbExecutor      *MockDBExecutor
	walletRepo      *MockWalletRepository
	transactionRepo *MockTransactionRepository
	txController    *MockTxController
}

func newLedgerFixture() *ledgerFixture {
	f := &ledgerFixture{
		dbBeginner:      new(MockDBBeginner),
		dbExecutor:      new(MockDBExecutor),
		walletRepo:      new(MockWalletRepository),
		transactionRepo: new(MockTransactionRepository),
		txController:    new(MockTxController),
	}
	f.service = NewLedgerService(
		f.dbBeginner,
		f.dbExecutor,
		f.walletRepo,
		f.transactionRepo,
		func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
			return f.txController, nil
		},
		func(tx db.TxController) error {
			return f.txController.Commit()
		},
		func(tx db.TxController) {
			_ = f.txController.Rollback()
		},
	)
	return f
}

func (f *ledgerFixture) assertExpectations(t mock.TestingT) {
	mock.AssertExpectationsForObjects(t, f.dbBeginner, f.dbExecutor, f.walletRepo, f.transactionRepo, f.txController)
}
