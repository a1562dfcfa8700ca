// internal/api/api_integration_test.go
package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "rarebit-ledger/internal"
	"rarebit-ledger/internal/domain"
)

// testApp is the global application instance for testing.
var testApp *app.Application

// testServer is the httptest server.
var testServer *httptest.Server

const testUserID = int64(1)

// TestMain is the special entry point for Go tests, executed once before all tests.
func TestMain(m *testing.M) {
	// 1. Set up environment variables (ensure DB_NAME points to the test database).
	setupEnvVars()

	// 2. Initialize the application.
	testApp = app.NewApplication()
	if err := testApp.Initialize(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize test application: %v\n", err)
		os.Exit(1)
	}

	// 3. Start an httptest server to test the HTTP handling layer.
	testServer = httptest.NewServer(testApp.HTTPHandler)
	defer testServer.Close()

	// 4. Run all tests.
	code := m.Run()

	// 5. Shut down application resources after tests.
	if err := testApp.Shutdown(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to shutdown test application: %v\n", err)
		os.Exit(1)
	}

	os.Exit(code)
}

// setupEnvVars sets the database environment variables required for testing.
func setupEnvVars() {
	if os.Getenv("SERVER_PORT") == "" {
		os.Setenv("SERVER_PORT", "8080")
	}
	if os.Getenv("DB_HOST") == "" {
		os.Setenv("DB_HOST", "localhost")
	}
	if os.Getenv("DB_PORT") == "" {
		os.Setenv("DB_PORT", "5432")
	}
	if os.Getenv("DB_USER") == "" {
		os.Setenv("DB_USER", "user")
	}
	if os.Getenv("DB_PASSWORD") == "" {
		os.Setenv("DB_PASSWORD", "password")
	}
	if os.Getenv("DB_NAME") == "" {
		os.Setenv("DB_NAME", "rarebitdb_test")
	}
	if os.Getenv("DB_SSLMODE") == "" {
		os.Setenv("DB_SSLMODE", "disable")
	}
}

// clearDatabase truncates all relevant tables for a clean state per test case.
func clearDatabase(t *testing.T) {
	tables := []string{"transactions", "items", "client_phones", "client_addresses", "clients", "wallets", "categories", "profiles"}
	for _, table := range tables {
		_, err := testApp.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE;", table))
		require.NoError(t, err, "Failed to truncate table %s", table)
	}
}

// createTestWallet seeds a wallet directly through the repository.
func createTestWallet(t *testing.T, name string, balance decimal.Decimal) int64 {
	wallet := domain.NewWallet(testUserID, name, domain.AccountTypeBusiness, balance)
	err := testApp.WalletRepository.CreateWallet(context.Background(), testApp.DB, wallet)
	require.NoError(t, err)
	return wallet.ID
}

// doRequest performs an HTTP request against the test server as the test user
// and decodes the JSON response body into out (when out is non-nil).
func doRequest(t *testing.T, method, path string, body interface{}, out interface{}) *http.Response {
	var reqBody *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequest(method, testServer.URL+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", fmt.Sprintf("%d", testUserID))

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	} else {
		resp.Body.Close()
	}
	return resp
}

// walletBalance reads a wallet balance straight from the database.
func walletBalance(t *testing.T, walletID int64) decimal.Decimal {
	var balance decimal.Decimal
	err := testApp.DB.Get(&balance, "SELECT balance FROM wallets WHERE id = $1", walletID)
	require.NoError(t, err)
	return balance
}

func TestMissingUserHeaderIsRejected(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, testServer.URL+"/wallets", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSellAndRevertItemKeepsWalletConsistent(t *testing.T) {
	clearDatabase(t)
	walletID := createTestWallet(t, "Kedai", decimal.NewFromFloat(100.00))

	// Create an available item.
	var created struct {
		Item struct {
			ID int64 `json:"id"`
		} `json:"item"`
		Action string `json:"action"`
	}
	resp := doRequest(t, http.MethodPost, "/items", map[string]interface{}{
		"name":       "Kamera Vintage",
		"category":   "Elektronik",
		"cost_price": "50.00",
		"status":     "tersedia",
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "created", created.Action)

	// Sell it into the wallet.
	var sold struct {
		Action string `json:"action"`
	}
	resp = doRequest(t, http.MethodPost, "/items", map[string]interface{}{
		"id":              created.Item.ID,
		"name":            "Kamera Vintage",
		"category":        "Elektronik",
		"cost_price":      "50.00",
		"selling_price":   "150.00",
		"status":          "terjual",
		"date_sold":       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		"sold_platforms":  []string{"Carousell"},
		"wallet_id":       walletID,
		"original_status": "tersedia",
	}, &sold)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "sold", sold.Action)
	assert.True(t, walletBalance(t, walletID).Equal(decimal.NewFromFloat(250.00)))

	// Revert the sale by marking the item available again.
	var reverted struct {
		Action string `json:"action"`
	}
	resp = doRequest(t, http.MethodPost, "/items", map[string]interface{}{
		"id":              created.Item.ID,
		"name":            "Kamera Vintage",
		"category":        "Elektronik",
		"cost_price":      "50.00",
		"status":          "tersedia",
		"original_status": "terjual",
	}, &reverted)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "reverted", reverted.Action)
	assert.True(t, walletBalance(t, walletID).Equal(decimal.NewFromFloat(100.00)))

	// The sale transaction is gone too.
	var count int
	require.NoError(t, testApp.DB.Get(&count, "SELECT COUNT(*) FROM transactions WHERE item_id = $1", created.Item.ID))
	assert.Equal(t, 0, count)
}

func TestTransferCreatesPairAndDeletingALegRemovesBoth(t *testing.T) {
	clearDatabase(t)
	sourceID := createTestWallet(t, "Kedai", decimal.NewFromFloat(500.00))
	destinationID := createTestWallet(t, "Peribadi", decimal.NewFromFloat(100.00))

	var transfer struct {
		TransferID string `json:"transfer_id"`
	}
	resp := doRequest(t, http.MethodPost, "/transfers", map[string]interface{}{
		"source_wallet_id":      sourceID,
		"destination_wallet_id": destinationID,
		"amount":                "200.00",
		"transaction_date":      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}, &transfer)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, transfer.TransferID)

	assert.True(t, walletBalance(t, sourceID).Equal(decimal.NewFromFloat(300.00)))
	assert.True(t, walletBalance(t, destinationID).Equal(decimal.NewFromFloat(300.00)))

	var legIDs []int64
	require.NoError(t, testApp.DB.Select(&legIDs, "SELECT id FROM transactions WHERE transfer_id = $1 ORDER BY id", transfer.TransferID))
	require.Len(t, legIDs, 2)

	// Deleting either leg removes the pair and restores both balances.
	resp = doRequest(t, http.MethodDelete, fmt.Sprintf("/transactions/%d", legIDs[1]), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int
	require.NoError(t, testApp.DB.Get(&count, "SELECT COUNT(*) FROM transactions WHERE transfer_id = $1", transfer.TransferID))
	assert.Equal(t, 0, count)
	assert.True(t, walletBalance(t, sourceID).Equal(decimal.NewFromFloat(500.00)))
	assert.True(t, walletBalance(t, destinationID).Equal(decimal.NewFromFloat(100.00)))
}

func TestSameWalletTransferRejected(t *testing.T) {
	clearDatabase(t)
	walletID := createTestWallet(t, "Kedai", decimal.NewFromFloat(500.00))

	resp := doRequest(t, http.MethodPost, "/transfers", map[string]interface{}{
		"source_wallet_id":      walletID,
		"destination_wallet_id": walletID,
		"amount":                "50.00",
		"transaction_date":      time.Now().UTC(),
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.True(t, walletBalance(t, walletID).Equal(decimal.NewFromFloat(500.00)))
}

func TestManualAdjustmentSetsAbsoluteBalance(t *testing.T) {
	clearDatabase(t)
	walletID := createTestWallet(t, "Kedai", decimal.NewFromFloat(100.00))

	resp := doRequest(t, http.MethodPost, fmt.Sprintf("/wallets/%d/adjust", walletID), map[string]interface{}{
		"new_balance": "250.00",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, walletBalance(t, walletID).Equal(decimal.NewFromFloat(250.00)))

	// An adjustment transaction for the difference exists.
	var txType string
	var amount decimal.Decimal
	require.NoError(t, testApp.DB.QueryRow("SELECT type, amount FROM transactions WHERE wallet_id = $1", walletID).Scan(&txType, &amount))
	assert.Equal(t, "pelarasan_manual_tambah", txType)
	assert.True(t, amount.Equal(decimal.NewFromFloat(150.00)))

	// Adjusting to the current balance is a no-op.
	resp = doRequest(t, http.MethodPost, fmt.Sprintf("/wallets/%d/adjust", walletID), map[string]interface{}{
		"new_balance": "250.00",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int
	require.NoError(t, testApp.DB.Get(&count, "SELECT COUNT(*) FROM transactions WHERE wallet_id = $1", walletID))
	assert.Equal(t, 1, count)
}

func TestExpenseLifecycle(t *testing.T) {
	clearDatabase(t)
	walletID := createTestWallet(t, "Kedai", decimal.NewFromFloat(100.00))

	// Create an expense.
	var created domain.Transaction
	resp := doRequest(t, http.MethodPost, "/transactions", map[string]interface{}{
		"wallet_id":        walletID,
		"type":             "perbelanjaan",
		"amount":           "30.00",
		"transaction_date": time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		"category":         "Pos",
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, walletBalance(t, walletID).Equal(decimal.NewFromFloat(70.00)))

	// Edit the amount; the balance reflects only the new amount.
	resp = doRequest(t, http.MethodPut, fmt.Sprintf("/transactions/%d", created.ID), map[string]interface{}{
		"wallet_id":        walletID,
		"amount":           "45.00",
		"transaction_date": time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		"category":         "Pos",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, walletBalance(t, walletID).Equal(decimal.NewFromFloat(55.00)))

	// Delete it; the balance is restored.
	resp = doRequest(t, http.MethodDelete, fmt.Sprintf("/transactions/%d", created.ID), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, walletBalance(t, walletID).Equal(decimal.NewFromFloat(100.00)))

	// Deleting again is a harmless no-op.
	resp = doRequest(t, http.MethodDelete, fmt.Sprintf("/transactions/%d", created.ID), nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestExpenseWithoutCategoryRejected(t *testing.T) {
	clearDatabase(t)
	walletID := createTestWallet(t, "Kedai", decimal.NewFromFloat(100.00))

	resp := doRequest(t, http.MethodPost, "/transactions", map[string]interface{}{
		"wallet_id":        walletID,
		"type":             "perbelanjaan",
		"amount":           "30.00",
		"transaction_date": time.Now().UTC(),
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.True(t, walletBalance(t, walletID).Equal(decimal.NewFromFloat(100.00)))
}

func TestClientDetailAggregatesPurchases(t *testing.T) {
	clearDatabase(t)
	walletID := createTestWallet(t, "Kedai", decimal.NewFromFloat(0))

	var client domain.Client
	resp := doRequest(t, http.MethodPost, "/clients", map[string]interface{}{
		"name":   "Ali",
		"phones": []map[string]interface{}{{"phone": "0123456789"}},
	}, &client)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Sell an item to the client.
	var created struct {
		Item struct {
			ID int64 `json:"id"`
		} `json:"item"`
	}
	resp = doRequest(t, http.MethodPost, "/items", map[string]interface{}{
		"name":          "Jam Tangan",
		"category":      "Aksesori",
		"cost_price":    "20.00",
		"selling_price": "70.00",
		"status":        "terjual",
		"date_sold":     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		"client_id":     client.ID,
		"wallet_id":     walletID,
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var detail struct {
		Client domain.Client `json:"client"`
		Items  []domain.Item `json:"items"`
		Stats  struct {
			TotalSpend  decimal.Decimal `json:"total_spend"`
			TotalProfit decimal.Decimal `json:"total_profit"`
			ItemCount   int             `json:"item_count"`
		} `json:"stats"`
	}
	resp = doRequest(t, http.MethodGet, fmt.Sprintf("/clients/%d", client.ID), nil, &detail)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "Ali", detail.Client.Name)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, 1, detail.Stats.ItemCount)
	assert.True(t, detail.Stats.TotalSpend.Equal(decimal.NewFromFloat(70.00)))
	assert.True(t, detail.Stats.TotalProfit.Equal(decimal.NewFromFloat(50.00)))
}

func TestWalletEditDoesNotTouchBalance(t *testing.T) {
	clearDatabase(t)
	walletID := createTestWallet(t, "Kedai", decimal.NewFromFloat(321.00))

	var wallet domain.Wallet
	resp := doRequest(t, http.MethodPost, "/wallets", map[string]interface{}{
		"id":           walletID,
		"name":         "Kedai Baru",
		"account_type": "Personal",
		"balance":      "999.00",
	}, &wallet)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "Kedai Baru", wallet.Name)
	assert.Equal(t, domain.AccountTypePersonal, wallet.AccountType)
	assert.True(t, walletBalance(t, walletID).Equal(decimal.NewFromFloat(321.00)))
}
