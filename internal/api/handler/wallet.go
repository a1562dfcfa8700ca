// internal/api/handler/wallet.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"rarebit-ledger/internal/api/types"
	"rarebit-ledger/internal/classify"
	"rarebit-ledger/internal/domain"
	"rarebit-ledger/internal/service"
	"rarebit-ledger/internal/util"
)

// WalletHandler handles HTTP requests for wallets, transactions, transfers,
// and manual balance adjustments.
type WalletHandler struct {
	ledger service.LedgerService
	logger *slog.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledger service.LedgerService, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{ledger: ledger, logger: logger}
}

// ListWallets handles GET /wallets.
func (h *WalletHandler) ListWallets(w http.ResponseWriter, r *http.Request) {
	wallets, err := h.ledger.ListWallets(r.Context(), userID(r))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{"data": wallets})
}

// UpsertWalletRequest represents the request body for wallet create/edit.
type UpsertWalletRequest struct {
	ID          *int64             `json:"id"`
	Name        string             `json:"name"`
	AccountType domain.AccountType `json:"account_type"`
	Balance     decimal.Decimal    `json:"balance"`
}

// UpsertWallet handles POST /wallets. With an id, only name and account type
// change; the balance is immutable through this path.
func (h *WalletHandler) UpsertWallet(w http.ResponseWriter, r *http.Request) {
	var req UpsertWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	wallet, err := h.ledger.UpsertWallet(r.Context(), userID(r), service.WalletInput{
		ID:          req.ID,
		Name:        req.Name,
		AccountType: req.AccountType,
		Balance:     req.Balance,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	code := http.StatusOK
	if req.ID == nil {
		code = http.StatusCreated
	}
	respondWithJSON(w, h.logger, code, wallet)
}

// DeleteWallet handles DELETE /wallets/{walletID}.
func (h *WalletHandler) DeleteWallet(w http.ResponseWriter, r *http.Request) {
	walletID, err := pathID(chi.URLParam(r, "walletID"))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	if err := h.ledger.DeleteWallet(r.Context(), userID(r), walletID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Wallet deleted"})
}

// GetWalletBalance handles GET /wallets/{walletID}/balance.
func (h *WalletHandler) GetWalletBalance(w http.ResponseWriter, r *http.Request) {
	walletID, err := pathID(chi.URLParam(r, "walletID"))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	wallet, err := h.ledger.GetWallet(r.Context(), userID(r), walletID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"wallet_id": wallet.ID,
		"balance":   wallet.Balance,
	})
}

// AdjustBalanceRequest represents the request body for a manual balance
// adjustment.
type AdjustBalanceRequest struct {
	NewBalance decimal.Decimal `json:"new_balance"`
}

// AdjustBalance handles POST /wallets/{walletID}/adjust.
func (h *WalletHandler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	walletID, err := pathID(chi.URLParam(r, "walletID"))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	var req AdjustBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	transaction, err := h.ledger.AdjustBalance(r.Context(), userID(r), walletID, req.NewBalance)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message":     "Balance adjusted",
		"transaction": transaction, // nil when the balance was already on target
	})
}

// transactionView is a transaction together with its display classification.
type transactionView struct {
	domain.Transaction
	Classification classify.Classification `json:"classification"`
}

func (h *WalletHandler) classifyAll(transactions []domain.Transaction) ([]transactionView, error) {
	views := make([]transactionView, 0, len(transactions))
	for i := range transactions {
		c, err := classify.Classify(&transactions[i])
		if err != nil {
			return nil, err
		}
		views = append(views, transactionView{Transaction: transactions[i], Classification: c})
	}
	return views, nil
}

// ListTransactions handles GET /transactions.
func (h *WalletHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	transactions, totalCount, err := h.ledger.ListTransactions(r.Context(), userID(r), limit, offset)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	views, err := h.classifyAll(transactions)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, types.PaginatedResponse[transactionView]{
		Data: views, Limit: limit, Offset: offset, TotalCount: totalCount,
	})
}

// ListWalletTransactions handles GET /wallets/{walletID}/transactions.
func (h *WalletHandler) ListWalletTransactions(w http.ResponseWriter, r *http.Request) {
	walletID, err := pathID(chi.URLParam(r, "walletID"))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	limit, offset := pagination(r)
	transactions, totalCount, err := h.ledger.ListWalletTransactions(r.Context(), userID(r), walletID, limit, offset)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	views, err := h.classifyAll(transactions)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, types.PaginatedResponse[transactionView]{
		Data: views, Limit: limit, Offset: offset, TotalCount: totalCount,
	})
}

// TransactionRequest represents the request body for transaction create/edit.
type TransactionRequest struct {
	WalletID        int64                  `json:"wallet_id"`
	Type            domain.TransactionType `json:"type"`
	Amount          decimal.Decimal        `json:"amount"`
	TransactionDate time.Time              `json:"transaction_date"`
	Description     *string                `json:"description"`
	Category        *string                `json:"category"`
}

// CreateTransaction handles POST /transactions.
func (h *WalletHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	transaction, err := h.ledger.CreateTransaction(r.Context(), userID(r), service.TransactionInput{
		WalletID:        req.WalletID,
		Type:            req.Type,
		Amount:          req.Amount,
		TransactionDate: req.TransactionDate,
		Description:     req.Description,
		Category:        req.Category,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT /transactions/{transactionID}.
func (h *WalletHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, err := pathID(chi.URLParam(r, "transactionID"))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	var req TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	transaction, err := h.ledger.UpdateTransaction(r.Context(), userID(r), transactionID, service.TransactionUpdate{
		WalletID:        req.WalletID,
		Amount:          req.Amount,
		TransactionDate: req.TransactionDate,
		Description:     req.Description,
		Category:        req.Category,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE /transactions/{transactionID}. Deleting a
// transfer leg deletes the whole pair.
func (h *WalletHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, err := pathID(chi.URLParam(r, "transactionID"))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	if err := h.ledger.DeleteTransaction(r.Context(), userID(r), transactionID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Transaction deleted"})
}

// TransferRequest represents the request body for a fund transfer.
type TransferRequest struct {
	SourceWalletID      int64           `json:"source_wallet_id"`
	DestinationWalletID int64           `json:"destination_wallet_id"`
	Amount              decimal.Decimal `json:"amount"`
	TransactionDate     time.Time       `json:"transaction_date"`
	Description         *string         `json:"description"`
}

// Transfer handles POST /transfers.
func (h *WalletHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.SourceWalletID == 0 || req.DestinationWalletID == 0 {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	transferID, err := h.ledger.TransferFunds(r.Context(), userID(r), service.TransferInput{
		SourceWalletID:      req.SourceWalletID,
		DestinationWalletID: req.DestinationWalletID,
		Amount:              req.Amount,
		TransactionDate:     req.TransactionDate,
		Description:         req.Description,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusCreated, map[string]string{
		"message":     "Transfer successful",
		"transfer_id": transferID,
	})
}
