package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/openfund/ledger/pkg/api"
	"github.com/openfund/ledger/pkg/mapping"
	"github.com/openfund/ledger/pkg/models"
	"github.com/openfund/ledger/pkg/storage"
)

const defaultPageLimit = 25

// LedgerHandler holds the dependencies for ledger-related handlers.
type LedgerHandler struct {
	Store storage.LedgerStore
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(store storage.LedgerStore) *LedgerHandler {
	return &LedgerHandler{Store: store}
}

// creditKey derives the idempotency key from the request body. Exactly one
// shape must be present: a reference id, or a gateway pair.
func creditKey(req *api.CreditRequest) (models.IdempotencyKey, error) {
	hasRef := req.ReferenceId != nil && *req.ReferenceId != ""
	hasGateway := req.Gateway != nil && *req.Gateway != "" &&
		req.GatewayTransactionId != nil && *req.GatewayTransactionId != ""

	switch {
	case hasRef && hasGateway:
		return nil, errors.New("reference_id and gateway identifiers are mutually exclusive")
	case hasRef:
		return models.ByReference{ReferenceId: *req.ReferenceId}, nil
	case hasGateway:
		return models.ByGateway{Gateway: *req.Gateway, ExternalId: *req.GatewayTransactionId}, nil
	default:
		return nil, errors.New("either reference_id or gateway and gateway_transaction_id are required")
	}
}

// Credit handles an idempotent credit. Replays of the same idempotency key
// return the originally recorded transaction.
func (h *LedgerHandler) Credit(w http.ResponseWriter, r *http.Request) {
	var req api.CreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}
	if !models.ValidPurseKind(req.PurseKind) {
		http.Error(w, fmt.Sprintf("Unknown purse kind %q", req.PurseKind), http.StatusBadRequest)
		return
	}
	key, err := creditKey(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.Store.Credit(r.Context(), storage.CreditParams{
		OwnerId: req.OwnerId,
		Purse:   models.PurseKind(req.PurseKind),
		Amount:  req.Amount,
		Kind:    models.TransactionKind(req.Kind),
		Key:     key,
	})
	if err != nil {
		if errors.Is(err, storage.ErrWalletNotFound) {
			http.Error(w, "Wallet not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to credit wallet: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiTx := mapping.ToApiTransaction(tx)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiTx); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// Debit handles a debit against a wallet's available balance.
func (h *LedgerHandler) Debit(w http.ResponseWriter, r *http.Request) {
	var req api.DebitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}
	if !models.ValidPurseKind(req.PurseKind) {
		http.Error(w, fmt.Sprintf("Unknown purse kind %q", req.PurseKind), http.StatusBadRequest)
		return
	}

	tx, err := h.Store.Debit(r.Context(), storage.DebitParams{
		OwnerId: req.OwnerId,
		Purse:   models.PurseKind(req.PurseKind),
		Amount:  req.Amount,
		Kind:    models.TransactionKind(req.Kind),
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInsufficientFunds):
			http.Error(w, "Insufficient funds", http.StatusUnprocessableEntity)
		case errors.Is(err, storage.ErrWalletNotFound):
			http.Error(w, "Wallet not found", http.StatusNotFound)
		default:
			http.Error(w, fmt.Sprintf("Failed to debit wallet: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiTx := mapping.ToApiTransaction(tx)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiTx); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListTransactions handles paging through a wallet's transaction log, newest
// first. The cursor query parameter continues a previous page.
func (h *LedgerHandler) ListTransactions(w http.ResponseWriter, r *http.Request, walletId string) {
	limit := int32(defaultPageLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed <= 0 {
			http.Error(w, fmt.Sprintf("Invalid limit %q", raw), http.StatusBadRequest)
			return
		}
		limit = int32(parsed)
	}
	cursor := r.URL.Query().Get("cursor")

	txs, nextCursor, err := h.Store.ListTransactions(r.Context(), walletId, limit, cursor)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve transactions: %v", err), http.StatusInternalServerError)
		return
	}

	page := mapping.ToApiTransactionPage(txs, nextCursor)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(page); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
