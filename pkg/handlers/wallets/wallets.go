package wallets

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/openfund/ledger/pkg/api"
	"github.com/openfund/ledger/pkg/mapping"
	"github.com/openfund/ledger/pkg/models"
	"github.com/openfund/ledger/pkg/storage"
)

// WalletsHandler holds the dependencies for wallet-related handlers.
type WalletsHandler struct {
	Store storage.WalletStore
}

// NewWalletsHandler creates a new WalletsHandler.
func NewWalletsHandler(store storage.WalletStore) *WalletsHandler {
	return &WalletsHandler{Store: store}
}

// CreateWallet handles the logic for provisioning a new wallet. Wallets start
// at a zero balance and are created explicitly, never on first use.
func (h *WalletsHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	var newWallet api.NewWallet
	if err := json.NewDecoder(r.Body).Decode(&newWallet); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if newWallet.OwnerId == "" {
		http.Error(w, "owner_id is required", http.StatusBadRequest)
		return
	}
	if !models.ValidPurseKind(newWallet.PurseKind) {
		http.Error(w, fmt.Sprintf("Unknown purse kind %q", newWallet.PurseKind), http.StatusBadRequest)
		return
	}

	domainWallet := mapping.ToDomainNewWallet(&newWallet)

	createdWallet, err := h.Store.CreateWallet(r.Context(), domainWallet)
	if err != nil {
		if errors.Is(err, storage.ErrWalletExists) {
			http.Error(w, "Wallet for this owner and purse kind already exists", http.StatusConflict)
		} else {
			http.Error(w, fmt.Sprintf("Failed to create wallet: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiWallet := mapping.ToApiWallet(createdWallet)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiWallet); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetWallet handles the logic for retrieving a wallet by owner and purse kind.
func (h *WalletsHandler) GetWallet(w http.ResponseWriter, r *http.Request, ownerId string, purseKind string) {
	if !models.ValidPurseKind(purseKind) {
		http.Error(w, fmt.Sprintf("Unknown purse kind %q", purseKind), http.StatusBadRequest)
		return
	}

	domainWallet, err := h.Store.GetWallet(r.Context(), ownerId, models.PurseKind(purseKind))
	if err != nil {
		if errors.Is(err, storage.ErrWalletNotFound) {
			http.Error(w, "Wallet not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve wallet: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiWallet := mapping.ToApiWallet(domainWallet)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiWallet); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
