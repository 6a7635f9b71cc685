package campaigns

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/openfund/ledger/pkg/api"
	"github.com/openfund/ledger/pkg/mapping"
	"github.com/openfund/ledger/pkg/storage"
)

// CampaignsHandler holds the dependencies for campaign-related handlers.
type CampaignsHandler struct {
	Store storage.CampaignStore
}

// NewCampaignsHandler creates a new CampaignsHandler.
func NewCampaignsHandler(store storage.CampaignStore) *CampaignsHandler {
	return &CampaignsHandler{Store: store}
}

// CreateCampaign registers a campaign with the settlement subsystem. The
// campaign itself lives upstream; this record carries the slice of it that
// settlement needs.
func (h *CampaignsHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var newCampaign api.NewCampaign
	if err := json.NewDecoder(r.Body).Decode(&newCampaign); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if newCampaign.Id == "" || newCampaign.OwnerExternalId == "" {
		http.Error(w, "id and owner_external_id are required", http.StatusBadRequest)
		return
	}
	if newCampaign.TargetAmount <= 0 {
		http.Error(w, "target_amount must be positive", http.StatusBadRequest)
		return
	}

	domainCampaign := mapping.ToDomainNewCampaign(&newCampaign)

	created, err := h.Store.CreateCampaign(r.Context(), domainCampaign)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create campaign: %v", err), http.StatusInternalServerError)
		return
	}

	apiCampaign := mapping.ToApiCampaign(created)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiCampaign); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetCampaign retrieves a campaign by its ID.
func (h *CampaignsHandler) GetCampaign(w http.ResponseWriter, r *http.Request, campaignId string) {
	campaign, err := h.Store.GetCampaign(r.Context(), campaignId)
	if err != nil {
		if errors.Is(err, storage.ErrCampaignNotFound) {
			http.Error(w, "Campaign not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve campaign: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiCampaign := mapping.ToApiCampaign(campaign)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiCampaign); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
