package disbursements

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

// Identity headers resolved by the gateway in front of this service. The
// admin header authorizes payout commands; the principal header identifies
// the payee confirming an outcome.
const (
	HeaderAdminId     = "X-Admin-Id"
	HeaderPrincipalId = "X-Principal-Id"
)

// DisbursementsHandler holds the dependencies for spending request and
// disbursement handlers.
type DisbursementsHandler struct {
	Store storage.DisbursementStore
}

// NewDisbursementsHandler creates a new DisbursementsHandler.
func NewDisbursementsHandler(store storage.DisbursementStore) *DisbursementsHandler {
	return &DisbursementsHandler{Store: store}
}

// CreateSpendingRequest handles the logic for filing a new spending request.
func (h *DisbursementsHandler) CreateSpendingRequest(w http.ResponseWriter, r *http.Request) {
	var newReq api.NewSpendingRequest
	if err := json.NewDecoder(r.Body).Decode(&newReq); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if newReq.Kind != string(models.RequestIngredient) && newReq.Kind != string(models.RequestOperation) {
		http.Error(w, fmt.Sprintf("Unknown request kind %q", newReq.Kind), http.StatusBadRequest)
		return
	}
	if newReq.RequesterId == "" {
		http.Error(w, "requester_id is required", http.StatusBadRequest)
		return
	}
	if newReq.TotalCost <= 0 {
		http.Error(w, "total_cost must be positive", http.StatusBadRequest)
		return
	}

	domainReq := mapping.ToDomainNewSpendingRequest(&newReq)

	created, err := h.Store.CreateSpendingRequest(r.Context(), domainReq)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to create spending request: %v", err), http.StatusInternalServerError)
		return
	}

	apiReq := mapping.ToApiSpendingRequest(created)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiReq); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetSpendingRequest retrieves a spending request by its ID.
func (h *DisbursementsHandler) GetSpendingRequest(w http.ResponseWriter, r *http.Request, requestId string) {
	req, err := h.Store.GetSpendingRequest(r.Context(), requestId)
	if err != nil {
		if errors.Is(err, storage.ErrRequestNotFound) {
			http.Error(w, "Spending request not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve spending request: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiReq := mapping.ToApiSpendingRequest(req)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiReq); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ApproveSpendingRequest moves a PENDING request to APPROVED.
func (h *DisbursementsHandler) ApproveSpendingRequest(w http.ResponseWriter, r *http.Request, requestId string) {
	if r.Header.Get(HeaderAdminId) == "" {
		http.Error(w, "Admin identity required", http.StatusUnauthorized)
		return
	}

	if err := h.Store.ApproveSpendingRequest(r.Context(), requestId); err != nil {
		if errors.Is(err, storage.ErrStatusConflict) {
			http.Error(w, "Spending request is not pending", http.StatusConflict)
		} else {
			http.Error(w, fmt.Sprintf("Failed to approve spending request: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RejectSpendingRequest moves a PENDING request to REJECTED.
func (h *DisbursementsHandler) RejectSpendingRequest(w http.ResponseWriter, r *http.Request, requestId string) {
	if r.Header.Get(HeaderAdminId) == "" {
		http.Error(w, "Admin identity required", http.StatusUnauthorized)
		return
	}

	if err := h.Store.RejectSpendingRequest(r.Context(), requestId); err != nil {
		if errors.Is(err, storage.ErrStatusConflict) {
			http.Error(w, "Spending request is not pending", http.StatusConflict)
		} else {
			http.Error(w, fmt.Sprintf("Failed to reject spending request: %v", err), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// requestReference extracts the single request reference from the payout
// body. Exactly one of the two kinds must be set.
func requestReference(body *api.NewInflowTransaction) (string, models.RequestKind, error) {
	hasIngredient := body.IngredientRequestId != nil && *body.IngredientRequestId != ""
	hasOperation := body.OperationRequestId != nil && *body.OperationRequestId != ""

	switch {
	case hasIngredient && hasOperation:
		return "", "", errors.New("ingredient_request_id and operation_request_id are mutually exclusive")
	case hasIngredient:
		return *body.IngredientRequestId, models.RequestIngredient, nil
	case hasOperation:
		return *body.OperationRequestId, models.RequestOperation, nil
	default:
		return "", "", errors.New("one of ingredient_request_id or operation_request_id is required")
	}
}

// CreateInflowTransaction records an admin-initiated payout against an
// approved spending request.
func (h *DisbursementsHandler) CreateInflowTransaction(w http.ResponseWriter, r *http.Request) {
	adminId := r.Header.Get(HeaderAdminId)
	if adminId == "" {
		http.Error(w, "Admin identity required", http.StatusUnauthorized)
		return
	}

	var body api.NewInflowTransaction
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if body.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}

	requestId, kind, err := requestReference(&body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.Store.CreateInflowTransaction(r.Context(), &models.InflowTransaction{
		RequestId:   requestId,
		RequestKind: kind,
		AdminId:     adminId,
		Amount:      body.Amount,
		ProofUrl:    body.ProofUrl,
	})
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrRequestNotFound):
			http.Error(w, "Spending request not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrRequestNotApproved):
			http.Error(w, "Spending request is not approved", http.StatusUnprocessableEntity)
		case errors.Is(err, storage.ErrAmountMismatch):
			http.Error(w, "Amount does not match the request's total cost", http.StatusUnprocessableEntity)
		case errors.Is(err, storage.ErrDisbursementExists):
			http.Error(w, "A disbursement already exists for this request", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to create disbursement: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiInflow := mapping.ToApiInflowTransaction(created)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiInflow); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetInflowTransaction retrieves a disbursement by its ID.
func (h *DisbursementsHandler) GetInflowTransaction(w http.ResponseWriter, r *http.Request, inflowId string) {
	inflow, err := h.Store.GetInflowTransaction(r.Context(), inflowId)
	if err != nil {
		if errors.Is(err, storage.ErrDisbursementNotFound) {
			http.Error(w, "Disbursement not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve disbursement: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiInflow := mapping.ToApiInflowTransaction(inflow)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiInflow); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ConfirmInflowTransaction applies the payee's one-time outcome report.
func (h *DisbursementsHandler) ConfirmInflowTransaction(w http.ResponseWriter, r *http.Request, inflowId string) {
	payeeId := r.Header.Get(HeaderPrincipalId)
	if payeeId == "" {
		http.Error(w, "Principal identity required", http.StatusUnauthorized)
		return
	}

	var body api.ConfirmDisbursement
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	outcome := models.InflowStatus(body.Outcome)
	if outcome != models.InflowCompleted && outcome != models.InflowFailed {
		http.Error(w, fmt.Sprintf("Unknown outcome %q", body.Outcome), http.StatusBadRequest)
		return
	}

	confirmed, err := h.Store.ConfirmInflowTransaction(r.Context(), inflowId, outcome, payeeId)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrDisbursementNotFound):
			http.Error(w, "Disbursement not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrNotReceiver):
			http.Error(w, "Only the designated payee may confirm", http.StatusForbidden)
		case errors.Is(err, storage.ErrAlreadyReported):
			http.Error(w, "Disbursement outcome already reported", http.StatusConflict)
		default:
			http.Error(w, fmt.Sprintf("Failed to confirm disbursement: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiInflow := mapping.ToApiInflowTransaction(confirmed)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiInflow); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
