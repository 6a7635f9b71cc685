package storage

import (
	"context"

	"github.com/openfund/ledger/pkg/models"
)

// SpendingRequestStore defines the interface for the staffing requests that
// disbursements pay out against.
type SpendingRequestStore interface {
	// GetSpendingRequest retrieves a request by its ID. Fails with
	// ErrRequestNotFound if absent.
	GetSpendingRequest(ctx context.Context, requestID string) (*models.SpendingRequest, error)

	// CreateSpendingRequest creates a new request in PENDING status.
	CreateSpendingRequest(ctx context.Context, req *models.SpendingRequest) (*models.SpendingRequest, error)

	// ApproveSpendingRequest transitions a request PENDING -> APPROVED.
	// Fails with ErrStatusConflict if the request is not PENDING.
	ApproveSpendingRequest(ctx context.Context, requestID string) error

	// RejectSpendingRequest transitions a request PENDING -> REJECTED, a
	// terminal state. Fails with ErrStatusConflict if the request is not
	// PENDING.
	RejectSpendingRequest(ctx context.Context, requestID string) error
}

// DisbursementStore defines the interface for inflow transactions: the
// admin-initiated payout record and the payee's one-time confirmation.
type DisbursementStore interface {
	SpendingRequestStore

	// CreateInflowTransaction records an admin-initiated payout against an
	// APPROVED request. The amount must equal the request's total cost, and at
	// most one inflow transaction may exist per request.
	CreateInflowTransaction(ctx context.Context, inflow *models.InflowTransaction) (*models.InflowTransaction, error)

	// GetInflowTransaction retrieves an inflow transaction by its ID.
	GetInflowTransaction(ctx context.Context, inflowID string) (*models.InflowTransaction, error)

	// ConfirmInflowTransaction applies the payee's one-time confirmation.
	// COMPLETED also moves the originating request to DISBURSED; FAILED leaves
	// the request untouched for an out-of-band retry. Both writes share one
	// atomic unit. A second confirmation fails with ErrAlreadyReported.
	ConfirmInflowTransaction(ctx context.Context, inflowID string, outcome models.InflowStatus, payeeID string) (*models.InflowTransaction, error)
}
