// Package api holds the request and response types of the HTTP surface.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// NewWallet is the request body for creating a wallet.
type NewWallet struct {
	OwnerId   string `json:"owner_id"`
	PurseKind string `json:"purse_kind"`
}

// Wallet is the API representation of a wallet.
type Wallet struct {
	Id        openapi_types.UUID `json:"id"`
	OwnerId   string             `json:"owner_id"`
	PurseKind string             `json:"purse_kind"`
	Balance   int64              `json:"balance"`
	CreatedAt time.Time          `json:"created_at"`
}

// CreditRequest is the ledger's credit entrypoint body. Exactly one
// idempotency shape must be supplied: a reference id, or a gateway plus the
// gateway's transaction id.
type CreditRequest struct {
	OwnerId              string  `json:"owner_id"`
	PurseKind            string  `json:"purse_kind"`
	Amount               int64   `json:"amount"`
	Kind                 string  `json:"kind"`
	ReferenceId          *string `json:"reference_id,omitempty"`
	Gateway              *string `json:"gateway,omitempty"`
	GatewayTransactionId *string `json:"gateway_transaction_id,omitempty"`
}

// DebitRequest is the ledger's debit entrypoint body.
type DebitRequest struct {
	OwnerId   string `json:"owner_id"`
	PurseKind string `json:"purse_kind"`
	Amount    int64  `json:"amount"`
	Kind      string `json:"kind"`
}

// WalletTransaction is the API representation of a ledger row.
type WalletTransaction struct {
	Id          openapi_types.UUID `json:"id"`
	WalletId    string             `json:"wallet_id"`
	Amount      int64              `json:"amount"`
	Kind        string             `json:"kind"`
	ReferenceId *string            `json:"reference_id,omitempty"`
	Gateway     *string            `json:"gateway,omitempty"`
	GatewayTxId *string            `json:"gateway_tx_id,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// TransactionPage is one page of a wallet's transaction log.
type TransactionPage struct {
	Transactions []WalletTransaction `json:"transactions"`
	NextCursor   *string             `json:"next_cursor,omitempty"`
}

// NewSpendingRequest is the request body for creating a spending request.
type NewSpendingRequest struct {
	Kind        string `json:"kind"`
	RequesterId string `json:"requester_id"`
	TotalCost   int64  `json:"total_cost"`
}

// SpendingRequest is the API representation of a spending request.
type SpendingRequest struct {
	Id          openapi_types.UUID `json:"id"`
	Kind        string             `json:"kind"`
	RequesterId string             `json:"requester_id"`
	TotalCost   int64              `json:"total_cost"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// NewInflowTransaction is the request body for the administrative
// disbursement command. Exactly one of the two request references must be
// set.
type NewInflowTransaction struct {
	IngredientRequestId *string `json:"ingredient_request_id,omitempty"`
	OperationRequestId  *string `json:"operation_request_id,omitempty"`
	Amount              int64   `json:"amount"`
	ProofUrl            string  `json:"proof_url"`
}

// InflowTransaction is the API representation of a disbursement.
type InflowTransaction struct {
	Id          openapi_types.UUID `json:"id"`
	RequestId   string             `json:"request_id"`
	RequestKind string             `json:"request_kind"`
	PayeeId     string             `json:"payee_id"`
	AdminId     string             `json:"admin_id"`
	Amount      int64              `json:"amount"`
	ProofUrl    string             `json:"proof_url"`
	Status      string             `json:"status"`
	IsReported  bool               `json:"is_reported"`
	ReportedAt  *time.Time         `json:"reported_at,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// ConfirmDisbursement is the payee's one-time confirmation body.
type ConfirmDisbursement struct {
	Outcome string `json:"outcome"`
}

// Campaign is the API representation of the settlement-relevant slice of a
// campaign.
type Campaign struct {
	Id              string    `json:"id"`
	OwnerExternalId string    `json:"owner_external_id"`
	TargetAmount    int64     `json:"target_amount"`
	ReceivedAmount  int64     `json:"received_amount"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewCampaign is the request body for registering a campaign.
type NewCampaign struct {
	Id              string `json:"id"`
	OwnerExternalId string `json:"owner_external_id"`
	TargetAmount    int64  `json:"target_amount"`
	ReceivedAmount  int64  `json:"received_amount"`
}
