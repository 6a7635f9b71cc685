package models

import (
	"encoding/json"
	"time"
)

// PurseKind names the role a wallet plays for its owner. One wallet exists
// per (owner, purse kind) pair.
type PurseKind string

const (
	PurseCampaign  PurseKind = "CAMPAIGN"
	PurseOperating PurseKind = "OPERATING"
)

// ValidPurseKind reports whether s names a known purse kind.
func ValidPurseKind(s string) bool {
	switch PurseKind(s) {
	case PurseCampaign, PurseOperating:
		return true
	}
	return false
}

// TransactionKind classifies a wallet transaction.
type TransactionKind string

const (
	TxReceived        TransactionKind = "RECEIVED"
	TxTransferIn      TransactionKind = "TRANSFER_IN"
	TxTransferOut     TransactionKind = "TRANSFER_OUT"
	TxWithdrawal      TransactionKind = "WITHDRAWAL"
	TxAdminAdjustment TransactionKind = "ADMIN_ADJUSTMENT"
)

// Wallet represents the internal domain model for a principal's purse.
// It includes dynamodbav tags for marshalling.
type Wallet struct {
	Id        string    `json:"id" dynamodbav:"id"`
	OwnerId   string    `json:"owner_id" dynamodbav:"owner_id"`
	PurseKind PurseKind `json:"purse_kind" dynamodbav:"purse_kind"`
	Balance   int64     `json:"balance" dynamodbav:"balance"`
	Version   int64     `json:"version" dynamodbav:"version"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// WalletTransaction is one append-only row in a wallet's transaction log.
// Amount is signed: positive for credits, negative for debits. The wallet's
// balance equals the sum of its transaction amounts at all times.
type WalletTransaction struct {
	Id          string          `dynamodbav:"id"`
	WalletId    string          `dynamodbav:"wallet_id"`
	IdemKey     string          `dynamodbav:"idem_key"`
	Amount      int64           `dynamodbav:"amount"`
	Kind        TransactionKind `dynamodbav:"kind"`
	ReferenceId string          `dynamodbav:"reference_id,omitempty"`
	Gateway     string          `dynamodbav:"gateway,omitempty"`
	GatewayTxId string          `dynamodbav:"gateway_tx_id,omitempty"`
	CreatedAt   time.Time       `dynamodbav:"created_at"`
}

// OutboxStatus is the delivery state of an outbox event.
type OutboxStatus string

const (
	OutboxPending    OutboxStatus = "PENDING"
	OutboxDispatched OutboxStatus = "DISPATCHED"
	OutboxFailed     OutboxStatus = "FAILED"
)

// OutboxEvent is a domain event recorded in the same atomic unit as the state
// change it reports. Only the relay mutates it after creation.
type OutboxEvent struct {
	Id          string          `json:"id" dynamodbav:"id"`
	AggregateId string          `json:"aggregate_id" dynamodbav:"aggregate_id"`
	EventType   string          `json:"event_type" dynamodbav:"event_type"`
	Payload     json.RawMessage `json:"payload" dynamodbav:"payload"`
	Status      OutboxStatus    `json:"status" dynamodbav:"status"`
	Attempts    int             `json:"attempts" dynamodbav:"attempts"`
	CreatedAt   time.Time       `json:"created_at" dynamodbav:"created_at"`
}

// CampaignStatus defines the lifecycle states of a campaign that matter to
// settlement. Only a settlement may move a campaign out of ACTIVE once its
// received amount exceeds its target.
type CampaignStatus string

const (
	CampaignActive     CampaignStatus = "ACTIVE"
	CampaignProcessing CampaignStatus = "PROCESSING"
	CampaignCompleted  CampaignStatus = "COMPLETED"
)

// Campaign is the settlement-relevant subset of a campaign record.
type Campaign struct {
	Id              string         `dynamodbav:"id"`
	OwnerExternalId string         `dynamodbav:"owner_external_id"`
	TargetAmount    int64          `dynamodbav:"target_amount"`
	ReceivedAmount  int64          `dynamodbav:"received_amount"`
	Status          CampaignStatus `dynamodbav:"status"`
	PreviousStatus  CampaignStatus `dynamodbav:"previous_status,omitempty"`
	ChangedStatusAt time.Time      `dynamodbav:"changed_status_at,omitempty"`
	CreatedAt       time.Time      `dynamodbav:"created_at"`
}

// RequestKind distinguishes the two staffing request types that can back a
// disbursement.
type RequestKind string

const (
	RequestIngredient RequestKind = "INGREDIENT"
	RequestOperation  RequestKind = "OPERATION"
)

// RequestStatus defines the spending request lifecycle.
type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestApproved  RequestStatus = "APPROVED"
	RequestRejected  RequestStatus = "REJECTED"
	RequestDisbursed RequestStatus = "DISBURSED"
)

// SpendingRequest is an approved-cost request a disbursement pays out against.
// TotalCost is fixed once the request is approved.
type SpendingRequest struct {
	Id          string        `dynamodbav:"id"`
	Kind        RequestKind   `dynamodbav:"kind"`
	RequesterId string        `dynamodbav:"requester_id"`
	TotalCost   int64         `dynamodbav:"total_cost"`
	Status      RequestStatus `dynamodbav:"status"`
	CreatedAt   time.Time     `dynamodbav:"created_at"`
	UpdatedAt   time.Time     `dynamodbav:"updated_at"`
}

// InflowStatus defines the states of an admin-initiated disbursement.
type InflowStatus string

const (
	InflowPending   InflowStatus = "PENDING"
	InflowCompleted InflowStatus = "COMPLETED"
	InflowFailed    InflowStatus = "FAILED"
)

// InflowTransaction records funds released to a payee against an approved
// spending request. At most one exists per request. The payee reports the
// outcome exactly once: IsReported is a one-time lock, not an updatable flag.
type InflowTransaction struct {
	Id          string       `dynamodbav:"id"`
	RequestId   string       `dynamodbav:"request_id"`
	RequestKind RequestKind  `dynamodbav:"request_kind"`
	PayeeId     string       `dynamodbav:"payee_id"`
	AdminId     string       `dynamodbav:"admin_id"`
	Amount      int64        `dynamodbav:"amount"`
	ProofUrl    string       `dynamodbav:"proof_url"`
	Status      InflowStatus `dynamodbav:"status"`
	IsReported  bool         `dynamodbav:"is_reported"`
	ReportedAt  *time.Time   `dynamodbav:"reported_at,omitempty"`
	CreatedAt   time.Time    `dynamodbav:"created_at"`
}
