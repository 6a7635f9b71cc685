package events

import "time"

// Event type names carried on outbox events and queue messages.
const (
	TypeSurplusDetected   = "campaign.surplus_detected"
	TypeSettlementCreated = "settlement.created"
)

// SurplusDetected is the inbound signal that a campaign's received amount has
// exceeded its target. It is delivered at least once; the surplus amount it
// carries is advisory and is always recomputed from the fresh campaign record.
type SurplusDetected struct {
	CampaignId    string `json:"campaign_id"`
	SurplusAmount int64  `json:"surplus_amount"`
}

// SettlementCreated is emitted through the outbox when a campaign enters
// settlement. The receiving wallet ledger credits the receiver idempotently,
// keyed on SettlementId, so redelivery is harmless.
type SettlementCreated struct {
	SettlementId  string    `json:"settlement_id"`
	CampaignId    string    `json:"campaign_id"`
	ReceiverId    string    `json:"receiver_id"`
	SurplusAmount int64     `json:"surplus_amount"`
	Timestamp     time.Time `json:"timestamp"`
}
