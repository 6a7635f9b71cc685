package models

import "fmt"

// IdempotencyKey identifies a financial effect so it is applied at most once
// per wallet. The type is sealed: a credit either carries the id of its
// originating payment/settlement, or a gateway name plus the gateway's own
// transaction id. A partial key cannot be constructed.
type IdempotencyKey interface {
	// String renders the key as the stored sort-key value.
	String() string

	sealed()
}

// ByReference keys a transaction on the id of its originating payment or
// settlement.
type ByReference struct {
	ReferenceId string
}

func (k ByReference) String() string { return "ref#" + k.ReferenceId }
func (ByReference) sealed()          {}

// ByGateway keys a transaction on the gateway name plus the gateway's own
// transaction id, for transfers that carry no internal reference.
type ByGateway struct {
	Gateway    string
	ExternalId string
}

func (k ByGateway) String() string { return fmt.Sprintf("gw#%s#%s", k.Gateway, k.ExternalId) }
func (ByGateway) sealed()          {}
