package storage

// Storage defines the root interface for the entire data layer.
// It composes all available storage operations. Components should depend on
// the more granular interfaces (ApiStore, CampaignStore, OutboxStore, etc.)
// instead of this one.
type Storage interface {
	ApiStore
	CampaignStore
	OutboxStore
}

// ApiStore defines the set of operations needed by the HTTP API.
// It composes other interfaces to provide a clear boundary for the API's data
// access; the settlement and relay privileges are deliberately absent.
type ApiStore interface {
	WalletStore
	LedgerStore
	DisbursementStore
}
