package storage

import (
	"context"

	"github.com/openfund/ledger/pkg/models"
)

// CreditParams describes a single idempotent credit.
type CreditParams struct {
	OwnerId string
	Purse   models.PurseKind
	Amount  int64
	Kind    models.TransactionKind
	Key     models.IdempotencyKey
}

// DebitParams describes a single debit. Debits carry no caller-supplied
// idempotency reference in this subsystem but are still atomic with the
// balance change.
type DebitParams struct {
	OwnerId string
	Purse   models.PurseKind
	Amount  int64
	Kind    models.TransactionKind
}

// LedgerWriter is the only interface allowed to mutate balances. Credit is
// the idempotency boundary for replayed events: the layers above it are
// at-least-once and may call it any number of times per key.
type LedgerWriter interface {
	// Credit appends a credit transaction and increments the wallet balance in
	// one atomic unit. If a transaction already exists for the idempotency key
	// it is returned unchanged with no new side effect.
	Credit(ctx context.Context, params CreditParams) (*models.WalletTransaction, error)

	// Debit appends a debit transaction and decrements the wallet balance in
	// one atomic unit, failing with ErrInsufficientFunds if the balance would
	// go negative.
	Debit(ctx context.Context, params DebitParams) (*models.WalletTransaction, error)
}

// LedgerReader defines the pure-read side of the ledger.
type LedgerReader interface {
	// ListTransactions retrieves a page of a wallet's transactions, newest
	// first. The returned cursor is empty when the log is exhausted.
	ListTransactions(ctx context.Context, walletID string, limit int32, cursor string) ([]models.WalletTransaction, string, error)
}

// LedgerStore combines the writer and reader interfaces.
type LedgerStore interface {
	LedgerWriter
	LedgerReader
}
