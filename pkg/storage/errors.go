package storage

import "errors"

// ErrWalletNotFound is returned when a credit or debit targets a wallet that
// was never provisioned. Wallets are created explicitly, never on first use.
var ErrWalletNotFound = errors.New("wallet not found")

// ErrWalletExists is returned when a wallet already exists for an
// (owner, purse kind) pair.
var ErrWalletExists = errors.New("wallet already exists")

// ErrInsufficientFunds is returned when a debit would take a wallet's balance
// below zero.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrCampaignNotFound is returned when a campaign does not exist.
var ErrCampaignNotFound = errors.New("campaign not found")

// ErrStatusConflict is returned when a conditional status transition matched
// zero rows because the record is no longer in the expected prior state.
// Callers that expect concurrent attempts treat it as a benign no-op.
var ErrStatusConflict = errors.New("status transition conflict")

// ErrRequestNotFound is returned when a spending request does not exist.
var ErrRequestNotFound = errors.New("spending request not found")

// ErrRequestNotApproved is returned when a disbursement is attempted against a
// request that is not in APPROVED status.
var ErrRequestNotApproved = errors.New("spending request not approved")

// ErrAmountMismatch is returned when a disbursement amount does not equal the
// request's recorded total cost.
var ErrAmountMismatch = errors.New("amount does not match request total cost")

// ErrDisbursementExists is returned when an inflow transaction already exists
// for the referenced spending request.
var ErrDisbursementExists = errors.New("disbursement already exists for request")

// ErrDisbursementNotFound is returned when an inflow transaction does not exist.
var ErrDisbursementNotFound = errors.New("disbursement not found")

// ErrNotReceiver is returned when a confirmation comes from a principal other
// than the disbursement's designated payee.
var ErrNotReceiver = errors.New("principal is not the designated receiver")

// ErrAlreadyReported is returned on a second confirmation attempt for the same
// inflow transaction, regardless of outcome.
var ErrAlreadyReported = errors.New("disbursement already reported")
