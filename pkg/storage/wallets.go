package storage

import (
	"context"

	"github.com/openfund/ledger/pkg/models"
)

// WalletStore defines the interface for managing wallets.
type WalletStore interface {
	// CreateWallet creates a new wallet with a zero balance. It fails with
	// ErrWalletExists if the (owner, purse kind) pair already has one.
	CreateWallet(ctx context.Context, wallet *models.Wallet) (*models.Wallet, error)

	// GetWallet retrieves a wallet by its owner and purse kind.
	GetWallet(ctx context.Context, ownerID string, purse models.PurseKind) (*models.Wallet, error)
}
