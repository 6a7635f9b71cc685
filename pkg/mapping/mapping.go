// Package mapping converts between API types and domain models.
package mapping

import (
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/openfund/ledger/pkg/api"
	"github.com/openfund/ledger/pkg/models"
)

func toUUID(s string) openapi_types.UUID {
	u, _ := uuid.Parse(s)
	return u
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ToApiWallet converts a domain Wallet model to an API Wallet model.
func ToApiWallet(wallet *models.Wallet) *api.Wallet {
	return &api.Wallet{
		Id:        toUUID(wallet.Id),
		OwnerId:   wallet.OwnerId,
		PurseKind: string(wallet.PurseKind),
		Balance:   wallet.Balance,
		CreatedAt: wallet.CreatedAt,
	}
}

// ToDomainNewWallet converts an API NewWallet model to a domain Wallet model.
func ToDomainNewWallet(newWallet *api.NewWallet) *models.Wallet {
	return &models.Wallet{
		OwnerId:   newWallet.OwnerId,
		PurseKind: models.PurseKind(newWallet.PurseKind),
	}
}

// ToApiTransaction converts a ledger row to its API representation.
func ToApiTransaction(tx *models.WalletTransaction) *api.WalletTransaction {
	return &api.WalletTransaction{
		Id:          toUUID(tx.Id),
		WalletId:    tx.WalletId,
		Amount:      tx.Amount,
		Kind:        string(tx.Kind),
		ReferenceId: optional(tx.ReferenceId),
		Gateway:     optional(tx.Gateway),
		GatewayTxId: optional(tx.GatewayTxId),
		CreatedAt:   tx.CreatedAt,
	}
}

// ToApiTransactionPage converts one page of ledger rows plus its cursor.
func ToApiTransactionPage(txs []models.WalletTransaction, cursor string) *api.TransactionPage {
	page := &api.TransactionPage{
		Transactions: make([]api.WalletTransaction, 0, len(txs)),
		NextCursor:   optional(cursor),
	}
	for i := range txs {
		page.Transactions = append(page.Transactions, *ToApiTransaction(&txs[i]))
	}
	return page
}

// ToApiSpendingRequest converts a domain SpendingRequest to its API shape.
func ToApiSpendingRequest(req *models.SpendingRequest) *api.SpendingRequest {
	return &api.SpendingRequest{
		Id:          toUUID(req.Id),
		Kind:        string(req.Kind),
		RequesterId: req.RequesterId,
		TotalCost:   req.TotalCost,
		Status:      string(req.Status),
		CreatedAt:   req.CreatedAt,
		UpdatedAt:   req.UpdatedAt,
	}
}

// ToDomainNewSpendingRequest converts an API NewSpendingRequest to a domain model.
func ToDomainNewSpendingRequest(newReq *api.NewSpendingRequest) *models.SpendingRequest {
	return &models.SpendingRequest{
		Kind:        models.RequestKind(newReq.Kind),
		RequesterId: newReq.RequesterId,
		TotalCost:   newReq.TotalCost,
	}
}

// ToApiInflowTransaction converts a domain disbursement to its API shape.
func ToApiInflowTransaction(inflow *models.InflowTransaction) *api.InflowTransaction {
	return &api.InflowTransaction{
		Id:          toUUID(inflow.Id),
		RequestId:   inflow.RequestId,
		RequestKind: string(inflow.RequestKind),
		PayeeId:     inflow.PayeeId,
		AdminId:     inflow.AdminId,
		Amount:      inflow.Amount,
		ProofUrl:    inflow.ProofUrl,
		Status:      string(inflow.Status),
		IsReported:  inflow.IsReported,
		ReportedAt:  inflow.ReportedAt,
		CreatedAt:   inflow.CreatedAt,
	}
}

// ToApiCampaign converts a domain Campaign to its API shape.
func ToApiCampaign(campaign *models.Campaign) *api.Campaign {
	return &api.Campaign{
		Id:              campaign.Id,
		OwnerExternalId: campaign.OwnerExternalId,
		TargetAmount:    campaign.TargetAmount,
		ReceivedAmount:  campaign.ReceivedAmount,
		Status:          string(campaign.Status),
		CreatedAt:       campaign.CreatedAt,
	}
}

// ToDomainNewCampaign converts an API NewCampaign to a domain model.
func ToDomainNewCampaign(newCampaign *api.NewCampaign) *models.Campaign {
	return &models.Campaign{
		Id:              newCampaign.Id,
		OwnerExternalId: newCampaign.OwnerExternalId,
		TargetAmount:    newCampaign.TargetAmount,
		ReceivedAmount:  newCampaign.ReceivedAmount,
	}
}
