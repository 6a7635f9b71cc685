package ledger_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/openfund/ledger/pkg/api"
	"github.com/openfund/ledger/pkg/handlers/ledger"
	"github.com/openfund/ledger/pkg/models"
	"github.com/openfund/ledger/pkg/storage"
	"github.com/openfund/ledger/pkg/storage/mocks"
)

func strPtr(s string) *string { return &s }

func TestCredit(t *testing.T) {
	expectedTx := &models.WalletTransaction{Id: "tx-1", WalletId: "w-1", IdemKey: "ref#pay-1", Amount: 100, Kind: models.TxReceived}

	t.Run("Success With Reference Key", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("Credit", mock.Anything, mock.MatchedBy(func(p storage.CreditParams) bool {
			return p.Key.String() == "ref#pay-1" && p.Amount == 100
		})).Return(expectedTx, nil)

		h := ledger.NewLedgerHandler(mockStorage)

		body, _ := json.Marshal(api.CreditRequest{
			OwnerId:     "owner-1",
			PurseKind:   "CAMPAIGN",
			Amount:      100,
			Kind:        "RECEIVED",
			ReferenceId: strPtr("pay-1"),
		})
		req := httptest.NewRequest(http.MethodPost, "/v1/ledger/credits", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.Credit(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Success With Gateway Key", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("Credit", mock.Anything, mock.MatchedBy(func(p storage.CreditParams) bool {
			return p.Key.String() == "gw#stripe#pi_123"
		})).Return(expectedTx, nil)

		h := ledger.NewLedgerHandler(mockStorage)

		body, _ := json.Marshal(api.CreditRequest{
			OwnerId:              "owner-1",
			PurseKind:            "OPERATING",
			Amount:               100,
			Kind:                 "RECEIVED",
			Gateway:              strPtr("stripe"),
			GatewayTransactionId: strPtr("pi_123"),
		})
		req := httptest.NewRequest(http.MethodPost, "/v1/ledger/credits", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.Credit(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Missing Idempotency Key", func(t *testing.T) {
		mockStorage := new(mocks.Storage)

		h := ledger.NewLedgerHandler(mockStorage)

		body, _ := json.Marshal(api.CreditRequest{OwnerId: "owner-1", PurseKind: "CAMPAIGN", Amount: 100, Kind: "RECEIVED"})
		req := httptest.NewRequest(http.MethodPost, "/v1/ledger/credits", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.Credit(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything)
	})

	t.Run("Both Key Shapes Rejected", func(t *testing.T) {
		mockStorage := new(mocks.Storage)

		h := ledger.NewLedgerHandler(mockStorage)

		body, _ := json.Marshal(api.CreditRequest{
			OwnerId:              "owner-1",
			PurseKind:            "CAMPAIGN",
			Amount:               100,
			Kind:                 "RECEIVED",
			ReferenceId:          strPtr("pay-1"),
			Gateway:              strPtr("stripe"),
			GatewayTransactionId: strPtr("pi_123"),
		})
		req := httptest.NewRequest(http.MethodPost, "/v1/ledger/credits", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.Credit(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything)
	})

	t.Run("Wallet Not Found", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("Credit", mock.Anything, mock.Anything).Return(nil, storage.ErrWalletNotFound)

		h := ledger.NewLedgerHandler(mockStorage)

		body, _ := json.Marshal(api.CreditRequest{OwnerId: "owner-1", PurseKind: "CAMPAIGN", Amount: 100, Kind: "RECEIVED", ReferenceId: strPtr("pay-1")})
		req := httptest.NewRequest(http.MethodPost, "/v1/ledger/credits", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.Credit(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}

func TestDebit(t *testing.T) {
	expectedTx := &models.WalletTransaction{Id: "tx-1", WalletId: "w-1", Amount: -50, Kind: models.TxWithdrawal}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("Debit", mock.Anything, mock.Anything).Return(expectedTx, nil)

		h := ledger.NewLedgerHandler(mockStorage)

		body, _ := json.Marshal(api.DebitRequest{OwnerId: "owner-1", PurseKind: "OPERATING", Amount: 50, Kind: "WITHDRAWAL"})
		req := httptest.NewRequest(http.MethodPost, "/v1/ledger/debits", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.Debit(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("Debit", mock.Anything, mock.Anything).Return(nil, storage.ErrInsufficientFunds)

		h := ledger.NewLedgerHandler(mockStorage)

		body, _ := json.Marshal(api.DebitRequest{OwnerId: "owner-1", PurseKind: "OPERATING", Amount: 50, Kind: "WITHDRAWAL"})
		req := httptest.NewRequest(http.MethodPost, "/v1/ledger/debits", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.Debit(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Non-Positive Amount", func(t *testing.T) {
		mockStorage := new(mocks.Storage)

		h := ledger.NewLedgerHandler(mockStorage)

		body, _ := json.Marshal(api.DebitRequest{OwnerId: "owner-1", PurseKind: "OPERATING", Amount: -1, Kind: "WITHDRAWAL"})
		req := httptest.NewRequest(http.MethodPost, "/v1/ledger/debits", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.Debit(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything)
	})
}

func TestListTransactions(t *testing.T) {
	txs := []models.WalletTransaction{
		{Id: "tx-2", WalletId: "w-1", Amount: 200},
		{Id: "tx-1", WalletId: "w-1", Amount: 100},
	}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ListTransactions", mock.Anything, "w-1", int32(25), "").Return(txs, "next-token", nil)

		h := ledger.NewLedgerHandler(mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/v1/ledger/w-1/transactions", nil)
		rr := httptest.NewRecorder()

		h.ListTransactions(rr, req, "w-1")

		assert.Equal(t, http.StatusOK, rr.Code)

		var page api.TransactionPage
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
		assert.Len(t, page.Transactions, 2)
		assert.Equal(t, "next-token", *page.NextCursor)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Custom Limit And Cursor", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("ListTransactions", mock.Anything, "w-1", int32(5), "abc").Return([]models.WalletTransaction{}, "", nil)

		h := ledger.NewLedgerHandler(mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/v1/ledger/w-1/transactions?limit=5&cursor=abc", nil)
		rr := httptest.NewRecorder()

		h.ListTransactions(rr, req, "w-1")

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Invalid Limit", func(t *testing.T) {
		mockStorage := new(mocks.Storage)

		h := ledger.NewLedgerHandler(mockStorage)

		req := httptest.NewRequest(http.MethodGet, "/v1/ledger/w-1/transactions?limit=bogus", nil)
		rr := httptest.NewRecorder()

		h.ListTransactions(rr, req, "w-1")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "ListTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
