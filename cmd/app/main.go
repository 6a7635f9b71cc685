package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/openfund/ledger/pkg/handlers/campaigns"
	"github.com/openfund/ledger/pkg/handlers/disbursements"
	"github.com/openfund/ledger/pkg/handlers/ledger"
	"github.com/openfund/ledger/pkg/handlers/wallets"
	"github.com/openfund/ledger/pkg/middleware"
	dydbstore "github.com/openfund/ledger/pkg/storage/dynamodb"
)

func requireEnv(name string) string {
	value := os.Getenv(name)
	if value == "" {
		log.Fatalf("%s environment variable not set", name)
	}
	return value
}

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	store := dydbstore.New(dbClient, dydbstore.Tables{
		Wallets:      requireEnv("DYNAMODB_WALLETS_TABLE_NAME"),
		Transactions: requireEnv("DYNAMODB_TRANSACTIONS_TABLE_NAME"),
		Campaigns:    requireEnv("DYNAMODB_CAMPAIGNS_TABLE_NAME"),
		Outbox:       requireEnv("DYNAMODB_OUTBOX_TABLE_NAME"),
		Requests:     requireEnv("DYNAMODB_REQUESTS_TABLE_NAME"),
		Inflows:      requireEnv("DYNAMODB_INFLOWS_TABLE_NAME"),
	})

	walletsHandler := wallets.NewWalletsHandler(store)
	ledgerHandler := ledger.NewLedgerHandler(store)
	campaignsHandler := campaigns.NewCampaignsHandler(store)
	disbursementsHandler := disbursements.NewDisbursementsHandler(store)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.RequestLogger(logger))

	router.Route("/v1", func(r chi.Router) {
		r.Post("/wallets", walletsHandler.CreateWallet)
		r.Get("/wallets/{ownerId}/{purseKind}", func(w http.ResponseWriter, req *http.Request) {
			walletsHandler.GetWallet(w, req, chi.URLParam(req, "ownerId"), chi.URLParam(req, "purseKind"))
		})
		r.Post("/ledger/credits", ledgerHandler.Credit)
		r.Post("/ledger/debits", ledgerHandler.Debit)
		r.Get("/ledger/{walletId}/transactions", func(w http.ResponseWriter, req *http.Request) {
			ledgerHandler.ListTransactions(w, req, chi.URLParam(req, "walletId"))
		})

		r.Post("/campaigns", campaignsHandler.CreateCampaign)
		r.Get("/campaigns/{campaignId}", func(w http.ResponseWriter, req *http.Request) {
			campaignsHandler.GetCampaign(w, req, chi.URLParam(req, "campaignId"))
		})

		r.Post("/spending-requests", disbursementsHandler.CreateSpendingRequest)
		r.Get("/spending-requests/{requestId}", func(w http.ResponseWriter, req *http.Request) {
			disbursementsHandler.GetSpendingRequest(w, req, chi.URLParam(req, "requestId"))
		})
		r.Post("/spending-requests/{requestId}/approve", func(w http.ResponseWriter, req *http.Request) {
			disbursementsHandler.ApproveSpendingRequest(w, req, chi.URLParam(req, "requestId"))
		})
		r.Post("/spending-requests/{requestId}/reject", func(w http.ResponseWriter, req *http.Request) {
			disbursementsHandler.RejectSpendingRequest(w, req, chi.URLParam(req, "requestId"))
		})

		r.Post("/disbursements", disbursementsHandler.CreateInflowTransaction)
		r.Get("/disbursements/{inflowId}", func(w http.ResponseWriter, req *http.Request) {
			disbursementsHandler.GetInflowTransaction(w, req, chi.URLParam(req, "inflowId"))
		})
		r.Post("/disbursements/{inflowId}/confirm", func(w http.ResponseWriter, req *http.Request) {
			disbursementsHandler.ConfirmInflowTransaction(w, req, chi.URLParam(req, "inflowId"))
		})
	})

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
