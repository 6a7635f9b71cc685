package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	ledgerevents "github.com/openfund/ledger/pkg/events"
	"github.com/openfund/ledger/pkg/models"
	"github.com/openfund/ledger/pkg/storage"
	dydbstore "github.com/openfund/ledger/pkg/storage/dynamodb"
)

var store storage.Storage
var logger *slog.Logger

func init() {
	// Load environment variables from .env file (useful for local testing).
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	store = dydbstore.New(dbClient, dydbstore.Tables{
		Wallets:      os.Getenv("DYNAMODB_WALLETS_TABLE_NAME"),
		Transactions: os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME"),
		Campaigns:    os.Getenv("DYNAMODB_CAMPAIGNS_TABLE_NAME"),
		Outbox:       os.Getenv("DYNAMODB_OUTBOX_TABLE_NAME"),
		Requests:     os.Getenv("DYNAMODB_REQUESTS_TABLE_NAME"),
		Inflows:      os.Getenv("DYNAMODB_INFLOWS_TABLE_NAME"),
	})
}

// HandleRequest credits settlement surpluses into receiver wallets. The queue
// is at-least-once and the relay may double-publish, so the credit is keyed
// on the settlement id; a redelivered message finds the existing transaction
// and writes nothing.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		var event models.OutboxEvent
		if err := json.Unmarshal([]byte(message.Body), &event); err != nil {
			logger.Error("dropping malformed outbox message",
				"message_id", message.MessageId, "error", err)
			continue
		}

		if event.EventType != ledgerevents.TypeSettlementCreated {
			logger.Info("ignoring event of unexpected type",
				"event_id", event.Id, "event_type", event.EventType)
			continue
		}

		var settled ledgerevents.SettlementCreated
		if err := json.Unmarshal(event.Payload, &settled); err != nil {
			logger.Error("dropping settlement event with malformed payload",
				"event_id", event.Id, "error", err)
			continue
		}

		tx, err := store.Credit(ctx, storage.CreditParams{
			OwnerId: settled.ReceiverId,
			Purse:   models.PurseCampaign,
			Amount:  settled.SurplusAmount,
			Kind:    models.TxReceived,
			Key:     models.ByReference{ReferenceId: settled.SettlementId},
		})
		if err != nil {
			logger.Error("failed to credit settlement surplus",
				"settlement_id", settled.SettlementId,
				"receiver_id", settled.ReceiverId, "error", err)
			return err
		}

		logger.Info("settlement surplus credited",
			"settlement_id", settled.SettlementId,
			"transaction_id", tx.Id,
			"receiver_id", settled.ReceiverId,
			"amount", settled.SurplusAmount)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
