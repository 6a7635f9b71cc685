package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/openfund/ledger/pkg/publisher"
	"github.com/openfund/ledger/pkg/relay"
	dydbstore "github.com/openfund/ledger/pkg/storage/dynamodb"
)

const (
	relayBatchSize   = 25
	relayMaxAttempts = 5
)

var outboxRelay *relay.Relay

func init() {
	// Load environment variables from .env file (useful for local testing).
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	store := dydbstore.New(dbClient, dydbstore.Tables{
		Wallets:      os.Getenv("DYNAMODB_WALLETS_TABLE_NAME"),
		Transactions: os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME"),
		Campaigns:    os.Getenv("DYNAMODB_CAMPAIGNS_TABLE_NAME"),
		Outbox:       os.Getenv("DYNAMODB_OUTBOX_TABLE_NAME"),
		Requests:     os.Getenv("DYNAMODB_REQUESTS_TABLE_NAME"),
		Inflows:      os.Getenv("DYNAMODB_INFLOWS_TABLE_NAME"),
	})

	queueURL := os.Getenv("SQS_SETTLEMENTS_QUEUE_URL")
	if queueURL == "" {
		log.Fatal("SQS_SETTLEMENTS_QUEUE_URL environment variable not set")
	}
	sqsClient := sqs.NewFromConfig(cfg)
	pub := publisher.NewSQSPublisher(sqsClient, queueURL)

	outboxRelay = relay.New(store, pub, relayBatchSize, relayMaxAttempts, logger)
}

// HandleRequest is triggered by an EventBridge Schedule. Each run drains one
// bounded batch of pending outbox events.
func HandleRequest(ctx context.Context) error {
	return outboxRelay.RelayPending(ctx)
}

func main() {
	lambda.Start(HandleRequest)
}
