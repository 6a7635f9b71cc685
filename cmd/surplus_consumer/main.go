package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	ledgerevents "github.com/openfund/ledger/pkg/events"
	"github.com/openfund/ledger/pkg/resolver"
	"github.com/openfund/ledger/pkg/settlement"
	dydbstore "github.com/openfund/ledger/pkg/storage/dynamodb"
)

const (
	identityTimeout    = 3 * time.Second
	identityMaxRetries = 2
	receiverCacheTTL   = 15 * time.Minute
)

var coordinator *settlement.Coordinator
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
	store := dydbstore.New(dbClient, dydbstore.Tables{
		Wallets:      os.Getenv("DYNAMODB_WALLETS_TABLE_NAME"),
		Transactions: os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME"),
		Campaigns:    os.Getenv("DYNAMODB_CAMPAIGNS_TABLE_NAME"),
		Outbox:       os.Getenv("DYNAMODB_OUTBOX_TABLE_NAME"),
		Requests:     os.Getenv("DYNAMODB_REQUESTS_TABLE_NAME"),
		Inflows:      os.Getenv("DYNAMODB_INFLOWS_TABLE_NAME"),
	})

	identityURL := os.Getenv("IDENTITY_SERVICE_URL")
	if identityURL == "" {
		log.Fatal("IDENTITY_SERVICE_URL environment variable not set")
	}

	identityClient := resolver.NewClient(identityURL, identityTimeout, identityMaxRetries, logger)

	// The identity cache is optional; without it every signal pays the
	// remote lookup.
	var receiverResolver settlement.ReceiverResolver = identityClient
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
		receiverResolver = resolver.NewCachedResolver(identityClient, redisClient, receiverCacheTTL, logger)
	}

	coordinator = settlement.NewCoordinator(store, receiverResolver, logger)
}

// HandleRequest processes surplus signals from SQS. Signals are delivered at
// least once; the coordinator treats stale and duplicate signals as no-ops,
// so a returned error always means an infrastructure failure worth a retry.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		var signal ledgerevents.SurplusDetected
		if err := json.Unmarshal([]byte(message.Body), &signal); err != nil {
			// A malformed signal will never parse on redelivery either.
			logger.Error("dropping malformed surplus signal",
				"message_id", message.MessageId, "error", err)
			continue
		}

		if err := coordinator.HandleSurplusDetected(ctx, signal); err != nil {
			logger.Error("failed to handle surplus signal",
				"campaign_id", signal.CampaignId, "error", err)
			return err
		}
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
