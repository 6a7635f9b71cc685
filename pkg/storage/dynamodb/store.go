package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/openfund/ledger/pkg/storage"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the Store.
// Declared here so tests can substitute a mock.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client                DynamoDBAPI
	WalletsTableName      string
	TransactionsTableName string
	CampaignsTableName    string
	OutboxTableName       string
	RequestsTableName     string
	InflowsTableName      string
}

// Tables names the DynamoDB tables backing the Store.
type Tables struct {
	Wallets      string
	Transactions string
	Campaigns    string
	Outbox       string
	Requests     string
	Inflows      string
}

// New creates a new Store.
func New(client DynamoDBAPI, tables Tables) *Store {
	return &Store{
		Client:                client,
		WalletsTableName:      tables.Wallets,
		TransactionsTableName: tables.Transactions,
		CampaignsTableName:    tables.Campaigns,
		OutboxTableName:       tables.Outbox,
		RequestsTableName:     tables.Requests,
		InflowsTableName:      tables.Inflows,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)
