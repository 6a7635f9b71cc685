package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/openfund/ledger/pkg/models"
)

// SQSAPI is the subset of the SQS client used by the publisher.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSPublisher implements the Publisher interface using AWS SQS.
type SQSPublisher struct {
	Client   SQSAPI
	QueueURL string
}

// NewSQSPublisher creates a new SQSPublisher.
func NewSQSPublisher(client SQSAPI, queueURL string) *SQSPublisher {
	return &SQSPublisher{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ Publisher = (*SQSPublisher)(nil)

// Publish sends the outbox event to an SQS queue for the downstream consumer.
func (p *SQSPublisher) Publish(ctx context.Context, event *models.OutboxEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal outbox event for SQS: %w", err)
	}

	_, err = p.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.QueueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}
