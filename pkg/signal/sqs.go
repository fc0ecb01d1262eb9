package signal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/shop-reorder-ledger/pkg/api"
)

// SQSSignaler implements the Signaler interface using AWS SQS.
type SQSSignaler struct {
	Client   *sqs.Client
	QueueURL string
}

// NewSQSSignaler creates a new SQSSignaler.
func NewSQSSignaler(client *sqs.Client, queueURL string) *SQSSignaler {
	return &SQSSignaler{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ Signaler = (*SQSSignaler)(nil)

// SignalReorder sends the reorder signal to an SQS queue for the distributor
// side to pick up.
func (s *SQSSignaler) SignalReorder(ctx context.Context, sig *api.ReorderSignal) error {
	// Marshal the signal to JSON.
	body, err := json.Marshal(sig)
	if err != nil {
		return fmt.Errorf("failed to marshal reorder signal for SQS: %w", err)
	}

	// Send the message to SQS.
	_, err = s.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.QueueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("failed to send reorder signal to SQS: %w", err)
	}

	return nil
}
