package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// NoOpPublisher is a publisher that does nothing. Useful in tests.
type NoOpPublisher struct{}

// Publish does nothing.
func (p *NoOpPublisher) Publish(ctx context.Context, event *Event) error {
	return nil
}

// SlogPublisher writes events to a structured logger. This is the local-mode
// sink so operators still see the full notification stream.
type SlogPublisher struct {
	Logger *slog.Logger
}

// NewSlogPublisher creates a publisher backed by the given logger.
func NewSlogPublisher(logger *slog.Logger) *SlogPublisher {
	return &SlogPublisher{Logger: logger}
}

// Make sure we conform to the interface
var _ Publisher = (*SlogPublisher)(nil)

// Publish logs the event at info level.
func (p *SlogPublisher) Publish(ctx context.Context, event *Event) error {
	attrs := make([]any, 0, len(event.Attributes)+2)
	attrs = append(attrs, slog.String("event_id", event.ID), slog.Time("at", event.At))
	for k, v := range event.Attributes {
		attrs = append(attrs, slog.String(k, v))
	}
	p.Logger.Info(string(event.Type), attrs...)
	return nil
}

// SQSPublisher ships events onto a monitoring queue.
type SQSPublisher struct {
	Client   *sqs.Client
	QueueURL string
}

// NewSQSPublisher creates a publisher for the given queue.
func NewSQSPublisher(client *sqs.Client, queueURL string) *SQSPublisher {
	return &SQSPublisher{Client: client, QueueURL: queueURL}
}

// Make sure we conform to the interface
var _ Publisher = (*SQSPublisher)(nil)

// Publish sends the event to the monitoring queue as JSON.
func (p *SQSPublisher) Publish(ctx context.Context, event *Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event for SQS: %w", err)
	}

	_, err = p.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.QueueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("failed to send event to SQS: %w", err)
	}

	return nil
}
