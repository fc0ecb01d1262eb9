package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/shop-reorder-ledger/pkg/api"
	"github.com/joho/godotenv"
)

var webhookURL string
var httpClient *http.Client

func init() {
	// Load environment variables from .env file (useful for local testing).
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	webhookURL = os.Getenv("DISTRIBUTOR_WEBHOOK_URL")
	if webhookURL == "" {
		log.Fatal("DISTRIBUTOR_WEBHOOK_URL environment variable not set")
	}

	httpClient = &http.Client{Timeout: 10 * time.Second}
}

// HandleRequest processes SQS messages and forwards reorder signals to the
// distributor's webhook. Fulfillment itself happens on the distributor side;
// the shop only learns about it through a later receive-order call.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var sig api.ReorderSignal
		if err := json.Unmarshal([]byte(message.Body), &sig); err != nil {
			log.Printf("ERROR: failed to unmarshal reorder signal from SQS message %s: %v", message.MessageId, err)
			// Returning an error will cause SQS to retry the message, which is appropriate here.
			return err
		}

		log.Printf("Forwarding reorder %s for %d units to distributor %s", sig.OrderId, sig.Quantity, sig.Distributor)

		if err := forwardSignal(ctx, &sig); err != nil {
			log.Printf("ERROR: failed to forward reorder %s: %v", sig.OrderId, err)
			// In a production system, persistent failures would be sent to a DLQ.
			return err
		}

		log.Printf("Successfully forwarded reorder %s", sig.OrderId)
	}

	return nil
}

// forwardSignal posts the signal to the distributor's webhook as JSON.
func forwardSignal(ctx context.Context, sig *api.ReorderSignal) error {
	body, err := json.Marshal(sig)
	if err != nil {
		return fmt.Errorf("failed to marshal reorder signal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call distributor webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("distributor webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
