package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/shop-reorder-ledger/pkg/assets"
	"github.com/chris/shop-reorder-ledger/pkg/auth"
	"github.com/chris/shop-reorder-ledger/pkg/events"
	"github.com/chris/shop-reorder-ledger/pkg/handlers/admin"
	"github.com/chris/shop-reorder-ledger/pkg/handlers/deliveries"
	"github.com/chris/shop-reorder-ledger/pkg/handlers/purchases"
	appmiddleware "github.com/chris/shop-reorder-ledger/pkg/middleware"
	"github.com/chris/shop-reorder-ledger/pkg/models"
	"github.com/chris/shop-reorder-ledger/pkg/shop"
	"github.com/chris/shop-reorder-ledger/pkg/signal"
	"github.com/chris/shop-reorder-ledger/pkg/storage"
	dydbstore "github.com/chris/shop-reorder-ledger/pkg/storage/dynamodb"
	memstore "github.com/chris/shop-reorder-ledger/pkg/storage/memory"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := shop.Config{
		ShopID:           envOr("SHOP_ID", "shop-1"),
		Distributor:      mustEnv("SHOP_DISTRIBUTOR"),
		RetailPrice:      mustEnvInt64("SHOP_RETAIL_PRICE"),
		WholesalePrice:   mustEnvInt64("SHOP_WHOLESALE_PRICE"),
		ReorderThreshold: mustEnvInt64("SHOP_REORDER_THRESHOLD"),
		ReorderQuantity:  mustEnvInt64("SHOP_REORDER_QUANTITY"),
		InitialInventory: mustEnvInt64("SHOP_INITIAL_INVENTORY"),
		Policy:           models.ReceivePolicy(envOr("SHOP_RECEIVE_POLICY", string(models.PolicyStrict))),
	}

	admins := strings.Split(mustEnv("SHOP_ADMINS"), ",")
	authorizer := auth.NewStaticAuthorizer(admins...)

	// The settlement assets are external collaborators. The in-memory pair
	// stands in for them here; a production deployment substitutes the real
	// settlement service behind the same interface.
	pair := assets.Pair{
		Payment: assets.NewMemoryAsset(cfg.ShopID, map[string]int64{
			cfg.ShopID: envInt64Or("SHOP_PAYMENT_CUSTODY", 0),
		}),
		Reward: assets.NewMemoryAsset(cfg.ShopID, map[string]int64{
			cfg.ShopID: envInt64Or("SHOP_REWARD_CUSTODY", 0),
		}),
	}

	var snapshots storage.SnapshotStore
	var signaler signal.Signaler
	var publisher events.Publisher = events.NewSlogPublisher(logger)

	if envOr("SHOP_MODE", "memory") == "aws" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
		if err != nil {
			log.Fatalf("unable to load SDK config, %v", err)
		}

		shopTable := mustEnv("DYNAMODB_SHOP_TABLE_NAME")
		snapshots = dydbstore.New(dynamodb.NewFromConfig(awsCfg), shopTable)

		sqsClient := sqs.NewFromConfig(awsCfg)
		signaler = signal.NewSQSSignaler(sqsClient, mustEnv("SQS_REORDER_QUEUE_URL"))
		if eventsQueueURL := os.Getenv("SQS_EVENTS_QUEUE_URL"); eventsQueueURL != "" {
			publisher = events.NewSQSPublisher(sqsClient, eventsQueueURL)
		}
	} else {
		snapshots = memstore.New()
	}

	ledger, err := shop.New(context.Background(), cfg, shop.Deps{
		Assets:     pair,
		Authorizer: authorizer,
		Signaler:   signaler,
		Publisher:  publisher,
		Snapshots:  snapshots,
		Logger:     logger,
	})
	if err != nil {
		log.Fatalf("Failed to build shop ledger: %v", err)
	}

	purchasesHandler := purchases.NewPurchasesHandler(ledger)
	deliveriesHandler := deliveries.NewDeliveriesHandler(ledger)
	adminHandler := admin.NewAdminHandler(ledger)

	// Create a new Chi router
	router := chi.NewRouter()
	router.Use(appmiddleware.NewStructuredLogger(logger))

	router.Post("/purchase", purchasesHandler.Purchase)
	router.Get("/shop", purchasesHandler.GetShopStatus)
	router.Post("/deliveries", deliveriesHandler.ReceiveDelivery)
	router.Put("/admin/prices", adminHandler.UpdatePrices)
	router.Post("/admin/withdraw", adminHandler.Withdraw)
	router.Get("/admin/ratings", adminHandler.ListRatings)

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	// Start the server
	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("%s environment variable not set", key)
	}
	return v
}

func mustEnvInt64(key string) int64 {
	n, err := strconv.ParseInt(mustEnv(key), 10, 64)
	if err != nil {
		log.Fatalf("%s must be an integer: %v", key, err)
	}
	return n
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64Or(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("%s must be an integer: %v", key, err)
	}
	return n
}
