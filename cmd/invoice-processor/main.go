package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	awsclient "xero-etl/internal/client/aws"
	"xero-etl/internal/client/xero"
	"xero-etl/internal/etl"
	"xero-etl/internal/helpers"
	"xero-etl/internal/logger"
	"xero-etl/internal/store"
	"xero-etl/internal/token"
	"xero-etl/internal/webhook"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Application holds all dependencies for the invoice processor Lambda handler
type Application struct {
	orchestrator *etl.Orchestrator
}

// HandleSQSEvent processes a batch of queued invoice references. Each message
// succeeds or fails on its own; failed messages are reported back so SQS
// redelivers only those.
func (app *Application) HandleSQSEvent(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	logger.Info("Invoice processor handling SQS event", zap.Int("messages", len(event.Records)))

	var failures []events.SQSBatchItemFailure
	for _, record := range event.Records {
		correlationID := uuid.NewString()
		msgLogger := logger.With(
			zap.String("correlation_id", correlationID),
			zap.String("message_id", record.MessageId))

		var message webhook.QueueMessage
		if err := json.Unmarshal([]byte(record.Body), &message); err != nil {
			// A body that never parses will never parse on redelivery either.
			msgLogger.Error("Dropping malformed queue message", zap.Error(err))
			continue
		}
		if message.TenantID == "" || message.InvoiceID == "" {
			msgLogger.Error("Dropping queue message with missing identifiers",
				zap.String("body", record.Body))
			continue
		}

		if err := app.orchestrator.Process(ctx, message.TenantID, message.InvoiceID); err != nil {
			msgLogger.Error("Failed to process invoice reference",
				zap.String("tenant_id", message.TenantID),
				zap.String("invoice_id", message.InvoiceID),
				zap.Error(err))
			failures = append(failures, events.SQSBatchItemFailure{
				ItemIdentifier: record.MessageId,
			})
			continue
		}

		msgLogger.Info("Processed invoice reference",
			zap.String("tenant_id", message.TenantID),
			zap.String("invoice_id", message.InvoiceID))
	}

	return events.SQSEventResponse{BatchItemFailures: failures}, nil
}

func main() {
	// Load .env file for local development
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v. Proceeding with environment variables/secrets.", err)
	}

	stage := os.Getenv("STAGE")
	if stage == "" {
		stage = helpers.StageLocal
		log.Printf("Warning: STAGE environment variable not set, defaulting to '%s'", stage)
	}
	if !helpers.IsValidStage(stage) {
		log.Fatalf("Invalid STAGE environment variable: '%s'. Must be one of: %s, %s, %s",
			stage, helpers.StageProd, helpers.StageDev, helpers.StageLocal)
	}

	logger.InitLogger(stage)
	logger.Info("Lambda Cold Start: Initializing invoice processor for stage", zap.String("stage", stage))
	defer func() {
		_ = logger.Sync()
	}()

	ctx := context.Background()

	getTokenFunction := os.Getenv("GET_TOKEN_LAMBDA")
	storeInvoiceFunction := os.Getenv("STORE_INVOICE_LAMBDA")
	apiURL := os.Getenv("API_URL")
	if getTokenFunction == "" || storeInvoiceFunction == "" || apiURL == "" {
		logger.Fatal("Missing required environment variables (GET_TOKEN_LAMBDA, STORE_INVOICE_LAMBDA, API_URL)")
	}

	lambdaClient, err := awsclient.NewLambdaClient(ctx)
	if err != nil {
		logger.Fatal("Failed to initialize AWS Lambda client", zap.Error(err))
	}

	tokens := token.NewLambdaSource(lambdaClient, getTokenFunction, "invoice-processor")
	executor := store.NewLambdaExecutor(lambdaClient, storeInvoiceFunction)
	xeroClient := xero.NewClient(xero.Config{AccountingBaseURL: apiURL}, nil, logger.Log)

	app := &Application{
		orchestrator: etl.NewOrchestrator(tokens, xeroClient, executor, logger.Log),
	}

	lambda.Start(app.HandleSQSEvent)
}
