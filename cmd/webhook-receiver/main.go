package main

import (
	"context"
	"log"
	"os"

	awsclient "xero-etl/internal/client/aws"
	"xero-etl/internal/helpers"
	"xero-etl/internal/logger"
	"xero-etl/internal/webhook"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/davecgh/go-spew/spew"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Application holds all dependencies for the webhook receiver Lambda handler
type Application struct {
	ginLambda *ginadapter.GinLambda
}

// HandleAPIGatewayRequest proxies API Gateway requests into the gin router.
func (app *Application) HandleAPIGatewayRequest(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.Debug("Received Lambda request",
		zap.String("path", req.Path),
		zap.Any("request", spew.Sdump(req)),
	)

	return app.ginLambda.ProxyWithContext(ctx, req)
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

	// Initialize logger (AFTER stage validation)
	logger.InitLogger(stage)
	logger.Info("Lambda Cold Start: Initializing webhook receiver for stage", zap.String("stage", stage))
	defer func() {
		_ = logger.Sync()
	}()

	ctx := context.Background()

	// --- Initialize AWS Secrets Manager Client ---
	secretsClient, err := awsclient.NewSecretsManagerClient(ctx)
	if err != nil {
		logger.Fatal("Failed to initialize AWS Secrets Manager client", zap.Error(err))
	}

	// --- Webhook Signing Key ---
	webhookKey, err := secretsClient.GetSecretString(ctx, "XERO_WEBHOOK_KEY_ARN", "XERO_WEBHOOK_KEY")
	if err != nil || webhookKey == "" {
		logger.Fatal("Failed to get Xero webhook signing key", zap.Error(err))
	}

	// --- SQS Client ---
	sqsQueueURL := os.Getenv("SQS_QUEUE_URL")
	if sqsQueueURL == "" {
		logger.Fatal("SQS_QUEUE_URL environment variable is required")
	}
	sqsClient := sqs.NewFromConfig(secretsClient.Config())

	sender := webhook.NewSQSSender(sqsClient, sqsQueueURL)
	batcher := webhook.NewBatcher(sender, logger.Log)
	handler := webhook.NewHandler(webhookKey, batcher, logger.Log)

	// --- Initialize Gin Router ---
	if stage == helpers.StageProd {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.POST("/webhooks/xero", handler.HandleWebhook)

	app := &Application{
		ginLambda: ginadapter.New(router),
	}

	if stage == helpers.StageLocal {
		port := os.Getenv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Webhook receiver listening locally", zap.String("port", port))
		if err := router.Run(":" + port); err != nil {
			logger.Fatal("Server exited", zap.Error(err))
		}
	} else {
		// --- Start the Lambda Handler ---
		lambda.Start(app.HandleAPIGatewayRequest)
	}
}
