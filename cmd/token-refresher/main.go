package main

import (
	"context"
	"log"
	"os"

	awsclient "xero-etl/internal/client/aws"
	"xero-etl/internal/client/xero"
	"xero-etl/internal/helpers"
	"xero-etl/internal/logger"
	"xero-etl/internal/store"
	"xero-etl/internal/token"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// RefreshRequest identifies the component asking for a token check.
type RefreshRequest struct {
	From string `json:"from"`
}

// RefreshResponse reports the access token that survived validation.
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// Application holds all dependencies for the token refresher Lambda handler
type Application struct {
	manager *token.Manager
}

// HandleRequest validates the stored token set against the upstream API and
// refreshes it in place when the probe fails.
func (app *Application) HandleRequest(ctx context.Context, req RefreshRequest) (RefreshResponse, error) {
	logger.Info("Token validation requested", zap.String("from", req.From))

	tokenSet, err := app.manager.ValidToken(ctx)
	if err != nil {
		logger.Error("Failed to resolve a valid token set", zap.Error(err))
		return RefreshResponse{}, err
	}

	return RefreshResponse{AccessToken: tokenSet.AccessToken}, nil
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
	logger.Info("Lambda Cold Start: Initializing token refresher for stage", zap.String("stage", stage))
	defer func() {
		_ = logger.Sync()
	}()

	ctx := context.Background()

	dbExecutorFunction := os.Getenv("STORE_INVOICE_LAMBDA")
	appUserID := os.Getenv("XERO_APP_USER_ID")
	tokenURL := os.Getenv("TOKEN_URL")
	apiURL := os.Getenv("API_URL")
	if dbExecutorFunction == "" || appUserID == "" || tokenURL == "" || apiURL == "" {
		logger.Fatal("Missing required environment variables (STORE_INVOICE_LAMBDA, XERO_APP_USER_ID, TOKEN_URL, API_URL)")
	}

	// --- Initialize AWS Secrets Manager Client ---
	secretsClient, err := awsclient.NewSecretsManagerClient(ctx)
	if err != nil {
		logger.Fatal("Failed to initialize AWS Secrets Manager client", zap.Error(err))
	}

	clientID, err := secretsClient.GetSecretString(ctx, "CLIENT_ID_ARN", "CLIENT_ID")
	if err != nil || clientID == "" {
		logger.Fatal("Failed to get OAuth client ID", zap.Error(err))
	}
	clientSecret, err := secretsClient.GetSecretString(ctx, "CLIENT_SECRET_ARN", "CLIENT_SECRET")
	if err != nil || clientSecret == "" {
		logger.Fatal("Failed to get OAuth client secret", zap.Error(err))
	}

	lambdaClient := awsclient.NewLambdaClientFromConfig(secretsClient.Config())
	executor := store.NewLambdaExecutor(lambdaClient, dbExecutorFunction)
	tokenStore := token.NewStore(executor, appUserID)

	xeroClient := xero.NewClient(xero.Config{
		APIBaseURL:   apiURL,
		TokenURL:     tokenURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	}, nil, logger.Log)

	app := &Application{
		manager: token.NewManager(tokenStore, xeroClient, logger.Log),
	}

	lambda.Start(app.HandleRequest)
}
