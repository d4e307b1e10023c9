package main

import (
	"context"
	"log"
	"os"

	awsclient "xero-etl/internal/client/aws"
	"xero-etl/internal/helpers"
	"xero-etl/internal/logger"
	"xero-etl/internal/store"
	"xero-etl/internal/token"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// GetterRequest identifies the component asking for a token.
type GetterRequest struct {
	From string `json:"from"`
}

// Application holds all dependencies for the token getter Lambda handler
type Application struct {
	invoker         *awsclient.LambdaClient
	tokenStore      *token.Store
	refreshFunction string
}

// HandleRequest delegates the refresh-if-needed decision to the token
// refresher, then reads back whatever token set it settled on. The two
// functions never hold token state in memory between invocations; the
// database row is the single source of truth.
func (app *Application) HandleRequest(ctx context.Context, req GetterRequest) (token.GetterResponse, error) {
	logger.Info("Token requested", zap.String("from", req.From))

	if err := app.invoker.InvokeJSON(ctx, app.refreshFunction, req, nil); err != nil {
		logger.Error("Token refresher invocation failed", zap.Error(err))
		return token.GetterResponse{}, err
	}

	tokenSet, _, err := app.tokenStore.Load(ctx)
	if err != nil {
		logger.Error("Failed to load token set after refresh", zap.Error(err))
		return token.GetterResponse{}, err
	}

	return token.GetterResponse{
		AccessToken:  tokenSet.AccessToken,
		RefreshToken: tokenSet.RefreshToken,
	}, nil
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
	logger.Info("Lambda Cold Start: Initializing token getter for stage", zap.String("stage", stage))
	defer func() {
		_ = logger.Sync()
	}()

	ctx := context.Background()

	refreshFunction := os.Getenv("SET_TOKEN_LAMBDA")
	dbExecutorFunction := os.Getenv("STORE_INVOICE_LAMBDA")
	appUserID := os.Getenv("XERO_APP_USER_ID")
	if refreshFunction == "" || dbExecutorFunction == "" || appUserID == "" {
		logger.Fatal("Missing required environment variables (SET_TOKEN_LAMBDA, STORE_INVOICE_LAMBDA, XERO_APP_USER_ID)")
	}

	lambdaClient, err := awsclient.NewLambdaClient(ctx)
	if err != nil {
		logger.Fatal("Failed to initialize AWS Lambda client", zap.Error(err))
	}

	executor := store.NewLambdaExecutor(lambdaClient, dbExecutorFunction)

	app := &Application{
		invoker:         lambdaClient,
		tokenStore:      token.NewStore(executor, appUserID),
		refreshFunction: refreshFunction,
	}

	lambda.Start(app.HandleRequest)
}
