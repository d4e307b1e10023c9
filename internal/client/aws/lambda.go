package aws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

// LambdaClient wraps the AWS Lambda service client for synchronous
// RequestResponse invocations with JSON payloads.
type LambdaClient struct {
	svc *lambda.Client
}

// NewLambdaClient creates a new Lambda client using the default AWS configuration chain.
func NewLambdaClient(ctx context.Context) (*LambdaClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return &LambdaClient{svc: lambda.NewFromConfig(cfg)}, nil
}

// NewLambdaClientFromConfig creates a Lambda client from an already resolved AWS configuration.
func NewLambdaClientFromConfig(cfg aws.Config) *LambdaClient {
	return &LambdaClient{svc: lambda.NewFromConfig(cfg)}
}

// InvokeJSON invokes the named function synchronously with a JSON-encoded payload
// and unmarshals the response payload into target (when target is non-nil).
// A non-200 invocation status or a function error both surface as errors.
func (c *LambdaClient) InvokeJSON(ctx context.Context, functionName string, payload interface{}, target interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal invocation payload: %w", err)
	}

	result, err := c.svc.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(functionName),
		InvocationType: types.InvocationTypeRequestResponse,
		LogType:        types.LogTypeTail,
		Payload:        body,
	})
	if err != nil {
		return fmt.Errorf("failed to invoke %s: %w", functionName, err)
	}

	if result.StatusCode != 200 {
		return fmt.Errorf("invocation of %s returned non-200 status %d", functionName, result.StatusCode)
	}
	if result.FunctionError != nil {
		return fmt.Errorf("function %s returned error %s: %s", functionName, *result.FunctionError, string(result.Payload))
	}

	if target != nil {
		if err := json.Unmarshal(result.Payload, target); err != nil {
			return fmt.Errorf("failed to unmarshal response from %s: %w", functionName, err)
		}
	}
	return nil
}
