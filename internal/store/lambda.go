package store

import (
	"context"
	"fmt"
)

// Invoker performs a synchronous JSON invocation of a named function.
// Satisfied by the aws client's LambdaClient.
type Invoker interface {
	InvokeJSON(ctx context.Context, functionName string, payload interface{}, target interface{}) error
}

// LambdaExecutor runs queries by invoking the db-executor Lambda. The caller
// holds no connection pool; the executor function owns the database session
// lifecycle.
type LambdaExecutor struct {
	invoker      Invoker
	functionName string
}

// NewLambdaExecutor creates an executor that invokes the named function.
func NewLambdaExecutor(invoker Invoker, functionName string) *LambdaExecutor {
	return &LambdaExecutor{invoker: invoker, functionName: functionName}
}

// Execute invokes the db-executor with {query, values} and decodes the rows.
// Any invocation failure, non-200 status, or function error surfaces as a
// single wrapped cause.
func (e *LambdaExecutor) Execute(ctx context.Context, query string, values []interface{}) ([]map[string]interface{}, error) {
	req := QueryRequest{Query: query, Values: values}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var rows []map[string]interface{}
	if err := e.invoker.InvokeJSON(ctx, e.functionName, req, &rows); err != nil {
		return nil, fmt.Errorf("failed to perform operation in DB: %w", err)
	}
	return rows, nil
}
