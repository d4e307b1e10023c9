package token

import (
	"context"
	"errors"
	"fmt"
)

// Invoker performs a synchronous JSON invocation of a named function.
type Invoker interface {
	InvokeJSON(ctx context.Context, functionName string, payload interface{}, target interface{}) error
}

// GetterResponse is the payload the token-getter function returns.
type GetterResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LambdaSource obtains bearer tokens by invoking the token-getter function,
// which coordinates the lifecycle manager in a separate process.
type LambdaSource struct {
	invoker      Invoker
	functionName string
	caller       string
}

// NewLambdaSource creates a token source. The caller tag identifies the
// invoking component in the getter's logs.
func NewLambdaSource(invoker Invoker, functionName, caller string) *LambdaSource {
	return &LambdaSource{invoker: invoker, functionName: functionName, caller: caller}
}

// BearerToken resolves a validated access token.
func (s *LambdaSource) BearerToken(ctx context.Context) (string, error) {
	payload := map[string]string{"from": s.caller}

	var resp GetterResponse
	if err := s.invoker.InvokeJSON(ctx, s.functionName, payload, &resp); err != nil {
		return "", fmt.Errorf("token getter invocation failed: %w", err)
	}
	if resp.AccessToken == "" {
		return "", errors.New("access token not found in function response")
	}
	return resp.AccessToken, nil
}
