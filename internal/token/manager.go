package token

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// TokenStore is the narrow persistence interface the lifecycle manager needs.
type TokenStore interface {
	Load(ctx context.Context) (*TokenSet, int64, error)
	Save(ctx context.Context, tokenSet *TokenSet, version int64) error
}

// UpstreamAPI is the slice of the Xero API the lifecycle manager touches:
// a lightweight authenticated probe and the OAuth refresh grant.
type UpstreamAPI interface {
	CheckConnections(ctx context.Context, accessToken string) error
	RefreshToken(ctx context.Context, refreshToken string) (*TokenSet, error)
}

// Manager resolves a valid token set on demand: load from the store, probe
// the upstream API, refresh and persist when the probe fails. It holds no
// state across invocations; every call loads fresh from the store.
type Manager struct {
	store  TokenStore
	api    UpstreamAPI
	logger *zap.Logger
}

// NewManager creates a token lifecycle manager.
func NewManager(store TokenStore, api UpstreamAPI, logger *zap.Logger) *Manager {
	return &Manager{store: store, api: api, logger: logger}
}

// ValidToken returns a token set whose access token has been validated
// against the upstream API, refreshing it at most once. A failed refresh
// grant is fatal; there is no retry loop here — redelivery is the caller's
// concern.
func (m *Manager) ValidToken(ctx context.Context) (*TokenSet, error) {
	tokenSet, version, err := m.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("no token available: %w", err)
	}

	if err := m.api.CheckConnections(ctx, tokenSet.AccessToken); err == nil {
		m.logger.Debug("Stored access token is valid")
		return tokenSet, nil
	} else {
		m.logger.Info("Stored access token failed validation, refreshing", zap.Error(err))
	}

	refreshed, err := m.api.RefreshToken(ctx, tokenSet.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token set: %w", err)
	}

	// The in-flight token is still usable when the store write fails; the
	// next cold invocation may then retry with a stale refresh token.
	if err := m.store.Save(ctx, refreshed, version); err != nil {
		m.logger.Error("Failed to persist refreshed token set", zap.Error(err))
	}

	if err := m.api.CheckConnections(ctx, refreshed.AccessToken); err != nil {
		return nil, fmt.Errorf("refreshed token failed validation: %w", err)
	}

	m.logger.Info("Token set refreshed and validated")
	return refreshed, nil
}
