package token_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"xero-etl/internal/mocks"
	"xero-etl/internal/token"
)

func TestManager_ValidToken(t *testing.T) {
	stored := &token.TokenSet{AccessToken: "stored-access", RefreshToken: "stored-refresh"}
	refreshed := &token.TokenSet{AccessToken: "new-access", RefreshToken: "new-refresh"}

	tests := []struct {
		name        string
		setupMocks  func(store *mocks.MockTokenStore, api *mocks.MockUpstreamAPI)
		want        *token.TokenSet
		wantErr     bool
		errorString string
	}{
		{
			name: "stored token is still valid, no refresh",
			setupMocks: func(store *mocks.MockTokenStore, api *mocks.MockUpstreamAPI) {
				store.EXPECT().Load(gomock.Any()).Return(stored, int64(3), nil)
				api.EXPECT().CheckConnections(gomock.Any(), "stored-access").Return(nil)
			},
			want: stored,
		},
		{
			name: "stale token is refreshed, persisted and re-validated",
			setupMocks: func(store *mocks.MockTokenStore, api *mocks.MockUpstreamAPI) {
				store.EXPECT().Load(gomock.Any()).Return(stored, int64(3), nil)
				api.EXPECT().CheckConnections(gomock.Any(), "stored-access").Return(errors.New("401 unauthorized"))
				api.EXPECT().RefreshToken(gomock.Any(), "stored-refresh").Return(refreshed, nil)
				store.EXPECT().Save(gomock.Any(), refreshed, int64(3)).Return(nil)
				api.EXPECT().CheckConnections(gomock.Any(), "new-access").Return(nil)
			},
			want: refreshed,
		},
		{
			name: "load failure",
			setupMocks: func(store *mocks.MockTokenStore, api *mocks.MockUpstreamAPI) {
				store.EXPECT().Load(gomock.Any()).Return(nil, int64(0), errors.New("no row"))
			},
			wantErr:     true,
			errorString: "no token available",
		},
		{
			name: "refresh grant failure is fatal",
			setupMocks: func(store *mocks.MockTokenStore, api *mocks.MockUpstreamAPI) {
				store.EXPECT().Load(gomock.Any()).Return(stored, int64(3), nil)
				api.EXPECT().CheckConnections(gomock.Any(), "stored-access").Return(errors.New("401 unauthorized"))
				api.EXPECT().RefreshToken(gomock.Any(), "stored-refresh").Return(nil, errors.New("invalid_grant"))
			},
			wantErr:     true,
			errorString: "failed to refresh token set",
		},
		{
			name: "save failure is tolerated, refreshed token still returned",
			setupMocks: func(store *mocks.MockTokenStore, api *mocks.MockUpstreamAPI) {
				store.EXPECT().Load(gomock.Any()).Return(stored, int64(3), nil)
				api.EXPECT().CheckConnections(gomock.Any(), "stored-access").Return(errors.New("401 unauthorized"))
				api.EXPECT().RefreshToken(gomock.Any(), "stored-refresh").Return(refreshed, nil)
				store.EXPECT().Save(gomock.Any(), refreshed, int64(3)).Return(token.ErrVersionConflict)
				api.EXPECT().CheckConnections(gomock.Any(), "new-access").Return(nil)
			},
			want: refreshed,
		},
		{
			name: "refreshed token failing validation is fatal",
			setupMocks: func(store *mocks.MockTokenStore, api *mocks.MockUpstreamAPI) {
				store.EXPECT().Load(gomock.Any()).Return(stored, int64(3), nil)
				api.EXPECT().CheckConnections(gomock.Any(), "stored-access").Return(errors.New("401 unauthorized"))
				api.EXPECT().RefreshToken(gomock.Any(), "stored-refresh").Return(refreshed, nil)
				store.EXPECT().Save(gomock.Any(), refreshed, int64(3)).Return(nil)
				api.EXPECT().CheckConnections(gomock.Any(), "new-access").Return(errors.New("still unauthorized"))
			},
			wantErr:     true,
			errorString: "refreshed token failed validation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := mocks.NewMockTokenStore(ctrl)
			api := mocks.NewMockUpstreamAPI(ctrl)
			tt.setupMocks(store, api)

			manager := token.NewManager(store, api, zap.NewNop())
			got, err := manager.ValidToken(context.Background())

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
