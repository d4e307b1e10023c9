package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"xero-etl/internal/store"
)

// ErrVersionConflict is returned by Save when another invocation replaced the
// token set after this one loaded it.
var ErrVersionConflict = errors.New("token set was modified by a concurrent refresh")

// TokenSet is the paired access/refresh credential used to authenticate
// against the Xero API. It is stored as a single jsonb column and always
// replaced wholesale, never merged.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Store reads and writes the single token-set row through the remote query
// executor boundary. Writes are guarded by a version column so concurrent
// refreshes cannot silently overwrite each other.
type Store struct {
	executor  store.QueryExecutor
	appUserID string
}

// NewStore creates a token store for the given application identity.
func NewStore(executor store.QueryExecutor, appUserID string) *Store {
	return &Store{executor: executor, appUserID: appUserID}
}

// Load fetches the token set and its version. A missing row is an error;
// a token must be seeded externally before the pipeline can run.
func (s *Store) Load(ctx context.Context) (*TokenSet, int64, error) {
	rows, err := s.executor.Execute(ctx,
		`SELECT token_set, version FROM xero_app_user WHERE xero_app_user_id = $1 LIMIT 1;`,
		[]interface{}{s.appUserID})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load token set: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no token set found for app user %s", s.appUserID)
	}

	tokenSet, err := decodeTokenSet(rows[0]["token_set"])
	if err != nil {
		return nil, 0, err
	}
	version, err := decodeVersion(rows[0]["version"])
	if err != nil {
		return nil, 0, err
	}
	return tokenSet, version, nil
}

// Save replaces the token set, bumping the version column. The update only
// applies when the row still carries the version observed at Load time;
// losing that race returns ErrVersionConflict.
func (s *Store) Save(ctx context.Context, tokenSet *TokenSet, version int64) error {
	payload, err := json.Marshal(tokenSet)
	if err != nil {
		return fmt.Errorf("failed to encode token set: %w", err)
	}

	rows, err := s.executor.Execute(ctx,
		`UPDATE xero_app_user SET token_set = $1, version = version + 1
		 WHERE xero_app_user_id = $2 AND version = $3 RETURNING version;`,
		[]interface{}{string(payload), s.appUserID, version})
	if err != nil {
		return fmt.Errorf("failed to save token set: %w", err)
	}
	if len(rows) == 0 {
		return ErrVersionConflict
	}
	return nil
}

// decodeTokenSet handles the two shapes the executor boundary can hand back:
// a jsonb column decoded into a nested object, or a raw JSON string.
func decodeTokenSet(value interface{}) (*TokenSet, error) {
	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	case map[string]interface{}:
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to re-encode token set column: %w", err)
		}
		raw = encoded
	default:
		return nil, fmt.Errorf("unexpected token_set column type %T", value)
	}

	var tokenSet TokenSet
	if err := json.Unmarshal(raw, &tokenSet); err != nil {
		return nil, fmt.Errorf("failed to decode token set: %w", err)
	}
	if tokenSet.AccessToken == "" || tokenSet.RefreshToken == "" {
		return nil, errors.New("token set is missing access or refresh token")
	}
	return &tokenSet, nil
}

func decodeVersion(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case float64:
		// JSON numbers arrive as float64 across the invocation boundary.
		return int64(v), nil
	default:
		return 0, fmt.Errorf("unexpected version column type %T", value)
	}
}
