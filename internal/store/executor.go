// Package store defines the remote query execution boundary: a parameterized
// statement plus positional values in, rows out. The orchestration side never
// opens a database connection itself — every read and write crosses this
// boundary, backed either by the db-executor Lambda or, inside that Lambda,
// by a pgx connection pool.
package store

import (
	"context"
	"errors"
)

// QueryRequest is the wire shape of one executor invocation.
type QueryRequest struct {
	Query  string        `json:"query"`
	Values []interface{} `json:"values"`
}

// ErrNoValues rejects requests that carry no query parameters. Every statement
// in this system is parameterized; a bare query is a caller bug.
var ErrNoValues = errors.New("no values provided for the query parameters")

// Validate rejects malformed requests before they reach the database.
func (r QueryRequest) Validate() error {
	if r.Query == "" {
		return errors.New("no query provided")
	}
	if len(r.Values) == 0 {
		return ErrNoValues
	}
	return nil
}

// QueryExecutor executes a parameterized statement and returns the result rows
// as column-name-to-value maps. Implementations must never interpolate values
// into the query text.
type QueryExecutor interface {
	Execute(ctx context.Context, query string, values []interface{}) ([]map[string]interface{}, error)
}
