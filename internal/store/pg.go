package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PgxPool is the slice of pgxpool.Pool the executor uses.
type PgxPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PgExecutor executes statements directly on a pgx connection pool. It backs
// the db-executor Lambda, the only process in the system holding database
// connections.
type PgExecutor struct {
	pool PgxPool
}

// NewPgExecutor creates an executor over the given pool.
func NewPgExecutor(pool PgxPool) *PgExecutor {
	return &PgExecutor{pool: pool}
}

// Execute runs the parameterized statement and materializes all result rows.
// Statements without a result set (plain INSERT/UPDATE) yield an empty slice.
func (e *PgExecutor) Execute(ctx context.Context, query string, values []interface{}) ([]map[string]interface{}, error) {
	req := QueryRequest{Query: query, Values: values}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rows, err := e.pool.Query(ctx, query, values...)
	if err != nil {
		return nil, fmt.Errorf("query execution failed: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	results := make([]map[string]interface{}, 0)
	for rows.Next() {
		rowValues, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row values: %w", err)
		}
		row := make(map[string]interface{}, len(fields))
		for i, field := range fields {
			row[string(field.Name)] = rowValues[i]
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return results, nil
}
