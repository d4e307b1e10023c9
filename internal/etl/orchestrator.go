package etl

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"xero-etl/internal/client/xero"
	"xero-etl/internal/store"
)

// TokenSource resolves a valid bearer token for the upstream API. In the
// deployed topology this is an invocation of the token-getter function.
type TokenSource interface {
	BearerToken(ctx context.Context) (string, error)
}

// InvoiceFetcher fetches the canonical record from the upstream API.
type InvoiceFetcher interface {
	GetInvoice(ctx context.Context, tenantID, invoiceID, accessToken string) (*xero.Invoice, error)
}

// Orchestrator performs the idempotent upsert for one queued resource
// reference: token, fetch, classify, check-then-write. Failures are fatal for
// the single resource only; sibling messages are unaffected.
type Orchestrator struct {
	tokens   TokenSource
	api      InvoiceFetcher
	executor store.QueryExecutor
	logger   *zap.Logger
}

// NewOrchestrator creates an upsert orchestrator.
func NewOrchestrator(tokens TokenSource, api InvoiceFetcher, executor store.QueryExecutor, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{tokens: tokens, api: api, executor: executor, logger: logger}
}

// Process handles one {tenantId, invoiceId} reference end to end.
func (o *Orchestrator) Process(ctx context.Context, tenantID, invoiceID string) error {
	accessToken, err := o.tokens.BearerToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to obtain bearer token: %w", err)
	}

	invoice, err := o.api.GetInvoice(ctx, tenantID, invoiceID, accessToken)
	if err != nil {
		return fmt.Errorf("failed to fetch invoice from Xero: %w", err)
	}

	record := NewRecord(tenantID, invoice)
	o.logger.Info("Upserting record",
		zap.String("table", record.Table()),
		zap.String("natural_key", record.NaturalKey()),
		zap.String("tenant_id", tenantID))

	return o.upsert(ctx, record)
}

// upsert runs the check-then-write protocol. The two steps are not atomic
// across the executor boundary; concurrent orchestrations of the same
// resource can still race, which schema-level uniqueness must backstop.
func (o *Orchestrator) upsert(ctx context.Context, record Record) error {
	existsQuery, existsValues := record.existsQuery()
	rows, err := o.executor.Execute(ctx, existsQuery, existsValues)
	if err != nil {
		return fmt.Errorf("failed to perform operation in DB: %w", err)
	}

	var query string
	var values []interface{}
	if len(rows) != 0 {
		query, values = record.updateQuery()
	} else {
		query, values = record.insertQuery()
	}

	if _, err := o.executor.Execute(ctx, query, values); err != nil {
		return fmt.Errorf("failed to perform operation in DB: %w", err)
	}

	o.logger.Info("Record upserted",
		zap.String("table", record.Table()),
		zap.String("natural_key", record.NaturalKey()),
		zap.Bool("existed", len(rows) != 0))
	return nil
}
