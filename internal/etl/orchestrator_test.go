package etl_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"xero-etl/internal/client/xero"
	"xero-etl/internal/etl"
	"xero-etl/internal/mocks"
)

func receivableInvoice() *xero.Invoice {
	return &xero.Invoice{
		Type:          xero.TypeAccountsReceivable,
		InvoiceID:     "inv-123",
		InvoiceNumber: "INV-0042",
		Date:          xero.Date{Time: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		Status:        "AUTHORISED",
		Contact:       xero.Contact{Name: "Acme Ltd", EmailAddress: "billing@acme.test"},
		AmountDue:     120.50,
		SubTotal:      100,
		TotalTax:      20.50,
		Total:         120.50,
	}
}

func TestOrchestrator_Process(t *testing.T) {
	tests := []struct {
		name        string
		setupMocks  func(tokens *mocks.MockTokenSource, api *mocks.MockInvoiceFetcher, executor *mocks.MockQueryExecutor)
		wantErr     bool
		errorString string
	}{
		{
			name: "new invoice takes the insert path",
			setupMocks: func(tokens *mocks.MockTokenSource, api *mocks.MockInvoiceFetcher, executor *mocks.MockQueryExecutor) {
				tokens.EXPECT().BearerToken(gomock.Any()).Return("access-token", nil)
				api.EXPECT().GetInvoice(gomock.Any(), "tenant-1", "inv-123", "access-token").
					Return(receivableInvoice(), nil)

				exists := executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, query string, values []interface{}) ([]map[string]interface{}, error) {
						assert.Contains(t, query, "SELECT invoice_number FROM etl_xero_invoices")
						assert.Equal(t, []interface{}{"inv-123"}, values)
						return []map[string]interface{}{}, nil
					})
				executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).After(exists).
					DoAndReturn(func(_ context.Context, query string, values []interface{}) ([]map[string]interface{}, error) {
						assert.True(t, strings.HasPrefix(strings.TrimSpace(query), "INSERT INTO etl_xero_invoices"))
						assert.Len(t, values, 14)
						return []map[string]interface{}{}, nil
					})
			},
		},
		{
			name: "existing invoice takes the update path",
			setupMocks: func(tokens *mocks.MockTokenSource, api *mocks.MockInvoiceFetcher, executor *mocks.MockQueryExecutor) {
				tokens.EXPECT().BearerToken(gomock.Any()).Return("access-token", nil)
				api.EXPECT().GetInvoice(gomock.Any(), "tenant-1", "inv-123", "access-token").
					Return(receivableInvoice(), nil)

				exists := executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]map[string]interface{}{{"invoice_number": "INV-0042"}}, nil)
				executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).After(exists).
					DoAndReturn(func(_ context.Context, query string, values []interface{}) ([]map[string]interface{}, error) {
						assert.True(t, strings.HasPrefix(strings.TrimSpace(query), "UPDATE etl_xero_invoices"))
						assert.Len(t, values, 12)
						return []map[string]interface{}{}, nil
					})
			},
		},
		{
			name: "token acquisition failure",
			setupMocks: func(tokens *mocks.MockTokenSource, api *mocks.MockInvoiceFetcher, executor *mocks.MockQueryExecutor) {
				tokens.EXPECT().BearerToken(gomock.Any()).Return("", errors.New("getter down"))
			},
			wantErr:     true,
			errorString: "failed to obtain bearer token",
		},
		{
			name: "fetch failure",
			setupMocks: func(tokens *mocks.MockTokenSource, api *mocks.MockInvoiceFetcher, executor *mocks.MockQueryExecutor) {
				tokens.EXPECT().BearerToken(gomock.Any()).Return("access-token", nil)
				api.EXPECT().GetInvoice(gomock.Any(), "tenant-1", "inv-123", "access-token").
					Return(nil, errors.New("404 not found"))
			},
			wantErr:     true,
			errorString: "failed to fetch invoice from Xero",
		},
		{
			name: "existence check failure stops the upsert, no write is attempted",
			setupMocks: func(tokens *mocks.MockTokenSource, api *mocks.MockInvoiceFetcher, executor *mocks.MockQueryExecutor) {
				tokens.EXPECT().BearerToken(gomock.Any()).Return("access-token", nil)
				api.EXPECT().GetInvoice(gomock.Any(), "tenant-1", "inv-123", "access-token").
					Return(receivableInvoice(), nil)
				executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("executor timeout"))
			},
			wantErr:     true,
			errorString: "failed to perform operation in DB",
		},
		{
			name: "write failure",
			setupMocks: func(tokens *mocks.MockTokenSource, api *mocks.MockInvoiceFetcher, executor *mocks.MockQueryExecutor) {
				tokens.EXPECT().BearerToken(gomock.Any()).Return("access-token", nil)
				api.EXPECT().GetInvoice(gomock.Any(), "tenant-1", "inv-123", "access-token").
					Return(receivableInvoice(), nil)
				exists := executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]map[string]interface{}{}, nil)
				executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).After(exists).
					Return(nil, errors.New("constraint violation"))
			},
			wantErr:     true,
			errorString: "failed to perform operation in DB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			tokens := mocks.NewMockTokenSource(ctrl)
			api := mocks.NewMockInvoiceFetcher(ctrl)
			executor := mocks.NewMockQueryExecutor(ctrl)
			tt.setupMocks(tokens, api, executor)

			orchestrator := etl.NewOrchestrator(tokens, api, executor, zap.NewNop())
			err := orchestrator.Process(context.Background(), "tenant-1", "inv-123")

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorString)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestOrchestrator_Process_BillRouting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bill := receivableInvoice()
	bill.Type = xero.TypeAccountsPayable

	tokens := mocks.NewMockTokenSource(ctrl)
	api := mocks.NewMockInvoiceFetcher(ctrl)
	executor := mocks.NewMockQueryExecutor(ctrl)

	tokens.EXPECT().BearerToken(gomock.Any()).Return("access-token", nil)
	api.EXPECT().GetInvoice(gomock.Any(), "tenant-1", "inv-123", "access-token").Return(bill, nil)

	exists := executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query string, values []interface{}) ([]map[string]interface{}, error) {
			assert.Contains(t, query, "FROM etl_xero_bills")
			return []map[string]interface{}{}, nil
		})
	executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).After(exists).
		DoAndReturn(func(_ context.Context, query string, values []interface{}) ([]map[string]interface{}, error) {
			assert.Contains(t, query, "INSERT INTO etl_xero_bills")
			assert.Len(t, values, 13)
			return []map[string]interface{}{}, nil
		})

	orchestrator := etl.NewOrchestrator(tokens, api, executor, zap.NewNop())
	require.NoError(t, orchestrator.Process(context.Background(), "tenant-1", "inv-123"))
}
