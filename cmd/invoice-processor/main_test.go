package main

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"xero-etl/internal/client/xero"
	"xero-etl/internal/etl"
	"xero-etl/internal/logger"
	"xero-etl/internal/mocks"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func sqsRecord(id, body string) events.SQSMessage {
	return events.SQSMessage{MessageId: id, Body: body}
}

func TestApplication_HandleSQSEvent(t *testing.T) {
	invoice := &xero.Invoice{
		Type:      xero.TypeAccountsReceivable,
		InvoiceID: "inv-1",
	}

	tests := []struct {
		name         string
		records      []events.SQSMessage
		setupMocks   func(tokens *mocks.MockTokenSource, api *mocks.MockInvoiceFetcher, executor *mocks.MockQueryExecutor)
		wantFailures []string
	}{
		{
			name: "all messages processed",
			records: []events.SQSMessage{
				sqsRecord("m1", `{"tenantId":"t1","invoiceId":"inv-1"}`),
			},
			setupMocks: func(tokens *mocks.MockTokenSource, api *mocks.MockInvoiceFetcher, executor *mocks.MockQueryExecutor) {
				tokens.EXPECT().BearerToken(gomock.Any()).Return("tok", nil)
				api.EXPECT().GetInvoice(gomock.Any(), "t1", "inv-1", "tok").Return(invoice, nil)
				executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]map[string]interface{}{}, nil).Times(2)
			},
			wantFailures: nil,
		},
		{
			name: "only the failing message is reported back",
			records: []events.SQSMessage{
				sqsRecord("m1", `{"tenantId":"t1","invoiceId":"inv-1"}`),
				sqsRecord("m2", `{"tenantId":"t1","invoiceId":"inv-2"}`),
			},
			setupMocks: func(tokens *mocks.MockTokenSource, api *mocks.MockInvoiceFetcher, executor *mocks.MockQueryExecutor) {
				tokens.EXPECT().BearerToken(gomock.Any()).Return("tok", nil).Times(2)
				api.EXPECT().GetInvoice(gomock.Any(), "t1", "inv-1", "tok").Return(invoice, nil)
				api.EXPECT().GetInvoice(gomock.Any(), "t1", "inv-2", "tok").
					Return(nil, errors.New("upstream 500"))
				executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]map[string]interface{}{}, nil).Times(2)
			},
			wantFailures: []string{"m2"},
		},
		{
			name: "malformed body is dropped, not retried",
			records: []events.SQSMessage{
				sqsRecord("m1", `not json`),
				sqsRecord("m2", `{"tenantId":"","invoiceId":""}`),
			},
			setupMocks:   func(tokens *mocks.MockTokenSource, api *mocks.MockInvoiceFetcher, executor *mocks.MockQueryExecutor) {},
			wantFailures: nil,
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

			app := &Application{
				orchestrator: etl.NewOrchestrator(tokens, api, executor, zap.NewNop()),
			}

			resp, err := app.HandleSQSEvent(context.Background(), events.SQSEvent{Records: tt.records})
			require.NoError(t, err)

			var got []string
			for _, failure := range resp.BatchItemFailures {
				got = append(got, failure.ItemIdentifier)
			}
			assert.Equal(t, tt.wantFailures, got)
		})
	}
}
