package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xero-etl/internal/store"
)

func TestPgExecutor_Execute(t *testing.T) {
	t.Run("rows materialized as column maps", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT invoice_number FROM etl_xero_invoices").
			WithArgs("inv-1").
			WillReturnRows(pgxmock.NewRows([]string{"invoice_number"}).AddRow("INV-0042"))

		executor := store.NewPgExecutor(mock)
		rows, err := executor.Execute(context.Background(),
			`SELECT invoice_number FROM etl_xero_invoices WHERE invoice_id = $1 LIMIT 1;`,
			[]interface{}{"inv-1"})

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "INV-0042", rows[0]["invoice_number"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("statement without a result set yields an empty slice", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("UPDATE etl_xero_invoices").
			WithArgs(120.50, "inv-1").
			WillReturnRows(pgxmock.NewRows([]string{}))

		executor := store.NewPgExecutor(mock)
		rows, err := executor.Execute(context.Background(),
			`UPDATE etl_xero_invoices SET total = $1 WHERE invoice_id = $2;`,
			[]interface{}{120.50, "inv-1"})

		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query failure surfaces", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT").
			WithArgs("inv-1").
			WillReturnError(errors.New("relation does not exist"))

		executor := store.NewPgExecutor(mock)
		_, err = executor.Execute(context.Background(),
			`SELECT 1 FROM missing WHERE id = $1;`,
			[]interface{}{"inv-1"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "query execution failed")
	})

	t.Run("unparameterized statement rejected before reaching the pool", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		executor := store.NewPgExecutor(mock)
		_, err = executor.Execute(context.Background(), `DELETE FROM etl_xero_invoices;`, nil)

		assert.ErrorIs(t, err, store.ErrNoValues)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
