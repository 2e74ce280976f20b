package repository

import (
	"context"
	"database/sql"

	"github.com/condoops/bank-reconciliation/internal/application/port"
	"github.com/condoops/bank-reconciliation/pkg/database"
)

// TxManager implements port.TransactionManager by carrying the open *sql.Tx
// through the context so every repository in the call chain joins the same
// transaction.
type TxManager struct {
	db *database.DB
}

// NewTxManager creates a new transaction manager
func NewTxManager(db *database.DB) port.TransactionManager {
	return &TxManager{db: db}
}

// WithTransaction executes fn inside a single transaction. Any error rolls
// everything back and propagates unchanged.
func (m *TxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

type contextKey string

const txKey = contextKey("tx")

// executor covers both *sql.DB and *sql.Tx
type executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// getExecutor returns the context's transaction when present, the plain
// connection otherwise.
func getExecutor(ctx context.Context, db *sql.DB) executor {
	if tx, ok := ctx.Value(txKey).(*sql.Tx); ok {
		return tx
	}
	return db
}

// Verify interface compliance
var _ port.TransactionManager = (*TxManager)(nil)
