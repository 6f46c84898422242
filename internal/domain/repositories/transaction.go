package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager handles database transactions
type TransactionManager interface {
	// ExecTx executes a function within a transaction.
	// Returning an error from fn rolls back every write made through ctx.
	ExecTx(ctx context.Context, fn TxFn) error

	// ExecReadTx runs fn against a consistent read-only snapshot
	ExecReadTx(ctx context.Context, fn TxFn) error

	// LockScope serializes writers on the named scope until the surrounding
	// transaction ends. Must be called with a context from ExecTx.
	LockScope(ctx context.Context, scope string) error
}
