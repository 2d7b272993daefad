package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WithTransaction function:
//     Begin transaction from the pool
//     Deferred rollback runs when:
//         fn returns an error
//         fn panics
//     Commit only when fn succeeded

// TxFunc is the function executed inside a transaction
type TxFunc func(pgx.Tx) error

// TxRunner lets services open a scoped transaction without holding the pool.
// Tests swap it for an in-memory implementation.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn TxFunc) error
}

// PoolTxRunner runs TxFuncs against a pgxpool
type PoolTxRunner struct {
	pool *pgxpool.Pool
}

func NewPoolTxRunner(pool *pgxpool.Pool) *PoolTxRunner {
	return &PoolTxRunner{pool: pool}
}

func (r *PoolTxRunner) WithTransaction(ctx context.Context, fn TxFunc) error {
	return WithTransaction(ctx, r.pool, fn)
}

// WithTransaction wraps fn in a transaction.
// Auto rollback on error or panic, auto commit on success.
func WithTransaction(ctx context.Context, pool *pgxpool.Pool, fn TxFunc) (err error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Rollback after a successful commit is a no-op (pgx.ErrTxClosed)
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// WithTransactionResult wraps a function that returns a value
func WithTransactionResult[T any](ctx context.Context, runner TxRunner, fn func(pgx.Tx) (T, error)) (T, error) {
	var result T

	err := runner.WithTransaction(ctx, func(tx pgx.Tx) error {
		var fnErr error
		result, fnErr = fn(tx)
		return fnErr
	})

	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}
