package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/library-api/internal/platform/logger"
)

// TxFn is the unit of work handed to RunInTransaction. Stores used inside it
// must be bound to tx with WithTx.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// TxBeginner starts transactions. *sql.DB satisfies it.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// RunInTransaction runs fn in a new transaction and commits when fn returns nil.
// Any other outcome rolls back: an error from fn is returned as is (joined with
// the rollback error if that also fails), and a panic propagates after the
// rollback has run.
func RunInTransaction(ctx context.Context, db TxBeginner, fn TxFn) (err error) {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", slog.String("error", err.Error()))
		return fmt.Errorf("begin transaction: %w", err)
	}

	done := false
	defer func() {
		if done {
			return
		}
		rbErr := tx.Rollback()
		switch {
		case rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone):
			log.Error("transaction rollback failed", slog.String("error", rbErr.Error()))
			err = errors.Join(err, fmt.Errorf("rollback transaction: %w", rbErr))
		case err != nil:
			log.Debug("transaction rolled back", slog.String("cause", err.Error()))
		default:
			log.Error("transaction rolled back after panic")
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}

	done = true
	if err = tx.Commit(); err != nil {
		log.Error("failed to commit transaction", slog.String("error", err.Error()))
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
