package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

// rollback ends tx if it has not been committed yet. Meant to be deferred.
func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.Error("failed to rollback transaction", "error", err)
	}
}
