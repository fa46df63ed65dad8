package database

import (
	"context"
	"fmt"

	"choicefiction/internal/interfaces"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TxBeginner - источник транзакций (pgxpool.Pool, pgx.Conn).
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

var _ interfaces.TransactionManager = (*TransactionHelper)(nil)

// TransactionHelper выполняет функции в транзакции pgx.
type TransactionHelper struct {
	db     TxBeginner
	logger *zap.Logger
}

// NewTransactionHelper создает помощник транзакций.
func NewTransactionHelper(db TxBeginner, logger *zap.Logger) *TransactionHelper {
	return &TransactionHelper{db: db, logger: logger.Named("TxHelper")}
}

// WithTransaction выполняет fn в транзакции; ошибка или паника откатывают ее.
func (h *TransactionHelper) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx interfaces.DBTX) error) error {
	tx, err := h.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				h.logger.Error("Failed to rollback transaction after panic", zap.Error(rbErr), zap.Any("panic", p))
			}
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			h.logger.Error("Failed to rollback transaction", zap.Error(rbErr), zap.NamedError("original_error", err))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
