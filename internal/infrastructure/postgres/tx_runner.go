package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pines-admin-api/internal/application/pins"
	"github.com/jhoicas/pines-admin-api/internal/domain/repository"
)

var _ pins.JournalTxRunner = (*TxRunner)(nil)

// beginner lo cumple *pgxpool.Pool.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db beginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db beginner) *TxRunner {
	return &TxRunner{db: db}
}

// RunJournal abre una transacción, ejecuta fn con el repositorio de pines atado a ella y hace Commit o Rollback.
func (r *TxRunner) RunJournal(ctx context.Context, fn func(repo repository.PinRepository) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPinRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
