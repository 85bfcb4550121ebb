package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/uniforms-api/internal/application/usecase"
	"github.com/jhoicas/uniforms-api/internal/domain/repository"
)

var _ usecase.CategoryTxRunner = (*TxRunner)(nil)

// Beginner abre transacciones (*pgxpool.Pool o un mock).
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db Beginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db Beginner) *TxRunner {
	return &TxRunner{db: db}
}

// RunCategory inicia una transacción, ejecuta fn con los repos de categoría y etiqueta atados a
// la tx y hace Commit; ante cualquier error hace Rollback.
func (r *TxRunner) RunCategory(ctx context.Context, fn func(
	categoryRepo repository.UniformCategoryRepository,
	labelRepo repository.LanguageLabelRepository,
) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUniformCategoryRepository(tx), NewLanguageLabelRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
