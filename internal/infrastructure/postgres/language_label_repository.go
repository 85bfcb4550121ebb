package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/uniforms-api/internal/domain/entity"
	"github.com/jhoicas/uniforms-api/internal/domain/repository"
)

var _ repository.LanguageLabelRepository = (*LanguageLabelRepo)(nil)

// LanguageLabelRepo implementación de LanguageLabelRepository sobre la tabla permission_language.
type LanguageLabelRepo struct {
	q Querier
}

// NewLanguageLabelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLanguageLabelRepository(q Querier) *LanguageLabelRepo {
	return &LanguageLabelRepo{q: q}
}

// Create inserta la etiqueta y asigna el ID generado.
func (r *LanguageLabelRepo) Create(ctx context.Context, label *entity.LanguageLabel) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO permission_language (cn_name, created_at) VALUES ($1, $2) RETURNING id`,
		label.CnName, label.CreatedAt,
	).Scan(&label.ID)
	if err != nil {
		return fmt.Errorf("insert permission_language: %w", err)
	}
	return nil
}
