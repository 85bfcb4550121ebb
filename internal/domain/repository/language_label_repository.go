package repository

import (
	"context"

	"github.com/jhoicas/uniforms-api/internal/domain/entity"
)

// LanguageLabelRepository define el puerto de persistencia para LanguageLabel.
type LanguageLabelRepository interface {
	// Create persiste la etiqueta y asigna el ID generado.
	Create(ctx context.Context, label *entity.LanguageLabel) error
}
