package usecase

import (
	"context"

	"github.com/jhoicas/uniforms-api/internal/application/dto"
	"github.com/jhoicas/uniforms-api/internal/domain/repository"
)

// Localizer traduce claves de mensajes al idioma que transporta el contexto.
type Localizer interface {
	Translate(ctx context.Context, key string) string
	Language(ctx context.Context) string
}

// Settings valores configurables del módulo de uniformes (lo implementa config.UniformsConfig).
type Settings interface {
	DefaultPage() int
	DefaultResult() int
	LangPrefix() string
	CommonLangPrefix() string
}

// CategoryTxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Hace Commit si fn devuelve nil y Rollback en cualquier otro caso.
type CategoryTxRunner interface {
	RunCategory(ctx context.Context, fn func(
		categoryRepo repository.UniformCategoryRepository,
		labelRepo repository.LanguageLabelRepository,
	) error) error
}

// DropdownCache guarda envelopes de dropdown ya armados bajo una versión. Invalidate avanza
// la versión; lo guardado con una versión anterior ya no se lee.
// Get y Set reciben la versión leída antes de consultar la base, de modo que un resultado
// calculado antes de una invalidación no se guarde bajo la versión nueva.
type DropdownCache interface {
	Version(ctx context.Context) (int64, error)
	Get(ctx context.Context, version int64, key string) (*dto.Envelope, bool, error)
	Set(ctx context.Context, version int64, key string, env *dto.Envelope) error
	Invalidate(ctx context.Context) error
}
