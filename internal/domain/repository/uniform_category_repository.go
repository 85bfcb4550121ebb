package repository

import (
	"context"

	"github.com/jhoicas/uniforms-api/internal/domain/entity"
)

// Columnas de uniforms_category expuestas a filtros y ordenamiento.
const (
	ColumnID         = "id"
	ColumnChName     = "ch_name"
	ColumnEnName     = "en_name"
	ColumnIsShow     = "is_show"
	ColumnHaveSteel  = "have_steel"
	ColumnLanguageID = "language_id"
	ColumnCreatedAt  = "created_at"
	ColumnUpdatedAt  = "updated_at"
)

// ColumnKind tipo de dato de una columna filtrable.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindInt
)

// FilterColumns columnas permitidas en un CategoryFilter y su tipo.
var FilterColumns = map[string]ColumnKind{
	ColumnID:         KindInt,
	ColumnChName:     KindText,
	ColumnEnName:     KindText,
	ColumnIsShow:     KindInt,
	ColumnHaveSteel:  KindInt,
	ColumnLanguageID: KindInt,
}

// SortColumns columnas permitidas para ordenar.
var SortColumns = map[string]bool{
	ColumnID:         true,
	ColumnChName:     true,
	ColumnEnName:     true,
	ColumnIsShow:     true,
	ColumnHaveSteel:  true,
	ColumnLanguageID: true,
	ColumnCreatedAt:  true,
	ColumnUpdatedAt:  true,
}

// CategoryFilter condiciones de igualdad columna -> valor. Una columna ausente no restringe.
type CategoryFilter map[string]string

// SortSpec ordenamiento de un listado. Order es "asc" o "desc".
type SortSpec struct {
	Field string
	Order string
}

// CategoryUpdate campos a modificar; nil = no se toca.
type CategoryUpdate struct {
	ChName    *string
	EnName    *string
	IsShow    *int
	HaveSteel *int
}

// UniformCategoryRepository define el puerto de persistencia para UniformCategory (DIP).
type UniformCategoryRepository interface {
	Count(ctx context.Context, filter CategoryFilter) (int, error)
	List(ctx context.Context, filter CategoryFilter, offset, limit int, sort SortSpec) ([]*entity.UniformCategory, error)
	// Create persiste la categoría y asigna el ID generado.
	Create(ctx context.Context, category *entity.UniformCategory) error
	// Update devuelve false si ninguna fila fue afectada.
	Update(ctx context.Context, id int64, fields CategoryUpdate) (bool, error)
}
