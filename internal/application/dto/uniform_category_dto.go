package dto

import (
	"time"

	"github.com/jhoicas/uniforms-api/internal/domain/entity"
)

// CreateUniformCategoryRequest entrada para crear una categoría de uniformes.
// Los valores llegan como texto (form o JSON); cadena vacía = no especificado.
type CreateUniformCategoryRequest struct {
	ChName    string `json:"ch_name" form:"ch_name" validate:"required"`
	EnName    string `json:"en_name" form:"en_name"`
	IsShow    string `json:"is_show" form:"is_show"`
	HaveSteel string `json:"have_steel" form:"have_steel"`
}

// UpdateUniformCategoryRequest entrada para actualizar una categoría. ID viene del path.
type UpdateUniformCategoryRequest struct {
	ID        string  `json:"id" form:"id"`
	ChName    *string `json:"ch_name" form:"ch_name"`
	EnName    *string `json:"en_name" form:"en_name"`
	IsShow    *string `json:"is_show" form:"is_show"`
	HaveSteel *string `json:"have_steel" form:"have_steel"`
}

// UniformCategoryResponse salida de una categoría en los listados.
type UniformCategoryResponse struct {
	ID         int64     `json:"id"`
	ChName     string    `json:"ch_name"`
	EnName     string    `json:"en_name"`
	IsShow     int       `json:"is_show"`
	HaveSteel  *int      `json:"have_steel"`
	LanguageID int64     `json:"language_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DropdownEntry opción de un select: id y nombre en el idioma de sesión.
type DropdownEntry struct {
	Value int64  `json:"value"`
	Label string `json:"label"`
}

// ToUniformCategoryResponse convierte la entidad a su forma de presentación.
func ToUniformCategoryResponse(c *entity.UniformCategory) UniformCategoryResponse {
	return UniformCategoryResponse{
		ID:         c.ID,
		ChName:     c.ChName,
		EnName:     c.EnName,
		IsShow:     c.IsShow,
		HaveSteel:  c.HaveSteel,
		LanguageID: c.LanguageID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
