package entity

import "time"

// LanguageLabel etiqueta de idioma (tabla permission_language) asociada 1:1 a una categoría al crearla.
type LanguageLabel struct {
	ID        int64
	CnName    string
	CreatedAt time.Time
}
