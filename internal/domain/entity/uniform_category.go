package entity

import "time"

// UniformCategory representa una categoría de uniformes.
// LanguageID referencia la etiqueta de idioma creada junto con la categoría; la etiqueta no
// guarda referencia inversa.
type UniformCategory struct {
	ID         int64
	ChName     string
	EnName     string
	IsShow     int
	HaveSteel  *int // nil = no especificado
	LanguageID int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NameFor devuelve el nombre a mostrar para un idioma base ("en", "zh").
// Si la categoría no tiene nombre en inglés se usa el nombre en chino.
func (c *UniformCategory) NameFor(baseLanguage string) string {
	if baseLanguage == "en" && c.EnName != "" {
		return c.EnName
	}
	return c.ChName
}
