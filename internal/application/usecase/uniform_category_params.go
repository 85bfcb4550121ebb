package usecase

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jhoicas/uniforms-api/internal/domain"
	"github.com/jhoicas/uniforms-api/internal/domain/repository"
)

// Claves de control de los parámetros de listado; no son filtros.
const (
	paramPage          = "page"
	paramCount         = "count"
	paramSortField     = "sort_field"
	paramSortOrder     = "sort_order"
	paramLoginLanguage = "login_language"

	defaultSortField = repository.ColumnID
	defaultSortOrder = "desc"

	// Topes de paginación; con ambos (page-1)*count cabe en un int de 32 bits.
	maxPerPage = 100
	maxPage    = 10_000_000
)

// ListParams parámetros de listado ya normalizados.
type ListParams struct {
	Page    int
	PerPage int
	Sort    repository.SortSpec
	Filter  repository.CategoryFilter
}

// Offset desplazamiento SQL de la página.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// TotalPages páginas necesarias para total registros (techo de total/PerPage).
func (p ListParams) TotalPages(total int) int {
	n := total / p.PerPage
	if total%p.PerPage != 0 {
		n++
	}
	return n
}

// cacheKey representación estable de los parámetros.
func (p ListParams) cacheKey() string {
	keys := make([]string, 0, len(p.Filter))
	for k := range p.Filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	fmt.Fprintf(&b, "p=%d&n=%d&s=%s:%s", p.Page, p.PerPage, p.Sort.Field, p.Sort.Order)
	for _, k := range keys {
		fmt.Fprintf(&b, "&%s=%s", k, strconv.Quote(p.Filter[k]))
	}
	return b.String()
}

// normalizeListParams convierte los parámetros crudos del request en ListParams.
// Un valor vacío equivale a no enviado: page/count toman los valores configurados,
// el orden cae en id desc y los filtros vacíos (is_show="" incluido) se descartan.
func normalizeListParams(raw map[string]string, settings Settings) (ListParams, error) {
	p := ListParams{
		Page:    settings.DefaultPage(),
		PerPage: settings.DefaultResult(),
		Sort:    repository.SortSpec{Field: defaultSortField, Order: defaultSortOrder},
		Filter:  repository.CategoryFilter{},
	}

	for key, value := range raw {
		value = strings.TrimSpace(value)
		switch key {
		case paramLoginLanguage:
			// lo consume el dropdown; no es columna
			continue
		case paramPage:
			if value == "" {
				continue
			}
			n, err := boundedInt(value, maxPage)
			if err != nil {
				return ListParams{}, fmt.Errorf("page: %w", err)
			}
			p.Page = n
		case paramCount:
			if value == "" {
				continue
			}
			n, err := boundedInt(value, maxPerPage)
			if err != nil {
				return ListParams{}, fmt.Errorf("count: %w", err)
			}
			p.PerPage = n
		case paramSortField:
			if value == "" {
				continue
			}
			if !repository.SortColumns[value] {
				return ListParams{}, fmt.Errorf("sort_field %q: %w", value, domain.ErrInvalidColumn)
			}
			p.Sort.Field = value
		case paramSortOrder:
			if value == "" {
				continue
			}
			order := strings.ToLower(value)
			if order != "asc" && order != "desc" {
				return ListParams{}, fmt.Errorf("sort_order %q: %w", value, domain.ErrInvalidInput)
			}
			p.Sort.Order = order
		default:
			if value == "" {
				continue
			}
			kind, ok := repository.FilterColumns[key]
			if !ok {
				return ListParams{}, fmt.Errorf("filtro %q: %w", key, domain.ErrInvalidColumn)
			}
			if kind == repository.KindInt {
				if _, err := strconv.ParseInt(value, 10, 64); err != nil {
					return ListParams{}, fmt.Errorf("filtro %q: %w", key, domain.ErrInvalidInput)
				}
			}
			p.Filter[key] = value
		}
	}
	return p, nil
}

// boundedInt interpreta un entero en [1, limit]. count=0 se rechaza aquí para que nunca llegue a dividir.
func boundedInt(s string, limit int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > limit {
		return 0, domain.ErrInvalidInput
	}
	return n, nil
}

// optionalInt interpreta un flag numérico opcional; "" = no especificado (nil).
func optionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &n, nil
}
