package postgres

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jhoicas/uniforms-api/internal/domain"
	"github.com/jhoicas/uniforms-api/internal/domain/repository"
)

// whereClause arma "WHERE col = $n AND ..." en orden alfabético de columna, con los valores
// ya tipados según la columna. Solo acepta columnas de repository.FilterColumns.
func whereClause(filter repository.CategoryFilter, startAt int) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}
	cols := make([]string, 0, len(filter))
	for col := range filter {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	conds := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for i, col := range cols {
		kind, ok := repository.FilterColumns[col]
		if !ok {
			return "", nil, fmt.Errorf("filtro %q: %w", col, domain.ErrInvalidColumn)
		}
		var arg any = filter[col]
		if kind == repository.KindInt {
			n, err := strconv.ParseInt(filter[col], 10, 64)
			if err != nil {
				return "", nil, fmt.Errorf("filtro %q: %w", col, domain.ErrInvalidInput)
			}
			arg = n
		}
		conds = append(conds, fmt.Sprintf("%s = $%d", col, startAt+i))
		args = append(args, arg)
	}
	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

// orderClause valida el ordenamiento contra repository.SortColumns.
func orderClause(s repository.SortSpec) (string, error) {
	if !repository.SortColumns[s.Field] {
		return "", fmt.Errorf("orden %q: %w", s.Field, domain.ErrInvalidColumn)
	}
	order := strings.ToUpper(s.Order)
	if order != "ASC" && order != "DESC" {
		return "", fmt.Errorf("orden %q: %w", s.Order, domain.ErrInvalidInput)
	}
	return fmt.Sprintf(" ORDER BY %s %s", s.Field, order), nil
}
