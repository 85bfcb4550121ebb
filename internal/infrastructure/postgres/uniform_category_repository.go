package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/uniforms-api/internal/domain/entity"
	"github.com/jhoicas/uniforms-api/internal/domain/repository"
)

var _ repository.UniformCategoryRepository = (*UniformCategoryRepo)(nil)

const uniformCategoryColumns = `id, ch_name, COALESCE(en_name, ''), is_show, have_steel, language_id, created_at, updated_at`

// UniformCategoryRepo implementación del puerto UniformCategoryRepository sobre PostgreSQL (usable con pool o tx).
type UniformCategoryRepo struct {
	q Querier
}

// NewUniformCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUniformCategoryRepository(q Querier) *UniformCategoryRepo {
	return &UniformCategoryRepo{q: q}
}

// Count cuenta las categorías que cumplen el filtro.
func (r *UniformCategoryRepo) Count(ctx context.Context, filter repository.CategoryFilter) (int, error) {
	where, args, err := whereClause(filter, 1)
	if err != nil {
		return 0, err
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM uniforms_category`+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count uniforms_category: %w", err)
	}
	return total, nil
}

// List devuelve una página de categorías ordenada según sort.
func (r *UniformCategoryRepo) List(
	ctx context.Context,
	filter repository.CategoryFilter,
	offset, limit int,
	sort repository.SortSpec,
) ([]*entity.UniformCategory, error) {
	where, args, err := whereClause(filter, 1)
	if err != nil {
		return nil, err
	}
	order, err := orderClause(sort)
	if err != nil {
		return nil, err
	}
	n := len(args)
	query := `SELECT ` + uniformCategoryColumns + ` FROM uniforms_category` + where + order +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list uniforms_category: %w", err)
	}
	defer rows.Close()

	var list []*entity.UniformCategory
	for rows.Next() {
		var c entity.UniformCategory
		if err := rows.Scan(
			&c.ID, &c.ChName, &c.EnName, &c.IsShow, &c.HaveSteel, &c.LanguageID, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan uniforms_category: %w", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list uniforms_category: %w", err)
	}
	return list, nil
}

// Create inserta la categoría y asigna el ID generado.
func (r *UniformCategoryRepo) Create(ctx context.Context, c *entity.UniformCategory) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO uniforms_category (ch_name, en_name, is_show, have_steel, language_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		c.ChName, c.EnName, c.IsShow, c.HaveSteel, c.LanguageID, c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
	if err != nil {
		// uniforms_category no tiene restricción única: los nombres repetidos los controla el caso de uso
		return fmt.Errorf("insert uniforms_category: %w", err)
	}
	return nil
}

// Update aplica solo los campos informados y refresca updated_at.
func (r *UniformCategoryRepo) Update(ctx context.Context, id int64, fields repository.CategoryUpdate) (bool, error) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if fields.ChName != nil {
		add(repository.ColumnChName, *fields.ChName)
	}
	if fields.EnName != nil {
		add(repository.ColumnEnName, *fields.EnName)
	}
	if fields.IsShow != nil {
		add(repository.ColumnIsShow, *fields.IsShow)
	}
	if fields.HaveSteel != nil {
		add(repository.ColumnHaveSteel, *fields.HaveSteel)
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE uniforms_category SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update uniforms_category: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
