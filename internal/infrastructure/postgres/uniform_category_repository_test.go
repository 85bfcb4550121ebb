package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/uniforms-api/internal/domain"
	"github.com/jhoicas/uniforms-api/internal/domain/entity"
	"github.com/jhoicas/uniforms-api/internal/domain/repository"
)

var categoryCols = []string{"id", "ch_name", "en_name", "is_show", "have_steel", "language_id", "created_at", "updated_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestUniformCategoryRepo_Count(t *testing.T) {
	mock := newMock(t)
	repo := NewUniformCategoryRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM uniforms_category WHERE ch_name = $1 AND is_show = $2`)).
		WithArgs("夏季", int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	total, err := repo.Count(context.Background(), repository.CategoryFilter{"is_show": "1", "ch_name": "夏季"})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUniformCategoryRepo_CountSinFiltro(t *testing.T) {
	mock := newMock(t)
	repo := NewUniformCategoryRepository(mock)

	mock.ExpectQuery(`^SELECT COUNT\(\*\) FROM uniforms_category$`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))

	total, err := repo.Count(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUniformCategoryRepo_ColumnaNoPermitida(t *testing.T) {
	mock := newMock(t)
	repo := NewUniformCategoryRepository(mock)

	_, err := repo.Count(context.Background(), repository.CategoryFilter{"1=1; --": "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidColumn)

	_, err = repo.List(context.Background(), nil, 0, 10, repository.SortSpec{Field: "password", Order: "asc"})
	assert.ErrorIs(t, err, domain.ErrInvalidColumn)

	_, err = repo.List(context.Background(), nil, 0, 10, repository.SortSpec{Field: "id", Order: "up"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.NoError(t, mock.ExpectationsWereMet(), "ninguna query debe llegar a la base")
}

func TestUniformCategoryRepo_List(t *testing.T) {
	mock := newMock(t)
	repo := NewUniformCategoryRepository(mock)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	steel := 1

	mock.ExpectQuery(regexp.QuoteMeta(
		`FROM uniforms_category WHERE is_show = $1 ORDER BY ch_name ASC LIMIT $2 OFFSET $3`)).
		WithArgs(int64(1), 5, 10).
		WillReturnRows(pgxmock.NewRows(categoryCols).
			AddRow(int64(7), "夏季制服", "Summer", 1, &steel, int64(70), now, now).
			AddRow(int64(8), "冬季制服", "", 1, (*int)(nil), int64(80), now, now))

	list, err := repo.List(context.Background(), repository.CategoryFilter{"is_show": "1"}, 10, 5,
		repository.SortSpec{Field: "ch_name", Order: "asc"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(7), list[0].ID)
	assert.Equal(t, "Summer", list[0].EnName)
	require.NotNil(t, list[0].HaveSteel)
	assert.Equal(t, 1, *list[0].HaveSteel)
	assert.Nil(t, list[1].HaveSteel)
	assert.Equal(t, int64(80), list[1].LanguageID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUniformCategoryRepo_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewUniformCategoryRepository(mock)
	now := time.Now()
	c := &entity.UniformCategory{ChName: "運動服", IsShow: 1, LanguageID: 42, CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery(`INSERT INTO uniforms_category`).
		WithArgs("運動服", "", 1, (*int)(nil), int64(42), now, now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(15)))

	require.NoError(t, repo.Create(context.Background(), c))
	assert.Equal(t, int64(15), c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUniformCategoryRepo_CreateErrorSeEnvuelve(t *testing.T) {
	mock := newMock(t)
	repo := NewUniformCategoryRepository(mock)

	mock.ExpectQuery(`INSERT INTO uniforms_category`).
		WillReturnError(&pgconn.PgError{Code: "23502"})

	err := repo.Create(context.Background(), &entity.UniformCategory{ChName: "x"})
	require.Error(t, err)
	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr), "el error de pgx se conserva envuelto")
	assert.Equal(t, "23502", pgErr.Code)
	assert.Contains(t, err.Error(), "insert uniforms_category")
}

func TestUniformCategoryRepo_Update(t *testing.T) {
	mock := newMock(t)
	repo := NewUniformCategoryRepository(mock)
	name := "新名稱"
	show := 0

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE uniforms_category SET ch_name = $1, is_show = $2, updated_at = now() WHERE id = $3`)).
		WithArgs("新名稱", 0, int64(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ok, err := repo.Update(context.Background(), 9, repository.CategoryUpdate{ChName: &name, IsShow: &show})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUniformCategoryRepo_UpdateSinFilas(t *testing.T) {
	mock := newMock(t)
	repo := NewUniformCategoryRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE uniforms_category SET updated_at = now() WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	ok, err := repo.Update(context.Background(), 3, repository.CategoryUpdate{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLanguageLabelRepo_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewLanguageLabelRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO permission_language`).
		WithArgs("cn運動服", now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(501)))

	label := &entity.LanguageLabel{CnName: "cn運動服", CreatedAt: now}
	require.NoError(t, repo.Create(context.Background(), label))
	assert.Equal(t, int64(501), label.ID)
}

func TestTxRunner_CommitYRollback(t *testing.T) {
	mock := newMock(t)
	runner := NewTxRunner(mock)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO permission_language`).
		WithArgs("cnA", now).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery(`INSERT INTO uniforms_category`).
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := runner.RunCategory(context.Background(), func(
		categoryRepo repository.UniformCategoryRepository,
		labelRepo repository.LanguageLabelRepository,
	) error {
		label := &entity.LanguageLabel{CnName: "cnA", CreatedAt: now}
		if err := labelRepo.Create(context.Background(), label); err != nil {
			return err
		}
		return categoryRepo.Create(context.Background(), &entity.UniformCategory{ChName: "A", LanguageID: label.ID})
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectBegin()
	mock.ExpectCommit()
	require.NoError(t, runner.RunCategory(context.Background(), func(
		repository.UniformCategoryRepository, repository.LanguageLabelRepository,
	) error {
		return nil
	}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunner_FallaBegin(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin().WillReturnError(errors.New("sin conexiones"))

	err := NewTxRunner(mock).RunCategory(context.Background(), func(
		repository.UniformCategoryRepository, repository.LanguageLabelRepository,
	) error {
		t.Fatal("fn no debe ejecutarse")
		return nil
	})
	assert.ErrorContains(t, err, "begin transaction")
}

func TestWithIPv4Host(t *testing.T) {
	dsn := "postgres://u:p@127.0.0.1/db?sslmode=disable"
	assert.Equal(t, "postgres://u:p@127.0.0.1:5432/db?sslmode=disable", withIPv4Host(dsn, zerolog.Nop()))

	v6 := "postgres://u:p@[::1]:5432/db"
	assert.Equal(t, v6, withIPv4Host(v6, zerolog.Nop()), "IPv6 literal se deja igual")
}
