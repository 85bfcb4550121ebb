package usecase

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/jhoicas/uniforms-api/internal/application/dto"
	"github.com/jhoicas/uniforms-api/internal/domain/entity"
	"github.com/jhoicas/uniforms-api/internal/domain/repository"
)

var errDB = errors.New("db caída")

type listCall struct {
	filter repository.CategoryFilter
	offset int
	limit  int
	sort   repository.SortSpec
}

type updateCall struct {
	id     int64
	fields repository.CategoryUpdate
}

// fakeCategoryRepo repositorio en memoria. Count filtra por igualdad textual como lo haría SQL.
type fakeCategoryRepo struct {
	mu     sync.Mutex
	rows   []*entity.UniformCategory
	nextID int64

	countErr   error
	listErr    error
	createErr  error
	updateErr  error
	updateMiss bool

	countCalls  []repository.CategoryFilter
	listCalls   []listCall
	updateCalls []updateCall

	// onList corre antes de cada List; simula escrituras concurrentes.
	onList func()
}

func columnValue(c *entity.UniformCategory, col string) string {
	switch col {
	case repository.ColumnID:
		return strconv.FormatInt(c.ID, 10)
	case repository.ColumnChName:
		return c.ChName
	case repository.ColumnEnName:
		return c.EnName
	case repository.ColumnIsShow:
		return strconv.Itoa(c.IsShow)
	case repository.ColumnHaveSteel:
		if c.HaveSteel == nil {
			return ""
		}
		return strconv.Itoa(*c.HaveSteel)
	case repository.ColumnLanguageID:
		return strconv.FormatInt(c.LanguageID, 10)
	}
	return ""
}

func (r *fakeCategoryRepo) matching(filter repository.CategoryFilter) []*entity.UniformCategory {
	var out []*entity.UniformCategory
	for _, c := range r.rows {
		ok := true
		for col, v := range filter {
			if columnValue(c, col) != v {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, c)
		}
	}
	return out
}

func (r *fakeCategoryRepo) Count(_ context.Context, filter repository.CategoryFilter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countCalls = append(r.countCalls, filter)
	if r.countErr != nil {
		return 0, r.countErr
	}
	return len(r.matching(filter)), nil
}

func (r *fakeCategoryRepo) List(_ context.Context, filter repository.CategoryFilter, offset, limit int, sort repository.SortSpec) ([]*entity.UniformCategory, error) {
	if r.onList != nil {
		r.onList()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls = append(r.listCalls, listCall{filter: filter, offset: offset, limit: limit, sort: sort})
	if r.listErr != nil {
		return nil, r.listErr
	}
	rows := r.matching(filter)
	if offset >= len(rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], nil
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.UniformCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	c.ID = r.nextID
	r.rows = append(r.rows, c)
	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, id int64, fields repository.CategoryUpdate) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls = append(r.updateCalls, updateCall{id: id, fields: fields})
	if r.updateErr != nil {
		return false, r.updateErr
	}
	if r.updateMiss {
		return false, nil
	}
	return true, nil
}

type fakeLabelRepo struct {
	rows      []*entity.LanguageLabel
	nextID    int64
	createErr error
}

func (r *fakeLabelRepo) Create(_ context.Context, l *entity.LanguageLabel) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	l.ID = r.nextID
	r.rows = append(r.rows, l)
	return nil
}

// fakeTxRunner emula la atomicidad: si fn falla restaura el estado previo de ambos repos.
type fakeTxRunner struct {
	categories *fakeCategoryRepo
	labels     *fakeLabelRepo
	beginErr   error

	runs      int
	commits   int
	rollbacks int
}

func (tx *fakeTxRunner) RunCategory(ctx context.Context, fn func(
	categoryRepo repository.UniformCategoryRepository,
	labelRepo repository.LanguageLabelRepository,
) error) error {
	tx.runs++
	if tx.beginErr != nil {
		return tx.beginErr
	}
	catSnapshot := append([]*entity.UniformCategory(nil), tx.categories.rows...)
	labelSnapshot := append([]*entity.LanguageLabel(nil), tx.labels.rows...)
	if err := fn(tx.categories, tx.labels); err != nil {
		tx.categories.rows = catSnapshot
		tx.labels.rows = labelSnapshot
		tx.rollbacks++
		return err
	}
	tx.commits++
	return nil
}

type fakeLocalizer struct{}

func (fakeLocalizer) Translate(_ context.Context, key string) string { return "t:" + key }
func (fakeLocalizer) Language(_ context.Context) string              { return "zh-TW" }

type fakeCache struct {
	version       int64
	entries       map[string]*dto.Envelope
	invalidations int
	getErr        error
	versionErr    error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*dto.Envelope{}}
}

func fakeCacheKey(version int64, key string) string {
	return strconv.FormatInt(version, 10) + ":" + key
}

func (c *fakeCache) Version(_ context.Context) (int64, error) {
	if c.versionErr != nil {
		return 0, c.versionErr
	}
	return c.version, nil
}

func (c *fakeCache) Get(_ context.Context, version int64, key string) (*dto.Envelope, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	env, ok := c.entries[fakeCacheKey(version, key)]
	return env, ok, nil
}

func (c *fakeCache) Set(_ context.Context, version int64, key string, env *dto.Envelope) error {
	c.entries[fakeCacheKey(version, key)] = env
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context) error {
	c.invalidations++
	c.version++
	return nil
}
