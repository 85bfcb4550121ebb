package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/uniforms-api/internal/application/dto"
	"github.com/jhoicas/uniforms-api/internal/domain"
	"github.com/jhoicas/uniforms-api/internal/domain/entity"
	"github.com/jhoicas/uniforms-api/internal/domain/repository"
	"github.com/jhoicas/uniforms-api/pkg/i18n"
)

// Códigos de resultado del módulo de uniformes (van en el body, no en el status HTTP).
const (
	CodeInvalidParam       = 100
	CodeNoData             = 101
	CodeSameName           = 102
	CodeLabelCreateFail    = 103
	CodeCategoryCreateFail = 104
	CodeNotFound           = 104
	CodeUpdateFail         = 105
)

// Claves de mensaje bajo el prefijo de uniformes.
const (
	msgInvalidParam = "invalid_param"
	msgNoData       = "no_data"
	msgSameName     = "same_name"
	msgCreateFail   = "create_fail"
	msgUpdateFail   = "update_fail"
)

// defaultIsShow visibilidad de una categoría creada sin is_show.
const defaultIsShow = 1

// stepError marca en qué paso de la transacción de alta se produjo el fallo.
type stepError struct {
	code int
	err  error
}

func (e *stepError) Error() string { return e.err.Error() }
func (e *stepError) Unwrap() error { return e.err }

// UniformCategoryUseCase listado, dropdown, alta y modificación de categorías de uniformes.
// No guarda estado por request: es seguro compartir una instancia entre requests concurrentes.
type UniformCategoryUseCase struct {
	repo      repository.UniformCategoryRepository
	txRunner  CategoryTxRunner
	localizer Localizer
	settings  Settings
	cache     DropdownCache
	log       zerolog.Logger
	now       func() time.Time
}

// NewUniformCategoryUseCase construye el caso de uso.
func NewUniformCategoryUseCase(
	repo repository.UniformCategoryRepository,
	txRunner CategoryTxRunner,
	localizer Localizer,
	settings Settings,
	log zerolog.Logger,
) *UniformCategoryUseCase {
	return &UniformCategoryUseCase{
		repo:      repo,
		txRunner:  txRunner,
		localizer: localizer,
		settings:  settings,
		log:       log,
		now:       time.Now,
	}
}

// WithDropdownCache habilita el caché de dropdowns.
func (uc *UniformCategoryUseCase) WithDropdownCache(cache DropdownCache) *UniformCategoryUseCase {
	uc.cache = cache
	return uc
}

// List devuelve una página de categorías con total_count, page, perpage y total_page.
// Si el conteo es 0 responde 101 sin ejecutar la consulta del listado.
func (uc *UniformCategoryUseCase) List(ctx context.Context, raw map[string]string) *dto.Envelope {
	params, err := normalizeListParams(raw, uc.settings)
	if err != nil {
		return uc.invalid(ctx, err)
	}
	return uc.page(ctx, params, func(list []*entity.UniformCategory) any {
		items := make([]dto.UniformCategoryResponse, 0, len(list))
		for _, c := range list {
			items = append(items, dto.ToUniformCategoryResponse(c))
		}
		return items
	})
}

// Dropdown igual que List pero cada registro se reduce a {value, label} con el nombre en
// el idioma indicado por login_language (obligatorio).
func (uc *UniformCategoryUseCase) Dropdown(ctx context.Context, raw map[string]string) *dto.Envelope {
	loginLanguage := strings.TrimSpace(raw[paramLoginLanguage])
	if loginLanguage == "" {
		return uc.invalid(ctx, errors.New("login_language requerido"))
	}
	params, err := normalizeListParams(raw, uc.settings)
	if err != nil {
		return uc.invalid(ctx, err)
	}
	base := i18n.BaseLanguage(loginLanguage)

	var (
		cacheKey string
		version  int64
		cacheOK  = uc.cache != nil
	)
	if cacheOK {
		cacheKey = params.cacheKey() + "&lang=" + base + "&locale=" + uc.localizer.Language(ctx)
		version, err = uc.cache.Version(ctx)
		if err != nil {
			uc.log.Warn().Err(err).Msg("leer versión del caché de dropdown")
			cacheOK = false
		}
	}
	if cacheOK {
		cached, ok, err := uc.cache.Get(ctx, version, cacheKey)
		if err != nil {
			uc.log.Warn().Err(err).Msg("leer caché de dropdown")
		} else if ok {
			return cached
		}
	}

	env := uc.page(ctx, params, func(list []*entity.UniformCategory) any {
		entries := make([]dto.DropdownEntry, 0, len(list))
		for _, c := range list {
			entries = append(entries, dto.DropdownEntry{Value: c.ID, Label: c.NameFor(base)})
		}
		return entries
	})

	if cacheOK && !env.IsError() {
		if err := uc.cache.Set(ctx, version, cacheKey, env); err != nil {
			uc.log.Warn().Err(err).Msg("guardar caché de dropdown")
		}
	}
	return env
}

// Create crea la etiqueta de idioma y la categoría en una sola transacción.
// El chequeo de duplicados solo rechaza cuando ya existe más de una categoría igual.
func (uc *UniformCategoryUseCase) Create(ctx context.Context, in dto.CreateUniformCategoryRequest) *dto.Envelope {
	chName := strings.TrimSpace(in.ChName)
	if chName == "" {
		return uc.invalid(ctx, errors.New("ch_name requerido"))
	}
	isShow, err := optionalInt(in.IsShow)
	if err != nil {
		return uc.invalid(ctx, err)
	}
	haveSteel, err := optionalInt(in.HaveSteel)
	if err != nil {
		return uc.invalid(ctx, err)
	}
	enName := strings.TrimSpace(in.EnName)

	filter := repository.CategoryFilter{repository.ColumnChName: chName}
	if enName != "" {
		filter[repository.ColumnEnName] = enName
	}
	if isShow != nil {
		filter[repository.ColumnIsShow] = strconv.Itoa(*isShow)
	}
	if haveSteel != nil {
		filter[repository.ColumnHaveSteel] = strconv.Itoa(*haveSteel)
	}

	total, err := uc.repo.Count(ctx, filter)
	if err != nil {
		uc.log.Error().Err(err).Str("ch_name", chName).Msg("chequeo de duplicados")
		return uc.fail(ctx, CodeLabelCreateFail, msgCreateFail)
	}
	// TODO: confirmar con producto si el umbral debe ser > 0; hoy un duplicado previo se acepta.
	if total > 1 {
		return uc.fail(ctx, CodeSameName, msgSameName)
	}

	now := uc.now()
	category := &entity.UniformCategory{
		ChName:    chName,
		EnName:    enName,
		IsShow:    defaultIsShow,
		HaveSteel: haveSteel,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if isShow != nil {
		category.IsShow = *isShow
	}

	err = uc.txRunner.RunCategory(ctx, func(
		categoryRepo repository.UniformCategoryRepository,
		labelRepo repository.LanguageLabelRepository,
	) error {
		label := &entity.LanguageLabel{CnName: "cn" + chName, CreatedAt: now}
		if err := labelRepo.Create(ctx, label); err != nil {
			return &stepError{code: CodeLabelCreateFail, err: err}
		}
		if label.ID == 0 {
			return &stepError{code: CodeLabelCreateFail, err: errors.New("etiqueta creada sin id")}
		}
		category.LanguageID = label.ID
		if err := categoryRepo.Create(ctx, category); err != nil {
			return &stepError{code: CodeCategoryCreateFail, err: err}
		}
		if category.ID == 0 {
			return &stepError{code: CodeCategoryCreateFail, err: errors.New("categoría creada sin id")}
		}
		return nil
	})
	if err != nil {
		code := CodeCategoryCreateFail
		var step *stepError
		if errors.As(err, &step) {
			code = step.code
		}
		uc.log.Error().Err(err).Int("code", code).Str("ch_name", chName).Msg("crear categoría de uniformes")
		return uc.fail(ctx, code, msgCreateFail)
	}

	uc.invalidateDropdowns(ctx)
	return dto.NewSuccessEnvelope()
}

// Update modifica una categoría existente. is_show y have_steel vacíos no se tocan.
func (uc *UniformCategoryUseCase) Update(ctx context.Context, in dto.UpdateUniformCategoryRequest) *dto.Envelope {
	id, err := strconv.ParseInt(strings.TrimSpace(in.ID), 10, 64)
	if err != nil || id < 1 {
		return uc.invalid(ctx, domain.ErrInvalidInput)
	}
	fields, err := toCategoryUpdate(in)
	if err != nil {
		return uc.invalid(ctx, err)
	}

	total, err := uc.repo.Count(ctx, repository.CategoryFilter{repository.ColumnID: strconv.FormatInt(id, 10)})
	if err != nil {
		uc.log.Error().Err(err).Int64("id", id).Msg("verificar existencia de categoría")
		return uc.fail(ctx, CodeNotFound, msgNoData)
	}
	if total == 0 {
		return uc.fail(ctx, CodeNotFound, msgNoData)
	}

	ok, err := uc.repo.Update(ctx, id, fields)
	if err != nil || !ok {
		uc.log.Error().Err(err).Int64("id", id).Bool("affected", ok).Msg("actualizar categoría de uniformes")
		return uc.fail(ctx, CodeUpdateFail, msgUpdateFail)
	}

	uc.invalidateDropdowns(ctx)
	return dto.NewSuccessEnvelope()
}

func toCategoryUpdate(in dto.UpdateUniformCategoryRequest) (repository.CategoryUpdate, error) {
	var out repository.CategoryUpdate
	if in.ChName != nil {
		name := strings.TrimSpace(*in.ChName)
		if name == "" {
			return out, errors.New("ch_name no puede quedar vacío")
		}
		out.ChName = &name
	}
	if in.EnName != nil {
		name := strings.TrimSpace(*in.EnName)
		out.EnName = &name
	}
	if in.IsShow != nil {
		v, err := optionalInt(*in.IsShow)
		if err != nil {
			return out, err
		}
		out.IsShow = v
	}
	if in.HaveSteel != nil {
		v, err := optionalInt(*in.HaveSteel)
		if err != nil {
			return out, err
		}
		out.HaveSteel = v
	}
	return out, nil
}

// page ejecuta conteo + listado y arma el envelope con leyendas traducidas.
func (uc *UniformCategoryUseCase) page(
	ctx context.Context,
	params ListParams,
	present func([]*entity.UniformCategory) any,
) *dto.Envelope {
	total, err := uc.repo.Count(ctx, params.Filter)
	if err != nil {
		uc.log.Error().Err(err).Msg("contar categorías de uniformes")
		return uc.fail(ctx, CodeNoData, msgNoData)
	}
	if total == 0 {
		return uc.fail(ctx, CodeNoData, msgNoData)
	}

	list, err := uc.repo.List(ctx, params.Filter, params.Offset(), params.PerPage, params.Sort)
	if err != nil {
		uc.log.Error().Err(err).Msg("listar categorías de uniformes")
		return uc.fail(ctx, CodeNoData, msgNoData)
	}

	output := []struct {
		key   string
		value any
	}{
		{"list", present(list)},
		{"total_count", total},
		{"page", params.Page},
		{"perpage", params.PerPage},
		{"total_page", params.TotalPages(total)},
	}
	env := dto.NewSuccessEnvelope()
	for _, o := range output {
		env.Set(o.key, o.value, uc.localizer.Translate(ctx, uc.settings.CommonLangPrefix()+o.key))
	}
	return env
}

func (uc *UniformCategoryUseCase) fail(ctx context.Context, code int, key string) *dto.Envelope {
	return dto.NewErrorEnvelope(code, uc.localizer.Translate(ctx, uc.settings.LangPrefix()+key))
}

func (uc *UniformCategoryUseCase) invalid(ctx context.Context, err error) *dto.Envelope {
	uc.log.Debug().Err(err).Msg("parámetros inválidos")
	return uc.fail(ctx, CodeInvalidParam, msgInvalidParam)
}

func (uc *UniformCategoryUseCase) invalidateDropdowns(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("invalidar caché de dropdown")
	}
}
