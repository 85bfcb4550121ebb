package http

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/uniforms-api/internal/application/dto"
)

// UniformCategoryService operaciones del módulo de uniformes que expone el handler.
// Lo implementa *usecase.UniformCategoryUseCase.
type UniformCategoryService interface {
	List(ctx context.Context, raw map[string]string) *dto.Envelope
	Dropdown(ctx context.Context, raw map[string]string) *dto.Envelope
	Create(ctx context.Context, in dto.CreateUniformCategoryRequest) *dto.Envelope
	Update(ctx context.Context, in dto.UpdateUniformCategoryRequest) *dto.Envelope
}

// UniformCategoryHandler maneja las peticiones HTTP de categorías de uniformes.
// Los resultados de negocio siempre responden 200 con el código dentro del envelope.
type UniformCategoryHandler struct {
	uc UniformCategoryService
}

// NewUniformCategoryHandler construye el handler.
func NewUniformCategoryHandler(uc UniformCategoryService) *UniformCategoryHandler {
	return &UniformCategoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar categorías de uniformes
// @Tags         uniforms
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "Página"             default(1)
// @Param        count       query  int     false  "Registros por página" default(10)
// @Param        sort_field  query  string  false  "Columna de orden"   default(id)
// @Param        sort_order  query  string  false  "asc | desc"         default(desc)
// @Param        is_show     query  string  false  "Filtro de visibilidad"
// @Success      200  {object}  dto.Envelope
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/uniforms/categories [get]
func (h *UniformCategoryHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.List(c.UserContext(), c.Queries()))
}

// Dropdown godoc
// @Summary      Opciones de categorías para dropdown
// @Description  login_language se toma del query, si no del token y por último de Accept-Language.
// @Tags         uniforms
// @Security     Bearer
// @Produce      json
// @Param        login_language  query  string  false  "Idioma de la etiqueta (en, zh-TW, cn...)"
// @Success      200  {object}  dto.Envelope
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/uniforms/categories/dropdown [get]
func (h *UniformCategoryHandler) Dropdown(c *fiber.Ctx) error {
	raw := c.Queries()
	if strings.TrimSpace(raw[paramLoginLanguage]) == "" {
		raw[paramLoginLanguage] = loginLanguage(c)
	}
	return c.JSON(h.uc.Dropdown(c.UserContext(), raw))
}

// Create godoc
// @Summary      Crear categoría de uniformes
// @Tags         uniforms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUniformCategoryRequest  true  "Datos de la categoría"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/uniforms/categories [post]
func (h *UniformCategoryHandler) Create(c *fiber.Ctx) error {
	fields, err := bodyFields(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in := dto.CreateUniformCategoryRequest{
		ChName:    fields["ch_name"],
		EnName:    fields["en_name"],
		IsShow:    fields["is_show"],
		HaveSteel: fields["have_steel"],
	}
	return c.JSON(h.uc.Create(c.UserContext(), in))
}

// Update godoc
// @Summary      Modificar categoría de uniformes
// @Description  Solo se modifican los campos enviados; is_show y have_steel vacíos se ignoran.
// @Tags         uniforms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                                true  "ID de la categoría"
// @Param        body  body  dto.UpdateUniformCategoryRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.Envelope
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/uniforms/categories/{id} [put]
func (h *UniformCategoryHandler) Update(c *fiber.Ctx) error {
	fields, err := bodyFields(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pick := func(key string) *string {
		if v, ok := fields[key]; ok {
			return &v
		}
		return nil
	}
	in := dto.UpdateUniformCategoryRequest{
		ID:        c.Params("id"),
		ChName:    pick("ch_name"),
		EnName:    pick("en_name"),
		IsShow:    pick("is_show"),
		HaveSteel: pick("have_steel"),
	}
	return c.JSON(h.uc.Update(c.UserContext(), in))
}

const paramLoginLanguage = "login_language"

// loginLanguage idioma de sesión: claim del token o, si no viene, el primer Accept-Language.
func loginLanguage(c *fiber.Ctx) string {
	if lang := GetLoginLanguage(c); lang != "" {
		return lang
	}
	first, _, _ := strings.Cut(c.Get(fiber.HeaderAcceptLanguage), ",")
	first, _, _ = strings.Cut(first, ";")
	return strings.TrimSpace(first)
}

// bodyFields lee el body (JSON o formulario) como campo -> texto. En JSON los números y
// booleanos se convierten a texto y null equivale a "".
func bodyFields(c *fiber.Ctx) (map[string]string, error) {
	out := map[string]string{}
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return out, nil
	}
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			out[string(k)] = string(v)
		})
		return out, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	for k, v := range raw {
		switch t := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = t
		case json.Number:
			out[k] = t.String()
		case bool:
			out[k] = "0"
			if t {
				out[k] = "1"
			}
		default:
			return nil, fiber.NewError(fiber.StatusBadRequest, "campo "+strconv.Quote(k)+" con tipo no soportado")
		}
	}
	return out, nil
}
