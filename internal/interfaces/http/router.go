package http

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/uniforms-api/internal/application/dto"
	"github.com/jhoicas/uniforms-api/pkg/i18n"
)

// RoleAdmin rol con permiso de alta y modificación.
const RoleAdmin = "admin"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UniformCategoryUC UniformCategoryService
	Bundle            *i18n.Bundle
	JWTSecret         string
	// HealthChecks se ejecutan en /health; nil o vacío = siempre ok.
	HealthChecks map[string]func(ctx context.Context) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.HealthChecks))

	api := app.Group("/api", LocaleMiddleware(deps.Bundle), AuthMiddleware(deps.JWTSecret))

	uniforms := api.Group("/uniforms/categories")
	h := NewUniformCategoryHandler(deps.UniformCategoryUC)
	uniforms.Get("/", h.List)
	uniforms.Get("/dropdown", h.Dropdown)
	uniforms.Post("/", RequireRole(RoleAdmin), h.Create)
	uniforms.Put("/:id", RequireRole(RoleAdmin), h.Update)
}

// healthHandler godoc
// @Summary  Estado del servicio y sus dependencias
// @Tags     health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Failure  503  {object}  map[string]string
// @Router   /health [get]
func healthHandler(checks map[string]func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status := fiber.StatusOK
		out := fiber.Map{"status": "ok"}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = fiber.StatusServiceUnavailable
				out["status"] = "degraded"
				out[name] = err.Error()
				continue
			}
			out[name] = "ok"
		}
		if status != fiber.StatusOK {
			return c.Status(status).JSON(out)
		}
		return c.JSON(out)
	}
}

// ErrorHandler respuesta JSON para errores no manejados por los handlers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "error interno"
	if fe, ok := err.(*fiber.Error); ok {
		code = fe.Code
		msg = fe.Message
	}
	return c.Status(code).JSON(dto.ErrorResponse{Code: "HTTP_" + strconv.Itoa(code), Message: msg})
}
