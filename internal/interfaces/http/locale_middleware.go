package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/uniforms-api/pkg/i18n"
)

// LocaleMiddleware resuelve el Accept-Language contra los locales cargados y lo deja en el
// UserContext; los casos de uso traducen sus mensajes con ese idioma.
func LocaleMiddleware(bundle *i18n.Bundle) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tag := bundle.Match(c.Get(fiber.HeaderAcceptLanguage))
		c.SetUserContext(i18n.WithLanguage(c.UserContext(), tag))
		c.Set(fiber.HeaderContentLanguage, tag.String())
		return c.Next()
	}
}
