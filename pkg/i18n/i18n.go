// Package i18n carga los catálogos de mensajes embebidos (locales/*.yaml) y resuelve
// traducciones por idioma. El idioma de cada request viaja en el context.Context.
package i18n

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

type ctxKey struct{}

// Bundle agrupa el catálogo de mensajes y el matcher de idiomas soportados.
type Bundle struct {
	catalog  *catalog.Builder
	matcher  language.Matcher
	tags     []language.Tag
	fallback language.Tag
}

// NewBundle carga todos los locales embebidos. defaultLocale debe existir entre ellos.
func NewBundle(defaultLocale string) (*Bundle, error) {
	return newBundle(localeFS, "locales", defaultLocale)
}

func newBundle(fsys fs.FS, dir, defaultLocale string) (*Bundle, error) {
	fallback, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("i18n: locale por defecto inválido %q: %w", defaultLocale, err)
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("i18n: leer locales: %w", err)
	}

	b := &Bundle{
		catalog:  catalog.NewBuilder(catalog.Fallback(fallback)),
		fallback: fallback,
	}
	var others []language.Tag
	foundDefault := false
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		tag, err := language.Parse(strings.TrimSuffix(e.Name(), ".yaml"))
		if err != nil {
			return nil, fmt.Errorf("i18n: nombre de locale inválido %q: %w", e.Name(), err)
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("i18n: leer %s: %w", e.Name(), err)
		}
		if err := b.load(tag, raw); err != nil {
			return nil, fmt.Errorf("i18n: %s: %w", e.Name(), err)
		}
		if tag == fallback {
			foundDefault = true
			continue
		}
		others = append(others, tag)
	}
	if !foundDefault {
		return nil, fmt.Errorf("i18n: no existe el locale por defecto %q", defaultLocale)
	}

	// El primer tag del matcher es el que se usa cuando no hay coincidencia.
	b.tags = append([]language.Tag{fallback}, others...)
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// load registra los mensajes de un archivo con la forma namespace -> clave -> texto.
// La clave final es "namespace.clave".
func (b *Bundle) load(tag language.Tag, raw []byte) error {
	var doc map[string]map[string]string
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	namespaces := make([]string, 0, len(doc))
	for ns := range doc {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces)
	for _, ns := range namespaces {
		for key, msg := range doc[ns] {
			if err := b.catalog.SetString(tag, ns+"."+key, msg); err != nil {
				return err
			}
		}
	}
	return nil
}

// Match elige el idioma soportado que mejor coincide con un header Accept-Language.
// Sin coincidencia devuelve el locale por defecto.
func (b *Bundle) Match(acceptLanguage string) language.Tag {
	if strings.TrimSpace(acceptLanguage) == "" {
		return b.fallback
	}
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return b.fallback
	}
	_, idx, conf := b.matcher.Match(desired...)
	if conf == language.No {
		return b.fallback
	}
	return b.tags[idx]
}

// Translate resuelve la clave en el idioma del contexto. Una clave sin traducción se devuelve tal cual.
func (b *Bundle) Translate(ctx context.Context, key string) string {
	p := message.NewPrinter(b.tagFrom(ctx), message.Catalog(b.catalog))
	return p.Sprintf(message.Key(key, key))
}

// Language devuelve el idioma efectivo del contexto (BCP 47).
func (b *Bundle) Language(ctx context.Context) string {
	return b.tagFrom(ctx).String()
}

func (b *Bundle) tagFrom(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(ctxKey{}).(language.Tag); ok {
		return tag
	}
	return b.fallback
}

// WithLanguage devuelve un contexto que transporta el idioma del request.
func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxKey{}, tag)
}

// aliases de login_language heredados del front-end (no son subtags ISO 639).
var aliases = map[string]string{
	"cn": "zh",
	"ch": "zh",
	"tw": "zh",
}

// BaseLanguage normaliza un idioma de sesión ("en-US", "zh-TW", "cn") a su idioma base
// ("en", "zh"). Devuelve cadena vacía si no se puede interpretar.
func BaseLanguage(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	if alias, ok := aliases[s]; ok {
		return alias
	}
	tag, err := language.Parse(s)
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	return base.String()
}
