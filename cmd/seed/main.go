// seed carga categorías de uniformes desde un CSV (ch_name,en_name,is_show,have_steel)
// usando el mismo caso de uso que la API, así que aplica las mismas validaciones y la
// misma transacción etiqueta + categoría.
//
// Uso: go run ./cmd/seed -file categorias.csv [-encoding big5]
// Los CSV exportados del sistema anterior vienen en Big5; por defecto se asume UTF-8.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"

	"github.com/jhoicas/uniforms-api/internal/application/dto"
	"github.com/jhoicas/uniforms-api/internal/application/usecase"
	"github.com/jhoicas/uniforms-api/internal/infrastructure/postgres"
	"github.com/jhoicas/uniforms-api/pkg/config"
	"github.com/jhoicas/uniforms-api/pkg/i18n"
	"github.com/jhoicas/uniforms-api/pkg/logger"
)

func main() {
	file := flag.String("file", "categorias.csv", "CSV con ch_name,en_name,is_show,have_steel")
	encoding := flag.String("encoding", "utf8", "utf8 | big5")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "seed"})

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("abrir CSV")
	}
	defer f.Close()

	rows, err := readRows(f, *encoding)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	bundle, err := i18n.NewBundle(cfg.I18n.DefaultLocale)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar traducciones")
	}
	uc := usecase.NewUniformCategoryUseCase(
		postgres.NewUniformCategoryRepository(pool),
		postgres.NewTxRunner(pool),
		bundle, cfg.Uniforms, log.Component("uniforms"),
	)

	var created, failed int
	for i, in := range rows {
		env := uc.Create(ctx, in)
		if env.IsError() {
			failed++
			log.Warn().Int("line", i+1).Str("ch_name", in.ChName).Int("code", env.Code).Str("message", env.Message).Msg("fila rechazada")
			continue
		}
		created++
	}
	log.Info().Int("created", created).Int("failed", failed).Msg("seed finalizado")
}

// readRows decodifica el CSV. Una primera fila con "ch_name" se toma como encabezado.
func readRows(r io.Reader, encoding string) ([]dto.CreateUniformCategoryRequest, error) {
	switch strings.ToLower(encoding) {
	case "utf8", "utf-8", "":
	case "big5":
		r = transform.NewReader(r, traditionalchinese.Big5.NewDecoder())
	default:
		return nil, fmt.Errorf("encoding no soportado: %s", encoding)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []dto.CreateUniformCategoryRequest
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if line == 1 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "ch_name") {
			continue
		}
		field := func(i int) string {
			if i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		out = append(out, dto.CreateUniformCategoryRequest{
			ChName:    field(0),
			EnName:    field(1),
			IsShow:    field(2),
			HaveSteel: field(3),
		})
	}
}
