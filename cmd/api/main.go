package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/uniforms-api/internal/application/usecase"
	"github.com/jhoicas/uniforms-api/internal/infrastructure/cache"
	"github.com/jhoicas/uniforms-api/internal/infrastructure/migration"
	"github.com/jhoicas/uniforms-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/uniforms-api/internal/interfaces/http"
	"github.com/jhoicas/uniforms-api/pkg/config"
	"github.com/jhoicas/uniforms-api/pkg/i18n"
	"github.com/jhoicas/uniforms-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("addr", cfg.HTTP.Addr()).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	if cfg.DB.MigrationsPath != "" {
		if err := migration.RunUp(cfg.DB.ConnectionString(), cfg.DB.MigrationsPath, log.Component("migration")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
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

	categoryRepo := postgres.NewUniformCategoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	categoryUC := usecase.NewUniformCategoryUseCase(categoryRepo, txRunner, bundle, cfg.Uniforms, log.Component("uniforms"))

	checks := map[string]func(ctx context.Context) error{
		"postgres": pool.Ping,
	}

	// Redis es opcional: sin REDIS_URL el dropdown siempre consulta la DB.
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.URL, log.Component("redis"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		categoryUC.WithDropdownCache(cache.NewDropdownCache(rdb, cfg.Redis.DropdownTTL))
		checks["redis"] = func(ctx context.Context) error { return cache.Ping(ctx, rdb) }
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(cors.New())

	limiter := httpRouter.NewIPRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)
	limiterCtx, stopLimiter := context.WithCancel(ctx)
	defer stopLimiter()
	go limiter.Cleanup(limiterCtx, time.Minute)
	app.Use(limiter.Handler())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Uniforms API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		UniformCategoryUC: categoryUC,
		Bundle:            bundle,
		JWTSecret:         cfg.JWT.Secret,
		HealthChecks:      checks,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
