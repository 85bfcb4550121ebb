package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Uniforms.DefaultPage())
	assert.Equal(t, 10, cfg.Uniforms.DefaultResult())
	assert.Equal(t, "uniforms.", cfg.Uniforms.LangPrefix())
	assert.Equal(t, "common.", cfg.Uniforms.CommonLangPrefix())
	assert.Equal(t, "zh-TW", cfg.I18n.DefaultLocale)
	assert.False(t, cfg.Redis.Enabled(), "sin REDIS_URL el caché queda deshabilitado")
	assert.Equal(t, 5*time.Minute, cfg.Redis.DropdownTTL)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_EnvSobrescribe(t *testing.T) {
	v := viper.New()
	v.Set("UNIFORMS_DEFAULT_PAGE", "3")
	v.Set("UNIFORMS_DEFAULT_RESULT", 25)
	v.Set("REDIS_URL", "redis://localhost:6379/0")
	v.Set("HTTP_PORT", "not-a-number")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Uniforms.DefaultPage())
	assert.Equal(t, 25, cfg.Uniforms.DefaultResult())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 8080, cfg.HTTP.Port, "un entero inválido conserva el valor por defecto")
}

func TestFromViper_PaginacionInvalida(t *testing.T) {
	v := viper.New()
	v.Set("UNIFORMS_DEFAULT_RESULT", "0")

	_, err := fromViper(v)
	assert.Error(t, err, "un tamaño de página 0 no puede usarse como divisor")

	v = viper.New()
	v.Set("UNIFORMS_DEFAULT_RESULT", "101")
	_, err = fromViper(v)
	assert.Error(t, err, "el tamaño por defecto respeta el mismo tope que count")

	v = viper.New()
	v.Set("UNIFORMS_DEFAULT_PAGE", "9223372036854775807")
	_, err = fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "uniforms", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/uniforms?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestFromViper_HTTPYDB(t *testing.T) {
	v := viper.New()
	v.Set("RATE_LIMIT_RPS", "2.5")
	v.Set("RATE_LIMIT_BURST", "5")
	v.Set("DB_FORCE_IPV4", "true")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 2.5, cfg.HTTP.RateLimitRPS)
	assert.Equal(t, 5, cfg.HTTP.RateLimitBurst)
	assert.True(t, cfg.DB.ForceIPv4)
	assert.Equal(t, "./migrations", cfg.DB.MigrationsPath)

	v.Set("RATE_LIMIT_RPS", "rápido")
	cfg, err = fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, float64(20), cfg.HTTP.RateLimitRPS)
}
