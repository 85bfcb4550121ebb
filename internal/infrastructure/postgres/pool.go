package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/uniforms-api/pkg/config"
	"github.com/rs/zerolog"
)

// Límites del pool. El módulo de uniformes es de baja concurrencia.
const (
	poolMaxConns        = 10
	poolMinConns        = 1
	poolMaxConnLifetime = time.Hour
	poolMaxConnIdleTime = 15 * time.Minute
)

// NewPool crea un pool de conexiones PostgreSQL usando la configuración de la app y verifica la
// conexión con Ping. Con DB_FORCE_IPV4 el host se resuelve a IPv4 antes de conectar.
func NewPool(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*pgxpool.Pool, error) {
	dsn := cfg.ConnectionString()
	if cfg.ForceIPv4 {
		dsn = withIPv4Host(dsn, log)
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	poolConfig.MaxConns = poolMaxConns
	poolConfig.MinConns = poolMinConns
	poolConfig.MaxConnLifetime = poolMaxConnLifetime
	poolConfig.MaxConnIdleTime = poolMaxConnIdleTime
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	log.Info().
		Str("host", poolConfig.ConnConfig.Host).
		Str("database", poolConfig.ConnConfig.Database).
		Int32("max_conns", poolConfig.MaxConns).
		Msg("pool PostgreSQL listo")
	return pool, nil
}

// withIPv4Host reemplaza el hostname del DSN por su IPv4. Si no resuelve, devuelve el DSN sin cambios.
func withIPv4Host(dsn string, log zerolog.Logger) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Hostname() == "" {
		return dsn
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	ip, err := lookupIPv4(u.Hostname())
	if err != nil {
		log.Warn().Err(err).Str("host", u.Hostname()).Msg("sin IPv4 para el host de la DB")
		return dsn
	}
	u.Host = net.JoinHostPort(ip, port)
	return u.String()
}

func lookupIPv4(host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() != nil {
			return host, nil
		}
		return "", fmt.Errorf("%s es IPv6", host)
	}
	ips, err := net.DefaultResolver.LookupIP(context.Background(), "ip4", host)
	if err != nil {
		return "", err
	}
	if len(ips) == 0 {
		return "", fmt.Errorf("no hay IPv4 para %s", host)
	}
	return ips[0].String(), nil
}
