package http

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/uniforms-api/internal/application/dto"
	"golang.org/x/time/rate"
)

// clientTTL tiempo sin requests tras el cual se descarta el limiter de una IP.
const clientTTL = 10 * time.Minute

type rateClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter token bucket por IP de cliente.
type IPRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateClient
	rps     rate.Limit
	burst   int
	now     func() time.Time
}

// NewIPRateLimiter crea el limiter. rps <= 0 lo deshabilita (Handler deja pasar todo).
func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &IPRateLimiter{
		clients: make(map[string]*rateClient),
		rps:     rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

func (l *IPRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.clients[ip]
	if !ok {
		c = &rateClient{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = l.now()
	return c.limiter.AllowN(c.lastSeen, 1)
}

// Cleanup descarta periódicamente las IPs inactivas hasta que ctx termine.
func (l *IPRateLimiter) Cleanup(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evict()
		case <-ctx.Done():
			return
		}
	}
}

func (l *IPRateLimiter) evict() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, c := range l.clients {
		if l.now().Sub(c.lastSeen) > clientTTL {
			delete(l.clients, ip)
		}
	}
}

// Handler responde 429 TOO_MANY_REQUESTS cuando la IP agota su cupo.
func (l *IPRateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if l.rps <= 0 {
			return c.Next()
		}
		if !l.allow(c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "TOO_MANY_REQUESTS", Message: "demasiadas solicitudes"})
		}
		return c.Next()
	}
}
