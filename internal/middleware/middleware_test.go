package middleware

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"okultedarik/internal/models"
)

type stubValidator map[string]models.Actor

func (s stubValidator) ValidateToken(token string) (models.Actor, error) {
	if a, ok := s[token]; ok {
		return a, nil
	}
	return models.Actor{}, errors.New("invalid token")
}

func newAuthApp() *fiber.App {
	tokens := stubValidator{
		"admin": {ID: "a1", Type: models.ActorAdmin},
		"mudur": {ID: "m1", Type: models.ActorMudur, SchoolID: "s1"},
	}
	app := fiber.New()
	app.Get("/admin", AuthRequired(tokens, zap.NewNop()), RequireType(models.ActorAdmin), func(c *fiber.Ctx) error {
		actor, _ := ActorFrom(c)
		return c.SendString(actor.ID)
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	app := newAuthApp()

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"bad format", "Token admin", fiber.StatusUnauthorized},
		{"invalid token", "Bearer nope", fiber.StatusUnauthorized},
		{"wrong type", "Bearer mudur", fiber.StatusForbidden},
		{"ok", "Bearer admin", fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(1, 2)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("2.2.2.2"))

	now = now.Add(time.Second)
	assert.True(t, l.Allow("1.1.1.1"))

	now = now.Add(time.Hour)
	l.Allow("3.3.3.3")
	l.mu.Lock()
	_, kept := l.limiters["2.2.2.2"]
	l.mu.Unlock()
	assert.False(t, kept)
}

func TestIPRateLimiter_SweepsOncePerIdleTTL(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	l.now = func() time.Time { return now }
	has := func(ip string) bool {
		l.mu.Lock()
		defer l.mu.Unlock()
		_, ok := l.limiters[ip]
		return ok
	}

	l.Allow("1.1.1.1")
	now = start.Add(20 * time.Minute)
	l.Allow("2.2.2.2")
	now = start.Add(31 * time.Minute)
	l.Allow("3.3.3.3")
	assert.False(t, has("1.1.1.1"))
	assert.True(t, has("2.2.2.2"))

	// 2.2.2.2 is idle past the TTL but the last sweep is too recent.
	now = start.Add(55 * time.Minute)
	l.Allow("4.4.4.4")
	assert.True(t, has("2.2.2.2"))

	now = start.Add(62 * time.Minute)
	l.Allow("5.5.5.5")
	assert.False(t, has("2.2.2.2"))
	assert.True(t, has("4.4.4.4"))
}

func TestIPRateLimiter_Handler(t *testing.T) {
	l := NewIPRateLimiter(0.001, 1)
	app := fiber.New()
	app.Post("/login", l.Handler(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest("POST", "/login", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/login", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
