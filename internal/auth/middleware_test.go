package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"boteco-backend/internal/config"
	"boteco-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: strings.Repeat("s", 32)}
}

func newGuardedApp(cfg *config.Config, roles ...models.UserRole) *fiber.App {
	app := fiber.New()
	group := app.Group("", JWTMiddleware(cfg))
	if len(roles) > 0 {
		group.Use(RequireRole(roles...))
	}
	group.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func tokenFor(t *testing.T, cfg *config.Config, role models.UserRole) string {
	t.Helper()
	token, err := GenerateToken(cfg.JWTSecret, &models.User{
		ID:    1,
		Email: "admin@boteco.dev",
		Role:  role,
	})
	require.NoError(t, err)
	return token
}

func TestJWTMiddleware(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "sem header",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "formato errado",
			authHeader: "Token abc",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "token inválido",
			authHeader: "Bearer nao-e-um-jwt",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "token válido",
			authHeader: "Bearer " + tokenFor(t, cfg, models.RoleAdmin),
			wantStatus: fiber.StatusOK,
		},
	}

	app := newGuardedApp(cfg)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestJWTMiddleware_RejectsTokenFromOtherSecret(t *testing.T) {
	cfg := testConfig()
	other := &config.Config{JWTSecret: strings.Repeat("x", 32)}

	app := newGuardedApp(cfg)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, other, models.RoleAdmin))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	cfg := testConfig()
	app := newGuardedApp(cfg, models.RoleAdmin)

	tests := []struct {
		name       string
		role       models.UserRole
		wantStatus int
	}{
		{"admin passa", models.RoleAdmin, fiber.StatusOK},
		{"staff barrado", models.RoleStaff, fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("Authorization", "Bearer "+tokenFor(t, cfg, tt.role))

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
