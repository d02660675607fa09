package middleware_test

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"katalog/internal/auth"
	"katalog/internal/middleware"
	"katalog/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// stubValidator accepts the tokens it knows about.
type stubValidator map[string]*auth.Identity

func (s stubValidator) ValidateToken(token string) (*auth.Identity, error) {
	if identity, ok := s[token]; ok {
		return identity, nil
	}
	return nil, errors.New("invalid token")
}

func setupApp() *fiber.App {
	validator := stubValidator{
		"admin-token": {UserID: 1, Username: "admin", Role: models.RoleAdmin},
		"user-token":  {UserID: 2, Username: "alice", Role: models.RoleUser},
	}
	app := fiber.New()
	app.Use(middleware.Authenticate(validator))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		identity := middleware.IdentityFrom(c)
		if identity == nil {
			return c.SendString("guest")
		}
		return c.SendString(identity.Username)
	})
	app.Post("/admin", middleware.RequireCapability(auth.CapabilityAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/private", middleware.AuthRequired(validator), func(c *fiber.Ctx) error {
		return c.SendString(middleware.IdentityFrom(c).Username)
	})
	app.Delete("/guarded", append(middleware.Guard(validator, auth.CapabilityAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})...)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, token string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestAuthenticate(t *testing.T) {
	app := setupApp()

	resp, body := do(t, app, http.MethodGet, "/whoami", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "guest", body)

	resp, body = do(t, app, http.MethodGet, "/whoami", "Bearer user-token")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", body)

	resp, body = do(t, app, http.MethodGet, "/whoami", "Bearer forged")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "guest", body, "an unusable token leaves the caller a guest")

	resp, body = do(t, app, http.MethodGet, "/whoami", "Token user-token")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "guest", body)
}

func TestRequireCapability(t *testing.T) {
	app := setupApp()

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"guest", "", http.StatusUnauthorized},
		{"forged token", "Bearer forged", http.StatusUnauthorized},
		{"regular user", "Bearer user-token", http.StatusForbidden},
		{"admin", "Bearer admin-token", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := do(t, app, http.MethodPost, "/admin", tt.token)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAuthRequired(t *testing.T) {
	app := setupApp()

	resp, body := do(t, app, http.MethodGet, "/private", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Authorization header is required")

	resp, body = do(t, app, http.MethodGet, "/private", "Bearer forged")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	assert.Equal(t, "error", envelope["status"])
	assert.Equal(t, "Invalid or expired token", envelope["message"])

	resp, body = do(t, app, http.MethodGet, "/private", "Token admin-token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Bearer <token>")

	resp, body = do(t, app, http.MethodGet, "/private", "Bearer admin-token")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin", body)
}

func TestGuard(t *testing.T) {
	app := setupApp()

	tests := []struct {
		name    string
		token   string
		status  int
		message string
	}{
		{"guest", "", http.StatusUnauthorized, "Authorization header is required"},
		{"forged token", "Bearer forged", http.StatusUnauthorized, "Invalid or expired token"},
		{"regular user", "Bearer user-token", http.StatusForbidden, "This action is unauthorized."},
		{"admin", "Bearer admin-token", http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, app, http.MethodDelete, "/guarded", tt.token)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.message != "" {
				assert.Contains(t, body, tt.message)
			}
		})
	}
}
