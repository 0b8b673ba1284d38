package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sellinginfinity/services/ratelimit"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const secret = "test-secret"

func newTestApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return JsonResponse(c, fiber.StatusOK, true, "ok", fiber.Map{
			"userId": c.Locals("userId"),
			"email":  c.Locals("email"),
		})
	})
	app.Get("/", handlers...)
	return app
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func request(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestJWTMiddleware(t *testing.T) {
	app := newTestApp(JWTMiddleware(secret))

	token, err := GenerateJWT(secret, "user-1", "Admin@SellingInfinity.com")
	require.NoError(t, err)

	resp := request(t, app, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := decode(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, "user-1", data["userId"])
	assert.Equal(t, "admin@sellinginfinity.com", data["email"])

	resp = request(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, CodeUnauthorized, decode(t, resp)["code"])

	wrong, err := GenerateJWT("other-secret", "user-1", "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, request(t, app, wrong).StatusCode)
}

func TestJWTMiddlewareNumericUserID(t *testing.T) {
	app := newTestApp(JWTMiddleware(secret))
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": 42,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	resp := request(t, app, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "42", decode(t, resp)["data"].(map[string]interface{})["userId"])
}

func TestRequireAdmin(t *testing.T) {
	app := newTestApp(JWTMiddleware(secret), RequireAdmin([]string{"admin@sellinginfinity.com"}))

	admin, _ := GenerateJWT(secret, "1", "ADMIN@sellinginfinity.com")
	user, _ := GenerateJWT(secret, "2", "someone@example.com")

	assert.Equal(t, http.StatusOK, request(t, app, admin).StatusCode)

	resp := request(t, app, user)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, CodeForbidden, decode(t, resp)["code"])
}

type fakeLimiter struct {
	decision ratelimit.Decision
	err      error
}

func (f fakeLimiter) Allow(context.Context, string) (ratelimit.Decision, error) {
	return f.decision, f.err
}

func TestRateLimit(t *testing.T) {
	blocked := newTestApp(RateLimit(fakeLimiter{decision: ratelimit.Decision{Allowed: false, RetryAfter: 90 * time.Second}}, zap.NewNop()))
	resp := request(t, blocked, "")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "90", resp.Header.Get("Retry-After"))
	assert.Equal(t, CodeRateLimited, decode(t, resp)["code"])

	failing := newTestApp(RateLimit(fakeLimiter{err: errors.New("redis down")}, zap.NewNop()))
	assert.Equal(t, http.StatusOK, request(t, failing, "").StatusCode)

	disabled := newTestApp(RateLimit(nil, zap.NewNop()))
	assert.Equal(t, http.StatusOK, request(t, disabled, "").StatusCode)
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, CodeInternal, decode(t, resp)["code"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, CodeNotFound, decode(t, resp)["code"])
}
