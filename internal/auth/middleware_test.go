package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-service/internal/domain"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

func newTestApp(tm *TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": domainErr.Code})
		},
	})

	middleware := NewAuthMiddleware(tm, NewTokenDenylist(nil))
	app.Get("/protected", middleware.Handle, RequireAuthenticated(), func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		return c.JSON(fiber.Map{"id": principal.ID, "role": principal.Role})
	})
	app.Get("/admin", middleware.Handle, RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() = %v, want nil", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestAuthMiddleware(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	app := newTestApp(tm)

	userToken, _, err := tm.GenerateToken("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken() = %v", err)
	}
	adminToken, _, err := tm.GenerateToken("admin-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("GenerateToken() = %v", err)
	}

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"missing header", "/protected", "", http.StatusUnauthorized},
		{"wrong scheme", "/protected", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "/protected", "Bearer garbage", http.StatusUnauthorized},
		{"valid user token", "/protected", "Bearer " + userToken, http.StatusOK},
		{"user on admin route", "/admin", "Bearer " + userToken, http.StatusForbidden},
		{"admin on admin route", "/admin", "Bearer " + adminToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := doRequest(t, app, tt.path, tt.header); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}
