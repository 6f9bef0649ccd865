package serverutils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "unit-test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return signed
}

func protectedApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/me", JwtMiddleware(secret), func(ctx *fiber.Ctx) error {
		return ctx.SendString(ctx.Locals("user_id").(string))
	})
	return app
}

func TestJwtMiddlewareAcceptsValidToken(t *testing.T) {
	app := protectedApp(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "7f9c24e8-3b2a-4f10-9d55-111111111111",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
}

func TestJwtMiddlewareRejectsBadCredentials(t *testing.T) {
	app := protectedApp(testSecret)

	cases := []struct {
		name  string
		token string
	}{
		{name: "missing header", token: ""},
		{
			name: "wrong secret",
			token: signToken(t, "another-secret", jwt.MapClaims{
				"user_id": "7f9c24e8-3b2a-4f10-9d55-111111111111",
				"exp":     time.Now().Add(time.Hour).Unix(),
			}),
		},
		{
			name: "missing user_id claim",
			token: signToken(t, testSecret, jwt.MapClaims{
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
		},
		{
			name: "expired token",
			token: signToken(t, testSecret, jwt.MapClaims{
				"user_id": "7f9c24e8-3b2a-4f10-9d55-111111111111",
				"exp":     time.Now().Add(-time.Hour).Unix(),
			}),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != http.StatusUnauthorized {
				t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
			}
		})
	}
}
