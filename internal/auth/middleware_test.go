package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/saulo-duarte/quizzer/internal/auth"
)

func newValidateServer() http.Handler {
	return auth.AuthMiddleware(http.HandlerFunc(auth.NewHandler().ValidateToken))
}

func TestAuthMiddleware(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	auth.Init()
	handler := newValidateServer()

	t.Run("MissingToken", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/validate-token", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("InvalidToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/validate-token", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		token, _ := auth.GenerateJWT(testIdentity, -time.Second)
		req := httptest.NewRequest(http.MethodGet, "/api/validate-token", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("ValidToken", func(t *testing.T) {
		token, err := auth.GenerateJWT(testIdentity, time.Minute)
		if err != nil {
			t.Fatalf("GenerateJWT failed: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/api/validate-token", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var body auth.ValidateTokenResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !body.Valid || body.User != testIdentity {
			t.Errorf("unexpected body %+v", body)
		}
	})
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"Bearer abc":    "abc",
		"bearer abc":    "abc",
		"Basic abc":     "",
		"Bearer":        "",
		"Bearer a b":    "",
		"  Bearer  abc": "abc",
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		if got := auth.BearerToken(req); got != want {
			t.Errorf("header %q: expected %q, got %q", header, want, got)
		}
	}
}
