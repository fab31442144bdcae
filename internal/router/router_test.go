package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/saulo-duarte/quizzer/internal/auth"
	"github.com/saulo-duarte/quizzer/internal/health"
	"github.com/saulo-duarte/quizzer/internal/question"
	"github.com/saulo-duarte/quizzer/internal/router"
	"github.com/saulo-duarte/quizzer/internal/score"
	"github.com/saulo-duarte/quizzer/internal/user"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	os.Setenv("JWT_SECRET", "router-test-secret")
	auth.Init()

	return router.New(router.RouterConfig{
		UserHandler:     user.NewHandler(nil),
		AuthHandler:     auth.NewHandler(),
		QuestionHandler: question.NewHandler(nil),
		ScoreHandler:    score.NewHandler(nil),
		HealthHandler:   health.NewHandler(okPinger{}, "quiz_app"),
	})
}

func TestRoutes(t *testing.T) {
	h := newTestRouter(t)

	t.Run("HealthIsPublic", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/check", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("ProtectedRoutesRequireToken", func(t *testing.T) {
		for _, tc := range []struct{ method, path string }{
			{http.MethodGet, "/api/validate-token"},
			{http.MethodGet, "/api/questions"},
			{http.MethodPost, "/api/questions"},
			{http.MethodGet, "/api/scores"},
			{http.MethodPost, "/api/scores"},
		} {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, strings.NewReader("{}")))
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("%s %s status = %d, want 401", tc.method, tc.path, rec.Code)
			}
		}
	})

	t.Run("ValidateToken", func(t *testing.T) {
		token, err := auth.GenerateJWT(auth.Identity{ID: 3, Username: "carol"}, auth.TokenTTL)
		if err != nil {
			t.Fatalf("GenerateJWT: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/validate-token", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var body auth.ValidateTokenResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !body.Valid || body.User.ID != 3 || body.User.Username != "carol" || body.User.IsAdmin {
			t.Errorf("unexpected body %+v", body)
		}
	})

	t.Run("BadTokenIsForbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/questions", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})

	t.Run("Preflight", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/login", nil))
		if rec.Code != http.StatusNoContent {
			t.Errorf("status = %d, want 204", rec.Code)
		}
	})

	t.Run("SwaggerDoc", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "/api/validate-token") {
			t.Errorf("swagger doc does not describe the API")
		}
	})
}
