package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/quizzer/internal/auth"
	_ "github.com/saulo-duarte/quizzer/internal/docs"
	"github.com/saulo-duarte/quizzer/internal/health"
	"github.com/saulo-duarte/quizzer/internal/middlewares"
	"github.com/saulo-duarte/quizzer/internal/question"
	"github.com/saulo-duarte/quizzer/internal/score"
	"github.com/saulo-duarte/quizzer/internal/user"
)

type RouterConfig struct {
	UserHandler     *user.Handler
	AuthHandler     *auth.Handler
	QuestionHandler *question.Handler
	ScoreHandler    *score.Handler
	HealthHandler   *health.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/check", cfg.HealthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", cfg.UserHandler.Register)
		r.Post("/login", cfg.UserHandler.Login)

		r.With(auth.AuthMiddleware).Get("/validate-token", cfg.AuthHandler.ValidateToken)

		r.Mount("/questions", question.Routes(cfg.QuestionHandler))
		r.Mount("/scores", score.Routes(cfg.ScoreHandler))
	})
	return r
}
