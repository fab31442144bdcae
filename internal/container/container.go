package container

import (
	"context"
	"fmt"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/saulo-duarte/quizzer/internal/auth"
	"github.com/saulo-duarte/quizzer/internal/config"
	"github.com/saulo-duarte/quizzer/internal/health"
	"github.com/saulo-duarte/quizzer/internal/question"
	"github.com/saulo-duarte/quizzer/internal/router"
	"github.com/saulo-duarte/quizzer/internal/score"
	"github.com/saulo-duarte/quizzer/internal/user"
)

type Container struct {
	UserContainer     *user.UserContainer
	QuestionContainer *question.QuestionContainer
	ScoreContainer    *score.ScoreContainer
	AuthHandler       *auth.Handler
	HealthHandler     *health.Handler
}

func New(ctx context.Context) *Container {
	config.Init()
	auth.Init()

	if err := config.Connect(ctx, config.DSN()); err != nil {
		config.Log.Fatalf("failed to connect to DB: %v", err)
	}
	if err := Migrate(config.DB); err != nil {
		config.Log.Fatalf("failed to migrate DB: %v", err)
	}

	c, err := Build(config.DB)
	if err != nil {
		config.Log.Fatalf("failed to build container: %v", err)
	}
	return c
}

// Build wires every feature container around db.
func Build(db *gorm.DB) (*Container, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql handle: %w", err)
	}

	return &Container{
		UserContainer:     user.NewUserContainer(db),
		QuestionContainer: question.NewQuestionContainer(db),
		ScoreContainer:    score.NewScoreContainer(db),
		AuthHandler:       auth.NewHandler(),
		HealthHandler:     health.NewHandler(sqlDB, config.DatabaseName()),
	}, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&user.User{}, &question.Question{}, &score.Score{})
}

func (c *Container) Router() *chi.Mux {
	return router.New(router.RouterConfig{
		UserHandler:     c.UserContainer.Handler,
		AuthHandler:     c.AuthHandler,
		QuestionHandler: c.QuestionContainer.Handler,
		ScoreHandler:    c.ScoreContainer.Handler,
		HealthHandler:   c.HealthHandler,
	})
}
