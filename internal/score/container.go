package score

import "gorm.io/gorm"

type ScoreContainer struct {
	Handler *Handler
	Service ScoreService
}

func NewScoreContainer(db *gorm.DB) *ScoreContainer {
	repo := NewRepository(db)
	service := NewService(repo)
	handler := NewHandler(service)

	return &ScoreContainer{
		Handler: handler,
		Service: service,
	}
}
