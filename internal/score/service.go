package score

import (
	"context"

	"github.com/saulo-duarte/quizzer/internal/apperror"
	"github.com/saulo-duarte/quizzer/internal/config"
)

type ScoreService interface {
	Create(ctx context.Context, userID uint, dto CreateScoreDTO) (*Score, error)
	ListByUser(ctx context.Context, userID uint) ([]*Score, error)
}

type scoreService struct {
	repo ScoreRepository
}

func NewService(repo ScoreRepository) ScoreService {
	return &scoreService{repo: repo}
}

func (s *scoreService) Create(ctx context.Context, userID uint, dto CreateScoreDTO) (*Score, error) {
	log := config.WithContext(ctx)

	if err := config.Validator().Struct(dto); err != nil {
		return nil, apperror.Validation("Invalid score", err.Error())
	}

	record := &Score{
		UserID:             userID,
		Score:              dto.Score,
		TotalQuestions:     dto.TotalQuestions,
		AttemptedQuestions: dto.AttemptedQuestions,
		SkippedQuestions:   dto.SkippedQuestions,
		TimeTaken:          dto.TimeTaken,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		log.WithError(err).Error("Failed to save score")
		return nil, apperror.Store("Failed to save score", err)
	}

	log.WithField("user_id", userID).Infof("Score saved: %d/%d", record.Score, record.TotalQuestions)
	return record, nil
}

func (s *scoreService) ListByUser(ctx context.Context, userID uint) ([]*Score, error) {
	scores, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list scores")
		return nil, apperror.Store("Failed to fetch scores", err)
	}
	if scores == nil {
		scores = []*Score{}
	}
	return scores, nil
}
