package question

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/saulo-duarte/quizzer/internal/apperror"
	"github.com/saulo-duarte/quizzer/internal/auth"
	"github.com/saulo-duarte/quizzer/internal/config"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

type QuestionService interface {
	ListQuestions(ctx context.Context) ([]*Question, error)
	CreateQuestion(ctx context.Context, caller auth.Identity, dto CreateQuestionDTO) (*Question, error)
}

type questionService struct {
	repo QuestionRepository
}

func NewService(repo QuestionRepository) QuestionService {
	return &questionService{repo: repo}
}

func (s *questionService) ListQuestions(ctx context.Context) ([]*Question, error) {
	questions, err := s.repo.List(ctx)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list questions")
		return nil, apperror.Store("Failed to fetch questions", err)
	}
	if questions == nil {
		questions = []*Question{}
	}
	return questions, nil
}

// CreateQuestion checks the payload before the caller's role, so a malformed
// request from a non-admin is still reported as malformed.
func (s *questionService) CreateQuestion(ctx context.Context, caller auth.Identity, dto CreateQuestionDTO) (*Question, error) {
	log := config.WithContext(ctx)

	if err := validateCreate(dto); err != nil {
		return nil, err
	}
	if !caller.IsAdmin {
		log.WithField("user_id", caller.ID).Warn("Non-admin tried to add a question")
		return nil, apperror.Forbidden("Only admins can add questions")
	}

	options, err := json.Marshal(dto.Options)
	if err != nil {
		return nil, apperror.Validation("Invalid question format", err.Error())
	}

	q := &Question{
		Text:          dto.Question,
		Options:       datatypes.JSON(options),
		CorrectAnswer: *dto.CorrectAnswer,
		TimeLimit:     dto.TimeLimit,
		CreatedBy:     caller.ID,
	}
	if err := s.repo.Create(ctx, q); err != nil {
		log.WithError(err).Error("Failed to add question")
		return nil, apperror.Store("Failed to add question", err)
	}

	log.WithFields(logrus.Fields{
		"question_id": q.ID,
		"time_limit":  q.TimeLimit,
	}).Info("Question added")
	return q, nil
}

func validateCreate(dto CreateQuestionDTO) error {
	if strings.TrimSpace(dto.Question) == "" || len(dto.Options) != OptionCount {
		return apperror.Validation("Invalid question format", "Question must have text and exactly 4 options")
	}
	if dto.CorrectAnswer == nil || *dto.CorrectAnswer < 0 || *dto.CorrectAnswer > MaxCorrectAnswer {
		return apperror.Validation("Invalid correct answer", "Correct answer must be a number between 0 and 3")
	}
	if dto.TimeLimit != nil && *dto.TimeLimit <= 0 {
		return apperror.Validation("Invalid time limit", "Time limit must be a positive number of seconds")
	}
	return nil
}
