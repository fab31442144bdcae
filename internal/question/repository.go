package question

import (
	"context"

	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(ctx context.Context, q *Question) error
	List(ctx context.Context) ([]*Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, q *Question) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *questionRepository) List(ctx context.Context) ([]*Question, error) {
	var questions []*Question
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}
