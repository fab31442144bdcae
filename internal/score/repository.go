package score

import (
	"context"

	"gorm.io/gorm"
)

type ScoreRepository interface {
	Create(ctx context.Context, s *Score) error
	ListByUser(ctx context.Context, userID uint) ([]*Score, error)
}

type scoreRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) Create(ctx context.Context, s *Score) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *scoreRepository) ListByUser(ctx context.Context, userID uint) ([]*Score, error) {
	var scores []*Score
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}
