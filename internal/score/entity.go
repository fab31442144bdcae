package score

import (
	"time"

	"github.com/saulo-duarte/quizzer/internal/user"
)

// Score is one finished or timed-out quiz attempt. Rows are never updated.
type Score struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	User               user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Score              int       `gorm:"not null" json:"score"`
	TotalQuestions     int       `gorm:"not null" json:"total_questions"`
	AttemptedQuestions int       `gorm:"not null;default:0" json:"attempted_questions"`
	SkippedQuestions   int       `gorm:"not null;default:0" json:"skipped_questions"`
	TimeTaken          int       `gorm:"not null;default:0" json:"time_taken"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Score) TableName() string {
	return "user_scores"
}
