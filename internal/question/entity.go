package question

import (
	"time"

	"github.com/saulo-duarte/quizzer/internal/user"
	"gorm.io/datatypes"
)

const (
	OptionCount      = 4
	MaxCorrectAnswer = OptionCount - 1
)

type Question struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Text          string         `gorm:"column:question;type:text;not null" json:"question"`
	Options       datatypes.JSON `gorm:"type:jsonb;not null" json:"options"`
	CorrectAnswer int            `gorm:"not null" json:"correct_answer"`
	TimeLimit     *int           `json:"time_limit"`
	CreatedBy     uint           `gorm:"not null;index" json:"created_by"`
	Creator       user.User      `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
}
