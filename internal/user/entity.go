package user

import "time"

const (
	usernameIndex = "idx_users_username"
	emailIndex    = "idx_users_email"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_username" json:"username"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	IsAdmin   bool      `gorm:"column:is_admin;not null;default:false" json:"isAdmin"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
