package user

import "github.com/saulo-duarte/quizzer/internal/auth"

type RegisterDTO struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email" validate:"required,email,max=255"`
}

type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Message string        `json:"message,omitempty"`
	Token   string        `json:"token"`
	User    auth.Identity `json:"user"`
}
