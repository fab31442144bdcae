package user

import (
	"context"
	"errors"

	"github.com/saulo-duarte/quizzer/internal/apperror"
	"github.com/saulo-duarte/quizzer/internal/auth"
	"github.com/saulo-duarte/quizzer/internal/config"
)

const (
	msgUsernameTaken = "Username already exists"
	msgEmailTaken    = "Email already exists"
)

type UserService interface {
	Register(ctx context.Context, dto RegisterDTO) (*AuthResponse, error)
	Login(ctx context.Context, dto LoginDTO) (*AuthResponse, error)
}

type userService struct {
	repo UserRepository
}

func NewService(repo UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Register(ctx context.Context, dto RegisterDTO) (*AuthResponse, error) {
	log := config.WithContext(ctx)

	if err := config.Validator().Struct(dto); err != nil {
		return nil, apperror.Validation("Username, password and a valid email are required", err.Error())
	}

	existing, err := s.repo.GetByUsername(ctx, dto.Username)
	if err != nil {
		return nil, apperror.Store("Failed to register user", err)
	}
	if existing != nil {
		return nil, apperror.Conflict(msgUsernameTaken, nil)
	}

	existing, err = s.repo.GetByEmail(ctx, dto.Email)
	if err != nil {
		return nil, apperror.Store("Failed to register user", err)
	}
	if existing != nil {
		return nil, apperror.Conflict(msgEmailTaken, nil)
	}

	hash, err := auth.HashPassword(dto.Password)
	if err != nil {
		return nil, apperror.Store("Failed to hash password", err)
	}

	u := &User{
		Username: dto.Username,
		Email:    dto.Email,
		Password: hash,
		IsAdmin:  false,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		switch {
		case errors.Is(err, ErrDuplicateUsername):
			return nil, apperror.Conflict(msgUsernameTaken, err)
		case errors.Is(err, ErrDuplicateEmail):
			return nil, apperror.Conflict(msgEmailTaken, err)
		}
		return nil, apperror.Store("Failed to register user", err)
	}

	log.WithField("user_id", u.ID).Info("User registered")
	return s.issue(u, "User registered successfully")
}

// Login reports an unknown username and a wrong password as different errors.
func (s *userService) Login(ctx context.Context, dto LoginDTO) (*AuthResponse, error) {
	log := config.WithContext(ctx)

	if err := config.Validator().Struct(dto); err != nil {
		return nil, apperror.Validation("Username and password are required", "Both username and password must be provided")
	}

	u, err := s.repo.GetByUsername(ctx, dto.Username)
	if err != nil {
		return nil, apperror.Store("Database query failed", err)
	}
	if u == nil {
		log.WithField("username", dto.Username).Info("Login for unknown user")
		return nil, apperror.NotFound("User not found", "No user exists with this username")
	}

	ok, err := auth.CheckPassword(u.Password, dto.Password)
	if err != nil {
		return nil, apperror.Store("Error validating password", err)
	}
	if !ok {
		log.WithField("user_id", u.ID).Info("Login with invalid password")
		return nil, apperror.Validation("Invalid password", "The provided password is incorrect")
	}

	return s.issue(u, "")
}

func (s *userService) issue(u *User, message string) (*AuthResponse, error) {
	identity := auth.Identity{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
	token, err := auth.GenerateJWT(identity, auth.TokenTTL)
	if err != nil {
		return nil, &apperror.Error{Kind: apperror.KindUnknown, Message: "Error generating authentication token", Details: err.Error(), Err: err}
	}
	return &AuthResponse{Message: message, Token: token, User: identity}, nil
}
