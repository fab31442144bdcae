package auth

import (
	"net/http"

	"github.com/saulo-duarte/quizzer/internal/config"
)

type ValidateTokenResponse struct {
	Valid bool     `json:"valid"`
	User  Identity `json:"user"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// ValidateToken echoes the identity decoded by AuthMiddleware.
func (h *Handler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	claims, err := GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "Access denied", "")
		return
	}

	config.JSON(w, http.StatusOK, ValidateTokenResponse{
		Valid: true,
		User:  claims.Identity(),
	})
}
