package score

import (
	"encoding/json"
	"net/http"

	"github.com/saulo-duarte/quizzer/internal/auth"
	"github.com/saulo-duarte/quizzer/internal/config"
)

type Handler struct {
	service ScoreService
}

func NewHandler(s ScoreService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		config.Error(w, http.StatusUnauthorized, "Access denied", "")
		return
	}

	var dto CreateScoreDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid score request body")
		config.Error(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	if _, err := h.service.Create(r.Context(), claims.UserID, dto); err != nil {
		config.WriteError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, map[string]string{
		"message": "Score saved successfully",
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "Access denied", "")
		return
	}

	scores, err := h.service.ListByUser(r.Context(), claims.UserID)
	if err != nil {
		config.WriteError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, scores)
}
