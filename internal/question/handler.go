package question

import (
	"encoding/json"
	"net/http"

	"github.com/saulo-duarte/quizzer/internal/auth"
	"github.com/saulo-duarte/quizzer/internal/config"
)

type Handler struct {
	service QuestionService
}

func NewHandler(s QuestionService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.service.ListQuestions(r.Context())
	if err != nil {
		config.WriteError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, questions)
}

func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		config.Error(w, http.StatusUnauthorized, "Access denied", "")
		return
	}

	var dto CreateQuestionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid question request body")
		config.Error(w, http.StatusBadRequest, "Invalid question format", err.Error())
		return
	}

	q, err := h.service.CreateQuestion(r.Context(), claims.Identity(), dto)
	if err != nil {
		config.WriteError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, CreateQuestionResponse{
		Message:    "Question added successfully",
		QuestionID: q.ID,
	})
}
