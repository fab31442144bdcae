package user

import (
	"encoding/json"
	"net/http"

	"github.com/saulo-duarte/quizzer/internal/config"
)

type Handler struct {
	service UserService
}

func NewHandler(s UserService) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid register request body")
		config.Error(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	resp, err := h.service.Register(r.Context(), dto)
	if err != nil {
		log.WithError(err).Warn("Registration failed")
		config.WriteError(w, err)
		return
	}

	config.JSON(w, http.StatusCreated, resp)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid login request body")
		config.Error(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	resp, err := h.service.Login(r.Context(), dto)
	if err != nil {
		log.WithError(err).Warn("Login failed")
		config.WriteError(w, err)
		return
	}

	config.JSON(w, http.StatusOK, resp)
}
