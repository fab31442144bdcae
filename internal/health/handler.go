package health

import (
	"context"
	"net/http"
	"time"

	"github.com/saulo-duarte/quizzer/internal/config"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type CheckResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Handler struct {
	db       Pinger
	database string
	now      func() time.Time
}

func NewHandler(db Pinger, database string) *Handler {
	return &Handler{db: db, database: database, now: time.Now}
}

// Check pings the database and reports the result without authentication.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	timestamp := h.now().UTC().Format(time.RFC3339Nano)
	if err := h.db.PingContext(ctx); err != nil {
		config.WithContext(r.Context()).WithError(err).Error("Database connection error")
		config.JSON(w, http.StatusInternalServerError, CheckResponse{
			Status:    "error",
			Message:   "Database connection failed",
			Error:     err.Error(),
			Timestamp: timestamp,
		})
		return
	}

	config.JSON(w, http.StatusOK, CheckResponse{
		Status:    "success",
		Message:   "Database connection is active",
		Timestamp: timestamp,
		Database:  h.database,
	})
}
