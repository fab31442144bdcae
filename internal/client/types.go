package client

import (
	"encoding/json"
	"time"
)

type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

type AuthResult struct {
	Message string `json:"message,omitempty"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

type Question struct {
	ID            uint     `json:"id"`
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	TimeLimit     *int     `json:"time_limit"`
	CreatedBy     uint     `json:"created_by"`
}

// rawQuestion defers decoding of options so one malformed row does not fail the listing.
type rawQuestion struct {
	ID            uint            `json:"id"`
	Text          string          `json:"question"`
	Options       json.RawMessage `json:"options"`
	CorrectAnswer int             `json:"correct_answer"`
	TimeLimit     *int            `json:"time_limit"`
	CreatedBy     uint            `json:"created_by"`
}

type NewQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	TimeLimit     *int     `json:"time_limit,omitempty"`
}

type ScoreSubmission struct {
	Score              int `json:"score"`
	TotalQuestions     int `json:"totalQuestions"`
	AttemptedQuestions int `json:"attemptedQuestions"`
	SkippedQuestions   int `json:"skippedQuestions"`
	TimeTaken          int `json:"timeTaken"`
}

type ScoreEntry struct {
	ID                 uint      `json:"id"`
	Score              int       `json:"score"`
	TotalQuestions     int       `json:"total_questions"`
	AttemptedQuestions int       `json:"attempted_questions"`
	SkippedQuestions   int       `json:"skipped_questions"`
	TimeTaken          int       `json:"time_taken"`
	CreatedAt          time.Time `json:"created_at"`
}

type messageResponse struct {
	Message    string `json:"message"`
	QuestionID uint   `json:"questionId,omitempty"`
}

type validateResponse struct {
	Valid bool `json:"valid"`
	User  User `json:"user"`
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
