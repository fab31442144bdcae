package question

type CreateQuestionDTO struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correct_answer"`
	TimeLimit     *int     `json:"time_limit"`
}

type CreateQuestionResponse struct {
	Message    string `json:"message"`
	QuestionID uint   `json:"questionId"`
}
