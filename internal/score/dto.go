package score

type CreateScoreDTO struct {
	Score              int `json:"score" validate:"gte=0,ltefield=TotalQuestions"`
	TotalQuestions     int `json:"totalQuestions" validate:"gte=0"`
	AttemptedQuestions int `json:"attemptedQuestions" validate:"gte=0,ltefield=TotalQuestions"`
	SkippedQuestions   int `json:"skippedQuestions" validate:"gte=0,ltefield=TotalQuestions"`
	TimeTaken          int `json:"timeTaken" validate:"gte=0"`
}
