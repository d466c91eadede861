package models

import "time"

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// QuizQuestion is one generated multiple-choice question. The shape is the
// strict contract expected from the inference boundary: four options, one
// correct index, an explanation.
type QuizQuestion struct {
	Text         string   `json:"question" validate:"required"`
	Options      []string `json:"options" validate:"required,len=4,dive,required"`
	CorrectIndex int      `json:"correct_index" validate:"min=0,max=3"`
	Explanation  string   `json:"explanation"`
}

// Quiz is a generated mock test. Quizzes are not persisted; each generation is
// a single-shot call with a fixed fallback on failure.
type Quiz struct {
	Topic      string          `json:"topic"`
	Difficulty DifficultyLevel `json:"difficulty"`
	Questions  []QuizQuestion  `json:"questions"`

	// Fallback is set when the inference call failed and the fixed question
	// set was substituted for this invocation.
	Fallback    bool      `json:"fallback"`
	GeneratedAt time.Time `json:"generated_at"`
}
