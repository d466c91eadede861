package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sankalan-edu/campus-service/internal/events"
	"github.com/sankalan-edu/campus-service/internal/inference"
	"github.com/sankalan-edu/campus-service/internal/models"
	"github.com/sankalan-edu/campus-service/internal/validator"
)

// maxQuizContextChars caps the study context sent to the inference backend.
// Longer context is truncated, never rejected.
const maxQuizContextChars = 15000

const defaultQuestionCount = 3

const quizSystemPrompt = `You are a university exam question writer. ` +
	`Respond with a JSON array only, no prose. Each element must have the keys ` +
	`"question" (string), "options" (array of exactly 4 strings), ` +
	`"correct_index" (integer 0-3) and "explanation" (string).`

type quizService struct {
	client    *inference.Client
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewQuizService(client *inference.Client, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) QuizService {
	return &quizService{
		client:    client,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

// Generate produces a quiz for the topic. Any failure along the inference
// path, from transport to malformed output, degrades to the fixed fallback
// quiz instead of an error: the feature must always return something usable.
func (s *quizService) Generate(ctx context.Context, userID string, req *QuizGenerateRequest) (*models.Quiz, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationFailure(errs.Error())
	}

	count := req.QuestionCount
	if count <= 0 {
		count = defaultQuestionCount
	}

	questions, err := s.generateQuestions(ctx, req, count)
	if err != nil {
		s.logger.Warn("quiz generation failed, serving fallback",
			"error", err,
			"topic", req.Topic,
			"user_id", userID)
		s.publish(ctx, events.TypeQuizFallbackUsed, userID, map[string]string{"topic": req.Topic})

		return &models.Quiz{
			Topic:       req.Topic,
			Difficulty:  req.Difficulty,
			Questions:   fallbackQuestions(),
			Fallback:    true,
			GeneratedAt: time.Now().UTC(),
		}, nil
	}

	s.publish(ctx, events.TypeQuizGenerated, userID, map[string]string{
		"topic":      req.Topic,
		"difficulty": string(req.Difficulty),
	})

	return &models.Quiz{
		Topic:       req.Topic,
		Difficulty:  req.Difficulty,
		Questions:   questions,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func (s *quizService) generateQuestions(ctx context.Context, req *QuizGenerateRequest, count int) ([]models.QuizQuestion, error) {
	prompt := buildQuizPrompt(req, count)

	raw, err := s.client.Complete(ctx, quizSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	questions, err := parseQuizResponse(raw)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("inference returned no questions")
	}
	if len(questions) > count {
		questions = questions[:count]
	}

	return questions, nil
}

func buildQuizPrompt(req *QuizGenerateRequest, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write %d multiple-choice questions about %q at %s difficulty.", count, req.Topic, req.Difficulty)

	if req.Context != "" {
		studyContext := req.Context
		if len(studyContext) > maxQuizContextChars {
			studyContext = studyContext[:maxQuizContextChars]
		}
		b.WriteString("\n\nBase the questions on this study material:\n")
		b.WriteString(studyContext)
	}

	return b.String()
}

// parseQuizResponse extracts the JSON array from the completion text. Models
// often wrap the payload in markdown fences or prose, so the parser scans
// for the outermost array.
func parseQuizResponse(raw string) ([]models.QuizQuestion, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in inference output")
	}

	var questions []models.QuizQuestion
	if err := json.Unmarshal([]byte(raw[start:end+1]), &questions); err != nil {
		return nil, fmt.Errorf("failed to parse inference output: %w", err)
	}

	for i, q := range questions {
		if q.Text == "" || len(q.Options) != 4 || q.CorrectIndex < 0 || q.CorrectIndex > 3 {
			return nil, fmt.Errorf("question %d is malformed", i)
		}
	}

	return questions, nil
}

// fallbackQuestions is the fixed three-question set served whenever
// generation fails. Content is intentionally generic study-skills material.
func fallbackQuestions() []models.QuizQuestion {
	return []models.QuizQuestion{
		{
			Text:         "Which study technique involves recalling material from memory rather than re-reading it?",
			Options:      []string{"Active recall", "Highlighting", "Skimming", "Transcribing"},
			CorrectIndex: 0,
			Explanation:  "Active recall strengthens memory by forcing retrieval instead of passive review.",
		},
		{
			Text:         "What does the pomodoro technique alternate between?",
			Options:      []string{"Reading and writing", "Focus intervals and short breaks", "Group and solo study", "Easy and hard topics"},
			CorrectIndex: 1,
			Explanation:  "Pomodoro cycles fixed focus intervals with short breaks to sustain attention.",
		},
		{
			Text:         "Spacing reviews over several days instead of one long session is known as what?",
			Options:      []string{"Cramming", "Chunking", "Spaced repetition", "Interleaving"},
			CorrectIndex: 2,
			Explanation:  "Spaced repetition schedules reviews at growing intervals to slow forgetting.",
		},
	}
}

func (s *quizService) publish(ctx context.Context, eventType, userID string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, userID, data)); err != nil {
		s.logger.Warn("failed to publish quiz event", "error", err, "type", eventType)
	}
}
