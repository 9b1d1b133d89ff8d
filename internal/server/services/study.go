package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/studymate/internal/common"
	"github.com/dmitrijs2005/studymate/internal/logging"
	"github.com/dmitrijs2005/studymate/internal/server/generation"
	"github.com/dmitrijs2005/studymate/internal/server/models"
)

const (
	DefaultLevel      = "High School (Detailed)"
	DefaultQuizCount  = 5
	FlashcardCount    = 5
	summaryInputRunes = 50
)

// StudyService validates study requests, calls the generator and records
// successful results in the caller's history. An empty username skips the
// history step.
type StudyService struct {
	accounts  *AccountService
	generator generation.Generator
	decoder   generation.ListDecoder
	logger    logging.Logger
}

func NewStudyService(acc *AccountService, g generation.Generator, d generation.ListDecoder, logger logging.Logger) *StudyService {
	if logger == nil {
		logger = logging.Nop()
	}
	if d == nil {
		d = generation.DecoderFor(g.Name())
	}
	return &StudyService{accounts: acc, generator: g, decoder: d, logger: logger}
}

// ValidationError is a rejected request. Its text is meant for the client.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return common.ErrorValidation }

func validation(msg string) error {
	return &ValidationError{Msg: msg}
}

// Explain returns a markdown explanation of topic. A nil level becomes
// DefaultLevel; an explicit empty level is used as given.
func (s *StudyService) Explain(ctx context.Context, username, subject, topic string, level *string) (string, error) {
	if subject == "" || topic == "" {
		return "", validation("Subject and topic are required")
	}
	lvl := DefaultLevel
	if level != nil {
		lvl = *level
	}

	text, err := s.generate(ctx, explainPrompt(subject, topic, lvl), generation.FormatText)
	if err != nil {
		return "", err
	}

	s.accounts.AppendHistory(ctx, username, models.ActivityExplain, fmt.Sprintf("%s (%s)", topic, lvl), text)
	return text, nil
}

// Summarize condenses notes into bullet points.
func (s *StudyService) Summarize(ctx context.Context, username, notes string) (string, error) {
	if notes == "" {
		return "", validation("Notes are required")
	}

	text, err := s.generate(ctx, summarizePrompt(notes), generation.FormatText)
	if err != nil {
		return "", err
	}

	s.accounts.AppendHistory(ctx, username, models.ActivitySummarize, summaryInput(notes), text)
	return text, nil
}

// Quiz builds a multiple-choice quiz. count <= 0 becomes DefaultQuizCount.
// The items are returned and stored exactly as the model produced them.
func (s *StudyService) Quiz(ctx context.Context, username, topic string, count int) (json.RawMessage, error) {
	if topic == "" {
		return nil, validation("Topic is required")
	}
	if count <= 0 {
		count = DefaultQuizCount
	}

	quiz, err := s.generateList(ctx, quizPrompt(topic, count), "quiz")
	if err != nil {
		return nil, err
	}

	s.accounts.AppendHistory(ctx, username, models.ActivityQuiz, topic, quiz)
	return quiz, nil
}

// Flashcards builds FlashcardCount question/answer cards.
func (s *StudyService) Flashcards(ctx context.Context, username, topic string) (json.RawMessage, error) {
	if topic == "" {
		return nil, validation("Topic is required")
	}

	cards, err := s.generateList(ctx, flashcardsPrompt(topic), "flashcards")
	if err != nil {
		return nil, err
	}

	s.accounts.AppendHistory(ctx, username, models.ActivityFlashcards, topic, cards)
	return cards, nil
}

func (s *StudyService) generate(ctx context.Context, prompt string, format generation.Format) (string, error) {
	text, err := s.generator.Generate(ctx, prompt, format)
	if err != nil {
		s.logger.Error(ctx, "generation failed", "backend", s.generator.Name(), "error", err)
		return "", fmt.Errorf("%w: %w", common.ErrorGeneration, err)
	}
	return text, nil
}

// generateList returns the list under key without reshaping its items.
func (s *StudyService) generateList(ctx context.Context, prompt, key string) (json.RawMessage, error) {
	text, err := s.generate(ctx, prompt, generation.FormatJSON)
	if err != nil {
		return nil, err
	}

	raw, err := s.decoder.DecodeList(text, key)
	if err != nil {
		s.logger.Warn(ctx, "unusable generation result", "backend", s.generator.Name(), "key", key, "error", err)
		return nil, err
	}
	return raw, nil
}

// summaryInput is the history echo of summarized notes: the first 50 runes
// followed by "...", whatever the length.
func summaryInput(notes string) string {
	return common.Truncate(notes, summaryInputRunes, "") + "..."
}
