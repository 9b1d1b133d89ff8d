package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/studymate/internal/client/api"
)

var levels = []string{
	"Elementary",
	"Middle School",
	"High School (Detailed)",
	"University",
	"Expert",
}

func (a *App) Explain(ctx context.Context) error {
	subject, err := GetSimpleText(a.reader, "Subject", a.out)
	if err != nil {
		return err
	}
	topic, err := GetSimpleText(a.reader, "Topic", a.out)
	if err != nil {
		return err
	}
	level, err := GetSimpleText(a.reader, "Level ("+strings.Join(levels, ", ")+"; empty for default)", a.out)
	if err != nil {
		return err
	}

	text, err := a.api.Explain(ctx, a.userName, subject, topic, level)
	if err != nil {
		reportError(err)
		return err
	}

	a.printMarkdown(text)
	return nil
}

func (a *App) Summarize(ctx context.Context) error {
	notes, err := GetMultiline(a.reader, "Paste your notes", a.out)
	if err != nil {
		return err
	}

	text, err := a.api.Summarize(ctx, a.userName, notes)
	if err != nil {
		reportError(err)
		return err
	}

	a.printMarkdown(text)
	return nil
}

func (a *App) Quiz(ctx context.Context) error {
	topic, err := GetSimpleText(a.reader, "Topic", a.out)
	if err != nil {
		return err
	}
	countText, err := GetSimpleText(a.reader, "Number of questions (empty for 5)", a.out)
	if err != nil {
		return err
	}

	count := 0
	if countText != "" {
		if count, err = strconv.Atoi(countText); err != nil || count <= 0 {
			printlnFn("Please enter a positive number")
			return fmt.Errorf("invalid count %q", countText)
		}
	}

	quiz, err := a.api.Quiz(ctx, a.userName, topic, count)
	if err != nil {
		reportError(err)
		return err
	}

	a.playQuiz(quiz)
	return nil
}

// playQuiz asks every question and reveals the answer after each guess.
func (a *App) playQuiz(quiz []api.QuizQuestion) {
	if len(quiz) == 0 {
		printlnFn("The quiz came back empty, try another topic")
		return
	}

	correct := 0
	for i, q := range quiz {
		a.printMarkdown(quizQuestionMarkdown(i, q))
		guess, err := GetSimpleText(a.reader, "Your answer (letter or text, empty to reveal)", a.out)
		if err != nil {
			return
		}
		if answerMatches(q, guess) {
			correct++
			printlnFn("Correct!")
		} else {
			printlnFn("Answer:", q.Answer)
		}
	}
	printlnFn(fmt.Sprintf("Score: %d/%d", correct, len(quiz)))
}

func (a *App) Flashcards(ctx context.Context) error {
	topic, err := GetSimpleText(a.reader, "Topic", a.out)
	if err != nil {
		return err
	}

	cards, err := a.api.Flashcards(ctx, a.userName, topic)
	if err != nil {
		reportError(err)
		return err
	}

	a.flipCards(cards)
	return nil
}

func (a *App) flipCards(cards []api.Flashcard) {
	for i, c := range cards {
		printlnFn(fmt.Sprintf("[%d/%d] %s", i+1, len(cards), c.Question))
		if _, err := GetSimpleText(a.reader, "(Enter to flip)", a.out); err != nil {
			return
		}
		printlnFn("  ->", c.Answer)
	}
}

func (a *App) History(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Please login first")
		return nil
	}

	entries, err := a.api.History(ctx, a.userName)
	if err != nil {
		reportError(err)
		return err
	}

	if len(entries) == 0 {
		printlnFn("No history found. Start learning!")
		return nil
	}

	for i, e := range entries {
		printlnFn(fmt.Sprintf("%2d. %-10s %s  %s", i+1, strings.ToUpper(e.Type), e.Timestamp, e.Input))
	}

	choice, err := GetSimpleText(a.reader, "Number to view (empty to go back)", a.out)
	if err != nil || choice == "" {
		return nil
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(entries) {
		printlnFn("No such entry")
		return nil
	}

	a.showEntry(entries[n-1])
	return nil
}

// showEntry re-renders a stored result the same way it was first shown.
func (a *App) showEntry(e api.HistoryEntry) {
	switch e.Type {
	case "quiz":
		var quiz []api.QuizQuestion
		if err := json.Unmarshal(e.Result, &quiz); err == nil {
			a.playQuiz(quiz)
			return
		}
	case "flashcards":
		var cards []api.Flashcard
		if err := json.Unmarshal(e.Result, &cards); err == nil {
			a.flipCards(cards)
			return
		}
	default:
		var text string
		if err := json.Unmarshal(e.Result, &text); err == nil {
			a.printMarkdown(text)
			return
		}
	}
	printlnFn(string(e.Result))
}
