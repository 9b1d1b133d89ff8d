package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/dmitrijs2005/studymate/internal/client/api"
)

type markdownRenderer interface {
	Render(in string) (string, error)
}

func newRenderer(style string) (markdownRenderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(80)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	return glamour.NewTermRenderer(opts...)
}

// printMarkdown renders md, falling back to the raw text on failure.
func (a *App) printMarkdown(md string) {
	if a.renderer != nil {
		if out, err := a.renderer.Render(md); err == nil {
			fmt.Fprint(a.out, out)
			return
		}
	}
	fmt.Fprintln(a.out, md)
}

func optionLetter(i int) string {
	return string(rune('A' + i))
}

func quizQuestionMarkdown(i int, q api.QuizQuestion) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### Q%d: %s\n\n", i+1, q.Question)
	for j, opt := range q.Options {
		fmt.Fprintf(&b, "- **%s)** %s\n", optionLetter(j), opt)
	}
	return b.String()
}

// answerMatches accepts the option letter, the option text, or the answer
// text itself, case-insensitively. Models sometimes put "B" or "B) Paris"
// in the answer field, so both sides are normalised.
func answerMatches(q api.QuizQuestion, guess string) bool {
	guess = strings.TrimSpace(guess)
	if guess == "" {
		return false
	}

	answer := strings.TrimSpace(q.Answer)
	if strings.EqualFold(guess, answer) {
		return true
	}

	for j, opt := range q.Options {
		letter := optionLetter(j)
		if !strings.EqualFold(guess, letter) && !strings.EqualFold(guess, opt) {
			continue
		}
		return strings.EqualFold(answer, opt) ||
			strings.EqualFold(answer, letter) ||
			strings.HasPrefix(strings.ToUpper(answer), letter+")")
	}
	return false
}
