// Package cli implements the interactive studymate shell on top of the
// HTTP API client.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/studymate/internal/client/api"
	"github.com/dmitrijs2005/studymate/internal/client/config"
)

// studyAPI is the subset of api.Client the shell uses.
type studyAPI interface {
	Signup(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) error
	Explain(ctx context.Context, username, subject, topic, level string) (string, error)
	Summarize(ctx context.Context, username, notes string) (string, error)
	Quiz(ctx context.Context, username, topic string, count int) ([]api.QuizQuestion, error)
	Flashcards(ctx context.Context, username, topic string) ([]api.Flashcard, error)
	History(ctx context.Context, username string) ([]api.HistoryEntry, error)
}

type App struct {
	config   *config.Config
	api      studyAPI
	userName string
	reader   *bufio.Reader
	out      io.Writer
	renderer markdownRenderer
}

func NewApp(c *config.Config) (*App, error) {
	r, err := newRenderer(c.Style)
	if err != nil {
		return nil, err
	}

	return &App{
		config:   c,
		api:      api.NewClient(c.ServerURL, c.RequestTimeout),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		renderer: r,
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) status() string {
	if a.userName == "" {
		return ""
	}
	return "(" + a.userName + ") "
}

// Run starts the shell and returns when the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to the studymate CLI (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader)
}
