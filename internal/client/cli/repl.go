package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// printFn is the same seam for prompts that stay on the line.
var printFn = fmt.Print

// execIface defines the command surface the REPL needs. The real App type
// satisfies it; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Explain(ctx context.Context) error
	Summarize(ctx context.Context) error
	Quiz(ctx context.Context) error
	Flashcards(ctx context.Context) error
	History(ctx context.Context) error
}

// runREPL reads one command per line and dispatches it to a.
//
//	help                 show available commands
//	signup               create an account
//	login / logout       start or end a session (history is recorded while logged in)
//	explain              explain a topic at a chosen level
//	summarize            condense notes into bullet points
//	quiz                 multiple-choice quiz on a topic
//	flashcards           question/answer cards on a topic
//	history              recent activity (requires login)
//	exit | quit          leave
//
// Handler errors are reported by the handlers themselves; the loop keeps
// going. It ends on EOF or exit.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printFn(fmt.Sprintf("scli %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			printlnFn()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: explain, summarize, quiz, flashcards, history, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, explain, summarize, quiz, flashcards, exit")
			}

		case "signup", "register":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "explain":
			_ = a.Explain(ctx)

		case "summarize":
			_ = a.Summarize(ctx)

		case "quiz":
			_ = a.Quiz(ctx)

		case "flashcards", "cards":
			_ = a.Flashcards(ctx)

		case "history":
			_ = a.History(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", parts[0])
		}
	}
}
