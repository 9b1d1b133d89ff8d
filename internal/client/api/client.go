// Package api is the CLI's typed client for the study server's HTTP API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/studymate/internal/netx"
)

var ErrUnavailable = errors.New("server unavailable")

// Error is a non-2xx reply. Message is the server's error text.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// QuizQuestion and Flashcard hold model-produced items. The server passes
// them through unchanged, so fields that are not strings are rendered as
// their JSON text. A whole-number answer that indexes Options (from zero)
// is replaced with that option.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

func (q *QuizQuestion) UnmarshalJSON(b []byte) error {
	var raw struct {
		Question json.RawMessage   `json:"question"`
		Options  []json.RawMessage `json:"options"`
		Answer   json.RawMessage   `json:"answer"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	q.Question = text(raw.Question)
	q.Options = make([]string, len(raw.Options))
	for i, o := range raw.Options {
		q.Options[i] = text(o)
	}
	q.Answer = text(raw.Answer)

	var idx int
	if err := json.Unmarshal(raw.Answer, &idx); err == nil && idx >= 0 && idx < len(q.Options) {
		q.Answer = q.Options[idx]
	}
	return nil
}

type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (f *Flashcard) UnmarshalJSON(b []byte) error {
	var raw struct {
		Question json.RawMessage `json:"question"`
		Answer   json.RawMessage `json:"answer"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	f.Question, f.Answer = text(raw.Question), text(raw.Answer)
	return nil
}

// text returns a JSON string's value, or the compact JSON of anything else.
// null and absent values are empty.
func text(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

type HistoryEntry struct {
	Type      string          `json:"type"`
	Input     string          `json:"input"`
	Result    json.RawMessage `json:"result"`
	Timestamp string          `json:"timestamp"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type reply struct {
	Error       string         `json:"error"`
	Message     string         `json:"message"`
	Explanation string         `json:"explanation"`
	Summary     string         `json:"summary"`
	Quiz        []QuizQuestion `json:"quiz"`
	Flashcards  []Flashcard    `json:"flashcards"`
	History     []HistoryEntry `json:"history"`
}

func (c *Client) post(ctx context.Context, path string, in any) (*reply, error) {
	var out reply
	status, err := netx.PostJSON(ctx, c.http, c.baseURL+path, in, &out)
	if err != nil {
		if status == 0 {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, err
	}
	if status < 200 || status > 299 {
		msg := out.Error
		if msg == "" {
			msg = http.StatusText(status)
		}
		return nil, &Error{Status: status, Message: msg}
	}
	return &out, nil
}

// Signup creates an account and returns the server's confirmation text.
func (c *Client) Signup(ctx context.Context, username, password string) (string, error) {
	out, err := c.post(ctx, "/api/signup", map[string]string{"username": username, "password": password})
	if err != nil {
		return "", err
	}
	return out.Message, nil
}

// Login checks credentials. The server issues no session; the CLI keeps
// the username locally.
func (c *Client) Login(ctx context.Context, username, password string) error {
	_, err := c.post(ctx, "/api/login", map[string]string{"username": username, "password": password})
	return err
}

func (c *Client) Explain(ctx context.Context, username, subject, topic, level string) (string, error) {
	body := map[string]string{"subject": subject, "topic": topic, "username": username}
	if level != "" {
		body["level"] = level
	}
	out, err := c.post(ctx, "/api/explain", body)
	if err != nil {
		return "", err
	}
	return out.Explanation, nil
}

func (c *Client) Summarize(ctx context.Context, username, notes string) (string, error) {
	out, err := c.post(ctx, "/api/summarize", map[string]string{"notes": notes, "username": username})
	if err != nil {
		return "", err
	}
	return out.Summary, nil
}

func (c *Client) Quiz(ctx context.Context, username, topic string, count int) ([]QuizQuestion, error) {
	body := map[string]any{"topic": topic, "username": username}
	if count > 0 {
		body["count"] = count
	}
	out, err := c.post(ctx, "/api/quiz", body)
	if err != nil {
		return nil, err
	}
	return out.Quiz, nil
}

func (c *Client) Flashcards(ctx context.Context, username, topic string) ([]Flashcard, error) {
	out, err := c.post(ctx, "/api/flashcards", map[string]string{"topic": topic, "username": username})
	if err != nil {
		return nil, err
	}
	return out.Flashcards, nil
}

func (c *Client) History(ctx context.Context, username string) ([]HistoryEntry, error) {
	out, err := c.post(ctx, "/api/history", map[string]string{"username": username})
	if err != nil {
		return nil, err
	}
	return out.History, nil
}
