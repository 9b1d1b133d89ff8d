package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	DefaultGroqModel   = "llama-3.3-70b-versatile"
)

// GroqGenerator calls Groq's OpenAI-compatible chat completions endpoint.
type GroqGenerator struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewGroq(baseURL, apiKey, model string) *GroqGenerator {
	if baseURL == "" {
		baseURL = DefaultGroqBaseURL
	}
	if model == "" {
		model = DefaultGroqModel
	}
	return &GroqGenerator{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{},
	}
}

func (g *GroqGenerator) Name() string { return "groq" }

func (g *GroqGenerator) Model() string { return g.model }

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (g *GroqGenerator) Generate(ctx context.Context, prompt string, format Format) (string, error) {
	body := chatRequest{
		Model:    g.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}
	if format == FormatJSON {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", &Error{Provider: g.Name(), Message: friendlyNetworkError(err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Provider: g.Name(), StatusCode: resp.StatusCode, Message: friendlyNetworkError(err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{Provider: g.Name(), StatusCode: resp.StatusCode, Message: parseProviderError(resp.StatusCode, raw)}
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("decode %s response: %w", g.Name(), err)
	}
	if len(out.Choices) == 0 {
		return "", &Error{Provider: g.Name(), StatusCode: resp.StatusCode, Message: "response has no choices"}
	}

	return out.Choices[0].Message.Content, nil
}
