package generation

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroqGenerator_TextMode(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gsk-test", r.Header.Get("Authorization"))
		b, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(b, &got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"# Photosynthesis"}}]}`))
	}))
	defer srv.Close()

	g := NewGroq(srv.URL+"/", "gsk-test", "")
	out, err := g.Generate(context.Background(), "explain", FormatText)
	require.NoError(t, err)

	assert.Equal(t, "# Photosynthesis", out)
	assert.Equal(t, DefaultGroqModel, got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "explain", got.Messages[0].Content)
	assert.Nil(t, got.ResponseFormat)
}

func TestGroqGenerator_JSONMode(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(b, &got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"quiz\":[]}"}}]}`))
	}))
	defer srv.Close()

	out, err := NewGroq(srv.URL, "", "custom").Generate(context.Background(), "quiz", FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, `{"quiz":[]}`, out)
	assert.Equal(t, "custom", got["model"])
	assert.Equal(t, map[string]any{"type": "json_object"}, got["response_format"])
}

func TestGroqGenerator_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid API Key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	_, err := NewGroq(srv.URL, "bad", "").Generate(context.Background(), "x", FormatText)
	require.Error(t, err)

	var gerr *Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, http.StatusUnauthorized, gerr.StatusCode)
	assert.Equal(t, "Invalid API Key", gerr.Message)
	assert.Equal(t, "groq: Invalid API Key (HTTP 401)", err.Error())
}

func TestGroqGenerator_StatusFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewGroq(srv.URL, "", "").Generate(context.Background(), "x", FormatText)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestGroqGenerator_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewGroq(srv.URL, "", "").Generate(context.Background(), "x", FormatText)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestGroqGenerator_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewGroq(url, "", "").Generate(context.Background(), "x", FormatText)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGroqGenerator_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGroq(srv.URL, "", "").Generate(ctx, "x", FormatText)
	require.Error(t, err)
}
