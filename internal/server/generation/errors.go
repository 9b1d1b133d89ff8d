package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseProviderError extracts a readable message from an error response body.
func parseProviderError(statusCode int, body []byte) string {
	var errResp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		msg := errResp.Error.Message
		if msg == "" {
			msg = errResp.Message
		}
		if msg != "" {
			return msg
		}
	}

	switch statusCode {
	case 401:
		return "authentication failed, check the API key"
	case 404:
		return "model or endpoint not found"
	case 429:
		return "rate limited, please wait"
	case 502, 503:
		return "provider service temporarily unavailable"
	}

	s := string(body)
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return fmt.Sprintf("HTTP %d: %s", statusCode, s)
}

func friendlyNetworkError(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "connection refused"
	case strings.Contains(msg, "no such host"):
		return "host not found"
	case strings.Contains(msg, "deadline exceeded"), strings.Contains(msg, "timeout"):
		return "request timed out"
	}
	return msg
}
