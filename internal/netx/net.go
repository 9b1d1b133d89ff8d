// Package netx holds the HTTP helper the CLI uses to talk to the server.
package netx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// PostJSON sends in as a JSON body to url and decodes the JSON response into
// out, whatever the status code, since the server reports errors as JSON
// objects too. The status code is returned alongside any transport or
// decoding error.
func PostJSON(ctx context.Context, client *http.Client, url string, in, out any) (int, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			s := string(body)
			if len(s) > 200 {
				s = s[:200] + "..."
			}
			return resp.StatusCode, fmt.Errorf("unexpected response: %s; body: %s", resp.Status, s)
		}
	}
	return resp.StatusCode, nil
}
