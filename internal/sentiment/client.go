package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to the external polarity service over HTTP.
type Client struct {
	endpoint string
	http     *http.Client
}

var _ Provider = (*Client)(nil)

// NewClient creates a reusable HTTP provider client.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Polarity posts the text and returns the service's polarity value.
func (c *Client) Polarity(ctx context.Context, text string) (float64, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return 0, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var parsed struct {
		Polarity float64 `json:"polarity"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}

	if parsed.Polarity < -1 || parsed.Polarity > 1 {
		return 0, fmt.Errorf("polarity %f outside [-1,1]", parsed.Polarity)
	}

	return parsed.Polarity, nil
}
