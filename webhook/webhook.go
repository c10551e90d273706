// Package webhook delivers messages to a chat webhook that accepts a
// {"content": "..."} JSON payload.
package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
)

// Payload is the webhook request body.
type Payload struct {
	Content string `json:"content"`
}

// Client posts messages to a single webhook URL.
type Client struct {
	client *http.Client
	url    string
}

// NewClient creates a webhook client.
func NewClient(client *http.Client, url string) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{client: client, url: url}
}

// Post sends content to the webhook. A transport error or a non-2xx status
// is returned as an error; the response body is discarded.
func (c *Client) Post(ctx context.Context, content string) error {
	body, err := sonic.ConfigStd.Marshal(Payload{Content: content})
	if err != nil {
		return fmt.Errorf("encoding webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting to webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
