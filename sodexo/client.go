package sodexo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"sodexo-webhook/menu"
)

// Client fetches the daily menu from the provider's JSON API.
type Client struct {
	client  *http.Client
	baseURL string
	log     *zap.Logger
}

// NewClient creates a menu client. The date is appended to baseURL as is,
// so baseURL usually ends with a slash.
func NewClient(client *http.Client, baseURL string, log *zap.Logger) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		client:  client,
		baseURL: baseURL,
		log:     log,
	}
}

// MenuURL returns the request URL for the menu of day.
func (c *Client) MenuURL(day time.Time) string {
	return c.baseURL + day.Format(menu.DateLayout)
}

// Fetch returns the menu for day. Failures are logged and replaced by
// menu.Empty, so the result can always be formatted.
func (c *Client) Fetch(ctx context.Context, day time.Time) menu.Document {
	doc, err := c.fetch(ctx, day)
	if err != nil {
		c.log.Error("menu fetch failed", zap.String("url", c.MenuURL(day)), zap.Error(err))
		return menu.Empty()
	}
	return doc
}

func (c *Client) fetch(ctx context.Context, day time.Time) (menu.Document, error) {
	url := c.MenuURL(day)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return menu.Document{}, fmt.Errorf("creating menu request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return menu.Document{}, fmt.Errorf("fetching menu: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return menu.Document{}, fmt.Errorf("menu returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return menu.Document{}, fmt.Errorf("reading menu response: %w", err)
	}

	doc, err := menu.Parse(body)
	if err != nil {
		return menu.Document{}, fmt.Errorf("decoding menu response: %w", err)
	}

	c.log.Debug("menu fetched", zap.String("url", url), zap.Int("bytes", len(body)))
	return doc, nil
}
