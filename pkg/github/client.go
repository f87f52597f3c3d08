package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client dispatches GitHub Actions workflows.
type Client struct {
	config     Config
	httpClient *http.Client
}

// WorkflowDispatcher is the surface services depend on.
type WorkflowDispatcher interface {
	DispatchCrawl(ctx context.Context, productID string) error
}

type dispatchRequest struct {
	Ref    string            `json:"ref"`
	Inputs map[string]string `json:"inputs"`
}

// NewClient creates a new GitHub Actions client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// DispatchCrawl triggers the crawl workflow for a single product.
// GitHub responds 204 No Content on success; no run ID comes back.
func (c *Client) DispatchCrawl(ctx context.Context, productID string) error {
	payload := dispatchRequest{
		Ref: c.config.Ref,
		Inputs: map[string]string{
			"productId": productID,
		},
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal dispatch request: %w", err)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/actions/workflows/%s/dispatches",
		c.config.BaseURL, c.config.Owner, c.config.Repo, c.config.Workflow)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.Token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: status %d, body: %s", ErrUnauthorized, resp.StatusCode, string(body))
	default:
		return fmt.Errorf("%w: status %d, body: %s", ErrDispatchFailed, resp.StatusCode, string(body))
	}
}
