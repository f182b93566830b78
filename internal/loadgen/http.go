package loadgen

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Outcome classifies one roster change request.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeRejected
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeRejected:
		return "rejected"
	default:
		return "failed"
	}
}

// Client talks to the activities API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Health checks that the service answers GET /healthz.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, c.baseURL+"/healthz")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}

// Activities fetches the whole directory.
func (c *Client) Activities(ctx context.Context) (map[string]ActivityView, error) {
	resp, err := c.do(ctx, http.MethodGet, c.baseURL+"/activities")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list activities returned status %d", resp.StatusCode)
	}
	var out map[string]ActivityView
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}
	return out, nil
}

// Signup posts a signup for job.
func (c *Client) Signup(ctx context.Context, job Job) (Outcome, error) {
	return c.roster(ctx, http.MethodPost, "signup", job)
}

// Unregister deletes the signup for job.
func (c *Client) Unregister(ctx context.Context, job Job) (Outcome, error) {
	return c.roster(ctx, http.MethodDelete, "unregister", job)
}

func (c *Client) roster(ctx context.Context, method, action string, job Job) (Outcome, error) {
	target := fmt.Sprintf("%s/activities/%s/%s?email=%s",
		c.baseURL, url.PathEscape(job.Activity), action, url.QueryEscape(job.Email))

	resp, err := c.do(ctx, method, target)
	if err != nil {
		return OutcomeFailed, err
	}
	defer resp.Body.Close()

	var body struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch resp.StatusCode {
	case http.StatusOK:
		return OutcomeOK, nil
	case http.StatusBadRequest:
		return OutcomeRejected, fmt.Errorf("%s %s: %s", action, job.Activity, body.Detail)
	default:
		return OutcomeFailed, fmt.Errorf("%s %s: status %d: %s", action, job.Activity, resp.StatusCode, body.Detail)
	}
}

func (c *Client) do(ctx context.Context, method, target string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", method, target, err)
	}
	return resp, nil
}
