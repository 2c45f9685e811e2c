// Package client is a typed caller for the story-server API, the in-process
// counterpart of the transport layer. It mirrors the HTTP surface one-to-one
// and decodes the uniform response envelope.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"story-server/internal/models"
	"story-server/internal/query"
)

// Config holds the client settings.
type Config struct {
	BaseURL string // e.g. http://localhost:5000/api
	Timeout time.Duration
}

// Client issues requests against the story-server API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// envelope mirrors models.APIResponse with the data left raw so each call
// can decode it into its own type.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Total   *int            `json:"total"`
	Error   string          `json:"error"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// New creates a client for the API at cfg.BaseURL.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// ListStories returns the stories matching the criteria and the total count.
func (c *Client) ListStories(ctx context.Context, criteria query.Criteria) ([]models.Story, int, error) {
	params := url.Values{}
	if criteria.Search != "" {
		params.Set("search", criteria.Search)
	}
	if criteria.Category != "" {
		params.Set("category", criteria.Category)
	}
	if criteria.Status != "" {
		params.Set("status", criteria.Status)
	}

	endpoint := "/stories"
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var stories []models.Story
	env, err := c.do(ctx, http.MethodGet, endpoint, nil, &stories)
	if err != nil {
		return nil, 0, err
	}

	total := len(stories)
	if env.Total != nil {
		total = *env.Total
	}
	return stories, total, nil
}

// GetStory returns the story with the given id.
func (c *Client) GetStory(ctx context.Context, id string) (models.Story, error) {
	var story models.Story
	_, err := c.do(ctx, http.MethodGet, "/stories/"+url.PathEscape(id), nil, &story)
	return story, err
}

// CreateStory creates a story and returns the stored record.
func (c *Client) CreateStory(ctx context.Context, payload models.StoryPayload) (models.Story, error) {
	var story models.Story
	_, err := c.do(ctx, http.MethodPost, "/stories", payload, &story)
	return story, err
}

// UpdateStory replaces the story with the given id and returns the updated
// record.
func (c *Client) UpdateStory(ctx context.Context, id string, payload models.StoryPayload) (models.Story, error) {
	var story models.Story
	_, err := c.do(ctx, http.MethodPut, "/stories/"+url.PathEscape(id), payload, &story)
	return story, err
}

// DeleteStory deletes the story with the given id and returns the removed
// record.
func (c *Client) DeleteStory(ctx context.Context, id string) (models.Story, error) {
	var story models.Story
	_, err := c.do(ctx, http.MethodDelete, "/stories/"+url.PathEscape(id), nil, &story)
	return story, err
}

// Categories returns the fixed category set.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	_, err := c.do(ctx, http.MethodGet, "/categories", nil, &categories)
	return categories, err
}

// Statuses returns the fixed status set.
func (c *Client) Statuses(ctx context.Context) ([]string, error) {
	var statuses []string
	_, err := c.do(ctx, http.MethodGet, "/statuses", nil, &statuses)
	return statuses, err
}

// Health checks liveness and returns the server's status message.
func (c *Client) Health(ctx context.Context) (string, error) {
	env, err := c.do(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// do issues the request, checks the status and envelope, and decodes the
// data field into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}) (*envelope, error) {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		message := env.Message
		if message == "" {
			message = env.Error
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return &env, nil
}
