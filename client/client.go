// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zr6b/voteapp/models"
)

// APIError is a non-2xx answer from the server. Anything else returned by
// Client methods is a transport or decoding failure.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Stats(ctx context.Context) (models.StatsResponse, error) {
	var stats models.StatsResponse
	err := c.do(ctx, http.MethodGet, "/api/stats", nil, nil, &stats)
	return stats, err
}

func (c *Client) Feed(ctx context.Context) ([]models.VoteLogEntry, error) {
	var feed []models.VoteLogEntry
	err := c.do(ctx, http.MethodGet, "/api/feed", nil, nil, &feed)
	return feed, err
}

func (c *Client) Broadcasts(ctx context.Context) ([]models.BroadcastEntry, error) {
	var entries []models.BroadcastEntry
	err := c.do(ctx, http.MethodGet, "/api/danmaku", nil, nil, &entries)
	return entries, err
}

// Vote submits a ballot. A rejected ballot comes back as *APIError.
func (c *Client) Vote(ctx context.Context, req models.VoteRequest) (models.ActionResponse, error) {
	var resp models.ActionResponse
	err := c.do(ctx, http.MethodPost, "/api/vote", nil, req, &resp)
	return resp, err
}

// PostBroadcast sends a message and returns the stored entry.
func (c *Client) PostBroadcast(ctx context.Context, message string) (models.BroadcastEntry, error) {
	var resp models.BroadcastResponse
	err := c.do(ctx, http.MethodPost, "/api/danmaku", nil, models.BroadcastRequest{Message: message}, &resp)
	if err != nil {
		return models.BroadcastEntry{}, err
	}
	if resp.NewEntry == nil {
		return models.BroadcastEntry{}, fmt.Errorf("post broadcast: response has no entry")
	}
	return *resp.NewEntry, nil
}

// SetBroadcastEnabled flips the server's broadcast switch.
func (c *Client) SetBroadcastEnabled(ctx context.Context, adminKey string, enabled bool) error {
	headers := map[string]string{"X-Admin-Key": adminKey}
	body := models.BroadcastToggleRequest{Enabled: &enabled}
	return c.do(ctx, http.MethodPut, "/api/admin/danmaku", headers, body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, headers map[string]string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var msg models.ActionResponse
		if json.NewDecoder(resp.Body).Decode(&msg) == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
