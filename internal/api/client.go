package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/me/unishop/pkg/model"
)

// Client is the HTTP client for the storefront API. It is a thin request
// layer: it maps operations to endpoints, attaches the bearer token it is
// handed, and reports success or failure. Retry policy belongs to callers.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a storefront API client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "api-client"),
	}
}

// do performs an HTTP request with an optional bearer token and JSON body,
// decoding the response body into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("HTTP request", "method", method, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("HTTP response", "status", resp.StatusCode, "bytes", len(respBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("parse response (status %d): %w", resp.StatusCode, err)
		}
	}
	return nil
}

// statusError maps a non-success status to a typed error. 401 means the
// token is no longer valid; everything else is a generic remote failure.
func statusError(status int, body []byte) error {
	var apiErr struct {
		Error *model.APIError `json:"error"`
	}
	msg := ""
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != nil {
		msg = apiErr.Error.Message
	}

	if status == http.StatusUnauthorized {
		if msg != "" {
			return fmt.Errorf("%w: %s", model.ErrSessionInvalid, msg)
		}
		return model.ErrSessionInvalid
	}

	if msg != "" {
		return fmt.Errorf("%w: HTTP %d: %s", model.ErrRemoteOperationFailed, status, msg)
	}
	return fmt.Errorf("%w: %w", model.ErrRemoteOperationFailed, &model.HTTPError{StatusCode: status, Body: string(body)})
}
