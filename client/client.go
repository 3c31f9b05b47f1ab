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
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/querydesk/models"
)

const DefaultServer = "http://127.0.0.1:8080"

// APIError is a non-2xx reply from the server
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

type Client struct {
	httpClient *http.Client
	server     string
}

type Option func(*Client)

// WithHTTPClient replaces the default client, which times out after 20s
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(server string, opts ...Option) *Client {
	if server == "" {
		server = DefaultServer
	}
	c := &Client{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		server:     strings.TrimRight(server, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FormDataURL is the listing URL, also used as its cache key
func (c *Client) FormDataURL() string {
	return c.server + "/form-data"
}

func (c *Client) ListFormData(ctx context.Context) (models.FormDataList, error) {
	var list models.FormDataList
	if err := c.request(ctx, http.MethodGet, "/form-data", nil, &list); err != nil {
		return models.FormDataList{}, err
	}
	return list, nil
}

func (c *Client) CreateQuery(ctx context.Context, req models.CreateQueryRequest) (models.Query, error) {
	var q models.Query
	err := c.request(ctx, http.MethodPost, "/queries", req, &q)
	return q, err
}

func (c *Client) ResolveQuery(ctx context.Context, id string) (models.Query, error) {
	var q models.Query
	err := c.request(ctx, http.MethodPatch, queryPath(id), nil, &q)
	return q, err
}

func (c *Client) UpdateQueryDescription(ctx context.Context, id, description string) (models.Query, error) {
	var q models.Query
	err := c.request(ctx, http.MethodPut, queryPath(id), models.UpdateQueryRequest{Description: &description}, &q)
	return q, err
}

func (c *Client) DeleteQuery(ctx context.Context, id string) error {
	return c.request(ctx, http.MethodDelete, queryPath(id), nil, nil)
}

func queryPath(id string) string {
	return "/queries/" + url.PathEscape(id)
}

func (c *Client) request(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.server+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// decodeAPIError reads either error envelope the server writes; both carry
// message and statusCode
func decodeAPIError(resp *http.Response) error {
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	apiErr := &APIError{StatusCode: resp.StatusCode}
	var body models.ErrorResponse
	if err := json.Unmarshal(payload, &body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	} else if text := strings.TrimSpace(string(payload)); text != "" {
		apiErr.Message = text
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
