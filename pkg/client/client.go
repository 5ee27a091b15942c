// Package client is a typed client for the hospital API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hospital-medicine-api/pkg/dto"
)

// ErrNotFound is returned when the server answers 404
var ErrNotFound = errors.New("hospital not found")

// APIError is any other non-2xx answer
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("request failed: %d %s", e.Status, e.Message)
}

type Client struct {
	BaseURL string
	// AccessToken is sent as a bearer token on hospital requests
	AccessToken string
	HTTPClient  *http.Client
}

// New creates a client with a 30s timeout
func New(baseURL, accessToken string) *Client {
	return &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		AccessToken: accessToken,
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Token exchanges basic credentials for a bearer token
func (c *Client) Token(ctx context.Context, username, password string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/auth/token", nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(username, password)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp.StatusCode, body)
	}
	return strings.TrimSpace(string(body)), nil
}

func (c *Client) List(ctx context.Context) ([]dto.HospitalResponse, error) {
	var out []dto.HospitalResponse
	if err := c.do(ctx, http.MethodGet, "/hospitals", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id uint) (*dto.HospitalResponse, error) {
	var out dto.HospitalResponse
	if err := c.do(ctx, http.MethodGet, hospitalPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, req dto.HospitalRequest) (*dto.HospitalResponse, error) {
	var out dto.HospitalResponse
	if err := c.do(ctx, http.MethodPost, "/hospitals", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces the whole record, medicine included
func (c *Client) Update(ctx context.Context, id uint, req dto.HospitalRequest) (*dto.HospitalResponse, error) {
	var out dto.HospitalResponse
	if err := c.do(ctx, http.MethodPut, hospitalPath(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes the record and returns it as it was
func (c *Client) Delete(ctx context.Context, id uint) (*dto.HospitalResponse, error) {
	var out dto.HospitalResponse
	if err := c.do(ctx, http.MethodDelete, hospitalPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return apiError(resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func hospitalPath(id uint) string {
	return "/hospitals/" + strconv.FormatUint(uint64(id), 10)
}

// apiError prefers the "error" field of the server's JSON envelope
func apiError(status int, body []byte) *APIError {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		return &APIError{Status: status, Message: envelope.Error}
	}
	return &APIError{Status: status, Message: strings.TrimSpace(string(body))}
}
