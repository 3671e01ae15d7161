// Package client talks to the parking admin HTTP API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"parkinglot/internal/entities"
	"strconv"
)

const maxErrorBody = 64 << 10

// StatusError is a non-2xx answer from the API. Message holds the "error"
// field of a JSON body when there was one; JSONBody reports whether the body
// parsed as JSON at all.
type StatusError struct {
	StatusCode int
	Message    string
	JSONBody   bool
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api returned %d", e.StatusCode)
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New returns a client for the API at baseURL. A nil httpClient means
// http.DefaultClient, which has no timeout.
func New(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, token: token, http: httpClient}
}

func (c *Client) SpotDetails(ctx context.Context, spotID int) (*entities.SpotDetails, error) {
	var details entities.SpotDetails
	if err := c.do(ctx, http.MethodGet, "/admin/spot-details/"+strconv.Itoa(spotID), &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// DeleteSpot ignores the body of a successful answer.
func (c *Client) DeleteSpot(ctx context.Context, spotID int) error {
	return c.do(ctx, http.MethodPost, "/admin/delete_spot/"+strconv.Itoa(spotID), nil)
}

func (c *Client) ListSpots(ctx context.Context, lotID string) ([]entities.SpotSummary, error) {
	path := "/admin/spots"
	if lotID != "" {
		path += "?lot_id=" + url.QueryEscape(lotID)
	}
	var spots []entities.SpotSummary
	if err := c.do(ctx, http.MethodGet, path, &spots); err != nil {
		return nil, err
	}
	return spots, nil
}

func (c *Client) do(ctx context.Context, method, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func statusError(resp *http.Response) *StatusError {
	se := &StatusError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return se
	}
	if !json.Valid(body) {
		return se
	}
	se.JSONBody = true
	var payload entities.ErrorResponse
	if json.Unmarshal(body, &payload) == nil {
		se.Message = payload.Error
	}
	return se
}
