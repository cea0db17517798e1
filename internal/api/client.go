// Package api implements the HTTP/JSON boundary with the guest-log backend.
//
// Per resource the backend speaks a Laravel-style contract:
//
//	GET    /{resource}?page&search&rows_per_page&<filters>  → list envelope
//	GET    /{resource}/{id}                                 → {success, data, message}
//	POST   /{resource}                                      → {success, message} or 422 {errors}
//	PUT    /{resource}/{id}                                 → same as POST
//	DELETE /{resource}/{id}                                 → {success, message}
//
// Every failure is converted into a domain.AppError; callers never see raw
// transport errors or partially decoded bodies.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sekolahdigital/tamuadmin/internal/domain"
)

// TokenSource supplies the bearer token attached to every request.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client is the HTTP client for the backend API.
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithUnauthorizedHook registers a callback invoked whenever the backend
// answers 401. This is the process-wide session interceptor: the hook clears
// stored credentials so the next screen redirects to login.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New creates a Client for the given base URL (no trailing slash).
func New(baseURL string, timeout time.Duration, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// listEnvelope mirrors the backend's paginated list response. From and To are
// pointers because the backend sends null for an empty page.
type listEnvelope[T any] struct {
	Data        []T  `json:"data"`
	CurrentPage int  `json:"current_page"`
	LastPage    int  `json:"last_page"`
	Total       int  `json:"total"`
	From        *int `json:"from"`
	To          *int `json:"to"`
}

// detailEnvelope mirrors the single-record response.
type detailEnvelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data"`
	Message string `json:"message"`
}

// mutationEnvelope mirrors create/update/delete responses.
type mutationEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// validationBody mirrors the 422 response body.
type validationBody struct {
	Message string             `json:"message"`
	Errors  domain.FieldErrors `json:"errors"`
}

// ListPage fetches one page of a collection.
func ListPage[T any](ctx context.Context, c *Client, resource string, q domain.ListQuery) (*domain.PageResult[T], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("rows_per_page", strconv.Itoa(q.RowsPerPage))
	params.Set("search", q.Search)
	for name, value := range q.Filters {
		if value != "" {
			params.Set(name, value)
		}
	}

	body, err := c.do(ctx, http.MethodGet, resource+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var env listEnvelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "unexpected list response", err)
	}

	result := &domain.PageResult[T]{
		Rows:        env.Data,
		CurrentPage: env.CurrentPage,
		LastPage:    env.LastPage,
		Total:       env.Total,
	}
	if result.Rows == nil {
		result.Rows = []T{}
	}
	if env.From != nil {
		result.From = *env.From
	}
	if env.To != nil {
		result.To = *env.To
	}
	return result, nil
}

// GetDetail fetches one full record by id.
func GetDetail[T any](ctx context.Context, c *Client, resource string, id int) (*T, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", resource, id), nil)
	if err != nil {
		return nil, err
	}

	var env detailEnvelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "unexpected detail response", err)
	}
	if !env.Success || env.Data == nil {
		msg := env.Message
		if msg == "" {
			msg = "record not found"
		}
		return nil, domain.NewAppError(domain.CodeNotFound, msg, nil)
	}
	return env.Data, nil
}

// Create posts a new record and returns the backend's message, if any.
func (c *Client) Create(ctx context.Context, resource string, form any) (string, error) {
	return c.mutate(ctx, http.MethodPost, resource, form)
}

// Update replaces a record and returns the backend's message, if any.
func (c *Client) Update(ctx context.Context, resource string, id int, form any) (string, error) {
	return c.mutate(ctx, http.MethodPut, fmt.Sprintf("%s/%d", resource, id), form)
}

// Delete removes a record and returns the backend's message, if any.
func (c *Client) Delete(ctx context.Context, resource string, id int) (string, error) {
	return c.mutate(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", resource, id), nil)
}

// GetJSON fetches path and decodes the whole body into out. Used for
// endpoints outside the per-resource contract (dashboard).
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return domain.NewAppError(domain.CodeInternal, "unexpected response", err)
	}
	return nil
}

// PostJSON posts body to path and decodes the response into out when out is
// non-nil.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	body, err := c.do(ctx, http.MethodPost, path, in)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return domain.NewAppError(domain.CodeInternal, "unexpected response", err)
	}
	return nil
}

// mutate sends a write request and decodes the mutation envelope.
func (c *Client) mutate(ctx context.Context, method, path string, form any) (string, error) {
	body, err := c.do(ctx, method, path, form)
	if err != nil {
		return "", err
	}

	var env mutationEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", domain.NewAppError(domain.CodeInternal, "unexpected response", err)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "request rejected"
		}
		return "", domain.NewAppError(domain.CodeInternal, msg, nil)
	}
	return env.Message, nil
}

// do performs one HTTP round trip and maps failures to domain errors.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, domain.NewAppError(domain.CodeInternal, "encode request", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, reqBody)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	// Transport failures carry no Message: there is no backend response to
	// quote, so notification texts fall back to the resource default.
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeUnavailable, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeUnavailable, "", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}
	return nil, c.statusError(resp.StatusCode, body)
}

// statusError maps a non-2xx response to the client error taxonomy.
func (c *Client) statusError(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return domain.NewAppError(domain.CodeUnauthorized, messageOf(body, "unauthorized"), nil)

	case status == http.StatusUnprocessableEntity:
		var vb validationBody
		if err := json.Unmarshal(body, &vb); err == nil && len(vb.Errors) > 0 {
			ve := &domain.ValidationError{Fields: vb.Errors}
			return domain.NewAppError(domain.CodeValidation, vb.Errors.First(), ve)
		}
		return domain.NewAppError(domain.CodeValidation, messageOf(body, "validation error"), nil)

	case status == http.StatusNotFound:
		return domain.NewAppError(domain.CodeNotFound, messageOf(body, "not found"), nil)

	case status >= 500:
		// A 5xx is still a backend answer: keep its message, if any, so the
		// notification can quote it. Only a bodyless 5xx looks like a
		// transport failure to callers.
		if msg := messageOf(body, ""); msg != "" {
			return domain.NewAppError(domain.CodeUnavailable, msg, nil)
		}
		return domain.NewAppError(domain.CodeUnavailable, "", fmt.Errorf("server error (status %d)", status))

	default:
		return domain.NewAppError(domain.CodeInternal, messageOf(body, fmt.Sprintf("unexpected status %d", status)), nil)
	}
}

// messageOf extracts a "message" field from an error body, falling back to def.
func messageOf(body []byte, def string) string {
	var m struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &m); err == nil && m.Message != "" {
		return m.Message
	}
	return def
}
