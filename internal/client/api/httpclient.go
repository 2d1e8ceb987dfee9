package api

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

	"github.com/dmitrijs2005/kbcli/internal/client/models"
)

// HTTPClient implements Client over JSON-over-HTTP.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewHTTPClient builds a client for the given base URL. A zero timeout
// falls back to 15 seconds.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SetToken(token string) { c.token = token }
func (c *HTTPClient) ClearToken()           { c.token = "" }

// do executes one request and decodes the JSON success body into out
// (skipped when out is nil). Transport failures wrap ErrUnavailable;
// non-2xx responses become a *StatusError carrying the server's message
// field when the body had one.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// newStatusError prefers the body's message field, which auth endpoints
// use for human-readable failures, over the bare status text.
func newStatusError(code int, body []byte) *StatusError {
	var payload struct {
		Message string `json:"message"`
	}
	status := http.StatusText(code)
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		status = payload.Message
	}
	return &StatusError{Code: code, Status: status}
}

// decodeList accepts both response shapes the backend is known to emit
// for collections: a bare JSON array and an object wrapping it under
// "documents".
func decodeList[T any](data []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}
	var wrapped struct {
		Documents []T `json:"documents"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode list response: %w", err)
	}
	return wrapped.Documents, nil
}

func (c *HTTPClient) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) Register(ctx context.Context, creds Credentials) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", creds, nil)
}

func (c *HTTPClient) ListDocuments(ctx context.Context) ([]models.Document, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/documents", nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.Document](raw)
}

func (c *HTTPClient) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	if err := c.do(ctx, http.MethodGet, "/api/documents/"+url.PathEscape(id), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *HTTPClient) CreateDocument(ctx context.Context, p DocumentPayload) (*models.Document, error) {
	var doc models.Document
	if err := c.do(ctx, http.MethodPost, "/api/documents", p, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *HTTPClient) UpdateDocument(ctx context.Context, id string, p DocumentPayload) (*models.Document, error) {
	var doc models.Document
	if err := c.do(ctx, http.MethodPut, "/api/documents/"+url.PathEscape(id), p, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *HTTPClient) DeleteDocument(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/documents/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) SummarizeDocument(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	if err := c.do(ctx, http.MethodPost, "/api/documents/"+url.PathEscape(id)+"/summarize", nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *HTTPClient) GenerateTags(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	if err := c.do(ctx, http.MethodPost, "/api/documents/"+url.PathEscape(id)+"/generate-tags", nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *HTTPClient) Search(ctx context.Context, query string, semantic bool) ([]models.SearchResult, error) {
	req := struct {
		Query    string `json:"query"`
		Semantic bool   `json:"semantic"`
	}{Query: query, Semantic: semantic}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/api/search", req, &raw); err != nil {
		return nil, err
	}
	return decodeList[models.SearchResult](raw)
}

func (c *HTTPClient) Ask(ctx context.Context, question string) (*Answer, error) {
	req := struct {
		Question string `json:"question"`
	}{Question: question}

	var answer Answer
	if err := c.do(ctx, http.MethodPost, "/api/qa", req, &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}
