package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenSource supplies the current session credential.
// An empty token means no session; the request is sent unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource with a fixed value, mainly for tests
type StaticToken string

// Token returns the fixed token
func (t StaticToken) Token() string { return string(t) }

// envelope is the server's success wrapper: { "data": <payload> }
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// errorBody is the server's error wrapper: { "error": {code, message} }
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client is the HTTP gateway to the roster API. It attaches the bearer
// credential on every call and classifies failures; it never retries.
type Client struct {
	baseURL      string
	tokens       TokenSource
	httpClient   *http.Client
	unauthorized func()
}

// New creates a gateway for the API at baseURL
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// OnUnauthorized registers a handler invoked whenever a request comes
// back 401. The session manager uses this to force its logout transition.
func (c *Client) OnUnauthorized(fn func()) {
	c.unauthorized = fn
}

// SetHTTPClient replaces the underlying transport, mainly for tests
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// Do performs a request against path with optional query parameters and
// JSON body, decoding the response envelope's data into result if non-nil.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, result any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}

	if resp.StatusCode >= 400 {
		return c.classify(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		var env envelope
		if err := json.Unmarshal(respBody, &env); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		payload := env.Data
		if payload == nil {
			// Not enveloped; take the body as-is
			payload = respBody
		}
		if err := json.Unmarshal(payload, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// classify maps an HTTP failure to the gateway error taxonomy
func (c *Client) classify(status int, body []byte) error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	e := &Error{
		Status:  status,
		Code:    eb.Error.Code,
		Message: eb.Error.Message,
	}

	switch {
	case status == http.StatusUnauthorized:
		e.Kind = KindUnauthorized
		if c.unauthorized != nil {
			c.unauthorized()
		}
	case status == http.StatusForbidden:
		e.Kind = KindForbidden
	case status == http.StatusNotFound:
		e.Kind = KindNotFound
	case status >= 500:
		e.Kind = KindServerError
		e.Message = "" // 5xx details are not for display
	default:
		e.Kind = KindValidation
	}

	return e
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, query url.Values, result any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, result)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, result)
}

// Put performs a PUT request
func (c *Client) Put(ctx context.Context, path string, body, result any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, result)
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func asError(err error, target **Error) bool {
	return errors.As(err, target)
}
