package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	cache   *queryCache

	// OnSessionExpired runs after a failed refresh, once the token store
	// has been cleared.
	OnSessionExpired func()
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

func WithTokenStore(ts TokenStore) Option { return func(c *Client) { c.tokens = ts } }

func WithSessionExpiredHook(fn func()) Option { return func(c *Client) { c.OnSessionExpired = fn } }

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  NewMemoryTokenStore(),
		cache:   newQueryCache(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Login authenticates and stores the returned token pair.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp tokenPair
	err := c.do(ctx, http.MethodPost, "/auth/login", nil,
		map[string]string{"email": email, "password": password}, &resp)
	if err != nil {
		return err
	}
	c.tokens.SetTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// do issues one API request, decoding a 2xx body into out when non-nil.
// Failures come back as *APIError, or ErrSessionExpired after a failed
// refresh.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	return c.send(ctx, method, path, query, body, out, false)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body, out any, retried bool) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if access, _ := c.tokens.Tokens(); access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Timeouts and transport failures have no structured response.
		return unknownError()
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && !retried {
		if err := c.refresh(ctx); err != nil {
			c.tokens.Clear()
			if c.OnSessionExpired != nil {
				c.OnSessionExpired()
			}
			return ErrSessionExpired
		}
		return c.send(ctx, method, path, query, body, out, true)
	}

	if resp.StatusCode >= 400 {
		return normalizeError(resp)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// refresh exchanges the stored refresh token for a new pair. It bypasses
// send: no bearer header, no retry.
func (c *Client) refresh(ctx context.Context) error {
	_, refreshToken := c.tokens.Tokens()
	if refreshToken == "" {
		return unknownError()
	}

	payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return unknownError()
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return normalizeError(resp)
	}

	var pair tokenPair
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return err
	}
	c.tokens.SetTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}

// normalizeError turns any non-2xx response into the {message, code, status}
// shape, defaulting fields the server did not supply.
func normalizeError(resp *http.Response) *APIError {
	apiErr := unknownError()

	raw, err := io.ReadAll(resp.Body)
	if err == nil && len(raw) > 0 {
		var parsed APIError
		if json.Unmarshal(raw, &parsed) == nil {
			if parsed.Message != "" {
				apiErr.Message = parsed.Message
			}
			if parsed.Code != "" {
				apiErr.Code = parsed.Code
			}
		}
	}
	if resp.StatusCode != 0 {
		apiErr.Status = resp.StatusCode
	}
	return apiErr
}
