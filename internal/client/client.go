package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Client talks to the storefront API. Requests issued through it carry the
// session's bearer token and transparently survive access-token expiry.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	session    *Session
}

// Option customizes a Client.
type Option func(*clientOptions)

type clientOptions struct {
	baseTransport    http.RoundTripper
	onSessionExpired func()
}

// WithBaseTransport overrides the underlying transport. Mainly for tests.
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) {
		o.baseTransport = rt
	}
}

// WithSessionExpiredHandler registers a callback fired when the session dies
// and the user must sign in again.
func WithSessionExpiredHandler(fn func()) Option {
	return func(o *clientOptions) {
		o.onSessionExpired = fn
	}
}

// New builds a Client against the given base URL, e.g. "https://shop.example.com".
func New(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid base url")
	}

	options := &clientOptions{baseTransport: http.DefaultTransport}
	for _, opt := range opts {
		opt(options)
	}

	// One jar shared by the main client and the refresh client, so the
	// HttpOnly refresh cookie set at login is presented on renewal.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cookie jar")
	}

	session := NewSession()
	refreshClient := &http.Client{
		Transport: options.baseTransport,
		Jar:       jar,
	}

	transport := &renewalTransport{
		base:             options.baseTransport,
		session:          session,
		refreshClient:    refreshClient,
		refreshURL:       strings.TrimRight(parsed.String(), "/") + "/auth/refresh-token",
		onSessionExpired: options.onSessionExpired,
	}

	return &Client{
		baseURL: parsed,
		httpClient: &http.Client{
			Transport: transport,
			Jar:       jar,
		},
		session: session,
	}, nil
}

// Session exposes the client's authentication state.
func (c *Client) Session() *Session {
	return c.session
}

// Login authenticates and installs the session credentials. The refresh cookie
// lands in the jar as a side effect of the response.
func (c *Client) Login(ctx context.Context, email, password string) (*Profile, error) {
	payload := map[string]string{"email": email, "password": password}

	var data struct {
		User        Profile `json:"user"`
		AccessToken string  `json:"accessToken"`
	}
	if err := c.postJSON(ctx, "/auth/login", payload, &data); err != nil {
		return nil, err
	}

	profile := data.User
	c.session.SetCredentials(data.AccessToken, &profile)

	return &profile, nil
}

// Logout revokes the server-side session and clears local state.
func (c *Client) Logout(ctx context.Context) error {
	err := c.postJSON(ctx, "/auth/logout", nil, nil)
	c.session.Clear()

	return err
}

// Do issues a request through the renewing transport. The path is resolved
// against the client's base URL.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}

	return c.httpClient.Do(req)
}

func (c *Client) resolve(path string) string {
	return strings.TrimRight(c.baseURL.String(), "/") + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "failed to encode request payload")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolve(path), body)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("%s %s failed with status %d", http.MethodPost, path, resp.StatusCode)
	}

	if out != nil {
		var envelope struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return errors.Wrap(err, "failed to decode response")
		}
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return errors.Wrap(err, "failed to decode response data")
		}
	}

	return nil
}
