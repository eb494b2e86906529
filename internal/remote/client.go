package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/atticlabs/attic/internal/branding"
)

// CatalogEntry is one owned title as reported by the catalog service.
// Entries are immutable for the duration of a session.
type CatalogEntry struct {
	TitleID     string `json:"title_id" yaml:"title_id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Session holds an authenticated token. It is opaque to callers and is
// deliberately not serializable.
type Session struct {
	token string
}

// Client talks to the catalog/license service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login authenticates with the service and returns a session.
// Rejected credentials surface as ErrAuthExpired.
func (c *Client) Login(username, password string) (*Session, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding login request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+"/v1/session", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", branding.CLIName())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "logging in", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrAuthExpired
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("login returned status %d", resp.StatusCode)
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parsing login response: %w", err)
	}
	if payload.Token == "" {
		return nil, fmt.Errorf("login response contained no token")
	}

	return &Session{token: payload.Token}, nil
}

// ListCatalog fetches the full catalog of owned titles for the session.
// The payload is validated against the embedded catalog schema before it
// is accepted.
func (c *Client) ListCatalog(session *Session) ([]CatalogEntry, error) {
	req, err := http.NewRequest("GET", c.baseURL+"/v1/catalog", nil)
	if err != nil {
		return nil, fmt.Errorf("creating catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", branding.CLIName())
	req.Header.Set("Authorization", "Bearer "+session.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "fetching catalog", Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrAuthExpired
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("catalog fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "reading catalog response", Err: err}
	}

	result, err := ValidateCatalog(body)
	if err != nil {
		return nil, fmt.Errorf("validating catalog payload: %w", err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("catalog payload failed validation: %s", result.Issues[0].Message)
	}

	var payload struct {
		Entries []CatalogEntry `json:"entries"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parsing catalog JSON: %w", err)
	}

	return payload.Entries, nil
}
