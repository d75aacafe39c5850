package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// tokenLifetime is the assumed validity window for a freshly granted token.
// The token endpoint reports its own expires_in, but that value is not
// trusted; a conservative fixed hour keeps refresh behavior predictable.
const tokenLifetime = time.Hour

// TokenSource obtains and caches a client-credentials bearer token for the
// Spotify Web API. Safe for concurrent use; concurrent refreshes coalesce
// onto a single exchange request.
type TokenSource struct {
	endpoint     string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	now          func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
	pending   *pendingExchange
}

type pendingExchange struct {
	done  chan struct{}
	token string
	err   error
}

// TokenOption configures a TokenSource.
type TokenOption func(*TokenSource)

// WithTokenHTTPClient overrides the default HTTP client.
func WithTokenHTTPClient(client *http.Client) TokenOption {
	return func(s *TokenSource) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithClock overrides the time source. Tests use this to step through the
// expiry window.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenSource) {
		if now != nil {
			s.now = now
		}
	}
}

// NewTokenSource creates a token source for the given token endpoint and
// client-credentials pair.
func NewTokenSource(endpoint, clientID, clientSecret string, opts ...TokenOption) (*TokenSource, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("token endpoint required")
	}
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(clientSecret) == "" {
		return nil, errors.New("spotify client id and secret required")
	}
	source := &TokenSource{
		endpoint:     endpoint,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(source)
	}
	return source, nil
}

// Token returns a valid bearer token, performing a client-credentials
// exchange when the cached token is absent or expired. A token whose expiry
// is at or before now counts as absent. On exchange failure the previous
// token and expiry are left untouched and the error is returned; the next
// call retries. Callers arriving while an exchange is in flight wait for
// that exchange's result instead of starting their own.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.token != "" && s.now().Before(s.expiresAt) {
		token := s.token
		s.mu.Unlock()
		return token, nil
	}
	if p := s.pending; p != nil {
		s.mu.Unlock()
		select {
		case <-p.done:
			return p.token, p.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	p := &pendingExchange{done: make(chan struct{})}
	s.pending = p
	s.mu.Unlock()

	token, err := s.exchange(ctx)

	s.mu.Lock()
	s.pending = nil
	if err == nil {
		s.token = token
		s.expiresAt = s.now().Add(tokenLifetime)
	}
	s.mu.Unlock()

	p.token, p.err = token, err
	close(p.done)
	return token, err
}

func (s *TokenSource) exchange(ctx context.Context) (string, error) {
	body := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, body)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.clientID, s.clientSecret)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if strings.TrimSpace(payload.AccessToken) == "" {
		return "", errors.New("token endpoint returned empty access_token")
	}
	return payload.AccessToken, nil
}
