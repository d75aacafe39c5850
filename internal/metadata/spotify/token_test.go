package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newExchangeServer(t *testing.T, count *atomic.Int64, token string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count.Add(1)
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client" || pass != "secret" {
			t.Errorf("missing or wrong basic auth: %q/%q", user, pass)
		}
		if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "client_credentials" {
			t.Errorf("unexpected form body: %v", r.PostForm)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"` + token + `","token_type":"Bearer","expires_in":3600}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestTokenCachedWithinWindow(t *testing.T) {
	var count atomic.Int64
	server := newExchangeServer(t, &count, "tok-1")

	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	source, err := NewTokenSource(server.URL, "client", "secret", WithClock(func() time.Time { return current }))
	if err != nil {
		t.Fatalf("NewTokenSource returned error: %v", err)
	}

	for i := 0; i < 2; i++ {
		token, err := source.Token(context.Background())
		if err != nil {
			t.Fatalf("Token returned error: %v", err)
		}
		if token != "tok-1" {
			t.Fatalf("token = %q, want tok-1", token)
		}
	}
	if got := count.Load(); got != 1 {
		t.Fatalf("exchange count = %d, want 1 within the validity window", got)
	}
}

func TestTokenRefreshesAfterExpiry(t *testing.T) {
	var count atomic.Int64
	server := newExchangeServer(t, &count, "tok")

	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	source, err := NewTokenSource(server.URL, "client", "secret", WithClock(func() time.Time { return current }))
	if err != nil {
		t.Fatalf("NewTokenSource returned error: %v", err)
	}

	if _, err := source.Token(context.Background()); err != nil {
		t.Fatalf("Token returned error: %v", err)
	}

	// One hour and one second later the cached token counts as absent.
	current = current.Add(time.Hour + time.Second)
	if _, err := source.Token(context.Background()); err != nil {
		t.Fatalf("Token returned error: %v", err)
	}
	if got := count.Load(); got != 2 {
		t.Fatalf("exchange count = %d, want 2 after expiry", got)
	}
}

func TestTokenExpiryBoundaryIsExclusive(t *testing.T) {
	var count atomic.Int64
	server := newExchangeServer(t, &count, "tok")

	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	source, err := NewTokenSource(server.URL, "client", "secret", WithClock(func() time.Time { return current }))
	if err != nil {
		t.Fatalf("NewTokenSource returned error: %v", err)
	}

	if _, err := source.Token(context.Background()); err != nil {
		t.Fatalf("Token returned error: %v", err)
	}

	// Exactly at expiresAt the token is treated as absent.
	current = current.Add(time.Hour)
	if _, err := source.Token(context.Background()); err != nil {
		t.Fatalf("Token returned error: %v", err)
	}
	if got := count.Load(); got != 2 {
		t.Fatalf("exchange count = %d, want 2 at the expiry boundary", got)
	}
}

func TestTokenFailureKeepsPreviousState(t *testing.T) {
	var fail atomic.Bool
	var count atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count.Add(1)
		if fail.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","expires_in":3600}`))
	}))
	t.Cleanup(server.Close)

	current := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	source, err := NewTokenSource(server.URL, "client", "secret", WithClock(func() time.Time { return current }))
	if err != nil {
		t.Fatalf("NewTokenSource returned error: %v", err)
	}

	if _, err := source.Token(context.Background()); err != nil {
		t.Fatalf("Token returned error: %v", err)
	}

	current = current.Add(2 * time.Hour)
	fail.Store(true)
	if _, err := source.Token(context.Background()); err == nil {
		t.Fatal("expected error from failed exchange")
	}

	// The failure must not clear the stored state; the next access retries.
	fail.Store(false)
	token, err := source.Token(context.Background())
	if err != nil {
		t.Fatalf("Token returned error after recovery: %v", err)
	}
	if token != "tok" {
		t.Fatalf("token = %q, want tok", token)
	}
	if got := count.Load(); got != 3 {
		t.Fatalf("exchange count = %d, want 3 (initial, failure, retry)", got)
	}
}

func TestTokenConcurrentCallersCoalesce(t *testing.T) {
	var count atomic.Int64
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count.Add(1)
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","expires_in":3600}`))
	}))
	t.Cleanup(server.Close)

	source, err := NewTokenSource(server.URL, "client", "secret")
	if err != nil {
		t.Fatalf("NewTokenSource returned error: %v", err)
	}

	const callers = 5
	tokens := make([]string, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = source.Token(context.Background())
		}(i)
	}

	// Give every caller time to reach the source before the exchange
	// completes, then let it finish.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d returned error: %v", i, errs[i])
		}
		if tokens[i] != "tok" {
			t.Fatalf("caller %d token = %q, want tok", i, tokens[i])
		}
	}
	if got := count.Load(); got != 1 {
		t.Fatalf("exchange count = %d, want 1 for coalesced callers", got)
	}
}
