package pages

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/learnlink/learnlink/internal/client/client"
	"github.com/learnlink/learnlink/internal/client/session"
	"github.com/learnlink/learnlink/internal/logging"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type recordingNav struct {
	mu     sync.Mutex
	routes []string
}

func (n *recordingNav) Push(r Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, "push "+string(r))
}

func (n *recordingNav) Replace(r Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, "replace "+string(r))
}

func (n *recordingNav) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.routes...)
}

// env wires the real HTTP client and session against a fake backend.
type env struct {
	srv     *httptest.Server
	api     *client.HTTPClient
	store   *session.MemoryTokenStore
	session *session.Session
	nav     *recordingNav
	guard   *Guard
}

func newEnv(t *testing.T, h http.Handler) *env {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	store := session.NewMemoryTokenStore()
	s := session.New(store, logging.Discard(), session.WithClock(func() time.Time { return testNow }))
	api, err := client.NewHTTPClient(client.Options{
		BaseURL:           srv.URL,
		RequestTimeout:    2 * time.Second,
		GenerationTimeout: 2 * time.Second,
		Tokens:            s,
	})
	require.NoError(t, err)

	nav := &recordingNav{}
	return &env{
		srv:     srv,
		api:     api,
		store:   store,
		session: s,
		nav:     nav,
		guard:   NewGuard(s, nav, logging.Discard()),
	}
}

func (e *env) login(t *testing.T, email string) string {
	t.Helper()
	tok := validToken(t, email)
	require.NoError(t, e.store.Set(context.Background(), tok))
	return tok
}

func (e *env) token(t *testing.T) string {
	t.Helper()
	tok, err := e.store.Get(context.Background())
	require.NoError(t, err)
	return tok
}

func validToken(t *testing.T, email string) string {
	t.Helper()
	claims := session.Claims{
		Email:            email,
		Name:             "Ada",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour))},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return tok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// unreachable fails the test for any request that gets through.
func unreachable(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusTeapot)
	})
}
