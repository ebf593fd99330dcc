package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mancafe-dev/gateway/internal/config"
	"github.com/mancafe-dev/gateway/internal/session"
)

// newTestServer builds a gateway wired against the given upstream URL
func newTestServer(t *testing.T, upstreamURL string) *Server {
	t.Helper()

	cfg := &config.Config{
		Upstream: config.UpstreamConfig{BaseURL: upstreamURL},
		Server: config.ServerConfig{
			ListenAddr: ":0",
			SiteURL:    "http://localhost:4321",
		},
		Logging: config.LoggingConfig{Level: "error", Format: "json"},
	}

	srv, err := New(cfg, zerolog.Nop(), "test")
	require.NoError(t, err)
	return srv
}

// userCookies returns the session cookies of an authenticated non-admin
func userCookies() []*http.Cookie {
	return []*http.Cookie{
		{Name: session.CookieToken, Value: "user-token"},
		{Name: session.CookieRole, Value: "user"},
		{Name: session.CookieEmail, Value: "user@mancafe.id"},
	}
}

// adminCookies returns the session cookies of an authenticated admin
func adminCookies() []*http.Cookie {
	return []*http.Cookie{
		{Name: session.CookieToken, Value: "admin-token"},
		{Name: session.CookieRole, Value: "admin"},
		{Name: session.CookieEmail, Value: "admin@mancafe.id"},
	}
}

// wantQuery encodes a redirect query value the way the gateway does,
// with spaces as %20 rather than +
func wantQuery(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}

// postForm sends an url-encoded form to the gateway router
func postForm(t *testing.T, srv *Server, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

// get sends a GET to the gateway router
func get(t *testing.T, srv *Server, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}
