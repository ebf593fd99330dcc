package server

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRouteGuard_RedirectsAnonymousToLogin(t *testing.T) {
	srv := newTestServer(t, "http://upstream.invalid")

	tests := []struct {
		path         string
		wantLocation string
	}{
		{"/cart/add", "/auth/login?next=%2Fcart%2Fadd"},
		{"/checkout", "/auth/login?next=%2Fcheckout"},
		{"/orders/42", "/auth/login?next=%2Forders%2F42"},
		{"/admin/products", "/auth/login?next=%2Fadmin%2Fproducts"},
		{"/api/checkout", "/auth/login?next=%2Fapi%2Fcheckout"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(t, srv, tt.path, nil)
			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
		})
	}
}

func TestRouteGuard_DeniesNonAdmin(t *testing.T) {
	srv := newTestServer(t, "http://upstream.invalid")

	w := get(t, srv, "/admin/products", userCookies())

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login?error=admin", w.Header().Get("Location"))

	// The guard must not log the user out: no Set-Cookie in the response
	assert.Empty(t, w.Header().Values("Set-Cookie"))
}

func TestRouteGuard_MissingRoleCookieIsNotAdmin(t *testing.T) {
	srv := newTestServer(t, "http://upstream.invalid")

	w := get(t, srv, "/admin/products", []*http.Cookie{
		{Name: "mancafe_token", Value: "some-token"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login?error=admin", w.Header().Get("Location"))
}

func TestRouteGuard_PublicPathsPassThrough(t *testing.T) {
	srv := newTestServer(t, "http://upstream.invalid")

	// Unregistered public paths reach the router's 404, not a redirect,
	// regardless of session state
	for _, cookies := range [][]*http.Cookie{nil, userCookies(), adminCookies()} {
		w := get(t, srv, "/products/espresso", cookies)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, w.Header().Get("Location"))
	}
}

func TestRouteGuard_AdminPassesAdminPaths(t *testing.T) {
	srv := newTestServer(t, "http://upstream.invalid")

	// An unregistered admin page is allowed through to the 404 handler
	w := get(t, srv, "/admin/reports", adminCookies())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestID_Assigned(t *testing.T) {
	srv := newTestServer(t, "http://upstream.invalid")

	w := get(t, srv, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Header().Get("X-Request-ID"), 26) // ULID length
}
