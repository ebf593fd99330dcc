// Package session encodes and decodes the storefront session cookies.
//
// A session is the triple (bearer token, role, email). The token is an
// opaque string minted by the upstream API; this layer never inspects or
// validates it. Token validity is determined solely by the upstream's
// response to a proxied call.
package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CookieToken = "mancafe_token"
	CookieRole  = "mancafe_role"
	CookieEmail = "mancafe_email"
)

const (
	// MaxAge is the session cookie lifetime in seconds (24 hours)
	MaxAge = 86400

	// DefaultRole is assumed when the role cookie is missing
	DefaultRole = "user"
)

// Session represents the authenticated session carried in cookies
type Session struct {
	Token string
	Role  string
	Email string
}

// Options controls cookie scope and security attributes. Path, HttpOnly and
// SameSite are fixed by the storefront's contract; only Secure varies with
// the deployment environment.
type Options struct {
	Secure bool
}

// Read decodes the session from request cookies. It returns nil when the
// token cookie is absent or empty. Role and email fall back to their
// defaults so callers never see a partially-populated session.
func Read(c *gin.Context) *Session {
	token, err := c.Cookie(CookieToken)
	if err != nil || token == "" {
		return nil
	}

	role, err := c.Cookie(CookieRole)
	if err != nil || role == "" {
		role = DefaultRole
	}

	email, err := c.Cookie(CookieEmail)
	if err != nil {
		email = ""
	}

	return &Session{
		Token: token,
		Role:  role,
		Email: email,
	}
}

// Write sets all three session cookies with identical scope and expiry.
// Cookies are HttpOnly and SameSite=Lax so they survive top-level redirect
// navigation from external payment and OAuth flows while blocking
// cross-site POST.
func Write(c *gin.Context, s *Session, opts Options) {
	setCookie(c, CookieToken, s.Token, MaxAge, opts.Secure)
	setCookie(c, CookieRole, s.Role, MaxAge, opts.Secure)
	setCookie(c, CookieEmail, s.Email, MaxAge, opts.Secure)
}

// Clear overwrites all three session cookies with an immediate expiry
func Clear(c *gin.Context) {
	setCookie(c, CookieToken, "", -1, false)
	setCookie(c, CookieRole, "", -1, false)
	setCookie(c, CookieEmail, "", -1, false)
}

func setCookie(c *gin.Context, name, value string, maxAge int, secure bool) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	})
}
