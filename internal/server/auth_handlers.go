package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mancafe-dev/gateway/internal/proxy"
	"github.com/mancafe-dev/gateway/internal/session"
)

// LoginRequest is the upstream login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginPayload is the upstream login response body
type LoginPayload struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// SignupRequest is the upstream signup request body
type SignupRequest struct {
	FullName        string `json:"full_name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// MessagePayload is the generic upstream confirmation body
type MessagePayload struct {
	Message string `json:"message"`
}

// signupForm carries the local password confirmation check; everything
// else is the upstream's to validate
type signupForm struct {
	Password        string
	ConfirmPassword string `validate:"eqfield=Password"`
}

func (s *Server) login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := strings.TrimSpace(c.PostForm("password"))
	next := c.PostForm("next")
	if next == "" {
		next = "/products"
	}

	result, err := proxy.Do[LoginPayload](c.Request.Context(), s.upstream, "/api/v1/auth/login", proxy.Options{
		Method: http.MethodPost,
		Body:   LoginRequest{Email: email, Password: password},
	})
	if err != nil {
		s.upstreamUnreachable(c, err)
		return
	}

	if result.Data == nil {
		redirectWithError(c, "/auth/login", errorOr(result.Error, "Login gagal"))
		return
	}

	session.Write(c, &session.Session{
		Token: result.Data.Token,
		Role:  result.Data.Role,
		Email: result.Data.Email,
	}, s.cookieOptions())

	s.logger.Info().Str("request_id", requestID(c)).Str("email", result.Data.Email).Msg("User logged in")

	c.Redirect(http.StatusFound, next)
}

func (s *Server) logout(c *gin.Context) {
	session.Clear(c)
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) signup(c *gin.Context) {
	req := SignupRequest{
		FullName:        strings.TrimSpace(c.PostForm("full_name")),
		Phone:           strings.TrimSpace(c.PostForm("phone")),
		Email:           strings.TrimSpace(c.PostForm("email")),
		Password:        strings.TrimSpace(c.PostForm("password")),
		ConfirmPassword: strings.TrimSpace(c.PostForm("confirm_password")),
	}

	back := "/auth/register"
	form := signupForm{Password: req.Password, ConfirmPassword: req.ConfirmPassword}
	if err := s.validator.Struct(form); err != nil {
		redirectWithError(c, appendQuery(back, "email", req.Email), "Konfirmasi password tidak cocok")
		return
	}

	result, err := proxy.Do[MessagePayload](c.Request.Context(), s.upstream, "/api/v1/auth/signup", proxy.Options{
		Method: http.MethodPost,
		Body:   req,
	})
	if err != nil {
		s.upstreamUnreachable(c, err)
		return
	}

	if result.Data == nil {
		redirectWithError(c, appendQuery(back, "email", req.Email), errorOr(result.Error, "Register gagal"))
		return
	}

	redirectWithMessage(c, appendQuery(back, "email", req.Email),
		"Akun berhasil dibuat. Masukkan OTP dari email untuk verifikasi.")
}

func (s *Server) verifyOTP(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	otp := strings.TrimSpace(c.PostForm("otp"))

	result, err := proxy.Do[MessagePayload](c.Request.Context(), s.upstream, "/api/v1/auth/verify-otp", proxy.Options{
		Method: http.MethodPost,
		Body:   gin.H{"email": email, "otp": otp},
	})
	if err != nil {
		s.upstreamUnreachable(c, err)
		return
	}

	if result.Data == nil {
		redirectWithError(c, appendQuery("/auth/register", "email", email), errorOr(result.Error, "Verifikasi OTP gagal"))
		return
	}

	redirectWithMessage(c, appendQuery("/auth/login", "email", email), "Verifikasi berhasil. Silakan login.")
}

func (s *Server) resendOTP(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))

	result, err := proxy.Do[MessagePayload](c.Request.Context(), s.upstream, "/api/v1/auth/resend-otp", proxy.Options{
		Method: http.MethodPost,
		Body:   gin.H{"email": email},
	})
	if err != nil {
		s.upstreamUnreachable(c, err)
		return
	}

	if result.Data == nil {
		redirectWithError(c, appendQuery("/auth/register", "email", email), errorOr(result.Error, "Gagal kirim ulang OTP"))
		return
	}

	redirectWithMessage(c, appendQuery("/auth/register", "email", email), "OTP baru sudah dikirim ke email Anda")
}

func (s *Server) requestReset(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))

	result, err := proxy.Do[MessagePayload](c.Request.Context(), s.upstream, "/api/v1/auth/request-password-reset", proxy.Options{
		Method: http.MethodPost,
		Body:   gin.H{"email": email},
	})
	if err != nil {
		s.upstreamUnreachable(c, err)
		return
	}

	if result.Data == nil {
		redirectWithError(c, "/auth/request-reset", errorOr(result.Error, "Gagal request reset"))
		return
	}

	// Deliberately generic: does not reveal whether the email is registered
	redirectWithMessage(c, "/auth/request-reset", "Jika email terdaftar, link reset dikirim")
}

func (s *Server) resetPassword(c *gin.Context) {
	token := strings.TrimSpace(c.PostForm("token"))
	newPassword := strings.TrimSpace(c.PostForm("new_password"))

	result, err := proxy.Do[MessagePayload](c.Request.Context(), s.upstream, "/api/v1/auth/reset-password", proxy.Options{
		Method: http.MethodPost,
		Body:   gin.H{"token": token, "new_password": newPassword},
	})
	if err != nil {
		s.upstreamUnreachable(c, err)
		return
	}

	if result.Data == nil {
		redirectWithError(c, appendQuery("/auth/reset", "token", token), errorOr(result.Error, "Reset password gagal"))
		return
	}

	redirectWithMessage(c, "/auth/login", "Password berhasil direset")
}

func (s *Server) verifyEmail(c *gin.Context) {
	token := c.Query("token")

	result, err := proxy.Do[MessagePayload](c.Request.Context(), s.upstream,
		"/api/v1/auth/verify-email?token="+url.QueryEscape(token), proxy.Options{})
	if err != nil {
		s.upstreamUnreachable(c, err)
		return
	}

	if result.Data == nil {
		redirectWithError(c, "/auth/login", errorOr(result.Error, "Verifikasi email gagal"))
		return
	}

	redirectWithMessage(c, "/auth/login", "Email berhasil diverifikasi")
}

// googleCallback lands the browser after the upstream completed the OAuth
// exchange; the token arrives in query parameters and no upstream call is
// made here
func (s *Server) googleCallback(c *gin.Context) {
	token := c.Query("token")
	email := c.Query("email")
	role := c.Query("role")
	if role == "" {
		role = session.DefaultRole
	}
	next := c.Query("next")
	if next == "" {
		next = "/products"
	}

	if token == "" || email == "" {
		redirectWithError(c, "/auth/login", "Google login gagal")
		return
	}

	session.Write(c, &session.Session{Token: token, Role: role, Email: email}, s.cookieOptions())

	s.logger.Info().Str("request_id", requestID(c)).Str("email", email).Msg("User logged in via Google")

	c.Redirect(http.StatusFound, next)
}
