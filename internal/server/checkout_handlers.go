package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mancafe-dev/gateway/internal/proxy"
	"github.com/mancafe-dev/gateway/internal/session"
)

// CheckoutRequest is the upstream checkout request body
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// CheckoutPayload is the upstream checkout response body. PaymentURL (or
// the legacy RedirectURL) points at the external payment provider.
type CheckoutPayload struct {
	PaymentURL  string `json:"payment_url"`
	RedirectURL string `json:"redirect_url"`
}

func (s *Server) checkout(c *gin.Context) {
	sess := session.Read(c)
	if sess == nil {
		c.Redirect(http.StatusFound, "/auth/login?next=/checkout")
		return
	}

	paymentMethod := strings.TrimSpace(c.PostForm("payment_method"))
	if paymentMethod == "" {
		paymentMethod = "qris"
	}

	result, err := proxy.Do[CheckoutPayload](c.Request.Context(), s.upstream, "/api/v1/me/checkout", proxy.Options{
		Method: http.MethodPost,
		Token:  sess.Token,
		Body:   CheckoutRequest{PaymentMethod: paymentMethod},
	})
	if err != nil {
		s.upstreamUnreachable(c, err)
		return
	}

	if result.Data == nil {
		redirectWithError(c, "/checkout", errorOr(result.Error, "Checkout gagal"))
		return
	}

	// Special case: when the upstream hands back a payment URL the browser
	// is sent straight to the external provider, bypassing the usual
	// redirect-with-message pattern. Unique to checkout; other handlers do
	// not follow upstream-provided redirects.
	paymentURL := result.Data.PaymentURL
	if paymentURL == "" {
		paymentURL = result.Data.RedirectURL
	}
	if paymentURL != "" {
		s.logger.Info().Str("request_id", requestID(c)).Msg("Redirecting to payment provider")
		c.Redirect(http.StatusFound, paymentURL)
		return
	}

	redirectWithMessage(c, "/orders", "Checkout berhasil dibuat")
}
