package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mancafe-dev/gateway/internal/proxy"
	"github.com/mancafe-dev/gateway/internal/session"
)

// CartMutation is the upstream cart add/remove request body
type CartMutation struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CartPayload is the upstream cart response body
type CartPayload struct {
	Items []CartItem `json:"items"`
}

// CartItem is a single cart line
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// cartAddGet rejects direct navigation; the cart is mutated by form POST
func (s *Server) cartAddGet(c *gin.Context) {
	redirectWithError(c, "/cart", "Gunakan tombol tambah keranjang")
}

func (s *Server) cartAdd(c *gin.Context) {
	sess := session.Read(c)
	if sess == nil {
		c.Redirect(http.StatusFound, "/auth/login?next=/cart")
		return
	}

	productID := strings.TrimSpace(c.PostForm("product_id"))
	quantity := formInt(c, "quantity", 1)
	redirectTo := c.PostForm("redirect_to")
	if redirectTo == "" {
		redirectTo = "/cart"
	}

	result, err := proxy.Do[struct{}](c.Request.Context(), s.upstream, "/api/v1/me/cart/add", proxy.Options{
		Method: http.MethodPost,
		Token:  sess.Token,
		Body:   CartMutation{ProductID: productID, Quantity: quantity},
	})
	if err != nil {
		s.upstreamUnreachable(c, err)
		return
	}

	if result.Error != "" {
		redirectWithError(c, redirectTo, result.Error)
		return
	}

	redirectWithMessage(c, redirectTo, "Produk ditambahkan ke keranjang")
}

// cartRemoveGet rejects direct navigation; the cart is mutated by form POST
func (s *Server) cartRemoveGet(c *gin.Context) {
	redirectWithError(c, "/cart", "Gunakan tombol hapus keranjang")
}

func (s *Server) cartRemove(c *gin.Context) {
	sess := session.Read(c)
	if sess == nil {
		c.Redirect(http.StatusFound, "/auth/login?next=/cart")
		return
	}

	productID := strings.TrimSpace(c.PostForm("product_id"))
	quantity := formInt(c, "quantity", 1)

	result, err := proxy.Do[struct{}](c.Request.Context(), s.upstream, "/api/v1/me/cart/remove", proxy.Options{
		Method: http.MethodPost,
		Token:  sess.Token,
		Body:   CartMutation{ProductID: productID, Quantity: quantity},
	})
	if err != nil {
		s.upstreamUnreachable(c, err)
		return
	}

	if result.Error != "" {
		redirectWithError(c, "/cart", result.Error)
		return
	}

	redirectWithMessage(c, "/cart", "Item dihapus dari keranjang")
}

// cartCount answers JSON for the header badge; it never redirects and
// degrades to zero without a session or on a failed upstream call
func (s *Server) cartCount(c *gin.Context) {
	sess := session.Read(c)
	if sess == nil {
		c.JSON(http.StatusOK, gin.H{"count": 0})
		return
	}

	result, err := proxy.Do[CartPayload](c.Request.Context(), s.upstream, "/api/v1/me/cart", proxy.Options{
		Token: sess.Token,
	})
	if err != nil {
		s.upstreamUnreachable(c, err)
		return
	}

	count := 0
	if result.Data != nil {
		for _, item := range result.Data.Items {
			count += item.Quantity
		}
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// formInt parses an integer form field, falling back on empty or
// malformed input
func formInt(c *gin.Context, field string, fallback int) int {
	raw := c.PostForm(field)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
