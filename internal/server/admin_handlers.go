package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mancafe-dev/gateway/internal/proxy"
	"github.com/mancafe-dev/gateway/internal/session"
)

// ProductRequest is the upstream product create/update body
type ProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PriceCents  int64  `json:"price_cents" validate:"gt=0"`
	SKU         string `json:"sku"`
	Stock       int    `json:"stock"`
	Thumbnail   string `json:"thumbnail"`
}

// OrderStatusRequest is the upstream order status update body
type OrderStatusRequest struct {
	Status string `json:"status"`
}

// adminSession re-reads the session and requires the admin role. The
// route guard already gates /api/admin by prefix; this second check keeps
// a misconfigured prefix list from being the sole line of defense for
// data-mutating actions.
func (s *Server) adminSession(c *gin.Context) *session.Session {
	sess := session.Read(c)
	if sess == nil || sess.Role != adminRole {
		c.Redirect(http.StatusFound, "/auth/login?error=admin")
		c.Abort()
		return nil
	}
	return sess
}

// productFromForm builds the upstream body from the posted form. The
// price must parse as a positive integer before any upstream call is
// issued; a zero return with ok=false means the caller already redirected.
func (s *Server) productFromForm(c *gin.Context) (ProductRequest, bool) {
	priceCents, err := strconv.ParseInt(c.PostForm("price_cents"), 10, 64)
	if err != nil {
		redirectWithError(c, "/admin/products", "Harga tidak valid")
		return ProductRequest{}, false
	}

	req := ProductRequest{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Category:    strings.TrimSpace(c.PostForm("category")),
		PriceCents:  priceCents,
		SKU:         strings.TrimSpace(c.PostForm("sku")),
		Stock:       formInt(c, "stock", 0),
		Thumbnail:   strings.TrimSpace(c.PostForm("thumbnail")),
	}

	if err := s.validator.Struct(req); err != nil {
		redirectWithError(c, "/admin/products", "Harga tidak valid")
		return ProductRequest{}, false
	}

	return req, true
}

func (s *Server) createProduct(c *gin.Context) {
	sess := s.adminSession(c)
	if sess == nil {
		return
	}

	req, ok := s.productFromForm(c)
	if !ok {
		return
	}

	result, err := proxy.Do[struct{}](c.Request.Context(), s.upstream, "/api/v1/admin/products", proxy.Options{
		Method: http.MethodPost,
		Token:  sess.Token,
		Body:   req,
	})
	if err != nil {
		s.upstreamUnreachable(c, err)
		return
	}

	if result.Error != "" {
		redirectWithError(c, "/admin/products", result.Error)
		return
	}

	redirectWithMessage(c, "/admin/products", "Produk berhasil dibuat")
}

func (s *Server) updateProduct(c *gin.Context) {
	sess := s.adminSession(c)
	if sess == nil {
		return
	}

	id := strings.TrimSpace(c.PostForm("id"))
	if id == "" {
		redirectWithError(c, "/admin/products", "ID produk wajib")
		return
	}

	req, ok := s.productFromForm(c)
	if !ok {
		return
	}

	result, err := proxy.Do[struct{}](c.Request.Context(), s.upstream, "/api/v1/admin/products/"+id, proxy.Options{
		Method: http.MethodPut,
		Token:  sess.Token,
		Body:   req,
	})
	if err != nil {
		s.upstreamUnreachable(c, err)
		return
	}

	if result.Error != "" {
		redirectWithError(c, "/admin/products", result.Error)
		return
	}

	redirectWithMessage(c, "/admin/products", "Produk berhasil diupdate")
}

func (s *Server) deleteProduct(c *gin.Context) {
	sess := s.adminSession(c)
	if sess == nil {
		return
	}

	id := strings.TrimSpace(c.PostForm("id"))

	result, err := proxy.Do[struct{}](c.Request.Context(), s.upstream, "/api/v1/admin/products/"+id, proxy.Options{
		Method: http.MethodDelete,
		Token:  sess.Token,
	})
	if err != nil {
		s.upstreamUnreachable(c, err)
		return
	}

	if result.Error != "" {
		redirectWithError(c, "/admin/products", result.Error)
		return
	}

	redirectWithMessage(c, "/admin/products", "Produk berhasil dihapus")
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	sess := s.adminSession(c)
	if sess == nil {
		return
	}

	id := strings.TrimSpace(c.PostForm("id"))
	status := strings.TrimSpace(c.PostForm("status"))
	if status == "" {
		status = "pending"
	}

	if id == "" {
		redirectWithError(c, "/admin/orders", "ID pesanan wajib")
		return
	}

	result, err := proxy.Do[struct{}](c.Request.Context(), s.upstream, "/api/v1/admin/orders/"+id+"/status", proxy.Options{
		Method: http.MethodPut,
		Token:  sess.Token,
		Body:   OrderStatusRequest{Status: status},
	})
	if err != nil {
		s.upstreamUnreachable(c, err)
		return
	}

	if result.Error != "" {
		redirectWithError(c, "/admin/orders", result.Error)
		return
	}

	redirectWithMessage(c, "/admin/orders", "Status pesanan diperbarui")
}
