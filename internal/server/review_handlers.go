package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mancafe-dev/gateway/internal/proxy"
	"github.com/mancafe-dev/gateway/internal/session"
)

// ReviewRequest is the upstream review submission body
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment" validate:"required"`
}

func (s *Server) submitReview(c *gin.Context) {
	sess := session.Read(c)
	if sess == nil {
		c.Redirect(http.StatusFound, "/auth/login?next=/reviews")
		return
	}

	req := ReviewRequest{
		Rating:  formInt(c, "rating", 5),
		Comment: strings.TrimSpace(c.PostForm("comment")),
	}

	if err := s.validator.Struct(req); err != nil {
		redirectWithError(c, "/reviews", "Komentar tidak boleh kosong")
		return
	}

	result, err := proxy.Do[struct{}](c.Request.Context(), s.upstream, "/api/v1/me/reviews", proxy.Options{
		Method: http.MethodPost,
		Token:  sess.Token,
		Body:   req,
	})
	if err != nil {
		s.upstreamUnreachable(c, err)
		return
	}

	if result.Error != "" {
		redirectWithError(c, "/reviews", result.Error)
		return
	}

	redirectWithMessage(c, "/orders", "Review berhasil dikirim. Terima kasih!")
}
