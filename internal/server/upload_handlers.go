package server

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mancafe-dev/gateway/internal/session"
)

// uploadThumbnail relays a multipart thumbnail upload to the upstream with
// the bearer token re-attached. Unlike the form handlers this endpoint
// answers JSON with the upstream's status, since the admin page consumes
// it via fetch rather than a full-page form post.
func (s *Server) uploadThumbnail(c *gin.Context) {
	sess := session.Read(c)
	if sess == nil || sess.Role != adminRole {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file diperlukan"})
		return
	}
	defer file.Close()

	// Rebuild the multipart body with only the file field so stray form
	// fields never reach the upstream
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", header.Filename)
	if err != nil {
		s.logger.Error().Err(err).Str("request_id", requestID(c)).Msg("Failed to build upload body")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload gagal"})
		return
	}
	if _, err := io.Copy(part, file); err != nil {
		s.logger.Error().Err(err).Str("request_id", requestID(c)).Msg("Failed to copy upload body")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload gagal"})
		return
	}
	if err := mw.Close(); err != nil {
		s.logger.Error().Err(err).Str("request_id", requestID(c)).Msg("Failed to finish upload body")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload gagal"})
		return
	}

	status, payload, err := s.upstream.Relay(c.Request.Context(), http.MethodPost,
		"/api/v1/admin/uploads/thumbnail", sess.Token, mw.FormDataContentType(), &buf)
	if err != nil {
		s.upstreamUnreachable(c, err)
		return
	}

	c.Data(status, "application/json", payload)
}
