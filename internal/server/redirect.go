package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// appendQuery attaches key=value to a redirect target, picking ? or &
// depending on whether the target already carries a query string
func appendQuery(target, key, value string) string {
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + key + "=" + queryEscape(value)
}

// queryEscape url-encodes a query value with %20 for spaces, matching what
// the storefront pages expect to decode
func queryEscape(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}

// redirectWithError sends the browser back with a url-encoded error
// message for the page layer to display
func redirectWithError(c *gin.Context, target, msg string) {
	c.Redirect(http.StatusFound, appendQuery(target, "error", msg))
}

// redirectWithMessage sends the browser back with a url-encoded
// confirmation message
func redirectWithMessage(c *gin.Context, target, msg string) {
	c.Redirect(http.StatusFound, appendQuery(target, "message", msg))
}

// upstreamUnreachable resolves a transport-level proxy failure. There is
// no retry policy at this layer, so the request fails as a whole.
func (s *Server) upstreamUnreachable(c *gin.Context, err error) {
	s.logger.Error().
		Err(err).
		Str("request_id", requestID(c)).
		Str("path", c.Request.URL.Path).
		Msg("Upstream unreachable")
	c.String(http.StatusBadGateway, "Bad Gateway")
	c.Abort()
}

// errorOr returns the upstream error message, or fallback when the
// failure carried no decodable message
func errorOr(upstreamErr, fallback string) string {
	if upstreamErr != "" {
		return upstreamErr
	}
	return fallback
}
